package mailer

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/observability"
)

// Mailer delivers transactional email to applicants.
type Mailer interface {
	SendOTP(ctx context.Context, to, code string) error
}

// SESMailer sends email through Amazon SES.
type SESMailer struct {
	client   *ses.Client
	from     string
	fromName string
	logger   *zap.Logger
}

// NewSESMailer builds a mailer from the ambient AWS configuration.
func NewSESMailer(ctx context.Context, region, from, fromName string) (*SESMailer, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return &SESMailer{
		client:   ses.NewFromConfig(cfg),
		from:     from,
		fromName: fromName,
		logger:   observability.Logger().With(zap.String("component", "mailer")),
	}, nil
}

// SendOTP delivers a one-time verification code to the given address.
func (m *SESMailer) SendOTP(ctx context.Context, to, code string) error {
	subject := "Your verification code"
	body := fmt.Sprintf(
		"Your email verification code is %s.\n\nThe code expires in 10 minutes. If you did not request it, ignore this message.",
		code,
	)

	input := &ses.SendEmailInput{
		Source: aws.String(fmt.Sprintf("%s <%s>", m.fromName, m.from)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(body)},
			},
		},
	}

	if _, err := m.client.SendEmail(ctx, input); err != nil {
		m.logger.Error("failed to send verification email",
			zap.String("to", observability.MaskEmail(to)),
			zap.Error(err))
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	m.logger.Info("verification email sent", zap.String("to", observability.MaskEmail(to)))
	return nil
}

// NoopMailer logs instead of sending. Used in local development where SES
// credentials are not available.
type NoopMailer struct {
	logger *zap.Logger
}

func NewNoopMailer() *NoopMailer {
	return &NoopMailer{logger: observability.Logger().With(zap.String("component", "mailer"))}
}

func (m *NoopMailer) SendOTP(_ context.Context, to, code string) error {
	m.logger.Info("mailer disabled, skipping send",
		zap.String("to", observability.MaskEmail(to)),
		zap.String("code", code))
	return nil
}
