package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/config"
	"github.com/denr-tlph/licensing-api/internal/mailer"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/redisclient"
)

const verifiedFlagTTL = time.Hour

// OTPService issues and checks email verification codes. Codes are six
// digits, single use, and expire after the configured TTL. Sends are rate
// limited per address over a rolling window.
type OTPService struct {
	redis  *redisclient.Client
	mail   mailer.Mailer
	logger *zap.Logger
}

func NewOTPService(redisClient *redisclient.Client, mail mailer.Mailer) *OTPService {
	return &OTPService{
		redis:  redisClient,
		mail:   mail,
		logger: observability.Logger().With(zap.String("service", "otp")),
	}
}

func codeKey(email string) string     { return "otp:code:" + email }
func countKey(email string) string    { return "otp:count:" + email }
func verifiedKey(email string) string { return "otp:verified:" + email }

// generateCode returns a random six-digit code, zero padded.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// SendCode issues a fresh code to the address, replacing any outstanding one.
func (s *OTPService) SendCode(ctx context.Context, email string) error {
	count, err := s.redis.Incr(ctx, countKey(email)).Result()
	if err != nil {
		return fmt.Errorf("failed to track send count: %w", err)
	}
	if count == 1 {
		s.redis.Expire(ctx, countKey(email), config.AppConfig.OTPSendWindow)
	}
	if count > int64(config.AppConfig.OTPSendLimit) {
		observability.OTPCodesSent.WithLabelValues("rate_limited").Inc()
		s.logger.Warn("verification code rate limited",
			zap.String("email", observability.MaskEmail(email)))
		return models.ErrOTPSendLimit
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	if err := s.redis.Set(ctx, codeKey(email), code, config.AppConfig.OTPTTL).Err(); err != nil {
		observability.OTPCodesSent.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if err := s.mail.SendOTP(ctx, email, code); err != nil {
		observability.OTPCodesSent.WithLabelValues("error").Inc()
		return err
	}

	observability.OTPCodesSent.WithLabelValues("success").Inc()
	s.logger.Info("verification code sent",
		zap.String("email", observability.MaskEmail(email)))
	return nil
}

// VerifyCode checks a submitted code. A matching code is consumed and the
// address is marked verified; a second submission of the same code fails.
func (s *OTPService) VerifyCode(ctx context.Context, email, code string) error {
	stored, err := s.redis.Get(ctx, codeKey(email)).Result()
	if err == redis.Nil {
		observability.OTPVerifications.WithLabelValues("expired").Inc()
		return models.ErrOTPNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to read verification code: %w", err)
	}

	if stored != code {
		observability.OTPVerifications.WithLabelValues("mismatch").Inc()
		return models.ErrOTPMismatch
	}

	s.redis.Del(ctx, codeKey(email))
	if err := s.redis.Set(ctx, verifiedKey(email), "1", verifiedFlagTTL).Err(); err != nil {
		return fmt.Errorf("failed to mark address verified: %w", err)
	}

	observability.OTPVerifications.WithLabelValues("success").Inc()
	s.logger.Info("email address verified",
		zap.String("email", observability.MaskEmail(email)))
	return nil
}

// IsVerified reports whether the address passed verification recently.
func (s *OTPService) IsVerified(ctx context.Context, email string) (bool, error) {
	_, err := s.redis.Get(ctx, verifiedKey(email)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read verification flag: %w", err)
	}
	return true, nil
}
