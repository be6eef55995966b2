package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/redisclient"
)

type captureMailer struct {
	sent  []string
	codes []string
	fail  error
}

func (m *captureMailer) SendOTP(_ context.Context, to, code string) error {
	if m.fail != nil {
		return m.fail
	}
	m.sent = append(m.sent, to)
	m.codes = append(m.codes, code)
	return nil
}

func newTestOTPService(t *testing.T) (*OTPService, *captureMailer, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redisclient.NewClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	mail := &captureMailer{}
	return NewOTPService(client, mail), mail, mr
}

func TestSendCode_DeliversSixDigitCode(t *testing.T) {
	svc, mail, _ := newTestOTPService(t)
	ctx := context.Background()

	if err := svc.SendCode(ctx, "juan@example.com"); err != nil {
		t.Fatalf("SendCode() error = %v", err)
	}
	if len(mail.codes) != 1 {
		t.Fatalf("codes sent = %d, want 1", len(mail.codes))
	}
	if len(mail.codes[0]) != 6 {
		t.Errorf("code = %q, want six digits", mail.codes[0])
	}
}

func TestSendCode_RateLimited(t *testing.T) {
	svc, _, _ := newTestOTPService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := svc.SendCode(ctx, "juan@example.com"); err != nil {
			t.Fatalf("SendCode() #%d error = %v", i+1, err)
		}
	}
	if err := svc.SendCode(ctx, "juan@example.com"); !errors.Is(err, models.ErrOTPSendLimit) {
		t.Errorf("fourth SendCode() error = %v, want ErrOTPSendLimit", err)
	}

	// The limit is per address.
	if err := svc.SendCode(ctx, "other@example.com"); err != nil {
		t.Errorf("SendCode() for other address error = %v", err)
	}
}

func TestVerifyCode_Success(t *testing.T) {
	svc, mail, _ := newTestOTPService(t)
	ctx := context.Background()

	if err := svc.SendCode(ctx, "juan@example.com"); err != nil {
		t.Fatalf("SendCode() error = %v", err)
	}
	if err := svc.VerifyCode(ctx, "juan@example.com", mail.codes[0]); err != nil {
		t.Fatalf("VerifyCode() error = %v", err)
	}

	verified, err := svc.IsVerified(ctx, "juan@example.com")
	if err != nil {
		t.Fatalf("IsVerified() error = %v", err)
	}
	if !verified {
		t.Error("IsVerified() = false after successful verification")
	}
}

func TestVerifyCode_SingleUse(t *testing.T) {
	svc, mail, _ := newTestOTPService(t)
	ctx := context.Background()

	svc.SendCode(ctx, "juan@example.com")
	code := mail.codes[0]

	if err := svc.VerifyCode(ctx, "juan@example.com", code); err != nil {
		t.Fatalf("first VerifyCode() error = %v", err)
	}
	if err := svc.VerifyCode(ctx, "juan@example.com", code); !errors.Is(err, models.ErrOTPNotFound) {
		t.Errorf("second VerifyCode() error = %v, want ErrOTPNotFound", err)
	}
}

func TestVerifyCode_Mismatch(t *testing.T) {
	svc, _, _ := newTestOTPService(t)
	ctx := context.Background()

	svc.SendCode(ctx, "juan@example.com")

	if err := svc.VerifyCode(ctx, "juan@example.com", "000000"); !errors.Is(err, models.ErrOTPMismatch) {
		t.Errorf("VerifyCode() error = %v, want ErrOTPMismatch", err)
	}
	verified, _ := svc.IsVerified(ctx, "juan@example.com")
	if verified {
		t.Error("IsVerified() = true after mismatch")
	}
}

func TestVerifyCode_Expired(t *testing.T) {
	svc, mail, mr := newTestOTPService(t)
	ctx := context.Background()

	svc.SendCode(ctx, "juan@example.com")
	mr.FastForward(11 * time.Minute)

	if err := svc.VerifyCode(ctx, "juan@example.com", mail.codes[0]); !errors.Is(err, models.ErrOTPNotFound) {
		t.Errorf("VerifyCode() after expiry error = %v, want ErrOTPNotFound", err)
	}
}

func TestSendCode_MailerFailureSurfaces(t *testing.T) {
	svc, mail, _ := newTestOTPService(t)
	mail.fail = errors.New("smtp rejected")

	if err := svc.SendCode(context.Background(), "juan@example.com"); err == nil {
		t.Error("SendCode() = nil error, want mailer failure")
	}
}
