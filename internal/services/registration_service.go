package services

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/denr-tlph/licensing-api/internal/forms"
	"github.com/denr-tlph/licensing-api/internal/models"
	"github.com/denr-tlph/licensing-api/internal/observability"
	"github.com/denr-tlph/licensing-api/internal/utils"
)

// EmailVerifier reports whether an address passed OTP verification.
type EmailVerifier interface {
	IsVerified(ctx context.Context, email string) (bool, error)
}

// RegistrationResult is returned after a successful registration.
type RegistrationResult struct {
	UserID   string `json:"user_id"`
	Role     string `json:"role"`
	Redirect string `json:"redirect"`
}

// RegistrationService drives the final registration submission: validate the
// accumulated draft, create the identity account, derive the role, persist
// the profile, and hand back the category's landing route.
//
// There is no compensation path. If the profile write fails after the account
// was created, the account stays behind and the error is surfaced; retrying
// the submission will report the address as already registered.
type RegistrationService struct {
	identity IdentityProvider
	records  RecordStore
	verifier EmailVerifier
	logger   *zap.Logger
}

func NewRegistrationService(identity IdentityProvider, records RecordStore, verifier EmailVerifier) *RegistrationService {
	return &RegistrationService{
		identity: identity,
		records:  records,
		verifier: verifier,
		logger:   observability.Logger().With(zap.String("service", "registration")),
	}
}

// Validate checks the draft without side effects.
func (s *RegistrationService) Validate(ctx context.Context, draft *models.RegistrationDraft) *utils.ValidationResult {
	result := utils.NewValidationResult()

	if strings.TrimSpace(draft.FirstName) == "" {
		result.AddError("first_name", "first name is required")
	}
	if strings.TrimSpace(draft.LastName) == "" {
		result.AddError("last_name", "last name is required")
	}

	email, err := utils.ValidateEmail(draft.Email)
	if err != nil {
		result.AddError("email", err.Error())
	} else {
		draft.Email = email
	}

	phone, err := utils.ValidatePhone(draft.Phone)
	if err != nil {
		result.AddError("phone", err.Error())
	} else {
		draft.Phone = phone
	}

	if !draft.Category.Valid() {
		result.AddError("category", fmt.Sprintf("unknown applicant category %q", draft.Category))
	}

	if strings.TrimSpace(draft.Address) == "" {
		result.AddError("address", "address is required")
	}
	if !forms.ValidLocation(draft.Province, draft.Municipality) {
		result.AddError("municipality", "municipality does not belong to the selected province")
	}

	// Category-specific fields use the same gate as the form's step 3a.
	snapshot := forms.FormSnapshot{}
	for id, value := range draft.CategoryFields {
		snapshot[id] = value
	}
	if check := forms.CanAdvance(draft.Category, snapshot); !check.OK {
		for _, label := range check.Missing {
			result.AddError("category_fields", fmt.Sprintf("%s is required", label))
		}
	}

	if len(draft.Password) < 8 {
		result.AddError("password", "password must be at least 8 characters")
	}
	if draft.Password != draft.ConfirmPassword {
		result.AddError("confirm_password", "passwords do not match")
	}
	if !draft.TermsAccepted {
		result.AddError("terms_accepted", "terms and conditions must be accepted")
	}

	return result
}

// Submit performs the full registration. The identity account is created
// exactly once; validation failures happen before any write.
func (s *RegistrationService) Submit(ctx context.Context, draft *models.RegistrationDraft) (*RegistrationResult, error) {
	category := string(draft.Category)

	if result := s.Validate(ctx, draft); !result.IsValid {
		observability.Registrations.WithLabelValues(category, "invalid").Inc()
		return nil, fmt.Errorf("registration validation failed: %s", result.Errors[0].Message)
	}

	verified, err := s.verifier.IsVerified(ctx, draft.Email)
	if err != nil {
		return nil, err
	}
	if !verified {
		observability.Registrations.WithLabelValues(category, "unverified").Inc()
		return nil, models.ErrEmailNotVerified
	}

	account, err := s.identity.CreateAccount(ctx, draft.Email, draft.Password)
	if err != nil {
		if err == models.ErrAccountExists {
			observability.Registrations.WithLabelValues(category, "duplicate").Inc()
		} else {
			observability.Registrations.WithLabelValues(category, "identity_error").Inc()
		}
		return nil, err
	}

	role := draft.Category.Role()
	profile := &models.UserProfile{
		UserID:         account.ID,
		FirstName:      draft.FirstName,
		LastName:       draft.LastName,
		Email:          draft.Email,
		Phone:          draft.Phone,
		Category:       draft.Category,
		Address:        draft.Address,
		Province:       draft.Province,
		Municipality:   draft.Municipality,
		CategoryFields: draft.CategoryFields,
		Role:           role,
		Status:         "pending",
	}

	if err := s.records.WriteProfile(ctx, profile); err != nil {
		// The account already exists at this point and is not rolled back.
		observability.Registrations.WithLabelValues(category, "profile_error").Inc()
		s.logger.Error("profile write failed after account creation",
			zap.String("user_id", account.ID),
			zap.Error(err))
		return nil, fmt.Errorf("account created but profile could not be saved: %w", err)
	}

	observability.Registrations.WithLabelValues(category, "success").Inc()
	s.logger.Info("registration completed",
		zap.String("user_id", account.ID),
		zap.String("category", category),
		zap.String("role", role))

	return &RegistrationResult{
		UserID:   account.ID,
		Role:     role,
		Redirect: draft.Category.RedirectRoute(),
	}, nil
}
