package models

import "time"

// Account is the identity-provider record backing authentication. The
// password hash never leaves the users collection.
type Account struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
}

// UserProfile is the profile record persisted at registration, keyed by the
// identity account id.
type UserProfile struct {
	UserID         string            `bson:"user_id" json:"user_id"`
	FirstName      string            `bson:"first_name" json:"first_name"`
	LastName       string            `bson:"last_name" json:"last_name"`
	Email          string            `bson:"email" json:"email"`
	Phone          string            `bson:"phone" json:"phone"`
	Category       ApplicantCategory `bson:"category" json:"category"`
	Address        string            `bson:"address" json:"address"`
	Province       string            `bson:"province" json:"province"`
	Municipality   string            `bson:"municipality" json:"municipality"`
	CategoryFields map[string]string `bson:"category_fields,omitempty" json:"category_fields,omitempty"`
	Role           string            `bson:"role" json:"role"`
	Status         string            `bson:"status" json:"status"`
	CreatedAt      time.Time         `bson:"created_at" json:"created_at"`
}

// RegistrationDraft is the transient registration data accumulated across the
// form steps. It is created when step 1 is submitted and discarded when the
// flow is abandoned; it is never persisted before final submission.
type RegistrationDraft struct {
	FirstName       string            `json:"first_name"`
	LastName        string            `json:"last_name"`
	Email           string            `json:"email"`
	Phone           string            `json:"phone"`
	Category        ApplicantCategory `json:"category"`
	Address         string            `json:"address"`
	Province        string            `json:"province"`
	Municipality    string            `json:"municipality"`
	CategoryFields  map[string]string `json:"category_fields"`
	Password        string            `json:"password"`
	ConfirmPassword string            `json:"confirm_password"`
	TermsAccepted   bool              `json:"terms_accepted"`
}
