package models

import "errors"

// Error constants for identity operations
var (
	ErrAccountExists      = errors.New("an account with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotAuthenticated   = errors.New("user not authenticated, please sign in and try again")
)

// Error constants for verification codes
var (
	ErrOTPNotFound      = errors.New("verification code expired or not found")
	ErrOTPMismatch      = errors.New("invalid verification code")
	ErrOTPSendLimit     = errors.New("too many verification codes requested, try again later")
	ErrEmailNotVerified = errors.New("email address has not been verified")
)

// Error constants for applications and transactions
var (
	ErrRecordNotFound          = errors.New("record not found")
	ErrTransactionNotFound     = errors.New("transaction not found")
	ErrTransactionNotPending   = errors.New("only pending transactions can be cancelled")
	ErrTransactionUnauthorized = errors.New("unauthorized to cancel this transaction")
	ErrMissingRequiredDocument = errors.New("missing required document")
)
