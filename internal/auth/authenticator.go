// Package auth handles customer accounts: credential checks and session tokens.
package auth

import (
	"context"

	"github.com/mmynk/orderlines/internal/models"
)

// Authenticator registers and verifies customers.
// Implementations decide what a credential is (password, passkey, ...).
type Authenticator interface {
	// Register creates a new account. Fails with ErrEmailExists if the email
	// is taken or with a credential error if the credential is unacceptable.
	Register(ctx context.Context, email, displayName, credential string) (*models.User, error)

	// Authenticate returns the user the credential belongs to,
	// or ErrInvalidCredentials.
	Authenticate(ctx context.Context, email, credential string) (*models.User, error)

	// ValidateCredential checks the credential before it is stored.
	ValidateCredential(credential string) error
}
