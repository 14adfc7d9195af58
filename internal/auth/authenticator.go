package auth

import (
	"context"

	"github.com/jmwangi/parishledger/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods
// (password, OAuth, etc.) without changing the handler code.
type Authenticator interface {
	// Register creates a new member account. The member carries the
	// profile fields (email, name, household, pledge); the credential
	// format depends on the implementation. Returns the stored member.
	Register(ctx context.Context, member *models.Member, credential string) (*models.Member, error)

	// Authenticate verifies the member's credentials and returns the
	// member if successful.
	Authenticate(ctx context.Context, email, credential string) (*models.Member, error)

	// ValidateCredential checks if the credential meets the
	// implementation's requirements.
	ValidateCredential(credential string) error
}
