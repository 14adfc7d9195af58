// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/jmwangi/parishledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrDataIntegrity is returned when a stored record cannot be decoded
// (e.g. an unparsable decimal amount or posting date). Callers must fail
// the whole request rather than drop the bad record: silently excluding
// a posting would corrupt the rollover totals.
var ErrDataIntegrity = errors.New("corrupt stored record")

// Store defines the interface for member and payment storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
type Store interface {
	// CreateMember persists a new member and returns the assigned ID.
	// The member.ID field will be populated by the store.
	CreateMember(ctx context.Context, member *models.Member) error

	// GetMember retrieves a member by ID.
	// Returns ErrNotFound if the member does not exist.
	GetMember(ctx context.Context, id string) (*models.Member, error)

	// GetMemberByEmail retrieves a member by email address.
	// Returns ErrNotFound if no member has that email.
	GetMemberByEmail(ctx context.Context, email string) (*models.Member, error)

	// ListHouseholdMembers returns every member whose FamilyGroupID
	// equals headID. The head itself is NOT included.
	ListHouseholdMembers(ctx context.Context, headID string) ([]models.Member, error)

	// CreatePayment persists a new immutable payment posting.
	// The posting.ID field will be populated by the store.
	CreatePayment(ctx context.Context, posting *models.PaymentPosting) error

	// ListPayments returns every posting for the given members in the
	// given category, regardless of date. No pagination is applied: the
	// rollover computation needs the complete history.
	ListPayments(ctx context.Context, memberIDs []string, category string) ([]models.PaymentPosting, error)

	// ListPaymentsInYear returns every posting for the given members in
	// the given category whose POSTING DATE falls within the calendar
	// year. Attribution years are ignored here: this is the cash-flow
	// view, not the allocation view.
	ListPaymentsInYear(ctx context.Context, memberIDs []string, category string, year int) ([]models.PaymentPosting, error)

	// Close releases any resources held by the store.
	Close() error
}
