package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/jmwangi/parishledger/internal/household"
	"github.com/jmwangi/parishledger/internal/ledger"
	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/storage"
)

// ErrInvalidYear is returned for a malformed dues year before any
// storage read is issued.
var ErrInvalidYear = errors.New("year must be a 4-digit integer")

// DuesStatement is the caller-facing result: the computed allocation for
// the requested year plus the year's cash-flow transaction list, shown
// verbatim. The two views intentionally disagree when a posting carries
// an attribution year: it appears in the ledger of the year it was paid
// while counting toward the year it was attributed to.
type DuesStatement struct {
	Payment      ledger.Allocation
	Transactions []models.PaymentPosting
}

// DuesService answers "how much does this household owe this year, and
// how much has it paid toward it". It is stateless and read-only.
type DuesService struct {
	store storage.Store
}

// NewDuesService creates a DuesService with the given storage backend.
func NewDuesService(store storage.Store) *DuesService {
	return &DuesService{store: store}
}

// HouseholdDues resolves the member's household and computes its dues
// position for the given year.
//
// The household's full due-payment history and the year's ledger view are
// fetched concurrently; the rollover computation itself is synchronous
// and in-memory. On any error the whole request fails: no partial
// statement is ever returned.
func (s *DuesService) HouseholdDues(ctx context.Context, memberID string, year int) (*DuesStatement, error) {
	if year < 1000 || year > 9999 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidYear, year)
	}

	h, err := household.Resolve(ctx, s.store, memberID)
	if err != nil {
		return nil, err
	}

	var history, transactions []models.PaymentPosting

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		// Complete history, no year filter: rollover needs every
		// posting from the earliest year onward.
		var err error
		history, err = s.store.ListPayments(gctx, h.MemberIDs, models.CategoryDue)
		return err
	})
	g.Go(func() error {
		// Cash-flow view: filtered by posting date, not attribution.
		var err error
		transactions, err = s.store.ListPaymentsInYear(gctx, h.MemberIDs, models.CategoryDue, year)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	allocation := ledger.Allocate(h.Head.PledgeOrZero(), ledger.Reduce(history), year)

	slog.DebugContext(ctx, "Household dues computed",
		"head_id", h.Head.ID,
		"members", len(h.MemberIDs),
		"year", year,
		"history_postings", len(history),
		"collected", allocation.DuesCollected,
		"outstanding", allocation.OutstandingDues,
	)

	return &DuesStatement{
		Payment:      allocation,
		Transactions: transactions,
	}, nil
}
