package household

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/storage"
	"github.com/jmwangi/parishledger/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "parishledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func mustCreate(t *testing.T, store storage.Store, m *models.Member) *models.Member {
	t.Helper()
	if err := store.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	return m
}

func TestResolve(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pledge := decimal.NewFromInt(120)
	head := mustCreate(t, store, &models.Member{
		Email:        "okonkwo@example.com",
		Name:         "Okonkwo",
		PasswordHash: "x",
		AnnualPledge: &pledge,
	})
	spouse := mustCreate(t, store, &models.Member{
		Email:         "adaeze@example.com",
		Name:          "Adaeze",
		PasswordHash:  "x",
		FamilyGroupID: head.ID,
	})
	child := mustCreate(t, store, &models.Member{
		Email:         "emeka@example.com",
		Name:          "Emeka",
		PasswordHash:  "x",
		FamilyGroupID: head.ID,
	})
	loner := mustCreate(t, store, &models.Member{
		Email:        "solo@example.com",
		Name:         "Solo",
		PasswordHash: "x",
	})

	wantIDs := []string{head.ID, spouse.ID, child.ID}
	sort.Strings(wantIDs)

	// The same household must come back no matter which member the
	// lookup starts from.
	for _, start := range []*models.Member{head, spouse, child} {
		t.Run("starting from "+start.Name, func(t *testing.T) {
			h, err := Resolve(ctx, store, start.ID)
			if err != nil {
				t.Fatalf("Resolve failed: %v", err)
			}

			if h.Head.ID != head.ID {
				t.Errorf("Head.ID = %s, want %s", h.Head.ID, head.ID)
			}
			if h.Head.AnnualPledge == nil || !h.Head.AnnualPledge.Equal(pledge) {
				t.Errorf("Head.AnnualPledge = %v, want %s", h.Head.AnnualPledge, pledge)
			}

			gotIDs := append([]string(nil), h.MemberIDs...)
			sort.Strings(gotIDs)
			if len(gotIDs) != len(wantIDs) {
				t.Fatalf("MemberIDs = %v, want %v", gotIDs, wantIDs)
			}
			for i := range wantIDs {
				if gotIDs[i] != wantIDs[i] {
					t.Errorf("MemberIDs = %v, want %v", gotIDs, wantIDs)
					break
				}
			}
		})
	}

	t.Run("member with no dependents is a household of one", func(t *testing.T) {
		h, err := Resolve(ctx, store, loner.ID)
		if err != nil {
			t.Fatalf("Resolve failed: %v", err)
		}
		if h.Head.ID != loner.ID {
			t.Errorf("Head.ID = %s, want %s", h.Head.ID, loner.ID)
		}
		if len(h.MemberIDs) != 1 || h.MemberIDs[0] != loner.ID {
			t.Errorf("MemberIDs = %v, want [%s]", h.MemberIDs, loner.ID)
		}
		// No pledge recorded means zero due, not an error.
		if !h.Head.PledgeOrZero().IsZero() {
			t.Errorf("PledgeOrZero = %s, want 0", h.Head.PledgeOrZero())
		}
	})

	t.Run("unknown member is not found", func(t *testing.T) {
		_, err := Resolve(ctx, store, "no-such-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Resolve error = %v, want storage.ErrNotFound", err)
		}
	})
}
