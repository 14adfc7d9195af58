// Package household resolves the household aggregate: the set of member
// records sharing one annual dues obligation.
package household

import (
	"context"
	"fmt"

	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/storage"
)

// Household is the resolved aggregate for one family group. It is derived
// per request and never persisted.
type Household struct {
	// Head is the head-of-household member record. The household's
	// annual pledge is read exclusively from this record.
	Head *models.Member

	// MemberIDs is every member identifier in the household, the head
	// included. Postings from any of these count toward the same
	// shared obligation.
	MemberIDs []string
}

// Resolve determines the full household for the given member: the head of
// household plus every member referencing the head, regardless of which
// of them the lookup starts from.
//
// Returns storage.ErrNotFound (wrapped) if the member or its head cannot
// be located.
func Resolve(ctx context.Context, store storage.Store, memberID string) (*Household, error) {
	member, err := store.GetMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("resolve household for %s: %w", memberID, err)
	}

	head := member
	if !member.IsHead() {
		head, err = store.GetMember(ctx, member.FamilyGroupID)
		if err != nil {
			return nil, fmt.Errorf("resolve household head %s: %w", member.FamilyGroupID, err)
		}
	}

	dependents, err := store.ListHouseholdMembers(ctx, head.ID)
	if err != nil {
		return nil, fmt.Errorf("list household of %s: %w", head.ID, err)
	}

	memberIDs := make([]string, 0, len(dependents)+1)
	memberIDs = append(memberIDs, head.ID)
	for _, d := range dependents {
		memberIDs = append(memberIDs, d.ID)
	}

	return &Household{Head: head, MemberIDs: memberIDs}, nil
}
