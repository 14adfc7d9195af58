// Package ledger computes household dues allocations.
//
// The engine is pure: it operates on postings already fetched from
// storage, performs no I/O, and holds no state between calls.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/models"
)

// ReducedPosting is a due-category posting reduced to the two facts the
// rollover algorithm needs: how much, and which year it counts toward.
type ReducedPosting struct {
	Amount        decimal.Decimal
	EffectiveYear int
}

// Allocation is the per-year dues position of a household.
type Allocation struct {
	// TotalAmountDue is the household's flat obligation for the year.
	TotalAmountDue decimal.Decimal

	// DuesCollected is the amount counting toward the year: postings
	// attributed to it plus the carry from all prior years. It can be
	// negative when the household enters the year in deficit.
	DuesCollected decimal.Decimal

	// OutstandingDues is TotalAmountDue - DuesCollected.
	OutstandingDues decimal.Decimal
}

// Reduce maps raw postings to their allocation form, resolving each
// posting's effective year (explicit attribution year if present,
// otherwise the year of the posting date).
func Reduce(postings []models.PaymentPosting) []ReducedPosting {
	reduced := make([]ReducedPosting, len(postings))
	for i := range postings {
		reduced[i] = ReducedPosting{
			Amount:        postings[i].Amount,
			EffectiveYear: postings[i].EffectiveYear(),
		}
	}
	return reduced
}

// Allocate computes the dues position for targetYear given the household's
// flat annual due and its complete posting history.
//
// Algorithm:
//   - Group history by effective year, summing amounts per year.
//   - Walk years from the earliest present up to targetYear-1, carrying
//     carry += paid[y] - annualDue. The carry is never clamped mid-walk:
//     a deficit year can be offset by a later surplus and vice versa.
//   - collected = paid[targetYear] + carry
//   - outstanding = annualDue - collected
//
// Overpaying one year reduces the next year's bill rather than being
// discarded; underpaying increases it.
func Allocate(annualDue decimal.Decimal, history []ReducedPosting, targetYear int) Allocation {
	paidByYear := make(map[int]decimal.Decimal)
	minYear := targetYear
	for _, p := range history {
		paidByYear[p.EffectiveYear] = paidByYear[p.EffectiveYear].Add(p.Amount)
		if p.EffectiveYear < minYear {
			minYear = p.EffectiveYear
		}
	}

	carry := decimal.Zero
	for y := minYear; y < targetYear; y++ {
		carry = carry.Add(paidByYear[y]).Sub(annualDue)
	}

	collected := paidByYear[targetYear].Add(carry)

	return Allocation{
		TotalAmountDue:  annualDue,
		DuesCollected:   collected,
		OutstandingDues: annualDue.Sub(collected),
	}
}
