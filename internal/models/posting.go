package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment categories recorded by the finance-entry workflow.
// The dues engine only consumes CategoryDue; other categories pass
// through the store untouched.
const (
	CategoryDue      = "due"
	CategoryDonation = "donation"
	CategoryOffering = "offering"
)

// PaymentPosting is an immutable record of money received.
type PaymentPosting struct {
	// ID is the unique identifier for the posting (UUID format).
	ID string

	// MemberID is the member the payment was recorded against.
	MemberID string

	// Amount is the amount received. Always positive for dues.
	Amount decimal.Decimal

	// PostingDate is the date the money was physically received.
	PostingDate time.Time

	// Category is the payment category (e.g. CategoryDue).
	Category string

	// AttributionYear, when set, states which annual obligation this
	// posting counts toward, regardless of PostingDate. Nil means the
	// posting is attributed to the calendar year of PostingDate.
	AttributionYear *int

	// CreatedAt is the Unix timestamp when the posting was entered.
	CreatedAt int64
}

// EffectiveYear returns the year this posting's amount is allocated to:
// the explicit attribution year if present, otherwise the calendar year
// of the posting date.
func (p *PaymentPosting) EffectiveYear() int {
	if p.AttributionYear != nil {
		return *p.AttributionYear
	}
	return p.PostingDate.Year()
}
