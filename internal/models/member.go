package models

import "github.com/shopspring/decimal"

// Member roles. Staff can record payments and query any household.
const (
	RoleMember = "member"
	RoleStaff  = "staff"
)

// Member represents a registered parishioner.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	ID string

	// Email is the member's email address (unique). Used for login.
	Email string

	// Name is the display name of the member.
	Name string

	// PasswordHash is the bcrypt hash of the member's password.
	PasswordHash string

	// Role is either RoleMember or RoleStaff.
	Role string

	// FamilyGroupID references the household head's member ID.
	// Empty means this member IS a head of household.
	FamilyGroupID string

	// AnnualPledge is the household's flat yearly dues amount.
	// Only meaningful on the head-of-household record; dependents'
	// values are ignored. Nil means no pledge (zero due).
	AnnualPledge *decimal.Decimal

	// CreatedAt is the Unix timestamp when the member was registered.
	CreatedAt int64
}

// IsHead reports whether the member is a head of household.
func (m *Member) IsHead() bool {
	return m.FamilyGroupID == ""
}

// PledgeOrZero returns the member's annual pledge, or zero if unset.
func (m *Member) PledgeOrZero() decimal.Decimal {
	if m.AnnualPledge == nil {
		return decimal.Zero
	}
	return *m.AnnualPledge
}
