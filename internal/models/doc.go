// Package models defines the core domain models for the parish ledger.
//
// # Models
//
//   - Member: a registered parishioner; may head a household or belong to one
//   - PaymentPosting: an immutable record of money received
//
// # Design Principles
//
// 1. **Households are derived, not stored**: a member either has no
// FamilyGroupID (and is a head of household) or references the head's ID.
// The household aggregate is resolved per request (see internal/household).
//
// 2. **Postings are immutable**: once a posting is created there is no
// update or delete path. Corrections are entered as new postings.
//
// 3. **Money is decimal**: amounts use shopspring/decimal and are persisted
// as decimal strings, never floats.
package models
