package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/storage"
	"github.com/jmwangi/parishledger/internal/storage/sqlite"
)

type duesFixture struct {
	store storage.Store
	svc   *DuesService
}

func newDuesFixture(t *testing.T) *duesFixture {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "parishledger-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "dues.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return &duesFixture{store: store, svc: NewDuesService(store)}
}

func (f *duesFixture) member(t *testing.T, name, familyGroupID, pledge string) *models.Member {
	t.Helper()
	m := &models.Member{
		Email:         name + "@example.com",
		Name:          name,
		PasswordHash:  "x",
		FamilyGroupID: familyGroupID,
	}
	if pledge != "" {
		d := mustDec(t, pledge)
		m.AnnualPledge = &d
	}
	if err := f.store.CreateMember(context.Background(), m); err != nil {
		t.Fatalf("CreateMember failed: %v", err)
	}
	return m
}

func (f *duesFixture) pay(t *testing.T, memberID, amount, postingDate string, attributionYear *int) {
	t.Helper()
	d, err := time.Parse("2006-01-02", postingDate)
	if err != nil {
		t.Fatalf("bad date %q: %v", postingDate, err)
	}
	err = f.store.CreatePayment(context.Background(), &models.PaymentPosting{
		MemberID:        memberID,
		Amount:          mustDec(t, amount),
		PostingDate:     d,
		Category:        models.CategoryDue,
		AttributionYear: attributionYear,
	})
	if err != nil {
		t.Fatalf("CreatePayment failed: %v", err)
	}
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func assertAllocation(t *testing.T, got *DuesStatement, due, collected, outstanding string) {
	t.Helper()
	if !got.Payment.TotalAmountDue.Equal(mustDec(t, due)) {
		t.Errorf("TotalAmountDue = %s, want %s", got.Payment.TotalAmountDue, due)
	}
	if !got.Payment.DuesCollected.Equal(mustDec(t, collected)) {
		t.Errorf("DuesCollected = %s, want %s", got.Payment.DuesCollected, collected)
	}
	if !got.Payment.OutstandingDues.Equal(mustDec(t, outstanding)) {
		t.Errorf("OutstandingDues = %s, want %s", got.Payment.OutstandingDues, outstanding)
	}
}

func intPtr(v int) *int { return &v }

func TestHouseholdDuesNoHistory(t *testing.T) {
	f := newDuesFixture(t)
	head := f.member(t, "head", "", "120")

	got, err := f.svc.HouseholdDues(context.Background(), head.ID, 2025)
	if err != nil {
		t.Fatalf("HouseholdDues failed: %v", err)
	}

	assertAllocation(t, got, "120", "0", "120")
	if len(got.Transactions) != 0 {
		t.Errorf("Transactions = %v, want empty", got.Transactions)
	}
}

func TestHouseholdDuesPriorYearSurplus(t *testing.T) {
	f := newDuesFixture(t)
	head := f.member(t, "head", "", "120")
	f.pay(t, head.ID, "200", "2024-05-01", intPtr(2024))

	got, err := f.svc.HouseholdDues(context.Background(), head.ID, 2025)
	if err != nil {
		t.Fatalf("HouseholdDues failed: %v", err)
	}

	// 200 against a 120 due in 2024 leaves 80 rolling into 2025.
	assertAllocation(t, got, "120", "80", "40")
	if len(got.Transactions) != 0 {
		t.Errorf("2025 ledger = %v, want empty (payment was made in 2024)", got.Transactions)
	}
}

func TestHouseholdDuesLatePaymentAttributedBack(t *testing.T) {
	f := newDuesFixture(t)
	head := f.member(t, "head", "", "120")

	// Paid in February 2026, explicitly against the 2025 obligation.
	f.pay(t, head.ID, "120", "2026-02-01", intPtr(2025))

	// 2025: fully collected, but the cash ledger for 2025 is empty.
	got2025, err := f.svc.HouseholdDues(context.Background(), head.ID, 2025)
	if err != nil {
		t.Fatalf("HouseholdDues(2025) failed: %v", err)
	}
	assertAllocation(t, got2025, "120", "120", "0")
	if len(got2025.Transactions) != 0 {
		t.Errorf("2025 ledger = %v, want empty", got2025.Transactions)
	}

	// 2026: nothing collected, but the posting shows in the ledger.
	got2026, err := f.svc.HouseholdDues(context.Background(), head.ID, 2026)
	if err != nil {
		t.Fatalf("HouseholdDues(2026) failed: %v", err)
	}
	assertAllocation(t, got2026, "120", "0", "120")
	if len(got2026.Transactions) != 1 {
		t.Fatalf("2026 ledger has %d postings, want 1", len(got2026.Transactions))
	}
	if !got2026.Transactions[0].Amount.Equal(mustDec(t, "120")) {
		t.Errorf("ledger amount = %s, want 120", got2026.Transactions[0].Amount)
	}
}

func TestHouseholdDuesAggregatesWholeHousehold(t *testing.T) {
	f := newDuesFixture(t)
	head := f.member(t, "head", "", "120")
	spouse := f.member(t, "spouse", head.ID, "")
	child := f.member(t, "child", head.ID, "999") // dependent pledges are ignored

	f.pay(t, head.ID, "40", "2025-02-01", nil)
	f.pay(t, spouse.ID, "50", "2025-06-01", nil)
	f.pay(t, child.ID, "30", "2025-09-01", nil)

	// The shared obligation is the head's single flat pledge, and any
	// member's query sees the same pooled result.
	for _, m := range []*models.Member{head, spouse, child} {
		got, err := f.svc.HouseholdDues(context.Background(), m.ID, 2025)
		if err != nil {
			t.Fatalf("HouseholdDues(%s) failed: %v", m.Name, err)
		}
		assertAllocation(t, got, "120", "120", "0")
		if len(got.Transactions) != 3 {
			t.Errorf("%s sees %d transactions, want 3", m.Name, len(got.Transactions))
		}
	}
}

func TestHouseholdDuesNoPledgeMeansZeroDue(t *testing.T) {
	f := newDuesFixture(t)
	head := f.member(t, "head", "", "")

	got, err := f.svc.HouseholdDues(context.Background(), head.ID, 2025)
	if err != nil {
		t.Fatalf("HouseholdDues failed: %v", err)
	}
	assertAllocation(t, got, "0", "0", "0")
}

func TestHouseholdDuesUnknownMember(t *testing.T) {
	f := newDuesFixture(t)

	_, err := f.svc.HouseholdDues(context.Background(), "no-such-member", 2025)
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("error = %v, want storage.ErrNotFound", err)
	}
}

func TestHouseholdDuesInvalidYear(t *testing.T) {
	f := newDuesFixture(t)
	head := f.member(t, "head", "", "120")

	for _, year := range []int{0, -1, 99, 10000} {
		if _, err := f.svc.HouseholdDues(context.Background(), head.ID, year); !errors.Is(err, ErrInvalidYear) {
			t.Errorf("year %d: error = %v, want ErrInvalidYear", year, err)
		}
	}
}
