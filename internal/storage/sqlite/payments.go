package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmwangi/parishledger/internal/models"
	"github.com/jmwangi/parishledger/internal/storage"
)

// postingDateLayout is the stored form of posting dates.
const postingDateLayout = "2006-01-02"

const paymentColumns = "id, member_id, amount, posting_date, category, attribution_year, created_at"

// CreatePayment persists a new immutable payment posting.
func (s *SQLiteStore) CreatePayment(ctx context.Context, posting *models.PaymentPosting) error {
	// Generate ID if not set
	if posting.ID == "" {
		posting.ID = uuid.New().String()
	}
	if posting.CreatedAt == 0 {
		posting.CreatedAt = time.Now().Unix()
	}

	var attributionYear interface{}
	if posting.AttributionYear != nil {
		attributionYear = *posting.AttributionYear
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO payments (id, member_id, amount, posting_date, category, attribution_year, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		posting.ID, posting.MemberID, posting.Amount.String(),
		posting.PostingDate.Format(postingDateLayout), posting.Category,
		attributionYear, posting.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	return nil
}

// ListPayments returns the complete posting history for the given members
// in the given category, oldest first. No LIMIT: the rollover computation
// needs every posting from the earliest year onward.
func (s *SQLiteStore) ListPayments(ctx context.Context, memberIDs []string, category string) ([]models.PaymentPosting, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	query := "SELECT " + paymentColumns + ` FROM payments
		 WHERE category = ? AND member_id IN (?` + repeatPlaceholder(len(memberIDs)-1) + `)
		 ORDER BY posting_date, created_at`

	args := make([]interface{}, 0, len(memberIDs)+1)
	args = append(args, category)
	for _, id := range memberIDs {
		args = append(args, id)
	}

	return s.queryPayments(ctx, query, args...)
}

// ListPaymentsInYear returns postings whose posting_date falls within the
// given calendar year, oldest first. The attribution_year column plays no
// part in this filter.
func (s *SQLiteStore) ListPaymentsInYear(ctx context.Context, memberIDs []string, category string, year int) ([]models.PaymentPosting, error) {
	if len(memberIDs) == 0 {
		return nil, nil
	}

	query := "SELECT " + paymentColumns + ` FROM payments
		 WHERE category = ? AND posting_date >= ? AND posting_date < ?
		 AND member_id IN (?` + repeatPlaceholder(len(memberIDs)-1) + `)
		 ORDER BY posting_date, created_at`

	args := make([]interface{}, 0, len(memberIDs)+3)
	args = append(args,
		category,
		fmt.Sprintf("%04d-01-01", year),
		fmt.Sprintf("%04d-01-01", year+1),
	)
	for _, id := range memberIDs {
		args = append(args, id)
	}

	return s.queryPayments(ctx, query, args...)
}

func (s *SQLiteStore) queryPayments(ctx context.Context, query string, args ...interface{}) ([]models.PaymentPosting, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer rows.Close()

	var postings []models.PaymentPosting
	for rows.Next() {
		posting, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		postings = append(postings, *posting)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return postings, nil
}

// scanPayment decodes one payment row. Unparsable amounts or dates are
// storage.ErrDataIntegrity: the request must fail rather than drop the
// posting from a rollover total.
func scanPayment(row rowScanner) (*models.PaymentPosting, error) {
	posting := &models.PaymentPosting{}
	var amount, postingDate string
	var attributionYear sql.NullInt64

	if err := row.Scan(
		&posting.ID,
		&posting.MemberID,
		&amount,
		&postingDate,
		&posting.Category,
		&attributionYear,
		&posting.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to scan payment: %w", err)
	}

	d, err := decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("payment %s amount %q: %w", posting.ID, amount, storage.ErrDataIntegrity)
	}
	posting.Amount = d

	t, err := time.Parse(postingDateLayout, postingDate)
	if err != nil {
		return nil, fmt.Errorf("payment %s posting_date %q: %w", posting.ID, postingDate, storage.ErrDataIntegrity)
	}
	posting.PostingDate = t

	if attributionYear.Valid {
		year := int(attributionYear.Int64)
		posting.AttributionYear = &year
	}

	return posting, nil
}

// repeatPlaceholder returns a string of ", ?" repeated n times.
// Used for building IN clauses with multiple placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	result := ""
	for i := 0; i < n; i++ {
		result += ", ?"
	}
	return result
}
