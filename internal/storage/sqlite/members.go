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

const memberColumns = "id, email, name, password_hash, role, family_group_id, annual_pledge, created_at"

// CreateMember inserts a new member into the database.
func (s *SQLiteStore) CreateMember(ctx context.Context, member *models.Member) error {
	// Generate ID if not set
	if member.ID == "" {
		member.ID = uuid.New().String()
	}
	if member.CreatedAt == 0 {
		member.CreatedAt = time.Now().Unix()
	}
	if member.Role == "" {
		member.Role = models.RoleMember
	}

	var familyGroupID interface{}
	if member.FamilyGroupID != "" {
		familyGroupID = member.FamilyGroupID
	}
	var pledge interface{}
	if member.AnnualPledge != nil {
		pledge = member.AnnualPledge.String()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO members (id, email, name, password_hash, role, family_group_id, annual_pledge, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		member.ID, member.Email, member.Name, member.PasswordHash,
		member.Role, familyGroupID, pledge, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert member: %w", err)
	}

	return nil
}

// GetMember retrieves a member by ID.
func (s *SQLiteStore) GetMember(ctx context.Context, id string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE id = ?", id)

	member, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member: %w", err)
	}

	return member, nil
}

// GetMemberByEmail retrieves a member by email address.
func (s *SQLiteStore) GetMemberByEmail(ctx context.Context, email string) (*models.Member, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE email = ?", email)

	member, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("member with email %s: %w", email, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get member by email: %w", err)
	}

	return member, nil
}

// ListHouseholdMembers returns every member whose family_group_id equals
// headID, ordered by name. The head itself is not included.
func (s *SQLiteStore) ListHouseholdMembers(ctx context.Context, headID string) ([]models.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+memberColumns+" FROM members WHERE family_group_id = ? ORDER BY name", headID)
	if err != nil {
		return nil, fmt.Errorf("failed to list household members: %w", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		member, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan household member: %w", err)
		}
		members = append(members, *member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate household members: %w", err)
	}

	return members, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanMember decodes one member row. An annual_pledge that cannot be
// parsed as a decimal is a storage.ErrDataIntegrity.
func scanMember(row rowScanner) (*models.Member, error) {
	member := &models.Member{}
	var familyGroupID, pledge sql.NullString

	if err := row.Scan(
		&member.ID,
		&member.Email,
		&member.Name,
		&member.PasswordHash,
		&member.Role,
		&familyGroupID,
		&pledge,
		&member.CreatedAt,
	); err != nil {
		return nil, err
	}

	if familyGroupID.Valid {
		member.FamilyGroupID = familyGroupID.String
	}
	if pledge.Valid {
		d, err := decimal.NewFromString(pledge.String)
		if err != nil {
			return nil, fmt.Errorf("member %s annual_pledge %q: %w", member.ID, pledge.String, storage.ErrDataIntegrity)
		}
		member.AnnualPledge = &d
	}

	return member, nil
}
