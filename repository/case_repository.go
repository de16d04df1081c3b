package repository

import (
	"context"
	"errors"
	"fmt"

	"backendjobs/database"
	"backendjobs/models"

	"github.com/jackc/pgx/v5"
)

// CaseRepository implements the CaseRepository interface
type CaseRepository struct {
	q queryable
}

// NewCaseRepository creates a new case repository
func NewCaseRepository(db *database.DB) *CaseRepository {
	return &CaseRepository{q: db.Pool}
}

func newCaseRepositoryWithTx(tx queryable) *CaseRepository {
	return &CaseRepository{q: tx}
}

// GetCaseWithIsins retrieves a case in the given compartment status together with its ISINs
func (r *CaseRepository) GetCaseWithIsins(ctx context.Context, caseID string, compartmentStatus int) (*models.Case, error) {
	query := `
		SELECT id, issue_date, maturity_date
		FROM cases
		WHERE id = $1 AND compartment_status_id = $2
	`

	var c models.Case
	err := r.q.QueryRow(ctx, query, caseID, compartmentStatus).Scan(
		&c.ID,
		&c.IssueDate,
		&c.MaturityDate,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get case %s: %w", caseID, err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, isin_number
		FROM case_isins
		WHERE case_id = $1
		ORDER BY isin_number
	`, caseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get isins for case %s: %w", caseID, err)
	}
	defer rows.Close()

	var isins []models.CaseIsin
	for rows.Next() {
		var isin models.CaseIsin
		if err := rows.Scan(&isin.ID, &isin.IsinNumber); err != nil {
			return nil, fmt.Errorf("failed to scan isin: %w", err)
		}
		isins = append(isins, isin)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating isins: %w", err)
	}

	return models.NewCase(c.ID, c.IssueDate, c.MaturityDate, isins)
}

// UpdateCompartmentStatus sets the compartment status of a case
func (r *CaseRepository) UpdateCompartmentStatus(ctx context.Context, caseID string, status int) (int64, error) {
	query := `
		UPDATE cases
		SET compartment_status_id = $1
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, status, caseID)
	if err != nil {
		return 0, fmt.Errorf("failed to update compartment status of case %s: %w", caseID, err)
	}

	return result.RowsAffected(), nil
}
