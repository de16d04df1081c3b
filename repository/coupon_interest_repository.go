package repository

import (
	"context"
	"fmt"

	"backendjobs/database"
	"backendjobs/models"
)

// CouponInterestRepository implements the CouponInterestRepository interface
type CouponInterestRepository struct {
	q queryable
}

// NewCouponInterestRepository creates a new coupon interest repository
func NewCouponInterestRepository(db *database.DB) *CouponInterestRepository {
	return &CouponInterestRepository{q: db.Pool}
}

func newCouponInterestRepositoryWithTx(tx queryable) *CouponInterestRepository {
	return &CouponInterestRepository{q: tx}
}

// GetByCase returns the rates of all ISINs of a case with the given type and status
func (r *CouponInterestRepository) GetByCase(ctx context.Context, caseID string, rateType string, status int) ([]*models.CouponInterest, error) {
	query := `
		SELECT ci.id, ci.isin_id, ci.interest_rate, ci.event_date, ci.type, ci.status
		FROM coupon_interests ci
		JOIN case_isins i ON i.id = ci.isin_id
		WHERE i.case_id = $1
		  AND ci.type = $2
		  AND ci.status = $3
		ORDER BY ci.event_date DESC
	`

	rows, err := r.q.Query(ctx, query, caseID, rateType, status)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupon interests for case %s: %w", caseID, err)
	}
	defer rows.Close()

	var interests []*models.CouponInterest
	for rows.Next() {
		var ci models.CouponInterest
		err := rows.Scan(
			&ci.ID,
			&ci.IsinID,
			&ci.InterestRate,
			&ci.EventDate,
			&ci.Type,
			&ci.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan coupon interest: %w", err)
		}
		interests = append(interests, &ci)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating coupon interests: %w", err)
	}

	return interests, nil
}

// UpdateStatus changes the lifecycle status of a rate
func (r *CouponInterestRepository) UpdateStatus(ctx context.Context, id string, status int) error {
	query := `
		UPDATE coupon_interests
		SET status = $1
		WHERE id = $2
	`

	result, err := r.q.Exec(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update status of coupon interest %s: %w", id, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("coupon interest %s not found", id)
	}

	return nil
}

// Create inserts a new rate
func (r *CouponInterestRepository) Create(ctx context.Context, interest *models.CouponInterest) error {
	query := `
		INSERT INTO coupon_interests (id, isin_id, interest_rate, event_date, type, status)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.q.Exec(ctx, query,
		interest.ID,
		interest.IsinID,
		interest.InterestRate,
		models.DateOf(interest.EventDate),
		interest.Type,
		interest.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to create coupon interest for ISIN %s: %w", interest.IsinID, err)
	}

	return nil
}
