package repository

import (
	"context"
	"fmt"

	"backendjobs/database"
	"backendjobs/models"
)

// TradeRepository implements the TradeRepository interface
type TradeRepository struct {
	q queryable
}

// NewTradeRepository creates a new trade repository
func NewTradeRepository(db *database.DB) *TradeRepository {
	return &TradeRepository{q: db.Pool}
}

func newTradeRepositoryWithTx(tx queryable) *TradeRepository {
	return &TradeRepository{q: tx}
}

// GetTradeHistoryByDays returns the net notional change per value date of an ISIN.
// Only active trades count; buys add notional, every other trade type removes it.
func (r *TradeRepository) GetTradeHistoryByDays(ctx context.Context, isinID string) ([]models.TradeHistoryEntry, error) {
	query := `
		SELECT
			value_date,
			SUM(CASE WHEN trade_type = $2 THEN notional ELSE -notional END) AS net_notional
		FROM trades
		WHERE isin_id = $1
		  AND tran_status = $3
		GROUP BY value_date
		ORDER BY value_date ASC
	`

	rows, err := r.q.Query(ctx, query, isinID, models.TradeTypeBuy, models.TradeStatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to query trade history for ISIN %s: %w", isinID, err)
	}
	defer rows.Close()

	var history []models.TradeHistoryEntry
	for rows.Next() {
		var entry models.TradeHistoryEntry
		if err := rows.Scan(&entry.ValueDate, &entry.NetNotional); err != nil {
			return nil, fmt.Errorf("failed to scan trade history: %w", err)
		}
		history = append(history, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade history: %w", err)
	}

	return history, nil
}

// GetAggregatedSubscriptions sums the buy subscriptions of a case per ISIN,
// dates and counterparty so each group can be booked as one trade
func (r *TradeRepository) GetAggregatedSubscriptions(ctx context.Context, caseID string) ([]*models.Trade, error) {
	query := `
		SELECT
			isin_id,
			trade_date,
			value_date,
			SUM(notional) AS notional,
			SUM(tran_fee) AS tran_fee,
			counterparty,
			reference,
			bank_investor,
			sales,
			trade_type
		FROM subscriptions
		WHERE case_id = $1
		  AND trade_type = $2
		GROUP BY isin_id, trade_date, value_date, counterparty, reference, bank_investor, sales, trade_type
		ORDER BY isin_id, value_date
	`

	rows, err := r.q.Query(ctx, query, caseID, models.TradeTypeBuy)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscriptions for case %s: %w", caseID, err)
	}
	defer rows.Close()

	var trades []*models.Trade
	for rows.Next() {
		var t models.Trade
		err := rows.Scan(
			&t.IsinID,
			&t.TradeDate,
			&t.ValueDate,
			&t.Notional,
			&t.TranFee,
			&t.Counterparty,
			&t.Reference,
			&t.BankInvestor,
			&t.Sales,
			&t.TradeType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		trades = append(trades, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating subscriptions: %w", err)
	}

	return trades, nil
}

// Create appends a trade to the ledger
func (r *TradeRepository) Create(ctx context.Context, trade *models.Trade) error {
	query := `
		INSERT INTO trades (
			id, isin_id, trade_date, value_date, notional, tran_fee, price_dirty,
			counterparty, reference, bank_investor, sales, trade_type, tran_status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.q.Exec(ctx, query,
		trade.ID,
		trade.IsinID,
		models.DateOf(trade.TradeDate),
		models.DateOf(trade.ValueDate),
		trade.Notional,
		trade.TranFee,
		trade.PriceDirty,
		trade.Counterparty,
		trade.Reference,
		trade.BankInvestor,
		trade.Sales,
		trade.TradeType,
		trade.TranStatus,
	)
	if err != nil {
		return fmt.Errorf("failed to create trade for ISIN %s: %w", trade.IsinID, err)
	}

	return nil
}
