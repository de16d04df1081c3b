package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeType classifies a trade against an instrument
type TradeType int

const (
	TradeTypeBuy    TradeType = 1
	TradeTypeSell   TradeType = 2
	TradeTypeCancel TradeType = 3
)

// Trade statuses as stored in trades.tran_status
const (
	TradeStatusActive = 1
)

// Trade is a notional-changing event against an instrument
type Trade struct {
	ID           string          `db:"id"`
	IsinID       string          `db:"isin_id"`
	TradeDate    time.Time       `db:"trade_date"`
	ValueDate    time.Time       `db:"value_date"`
	Notional     decimal.Decimal `db:"notional"`
	TranFee      decimal.Decimal `db:"tran_fee"`
	PriceDirty   decimal.Decimal `db:"price_dirty"`
	Counterparty string          `db:"counterparty"`
	Reference    string          `db:"reference"`
	BankInvestor string          `db:"bank_investor"`
	Sales        *string         `db:"sales"`
	TradeType    TradeType       `db:"trade_type"`
	TranStatus   int             `db:"tran_status"`
}

// TradeHistoryEntry is the net notional change of an instrument on one value date.
// Buys are positive, redemptions and cancellations negative.
type TradeHistoryEntry struct {
	ValueDate   time.Time       `db:"value_date"`
	NetNotional decimal.Decimal `db:"net_notional"`
}
