package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const StatusActive = "active"

// Contract is an FX forward recorded for a tenant. Rows are write-once: the
// core never updates or deletes a contract after creation.
type Contract struct {
	ID        string          `db:"id" json:"id"`
	Tenant    string          `db:"tenant" json:"-"`
	BaseCcy   string          `db:"base_ccy" json:"base_ccy"`
	QuoteCcy  string          `db:"quote_ccy" json:"quote_ccy"`
	Notional  decimal.Decimal `db:"notional" json:"notional"`
	DueDate   time.Time       `db:"due_date" json:"due_date"`
	Status    string          `db:"status" json:"status"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`

	// DaysLeft is computed by the listing query, not stored.
	DaysLeft int `db:"days_left" json:"days_left"`
}

// PortfolioSlice is one currency pair's aggregate in the portfolio view.
type PortfolioSlice struct {
	Pair          string          `db:"pair" json:"pair"`
	Count         int             `db:"count" json:"count"`
	TotalNotional decimal.Decimal `db:"total_notional" json:"total_notional"`
}
