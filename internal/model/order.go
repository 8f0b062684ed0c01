package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	SideBuy  = "BUY"
	SideSell = "SELL"
)

// Order is an execution recorded against a contract. The order's tenant must
// equal the referenced contract's tenant; the repository enforces that at
// insert time.
type Order struct {
	ID            string          `db:"id" json:"id"`
	ContractID    string          `db:"contract_id" json:"contract_id"`
	Tenant        string          `db:"tenant" json:"-"`
	Side          string          `db:"side" json:"side"`
	ExecutedPrice decimal.Decimal `db:"executed_price" json:"executed_price"`
	ScenarioPct   decimal.Decimal `db:"scenario_pct" json:"scenario_pct"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`

	// Pair is filled by the listing join with the contract row.
	Pair string `db:"pair" json:"pair,omitempty"`
}
