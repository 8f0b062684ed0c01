package model

import "github.com/shopspring/decimal"

// ContractCreate represents the incoming JSON body for POST /contracts
type ContractCreate struct {
	Base     string          `json:"base" binding:"required,min=3,max=10"`
	Quote    string          `json:"quote" binding:"required,min=3,max=10"`
	Notional decimal.Decimal `json:"notional" binding:"required"`
	DueDate  string          `json:"due_date" binding:"required"` // YYYY-MM-DD
}

// OrderCreate represents the incoming JSON body for POST /orders
type OrderCreate struct {
	ContractID    string          `json:"contract_id" binding:"required"`
	Side          string          `json:"side" binding:"required"` // BUY or SELL
	ExecutedPrice decimal.Decimal `json:"executed_price" binding:"required"`
	ScenarioPct   decimal.Decimal `json:"scenario_pct" binding:"required"`
}

// ContractView is a contract annotated for the listing endpoint.
type ContractView struct {
	Contract
	Pair       string `json:"pair"`
	Suggestion string `json:"suggestion"`
}
