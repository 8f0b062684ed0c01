package repository

import (
	"context"

	"github.com/hedgeshield/hedgeshield/internal/model"
	"github.com/jmoiron/sqlx"
)

type PostgresLedgerRepo struct {
	db *sqlx.DB
}

func NewPostgresLedgerRepo(db *sqlx.DB) *PostgresLedgerRepo {
	repo := &PostgresLedgerRepo{db: db}
	_ = ensureSchema(context.Background(), db)
	return repo
}

func (r *PostgresLedgerRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *PostgresLedgerRepo) InsertContract(ctx context.Context, c *model.Contract) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contracts (id, tenant, base_ccy, quote_ccy, notional, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.Tenant, c.BaseCcy, c.QuoteCcy, c.Notional, c.DueDate, c.Status, c.CreatedAt)
	return err
}

// InsertOrder stamps the order with the contract's tenant via a conditional
// INSERT ... SELECT. The ownership predicate and the insert are one statement,
// so nothing can invalidate the check before the row lands. Returns false when
// the contract does not exist for the tenant.
func (r *PostgresLedgerRepo) InsertOrder(ctx context.Context, o *model.Order) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO orders (id, contract_id, tenant, side, executed_price, scenario_pct, created_at)
		SELECT $1, c.id, c.tenant, $4, $5, $6, $7
		FROM contracts c
		WHERE c.id = $2 AND c.tenant = $3
	`, o.ID, o.ContractID, o.Tenant, o.Side, o.ExecutedPrice, o.ScenarioPct, o.CreatedAt)
	if err != nil {
		return false, err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows == 1, nil
}

func (r *PostgresLedgerRepo) ContractsByTenant(ctx context.Context, tenant string) ([]model.Contract, error) {
	var rows []model.Contract
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, tenant, base_ccy, quote_ccy, notional, due_date, status, created_at,
		       (due_date - CURRENT_DATE)::int AS days_left
		FROM contracts
		WHERE tenant = $1
		ORDER BY created_at DESC
	`, tenant)
	return rows, err
}

func (r *PostgresLedgerRepo) PortfolioByTenant(ctx context.Context, tenant string) ([]model.PortfolioSlice, error) {
	var rows []model.PortfolioSlice
	err := r.db.SelectContext(ctx, &rows, `
		SELECT base_ccy || '/' || quote_ccy AS pair,
		       COUNT(*)::int AS count,
		       SUM(notional) AS total_notional
		FROM contracts
		WHERE tenant = $1
		GROUP BY base_ccy, quote_ccy
		ORDER BY total_notional DESC
	`, tenant)
	return rows, err
}

func (r *PostgresLedgerRepo) OrdersByTenant(ctx context.Context, tenant string, limit int) ([]model.Order, error) {
	if limit <= 0 {
		limit = 200
	}
	var rows []model.Order
	err := r.db.SelectContext(ctx, &rows, `
		SELECT o.id, o.contract_id, o.tenant, o.side, o.executed_price, o.scenario_pct, o.created_at,
		       c.base_ccy || '/' || c.quote_ccy AS pair
		FROM orders o
		JOIN contracts c ON c.id = o.contract_id
		WHERE o.tenant = $1
		ORDER BY o.created_at DESC
		LIMIT $2
	`, tenant, limit)
	return rows, err
}
