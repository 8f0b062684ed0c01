package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hedgeshield/hedgeshield/internal/model"
	"github.com/hedgeshield/hedgeshield/internal/pkg/apperrors"
	"github.com/hedgeshield/hedgeshield/internal/pkg/metrics"
)

const ordersListLimit = 200

// LedgerRepo is the persistence surface the ledger service writes and reads
// through. InsertOrder must evaluate the contract-ownership predicate and the
// insert as one atomic unit; it reports false when no contract with the given
// id belongs to the tenant.
type LedgerRepo interface {
	InsertContract(ctx context.Context, c *model.Contract) error
	InsertOrder(ctx context.Context, o *model.Order) (bool, error)
	ContractsByTenant(ctx context.Context, tenant string) ([]model.Contract, error)
	PortfolioByTenant(ctx context.Context, tenant string) ([]model.PortfolioSlice, error)
	OrdersByTenant(ctx context.Context, tenant string, limit int) ([]model.Order, error)
}

// LedgerService owns contract and order writes and the tenant-scoped read
// queries. All rows it touches are stamped with the caller's tenant.
type LedgerService struct {
	repo LedgerRepo
	now  func() time.Time
}

func NewLedgerService(repo LedgerRepo) *LedgerService {
	return &LedgerService{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *LedgerService) CreateContract(ctx context.Context, tenant string, req model.ContractCreate) (string, error) {
	if !req.Notional.IsPositive() {
		return "", apperrors.NewInvalidRequest("notional must be > 0")
	}
	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return "", apperrors.NewInvalidRequest("due_date must be YYYY-MM-DD")
	}

	c := &model.Contract{
		ID:        uuid.NewString(),
		Tenant:    tenant,
		BaseCcy:   normalizeCcy(req.Base),
		QuoteCcy:  normalizeCcy(req.Quote),
		Notional:  req.Notional,
		DueDate:   dueDate,
		Status:    model.StatusActive,
		CreatedAt: s.now(),
	}

	if err := s.repo.InsertContract(ctx, c); err != nil {
		metrics.ContractsTotal.WithLabelValues("error").Inc()
		return "", apperrors.NewStoreUnavailable(err)
	}
	metrics.ContractsTotal.WithLabelValues("created").Inc()
	return c.ID, nil
}

func (s *LedgerService) CreateOrder(ctx context.Context, tenant string, req model.OrderCreate) (string, error) {
	side, ok := normalizeSide(req.Side)
	if !ok {
		return "", apperrors.New(apperrors.ErrInvalidSide, "invalid_side", nil)
	}

	o := &model.Order{
		ID:            uuid.NewString(),
		ContractID:    req.ContractID,
		Tenant:        tenant,
		Side:          side,
		ExecutedPrice: req.ExecutedPrice,
		ScenarioPct:   req.ScenarioPct,
		CreatedAt:     s.now(),
	}

	inserted, err := s.repo.InsertOrder(ctx, o)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("error", side).Inc()
		return "", apperrors.NewStoreUnavailable(err)
	}
	if !inserted {
		// Covers both a missing contract and one owned by another tenant;
		// callers cannot tell the two apart.
		metrics.OrdersTotal.WithLabelValues("not_found", side).Inc()
		return "", apperrors.NewContractNotFound()
	}
	metrics.OrdersTotal.WithLabelValues("created", side).Inc()
	return o.ID, nil
}

func (s *LedgerService) ListContracts(ctx context.Context, tenant string) ([]model.ContractView, error) {
	rows, err := s.repo.ContractsByTenant(ctx, tenant)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}

	items := make([]model.ContractView, 0, len(rows))
	for _, c := range rows {
		// TODO: listing always scores with a zero scenario shock, so every
		// suggestion here is HOLD; needs a product call on a default shock
		// before changing it.
		sug := Suggest(c.Notional.InexactFloat64(), 0, c.DaysLeft)
		items = append(items, model.ContractView{
			Contract:   c,
			Pair:       c.BaseCcy + "/" + c.QuoteCcy,
			Suggestion: sug,
		})
	}
	return items, nil
}

func (s *LedgerService) Portfolio(ctx context.Context, tenant string) ([]model.PortfolioSlice, error) {
	rows, err := s.repo.PortfolioByTenant(ctx, tenant)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	// never nil: an empty tenant serializes as items:[]
	items := make([]model.PortfolioSlice, 0, len(rows))
	items = append(items, rows...)
	return items, nil
}

func (s *LedgerService) ListOrders(ctx context.Context, tenant string) ([]model.Order, error) {
	rows, err := s.repo.OrdersByTenant(ctx, tenant, ordersListLimit)
	if err != nil {
		return nil, apperrors.NewStoreUnavailable(err)
	}
	items := make([]model.Order, 0, len(rows))
	items = append(items, rows...)
	return items, nil
}

func normalizeCcy(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func normalizeSide(side string) (string, bool) {
	s := strings.ToUpper(strings.TrimSpace(side))
	if s != model.SideBuy && s != model.SideSell {
		return "", false
	}
	return s, true
}
