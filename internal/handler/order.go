package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hedgeshield/hedgeshield/internal/middleware"
	"github.com/hedgeshield/hedgeshield/internal/model"
	"github.com/hedgeshield/hedgeshield/internal/pkg/apperrors"
	"github.com/hedgeshield/hedgeshield/internal/service"
)

type OrderHandler struct {
	svc *service.LedgerService
}

func NewOrderHandler(svc *service.LedgerService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

// Create records an execution against one of the tenant's contracts. The
// ledger rejects orders whose contract belongs to another tenant.
func (h *OrderHandler) Create(c *gin.Context) {
	tenant := c.GetString(middleware.ContextTenantKey)

	var req model.OrderCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidRequest(err.Error()))
		return
	}

	if _, err := h.svc.CreateOrder(c.Request.Context(), tenant, req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *OrderHandler) List(c *gin.Context) {
	tenant := c.GetString(middleware.ContextTenantKey)

	items, err := h.svc.ListOrders(c.Request.Context(), tenant)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
