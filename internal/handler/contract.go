package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hedgeshield/hedgeshield/internal/middleware"
	"github.com/hedgeshield/hedgeshield/internal/model"
	"github.com/hedgeshield/hedgeshield/internal/pkg/apperrors"
	"github.com/hedgeshield/hedgeshield/internal/service"
)

type ContractHandler struct {
	svc *service.LedgerService
}

func NewContractHandler(svc *service.LedgerService) *ContractHandler {
	return &ContractHandler{svc: svc}
}

// List returns the tenant's contracts, newest first, each annotated with
// days to maturity and a hedge suggestion.
func (h *ContractHandler) List(c *gin.Context) {
	tenant := c.GetString(middleware.ContextTenantKey)

	items, err := h.svc.ListContracts(c.Request.Context(), tenant)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *ContractHandler) Create(c *gin.Context) {
	tenant := c.GetString(middleware.ContextTenantKey)

	var req model.ContractCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidRequest(err.Error()))
		return
	}

	if _, err := h.svc.CreateContract(c.Request.Context(), tenant, req); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *ContractHandler) Portfolio(c *gin.Context) {
	tenant := c.GetString(middleware.ContextTenantKey)

	items, err := h.svc.Portfolio(c.Request.Context(), tenant)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}
