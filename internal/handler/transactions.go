package handler

import (
	"net/http"

	"github.com/lyb5737-lyb77/inventory-management/internal/apierror"
	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/model"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/gin-gonic/gin"
)

type TransactionsHandler struct{ ledger service.LedgerService }

func NewTransactionsHandler(ledger service.LedgerService) *TransactionsHandler {
	return &TransactionsHandler{ledger: ledger}
}

// Record godoc
// @Summary      Record a stock movement
// @Description  OUT requests are rejected with 409 when the item holds fewer units than requested.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RecordTransactionRequest true "movement"
// @Success      201  {object} dto.TransactionResponse
// @Failure      409  {object} apierror.APIError
// @Router       /v1/transactions [post]
func (h *TransactionsHandler) Record(c *gin.Context) {
	var req dto.RecordTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	ctx := c.Request.Context()
	if req.Type == model.TxOut {
		id, ok := parseID(c, req.ItemID)
		if !ok {
			return
		}
		if _, err := h.ledger.EnsureAvailable(ctx, id, req.Quantity); err != nil {
			respondError(c, err)
			return
		}
	}
	resp, err := h.ledger.RecordTransaction(ctx, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *TransactionsHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.ledger.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Range godoc
// @Summary      Transactions dated within [start, end]
// @Tags         transactions
// @Produce      json
// @Security     BearerAuth
// @Param        start query string true "YYYY-MM-DD"
// @Param        end   query string true "YYYY-MM-DD"
// @Success      200  {array} dto.TransactionResponse
// @Router       /v1/transactions/range [get]
func (h *TransactionsHandler) Range(c *gin.Context) {
	resp, err := h.ledger.QueryTransactionsInRange(c.Request.Context(), c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *TransactionsHandler) Reconcile(c *gin.Context) {
	resp, err := h.ledger.Reconcile(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
