package handler

import (
	"net/http"

	"github.com/lyb5737-lyb77/inventory-management/internal/apierror"
	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/gin-gonic/gin"
)

type ItemsHandler struct {
	svc    service.ItemService
	ledger service.LedgerService
}

func NewItemsHandler(svc service.ItemService, ledger service.LedgerService) *ItemsHandler {
	return &ItemsHandler{svc: svc, ledger: ledger}
}

// List godoc
// @Summary      List items
// @Description  Items without a warehouse are listed under the default warehouse.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        warehouse query string false "warehouse name"
// @Param        group     query string false "product group"
// @Param        name      query string false "name substring"
// @Success      200  {array}  dto.ItemResponse
// @Router       /v1/items [get]
func (h *ItemsHandler) List(c *gin.Context) {
	var filter dto.ItemFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Get(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary      Create an item
// @Tags         items
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CreateItemRequest true "item"
// @Success      201  {object} dto.ItemResponse
// @Failure      422  {object} apierror.ValidationError
// @Router       /v1/items [post]
func (h *ItemsHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Update merges the given fields. A quantity here is an admin correction and
// is not written to the ledger.
func (h *ItemsHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ItemsHandler) Delete(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RecomputeStock godoc
// @Summary      Replay an item's ledger
// @Description  Read-only. Drift is stored minus recomputed.
// @Tags         items
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "item id"
// @Success      200  {object} dto.StockRecomputeResponse
// @Router       /v1/items/{id}/stock/recompute [get]
func (h *ItemsHandler) RecomputeStock(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.ledger.RecomputeStock(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
