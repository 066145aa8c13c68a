package handler

import (
	"net/http"

	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/middleware"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/gin-gonic/gin"
)

type OutboundHandler struct{ svc service.OutboundService }

func NewOutboundHandler(svc service.OutboundService) *OutboundHandler {
	return &OutboundHandler{svc: svc}
}

// Submit godoc
// @Summary      Request an outbound shipment
// @Description  Mails the warehouse manager, then records one OUT transaction per item.
// @Description  Nothing is recorded when the mail cannot be sent.
// @Tags         outbound
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.OutboundRequest true "outbound request"
// @Success      201  {object} dto.OutboundResponse
// @Failure      409  {object} apierror.APIError "insufficient stock or duplicate request"
// @Failure      502  {object} apierror.APIError "mail delivery failed"
// @Router       /v1/outbound [post]
func (h *OutboundHandler) Submit(c *gin.Context) {
	var req dto.OutboundRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), req, middleware.DisplayName(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}
