package handler

import (
	"net/http"

	"github.com/lyb5737-lyb77/inventory-management/internal/apierror"
	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/gin-gonic/gin"
)

// maxUploadBytes caps spreadsheet uploads.
const maxUploadBytes = 10 << 20

type IPHandler struct{ svc service.IPService }

func NewIPHandler(svc service.IPService) *IPHandler { return &IPHandler{svc: svc} }

func (h *IPHandler) ListRanges(c *gin.Context) {
	resp, err := h.svc.ListRanges(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IPHandler) CreateRange(c *gin.Context) {
	var req dto.CreateRangeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CreateRange(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// DeleteRange removes the range only; its assignment rows are kept.
func (h *IPHandler) DeleteRange(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteRange(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RangeRows godoc
// @Summary      Every address of a range with its assignment
// @Tags         ip
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "range id"
// @Success      200  {object} dto.RangeRowsResponse
// @Failure      400  {object} apierror.APIError "range too large"
// @Router       /v1/ip/ranges/{id}/rows [get]
func (h *IPHandler) RangeRows(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.DisplayRows(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IPHandler) ListDetails(c *gin.Context) {
	resp, err := h.svc.ListDetails(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveDetail godoc
// @Summary      Assign an address
// @Description  Upserts by (range_id, ip_address). Status is derived from department, user and usage.
// @Tags         ip
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.SaveDetailRequest true "assignment"
// @Success      200  {object} dto.DetailResponse
// @Router       /v1/ip/details [put]
func (h *IPHandler) SaveDetail(c *gin.Context) {
	var req dto.SaveDetailRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.SaveDetail(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IPHandler) ResetDetail(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ResetDetail(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *IPHandler) Search(c *gin.Context) {
	resp, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Import godoc
// @Summary      Import an IP inventory spreadsheet
// @Tags         ip
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "xlsx file"
// @Success      200  {object} dto.IPImportResponse
// @Router       /v1/ip/import [post]
func (h *IPHandler) Import(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("업로드할 파일이 없습니다"))
		return
	}
	if fh.Size > maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, apierror.New("파일이 너무 큽니다"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("파일을 열 수 없습니다"))
		return
	}
	defer f.Close()

	resp, err := h.svc.ImportSheet(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
