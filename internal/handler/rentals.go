package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/lyb5737-lyb77/inventory-management/internal/apierror"
	"github.com/lyb5737-lyb77/inventory-management/internal/dto"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"
	"github.com/lyb5737-lyb77/inventory-management/internal/sheet"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type RentalsHandler struct{ svc service.RentalService }

func NewRentalsHandler(svc service.RentalService) *RentalsHandler {
	return &RentalsHandler{svc: svc}
}

func (h *RentalsHandler) List(c *gin.Context) {
	resp, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *RentalsHandler) Create(c *gin.Context) {
	var req dto.CreateRentalRequest
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

func (h *RentalsHandler) Update(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.UpdateRentalRequest
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

func (h *RentalsHandler) Delete(c *gin.Context) {
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

// Import godoc
// @Summary      Import the rental status spreadsheet
// @Description  Two title rows, headers on the third row. Unparseable amounts become 0 and are listed as warnings.
// @Tags         rentals
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file formData file true "xlsx file"
// @Success      200  {object} dto.RentalImportResponse
// @Router       /v1/rentals/import [post]
func (h *RentalsHandler) Import(c *gin.Context) {
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

	resp, err := h.svc.Import(c.Request.Context(), f)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Export streams every rental as 임대현황_YYYYMMDD.xlsx.
func (h *RentalsHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.svc.Export(c.Request.Context(), &buf); err != nil {
		respondError(c, err)
		return
	}
	name := sheet.RentalExportFileName(time.Now())
	c.Header("Content-Disposition",
		fmt.Sprintf(`attachment; filename="rentals.xlsx"; filename*=UTF-8''%s`, url.PathEscape(name)))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
