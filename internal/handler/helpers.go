package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/lyb5737-lyb77/inventory-management/internal/apierror"
	"github.com/lyb5737-lyb77/inventory-management/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0 work on money fields.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails;
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("잘못된 JSON 형식입니다: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID parses raw as a UUID, writing 400 when it is not one.
func parseID(c *gin.Context, raw string) (uuid.UUID, bool) {
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("잘못된 ID입니다"))
		return uuid.Nil, false
	}
	return id, true
}

// paramID parses the :id path parameter.
func paramID(c *gin.Context) (uuid.UUID, bool) {
	return parseID(c, c.Param("id"))
}

// respondError maps service errors onto HTTP statuses. Store and unexpected
// errors never expose their text to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, service.ErrInvalidQuantity):
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, apierror.New("대상을 찾을 수 없습니다"))
	case errors.Is(err, service.ErrInsufficientStock):
		c.JSON(http.StatusConflict, apierror.New("재고가 부족합니다: "+err.Error()))
	case errors.Is(err, service.ErrDuplicateRequest):
		c.JSON(http.StatusConflict, apierror.New("이미 처리된 요청입니다"))
	case errors.Is(err, service.ErrNotificationFail):
		c.JSON(http.StatusBadGateway, apierror.New("메일 발송에 실패했습니다: "+err.Error()))
	case errors.Is(err, service.ErrStoreUnavailable):
		log.Error().Err(err).Str("path", c.FullPath()).Msg("store unavailable")
		c.JSON(http.StatusServiceUnavailable, apierror.New("저장소를 일시적으로 사용할 수 없습니다"))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, apierror.New("서버 내부 오류가 발생했습니다"))
	}
}
