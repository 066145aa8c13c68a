package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	id, ok := parseID(c, "item-42")
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "잘못된 ID입니다")

	want := uuid.New()
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	id, ok = parseID(c, want.String())
	assert.True(t, ok)
	assert.Equal(t, want, id)
	assert.Empty(t, w.Body.String())
}
