package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/interfaces/http/dto"
	"github.com/mrtoldo/backend/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
)

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", shared.NotFound("Product not found"), http.StatusNotFound, dto.ErrCodeNotFound, "Product not found"},
		{"invalid input", shared.InvalidInput("Please select a customer."), http.StatusBadRequest, dto.ErrCodeInvalidInput, "Please select a customer."},
		{"invalid state", shared.NewDomainError("INVALID_STATE", "Customer has quotations"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState, "Customer has quotations"},
		{"storage disabled", shared.NewDomainError("STORAGE_DISABLED", "Image uploads are not configured"), http.StatusServiceUnavailable, dto.ErrCodeStorageDisabled, "Image uploads are not configured"},
		{"wrapped domain error", fmt.Errorf("saving: %w", shared.ErrAlreadyExists), http.StatusConflict, dto.ErrCodeAlreadyExists, shared.ErrAlreadyExists.Message},
		{"plain error hides details", errors.New("pq: connection refused"), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Set(middleware.RequestIDContextKey, "req-1")

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMsg, resp.Error.Message)
			assert.Equal(t, "req-1", resp.Error.RequestID)
		})
	}
}

func TestParseID(t *testing.T) {
	engine := gin.New()
	engine.GET("/:id", func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			c.Status(http.StatusBadRequest)
			return
		}
		c.String(http.StatusOK, "%d", id)
	})

	for path, want := range map[string]int{
		"/12":                   http.StatusOK,
		"/0":                    http.StatusBadRequest,
		"/-1":                   http.StatusBadRequest,
		"/abc":                  http.StatusBadRequest,
		"/99999999999999999999": http.StatusBadRequest,
	} {
		w := performRequest(engine, http.MethodGet, path, nil)
		assert.Equal(t, want, w.Code, path)
	}
}

func TestSearchQueryAlias(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/?search=acme", nil)

	assert.Equal(t, "acme", searchQuery(c, ""))
	assert.Equal(t, "taladro", searchQuery(c, "taladro"))
}

func TestPageSizeOf(t *testing.T) {
	assert.Equal(t, shared.DefaultPageSize, pageSizeOf(0))
	assert.Equal(t, 20, pageSizeOf(20))
	assert.Equal(t, shared.MaxPageSize, pageSizeOf(500))
}
