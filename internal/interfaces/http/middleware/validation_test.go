package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/mrtoldo/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupValidator(t *testing.T) {
	SetupValidator()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type statusInput struct {
		Status string `json:"status" binding:"quotation_status"`
	}
	assert.NoError(t, v.Struct(statusInput{Status: "paid"}))
	assert.Error(t, v.Struct(statusInput{Status: "cancelled"}))
}

func TestNumericString(t *testing.T) {
	v := validator.New()
	v.SetTagName("binding")
	RegisterCustomValidators(v)

	type phoneInput struct {
		Phone string `json:"phone" binding:"numeric_string"`
	}

	tests := []struct {
		value string
		valid bool
	}{
		{"8112345678", true},
		{"012580001234567890", true},
		{"", false},
		{"81-1234", false},
		{"+52811", false},
		{"12a", false},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := v.Struct(phoneInput{Phone: tt.value})
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestHandleValidationError(t *testing.T) {
	type quotationInput struct {
		CustomerID int64  `json:"customer_id" binding:"required,gt=0"`
		Status     string `json:"status" binding:"required,quotation_status"`
		Items      []int  `json:"items" binding:"required,min=1"`
	}

	SetupValidator()
	router := gin.New()
	router.POST("/test", func(c *gin.Context) {
		var req quotationInput
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	})

	t.Run("field errors carry json names", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"status":"cancelled","items":[]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.Equal(t, "Missing Fields. Failed to save.", resp.Error.Message)

		messages := map[string]string{}
		for _, d := range resp.Error.Details {
			messages[d.Field] = d.Message
		}
		assert.Equal(t, "This field is required", messages["customer_id"])
		assert.Equal(t, "Please select a quotation status", messages["status"])
		assert.Equal(t, "Must have at least 1 item(s)", messages["items"])
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"customer_id":`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), dto.ErrCodeBadRequest)
	})

	t.Run("valid input", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(`{"customer_id":1,"status":"pending","items":[1]}`))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
