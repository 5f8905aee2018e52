package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mrtoldo/backend/internal/domain/shared"
	"github.com/mrtoldo/backend/internal/interfaces/http/dto"
	"github.com/mrtoldo/backend/internal/interfaces/http/middleware"
)

// BaseHandler writes the response envelope shared by every dashboard endpoint
type BaseHandler struct{}

func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// SuccessWithMeta answers a list page. pageSize is the size the repository
// actually applied, so the pagination strip matches the rows returned.
func (h *BaseHandler) SuccessWithMeta(c *gin.Context, data any, total int64, page, pageSize int) {
	c.JSON(http.StatusOK, dto.NewSuccessResponseWithMeta(data, total, page, pageSize))
}

func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error writes an error envelope tagged with the request id
func (h *BaseHandler) Error(c *gin.Context, status int, code, message string) {
	requestID := c.GetString(middleware.RequestIDContextKey)
	if requestID == "" {
		requestID = c.GetHeader(middleware.RequestIDHeader)
	}
	c.JSON(status, dto.NewErrorResponseWithRequestID(code, message, requestID))
}

func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// InvalidID answers a path id that is not a positive integer
func (h *BaseHandler) InvalidID(c *gin.Context) {
	h.BadRequest(c, "Invalid ID")
}

func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// HandleBindError answers a failed ShouldBind with field level details
func (h *BaseHandler) HandleBindError(c *gin.Context, err error) {
	middleware.HandleValidationError(c, err)
}

// HandleError sends domain errors with their own code and message.
// Anything else is logged upstream and reported as a bare 500.
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	var de *shared.DomainError
	if !errors.As(err, &de) {
		h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred")
		return
	}
	code := dto.APICode(de.Code)
	h.Error(c, dto.StatusOf(code), code, de.Message)
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// searchQuery accepts "search" as an alias of the bound "query" parameter
func searchQuery(c *gin.Context, bound string) string {
	if bound != "" {
		return bound
	}
	return c.Query("search")
}

// pageSizeOf mirrors the page size the repositories apply
func pageSizeOf(requested int) int {
	return shared.Filter{PageSize: requested}.Normalize().PageSize
}
