package dto

import "github.com/mrtoldo/backend/internal/domain/shared"

// Response is the envelope of every JSON body. Exactly one of Data and Error is set.
type Response struct {
	Success bool       `json:"success"`
	Data    any        `json:"data,omitempty"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Meta    *Meta      `json:"meta,omitempty"`
}

type ErrorInfo struct {
	Code      string             `json:"code"`
	Message   string             `json:"message"`
	RequestID string             `json:"request_id,omitempty"`
	Details   []ValidationDetail `json:"details,omitempty"`
}

// ValidationDetail is the message for one rejected field
type ValidationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Meta describes a page of a dashboard table. Pages is the pagination
// strip shown under the table, Ellipsis marks a gap.
type Meta struct {
	Total      int64    `json:"total"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
	TotalPages int      `json:"total_pages"`
	Pages      []string `json:"pages"`
}

// newMeta clamps page and pageSize to at least 1
func newMeta(total int64, page, pageSize int) *Meta {
	page, pageSize = max(page, 1), max(pageSize, 1)
	totalPages := shared.TotalPages(total, pageSize)
	return &Meta{
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		Pages:      PaginationStrip(page, totalPages),
	}
}

func NewSuccessResponse(data any) Response {
	return Response{Success: true, Data: data}
}

// NewSuccessResponseWithMeta wraps one page of a listing
func NewSuccessResponseWithMeta(data any, total int64, page, pageSize int) Response {
	return Response{Success: true, Data: data, Meta: newMeta(total, page, pageSize)}
}

func NewErrorResponse(code, message string) Response {
	return NewErrorResponseWithRequestID(code, message, "")
}

// NewErrorResponseWithRequestID echoes the request id so users can quote it in support requests
func NewErrorResponseWithRequestID(code, message, requestID string) Response {
	return Response{Error: &ErrorInfo{Code: code, Message: message, RequestID: requestID}}
}

// NewValidationErrorResponse lists the field errors of a rejected body
func NewValidationErrorResponse(message, requestID string, details []ValidationDetail) Response {
	resp := NewErrorResponseWithRequestID(ErrCodeValidation, message, requestID)
	resp.Error.Details = details
	return resp
}
