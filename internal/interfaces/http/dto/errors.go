package dto

import (
	"net/http"
	"strings"
)

// API error codes. Codes coming from a shared.DomainError are the domain
// code with the ERR_ prefix, so "NOT_FOUND" is sent as ERR_NOT_FOUND.
const (
	ErrCodeInternal        = "ERR_INTERNAL"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
	ErrCodeRateLimited     = "ERR_RATE_LIMITED"

	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"

	ErrCodeNotFound      = "ERR_NOT_FOUND"
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	ErrCodeInvalidInput  = "ERR_INVALID_INPUT"
	ErrCodeInvalidState  = "ERR_INVALID_STATE"
	ErrCodeConflict      = "ERR_CONCURRENCY_CONFLICT"

	ErrCodePDFGeneration   = "ERR_PDF_GENERATION"
	ErrCodeStorageDisabled = "ERR_STORAGE_DISABLED"
)

const codePrefix = "ERR_"

var statusByCode = map[string]int{
	ErrCodeInternal:        http.StatusInternalServerError,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:     http.StatusTooManyRequests,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,

	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusConflict,
	ErrCodeInvalidInput:  http.StatusBadRequest,
	// a customer with quotations, for one
	ErrCodeInvalidState: http.StatusUnprocessableEntity,
	ErrCodeConflict:     http.StatusConflict,

	ErrCodePDFGeneration:   http.StatusInternalServerError,
	ErrCodeStorageDisabled: http.StatusServiceUnavailable,
}

// APICode maps a domain error code to the code sent to clients
func APICode(domainCode string) string {
	if strings.HasPrefix(domainCode, codePrefix) {
		return domainCode
	}
	return codePrefix + domainCode
}

// StatusOf returns the HTTP status for an API code. Unknown codes are 500.
func StatusOf(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
