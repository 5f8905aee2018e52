package shared

// DomainError is a failure with a stable code for the API and a message
// that can be shown to the operator as is.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string { return e.Message }

// NewDomainError builds a coded error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Is matches any DomainError with the same code, so a specific
// NotFound("...") still satisfies errors.Is(err, ErrNotFound).
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

const (
	CodeNotFound      = "NOT_FOUND"
	CodeAlreadyExists = "ALREADY_EXISTS"
	CodeInvalidInput  = "INVALID_INPUT"
	CodeInvalidState  = "INVALID_STATE"
	CodeConflict      = "CONCURRENCY_CONFLICT"
)

var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrInvalidInput  = NewDomainError(CodeInvalidInput, "Invalid input provided")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
	ErrConflict      = NewDomainError(CodeConflict, "The record was changed by someone else, reload and try again")
)

// NotFound returns a NOT_FOUND error naming the missing resource
func NotFound(message string) *DomainError {
	return NewDomainError(CodeNotFound, message)
}

// InvalidInput returns an INVALID_INPUT error for a rejected field
func InvalidInput(message string) *DomainError {
	return NewDomainError(CodeInvalidInput, message)
}
