package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error carrying a structured payload
// (offending product names, shortage rows, validation fields).
func (e *DomainError) WithDetails(details any) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
	}
}

// Common domain errors
var (
	ErrNotFound           = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists      = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput       = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState       = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrIncompletePortions = NewDomainError("INCOMPLETE_PORTIONS", "Every planned product needs a positive portion count")
	ErrMissingRecipe      = NewDomainError("MISSING_RECIPE", "Every planned product needs a recipe")
	ErrInsufficientStock  = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrListClosed         = NewDomainError("LIST_CLOSED", "Procurement list is closed")
	ErrTransactionFailure = NewDomainError("TRANSACTION_FAILURE", "Operation could not be applied atomically")
)
