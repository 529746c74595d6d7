package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
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

// Common domain errors
var (
	ErrNotFound          = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists     = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrInvalidState      = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInsufficientStock = NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock available")
	ErrOptimisticLock    = NewDomainError("OPTIMISTIC_LOCK_FAILED", "Resource was modified by another transaction")

	// ErrLedgerOvershoot signals that the inventory ledger sum exceeds an item
	// quantity. This is never a user error: it means a movement was recorded
	// outside the locking discipline and must fail loudly.
	ErrLedgerOvershoot = NewDomainError("LEDGER_OVERSHOOT", "Inventory ledger exceeds item quantity")
)

// IsNotFound reports whether err is a NOT_FOUND domain error.
func IsNotFound(err error) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == ErrNotFound.Code
}
