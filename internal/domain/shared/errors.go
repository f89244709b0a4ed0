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
	ErrNotFound        = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists   = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput    = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthenticated = NewDomainError("UNAUTHENTICATED", "Authentication required")
	ErrForbidden       = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState    = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrInvalidVariant  = NewDomainError("INVALID_VARIANT", "Size or color is not offered for this product")
	ErrInvalidQuantity = NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	ErrEmptyCart       = NewDomainError("EMPTY_CART", "Cart has no items to convert into an order")
)
