package domain

import "errors"

// Error taxonomy shared by the stores and the checkout pipeline.
// Callers branch with errors.Is; messages shown to the operator are
// built at the shell.
var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidQuantity        = errors.New("invalid quantity")
	ErrInsufficientStock      = errors.New("insufficient stock")
	ErrInvalidDiscountPercent = errors.New("discount percentage outside [0,100]")
	ErrMissingTransactionID   = errors.New("transaction id required for non-cash payment")
	ErrInvalidPaymentMethod   = errors.New("unknown payment method")
	ErrInvalidPhone           = errors.New("invalid customer phone")
	ErrDuplicateKey           = errors.New("key already exists")
	ErrEmptyCart              = errors.New("cart is empty")
	ErrPersistence            = errors.New("persistence failure")
	ErrInvalidCredentials     = errors.New("invalid username or password")
	ErrPermissionDenied       = errors.New("permission denied")
)
