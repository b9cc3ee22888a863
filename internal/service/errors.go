package service

import "errors"

// Sentinel errors for the HTTP boundary to map onto status codes. Services
// wrap them with fmt.Errorf("%w: ...") so the message keeps the detail (for
// stock failures, the available quantity).
var (
	ErrValidation         = errors.New("validation")          // 400
	ErrNotFound           = errors.New("not found")           // 404
	ErrOutOfStock         = errors.New("out of stock")        // 400
	ErrInsufficientStock  = errors.New("insufficient stock")  // 400
	ErrEmptyCart          = errors.New("empty cart")          // 400
	ErrDuplicateEmail     = errors.New("email already taken") // 400
	ErrInvalidCredentials = errors.New("invalid credentials") // 401
)
