package entity

import "errors"

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidSymbol indicates that a ticker symbol failed validation
	ErrInvalidSymbol = errors.New("invalid symbol")
)
