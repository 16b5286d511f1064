package domain

import "errors"

var (
	// ErrNotFound is returned when a referenced entity does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrInvalidInput is returned when a caller-supplied value violates a precondition
	ErrInvalidInput = errors.New("invalid input")

	// ErrDuplicateName is returned when another product already uses the requested name
	ErrDuplicateName = errors.New("product name already in use")

	// ErrInsufficientStock is returned when an order requests more units than are in stock
	ErrInsufficientStock = errors.New("insufficient stock")
)
