package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned when a resource is not valid.
	ErrNotValid = errors.New("not valid")
	// ErrInsufficientCoins is returned when a coin debit would leave the balance negative.
	ErrInsufficientCoins = fmt.Errorf("insufficient coins: %w", ErrNotValid)
)
