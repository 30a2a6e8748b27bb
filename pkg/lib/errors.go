package lib

import (
	"errors"
	"fmt"

	"github.com/slok/habits/internal/model"
)

var (
	// ErrNotFound is returned when a catalog entry does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when a resource already exists.
	ErrAlreadyExists = errors.New("already exists")
	// ErrNotValid is returned on invalid input or configuration.
	ErrNotValid = errors.New("not valid")
	// ErrInsufficientCoins is returned when a debit would leave the coin
	// balance negative. It also matches [ErrNotValid].
	ErrInsufficientCoins = fmt.Errorf("insufficient coins: %w", ErrNotValid)
	// ErrClosed is returned when the store is used after [Store.Close].
	ErrClosed = errors.New("store closed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case isInternalError(err, model.ErrInsufficientCoins):
		return joinErrors(err, ErrInsufficientCoins)
	case isInternalError(err, model.ErrNotFound):
		return joinErrors(err, ErrNotFound)
	case isInternalError(err, model.ErrAlreadyExists):
		return joinErrors(err, ErrAlreadyExists)
	case isInternalError(err, model.ErrNotValid), isInternalError(err, ErrNotValid):
		return joinErrors(err, ErrNotValid)
	default:
		return err
	}
}

// isInternalError walks the wrapped error tree looking for target by identity.
func isInternalError(err, target error) bool {
	if err == nil {
		return false
	}
	if err == target {
		return true
	}

	switch u := err.(type) {
	case interface{ Unwrap() error }:
		return isInternalError(u.Unwrap(), target)
	case interface{ Unwrap() []error }:
		for _, e := range u.Unwrap() {
			if isInternalError(e, target) {
				return true
			}
		}
	}

	return false
}

func joinErrors(original, sentinel error) error {
	return &mappedError{original: original, sentinel: sentinel}
}

type mappedError struct {
	original error
	sentinel error
}

func (e *mappedError) Error() string { return e.original.Error() }

func (e *mappedError) Is(target error) bool {
	return target == e.sentinel || errors.Is(e.sentinel, target)
}

func (e *mappedError) Unwrap() error { return e.original }
