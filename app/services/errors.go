package services

import (
	"errors"
	"fmt"

	"inkwell/app/repositories"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateUser      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidInput       = errors.New("invalid input")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrForbidden          = errors.New("forbidden")
	ErrWriteFailure       = errors.New("write failure")
)

func invalid(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidInput, err)
}

// readErr maps a repository read error: missing rows become ErrNotFound.
func readErr(what string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// writeErr maps a failed write onto ErrWriteFailure; a row that vanished mid-request is ErrNotFound.
func writeErr(what string, err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return fmt.Errorf("%w: %s: %w", ErrWriteFailure, what, err)
}
