package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrUserNotFound           = fmt.Errorf("user %w", ErrNotFound)
	ErrPurposeProfileNotFound = fmt.Errorf("purpose profile %w", ErrNotFound)
	ErrMatchNotFound          = fmt.Errorf("match %w", ErrNotFound)
	ErrInvalidInput           = errors.New("invalid input")
	ErrForbidden              = errors.New("forbidden")
	ErrInvalidToken           = errors.New("invalid token")
	ErrGenerationInProgress   = errors.New("match generation already in progress")
)
