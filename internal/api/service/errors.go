package service

import (
	"errors"

	"golang-trading-journal/internal/api/repository"
)

var (
	ErrNotFound   = repository.ErrNotFound
	ErrConflict   = repository.ErrDuplicate
	ErrValidation = errors.New("validation failed")
	ErrForbidden  = errors.New("forbidden")
)
