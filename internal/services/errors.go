package services

import (
	"errors"

	"github.com/tinashem/dukabook/internal/common"
)

var (
	// ErrValidation marks a request rejected before any write happened.
	ErrValidation = errors.New("validation error")

	// ErrInsufficientStock is returned when a sale would drive a product's
	// stock below zero.
	ErrInsufficientStock = errors.New("insufficient stock")
)

func isNotFound(err error) bool {
	return errors.Is(err, common.ErrNotFound)
}
