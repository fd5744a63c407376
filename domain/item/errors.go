package item

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("item not found")

	ErrNameRequired  = NewValidationError("name required")
	ErrPriceRequired = NewValidationError("price required")
)

func NewValidationError(details string) error {
	return fmt.Errorf("%w: %s", ErrValidation, details)
}

func NewNotFoundError(id int64) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}
