package application

import (
	"errors"
	"fmt"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid inventory input")
	// ErrMissingCategory signals an attempt to create a product from a
	// receipt line with no category. Hard precondition, the line is aborted.
	ErrMissingCategory = errors.New("missing category for new product")
	// ErrReceiptVoided signals a void of an already-voided receipt.
	ErrReceiptVoided = errors.New("receipt already voided")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrMissingCategory):
		return fmt.Errorf("%w: %w", ErrMissingCategory, err)
	case errors.Is(err, domain.ErrReceiptAlreadyVoided):
		return fmt.Errorf("%w: %w", ErrReceiptVoided, err)
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrEmptyReceipt),
		errors.Is(err, domain.ErrEmptyLineProductName):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
