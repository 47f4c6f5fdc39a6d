package application

import (
	"errors"
	"fmt"

	"github.com/retailcore/backoffice/internal/domains/sales/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid sale input")
	// ErrSaleVoided signals a void of an already-voided sale.
	ErrSaleVoided = errors.New("sale already voided")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrSaleAlreadyVoided):
		return fmt.Errorf("%w: %w", ErrSaleVoided, err)
	case errors.Is(err, domain.ErrEmptyCustomer),
		errors.Is(err, domain.ErrEmptyLines):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
