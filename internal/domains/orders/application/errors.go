package application

import (
	"errors"
	"fmt"

	"github.com/retailcore/backoffice/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
	// ErrIllegalTransition signals the transition table rejected the change.
	ErrIllegalTransition = errors.New("illegal transition")
	// ErrSynchronizationFailed signals the sale could not be created for a
	// fulfilled order; unless continue-on-error was requested the status
	// mutation has been rolled back.
	ErrSynchronizationFailed = errors.New("sale synchronization failed")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrIllegalTransition):
		return fmt.Errorf("%w: %w", ErrIllegalTransition, err)
	case errors.Is(err, domain.ErrEmptyCustomer),
		errors.Is(err, domain.ErrEmptyLines),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrUnknownStatus):
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
