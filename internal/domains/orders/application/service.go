package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/retailcore/backoffice/internal/domains/orders/domain"
	"github.com/retailcore/backoffice/internal/domains/orders/ports"
	"github.com/retailcore/backoffice/internal/shared/identity"
)

// Service is the centralized transition service: the single entry point for
// order status changes. It validates against the transition table, applies
// the mutation, synchronizes the sale on fulfillment, and rolls the status
// back when synchronization fails.
type Service struct {
	repo     ports.Repository
	sales    ports.SaleSynchronizer
	notifier ports.Notifier
	ids      identity.Generator
}

// NewService wires the order service with its collaborators. sales and
// notifier may be nil; fulfillment then skips sale creation or notification.
func NewService(repo ports.Repository, sales ports.SaleSynchronizer, notifier ports.Notifier, ids identity.Generator) *Service {
	return &Service{repo: repo, sales: sales, notifier: notifier, ids: ids}
}

// PlaceOrder creates a pending order from a checkout request.
func (s *Service) PlaceOrder(ctx context.Context, input ports.PlaceOrderInput) (*domain.Order, error) {
	order, err := domain.NewOrder(s.ids.NewID(), input.CustomerID, input.Lines)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// Transition moves an order to the target status. On pending→fulfilled it
// synchronizes the sale; if that fails the pre-transition status value is
// restored and ErrSynchronizationFailed returned, unless ContinueOnError was
// requested, in which case the fulfilled status is kept and the failure is
// reported through the notifier only. Every outcome is notified.
func (s *Service) Transition(ctx context.Context, input ports.TransitionInput) (*ports.TransitionResult, error) {
	order, err := s.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			s.notify(ctx, ports.Notification{
				OrderID: input.OrderID,
				Code:    ports.CodeOrderNotFound,
				Message: fmt.Sprintf("order %s not found", input.OrderID),
			})
		}
		return nil, err
	}
	previous := order.Status
	if allowed, reason := domain.CanTransition(previous, input.Target); !allowed {
		s.notify(ctx, ports.Notification{
			OrderID: order.ID,
			Code:    ports.CodeIllegalTransition,
			Message: reason,
		})
		return nil, fmt.Errorf("%w: %s", ErrIllegalTransition, reason)
	}
	if err := order.TransitionTo(input.Target); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	result := &ports.TransitionResult{Order: saved}

	if input.Target == domain.StatusFulfilled && s.sales != nil {
		created, syncErr := s.sales.Synchronize(ctx, saved)
		if syncErr != nil {
			if !input.ContinueOnError {
				if rbErr := s.rollbackStatus(ctx, saved, previous); rbErr != nil {
					syncErr = errors.Join(syncErr, rbErr)
				}
				s.notify(ctx, ports.Notification{
					OrderID: saved.ID,
					Code:    ports.CodeSynchronizationFailed,
					Message: fmt.Sprintf("sale synchronization failed, order kept %s: %v", previous, syncErr),
				})
				return nil, fmt.Errorf("%w: %w", ErrSynchronizationFailed, syncErr)
			}
			s.notify(ctx, ports.Notification{
				OrderID: saved.ID,
				Code:    ports.CodeSynchronizationFailed,
				Message: fmt.Sprintf("sale synchronization failed, fulfilled status kept on request: %v", syncErr),
			})
			return result, nil
		}
		result.SaleCreated = created
	}

	s.notify(ctx, ports.Notification{
		OrderID:     saved.ID,
		Code:        ports.CodeTransitionApplied,
		Message:     fmt.Sprintf("order %s is now %s", saved.ID, saved.Status),
		SaleCreated: result.SaleCreated,
	})
	return result, nil
}

// GetOrder loads a single order.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.GetByID(ctx, id)
}

// ListOrders exposes all orders.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// rollbackStatus restores the captured pre-transition value rather than
// toggling, so it stays correct even if other fields changed in between.
func (s *Service) rollbackStatus(ctx context.Context, order *domain.Order, previous domain.Status) error {
	rollback := order.Clone()
	rollback.Status = previous
	if _, err := s.repo.Save(ctx, rollback); err != nil {
		return fmt.Errorf("status rollback failed: %w", err)
	}
	return nil
}

func (s *Service) notify(ctx context.Context, n ports.Notification) {
	if s.notifier == nil {
		return
	}
	s.notifier.Notify(ctx, n)
}

var _ ports.Service = (*Service)(nil)
