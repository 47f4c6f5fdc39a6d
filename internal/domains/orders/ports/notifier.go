package ports

import "context"

// Machine codes reported with every transition notification.
const (
	CodeTransitionApplied     = "transition_applied"
	CodeOrderNotFound         = "order_not_found"
	CodeIllegalTransition     = "illegal_transition"
	CodeSynchronizationFailed = "synchronization_failed"
)

// Notification is the success/failure callback payload exposed to the
// surrounding UI so it can refresh its own view.
type Notification struct {
	OrderID     string
	Code        string
	Message     string
	SaleCreated bool
}

// Notifier receives the outcome of every transition attempt.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}
