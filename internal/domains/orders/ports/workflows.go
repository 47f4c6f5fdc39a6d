package ports

import "context"

// WorkflowOrchestrator executes the fulfillment transition, durably when a
// workflow engine is configured, inline otherwise.
type WorkflowOrchestrator interface {
	FulfillOrder(ctx context.Context, orderID string) (*TransitionResult, error)
}
