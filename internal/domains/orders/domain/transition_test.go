package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCanTransition_Table(t *testing.T) {
	cases := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{"pending to fulfilled", StatusPending, StatusFulfilled, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"fulfilled to cancelled", StatusFulfilled, StatusCancelled, false},
		{"fulfilled to pending", StatusFulfilled, StatusPending, false},
		{"cancelled to fulfilled", StatusCancelled, StatusFulfilled, false},
		{"cancelled to pending", StatusCancelled, StatusPending, false},
		{"pending to pending", StatusPending, StatusPending, false},
		{"fulfilled to fulfilled", StatusFulfilled, StatusFulfilled, false},
		{"unknown source", Status("shipped"), StatusFulfilled, false},
		{"unknown target", StatusPending, Status("shipped"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, reason := CanTransition(tc.from, tc.to)
			require.Equal(t, tc.allowed, allowed)
			if !tc.allowed {
				require.NotEmpty(t, reason)
			}
		})
	}
}

func TestIsTerminal(t *testing.T) {
	require.False(t, IsTerminal(StatusPending))
	require.True(t, IsTerminal(StatusFulfilled))
	require.True(t, IsTerminal(StatusCancelled))
}

func TestTransitionTo_MutatesOnlyWhenLegal(t *testing.T) {
	order, err := NewOrder("o-1", "c-1", []LineItem{{ProductName: "vestido rojo", Quantity: 1}})
	require.NoError(t, err)
	require.Equal(t, StatusPending, order.Status)

	require.NoError(t, order.TransitionTo(StatusFulfilled))
	require.Equal(t, StatusFulfilled, order.Status)

	err = order.TransitionTo(StatusCancelled)
	require.ErrorIs(t, err, ErrIllegalTransition)
	require.Equal(t, StatusFulfilled, order.Status)
}

func TestAllowedTransitions_CopiesTable(t *testing.T) {
	allowed := AllowedTransitions(StatusPending)
	require.ElementsMatch(t, []Status{StatusFulfilled, StatusCancelled}, allowed)

	allowed[0] = StatusPending
	require.ElementsMatch(t, []Status{StatusFulfilled, StatusCancelled}, AllowedTransitions(StatusPending))
}
