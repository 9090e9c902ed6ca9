package checkout

import (
	"testing"

	"giftwrap_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAttempt() *Attempt {
	return NewAttempt("u1", "alice@test.com", ModeEmbedded,
		"Alice", "123 St", "555-0100", "",
		[]models.CartItem{item("Mug", 200, 1)})
}

func TestNewAttemptStartsValidating(t *testing.T) {
	a := newTestAttempt()
	assert.Equal(t, StateValidating, a.State)
	assert.NotEmpty(t, a.Token)
	assert.Equal(t, 200.0, a.Total)
}

func TestNewAttemptCopiesItems(t *testing.T) {
	src := []models.CartItem{item("Mug", 200, 1)}
	a := NewAttempt("u1", "a@b.c", ModeEmbedded, "Alice", "123 St", "555", "", src)
	a.Items[0].Qty = 9
	assert.Equal(t, 1, src[0].Qty)
}

func TestHappyPathTransitions(t *testing.T) {
	a := newTestAttempt()
	require.NoError(t, a.Transition(StateSubmitting))
	require.NoError(t, a.Transition(StateAwaitingPayment))
	require.NoError(t, a.Transition(StateSuccess))
	assert.True(t, a.Terminal())
}

func TestSubmitFailureReturnsToIdle(t *testing.T) {
	a := newTestAttempt()
	require.NoError(t, a.Transition(StateSubmitting))
	require.NoError(t, a.Transition(StateIdle))
	assert.False(t, a.Terminal())
}

func TestValidationFailureReturnsToIdle(t *testing.T) {
	a := newTestAttempt()
	require.NoError(t, a.Transition(StateIdle))
}

func TestIllegalTransitions(t *testing.T) {
	a := newTestAttempt()
	assert.ErrorIs(t, a.Transition(StateSuccess), ErrInvalidTransition)
	assert.ErrorIs(t, a.Transition(StateAwaitingPayment), ErrInvalidTransition)

	require.NoError(t, a.Transition(StateSubmitting))
	assert.ErrorIs(t, a.Transition(StateSuccess), ErrInvalidTransition)

	require.NoError(t, a.Transition(StateAwaitingPayment))
	assert.ErrorIs(t, a.Transition(StateSubmitting), ErrInvalidTransition)

	require.NoError(t, a.Transition(StateCancelled))
	// état terminal : plus aucune transition
	assert.ErrorIs(t, a.Transition(StateSuccess), ErrInvalidTransition)
	assert.ErrorIs(t, a.Transition(StateIdle), ErrInvalidTransition)
}

func TestBuildPendingOrder(t *testing.T) {
	a := newTestAttempt()
	order := BuildPendingOrder(a)

	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, a.Token, order.Token)
	assert.Equal(t, 200.0, order.Total)
	assert.Equal(t, "Alice", order.Receiver)

	// copie, pas une référence vivante
	order.Items[0].Qty = 42
	assert.Equal(t, 1, a.Items[0].Qty)
}
