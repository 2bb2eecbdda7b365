package statemachine

import (
	"context"
	"testing"

	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestTransition_AllStatusesReachable(t *testing.T) {
	ctx := context.Background()

	for _, from := range models.AllOrderStatuses {
		for _, to := range models.AllOrderStatuses {
			order := &models.Order{Status: from}
			ofsm := NewOrderFSM(order)

			err := ofsm.Transition(ctx, to)
			assert.NoError(t, err, "transition %s -> %s", from, to)
			assert.Equal(t, to, order.Status)
			assert.Equal(t, to, ofsm.Current())
		}
	}
}

func TestTransition_RejectsUnknownStatus(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusOpen}
	ofsm := NewOrderFSM(order)

	err := ofsm.Transition(context.Background(), "cancelled")
	assert.Error(t, err)
	assert.Equal(t, models.OrderStatusOpen, order.Status)
}

func TestTransition_SameStatusIsNoOp(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusProduction}
	ofsm := NewOrderFSM(order)

	err := ofsm.Transition(context.Background(), models.OrderStatusProduction)
	assert.NoError(t, err)
	assert.Equal(t, models.OrderStatusProduction, order.Status)
}

func TestCompleteAndReopen(t *testing.T) {
	ctx := context.Background()
	order := &models.Order{Status: models.OrderStatusShipping}
	ofsm := NewOrderFSM(order)

	assert.NoError(t, ofsm.Complete(ctx))
	assert.Equal(t, models.OrderStatusCompleted, order.Status)

	assert.NoError(t, ofsm.Reopen(ctx))
	assert.Equal(t, models.OrderStatusOpen, order.Status)
}

func TestCan(t *testing.T) {
	order := &models.Order{Status: models.OrderStatusOpen}
	ofsm := NewOrderFSM(order)

	assert.True(t, ofsm.Can(models.OrderStatusOpen))
	assert.True(t, ofsm.Can(models.OrderStatusCompleted))
	assert.False(t, ofsm.Can("cancelled"))
}
