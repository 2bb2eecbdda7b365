package statemachine

import (
	"context"
	"fmt"

	"github.com/graficaflow/grafica-api/internal/models"
	"github.com/looplab/fsm"
)

// OrderFSM wraps an order with its production state machine.
//
// The shop moves jobs back and forth freely on the kanban board, so every
// status is reachable from every other one. The machine still rejects
// unknown statuses and keeps transition events observable.
type OrderFSM struct {
	order *models.Order
	fsm   *fsm.FSM
}

// NewOrderFSM creates a new order state machine
func NewOrderFSM(order *models.Order) *OrderFSM {
	ofsm := &OrderFSM{
		order: order,
	}

	all := models.AllOrderStatuses

	ofsm.fsm = fsm.NewFSM(
		order.Status,
		fsm.Events{
			{Name: eventFor(models.OrderStatusOpen), Src: all, Dst: models.OrderStatusOpen},
			{Name: eventFor(models.OrderStatusArt), Src: all, Dst: models.OrderStatusArt},
			{Name: eventFor(models.OrderStatusProduction), Src: all, Dst: models.OrderStatusProduction},
			{Name: eventFor(models.OrderStatusShipping), Src: all, Dst: models.OrderStatusShipping},
			{Name: eventFor(models.OrderStatusCompleted), Src: all, Dst: models.OrderStatusCompleted},
		},
		fsm.Callbacks{},
	)

	return ofsm
}

func eventFor(status string) string {
	return "to_" + status
}

// Transition moves the order to the target status
func (o *OrderFSM) Transition(ctx context.Context, target string) error {
	if !models.IsValidOrderStatus(target) {
		return fmt.Errorf("status de pedido inválido: %s", target)
	}

	if target == o.fsm.Current() {
		return nil
	}

	if err := o.fsm.Event(ctx, eventFor(target)); err != nil {
		return fmt.Errorf("failed to transition order to %s: %w", target, err)
	}

	o.order.Status = o.fsm.Current()
	return nil
}

// Complete transitions the order to the completed status
func (o *OrderFSM) Complete(ctx context.Context) error {
	return o.Transition(ctx, models.OrderStatusCompleted)
}

// Reopen transitions a completed order back to open
func (o *OrderFSM) Reopen(ctx context.Context) error {
	return o.Transition(ctx, models.OrderStatusOpen)
}

// Current returns the current state
func (o *OrderFSM) Current() string {
	return o.fsm.Current()
}

// Can checks if a transition to the target status is possible
func (o *OrderFSM) Can(target string) bool {
	if target == o.fsm.Current() {
		return true
	}
	return o.fsm.Can(eventFor(target))
}
