package events

import (
	"sync"
	"time"
)

// Topics published by the services layer
const (
	TopicOrders    = "orders"
	TopicClients   = "clients"
	TopicProducts  = "products"
	TopicSupplies  = "supplies"
	TopicFinancial = "financial"
	TopicSettings  = "settings"
)

// Event is a change notification pushed to connected clients
type Event struct {
	Topic     string    `json:"topic"`
	Action    string    `json:"action"` // created, updated, deleted, status_changed, payment
	EntityID  string    `json:"entity_id"`
	Timestamp time.Time `json:"timestamp"`
}

// Broker fans change events out to SSE subscribers. Slow subscribers drop
// events rather than block publishers.
type Broker struct {
	mu   sync.RWMutex
	subs map[chan Event]struct{}
}

// NewBroker creates an empty broker
func NewBroker() *Broker {
	return &Broker{
		subs: make(map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber channel. Call the returned function
// to unsubscribe and release the channel.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if _, ok := b.subs[ch]; ok {
			delete(b.subs, ch)
			close(ch)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber without blocking
func (b *Broker) Publish(topic, action, entityID string) {
	event := Event{
		Topic:     topic,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now(),
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscriberCount returns the number of connected subscribers
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
