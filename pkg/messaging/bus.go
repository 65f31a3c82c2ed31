package messaging

import (
	"fmt"
	"sync"
)

// SimpleBus implements the Bus interface.
// subscribers maps subscriber IDs to their receiving channels.
type SimpleBus struct {
	subscribers map[string]chan<- Event
	mu          sync.RWMutex
}

// NewBus creates a new diagnostics bus.
func NewBus() *SimpleBus {
	return &SimpleBus{
		subscribers: make(map[string]chan<- Event),
	}
}

// Publish delivers the event to every subscriber. Sends are non-blocking;
// a full subscriber channel is reported as an error but does not stop
// delivery to the remaining subscribers.
func (b *SimpleBus) Publish(ev Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var full []string
	for id, ch := range b.subscribers {
		select {
		case ch <- ev:
		default:
			full = append(full, id)
		}
	}
	if len(full) > 0 {
		return fmt.Errorf("dropped %s event for slow subscribers %v", ev.Topic, full)
	}
	return nil
}

// Subscribe registers a channel to receive events.
func (b *SimpleBus) Subscribe(id string, ch chan<- Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; exists {
		return fmt.Errorf("subscriber %s already registered", id)
	}

	b.subscribers[id] = ch
	return nil
}

// Unsubscribe removes a subscriber.
func (b *SimpleBus) Unsubscribe(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.subscribers[id]; !exists {
		return fmt.Errorf("subscriber %s not registered", id)
	}

	delete(b.subscribers, id)
	return nil
}

// Reset drops all subscribers.
func (b *SimpleBus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers = make(map[string]chan<- Event)
}
