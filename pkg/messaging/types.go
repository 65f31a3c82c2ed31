package messaging

import (
	"time"
)

// Topics published on the diagnostics bus.
const (
	TopicInteraction = "interaction"
	TopicEpisode     = "episode"
)

// Event is a diagnostic notification emitted by the environment. Events are
// observability only: no subscriber can influence control flow or reward.
type Event struct {
	Source    string    // environment/episode ID of the emitter
	Topic     string    // event category, see Topic constants
	Payload   any       // topic-specific content, e.g. core.InventoryReport
	Timestamp time.Time // when the event was emitted
}

// Bus routes events from the environment to registered subscribers.
type Bus interface {
	// Publish delivers an event to all subscribers.
	Publish(ev Event) error
	// Subscribe registers a subscriber channel under an ID.
	Subscribe(id string, ch chan<- Event) error
	// Unsubscribe removes a subscriber.
	Unsubscribe(id string) error
}
