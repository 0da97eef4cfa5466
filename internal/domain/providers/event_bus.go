package providers

import (
	"context"

	"github.com/campventure/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to events
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.CampEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.CampEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

// EventChannel constants for different event types
const (
	// EventChannelCampUpdates is the channel for all camp updates
	EventChannelCampUpdates = "camp:updates"

	// EventChannelCampPrefix is the prefix for camp-specific channels
	EventChannelCampPrefix = "camp:"

	// EventChannelStatePrefix is the prefix for per-state channels
	EventChannelStatePrefix = "state:"
)

// GetCampChannel returns the channel name for a specific camp
func GetCampChannel(campID string) string {
	return EventChannelCampPrefix + campID
}

// GetStateChannel returns the channel name for a state
func GetStateChannel(state string) string {
	return EventChannelStatePrefix + state
}
