package entities

import (
	"time"

	"github.com/google/uuid"
)

// CampEventType represents the type of camp event
type CampEventType string

const (
	CampEventTypeCreated             CampEventType = "camp_created"
	CampEventTypeUpdated             CampEventType = "camp_updated"
	CampEventTypeDeleted             CampEventType = "camp_deleted"
	CampEventTypeAvailabilityChanged CampEventType = "availability_changed"
)

// CampEvent represents a real-time update event for a camp
type CampEvent struct {
	ID            string                 `json:"id"`
	CampID        string                 `json:"camp_id"`
	EventType     CampEventType          `json:"event_type"`
	Timestamp     time.Time              `json:"timestamp"`
	Location      Location               `json:"location"`
	ChangedFields map[string]interface{} `json:"changed_fields,omitempty"`
}

// NewCampEvent creates a new camp event
func NewCampEvent(campID string, eventType CampEventType, location Location, changedFields map[string]interface{}) *CampEvent {
	return &CampEvent{
		ID:            uuid.NewString(),
		CampID:        campID,
		EventType:     eventType,
		Timestamp:     time.Now(),
		Location:      location,
		ChangedFields: changedFields,
	}
}
