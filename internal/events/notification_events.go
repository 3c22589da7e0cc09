package events

import (
	"time"

	"github.com/ThreeDotsLabs/watermill"
)

// EventType represents different types of notification events
type EventType string

const (
	// Student progress events, addressed to the linked trainer
	EventMeasurementRecorded EventType = "measurement.recorded"
	EventAnamnesisCompleted  EventType = "anamnesis.completed"

	// Coaching events, addressed to students
	EventDietPlanPublished     EventType = "dietplan.published"
	EventMaterialAccessGranted EventType = "material.access_granted"
)

// NotificationEvent is the envelope for all notification events
type NotificationEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

const (
	eventSource  = "coaching-service"
	eventVersion = "1.0"
)

// NewNotificationEvent wraps a payload in the standard envelope.
func NewNotificationEvent(eventType EventType, data interface{}) *NotificationEvent {
	return &NotificationEvent{
		ID:        watermill.NewUUID(),
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Source:    eventSource,
		Version:   eventVersion,
		Data:      data,
	}
}

// ===== EVENT PAYLOADS =====

type MeasurementRecordedEvent struct {
	StudentUserID   string   `json:"student_user_id"`
	TrainerUserID   string   `json:"trainer_user_id"`
	MeasurementDate string   `json:"measurement_date"`
	Weight          *float64 `json:"weight,omitempty"`
	NextDueDate     string   `json:"next_due_date,omitempty"`
}

type AnamnesisCompletedEvent struct {
	StudentUserID string `json:"student_user_id"`
	TrainerUserID string `json:"trainer_user_id"`
}

type DietPlanPublishedEvent struct {
	DietPlanID    uint   `json:"diet_plan_id"`
	Title         string `json:"title"`
	StudentUserID string `json:"student_user_id"`
	TrainerUserID string `json:"trainer_user_id"`
}

type MaterialAccessGrantedEvent struct {
	MaterialID     uint     `json:"material_id"`
	Title          string   `json:"title"`
	TrainerUserID  string   `json:"trainer_user_id"`
	StudentUserIDs []string `json:"student_user_ids"`
}
