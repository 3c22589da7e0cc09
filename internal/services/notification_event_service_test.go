package services

import (
	"context"
	"testing"

	"github.com/fitcoach/coaching-service/internal/events"
	"github.com/fitcoach/coaching-service/internal/models"
)

func TestNotificationEventService_PublishEvents(t *testing.T) {
	logger := testLogger()
	publisher := events.NewMockEventPublisher(logger)
	repo := newMockRepository()

	repo.student.On("GetByUserID", context.Background(), "student-1").Return(&models.Student{
		UserID:    "student-1",
		TrainerID: strPtr("trainer-1"),
	}, nil)

	service := NewNotificationEventService(repo, publisher, logger)
	ctx := context.Background()

	t.Run("MeasurementRecorded", func(t *testing.T) {
		publisher.ClearEvents()

		measurement := &models.BodyMeasurement{
			StudentUserID:   "student-1",
			MeasurementDate: "2025-03-01",
			Weight:          floatPtr(81.2),
		}
		if err := service.NotifyMeasurementRecorded(ctx, "student-1", measurement, "2025-03-16"); err != nil {
			t.Fatalf("Failed to publish measurement event: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}
		if published[0].Type != events.EventMeasurementRecorded {
			t.Errorf("Expected event type %s, got %s", events.EventMeasurementRecorded, published[0].Type)
		}

		data, ok := published[0].Data.(events.MeasurementRecordedEvent)
		if !ok {
			t.Fatal("Event data is not MeasurementRecordedEvent type")
		}
		if data.TrainerUserID != "trainer-1" {
			t.Errorf("Expected trainer 'trainer-1', got '%s'", data.TrainerUserID)
		}
		if data.NextDueDate != "2025-03-16" {
			t.Errorf("Expected next due date '2025-03-16', got '%s'", data.NextDueDate)
		}
	})

	t.Run("Event_Structure_Validation", func(t *testing.T) {
		publisher.ClearEvents()

		if err := service.NotifyAnamnesisCompleted(ctx, "student-1"); err != nil {
			t.Fatalf("Failed to publish anamnesis event: %v", err)
		}

		published := publisher.GetPublishedEvents()
		if len(published) != 1 {
			t.Fatalf("Expected 1 event, got %d", len(published))
		}

		event := published[0]
		if event.ID == "" {
			t.Error("Event ID should not be empty")
		}
		if event.Source != "coaching-service" {
			t.Errorf("Expected source 'coaching-service', got '%s'", event.Source)
		}
		if event.Version != "1.0" {
			t.Errorf("Expected version '1.0', got '%s'", event.Version)
		}
		if event.Timestamp.IsZero() {
			t.Error("Event timestamp should not be zero")
		}
	})

	t.Run("Unlinked_Student_Skipped", func(t *testing.T) {
		publisher.ClearEvents()

		unlinkedRepo := newMockRepository()
		unlinkedRepo.student.On("GetByUserID", ctx, "loner").Return(&models.Student{UserID: "loner"}, nil)
		unlinkedService := NewNotificationEventService(unlinkedRepo, publisher, logger)

		if err := unlinkedService.NotifyAnamnesisCompleted(ctx, "loner"); err != nil {
			t.Fatalf("Expected no error for unlinked student, got %v", err)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Expected no events for unlinked student")
		}
	})

	t.Run("MaterialAccessGranted_EmptyGrantSet", func(t *testing.T) {
		publisher.ClearEvents()

		material := &models.Material{ID: 5, TrainerUserID: "trainer-1", Title: "Mobility routine"}
		if err := service.NotifyMaterialAccessGranted(ctx, material, nil); err != nil {
			t.Fatalf("Expected no error for empty grant set, got %v", err)
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("Expected no events for empty grant set")
		}
	})
}
