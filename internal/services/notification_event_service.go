package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/fitcoach/coaching-service/internal/events"
	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
)

// NotificationEventService publishes coaching notifications through the
// event bus. Events are fire-and-forget signals for downstream consumers;
// callers treat publish failures as non-fatal.
type NotificationEventService interface {
	// NotifyMeasurementRecorded tells the student's linked trainer a new
	// check-in arrived. No-op for unlinked students.
	NotifyMeasurementRecorded(ctx context.Context, studentUserID string, measurement *models.BodyMeasurement, nextDueDate string) error

	// NotifyAnamnesisCompleted tells the linked trainer the intake
	// questionnaire is finished. No-op for unlinked students.
	NotifyAnamnesisCompleted(ctx context.Context, studentUserID string) error

	// NotifyDietPlanPublished tells the student a new plan is available.
	NotifyDietPlanPublished(ctx context.Context, plan *models.DietPlan) error

	// NotifyMaterialAccessGranted tells newly granted students a material
	// was shared with them.
	NotifyMaterialAccessGranted(ctx context.Context, material *models.Material, studentUserIDs []string) error
}

type notificationEventService struct {
	repo           repositories.Repository
	eventPublisher events.EventPublisher
	logger         *slog.Logger
}

func NewNotificationEventService(
	repo repositories.Repository,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
) NotificationEventService {
	return &notificationEventService{
		repo:           repo,
		eventPublisher: eventPublisher,
		logger:         logger,
	}
}

func (s *notificationEventService) NotifyMeasurementRecorded(ctx context.Context, studentUserID string, measurement *models.BodyMeasurement, nextDueDate string) error {
	trainerID, err := s.linkedTrainer(ctx, studentUserID)
	if err != nil {
		return err
	}
	if trainerID == "" {
		s.logger.Debug("Skipping measurement event for unlinked student", "student_id", studentUserID)
		return nil
	}

	event := events.NewNotificationEvent(events.EventMeasurementRecorded, events.MeasurementRecordedEvent{
		StudentUserID:   studentUserID,
		TrainerUserID:   trainerID,
		MeasurementDate: measurement.MeasurementDate,
		Weight:          measurement.Weight,
		NextDueDate:     nextDueDate,
	})

	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyAnamnesisCompleted(ctx context.Context, studentUserID string) error {
	trainerID, err := s.linkedTrainer(ctx, studentUserID)
	if err != nil {
		return err
	}
	if trainerID == "" {
		s.logger.Debug("Skipping anamnesis event for unlinked student", "student_id", studentUserID)
		return nil
	}

	event := events.NewNotificationEvent(events.EventAnamnesisCompleted, events.AnamnesisCompletedEvent{
		StudentUserID: studentUserID,
		TrainerUserID: trainerID,
	})

	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyDietPlanPublished(ctx context.Context, plan *models.DietPlan) error {
	event := events.NewNotificationEvent(events.EventDietPlanPublished, events.DietPlanPublishedEvent{
		DietPlanID:    plan.ID,
		Title:         plan.Title,
		StudentUserID: plan.StudentUserID,
		TrainerUserID: plan.TrainerUserID,
	})

	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

func (s *notificationEventService) NotifyMaterialAccessGranted(ctx context.Context, material *models.Material, studentUserIDs []string) error {
	if len(studentUserIDs) == 0 {
		return nil
	}

	event := events.NewNotificationEvent(events.EventMaterialAccessGranted, events.MaterialAccessGrantedEvent{
		MaterialID:     material.ID,
		Title:          material.Title,
		TrainerUserID:  material.TrainerUserID,
		StudentUserIDs: studentUserIDs,
	})

	return s.eventPublisher.PublishNotificationEvent(ctx, event)
}

// linkedTrainer returns the student's current trainer ID, or empty when the
// student is unlinked or has no coaching record yet.
func (s *notificationEventService) linkedTrainer(ctx context.Context, studentUserID string) (string, error) {
	student, err := s.repo.Student().GetByUserID(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load student for notification: %w", err)
	}
	if student.TrainerID == nil {
		return "", nil
	}
	return *student.TrainerID, nil
}
