package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/fitcoach/coaching-service/internal/cache"
	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"github.com/fitcoach/coaching-service/internal/utils"
)

// MeasurementService manages the append-only body measurement log and the
// 15-day check-in cadence derived from it.
type MeasurementService interface {
	// Create records a check-in for the calling student. Always inserts a
	// new row; resubmitting the same day produces two entries.
	Create(ctx context.Context, studentUserID string, req *CreateMeasurementRequest) (*models.BodyMeasurement, error)

	// List returns the caller's own measurement history, newest first.
	List(ctx context.Context, studentUserID string) ([]*models.BodyMeasurement, error)

	// ListForTrainer returns a linked student's history on behalf of the
	// calling trainer.
	ListForTrainer(ctx context.Context, trainerUserID, studentUserID string) ([]*models.BodyMeasurement, error)
}

type CreateMeasurementRequest struct {
	Weight             *float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
	WaistCircumference *float64 `json:"waist_circumference,omitempty" validate:"omitempty,gt=0"`
	RightArmContracted *float64 `json:"right_arm_contracted,omitempty" validate:"omitempty,gt=0"`
	RightArmRelaxed    *float64 `json:"right_arm_relaxed,omitempty" validate:"omitempty,gt=0"`
	LeftArmContracted  *float64 `json:"left_arm_contracted,omitempty" validate:"omitempty,gt=0"`
	LeftArmRelaxed     *float64 `json:"left_arm_relaxed,omitempty" validate:"omitempty,gt=0"`
	ThighMidpoint      *float64 `json:"thigh_midpoint,omitempty" validate:"omitempty,gt=0"`
	HipCircumference   *float64 `json:"hip_circumference,omitempty" validate:"omitempty,gt=0"`

	// Defaults to today when absent.
	MeasurementDate *string `json:"measurement_date,omitempty" validate:"omitempty,iso_date"`
}

type measurementService struct {
	repo      repositories.Repository
	roles     RoleResolver
	notifier  NotificationEventService
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewMeasurementService(
	repo repositories.Repository,
	roles RoleResolver,
	notifier NotificationEventService,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) MeasurementService {
	return &measurementService{
		repo:      repo,
		roles:     roles,
		notifier:  notifier,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *measurementService) Create(ctx context.Context, studentUserID string, req *CreateMeasurementRequest) (*models.BodyMeasurement, error) {
	s.logger.Info("Recording measurement", "student_id", studentUserID)

	role, err := s.roles.ResolveRole(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	date := utils.TodayISO()
	if req.MeasurementDate != nil {
		date = *req.MeasurementDate
	}

	measurement := &models.BodyMeasurement{
		StudentUserID:      studentUserID,
		Weight:             req.Weight,
		WaistCircumference: req.WaistCircumference,
		RightArmContracted: req.RightArmContracted,
		RightArmRelaxed:    req.RightArmRelaxed,
		LeftArmContracted:  req.LeftArmContracted,
		LeftArmRelaxed:     req.LeftArmRelaxed,
		ThighMidpoint:      req.ThighMidpoint,
		HipCircumference:   req.HipCircumference,
		MeasurementDate:    date,
	}

	if err := s.repo.Measurement().CreateWithStudentRefresh(ctx, measurement); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentRecordNotFound
		}
		return nil, fmt.Errorf("failed to record measurement: %w", err)
	}

	s.afterCreate(ctx, studentUserID, measurement)

	return measurement, nil
}

func (s *measurementService) List(ctx context.Context, studentUserID string) ([]*models.BodyMeasurement, error) {
	role, err := s.roles.ResolveRole(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}
	return s.repo.Measurement().ListByStudent(ctx, studentUserID)
}

func (s *measurementService) ListForTrainer(ctx context.Context, trainerUserID, studentUserID string) ([]*models.BodyMeasurement, error) {
	if err := s.roles.AuthorizeTrainerForStudent(ctx, trainerUserID, studentUserID); err != nil {
		return nil, err
	}
	return s.repo.Measurement().ListByStudent(ctx, studentUserID)
}

// afterCreate publishes the trainer notification and drops the trainer's
// stale roster summary. Neither failure rolls back the recorded measurement.
func (s *measurementService) afterCreate(ctx context.Context, studentUserID string, measurement *models.BodyMeasurement) {
	nextDue := ""
	if measurement.Weight != nil {
		if due, err := utils.AddDaysISO(measurement.MeasurementDate, models.MeasurementCadenceDays); err == nil {
			nextDue = due
		}
	}

	if err := s.notifier.NotifyMeasurementRecorded(ctx, studentUserID, measurement, nextDue); err != nil {
		s.logger.Warn("Failed to publish measurement event",
			"student_id", studentUserID,
			"error", err)
	}

	student, err := s.repo.Student().GetByUserID(ctx, studentUserID)
	if err != nil || student.TrainerID == nil {
		return
	}
	if err := s.cache.Delete(ctx, cache.RosterKey(*student.TrainerID)); err != nil {
		s.logger.Warn("Roster cache invalidation failed",
			"trainer_id", *student.TrainerID,
			"error", err)
	}
}
