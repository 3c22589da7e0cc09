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

// AnamnesisService manages the intake questionnaire. Students fill it in
// over multiple partial submissions; the linked trainer reads it.
type AnamnesisService interface {
	// Get returns the caller's own anamnesis.
	Get(ctx context.Context, studentUserID string) (*models.Anamnesis, error)

	// GetForTrainer returns a linked student's anamnesis on behalf of the
	// calling trainer.
	GetForTrainer(ctx context.Context, trainerUserID, studentUserID string) (*models.Anamnesis, error)

	// Upsert applies the submitted fields to the caller's anamnesis,
	// creating it on first submission. Absent fields keep their stored
	// values.
	Upsert(ctx context.Context, studentUserID string, req *UpsertAnamnesisRequest) (*models.Anamnesis, error)
}

// UpsertAnamnesisRequest mirrors the questionnaire. Only non-nil fields are
// written; the wizard sends one section at a time.
type UpsertAnamnesisRequest struct {
	Completed *bool `json:"completed,omitempty"`

	// General information
	Age                *int     `json:"age,omitempty" validate:"omitempty,gte=0,lte=130"`
	State              *string  `json:"state,omitempty"`
	City               *string  `json:"city,omitempty"`
	Whatsapp           *string  `json:"whatsapp,omitempty"`
	LeanWeight         *float64 `json:"lean_weight,omitempty" validate:"omitempty,gt=0"`
	BodyFatPercentage  *float64 `json:"body_fat_percentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	WaistCircumference *float64 `json:"waist_circumference,omitempty" validate:"omitempty,gt=0"`
	RightArmContracted *float64 `json:"right_arm_contracted,omitempty" validate:"omitempty,gt=0"`
	RightArmRelaxed    *float64 `json:"right_arm_relaxed,omitempty" validate:"omitempty,gt=0"`
	LeftArmContracted  *float64 `json:"left_arm_contracted,omitempty" validate:"omitempty,gt=0"`
	LeftArmRelaxed     *float64 `json:"left_arm_relaxed,omitempty" validate:"omitempty,gt=0"`
	ThighMidpoint      *float64 `json:"thigh_midpoint,omitempty" validate:"omitempty,gt=0"`
	HipCircumference   *float64 `json:"hip_circumference,omitempty" validate:"omitempty,gt=0"`

	// Routine and goals
	Profession          *string `json:"profession,omitempty"`
	WorkSchedule        *string `json:"work_schedule,omitempty"`
	StudiesSchedule     *string `json:"studies_schedule,omitempty"`
	PhysicalActivities  *string `json:"physical_activities,omitempty"`
	ActivitySchedule    *string `json:"activity_schedule,omitempty"`
	SleepSchedule       *string `json:"sleep_schedule,omitempty"`
	WakeSchedule        *string `json:"wake_schedule,omitempty"`
	BodyGoals           *string `json:"body_goals,omitempty"`
	ConsultationGoals   *string `json:"consultation_goals,omitempty"`
	DesiredBodyPhotoURL *string `json:"desired_body_photo_url,omitempty"`

	// Training
	NoRestDuration   *string `json:"no_rest_duration,omitempty"`
	HasPeriodization *bool   `json:"has_periodization,omitempty"`
	FeelsStagnation  *bool   `json:"feels_stagnation,omitempty"`
	MusclePumpLevel  *string `json:"muscle_pump_level,omitempty"`

	// Substances
	PrescribedMedications   *string `json:"prescribed_medications,omitempty"`
	LegalIllegalDrugs       *string `json:"legal_illegal_drugs,omitempty"`
	AnabolicsContraceptives *string `json:"anabolics_contraceptives,omitempty"`
	Nootropics              *string `json:"nootropics,omitempty"`
	Stimulants              *string `json:"stimulants,omitempty"`

	// Current diet
	FoodDiary             *string `json:"food_diary,omitempty"`
	BowelFrequency        *string `json:"bowel_frequency,omitempty"`
	DigestiveIssues       *string `json:"digestive_issues,omitempty"`
	FoodAvailability      *string `json:"food_availability,omitempty"`
	AllergiesIntolerances *string `json:"allergies_intolerances,omitempty"`

	// Neurological aspects
	MotivationLevel       *int `json:"motivation_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	ConcentrationLevel    *int `json:"concentration_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	MemoryLevel           *int `json:"memory_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	SexualInitiativeLevel *int `json:"sexual_initiative_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	PleasureLevel         *int `json:"pleasure_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	EmpathyLevel          *int `json:"empathy_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	SociabilityLevel      *int `json:"sociability_level,omitempty" validate:"omitempty,gte=1,lte=10"`
	VerbalFluencyLevel    *int `json:"verbal_fluency_level,omitempty" validate:"omitempty,gte=1,lte=10"`

	// Rest and sleep
	SleepOnsetTime    *string `json:"sleep_onset_time,omitempty"`
	WakesRested       *bool   `json:"wakes_rested,omitempty"`
	NightAwakenings   *int    `json:"night_awakenings,omitempty" validate:"omitempty,gte=0"`
	BreathingMethod   *string `json:"breathing_method,omitempty"`
	FatiguePeaks      *string `json:"fatigue_peaks,omitempty"`
	SmartwatchDataURL *string `json:"smartwatch_data_url,omitempty"`

	// Clinical history
	PreexistingDiseases   *string `json:"preexisting_diseases,omitempty"`
	Surgeries             *string `json:"surgeries,omitempty"`
	DentalTreatments      *string `json:"dental_treatments,omitempty"`
	MetalsImplants        *string `json:"metals_implants,omitempty"`
	CovidVaccinationDoses *int    `json:"covid_vaccination_doses,omitempty" validate:"omitempty,gte=0"`
	RecentHealthChanges   *string `json:"recent_health_changes,omitempty"`
	ClinicalExamsURL      *string `json:"clinical_exams_url,omitempty"`
}

type anamnesisService struct {
	repo      repositories.Repository
	roles     RoleResolver
	notifier  NotificationEventService
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewAnamnesisService(
	repo repositories.Repository,
	roles RoleResolver,
	notifier NotificationEventService,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) AnamnesisService {
	return &anamnesisService{
		repo:      repo,
		roles:     roles,
		notifier:  notifier,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *anamnesisService) Get(ctx context.Context, studentUserID string) (*models.Anamnesis, error) {
	role, err := s.roles.ResolveRole(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}
	return s.getRecord(ctx, studentUserID)
}

func (s *anamnesisService) GetForTrainer(ctx context.Context, trainerUserID, studentUserID string) (*models.Anamnesis, error) {
	if err := s.roles.AuthorizeTrainerForStudent(ctx, trainerUserID, studentUserID); err != nil {
		return nil, err
	}
	return s.getRecord(ctx, studentUserID)
}

func (s *anamnesisService) Upsert(ctx context.Context, studentUserID string, req *UpsertAnamnesisRequest) (*models.Anamnesis, error) {
	s.logger.Info("Upserting anamnesis", "student_id", studentUserID)

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

	existing, err := s.repo.Anamnesis().GetByStudent(ctx, studentUserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load anamnesis: %w", err)
	}

	wasCompleted := existing != nil && existing.IsCompleted

	fields := req.fields()
	if existing == nil {
		if err := s.repo.Anamnesis().CreateWithFields(ctx, studentUserID, fields); err != nil {
			return nil, fmt.Errorf("failed to create anamnesis: %w", err)
		}
	} else if len(fields) > 0 {
		if err := s.repo.Anamnesis().UpdateFields(ctx, studentUserID, fields); err != nil {
			return nil, fmt.Errorf("failed to update anamnesis: %w", err)
		}
	}

	updated, err := s.getRecord(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	if !wasCompleted && updated.IsCompleted {
		s.notifyCompleted(ctx, studentUserID)
	}

	return updated, nil
}

func (s *anamnesisService) getRecord(ctx context.Context, studentUserID string) (*models.Anamnesis, error) {
	record, err := s.repo.Anamnesis().GetByStudent(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAnamnesisNotFound
		}
		return nil, fmt.Errorf("failed to get anamnesis: %w", err)
	}
	return record, nil
}

// notifyCompleted tells the linked trainer the questionnaire is done and
// drops the trainer's stale roster summary. Neither failure fails the
// submission.
func (s *anamnesisService) notifyCompleted(ctx context.Context, studentUserID string) {
	if err := s.notifier.NotifyAnamnesisCompleted(ctx, studentUserID); err != nil {
		s.logger.Warn("Failed to publish anamnesis completed event",
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

func put[T any](fields map[string]interface{}, column string, value *T) {
	if value != nil {
		fields[column] = *value
	}
}

// fields maps the submitted values to their database columns.
func (r *UpsertAnamnesisRequest) fields() map[string]interface{} {
	fields := make(map[string]interface{})

	put(fields, "is_completed", r.Completed)

	put(fields, "age", r.Age)
	put(fields, "state", r.State)
	put(fields, "city", r.City)
	put(fields, "whatsapp", r.Whatsapp)
	put(fields, "lean_weight", r.LeanWeight)
	put(fields, "body_fat_percentage", r.BodyFatPercentage)
	put(fields, "waist_circumference", r.WaistCircumference)
	put(fields, "right_arm_contracted", r.RightArmContracted)
	put(fields, "right_arm_relaxed", r.RightArmRelaxed)
	put(fields, "left_arm_contracted", r.LeftArmContracted)
	put(fields, "left_arm_relaxed", r.LeftArmRelaxed)
	put(fields, "thigh_midpoint", r.ThighMidpoint)
	put(fields, "hip_circumference", r.HipCircumference)

	put(fields, "profession", r.Profession)
	put(fields, "work_schedule", r.WorkSchedule)
	put(fields, "studies_schedule", r.StudiesSchedule)
	put(fields, "physical_activities", r.PhysicalActivities)
	put(fields, "activity_schedule", r.ActivitySchedule)
	put(fields, "sleep_schedule", r.SleepSchedule)
	put(fields, "wake_schedule", r.WakeSchedule)
	put(fields, "body_goals", r.BodyGoals)
	put(fields, "consultation_goals", r.ConsultationGoals)
	put(fields, "desired_body_photo_url", r.DesiredBodyPhotoURL)

	put(fields, "no_rest_duration", r.NoRestDuration)
	put(fields, "has_periodization", r.HasPeriodization)
	put(fields, "feels_stagnation", r.FeelsStagnation)
	put(fields, "muscle_pump_level", r.MusclePumpLevel)

	put(fields, "prescribed_medications", r.PrescribedMedications)
	put(fields, "legal_illegal_drugs", r.LegalIllegalDrugs)
	put(fields, "anabolics_contraceptives", r.AnabolicsContraceptives)
	put(fields, "nootropics", r.Nootropics)
	put(fields, "stimulants", r.Stimulants)

	put(fields, "food_diary", r.FoodDiary)
	put(fields, "bowel_frequency", r.BowelFrequency)
	put(fields, "digestive_issues", r.DigestiveIssues)
	put(fields, "food_availability", r.FoodAvailability)
	put(fields, "allergies_intolerances", r.AllergiesIntolerances)

	put(fields, "motivation_level", r.MotivationLevel)
	put(fields, "concentration_level", r.ConcentrationLevel)
	put(fields, "memory_level", r.MemoryLevel)
	put(fields, "sexual_initiative_level", r.SexualInitiativeLevel)
	put(fields, "pleasure_level", r.PleasureLevel)
	put(fields, "empathy_level", r.EmpathyLevel)
	put(fields, "sociability_level", r.SociabilityLevel)
	put(fields, "verbal_fluency_level", r.VerbalFluencyLevel)

	put(fields, "sleep_onset_time", r.SleepOnsetTime)
	put(fields, "wakes_rested", r.WakesRested)
	put(fields, "night_awakenings", r.NightAwakenings)
	put(fields, "breathing_method", r.BreathingMethod)
	put(fields, "fatigue_peaks", r.FatiguePeaks)
	put(fields, "smartwatch_data_url", r.SmartwatchDataURL)

	put(fields, "preexisting_diseases", r.PreexistingDiseases)
	put(fields, "surgeries", r.Surgeries)
	put(fields, "dental_treatments", r.DentalTreatments)
	put(fields, "metals_implants", r.MetalsImplants)
	put(fields, "covid_vaccination_doses", r.CovidVaccinationDoses)
	put(fields, "recent_health_changes", r.RecentHealthChanges)
	put(fields, "clinical_exams_url", r.ClinicalExamsURL)

	return fields
}
