package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/datatypes"

	"github.com/fitcoach/coaching-service/internal/cache"
	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"github.com/fitcoach/coaching-service/internal/utils"
)

// DietPlanService manages trainer-authored diet plans.
type DietPlanService interface {
	// Create publishes a plan for a student currently linked to the
	// calling trainer.
	Create(ctx context.Context, trainerUserID string, req *CreateDietPlanRequest) (*models.DietPlan, error)

	// List returns the plans visible to the caller: students see plans
	// addressed to them, trainers see plans they authored.
	List(ctx context.Context, userID string) (*DietPlanListResponse, error)
}

type CreateDietPlanRequest struct {
	StudentID   string         `json:"student_id" validate:"required"`
	Title       string         `json:"title" validate:"required,min=2,max=200"`
	Description *string        `json:"description,omitempty"`
	PlanContent datatypes.JSON `json:"plan_content" validate:"required"`
	IsActive    *bool          `json:"is_active,omitempty"`
}

type DietPlanListResponse struct {
	Plans []*models.DietPlan `json:"plans"`

	// Primary is the plan a student dashboard highlights. Nil for
	// trainers and for students with no plans.
	Primary *models.DietPlan `json:"primary,omitempty"`
}

type dietPlanService struct {
	repo      repositories.Repository
	roles     RoleResolver
	notifier  NotificationEventService
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewDietPlanService(
	repo repositories.Repository,
	roles RoleResolver,
	notifier NotificationEventService,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) DietPlanService {
	return &dietPlanService{
		repo:      repo,
		roles:     roles,
		notifier:  notifier,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *dietPlanService) Create(ctx context.Context, trainerUserID string, req *CreateDietPlanRequest) (*models.DietPlan, error) {
	s.logger.Info("Creating diet plan", "trainer_id", trainerUserID, "title", req.Title)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	if err := s.roles.AuthorizeTrainerForStudent(ctx, trainerUserID, req.StudentID); err != nil {
		return nil, err
	}

	plan := &models.DietPlan{
		StudentUserID: req.StudentID,
		TrainerUserID: trainerUserID,
		Title:         req.Title,
		Description:   req.Description,
		PlanContent:   req.PlanContent,
		IsActive:      true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}

	if err := s.repo.DietPlan().Create(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create diet plan: %w", err)
	}

	if err := s.notifier.NotifyDietPlanPublished(ctx, plan); err != nil {
		s.logger.Warn("Failed to publish diet plan event",
			"diet_plan_id", plan.ID,
			"error", err)
	}

	// Roster summaries count active plans per student.
	if err := s.cache.Delete(ctx, cache.RosterKey(trainerUserID)); err != nil {
		s.logger.Warn("Roster cache invalidation failed",
			"trainer_id", trainerUserID,
			"error", err)
	}

	return plan, nil
}

func (s *dietPlanService) List(ctx context.Context, userID string) (*DietPlanListResponse, error) {
	role, err := s.roles.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleStudent:
		plans, err := s.repo.DietPlan().GetByStudent(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list diet plans: %w", err)
		}
		return &DietPlanListResponse{
			Plans:   plans,
			Primary: models.PrimaryDietPlan(plans),
		}, nil
	case models.RoleTrainer:
		plans, err := s.repo.DietPlan().GetByTrainer(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list diet plans: %w", err)
		}
		return &DietPlanListResponse{Plans: plans}, nil
	default:
		return nil, ErrForbidden
	}
}
