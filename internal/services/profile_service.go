package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"github.com/fitcoach/coaching-service/internal/utils"
)

// ProfileService manages user profiles created after external signup.
type ProfileService interface {
	// Create registers the caller's profile. A profile can be created
	// exactly once per identity; the chosen role is permanent.
	Create(ctx context.Context, userID string, req *CreateProfileRequest) (*ProfileResponse, error)

	// Get returns the caller's own profile. Students also get their
	// coaching record attached.
	Get(ctx context.Context, userID string) (*ProfileResponse, error)

	// ListTrainers returns the trainer directory visible to any
	// authenticated user.
	ListTrainers(ctx context.Context) ([]*TrainerResponse, error)
}

type CreateProfileRequest struct {
	Name      string  `json:"name" validate:"required,min=2,max=100"`
	Role      string  `json:"role" validate:"required,user_role"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	TrainerID *string `json:"trainer_id,omitempty"`
}

type ProfileResponse struct {
	UserID    string          `json:"user_id"`
	Name      string          `json:"name"`
	Role      models.UserRole `json:"role"`
	Phone     *string         `json:"phone,omitempty"`
	Student   *models.Student `json:"student,omitempty"`
	CreatedAt string          `json:"created_at"`
}

type TrainerResponse struct {
	UserID string  `json:"user_id"`
	Name   string  `json:"name"`
	Phone  *string `json:"phone,omitempty"`
}

type profileService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *utils.Validator
}

func NewProfileService(repo repositories.Repository, logger *slog.Logger, validator *utils.Validator) ProfileService {
	return &profileService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *profileService) Create(ctx context.Context, userID string, req *CreateProfileRequest) (*ProfileResponse, error) {
	s.logger.Info("Creating profile", "user_id", userID, "role", req.Role)

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	exists, err := s.repo.Profile().ExistsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing profile: %w", err)
	}
	if exists {
		return nil, ErrProfileExists
	}

	role := models.UserRole(req.Role)

	if role == models.RoleTrainer && req.TrainerID != nil {
		return nil, NewValidationError("trainer_id", "trainers cannot be assigned a trainer", *req.TrainerID)
	}
	if req.TrainerID != nil {
		if err := s.verifyTrainer(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	profile := &models.UserProfile{
		UserID: userID,
		Name:   req.Name,
		Role:   role,
		Phone:  req.Phone,
	}

	var student *models.Student
	if role == models.RoleStudent {
		student = &models.Student{
			UserID:    userID,
			TrainerID: req.TrainerID,
		}
	}

	// Profile and coaching record land together or not at all.
	if err := s.repo.Profile().CreateWithStudent(ctx, profile, student); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.logger.Info("Profile created", "user_id", userID, "role", role)

	return s.buildResponse(profile, student), nil
}

func (s *profileService) Get(ctx context.Context, userID string) (*ProfileResponse, error) {
	profile, err := s.repo.Profile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	var student *models.Student
	if profile.IsStudent() {
		student, err = s.repo.Student().GetByUserID(ctx, userID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to get student record: %w", err)
		}
	}

	return s.buildResponse(profile, student), nil
}

func (s *profileService) ListTrainers(ctx context.Context) ([]*TrainerResponse, error) {
	trainers, err := s.repo.Profile().GetTrainers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}

	responses := make([]*TrainerResponse, 0, len(trainers))
	for _, trainer := range trainers {
		responses = append(responses, &TrainerResponse{
			UserID: trainer.UserID,
			Name:   trainer.Name,
			Phone:  trainer.Phone,
		})
	}
	return responses, nil
}

// verifyTrainer confirms the target identity exists and holds the trainer
// role. Both failures surface as ErrTrainerNotFound.
func (s *profileService) verifyTrainer(ctx context.Context, trainerUserID string) error {
	trainer, err := s.repo.Profile().GetByUserID(ctx, trainerUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTrainerNotFound
		}
		return fmt.Errorf("failed to verify trainer: %w", err)
	}
	if !trainer.IsTrainer() {
		return ErrTrainerNotFound
	}
	return nil
}

func (s *profileService) buildResponse(profile *models.UserProfile, student *models.Student) *ProfileResponse {
	return &ProfileResponse{
		UserID:    profile.UserID,
		Name:      profile.Name,
		Role:      profile.Role,
		Phone:     profile.Phone,
		Student:   student,
		CreatedAt: profile.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
