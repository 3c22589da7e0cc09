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

// MaterialService manages trainer-owned materials and their per-student
// access grants. A grant is the only thing that makes a material visible to
// a student; trainer linkage alone grants nothing.
type MaterialService interface {
	// Create registers a material and its initial grant set. Grants are
	// keyed on the student identity, not on current linkage, so a grant
	// survives the student switching trainers.
	Create(ctx context.Context, trainerUserID string, req *CreateMaterialRequest) (*models.Material, error)

	// List returns the materials visible to the caller: trainers see
	// their own materials with grant lists, students see materials
	// granted to them.
	List(ctx context.Context, userID string) ([]*models.Material, error)

	// ReplaceAccess swaps a material's entire grant set. Students missing
	// from the new set lose access immediately.
	ReplaceAccess(ctx context.Context, trainerUserID string, materialID uint, req *ReplaceAccessRequest) (*models.Material, error)
}

type CreateMaterialRequest struct {
	Title       string   `json:"title" validate:"required,min=2,max=200"`
	Description *string  `json:"description,omitempty"`
	FileURL     string   `json:"file_url" validate:"required,max=500"`
	FileName    string   `json:"file_name" validate:"required,max=255"`
	FileSize    *int64   `json:"file_size,omitempty" validate:"omitempty,gte=0"`
	StudentIDs  []string `json:"student_ids"`
}

type ReplaceAccessRequest struct {
	StudentIDs []string `json:"student_ids"`
}

type materialService struct {
	repo      repositories.Repository
	roles     RoleResolver
	notifier  NotificationEventService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewMaterialService(
	repo repositories.Repository,
	roles RoleResolver,
	notifier NotificationEventService,
	logger *slog.Logger,
	validator *utils.Validator,
) MaterialService {
	return &materialService{
		repo:      repo,
		roles:     roles,
		notifier:  notifier,
		logger:    logger,
		validator: validator,
	}
}

func (s *materialService) Create(ctx context.Context, trainerUserID string, req *CreateMaterialRequest) (*models.Material, error) {
	s.logger.Info("Creating material",
		"trainer_id", trainerUserID,
		"title", req.Title,
		"grant_count", len(req.StudentIDs))

	if err := s.validator.ValidateStruct(req); err != nil {
		return nil, err
	}

	role, err := s.roles.ResolveRole(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleTrainer {
		return nil, ErrForbidden
	}

	studentIDs := dedupe(req.StudentIDs)

	material := &models.Material{
		TrainerUserID: trainerUserID,
		Title:         req.Title,
		Description:   req.Description,
		FileURL:       req.FileURL,
		FileName:      req.FileName,
		FileSize:      req.FileSize,
		IsActive:      true,
	}

	if err := s.repo.Material().CreateWithGrants(ctx, material, studentIDs); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}
	material.GrantedStudents = studentIDs

	s.notifyGranted(ctx, material, studentIDs)

	return material, nil
}

func (s *materialService) List(ctx context.Context, userID string) ([]*models.Material, error) {
	role, err := s.roles.ResolveRole(ctx, userID)
	if err != nil {
		return nil, err
	}

	switch role {
	case models.RoleTrainer:
		return s.repo.Material().GetByTrainer(ctx, userID)
	case models.RoleStudent:
		return s.repo.Material().GetGrantedToStudent(ctx, userID)
	default:
		return nil, ErrForbidden
	}
}

func (s *materialService) ReplaceAccess(ctx context.Context, trainerUserID string, materialID uint, req *ReplaceAccessRequest) (*models.Material, error) {
	s.logger.Info("Replacing material access",
		"trainer_id", trainerUserID,
		"material_id", materialID,
		"grant_count", len(req.StudentIDs))

	role, err := s.roles.ResolveRole(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleTrainer {
		return nil, ErrForbidden
	}

	material, err := s.getOwned(ctx, trainerUserID, materialID)
	if err != nil {
		return nil, err
	}

	studentIDs := dedupe(req.StudentIDs)

	previous, err := s.repo.Material().GetGrants(ctx, materialID)
	if err != nil {
		return nil, fmt.Errorf("failed to load current grants: %w", err)
	}

	if err := s.repo.Material().ReplaceGrants(ctx, materialID, trainerUserID, studentIDs); err != nil {
		return nil, fmt.Errorf("failed to replace grants: %w", err)
	}
	material.GrantedStudents = studentIDs

	s.notifyGranted(ctx, material, newlyGranted(previous, studentIDs))

	return material, nil
}

// getOwned loads the material and checks ownership. A foreign material looks
// identical to a missing one so material IDs cannot be probed.
func (s *materialService) getOwned(ctx context.Context, trainerUserID string, materialID uint) (*models.Material, error) {
	material, err := s.repo.Material().GetByID(ctx, materialID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to get material: %w", err)
	}
	if material.TrainerUserID != trainerUserID {
		return nil, ErrMaterialNotFound
	}
	return material, nil
}

func (s *materialService) notifyGranted(ctx context.Context, material *models.Material, studentIDs []string) {
	if len(studentIDs) == 0 {
		return
	}
	if err := s.notifier.NotifyMaterialAccessGranted(ctx, material, studentIDs); err != nil {
		s.logger.Warn("Failed to publish material access event",
			"material_id", material.ID,
			"error", err)
	}
}

// newlyGranted returns the students present in the new set but absent from
// the previous grants. Only they get notified on a replace.
func newlyGranted(previous []*models.MaterialAccessGrant, next []string) []string {
	had := make(map[string]struct{}, len(previous))
	for _, grant := range previous {
		had[grant.StudentUserID] = struct{}{}
	}
	var added []string
	for _, studentID := range next {
		if _, ok := had[studentID]; !ok {
			added = append(added, studentID)
		}
	}
	return added
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
