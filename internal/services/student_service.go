package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/fitcoach/coaching-service/internal/cache"
	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"github.com/fitcoach/coaching-service/internal/utils"
)

// rosterCacheTTL bounds staleness of the roster display cache. Linkage
// changes invalidate eagerly; the TTL only covers missed invalidations.
const rosterCacheTTL = 2 * time.Minute

// StudentService exposes student coaching records and the trainer roster.
type StudentService interface {
	// Get returns the caller's own coaching record.
	Get(ctx context.Context, studentUserID string) (*models.Student, error)

	// GetForTrainer returns a linked student's coaching record on behalf
	// of the calling trainer.
	GetForTrainer(ctx context.Context, trainerUserID, studentUserID string) (*models.Student, error)

	// ListForTrainer returns the roster of students currently linked to
	// the calling trainer, with display summaries.
	ListForTrainer(ctx context.Context, trainerUserID string) ([]*models.StudentSummary, error)

	// UpdateTrainer switches or clears the caller's trainer link.
	UpdateTrainer(ctx context.Context, studentUserID string, req *UpdateTrainerRequest) (*models.Student, error)
}

type UpdateTrainerRequest struct {
	TrainerID *string `json:"trainer_id"`
}

type studentService struct {
	repo      repositories.Repository
	roles     RoleResolver
	cache     cache.CacheService
	logger    *slog.Logger
	validator *utils.Validator
}

func NewStudentService(
	repo repositories.Repository,
	roles RoleResolver,
	cacheService cache.CacheService,
	logger *slog.Logger,
	validator *utils.Validator,
) StudentService {
	return &studentService{
		repo:      repo,
		roles:     roles,
		cache:     cacheService,
		logger:    logger,
		validator: validator,
	}
}

func (s *studentService) Get(ctx context.Context, studentUserID string) (*models.Student, error) {
	role, err := s.roles.ResolveRole(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}
	return s.getRecord(ctx, studentUserID)
}

func (s *studentService) GetForTrainer(ctx context.Context, trainerUserID, studentUserID string) (*models.Student, error) {
	if err := s.roles.AuthorizeTrainerForStudent(ctx, trainerUserID, studentUserID); err != nil {
		return nil, err
	}
	return s.getRecord(ctx, studentUserID)
}

func (s *studentService) ListForTrainer(ctx context.Context, trainerUserID string) ([]*models.StudentSummary, error) {
	role, err := s.roles.ResolveRole(ctx, trainerUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleTrainer {
		return nil, ErrForbidden
	}

	key := cache.RosterKey(trainerUserID)
	var cached []*models.StudentSummary
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		s.logger.Debug("Roster cache hit", "trainer_id", trainerUserID)
		return cached, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("Roster cache read failed", "trainer_id", trainerUserID, "error", err)
	}

	roster, err := s.repo.Student().ListByTrainer(ctx, trainerUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	if err := s.cache.Set(ctx, key, roster, rosterCacheTTL); err != nil {
		s.logger.Warn("Roster cache write failed", "trainer_id", trainerUserID, "error", err)
	}

	return roster, nil
}

func (s *studentService) UpdateTrainer(ctx context.Context, studentUserID string, req *UpdateTrainerRequest) (*models.Student, error) {
	s.logger.Info("Updating trainer link", "student_id", studentUserID)

	role, err := s.roles.ResolveRole(ctx, studentUserID)
	if err != nil {
		return nil, err
	}
	if role != models.RoleStudent {
		return nil, ErrForbidden
	}

	current, err := s.getRecord(ctx, studentUserID)
	if err != nil {
		return nil, err
	}

	if req.TrainerID != nil {
		if err := s.verifyTrainer(ctx, *req.TrainerID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Student().UpdateTrainer(ctx, studentUserID, req.TrainerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentRecordNotFound
		}
		return nil, fmt.Errorf("failed to update trainer link: %w", err)
	}

	// Both the previous and the new trainer see a different roster now.
	s.invalidateRosters(ctx, current.TrainerID, req.TrainerID)

	return s.getRecord(ctx, studentUserID)
}

func (s *studentService) getRecord(ctx context.Context, studentUserID string) (*models.Student, error) {
	student, err := s.repo.Student().GetByUserID(ctx, studentUserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentRecordNotFound
		}
		return nil, fmt.Errorf("failed to get student record: %w", err)
	}
	return student, nil
}

func (s *studentService) verifyTrainer(ctx context.Context, trainerUserID string) error {
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

func (s *studentService) invalidateRosters(ctx context.Context, trainerIDs ...*string) {
	keys := make([]string, 0, len(trainerIDs))
	for _, id := range trainerIDs {
		if id != nil {
			keys = append(keys, cache.RosterKey(*id))
		}
	}
	if len(keys) == 0 {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("Roster cache invalidation failed", "error", err)
	}
}
