package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"gorm.io/gorm"
)

// RoleResolver maps an authenticated identity to its role and verifies
// trainer-student linkage before any cross-identity operation.
//
// Every call re-reads current state. Roles are immutable but linkage is not:
// a student may switch trainers between any two requests, so linkage results
// must never be cached.
type RoleResolver interface {
	// ResolveRole returns the caller's role, or ErrProfileNotFound when
	// signup was never completed.
	ResolveRole(ctx context.Context, userID string) (models.UserRole, error)

	// AuthorizeTrainerForStudent succeeds only when the caller is a
	// trainer and the student is currently linked to them. A non-trainer
	// caller gets ErrForbidden; everything else that denies access comes
	// back as the single opaque ErrStudentNotLinked.
	AuthorizeTrainerForStudent(ctx context.Context, trainerUserID, studentUserID string) error
}

type roleResolver struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewRoleResolver(repo repositories.Repository, logger *slog.Logger) RoleResolver {
	return &roleResolver{
		repo:   repo,
		logger: logger,
	}
}

func (r *roleResolver) ResolveRole(ctx context.Context, userID string) (models.UserRole, error) {
	profile, err := r.repo.Profile().GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrProfileNotFound
		}
		return "", fmt.Errorf("failed to resolve role: %w", err)
	}
	return profile.Role, nil
}

func (r *roleResolver) AuthorizeTrainerForStudent(ctx context.Context, trainerUserID, studentUserID string) error {
	role, err := r.ResolveRole(ctx, trainerUserID)
	if err != nil {
		return err
	}
	if role != models.RoleTrainer {
		return ErrForbidden
	}

	linked, err := r.repo.Student().IsLinkedToTrainer(ctx, studentUserID, trainerUserID)
	if err != nil {
		return fmt.Errorf("failed to check trainer linkage: %w", err)
	}
	if !linked {
		r.logger.Warn("Trainer denied access to student",
			"trainer_id", trainerUserID,
			"student_id", studentUserID)
		return ErrStudentNotLinked
	}
	return nil
}
