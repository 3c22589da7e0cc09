package repositories

import (
	"context"

	"github.com/fitcoach/coaching-service/internal/models"
)

// DietPlanRepository stores trainer-authored diet plans. Insert-only: plans
// are retired via IsActive, never deleted.
type DietPlanRepository interface {
	Create(ctx context.Context, plan *models.DietPlan) error

	// GetByTrainer returns every plan the trainer authored, newest first.
	GetByTrainer(ctx context.Context, trainerUserID string) ([]*models.DietPlan, error)

	// GetByStudent returns every plan addressed to the student, newest
	// first.
	GetByStudent(ctx context.Context, studentUserID string) ([]*models.DietPlan, error)
}
