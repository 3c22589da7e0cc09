package repositories

import (
	"context"

	"github.com/fitcoach/coaching-service/internal/models"
)

// MaterialRepository stores trainer materials and their access grants.
// Student visibility flows exclusively through grant rows.
type MaterialRepository interface {
	// CreateWithGrants inserts the material and one grant per selected
	// student in a single transaction.
	CreateWithGrants(ctx context.Context, material *models.Material, studentUserIDs []string) error

	GetByID(ctx context.Context, id uint) (*models.Material, error)

	// GetByTrainer returns the trainer's active materials, newest first,
	// with GrantedStudents populated.
	GetByTrainer(ctx context.Context, trainerUserID string) ([]*models.Material, error)

	// GetGrantedToStudent returns the active materials the student holds a
	// grant for, newest first.
	GetGrantedToStudent(ctx context.Context, studentUserID string) ([]*models.Material, error)

	// ReplaceGrants swaps the material's full grant set for the given
	// students: delete-all then insert-selected, inside one transaction.
	ReplaceGrants(ctx context.Context, materialID uint, trainerUserID string, studentUserIDs []string) error

	GetGrants(ctx context.Context, materialID uint) ([]*models.MaterialAccessGrant, error)
}
