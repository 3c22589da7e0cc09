package repositories

import (
	"context"

	"github.com/fitcoach/coaching-service/internal/models"
)

// AnamnesisRepository stores the one-per-student intake questionnaire.
type AnamnesisRepository interface {
	GetByStudent(ctx context.Context, studentUserID string) (*models.Anamnesis, error)
	ExistsByStudent(ctx context.Context, studentUserID string) (bool, error)

	// CreateWithFields inserts the student's record and applies the first
	// submission's columns in one transaction.
	CreateWithFields(ctx context.Context, studentUserID string, fields map[string]interface{}) error

	// UpdateFields applies a partial patch: only the supplied columns
	// change, everything else keeps its stored value. UpdatedAt is
	// refreshed by the ORM.
	UpdateFields(ctx context.Context, studentUserID string, fields map[string]interface{}) error
}
