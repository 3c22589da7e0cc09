package repositories

import (
	"context"

	"github.com/fitcoach/coaching-service/internal/models"
)

// ProfileRepository handles the identity -> profile mapping. Profiles are
// written exactly once, at signup completion.
type ProfileRepository interface {
	// CreateWithStudent inserts the profile and, when student is non-nil,
	// its coaching record in one transaction. A failure on either insert
	// leaves neither row behind.
	CreateWithStudent(ctx context.Context, profile *models.UserProfile, student *models.Student) error

	GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
	ExistsByUserID(ctx context.Context, userID string) (bool, error)

	// GetTrainers lists every trainer profile, ordered by name. Backs the
	// public trainer directory students pick from.
	GetTrainers(ctx context.Context) ([]*models.UserProfile, error)
}
