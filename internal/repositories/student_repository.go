package repositories

import (
	"context"

	"github.com/fitcoach/coaching-service/internal/models"
)

// StudentRepository handles student records and the student->trainer
// linkage. Linkage is always read fresh; nothing here caches it.
type StudentRepository interface {
	GetByUserID(ctx context.Context, userID string) (*models.Student, error)

	// IsLinkedToTrainer reports whether a Student row exists with this
	// user and this trainer. A missing student and an unlinked student are
	// indistinguishable.
	IsLinkedToTrainer(ctx context.Context, studentUserID, trainerUserID string) (bool, error)

	// UpdateTrainer sets or clears (nil) the student's trainer reference.
	UpdateTrainer(ctx context.Context, studentUserID string, trainerUserID *string) error

	// ListByTrainer returns the trainer's roster with per-student summary
	// counters, ordered by student name.
	ListByTrainer(ctx context.Context, trainerUserID string) ([]*models.StudentSummary, error)
}
