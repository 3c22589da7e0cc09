package repositories

import (
	"context"

	"github.com/fitcoach/coaching-service/internal/models"
)

// MeasurementRepository stores the append-only measurement log.
type MeasurementRepository interface {
	// CreateWithStudentRefresh inserts the measurement and, when it
	// carries a weight, updates the parent Student's current weight and
	// measurement dates. Both writes happen in one transaction so readers
	// never see the log and the summary disagree.
	CreateWithStudentRefresh(ctx context.Context, measurement *models.BodyMeasurement) error

	// ListByStudent returns the student's measurements, newest first.
	ListByStudent(ctx context.Context, studentUserID string) ([]*models.BodyMeasurement, error)

	CountByStudent(ctx context.Context, studentUserID string) (int64, error)
}
