package postgres

import (
	"context"
	"fmt"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"github.com/fitcoach/coaching-service/internal/utils"
	"gorm.io/gorm"
)

type MeasurementPostgreSQL struct {
	db *gorm.DB
}

func NewMeasurementPostgreSQL(db *gorm.DB) repositories.MeasurementRepository {
	return &MeasurementPostgreSQL{db: db}
}

// CreateWithStudentRefresh inserts the measurement row and, when it carries
// a weight, refreshes the parent Student summary in the same transaction.
func (m *MeasurementPostgreSQL) CreateWithStudentRefresh(ctx context.Context, measurement *models.BodyMeasurement) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(measurement).Error; err != nil {
			return fmt.Errorf("failed to create measurement: %w", err)
		}

		if measurement.Weight == nil {
			return nil
		}

		nextDate, err := utils.AddDaysISO(measurement.MeasurementDate, models.MeasurementCadenceDays)
		if err != nil {
			return err
		}

		result := tx.Model(&models.Student{}).
			Where("user_id = ?", measurement.StudentUserID).
			Updates(map[string]interface{}{
				"current_weight":        *measurement.Weight,
				"last_measurement_date": measurement.MeasurementDate,
				"next_measurement_date": nextDate,
			})
		if result.Error != nil {
			return fmt.Errorf("failed to refresh student summary: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (m *MeasurementPostgreSQL) ListByStudent(ctx context.Context, studentUserID string) ([]*models.BodyMeasurement, error) {
	var measurements []*models.BodyMeasurement
	err := m.db.WithContext(ctx).
		Where("student_user_id = ?", studentUserID).
		Order("measurement_date DESC").
		Find(&measurements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list measurements: %w", err)
	}
	return measurements, nil
}

func (m *MeasurementPostgreSQL) CountByStudent(ctx context.Context, studentUserID string) (int64, error) {
	var count int64
	err := m.db.WithContext(ctx).
		Model(&models.BodyMeasurement{}).
		Where("student_user_id = ?", studentUserID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count measurements: %w", err)
	}
	return count, nil
}
