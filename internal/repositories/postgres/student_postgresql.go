package postgres

import (
	"context"
	"fmt"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"gorm.io/gorm"
)

type StudentPostgreSQL struct {
	db *gorm.DB
}

func NewStudentPostgreSQL(db *gorm.DB) repositories.StudentRepository {
	return &StudentPostgreSQL{db: db}
}

func (s *StudentPostgreSQL) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	var student models.Student
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *StudentPostgreSQL) IsLinkedToTrainer(ctx context.Context, studentUserID, trainerUserID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("user_id = ? AND trainer_id = ?", studentUserID, trainerUserID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check trainer linkage: %w", err)
	}
	return count > 0, nil
}

func (s *StudentPostgreSQL) UpdateTrainer(ctx context.Context, studentUserID string, trainerUserID *string) error {
	result := s.db.WithContext(ctx).
		Model(&models.Student{}).
		Where("user_id = ?", studentUserID).
		Update("trainer_id", trainerUserID)
	if result.Error != nil {
		return fmt.Errorf("failed to update trainer link: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *StudentPostgreSQL) ListByTrainer(ctx context.Context, trainerUserID string) ([]*models.StudentSummary, error) {
	var summaries []*models.StudentSummary
	err := s.db.WithContext(ctx).Raw(`
		SELECT
			s.*,
			up.name,
			up.phone,
			(SELECT COUNT(*) FROM body_measurements bm WHERE bm.student_user_id = s.user_id) AS measurement_count,
			EXISTS (SELECT 1 FROM anamnesis a WHERE a.student_user_id = s.user_id AND a.is_completed) AS has_anamnesis,
			(SELECT COUNT(*) FROM diet_plans dp WHERE dp.student_user_id = s.user_id AND dp.is_active) AS active_diet_plans
		FROM students s
		JOIN user_profiles up ON s.user_id = up.user_id
		WHERE s.trainer_id = ?
		ORDER BY up.name`, trainerUserID).
		Scan(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list students for trainer: %w", err)
	}
	return summaries, nil
}
