package postgres

import (
	"context"
	"fmt"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"gorm.io/gorm"
)

type DietPlanPostgreSQL struct {
	db *gorm.DB
}

func NewDietPlanPostgreSQL(db *gorm.DB) repositories.DietPlanRepository {
	return &DietPlanPostgreSQL{db: db}
}

func (d *DietPlanPostgreSQL) Create(ctx context.Context, plan *models.DietPlan) error {
	if err := d.db.WithContext(ctx).Create(plan).Error; err != nil {
		return fmt.Errorf("failed to create diet plan: %w", err)
	}
	return nil
}

func (d *DietPlanPostgreSQL) GetByTrainer(ctx context.Context, trainerUserID string) ([]*models.DietPlan, error) {
	var plans []*models.DietPlan
	err := d.db.WithContext(ctx).
		Where("trainer_user_id = ?", trainerUserID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list diet plans by trainer: %w", err)
	}
	return plans, nil
}

func (d *DietPlanPostgreSQL) GetByStudent(ctx context.Context, studentUserID string) ([]*models.DietPlan, error) {
	var plans []*models.DietPlan
	err := d.db.WithContext(ctx).
		Where("student_user_id = ?", studentUserID).
		Order("created_at DESC").
		Find(&plans).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list diet plans by student: %w", err)
	}
	return plans, nil
}
