package postgres

import (
	"context"
	"fmt"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"gorm.io/gorm"
)

type AnamnesisPostgreSQL struct {
	db *gorm.DB
}

func NewAnamnesisPostgreSQL(db *gorm.DB) repositories.AnamnesisRepository {
	return &AnamnesisPostgreSQL{db: db}
}

func (a *AnamnesisPostgreSQL) GetByStudent(ctx context.Context, studentUserID string) (*models.Anamnesis, error) {
	var anamnesis models.Anamnesis
	err := a.db.WithContext(ctx).
		Where("student_user_id = ?", studentUserID).
		First(&anamnesis).Error
	if err != nil {
		return nil, err
	}
	return &anamnesis, nil
}

func (a *AnamnesisPostgreSQL) ExistsByStudent(ctx context.Context, studentUserID string) (bool, error) {
	var count int64
	err := a.db.WithContext(ctx).
		Model(&models.Anamnesis{}).
		Where("student_user_id = ?", studentUserID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check anamnesis existence: %w", err)
	}
	return count > 0, nil
}

func (a *AnamnesisPostgreSQL) CreateWithFields(ctx context.Context, studentUserID string, fields map[string]interface{}) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		anamnesis := &models.Anamnesis{StudentUserID: studentUserID}
		if err := tx.Create(anamnesis).Error; err != nil {
			return fmt.Errorf("failed to create anamnesis: %w", err)
		}
		if len(fields) == 0 {
			return nil
		}
		if err := tx.Model(&models.Anamnesis{}).
			Where("student_user_id = ?", studentUserID).
			Updates(fields).Error; err != nil {
			return fmt.Errorf("failed to apply initial fields: %w", err)
		}
		return nil
	})
}

func (a *AnamnesisPostgreSQL) UpdateFields(ctx context.Context, studentUserID string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	result := a.db.WithContext(ctx).
		Model(&models.Anamnesis{}).
		Where("student_user_id = ?", studentUserID).
		Updates(fields)
	if result.Error != nil {
		return fmt.Errorf("failed to update anamnesis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
