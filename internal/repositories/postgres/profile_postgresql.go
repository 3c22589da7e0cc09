package postgres

import (
	"context"
	"fmt"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"gorm.io/gorm"
)

type ProfilePostgreSQL struct {
	db *gorm.DB
}

func NewProfilePostgreSQL(db *gorm.DB) repositories.ProfileRepository {
	return &ProfilePostgreSQL{db: db}
}

func (p *ProfilePostgreSQL) CreateWithStudent(ctx context.Context, profile *models.UserProfile, student *models.Student) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create user profile: %w", err)
		}
		if student != nil {
			if err := tx.Create(student).Error; err != nil {
				return fmt.Errorf("failed to create student record: %w", err)
			}
		}
		return nil
	})
}

func (p *ProfilePostgreSQL) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := p.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (p *ProfilePostgreSQL) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	var count int64
	err := p.db.WithContext(ctx).
		Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check profile existence: %w", err)
	}
	return count > 0, nil
}

func (p *ProfilePostgreSQL) GetTrainers(ctx context.Context) ([]*models.UserProfile, error) {
	var trainers []*models.UserProfile
	err := p.db.WithContext(ctx).
		Where("role = ?", models.RoleTrainer).
		Order("name ASC").
		Find(&trainers).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trainers: %w", err)
	}
	return trainers, nil
}
