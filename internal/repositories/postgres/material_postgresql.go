package postgres

import (
	"context"
	"fmt"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"gorm.io/gorm"
)

type MaterialPostgreSQL struct {
	db *gorm.DB
}

func NewMaterialPostgreSQL(db *gorm.DB) repositories.MaterialRepository {
	return &MaterialPostgreSQL{db: db}
}

func (m *MaterialPostgreSQL) CreateWithGrants(ctx context.Context, material *models.Material, studentUserIDs []string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(material).Error; err != nil {
			return fmt.Errorf("failed to create material: %w", err)
		}
		return insertGrants(tx, material.ID, material.TrainerUserID, studentUserIDs)
	})
}

func (m *MaterialPostgreSQL) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	var material models.Material
	err := m.db.WithContext(ctx).First(&material, id).Error
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (m *MaterialPostgreSQL) GetByTrainer(ctx context.Context, trainerUserID string) ([]*models.Material, error) {
	var materials []*models.Material
	err := m.db.WithContext(ctx).
		Where("trainer_user_id = ? AND is_active", trainerUserID).
		Order("created_at DESC").
		Find(&materials).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list materials by trainer: %w", err)
	}

	for _, material := range materials {
		grants, err := m.GetGrants(ctx, material.ID)
		if err != nil {
			return nil, err
		}
		material.GrantedStudents = make([]string, 0, len(grants))
		for _, grant := range grants {
			material.GrantedStudents = append(material.GrantedStudents, grant.StudentUserID)
		}
	}

	return materials, nil
}

func (m *MaterialPostgreSQL) GetGrantedToStudent(ctx context.Context, studentUserID string) ([]*models.Material, error) {
	var materials []*models.Material
	err := m.db.WithContext(ctx).
		Joins("INNER JOIN material_access_grants mag ON mag.material_id = materials.id").
		Where("mag.student_user_id = ? AND materials.is_active", studentUserID).
		Order("materials.created_at DESC").
		Find(&materials).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list granted materials: %w", err)
	}
	return materials, nil
}

// ReplaceGrants swaps the material's entire grant set. Delete and re-insert
// run in one transaction so a failure can never strand the material with a
// half-written access list.
func (m *MaterialPostgreSQL) ReplaceGrants(ctx context.Context, materialID uint, trainerUserID string, studentUserIDs []string) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("material_id = ?", materialID).
			Delete(&models.MaterialAccessGrant{}).Error; err != nil {
			return fmt.Errorf("failed to clear material grants: %w", err)
		}
		return insertGrants(tx, materialID, trainerUserID, studentUserIDs)
	})
}

func (m *MaterialPostgreSQL) GetGrants(ctx context.Context, materialID uint) ([]*models.MaterialAccessGrant, error) {
	var grants []*models.MaterialAccessGrant
	err := m.db.WithContext(ctx).
		Where("material_id = ?", materialID).
		Find(&grants).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list material grants: %w", err)
	}
	return grants, nil
}

func insertGrants(tx *gorm.DB, materialID uint, trainerUserID string, studentUserIDs []string) error {
	if len(studentUserIDs) == 0 {
		return nil
	}
	grants := make([]models.MaterialAccessGrant, 0, len(studentUserIDs))
	for _, studentID := range studentUserIDs {
		grants = append(grants, models.MaterialAccessGrant{
			MaterialID:       materialID,
			StudentUserID:    studentID,
			GrantedByTrainer: trainerUserID,
		})
	}
	if err := tx.Create(&grants).Error; err != nil {
		return fmt.Errorf("failed to insert material grants: %w", err)
	}
	return nil
}
