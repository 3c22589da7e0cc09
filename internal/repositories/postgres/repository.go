package postgres

import (
	"fmt"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"gorm.io/gorm"
)

type repository struct {
	profile     repositories.ProfileRepository
	student     repositories.StudentRepository
	anamnesis   repositories.AnamnesisRepository
	measurement repositories.MeasurementRepository
	dietPlan    repositories.DietPlanRepository
	material    repositories.MaterialRepository
}

// NewRepository wires every PostgreSQL repository over a shared gorm
// connection.
func NewRepository(db *gorm.DB) repositories.Repository {
	return &repository{
		profile:     NewProfilePostgreSQL(db),
		student:     NewStudentPostgreSQL(db),
		anamnesis:   NewAnamnesisPostgreSQL(db),
		measurement: NewMeasurementPostgreSQL(db),
		dietPlan:    NewDietPlanPostgreSQL(db),
		material:    NewMaterialPostgreSQL(db),
	}
}

func (r *repository) Profile() repositories.ProfileRepository         { return r.profile }
func (r *repository) Student() repositories.StudentRepository         { return r.student }
func (r *repository) Anamnesis() repositories.AnamnesisRepository     { return r.anamnesis }
func (r *repository) Measurement() repositories.MeasurementRepository { return r.measurement }
func (r *repository) DietPlan() repositories.DietPlanRepository       { return r.dietPlan }
func (r *repository) Material() repositories.MaterialRepository       { return r.material }

// AutoMigrate creates or updates the schema for every model the service
// owns.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.UserProfile{},
		&models.Student{},
		&models.Anamnesis{},
		&models.BodyMeasurement{},
		&models.DietPlan{},
		&models.Material{},
		&models.MaterialAccessGrant{},
	); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}
