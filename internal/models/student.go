package models

import (
	"time"
)

// Student extends a student-role identity with coaching state. TrainerID is
// owned by the student: picking or dropping a trainer is always the
// student's call, never the trainer's.
//
// Measurement dates are ISO 8601 date strings ("2006-01-02") so they compare
// lexically, matching how the measurement log stores them.
type Student struct {
	ID        uint    `json:"id" gorm:"primaryKey"`
	UserID    string  `json:"user_id" gorm:"uniqueIndex;not null;size:255"`
	TrainerID *string `json:"trainer_id" gorm:"size:255;index"`

	Height        *float64 `json:"height"`
	InitialWeight *float64 `json:"initial_weight"`
	CurrentWeight *float64 `json:"current_weight"`

	LastMeasurementDate *string `json:"last_measurement_date" gorm:"size:10"`
	NextMeasurementDate *string `json:"next_measurement_date" gorm:"size:10"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Student) TableName() string {
	return "students"
}

// StudentSummary is the trainer roster row: the student record joined with
// profile info and per-student progress counters.
type StudentSummary struct {
	Student
	Name             string  `json:"name"`
	Phone            *string `json:"phone"`
	MeasurementCount int64   `json:"measurement_count"`
	HasAnamnesis     bool    `json:"has_anamnesis"`
	ActiveDietPlans  int64   `json:"active_diet_plans"`
}
