package models

import (
	"time"
)

// BodyMeasurement is one entry in the append-only measurement log. Rows are
// never edited or deleted; a double submit produces two rows.
//
// MeasurementDate is an ISO 8601 date string so "newest first" ordering and
// the +15 day cadence work over lexically comparable values.
type BodyMeasurement struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	StudentUserID string `json:"student_user_id" gorm:"not null;size:255;index:idx_measurements_student_date"`

	Weight             *float64 `json:"weight"`
	WaistCircumference *float64 `json:"waist_circumference"`
	RightArmContracted *float64 `json:"right_arm_contracted"`
	RightArmRelaxed    *float64 `json:"right_arm_relaxed"`
	LeftArmContracted  *float64 `json:"left_arm_contracted"`
	LeftArmRelaxed     *float64 `json:"left_arm_relaxed"`
	ThighMidpoint      *float64 `json:"thigh_midpoint"`
	HipCircumference   *float64 `json:"hip_circumference"`

	MeasurementDate string `json:"measurement_date" gorm:"not null;size:10;index:idx_measurements_student_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (BodyMeasurement) TableName() string {
	return "body_measurements"
}

// MeasurementCadenceDays is the fixed interval between a measurement and the
// next scheduled one. Hardcoded business rule, not configurable per student.
const MeasurementCadenceDays = 15
