package models

import (
	"time"

	"gorm.io/datatypes"
)

// DietPlan is owned jointly by the authoring trainer and the recipient
// student. Plans are insert-only in the modeled flows; retired plans keep
// their row with IsActive=false.
type DietPlan struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	StudentUserID string `json:"student_user_id" gorm:"not null;size:255;index"`
	TrainerUserID string `json:"trainer_user_id" gorm:"not null;size:255;index"`

	Title       string  `json:"title" gorm:"not null;size:200"`
	Description *string `json:"description" gorm:"type:text"`

	// Opaque plan body (meals, macros, schedule) authored by the trainer UI.
	PlanContent datatypes.JSON `json:"plan_content" gorm:"type:jsonb;not null"`

	IsActive bool `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (DietPlan) TableName() string {
	return "diet_plans"
}

// PrimaryDietPlan picks the plan a student's dashboard shows: the first
// active plan, or the first plan at all when none is active. Multiple active
// plans are legal; this is a tie-break, not a stored constraint.
func PrimaryDietPlan(plans []*DietPlan) *DietPlan {
	for _, p := range plans {
		if p.IsActive {
			return p
		}
	}
	if len(plans) > 0 {
		return plans[0]
	}
	return nil
}
