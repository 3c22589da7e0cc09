package models

import (
	"time"
)

// Material is a trainer-owned document reference. Linkage to the trainer
// gives a student nothing: visibility requires an explicit access grant row.
type Material struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	TrainerUserID string `json:"trainer_user_id" gorm:"not null;size:255;index"`

	Title       string  `json:"title" gorm:"not null;size:200"`
	Description *string `json:"description" gorm:"type:text"`

	FileURL  string `json:"file_url" gorm:"not null;size:500"`
	FileName string `json:"file_name" gorm:"not null;size:255"`
	FileSize *int64 `json:"file_size"`

	IsActive bool `json:"is_active" gorm:"default:true;index"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Populated for trainer reads only.
	GrantedStudents []string `json:"granted_students,omitempty" gorm:"-"`
}

func (Material) TableName() string {
	return "materials"
}

// MaterialAccessGrant joins a material to a student it is visible to,
// recording which trainer granted it. The grant set for a material is always
// replaced wholesale, never patched row by row.
type MaterialAccessGrant struct {
	ID               uint   `json:"id" gorm:"primaryKey"`
	MaterialID       uint   `json:"material_id" gorm:"not null;index:idx_grants_material_student,unique"`
	StudentUserID    string `json:"student_user_id" gorm:"not null;size:255;index:idx_grants_material_student,unique"`
	GrantedByTrainer string `json:"granted_by_trainer" gorm:"not null;size:255"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (MaterialAccessGrant) TableName() string {
	return "material_access_grants"
}
