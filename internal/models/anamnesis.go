package models

import (
	"time"
)

// Anamnesis is the intake questionnaire: one row per student, every field
// optional. The wizard posts partial updates as the student moves through
// the sections; IsCompleted is the terminal flag that ends the flow.
type Anamnesis struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	StudentUserID string `json:"student_user_id" gorm:"uniqueIndex;not null;size:255"`
	IsCompleted   bool   `json:"is_completed" gorm:"default:false"`

	// General information
	Age                *int     `json:"age"`
	State              *string  `json:"state" gorm:"size:100"`
	City               *string  `json:"city" gorm:"size:100"`
	Whatsapp           *string  `json:"whatsapp" gorm:"size:30"`
	LeanWeight         *float64 `json:"lean_weight"`
	BodyFatPercentage  *float64 `json:"body_fat_percentage"`
	WaistCircumference *float64 `json:"waist_circumference"`
	RightArmContracted *float64 `json:"right_arm_contracted"`
	RightArmRelaxed    *float64 `json:"right_arm_relaxed"`
	LeftArmContracted  *float64 `json:"left_arm_contracted"`
	LeftArmRelaxed     *float64 `json:"left_arm_relaxed"`
	ThighMidpoint      *float64 `json:"thigh_midpoint"`
	HipCircumference   *float64 `json:"hip_circumference"`

	// Routine and goals
	Profession          *string `json:"profession" gorm:"size:150"`
	WorkSchedule        *string `json:"work_schedule" gorm:"size:150"`
	StudiesSchedule     *string `json:"studies_schedule" gorm:"size:150"`
	PhysicalActivities  *string `json:"physical_activities" gorm:"type:text"`
	ActivitySchedule    *string `json:"activity_schedule" gorm:"size:150"`
	SleepSchedule       *string `json:"sleep_schedule" gorm:"size:150"`
	WakeSchedule        *string `json:"wake_schedule" gorm:"size:150"`
	BodyGoals           *string `json:"body_goals" gorm:"type:text"`
	ConsultationGoals   *string `json:"consultation_goals" gorm:"type:text"`
	DesiredBodyPhotoURL *string `json:"desired_body_photo_url" gorm:"size:500"`

	// Training
	NoRestDuration   *string `json:"no_rest_duration" gorm:"size:100"`
	HasPeriodization *bool   `json:"has_periodization"`
	FeelsStagnation  *bool   `json:"feels_stagnation"`
	MusclePumpLevel  *string `json:"muscle_pump_level" gorm:"size:100"`

	// Substances
	PrescribedMedications   *string `json:"prescribed_medications" gorm:"type:text"`
	LegalIllegalDrugs       *string `json:"legal_illegal_drugs" gorm:"type:text"`
	AnabolicsContraceptives *string `json:"anabolics_contraceptives" gorm:"type:text"`
	Nootropics              *string `json:"nootropics" gorm:"type:text"`
	Stimulants              *string `json:"stimulants" gorm:"type:text"`

	// Current diet
	FoodDiary             *string `json:"food_diary" gorm:"type:text"`
	BowelFrequency        *string `json:"bowel_frequency" gorm:"size:100"`
	DigestiveIssues       *string `json:"digestive_issues" gorm:"type:text"`
	FoodAvailability      *string `json:"food_availability" gorm:"type:text"`
	AllergiesIntolerances *string `json:"allergies_intolerances" gorm:"type:text"`

	// Neurological aspects, 1-10 self assessments
	MotivationLevel       *int `json:"motivation_level"`
	ConcentrationLevel    *int `json:"concentration_level"`
	MemoryLevel           *int `json:"memory_level"`
	SexualInitiativeLevel *int `json:"sexual_initiative_level"`
	PleasureLevel         *int `json:"pleasure_level"`
	EmpathyLevel          *int `json:"empathy_level"`
	SociabilityLevel      *int `json:"sociability_level"`
	VerbalFluencyLevel    *int `json:"verbal_fluency_level"`

	// Rest and sleep
	SleepOnsetTime    *string `json:"sleep_onset_time" gorm:"size:100"`
	WakesRested       *bool   `json:"wakes_rested"`
	NightAwakenings   *int    `json:"night_awakenings"`
	BreathingMethod   *string `json:"breathing_method" gorm:"size:100"`
	FatiguePeaks      *string `json:"fatigue_peaks" gorm:"size:150"`
	SmartwatchDataURL *string `json:"smartwatch_data_url" gorm:"size:500"`

	// Clinical history
	PreexistingDiseases   *string `json:"preexisting_diseases" gorm:"type:text"`
	Surgeries             *string `json:"surgeries" gorm:"type:text"`
	DentalTreatments      *string `json:"dental_treatments" gorm:"type:text"`
	MetalsImplants        *string `json:"metals_implants" gorm:"type:text"`
	CovidVaccinationDoses *int    `json:"covid_vaccination_doses"`
	RecentHealthChanges   *string `json:"recent_health_changes" gorm:"type:text"`
	ClinicalExamsURL      *string `json:"clinical_exams_url" gorm:"size:500"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Anamnesis) TableName() string {
	return "anamnesis"
}
