package repositories

// Repository aggregates the per-resource repositories behind a single
// dependency for the service layer.
type Repository interface {
	Profile() ProfileRepository
	Student() StudentRepository
	Anamnesis() AnamnesisRepository
	Measurement() MeasurementRepository
	DietPlan() DietPlanRepository
	Material() MaterialRepository
}
