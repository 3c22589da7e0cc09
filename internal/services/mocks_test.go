package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fitcoach/coaching-service/internal/cache"
	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
)

// ===== REPOSITORY MOCKS =====

type MockProfileRepository struct {
	mock.Mock
}

func (m *MockProfileRepository) CreateWithStudent(ctx context.Context, profile *models.UserProfile, student *models.Student) error {
	args := m.Called(ctx, profile, student)
	return args.Error(0)
}

func (m *MockProfileRepository) GetByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserProfile), args.Error(1)
}

func (m *MockProfileRepository) ExistsByUserID(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileRepository) GetTrainers(ctx context.Context) ([]*models.UserProfile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserProfile), args.Error(1)
}

type MockStudentRepository struct {
	mock.Mock
}

func (m *MockStudentRepository) GetByUserID(ctx context.Context, userID string) (*models.Student, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Student), args.Error(1)
}

func (m *MockStudentRepository) IsLinkedToTrainer(ctx context.Context, studentUserID, trainerUserID string) (bool, error) {
	args := m.Called(ctx, studentUserID, trainerUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockStudentRepository) UpdateTrainer(ctx context.Context, studentUserID string, trainerUserID *string) error {
	args := m.Called(ctx, studentUserID, trainerUserID)
	return args.Error(0)
}

func (m *MockStudentRepository) ListByTrainer(ctx context.Context, trainerUserID string) ([]*models.StudentSummary, error) {
	args := m.Called(ctx, trainerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.StudentSummary), args.Error(1)
}

type MockAnamnesisRepository struct {
	mock.Mock
}

func (m *MockAnamnesisRepository) GetByStudent(ctx context.Context, studentUserID string) (*models.Anamnesis, error) {
	args := m.Called(ctx, studentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Anamnesis), args.Error(1)
}

func (m *MockAnamnesisRepository) ExistsByStudent(ctx context.Context, studentUserID string) (bool, error) {
	args := m.Called(ctx, studentUserID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAnamnesisRepository) CreateWithFields(ctx context.Context, studentUserID string, fields map[string]interface{}) error {
	args := m.Called(ctx, studentUserID, fields)
	return args.Error(0)
}

func (m *MockAnamnesisRepository) UpdateFields(ctx context.Context, studentUserID string, fields map[string]interface{}) error {
	args := m.Called(ctx, studentUserID, fields)
	return args.Error(0)
}

type MockMeasurementRepository struct {
	mock.Mock
}

func (m *MockMeasurementRepository) CreateWithStudentRefresh(ctx context.Context, measurement *models.BodyMeasurement) error {
	args := m.Called(ctx, measurement)
	return args.Error(0)
}

func (m *MockMeasurementRepository) ListByStudent(ctx context.Context, studentUserID string) ([]*models.BodyMeasurement, error) {
	args := m.Called(ctx, studentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BodyMeasurement), args.Error(1)
}

func (m *MockMeasurementRepository) CountByStudent(ctx context.Context, studentUserID string) (int64, error) {
	args := m.Called(ctx, studentUserID)
	return args.Get(0).(int64), args.Error(1)
}

type MockDietPlanRepository struct {
	mock.Mock
}

func (m *MockDietPlanRepository) Create(ctx context.Context, plan *models.DietPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockDietPlanRepository) GetByTrainer(ctx context.Context, trainerUserID string) ([]*models.DietPlan, error) {
	args := m.Called(ctx, trainerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DietPlan), args.Error(1)
}

func (m *MockDietPlanRepository) GetByStudent(ctx context.Context, studentUserID string) ([]*models.DietPlan, error) {
	args := m.Called(ctx, studentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.DietPlan), args.Error(1)
}

type MockMaterialRepository struct {
	mock.Mock
}

func (m *MockMaterialRepository) CreateWithGrants(ctx context.Context, material *models.Material, studentUserIDs []string) error {
	args := m.Called(ctx, material, studentUserIDs)
	return args.Error(0)
}

func (m *MockMaterialRepository) GetByID(ctx context.Context, id uint) (*models.Material, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Material), args.Error(1)
}

func (m *MockMaterialRepository) GetByTrainer(ctx context.Context, trainerUserID string) ([]*models.Material, error) {
	args := m.Called(ctx, trainerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Material), args.Error(1)
}

func (m *MockMaterialRepository) GetGrantedToStudent(ctx context.Context, studentUserID string) ([]*models.Material, error) {
	args := m.Called(ctx, studentUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Material), args.Error(1)
}

func (m *MockMaterialRepository) ReplaceGrants(ctx context.Context, materialID uint, trainerUserID string, studentUserIDs []string) error {
	args := m.Called(ctx, materialID, trainerUserID, studentUserIDs)
	return args.Error(0)
}

func (m *MockMaterialRepository) GetGrants(ctx context.Context, materialID uint) ([]*models.MaterialAccessGrant, error) {
	args := m.Called(ctx, materialID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MaterialAccessGrant), args.Error(1)
}

// mockRepository bundles the per-table mocks behind the aggregate interface.
type mockRepository struct {
	profile     *MockProfileRepository
	student     *MockStudentRepository
	anamnesis   *MockAnamnesisRepository
	measurement *MockMeasurementRepository
	dietPlan    *MockDietPlanRepository
	material    *MockMaterialRepository
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		profile:     new(MockProfileRepository),
		student:     new(MockStudentRepository),
		anamnesis:   new(MockAnamnesisRepository),
		measurement: new(MockMeasurementRepository),
		dietPlan:    new(MockDietPlanRepository),
		material:    new(MockMaterialRepository),
	}
}

func (r *mockRepository) Profile() repositories.ProfileRepository         { return r.profile }
func (r *mockRepository) Student() repositories.StudentRepository         { return r.student }
func (r *mockRepository) Anamnesis() repositories.AnamnesisRepository     { return r.anamnesis }
func (r *mockRepository) Measurement() repositories.MeasurementRepository { return r.measurement }
func (r *mockRepository) DietPlan() repositories.DietPlanRepository       { return r.dietPlan }
func (r *mockRepository) Material() repositories.MaterialRepository       { return r.material }

// ===== CACHE FAKE =====

// fakeCache is an in-memory CacheService for tests. Values are stored as-is;
// Get only supports the types the services actually cache.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]*models.StudentSummary
	sets    int
	deletes []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]*models.StudentSummary)}
}

func (f *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if roster, ok := value.([]*models.StudentSummary); ok {
		f.entries[key] = roster
	}
	f.sets++
	return nil
}

func (f *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	roster, ok := f.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	if out, ok := dest.(*[]*models.StudentSummary); ok {
		*out = roster
		return nil
	}
	return cache.ErrCacheMiss
}

func (f *fakeCache) Delete(_ context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.entries, key)
		f.deletes = append(f.deletes, key)
	}
	return nil
}

var _ cache.CacheService = (*fakeCache)(nil)

// ===== SHARED FIXTURES =====

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }
func boolPtr(b bool) *bool        { return &b }

func trainerProfile(userID, name string) *models.UserProfile {
	return &models.UserProfile{UserID: userID, Name: name, Role: models.RoleTrainer}
}

func studentProfile(userID, name string) *models.UserProfile {
	return &models.UserProfile{UserID: userID, Name: name, Role: models.RoleStudent}
}
