package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"github.com/fitcoach/coaching-service/internal/events"
	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/utils"
)

func newDietPlanService(repo *mockRepository, publisher events.EventPublisher) DietPlanService {
	logger := testLogger()
	roles := NewRoleResolver(repo, logger)
	notifier := NewNotificationEventService(repo, publisher, logger)
	return NewDietPlanService(repo, roles, notifier, newFakeCache(), logger, utils.NewValidator())
}

func planContent() datatypes.JSON {
	return datatypes.JSON([]byte(`{"meals":[{"name":"breakfast","kcal":450}]}`))
}

func TestDietPlanService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("publishes plan for linked student and notifies", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "trainer-1").Return(trainerProfile("trainer-1", "Ana"), nil)
		repo.student.On("IsLinkedToTrainer", ctx, "student-1", "trainer-1").Return(true, nil)
		repo.dietPlan.On("Create", ctx, mock.MatchedBy(func(p *models.DietPlan) bool {
			return p.StudentUserID == "student-1" && p.TrainerUserID == "trainer-1" && p.IsActive
		})).Return(nil)

		publisher := events.NewMockEventPublisher(testLogger())
		svc := newDietPlanService(repo, publisher)

		plan, err := svc.Create(ctx, "trainer-1", &CreateDietPlanRequest{
			StudentID:   "student-1",
			Title:       "Cutting phase",
			PlanContent: planContent(),
		})

		assert.NoError(t, err)
		assert.True(t, plan.IsActive)

		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventDietPlanPublished, published[0].Type)
		payload, ok := published[0].Data.(events.DietPlanPublishedEvent)
		assert.True(t, ok)
		assert.Equal(t, "student-1", payload.StudentUserID)
	})

	t.Run("unlinked student rejected opaquely", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "trainer-1").Return(trainerProfile("trainer-1", "Ana"), nil)
		repo.student.On("IsLinkedToTrainer", ctx, "student-9", "trainer-1").Return(false, nil)

		svc := newDietPlanService(repo, events.NewMockEventPublisher(testLogger()))
		_, err := svc.Create(ctx, "trainer-1", &CreateDietPlanRequest{
			StudentID:   "student-9",
			Title:       "Cutting phase",
			PlanContent: planContent(),
		})

		assert.ErrorIs(t, err, ErrStudentNotLinked)
		repo.dietPlan.AssertNotCalled(t, "Create", ctx, mock.Anything)
	})

	t.Run("student cannot author plans", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)

		svc := newDietPlanService(repo, events.NewMockEventPublisher(testLogger()))
		_, err := svc.Create(ctx, "student-1", &CreateDietPlanRequest{
			StudentID:   "student-1",
			Title:       "My own plan",
			PlanContent: planContent(),
		})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestDietPlanService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("student gets plans with active primary", func(t *testing.T) {
		plans := []*models.DietPlan{
			{ID: 3, StudentUserID: "student-1", Title: "Old bulk", IsActive: false},
			{ID: 4, StudentUserID: "student-1", Title: "Cutting phase", IsActive: true},
		}
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.dietPlan.On("GetByStudent", ctx, "student-1").Return(plans, nil)

		svc := newDietPlanService(repo, events.NewMockEventPublisher(testLogger()))
		resp, err := svc.List(ctx, "student-1")

		assert.NoError(t, err)
		assert.Len(t, resp.Plans, 2)
		assert.NotNil(t, resp.Primary)
		assert.Equal(t, uint(4), resp.Primary.ID)
	})

	t.Run("all plans retired falls back to first", func(t *testing.T) {
		plans := []*models.DietPlan{
			{ID: 3, StudentUserID: "student-1", Title: "Old bulk", IsActive: false},
			{ID: 2, StudentUserID: "student-1", Title: "Older cut", IsActive: false},
		}
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.dietPlan.On("GetByStudent", ctx, "student-1").Return(plans, nil)

		svc := newDietPlanService(repo, events.NewMockEventPublisher(testLogger()))
		resp, err := svc.List(ctx, "student-1")

		assert.NoError(t, err)
		assert.Equal(t, uint(3), resp.Primary.ID)
	})

	t.Run("trainer gets authored plans without primary", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "trainer-1").Return(trainerProfile("trainer-1", "Ana"), nil)
		repo.dietPlan.On("GetByTrainer", ctx, "trainer-1").Return([]*models.DietPlan{
			{ID: 4, TrainerUserID: "trainer-1", Title: "Cutting phase", IsActive: true},
		}, nil)

		svc := newDietPlanService(repo, events.NewMockEventPublisher(testLogger()))
		resp, err := svc.List(ctx, "trainer-1")

		assert.NoError(t, err)
		assert.Len(t, resp.Plans, 1)
		assert.Nil(t, resp.Primary)
	})
}
