package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/fitcoach/coaching-service/internal/events"
	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/utils"
)

func newAnamnesisService(repo *mockRepository, publisher events.EventPublisher) AnamnesisService {
	logger := testLogger()
	roles := NewRoleResolver(repo, logger)
	notifier := NewNotificationEventService(repo, publisher, logger)
	return NewAnamnesisService(repo, roles, notifier, newFakeCache(), logger, utils.NewValidator())
}

func TestAnamnesisService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("first submission creates the record with its fields", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(nil, gorm.ErrRecordNotFound).Once()
		repo.anamnesis.On("CreateWithFields", ctx, "student-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["age"] == 31 && fields["city"] == "Curitiba"
		})).Return(nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(&models.Anamnesis{
			StudentUserID: "student-1",
			Age:           intPtr(31),
			City:          strPtr("Curitiba"),
		}, nil)

		svc := newAnamnesisService(repo, events.NewMockEventPublisher(testLogger()))
		record, err := svc.Upsert(ctx, "student-1", &UpsertAnamnesisRequest{
			Age:  intPtr(31),
			City: strPtr("Curitiba"),
		})

		assert.NoError(t, err)
		assert.Equal(t, 31, *record.Age)
		repo.anamnesis.AssertNotCalled(t, "UpdateFields", ctx, mock.Anything, mock.Anything)
	})

	t.Run("later submission only patches submitted fields", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(&models.Anamnesis{
			ID:            7,
			StudentUserID: "student-1",
			Age:           intPtr(31),
		}, nil)
		repo.anamnesis.On("UpdateFields", ctx, "student-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			_, hasAge := fields["age"]
			return !hasAge && fields["food_diary"] == "3 meals, little protein"
		})).Return(nil)

		svc := newAnamnesisService(repo, events.NewMockEventPublisher(testLogger()))
		_, err := svc.Upsert(ctx, "student-1", &UpsertAnamnesisRequest{
			FoodDiary: strPtr("3 meals, little protein"),
		})

		assert.NoError(t, err)
		repo.anamnesis.AssertNotCalled(t, "CreateWithFields", ctx, mock.Anything, mock.Anything)
	})

	t.Run("resubmitting the same payload leaves stored values unchanged", func(t *testing.T) {
		stored := &models.Anamnesis{
			ID:            7,
			StudentUserID: "student-1",
			Age:           intPtr(31),
			City:          strPtr("Curitiba"),
		}
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(stored, nil)
		repo.anamnesis.On("UpdateFields", ctx, "student-1", mock.MatchedBy(func(fields map[string]interface{}) bool {
			return fields["age"] == 31 && fields["city"] == "Curitiba"
		})).Return(nil)

		svc := newAnamnesisService(repo, events.NewMockEventPublisher(testLogger()))
		req := &UpsertAnamnesisRequest{Age: intPtr(31), City: strPtr("Curitiba")}

		first, err := svc.Upsert(ctx, "student-1", req)
		assert.NoError(t, err)
		second, err := svc.Upsert(ctx, "student-1", req)
		assert.NoError(t, err)

		assert.Equal(t, first, second)
		repo.anamnesis.AssertNumberOfCalls(t, "UpdateFields", 2)
	})

	t.Run("completion fires the trainer notification once", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(&models.Anamnesis{
			ID:            7,
			StudentUserID: "student-1",
		}, nil).Once()
		repo.anamnesis.On("UpdateFields", ctx, "student-1", mock.Anything).Return(nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(&models.Anamnesis{
			ID:            7,
			StudentUserID: "student-1",
			IsCompleted:   true,
		}, nil)
		repo.student.On("GetByUserID", ctx, "student-1").Return(&models.Student{
			UserID:    "student-1",
			TrainerID: strPtr("trainer-1"),
		}, nil)

		publisher := events.NewMockEventPublisher(testLogger())
		svc := newAnamnesisService(repo, publisher)

		record, err := svc.Upsert(ctx, "student-1", &UpsertAnamnesisRequest{Completed: boolPtr(true)})

		assert.NoError(t, err)
		assert.True(t, record.IsCompleted)

		published := publisher.GetPublishedEvents()
		assert.Len(t, published, 1)
		assert.Equal(t, events.EventAnamnesisCompleted, published[0].Type)
	})

	t.Run("resubmitting a completed anamnesis does not re-notify", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(&models.Anamnesis{
			ID:            7,
			StudentUserID: "student-1",
			IsCompleted:   true,
		}, nil)
		repo.anamnesis.On("UpdateFields", ctx, "student-1", mock.Anything).Return(nil)

		publisher := events.NewMockEventPublisher(testLogger())
		svc := newAnamnesisService(repo, publisher)

		_, err := svc.Upsert(ctx, "student-1", &UpsertAnamnesisRequest{
			Completed: boolPtr(true),
			Age:       intPtr(32),
		})

		assert.NoError(t, err)
		assert.Empty(t, publisher.GetPublishedEvents())
	})

	t.Run("rejects out-of-range self assessment", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)

		svc := newAnamnesisService(repo, events.NewMockEventPublisher(testLogger()))
		_, err := svc.Upsert(ctx, "student-1", &UpsertAnamnesisRequest{MotivationLevel: intPtr(14)})

		assert.Error(t, err)
		assert.True(t, IsValidation(err))
	})

	t.Run("trainer cannot submit", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "trainer-1").Return(trainerProfile("trainer-1", "Ana"), nil)

		svc := newAnamnesisService(repo, events.NewMockEventPublisher(testLogger()))
		_, err := svc.Upsert(ctx, "trainer-1", &UpsertAnamnesisRequest{Age: intPtr(40)})

		assert.ErrorIs(t, err, ErrForbidden)
	})
}

func TestAnamnesisService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("missing record maps to ErrAnamnesisNotFound", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "student-1").Return(studentProfile("student-1", "Bruno"), nil)
		repo.anamnesis.On("GetByStudent", ctx, "student-1").Return(nil, gorm.ErrRecordNotFound)

		svc := newAnamnesisService(repo, events.NewMockEventPublisher(testLogger()))
		_, err := svc.Get(ctx, "student-1")

		assert.ErrorIs(t, err, ErrAnamnesisNotFound)
	})

	t.Run("trainer read requires linkage", func(t *testing.T) {
		repo := newMockRepository()
		repo.profile.On("GetByUserID", ctx, "trainer-1").Return(trainerProfile("trainer-1", "Ana"), nil)
		repo.student.On("IsLinkedToTrainer", ctx, "student-9", "trainer-1").Return(false, nil)

		svc := newAnamnesisService(repo, events.NewMockEventPublisher(testLogger()))
		_, err := svc.GetForTrainer(ctx, "trainer-1", "student-9")

		assert.ErrorIs(t, err, ErrStudentNotLinked)
	})
}
