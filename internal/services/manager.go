package services

import (
	"log/slog"

	"github.com/fitcoach/coaching-service/internal/cache"
	"github.com/fitcoach/coaching-service/internal/events"
	"github.com/fitcoach/coaching-service/internal/repositories"
	"github.com/fitcoach/coaching-service/internal/utils"
)

// ServiceManager wires all services over shared infrastructure and hands
// them to the HTTP layer as one unit.
type ServiceManager struct {
	Roles        RoleResolver
	Profiles     ProfileService
	Students     StudentService
	Anamnesis    AnamnesisService
	Measurements MeasurementService
	DietPlans    DietPlanService
	Materials    MaterialService
	Reports      ReportService
	Notifier     NotificationEventService
}

func NewServiceManager(
	repo repositories.Repository,
	cacheService cache.CacheService,
	eventPublisher events.EventPublisher,
	logger *slog.Logger,
	validator *utils.Validator,
) *ServiceManager {
	roles := NewRoleResolver(repo, logger)
	notifier := NewNotificationEventService(repo, eventPublisher, logger)

	return &ServiceManager{
		Roles:        roles,
		Profiles:     NewProfileService(repo, logger, validator),
		Students:     NewStudentService(repo, roles, cacheService, logger, validator),
		Anamnesis:    NewAnamnesisService(repo, roles, notifier, cacheService, logger, validator),
		Measurements: NewMeasurementService(repo, roles, notifier, cacheService, logger, validator),
		DietPlans:    NewDietPlanService(repo, roles, notifier, cacheService, logger, validator),
		Materials:    NewMaterialService(repo, roles, notifier, logger, validator),
		Reports:      NewReportService(repo, roles, logger),
		Notifier:     notifier,
	}
}
