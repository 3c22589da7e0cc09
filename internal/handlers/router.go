package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fitcoach/coaching-service/internal/auth"
	"github.com/fitcoach/coaching-service/internal/services"
	"github.com/fitcoach/coaching-service/internal/utils"
)

type HandlerManager struct {
	profileHandler     *ProfileHandler
	studentHandler     *StudentHandler
	anamnesisHandler   *AnamnesisHandler
	measurementHandler *MeasurementHandler
	dietPlanHandler    *DietPlanHandler
	materialHandler    *MaterialHandler
	reportHandler      *ReportHandler
}

func NewHandlerManager(serviceManager *services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		profileHandler:     NewProfileHandler(serviceManager.Profiles, logger),
		studentHandler:     NewStudentHandler(serviceManager.Students, logger),
		anamnesisHandler:   NewAnamnesisHandler(serviceManager.Anamnesis, logger),
		measurementHandler: NewMeasurementHandler(serviceManager.Measurements, logger),
		dietPlanHandler:    NewDietPlanHandler(serviceManager.DietPlans, logger),
		materialHandler:    NewMaterialHandler(serviceManager.Materials, logger),
		reportHandler:      NewReportHandler(serviceManager.Reports, logger),
	}
}

// SetupRoutes sets up all API routes behind the auth middleware.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine, authenticator *auth.Authenticator) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "coaching-service",
		})
	})

	v1 := router.Group("/api/v1")
	v1.Use(authenticator.Middleware())
	{
		// Profile and directories
		v1.POST("/profile", hm.profileHandler.CreateProfile)
		v1.GET("/profile", hm.profileHandler.GetProfile)
		v1.GET("/trainers", hm.profileHandler.ListTrainers)

		// Student records and roster
		v1.GET("/student", hm.studentHandler.GetStudent)
		v1.PUT("/student/trainer", hm.studentHandler.UpdateTrainer)
		v1.GET("/students", hm.studentHandler.ListStudents)

		// Intake questionnaire
		v1.GET("/anamnesis", hm.anamnesisHandler.GetAnamnesis)
		v1.PUT("/anamnesis", hm.anamnesisHandler.UpsertAnamnesis)

		// Measurement log
		v1.POST("/measurements", hm.measurementHandler.CreateMeasurement)
		v1.GET("/measurements", hm.measurementHandler.ListMeasurements)

		// Diet plans
		v1.POST("/diet-plans", hm.dietPlanHandler.CreateDietPlan)
		v1.GET("/diet-plans", hm.dietPlanHandler.ListDietPlans)

		// Materials and access grants
		v1.POST("/materials", hm.materialHandler.CreateMaterial)
		v1.GET("/materials", hm.materialHandler.ListMaterials)
		v1.PUT("/materials/:id/access", hm.materialHandler.ReplaceAccess)

		// Reports
		v1.GET("/reports/measurements", hm.reportHandler.ExportMeasurements)
	}
}
