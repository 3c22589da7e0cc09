package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"github.com/fitcoach/coaching-service/internal/models"
	"github.com/fitcoach/coaching-service/internal/repositories"
)

// ReportService exports measurement history as spreadsheet files.
type ReportService interface {
	// ExportMeasurements builds an xlsx report of a student's measurement
	// history. Students export their own history; trainers export for
	// linked students.
	ExportMeasurements(ctx context.Context, callerUserID, studentUserID string) ([]byte, string, error)
}

type reportService struct {
	repo   repositories.Repository
	roles  RoleResolver
	logger *slog.Logger
}

func NewReportService(repo repositories.Repository, roles RoleResolver, logger *slog.Logger) ReportService {
	return &reportService{
		repo:   repo,
		roles:  roles,
		logger: logger,
	}
}

func (s *reportService) ExportMeasurements(ctx context.Context, callerUserID, studentUserID string) ([]byte, string, error) {
	s.logger.Info("Exporting measurement report",
		"caller_id", callerUserID,
		"student_id", studentUserID)

	if callerUserID != studentUserID {
		if err := s.roles.AuthorizeTrainerForStudent(ctx, callerUserID, studentUserID); err != nil {
			return nil, "", err
		}
	} else {
		role, err := s.roles.ResolveRole(ctx, callerUserID)
		if err != nil {
			return nil, "", err
		}
		if role != models.RoleStudent {
			return nil, "", ErrForbidden
		}
	}

	measurements, err := s.repo.Measurement().ListByStudent(ctx, studentUserID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load measurements: %w", err)
	}

	f := excelize.NewFile()
	sheetName := "Measurements"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create Excel sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Date", "Weight (kg)", "Waist (cm)", "Right Arm Contracted (cm)",
		"Right Arm Relaxed (cm)", "Left Arm Contracted (cm)", "Left Arm Relaxed (cm)",
		"Thigh Midpoint (cm)", "Hip (cm)",
	}

	for i, header := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, header)
	}

	for rowIndex, m := range measurements {
		row := []interface{}{
			m.MeasurementDate,
			floatCell(m.Weight),
			floatCell(m.WaistCircumference),
			floatCell(m.RightArmContracted),
			floatCell(m.RightArmRelaxed),
			floatCell(m.LeftArmContracted),
			floatCell(m.LeftArmRelaxed),
			floatCell(m.ThighMidpoint),
			floatCell(m.HipCircumference),
		}
		for colIndex, value := range row {
			cell := fmt.Sprintf("%c%d", 'A'+colIndex, rowIndex+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("measurements_%s.xlsx", studentUserID)
	return buf.Bytes(), filename, nil
}

func floatCell(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}
