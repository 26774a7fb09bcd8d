package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"tikoncha/internal/apperrors"
	"tikoncha/internal/pdf"
	"tikoncha/internal/repositories"
)

// ReportService renders downloadable usage reports for parents and staff.
type ReportService interface {
	// UsageReport builds a PDF for studentID over [from, to) and returns
	// the public path of the generated file.
	UsageReport(studentID uuid.UUID, from, to time.Time) (string, error)
}

type reportService struct {
	logs     repositories.LogRepository
	students repositories.StudentRepository
	schools  repositories.SchoolRepository
	gen      pdf.Generator
}

func NewReportService(
	logs repositories.LogRepository,
	students repositories.StudentRepository,
	schools repositories.SchoolRepository,
	gen pdf.Generator,
) ReportService {
	return &reportService{logs: logs, students: students, schools: schools, gen: gen}
}

func (s *reportService) UsageReport(studentID uuid.UUID, from, to time.Time) (string, error) {
	if !to.After(from) {
		return "", apperrors.E(apperrors.Validation, "empty date range")
	}
	si, err := s.students.GetByUserID(studentID)
	if err != nil {
		return "", err
	}
	if si == nil {
		return "", apperrors.E(apperrors.NotFound, "student info not found")
	}
	rows, err := s.logs.SummaryByDay(studentID, from, to)
	if err != nil {
		return "", err
	}

	schoolName := ""
	if school, err := s.schools.GetByID(si.SchoolID); err == nil && school != nil {
		schoolName = school.Name
	}

	data := pdf.UsageReportData{
		StudentName: si.FirstName + " " + si.LastName,
		SchoolName:  schoolName,
		From:        from,
		To:          to,
		Rows:        rows,
		GeneratedAt: time.Now(),
		Filename: fmt.Sprintf("usage_%s_%s.pdf",
			studentID, from.Format("2006-01-02")),
	}
	return s.gen.GenerateUsageReport(data)
}
