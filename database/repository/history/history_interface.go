package historyRepo

import (
	"context"
	"time"

	"medisched/models"
)

// HistoryRepository serves completed-visit records for deterministic
// aggregation (insights and demand forecasting).
type HistoryRepository interface {
	// GetVisitsByType returns visits of the given appointment type,
	// optionally narrowed to a department.
	GetVisitsByType(ctx context.Context, appointmentType models.AppointmentType, department string) ([]models.HistoricalVisit, error)

	// GetVisitsByDepartment returns all visits in a department recorded on
	// or after the given instant.
	GetVisitsByDepartment(ctx context.Context, department string, since time.Time) ([]models.HistoricalVisit, error)

	// RecordVisit appends a completed visit.
	RecordVisit(ctx context.Context, visit *models.HistoricalVisit) error
}
