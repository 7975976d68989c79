package providerRepo

import (
	"context"

	"medisched/models"
)

// ProviderRepository is the availability boundary: provider documents with
// working-hour windows and current load, read fresh per request.
type ProviderRepository interface {
	// GetProviderSchedules returns providers filtered by department and
	// appointment type. Either filter may be empty. Providers with no
	// preferred types accept every appointment type.
	GetProviderSchedules(ctx context.Context, department string, appointmentType models.AppointmentType) ([]models.Provider, error)

	GetProviderByID(ctx context.Context, providerID string) (*models.Provider, error)

	// ListDepartments returns the distinct departments with at least one
	// provider; used by the forecast refresh worker.
	ListDepartments(ctx context.Context) ([]string, error)
}
