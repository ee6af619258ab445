package business

import (
	"context"

	"growthpro/internal/models"
)

// ServiceInterface defines the interface for business data operations
type ServiceInterface interface {
	// CreateRecord validates the request and synthesizes a fresh record for it
	CreateRecord(ctx context.Context, req *models.BusinessDataRequest) (*models.BusinessRecord, error)

	// RegenerateHeadline validates the request and picks a new headline
	RegenerateHeadline(ctx context.Context, req *models.HeadlineRequest) (string, error)
}

// Ensure Service implements ServiceInterface
var _ ServiceInterface = (*Service)(nil)
