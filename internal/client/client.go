package client

import (
	"context"

	"github.com/nettbureau/pipedrive-leads/internal/models"
)

// CRMClient posts a payload to one endpoint of the CRM API.
type CRMClient interface {
	Post(ctx context.Context, endpoint string, payload any) (*models.CRMResponse, error)
}
