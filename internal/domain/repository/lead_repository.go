package repository

import (
	"context"
	"errors"

	"github.com/oksasatya/go-lead-crm/internal/domain/entity"
)

// ErrLeadNotFound is returned by GetByID when no lead has the given id.
var ErrLeadNotFound = errors.New("lead not found")

// LeadRepository defines the interface for lead persistence.
// Create assigns ID and CreatedAt on the passed lead. List returns leads newest first.
type LeadRepository interface {
	Create(ctx context.Context, l *entity.Lead) error
	List(ctx context.Context) ([]*entity.Lead, error)
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
}
