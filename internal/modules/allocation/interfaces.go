package allocation

import (
	"context"

	"roomshare/internal/domain"
	"roomshare/internal/modules/access"
)

type AllocationRepository interface {
	GetByProperty(ctx context.Context, propertyID string) (*domain.TimeAllocation, error)
	Update(ctx context.Context, a *domain.TimeAllocation) error
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}

type AccessResolver interface {
	Resolve(ctx context.Context, userID string, property *domain.Property) (access.Role, error)
}
