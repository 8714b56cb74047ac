package property

import (
	"context"

	"roomshare/internal/domain"
	"roomshare/internal/modules/access"
)

type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property, alloc *domain.TimeAllocation) error
	GetByID(ctx context.Context, id string) (*domain.Property, error)
	ListForUser(ctx context.Context, userID string) ([]domain.Property, error)
	Update(ctx context.Context, p *domain.Property) error
}

type MemberRepository interface {
	Create(ctx context.Context, pm *domain.PropertyMember) error
	GetByID(ctx context.Context, id string) (*domain.PropertyMember, error)
	ListByProperty(ctx context.Context, propertyID string) ([]domain.PropertyMember, error)
	UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus) (int64, error)
}

type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	ListActiveByProperty(ctx context.Context, propertyID string) ([]domain.Room, error)
	Update(ctx context.Context, room *domain.Room) error
}

type UserRepository interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
}

type AccessResolver interface {
	Resolve(ctx context.Context, userID string, property *domain.Property) (access.Role, error)
}
