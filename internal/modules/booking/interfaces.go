package booking

import (
	"context"
	"time"

	"roomshare/internal/domain"
	"roomshare/internal/modules/access"
)

type BookingRepository interface {
	Create(ctx context.Context, b *domain.BookingApplication) error
	GetByID(ctx context.Context, id string) (*domain.BookingApplication, error)
	SlotTaken(ctx context.Context, roomID string, date time.Time, session domain.SessionType) (bool, error)
	CommittedInWindow(ctx context.Context, userID, propertyID string, start, end time.Time) (float64, error)
	ListByUser(ctx context.Context, userID string, status domain.BookingStatus, propertyID string) ([]domain.BookingApplication, error)
	Decide(ctx context.Context, id string, to domain.BookingStatus, decidedBy, notes string) (int64, error)
}

type RoomRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Room, error)
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Property, error)
}

// PolicyProvider yields the effective time allocation for a property,
// defaults included.
type PolicyProvider interface {
	ForProperty(ctx context.Context, propertyID string) (*domain.TimeAllocation, error)
}

type AccessResolver interface {
	Resolve(ctx context.Context, userID string, property *domain.Property) (access.Role, error)
}
