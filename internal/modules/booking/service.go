package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"roomshare/internal/domain"
	"roomshare/internal/modules/access"
	"roomshare/internal/modules/allocation"
)

const dateLayout = "2006-01-02"

type Service struct {
	bookings   BookingRepository
	rooms      RoomRepository
	properties PropertyRepository
	policies   PolicyProvider
	resolver   AccessResolver

	// overridable in tests
	now func() time.Time
}

func NewService(
	bookings BookingRepository,
	rooms RoomRepository,
	properties PropertyRepository,
	policies PolicyProvider,
	resolver AccessResolver,
) *Service {
	return &Service{
		bookings:   bookings,
		rooms:      rooms,
		properties: properties,
		policies:   policies,
		resolver:   resolver,
		now:        time.Now,
	}
}

// Create files a new application for (room, date, session). Checks run in
// a fixed order, each with its own failure: date, session type, room,
// access, slot, quota. The slot is ultimately guarded by the partial
// unique index, so a create that loses a race surfaces as the same
// ErrSlotTaken as the pre-check.
func (s *Service) Create(ctx context.Context, userID string, req CreateBookingRequest) (*domain.BookingApplication, error) {
	date, err := time.ParseInLocation(dateLayout, req.BookingDate, time.UTC)
	if err != nil {
		return nil, ErrInvalidDate
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if !date.After(today) {
		return nil, ErrInvalidDate
	}

	session := domain.SessionType(req.SessionType)
	if !session.Valid() {
		return nil, ErrInvalidSession
	}

	room, err := s.rooms.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	if !room.IsActive {
		return nil, ErrRoomNotFound
	}

	property, err := s.properties.GetByID(ctx, room.PropertyID)
	if err != nil {
		return nil, err
	}

	role, err := s.resolver.Resolve(ctx, userID, property)
	if err != nil {
		return nil, err
	}
	if !role.CanCreateBooking() {
		return nil, ErrAccessDenied
	}

	taken, err := s.bookings.SlotTaken(ctx, room.ID, date, session)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}

	policy, err := s.policies.ForProperty(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	duration := policy.DurationFor(session)

	start, end := allocation.WeekWindow(policy.ResetDayOfWeek, date)
	committed, err := s.bookings.CommittedInWindow(ctx, userID, property.ID, start, end)
	if err != nil {
		return nil, err
	}
	if committed+duration > policy.WeeklyLimitDays {
		return nil, ErrQuotaExceeded
	}

	b := &domain.BookingApplication{
		UserID:        userID,
		RoomID:        room.ID,
		BookingDate:   date,
		SessionType:   session,
		Status:        domain.BookingPending,
		Notes:         strings.TrimSpace(req.Notes),
		DurationValue: duration,
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}

	return b, nil
}

// List returns the caller's applications, newest booking date first.
func (s *Service) List(ctx context.Context, userID string, filters ListFilters) ([]domain.BookingApplication, error) {
	return s.bookings.ListByUser(ctx, userID, domain.BookingStatus(filters.Status), filters.PropertyID)
}

// Get returns one application to its applicant or to an admin/owner of
// the property.
func (s *Service) Get(ctx context.Context, callerID, bookingID string) (*domain.BookingApplication, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	role, err := s.roleOnBooking(ctx, callerID, b)
	if err != nil {
		return nil, err
	}
	if !role.CanViewBooking(b.UserID == callerID) {
		return nil, ErrAccessDenied
	}

	return b, nil
}

// roleOnBooking resolves the caller's role on the property the booking's
// room belongs to.
func (s *Service) roleOnBooking(ctx context.Context, userID string, b *domain.BookingApplication) (access.Role, error) {
	room, err := s.rooms.GetByID(ctx, b.RoomID)
	if err != nil {
		return access.RoleNone, err
	}
	property, err := s.properties.GetByID(ctx, room.PropertyID)
	if err != nil {
		return access.RoleNone, err
	}
	return s.resolver.Resolve(ctx, userID, property)
}

// isUniqueViolation recognizes the slot index rejecting a concurrent
// insert, for both PostgreSQL (23505) and SQLite builds.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
