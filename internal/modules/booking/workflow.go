package booking

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"roomshare/internal/domain"
)

// Approve moves a pending application to approved, recording the actor
// and notes. Approved is terminal.
func (s *Service) Approve(ctx context.Context, actorID, bookingID, notes string) (*domain.BookingApplication, error) {
	return s.decide(ctx, actorID, bookingID, domain.BookingApproved, notes)
}

// Reject moves a pending application to rejected. The slot is freed:
// rejected applications do not block new ones.
func (s *Service) Reject(ctx context.Context, actorID, bookingID, notes string) (*domain.BookingApplication, error) {
	return s.decide(ctx, actorID, bookingID, domain.BookingRejected, notes)
}

func (s *Service) decide(ctx context.Context, actorID, bookingID string, to domain.BookingStatus, notes string) (*domain.BookingApplication, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if b.Status != domain.BookingPending {
		return nil, ErrInvalidTransition
	}

	role, err := s.roleOnBooking(ctx, actorID, b)
	if err != nil {
		return nil, err
	}
	if !role.CanDecideBooking() {
		return nil, ErrAccessDenied
	}

	// Guarded update: the repository only flips rows still pending, so a
	// decision that lost a race comes back with zero rows changed.
	rows, err := s.bookings.Decide(ctx, bookingID, to, actorID, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvalidTransition
	}

	return s.bookings.GetByID(ctx, bookingID)
}
