package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"roomshare/internal/domain"
	"roomshare/internal/modules/access"
)

func pendingBooking() *domain.BookingApplication {
	return &domain.BookingApplication{
		ID:     "b1",
		UserID: "member",
		RoomID: "room1",
		Status: domain.BookingPending,
	}
}

func TestService_Approve_Success(t *testing.T) {
	f := newFixture()
	f.withRoom()
	f.bookings.On("GetByID", mock.Anything, "b1").Return(pendingBooking(), nil).Once()
	f.resolver.On("Resolve", mock.Anything, "owner", mock.Anything).Return(access.RoleOwner, nil)
	f.bookings.On("Decide", mock.Anything, "b1", domain.BookingApproved, "owner", "looks good").Return(int64(1), nil)

	decidedBy := "owner"
	f.bookings.On("GetByID", mock.Anything, "b1").Return(&domain.BookingApplication{
		ID:            "b1",
		UserID:        "member",
		RoomID:        "room1",
		Status:        domain.BookingApproved,
		ApprovedBy:    &decidedBy,
		ApprovalNotes: "looks good",
	}, nil).Once()

	b, err := f.service.Approve(context.Background(), "owner", "b1", "  looks good ")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingApproved, b.Status)
	assert.Equal(t, "owner", *b.ApprovedBy)
	f.bookings.AssertExpectations(t)
}

func TestService_Reject_Success(t *testing.T) {
	f := newFixture()
	f.withRoom()
	f.bookings.On("GetByID", mock.Anything, "b1").Return(pendingBooking(), nil).Once()
	f.resolver.On("Resolve", mock.Anything, "admin", mock.Anything).Return(access.RoleAdmin, nil)
	f.bookings.On("Decide", mock.Anything, "b1", domain.BookingRejected, "admin", "room closed").Return(int64(1), nil)
	f.bookings.On("GetByID", mock.Anything, "b1").Return(&domain.BookingApplication{
		ID:     "b1",
		UserID: "member",
		RoomID: "room1",
		Status: domain.BookingRejected,
	}, nil).Once()

	b, err := f.service.Reject(context.Background(), "admin", "b1", "room closed")

	assert.NoError(t, err)
	assert.Equal(t, domain.BookingRejected, b.Status)
}

func TestService_Approve_MemberDenied(t *testing.T) {
	f := newFixture()
	f.withRoom()
	f.bookings.On("GetByID", mock.Anything, "b1").Return(pendingBooking(), nil)
	f.resolver.On("Resolve", mock.Anything, "member", mock.Anything).Return(access.RoleMember, nil)

	_, err := f.service.Approve(context.Background(), "member", "b1", "")

	assert.ErrorIs(t, err, ErrAccessDenied)
	f.bookings.AssertNotCalled(t, "Decide")
}

func TestService_Approve_TerminalStatus(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, "b1").Return(&domain.BookingApplication{
		ID:     "b1",
		UserID: "member",
		RoomID: "room1",
		Status: domain.BookingRejected,
	}, nil)

	_, err := f.service.Approve(context.Background(), "owner", "b1", "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
	f.bookings.AssertNotCalled(t, "Decide")
}

func TestService_Reject_AlreadyApproved(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, "b1").Return(&domain.BookingApplication{
		ID:     "b1",
		UserID: "member",
		RoomID: "room1",
		Status: domain.BookingApproved,
	}, nil)

	_, err := f.service.Reject(context.Background(), "owner", "b1", "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestService_Approve_Missing(t *testing.T) {
	f := newFixture()
	f.bookings.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.Approve(context.Background(), "owner", "nope", "")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_Approve_LostDecisionRace(t *testing.T) {
	f := newFixture()
	f.withRoom()
	// the read saw pending, but a concurrent decision flipped it first
	f.bookings.On("GetByID", mock.Anything, "b1").Return(pendingBooking(), nil)
	f.resolver.On("Resolve", mock.Anything, "owner", mock.Anything).Return(access.RoleOwner, nil)
	f.bookings.On("Decide", mock.Anything, "b1", domain.BookingApproved, "owner", "").Return(int64(0), nil)

	_, err := f.service.Approve(context.Background(), "owner", "b1", "")

	assert.ErrorIs(t, err, ErrInvalidTransition)
}
