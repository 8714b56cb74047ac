package property

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"roomshare/internal/domain"
	"roomshare/internal/modules/access"
	"roomshare/internal/modules/allocation"
)

type MockPropertyRepository struct {
	mock.Mock
}

func (m *MockPropertyRepository) Create(ctx context.Context, p *domain.Property, alloc *domain.TimeAllocation) error {
	args := m.Called(ctx, p, alloc)
	if p != nil && p.ID == "" {
		p.ID = "generated-id"
	}
	return args.Error(0)
}

func (m *MockPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) ListForUser(ctx context.Context, userID string) ([]domain.Property, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Property), args.Error(1)
}

func (m *MockPropertyRepository) Update(ctx context.Context, p *domain.Property) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, pm *domain.PropertyMember) error {
	args := m.Called(ctx, pm)
	if pm != nil && pm.ID == "" {
		pm.ID = "edge-id"
	}
	return args.Error(0)
}

func (m *MockMemberRepository) GetByID(ctx context.Context, id string) (*domain.PropertyMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PropertyMember), args.Error(1)
}

func (m *MockMemberRepository) ListByProperty(ctx context.Context, propertyID string) ([]domain.PropertyMember, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PropertyMember), args.Error(1)
}

func (m *MockMemberRepository) UpdateStatus(ctx context.Context, id string, status domain.InvitationStatus) (int64, error) {
	args := m.Called(ctx, id, status)
	return args.Get(0).(int64), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) Create(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

func (m *MockRoomRepository) ListActiveByProperty(ctx context.Context, propertyID string) ([]domain.Room, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Room), args.Error(1)
}

func (m *MockRoomRepository) Update(ctx context.Context, room *domain.Room) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockAccessResolver struct {
	mock.Mock
}

func (m *MockAccessResolver) Resolve(ctx context.Context, userID string, property *domain.Property) (access.Role, error) {
	args := m.Called(ctx, userID, property)
	return args.Get(0).(access.Role), args.Error(1)
}

type fixture struct {
	properties *MockPropertyRepository
	members    *MockMemberRepository
	rooms      *MockRoomRepository
	users      *MockUserRepository
	resolver   *MockAccessResolver
	service    *Service
}

func newFixture() *fixture {
	f := &fixture{
		properties: new(MockPropertyRepository),
		members:    new(MockMemberRepository),
		rooms:      new(MockRoomRepository),
		users:      new(MockUserRepository),
		resolver:   new(MockAccessResolver),
	}
	f.service = NewService(f.properties, f.members, f.rooms, f.users, f.resolver)
	return f
}

func (f *fixture) withProperty(role access.Role, callerID string) {
	f.properties.On("GetByID", mock.Anything, "p1").Return(&domain.Property{
		ID:       "p1",
		Name:     "Lakeside House",
		OwnerID:  "owner",
		IsActive: true,
	}, nil)
	f.resolver.On("Resolve", mock.Anything, callerID, mock.Anything).Return(role, nil)
}

func TestService_CreateProperty_SeedsDefaultPolicy(t *testing.T) {
	f := newFixture()
	f.properties.On("Create", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	p, err := f.service.CreateProperty(context.Background(), "owner", CreatePropertyRequest{
		Name:        "  Lakeside House ",
		Description: "Shared house",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Lakeside House", p.Name)
	assert.Equal(t, "owner", p.OwnerID)
	assert.True(t, p.IsActive)

	// the allocation passed alongside carries the built-in defaults
	alloc := f.properties.Calls[0].Arguments.Get(2).(*domain.TimeAllocation)
	assert.Equal(t, allocation.DefaultWeeklyLimitDays, alloc.WeeklyLimitDays)
	assert.Equal(t, allocation.DefaultResetDayOfWeek, alloc.ResetDayOfWeek)
}

func TestService_CreateProperty_BlankName(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateProperty(context.Background(), "owner", CreatePropertyRequest{Name: "   "})

	assert.ErrorIs(t, err, ErrValidation)
	f.properties.AssertNotCalled(t, "Create")
}

func TestService_GetProperty_StrangerDenied(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleNone, "stranger")

	_, err := f.service.GetProperty(context.Background(), "stranger", "p1")

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_GetProperty_Missing(t *testing.T) {
	f := newFixture()
	f.properties.On("GetByID", mock.Anything, "nope").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.GetProperty(context.Background(), "u1", "nope")

	assert.ErrorIs(t, err, ErrPropertyNotFound)
}

func TestService_UpdateProperty_AdminEditsNameOnly(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleAdmin, "admin")
	f.properties.On("Update", mock.Anything, mock.Anything).Return(nil)

	name := "New Name"
	inactive := false
	p, err := f.service.UpdateProperty(context.Background(), "admin", "p1", UpdatePropertyRequest{
		Name:     &name,
		IsActive: &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, "New Name", p.Name)
	// the active flag is owner-only and stays untouched for an admin
	assert.True(t, p.IsActive)
}

func TestService_UpdateProperty_OwnerTogglesActive(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleOwner, "owner")
	f.properties.On("Update", mock.Anything, mock.Anything).Return(nil)

	inactive := false
	p, err := f.service.UpdateProperty(context.Background(), "owner", "p1", UpdatePropertyRequest{IsActive: &inactive})

	assert.NoError(t, err)
	assert.False(t, p.IsActive)
}

func TestService_UpdateProperty_MemberDenied(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleMember, "member")

	name := "New Name"
	_, err := f.service.UpdateProperty(context.Background(), "member", "p1", UpdatePropertyRequest{Name: &name})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_InviteMember_Success(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleOwner, "owner")
	f.users.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2"}, nil)
	f.members.On("Create", mock.Anything, mock.Anything).Return(nil)

	pm, err := f.service.InviteMember(context.Background(), "owner", "p1", InviteMemberRequest{UserID: "u2"})

	assert.NoError(t, err)
	assert.Equal(t, domain.MemberRoleMember, pm.Role)
	assert.Equal(t, domain.InvitationPending, pm.InvitationStatus)
}

func TestService_InviteMember_UnknownUser(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleOwner, "owner")
	f.users.On("GetByID", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	_, err := f.service.InviteMember(context.Background(), "owner", "p1", InviteMemberRequest{UserID: "ghost"})

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestService_InviteMember_DuplicateEdge(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleOwner, "owner")
	f.users.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2"}, nil)
	f.members.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23505"})

	_, err := f.service.InviteMember(context.Background(), "owner", "p1", InviteMemberRequest{UserID: "u2"})

	assert.ErrorIs(t, err, ErrAlreadyMember)
}

func TestService_InviteMember_MemberCannotInvite(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleMember, "member")

	_, err := f.service.InviteMember(context.Background(), "member", "p1", InviteMemberRequest{UserID: "u2"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_InviteMember_BadRole(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleOwner, "owner")
	f.users.On("GetByID", mock.Anything, "u2").Return(&domain.User{ID: "u2"}, nil)

	_, err := f.service.InviteMember(context.Background(), "owner", "p1", InviteMemberRequest{UserID: "u2", Role: "overlord"})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_RespondInvitation_Accept(t *testing.T) {
	f := newFixture()
	f.members.On("GetByID", mock.Anything, "edge1").Return(&domain.PropertyMember{
		ID:               "edge1",
		PropertyID:       "p1",
		UserID:           "u2",
		Role:             domain.MemberRoleMember,
		InvitationStatus: domain.InvitationPending,
	}, nil)
	f.members.On("UpdateStatus", mock.Anything, "edge1", domain.InvitationAccepted).Return(int64(1), nil)

	pm, err := f.service.RespondInvitation(context.Background(), "u2", "edge1", true)

	assert.NoError(t, err)
	assert.Equal(t, domain.InvitationAccepted, pm.InvitationStatus)
}

func TestService_RespondInvitation_OnlyInvitee(t *testing.T) {
	f := newFixture()
	f.members.On("GetByID", mock.Anything, "edge1").Return(&domain.PropertyMember{
		ID:               "edge1",
		UserID:           "u2",
		InvitationStatus: domain.InvitationPending,
	}, nil)

	_, err := f.service.RespondInvitation(context.Background(), "somebody-else", "edge1", true)

	assert.ErrorIs(t, err, ErrAccessDenied)
	f.members.AssertNotCalled(t, "UpdateStatus")
}

func TestService_RespondInvitation_AlreadyAnswered(t *testing.T) {
	f := newFixture()
	f.members.On("GetByID", mock.Anything, "edge1").Return(&domain.PropertyMember{
		ID:               "edge1",
		UserID:           "u2",
		InvitationStatus: domain.InvitationAccepted,
	}, nil)

	_, err := f.service.RespondInvitation(context.Background(), "u2", "edge1", false)

	assert.ErrorIs(t, err, ErrInvitationClosed)
}

func TestService_RespondInvitation_LostRace(t *testing.T) {
	f := newFixture()
	f.members.On("GetByID", mock.Anything, "edge1").Return(&domain.PropertyMember{
		ID:               "edge1",
		UserID:           "u2",
		InvitationStatus: domain.InvitationPending,
	}, nil)
	// the read saw pending but the guarded update changed nothing
	f.members.On("UpdateStatus", mock.Anything, "edge1", domain.InvitationRejected).Return(int64(0), nil)

	_, err := f.service.RespondInvitation(context.Background(), "u2", "edge1", false)

	assert.ErrorIs(t, err, ErrInvitationClosed)
}

func TestService_CreateRoom_DefaultsCapacity(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleAdmin, "admin")
	f.rooms.On("Create", mock.Anything, mock.Anything).Return(nil)

	room, err := f.service.CreateRoom(context.Background(), "admin", "p1", CreateRoomRequest{Name: "Den"})

	assert.NoError(t, err)
	assert.Equal(t, 1, room.Capacity)
	assert.True(t, room.IsActive)
}

func TestService_CreateRoom_NegativeCapacity(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleAdmin, "admin")

	_, err := f.service.CreateRoom(context.Background(), "admin", "p1", CreateRoomRequest{Name: "Den", Capacity: -2})

	assert.ErrorIs(t, err, ErrValidation)
	f.rooms.AssertNotCalled(t, "Create")
}

func TestService_CreateRoom_MemberDenied(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleMember, "member")

	_, err := f.service.CreateRoom(context.Background(), "member", "p1", CreateRoomRequest{Name: "Den"})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_UpdateRoom_Success(t *testing.T) {
	f := newFixture()
	f.rooms.On("GetByID", mock.Anything, "room1").Return(&domain.Room{
		ID:         "room1",
		PropertyID: "p1",
		Name:       "Den",
		Capacity:   4,
		IsActive:   true,
	}, nil)
	f.withProperty(access.RoleOwner, "owner")
	f.rooms.On("Update", mock.Anything, mock.Anything).Return(nil)

	capacity := 6
	inactive := false
	room, err := f.service.UpdateRoom(context.Background(), "owner", "room1", UpdateRoomRequest{
		Capacity: &capacity,
		IsActive: &inactive,
	})

	assert.NoError(t, err)
	assert.Equal(t, 6, room.Capacity)
	assert.False(t, room.IsActive)
}

func TestService_UpdateRoom_ZeroCapacityRejected(t *testing.T) {
	f := newFixture()
	f.rooms.On("GetByID", mock.Anything, "room1").Return(&domain.Room{
		ID:         "room1",
		PropertyID: "p1",
		Capacity:   4,
	}, nil)
	f.withProperty(access.RoleOwner, "owner")

	capacity := 0
	_, err := f.service.UpdateRoom(context.Background(), "owner", "room1", UpdateRoomRequest{Capacity: &capacity})

	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_ListRooms_MemberAllowed(t *testing.T) {
	f := newFixture()
	f.withProperty(access.RoleMember, "member")
	f.rooms.On("ListActiveByProperty", mock.Anything, "p1").Return([]domain.Room{{ID: "room1"}}, nil)

	rooms, err := f.service.ListRooms(context.Background(), "member", "p1")

	assert.NoError(t, err)
	assert.Len(t, rooms, 1)
}
