package property

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"roomshare/internal/domain"
	"roomshare/internal/modules/access"
	"roomshare/internal/modules/allocation"
)

type Service struct {
	properties PropertyRepository
	members    MemberRepository
	rooms      RoomRepository
	users      UserRepository
	resolver   AccessResolver
}

func NewService(
	properties PropertyRepository,
	members MemberRepository,
	rooms RoomRepository,
	users UserRepository,
	resolver AccessResolver,
) *Service {
	return &Service{
		properties: properties,
		members:    members,
		rooms:      rooms,
		users:      users,
		resolver:   resolver,
	}
}

// CreateProperty creates the property together with its default time
// allocation; the two rows are inserted in one transaction.
func (s *Service) CreateProperty(ctx context.Context, ownerID string, req CreatePropertyRequest) (*domain.Property, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrValidation
	}

	p := &domain.Property{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		OwnerID:     ownerID,
		IsActive:    true,
	}
	alloc := allocation.Defaults("")

	if err := s.properties.Create(ctx, p, alloc); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListProperties(ctx context.Context, userID string) ([]domain.Property, error) {
	return s.properties.ListForUser(ctx, userID)
}

func (s *Service) GetProperty(ctx context.Context, callerID, propertyID string) (*domain.Property, error) {
	p, role, err := s.propertyRole(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}
	if !role.CanViewProperty() {
		return nil, ErrAccessDenied
	}
	return p, nil
}

// UpdateProperty lets admins and the owner change name and description.
// The active flag is owner-only; a non-owner admin sending it has that
// field ignored, matching the rest of the update semantics.
func (s *Service) UpdateProperty(ctx context.Context, callerID, propertyID string, req UpdatePropertyRequest) (*domain.Property, error) {
	p, role, err := s.propertyRole(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil && role.CanToggleActive() {
		p.IsActive = *req.IsActive
	}

	if err := s.properties.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// InviteMember creates a pending membership edge. Only one edge may exist
// per (property, user); the unique index backs this up, so a duplicate
// invite fails regardless of timing.
func (s *Service) InviteMember(ctx context.Context, actorID, propertyID string, req InviteMemberRequest) (*domain.PropertyMember, error) {
	_, role, err := s.propertyRole(ctx, actorID, propertyID)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, ErrAccessDenied
	}

	if _, err := s.users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	memberRole := domain.MemberRole(req.Role)
	if memberRole == "" {
		memberRole = domain.MemberRoleMember
	}
	if memberRole != domain.MemberRoleMember && memberRole != domain.MemberRoleAdmin {
		return nil, ErrValidation
	}

	pm := &domain.PropertyMember{
		PropertyID:       propertyID,
		UserID:           req.UserID,
		Role:             memberRole,
		InvitationStatus: domain.InvitationPending,
	}
	if err := s.members.Create(ctx, pm); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrAlreadyMember
		}
		return nil, err
	}
	return pm, nil
}

// RespondInvitation records the invitee's accept/reject answer. Only the
// invited user may answer, and only while the invitation is pending.
func (s *Service) RespondInvitation(ctx context.Context, userID, memberID string, accept bool) (*domain.PropertyMember, error) {
	pm, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if pm.UserID != userID {
		return nil, ErrAccessDenied
	}
	if pm.InvitationStatus != domain.InvitationPending {
		return nil, ErrInvitationClosed
	}

	status := domain.InvitationRejected
	if accept {
		status = domain.InvitationAccepted
	}

	rows, err := s.members.UpdateStatus(ctx, memberID, status)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrInvitationClosed
	}

	pm.InvitationStatus = status
	return pm, nil
}

func (s *Service) ListMembers(ctx context.Context, callerID, propertyID string) ([]domain.PropertyMember, error) {
	_, role, err := s.propertyRole(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}
	if !role.CanViewProperty() {
		return nil, ErrAccessDenied
	}
	return s.members.ListByProperty(ctx, propertyID)
}

func (s *Service) CreateRoom(ctx context.Context, callerID, propertyID string, req CreateRoomRequest) (*domain.Room, error) {
	_, role, err := s.propertyRole(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, ErrAccessDenied
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrValidation
	}
	capacity := req.Capacity
	if capacity == 0 {
		capacity = 1
	}
	if capacity < 1 {
		return nil, ErrValidation
	}

	room := &domain.Room{
		PropertyID:  propertyID,
		Name:        name,
		Capacity:    capacity,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
	}
	if err := s.rooms.Create(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) ListRooms(ctx context.Context, callerID, propertyID string) ([]domain.Room, error) {
	_, role, err := s.propertyRole(ctx, callerID, propertyID)
	if err != nil {
		return nil, err
	}
	if !role.CanViewProperty() {
		return nil, ErrAccessDenied
	}
	return s.rooms.ListActiveByProperty(ctx, propertyID)
}

func (s *Service) GetRoom(ctx context.Context, callerID, roomID string) (*domain.Room, error) {
	room, _, role, err := s.roomRole(ctx, callerID, roomID)
	if err != nil {
		return nil, err
	}
	if !role.CanViewProperty() {
		return nil, ErrAccessDenied
	}
	return room, nil
}

func (s *Service) UpdateRoom(ctx context.Context, callerID, roomID string, req UpdateRoomRequest) (*domain.Room, error) {
	room, _, role, err := s.roomRole(ctx, callerID, roomID)
	if err != nil {
		return nil, err
	}
	if !role.CanManage() {
		return nil, ErrAccessDenied
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ErrValidation
		}
		room.Name = name
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrValidation
		}
		room.Capacity = *req.Capacity
	}
	if req.Description != nil {
		room.Description = strings.TrimSpace(*req.Description)
	}
	if req.IsActive != nil {
		room.IsActive = *req.IsActive
	}

	if err := s.rooms.Update(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}

func (s *Service) propertyRole(ctx context.Context, callerID, propertyID string) (*domain.Property, access.Role, error) {
	p, err := s.properties.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, access.RoleNone, ErrPropertyNotFound
		}
		return nil, access.RoleNone, err
	}
	role, err := s.resolver.Resolve(ctx, callerID, p)
	if err != nil {
		return nil, access.RoleNone, err
	}
	return p, role, nil
}

func (s *Service) roomRole(ctx context.Context, callerID, roomID string) (*domain.Room, *domain.Property, access.Role, error) {
	room, err := s.rooms.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, access.RoleNone, ErrRoomNotFound
		}
		return nil, nil, access.RoleNone, err
	}
	p, role, err := s.propertyRole(ctx, callerID, room.PropertyID)
	if err != nil {
		return nil, nil, access.RoleNone, err
	}
	return room, p, role, nil
}

// isUniqueViolation recognizes the membership index rejecting a duplicate
// edge, for both PostgreSQL (23505) and SQLite builds.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
