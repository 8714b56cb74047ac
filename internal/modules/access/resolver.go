package access

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"roomshare/internal/domain"
)

// MembershipDirectory reads membership edges. Lookup failures other than
// "no edge" are propagated to the caller.
type MembershipDirectory interface {
	GetMembership(ctx context.Context, propertyID, userID string) (*domain.PropertyMember, error)
}

type Resolver struct {
	members MembershipDirectory
}

func NewResolver(members MembershipDirectory) *Resolver {
	return &Resolver{members: members}
}

// Resolve derives the user's effective role on the property: owner beats
// everything, then an accepted admin edge, then any accepted edge. A
// pending or rejected invitation grants nothing.
func (r *Resolver) Resolve(ctx context.Context, userID string, property *domain.Property) (Role, error) {
	if property.OwnerID == userID {
		return RoleOwner, nil
	}

	pm, err := r.members.GetMembership(ctx, property.ID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return RoleNone, nil
		}
		return RoleNone, err
	}

	if pm.InvitationStatus != domain.InvitationAccepted {
		return RoleNone, nil
	}
	if pm.Role == domain.MemberRoleAdmin {
		return RoleAdmin, nil
	}
	return RoleMember, nil
}
