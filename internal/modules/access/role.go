package access

// Role is a caller's effective standing on a property. Ordering matters:
// each level includes everything the previous one may do.
type Role int

const (
	RoleNone Role = iota
	RoleMember
	RoleAdmin
	RoleOwner
)

func (r Role) String() string {
	switch r {
	case RoleMember:
		return "member"
	case RoleAdmin:
		return "admin"
	case RoleOwner:
		return "owner"
	default:
		return "none"
	}
}

// Permission table. Every operation on a property goes through one of
// these checks so the rules live in a single place.

func (r Role) CanViewProperty() bool { return r >= RoleMember }

func (r Role) CanCreateBooking() bool { return r >= RoleMember }

func (r Role) CanDecideBooking() bool { return r >= RoleAdmin }

// CanManage covers room and time-allocation edits.
func (r Role) CanManage() bool { return r >= RoleAdmin }

func (r Role) CanToggleActive() bool { return r == RoleOwner }

// CanViewBooking: the applicant always sees their own application;
// otherwise admin or owner standing is required.
func (r Role) CanViewBooking(isApplicant bool) bool {
	return isApplicant || r >= RoleAdmin
}
