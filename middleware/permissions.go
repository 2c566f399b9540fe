package middleware

// Role constants to avoid string typos
const (
	RoleSuperAdmin = "superadmin"
	RoleOrganizer  = "organizer"
	RoleStaff      = "staff"
	RoleVolunteer  = "volunteer"
	RoleAttendee   = "attendee"
)

// AccessContext stores user access information for the request
type AccessContext struct {
	UserID         uint
	RoleName       string
	OrganizerID    *uint  // owning organizer account (staff/volunteer are attached to one)
	PermissionType string // "full" or "readonly"
}

// GetAccessibleOrganizerID returns the organizer account the user acts for
func (ac *AccessContext) GetAccessibleOrganizerID() *uint {
	if ac.OrganizerID != nil {
		return ac.OrganizerID
	}
	if ac.RoleName == RoleOrganizer || ac.RoleName == RoleSuperAdmin {
		id := ac.UserID
		return &id
	}
	return nil
}

// CanWrite returns true if the user has write permissions
func (ac *AccessContext) CanWrite() bool {
	return ac.PermissionType == "full"
}

// CanRead returns true if the user has read permissions
func (ac *AccessContext) CanRead() bool {
	return ac.PermissionType == "full" || ac.PermissionType == "readonly"
}

// IsManager reports whether the user can administer event configuration
// (fields, tickets, coupons, referrals, sessions)
func (ac *AccessContext) IsManager() bool {
	return ac.RoleName == RoleSuperAdmin || ac.RoleName == RoleOrganizer || ac.RoleName == RoleStaff
}
