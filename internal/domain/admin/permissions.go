package admin

// Named capability flags stored on the admin record. The record's role
// is what the gate enforces; permissions are advisory detail for the
// admin UI and for finer-grained checks in downstream subsystems.
const (
	PermManageUsers   = "users.manage"
	PermBanUsers      = "users.ban"
	PermManageReports = "reports.manage"
	PermViewAuditLogs = "audit.view"
	PermManageAdmins  = "admins.manage"
	PermManageRooms   = "rooms.manage"
	PermManageContent = "content.manage"
)

// DefaultPermissions returns the permission set granted on promotion
// when the caller does not supply one
func DefaultPermissions(role Role) PermissionMap {
	perms := PermissionMap{
		PermBanUsers:      true,
		PermManageReports: true,
		PermManageContent: true,
		PermManageRooms:   true,
		PermViewAuditLogs: true,
	}
	if role == RoleSuperadmin {
		perms[PermManageUsers] = true
		perms[PermManageAdmins] = true
	}
	return perms
}
