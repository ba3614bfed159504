package constants

const (
	ViewData        = "view_data"
	SendReminders   = "send_reminders"
	SendInvitations = "send_invitations"
	ManageTemplates = "manage_templates"
	ManageFamilies  = "manage_families"
	ManageGifts     = "manage_gifts"
	ManageWedding   = "manage_wedding"
)

// PermissionRoles maps each permission to the roles allowed to perform it.
var PermissionRoles = map[string][]string{
	ViewData:        {WeddingAdmin, Planner},
	SendReminders:   {WeddingAdmin, Planner},
	SendInvitations: {WeddingAdmin, Planner},
	ManageTemplates: {WeddingAdmin, Planner},
	ManageFamilies:  {WeddingAdmin, Planner},
	ManageGifts:     {WeddingAdmin, Planner},
	ManageWedding:   {Planner},
}

// AllowedRole returns true if role is in the list of allowed roles for the permission.
func AllowedRole(permission, role string) bool {
	roles, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
