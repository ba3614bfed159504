package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedRole(t *testing.T) {
	assert.True(t, AllowedRole(SendReminders, WeddingAdmin))
	assert.True(t, AllowedRole(SendReminders, Planner))
	assert.False(t, AllowedRole(SendReminders, "guest"))
	assert.False(t, AllowedRole(ManageWedding, WeddingAdmin))
	assert.False(t, AllowedRole("unknown", Planner))
}

func TestEveryPermissionHasRoles(t *testing.T) {
	for p, roles := range PermissionRoles {
		assert.NotEmpty(t, roles, p)
		for _, r := range roles {
			assert.True(t, IsValidRole(r), "%s: %s", p, r)
		}
	}
}
