package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCapabilitiesFor(t *testing.T) {
	owner := CapabilitiesFor(RoleOwner)
	assert.True(t, owner.CanManagePosts)
	assert.True(t, owner.CanManageUsers)

	mod := CapabilitiesFor(RoleModerator)
	assert.True(t, mod.CanManagePosts)
	assert.False(t, mod.CanManageUsers)

	none := CapabilitiesFor("intern")
	assert.False(t, none.CanManagePosts)
	assert.False(t, none.CanManageUsers)
}
