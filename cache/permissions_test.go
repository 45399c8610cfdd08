package cache

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/stretchr/testify/assert"
)

func TestGuildPermissions(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	member := testUserID + 1

	t.Run("owner", func(t *testing.T) {
		perms := c.GuildPermissions(testGuildID, testUserID, nil)
		assert.Equal(t, discord.PermissionAll, perms)
	})

	t.Run("everyone only", func(t *testing.T) {
		perms := c.GuildPermissions(testGuildID, member, nil)
		assert.Equal(t, discord.PermissionViewChannel, perms)
	})

	t.Run("roles fold", func(t *testing.T) {
		perms := c.GuildPermissions(testGuildID, member, []discord.RoleID{testRoleID})
		assert.Equal(t, discord.PermissionViewChannel|discord.PermissionSendMessages, perms)
	})

	t.Run("unknown roles skipped", func(t *testing.T) {
		perms := c.GuildPermissions(testGuildID, member, []discord.RoleID{testRoleID + 99})
		assert.Equal(t, discord.PermissionViewChannel, perms)
	})

	t.Run("administrator implies all", func(t *testing.T) {
		admin := discord.Role{ID: testRoleID + 1, Permissions: discord.PermissionAdministrator}
		c.cacheRole(testGuildID, admin)

		perms := c.GuildPermissions(testGuildID, member, []discord.RoleID{admin.ID})
		assert.Equal(t, discord.PermissionAll, perms)
	})

	t.Run("unknown guild", func(t *testing.T) {
		perms := c.GuildPermissions(testGuildID+99, member, nil)
		assert.Equal(t, discord.Permissions(0), perms)
	})
}

func TestRoleDelete(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	c.deleteRole(testRoleID)

	_, ok := c.Role(testRoleID)
	assert.False(t, ok)

	roles, ok := c.GuildRoles(testGuildID)
	assert.True(t, ok)
	assert.NotContains(t, roles, testRoleID)
}
