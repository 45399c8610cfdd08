package cache

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// GuildPermissions computes a member's guild-level permissions from the
// given role IDs. The guild owner always has every permission. Otherwise
// the permissions of the guild's everyone role (whose ID equals the guild
// ID) are folded together with those of every resolvable supplied role;
// unknown role IDs are skipped. Administrator implies every permission.
func (c *Cache) GuildPermissions(
	guildID discord.GuildID, userID discord.UserID, roleIDs []discord.RoleID,
) discord.Permissions {
	if g, ok := c.Guild(guildID); ok && g.OwnerID == userID {
		return discord.PermissionAll
	}

	var perms discord.Permissions
	if everyone, ok := c.Role(discord.RoleID(guildID)); ok {
		perms = everyone.Permissions
	}

	for _, id := range roleIDs {
		if role, ok := c.Role(id); ok {
			perms |= role.Permissions
		}
	}

	if perms.Has(discord.PermissionAdministrator) {
		return discord.PermissionAll
	}
	return perms
}
