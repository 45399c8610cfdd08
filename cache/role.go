package cache

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// Role gets a role by ID.
func (c *Cache) Role(id discord.RoleID) (*discord.Role, bool) {
	item, ok := c.roles.Get(id)
	if !ok {
		return nil, false
	}
	return item.data, true
}

// GuildRoles returns the IDs of the guild's roles, unordered. ok is false
// if the guild is not indexed.
func (c *Cache) GuildRoles(guildID discord.GuildID) ([]discord.RoleID, bool) {
	set, ok := c.guildRoles.Get(guildID)
	if !ok {
		return nil, false
	}
	return set.Values(), true
}

func (c *Cache) cacheRoles(guildID discord.GuildID, roles []discord.Role) {
	for _, r := range roles {
		c.cacheRole(guildID, r)
	}
}

func (c *Cache) cacheRole(guildID discord.GuildID, role discord.Role) *discord.Role {
	c.guildRoles.
		GetOrCreate(guildID, newSet[discord.RoleID]).
		Add(role.ID)

	return upsertGuildItem(c.roles, guildID, role.ID, role)
}

func (c *Cache) deleteRole(id discord.RoleID) {
	var guildID discord.GuildID
	var found bool

	c.roles.WriteFunc(func(raw map[discord.RoleID]*guildItem[discord.Role]) {
		item, ok := raw[id]
		if !ok {
			return
		}
		guildID = item.guildID
		found = true
		delete(raw, id)
	})
	if !found {
		return
	}

	if set, ok := c.guildRoles.Get(guildID); ok {
		set.Remove(id)
	}
}
