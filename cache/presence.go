package cache

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// Presence reports whether the user is known to be online in the guild.
func (c *Cache) Presence(guildID discord.GuildID, userID discord.UserID) bool {
	set, ok := c.guildOnline.Get(guildID)
	return ok && set.Exists(userID)
}

// GuildOnline returns the IDs of the users currently online in the guild,
// unordered. ok is false if the guild is not indexed.
func (c *Cache) GuildOnline(guildID discord.GuildID) ([]discord.UserID, bool) {
	set, ok := c.guildOnline.Get(guildID)
	if !ok {
		return nil, false
	}
	return set.Values(), true
}

func (c *Cache) cachePresences(guildID discord.GuildID, presences []discord.Presence) {
	set, ok := c.guildOnline.Get(guildID)
	if !ok {
		return
	}

	for _, p := range presences {
		if p.Status == discord.OnlineStatus {
			set.Add(p.User.ID)
		} else {
			set.Remove(p.User.ID)
		}
	}
}

// cachePresence records a single presence change. Only Online vs not-Online
// is tracked, and a guild that was never indexed stays that way. Returns
// whether the user is now considered online.
func (c *Cache) cachePresence(guildID discord.GuildID, userID discord.UserID, status discord.Status) bool {
	online := status == discord.OnlineStatus

	if set, ok := c.guildOnline.Get(guildID); ok {
		if online {
			set.Add(userID)
		} else {
			set.Remove(userID)
		}
	}

	return online
}
