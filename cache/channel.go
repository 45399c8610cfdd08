package cache

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// GuildChannel gets a guild channel by ID.
func (c *Cache) GuildChannel(id discord.ChannelID) (*discord.Channel, bool) {
	return c.channels.Get(id)
}

// PrivateChannel gets a DM or group DM channel by ID.
func (c *Cache) PrivateChannel(id discord.ChannelID) (*discord.Channel, bool) {
	return c.privates.Get(id)
}

// GuildChannels returns the IDs of the guild's channels, unordered. ok is
// false if the guild is not indexed.
func (c *Cache) GuildChannels(guildID discord.GuildID) ([]discord.ChannelID, bool) {
	set, ok := c.guildChannels.Get(guildID)
	if !ok {
		return nil, false
	}
	return set.Values(), true
}

func (c *Cache) cacheGuildChannels(guildID discord.GuildID, channels []discord.Channel) {
	for _, ch := range channels {
		c.cacheGuildChannel(guildID, ch)
	}
}

// cacheGuildChannel caches a guild channel, attaching the guild ID for
// channels that arrive without one (channels inside a guild create payload
// omit it).
func (c *Cache) cacheGuildChannel(guildID discord.GuildID, ch discord.Channel) *discord.Channel {
	ch.GuildID = guildID

	c.guildChannels.
		GetOrCreate(guildID, newSet[discord.ChannelID]).
		Add(ch.ID)

	return upsertItem(c.channels, ch.ID, ch)
}

func (c *Cache) cachePrivateChannel(ch discord.Channel) *discord.Channel {
	return upsertItem(c.privates, ch.ID, ch)
}

// cacheChannel routes a standalone channel event to the guild or private
// map depending on whether it is guild-scoped.
func (c *Cache) cacheChannel(ch discord.Channel) {
	if ch.GuildID.IsValid() {
		c.cacheGuildChannel(ch.GuildID, ch)
	} else {
		c.cachePrivateChannel(ch)
	}
}

// deleteChannel removes a channel, its guild index entry, and its message
// log.
func (c *Cache) deleteChannel(ch discord.Channel) {
	if !ch.GuildID.IsValid() {
		c.privates.Remove(ch.ID)
		c.messages.Remove(ch.ID)
		return
	}

	c.channels.Remove(ch.ID)
	c.messages.Remove(ch.ID)
	if set, ok := c.guildChannels.Get(ch.GuildID); ok {
		set.Remove(ch.ID)
	}
}
