package cache

import (
	"github.com/diamondburned/arikawa/v3/gateway"
)

// Updater is implemented by anything that can apply itself to a cache. The
// cache has no knowledge of event types: each gateway event kind gets its
// own Updater, and adding a new kind means adding a new implementation, not
// changing the cache.
//
// UpdateCache runs synchronously and completes its whole mutation sequence
// before returning; there is no partial application.
type Updater interface {
	UpdateCache(c *Cache)
}

// UpdaterFor adapts a raw gateway event to its Updater. ok is false for
// event kinds the cache doesn't track.
func UpdaterFor(ev interface{}) (Updater, bool) {
	switch ev := ev.(type) {
	case *gateway.ReadyEvent:
		return readyUpdate{ev}, true
	case *gateway.GuildCreateEvent:
		return guildCreateUpdate{ev}, true
	case *gateway.GuildUpdateEvent:
		return guildUpdateUpdate{ev}, true
	case *gateway.GuildDeleteEvent:
		return guildDeleteUpdate{ev}, true
	case *gateway.ChannelCreateEvent:
		return channelCreateUpdate{ev}, true
	case *gateway.ChannelUpdateEvent:
		return channelUpdateUpdate{ev}, true
	case *gateway.ChannelDeleteEvent:
		return channelDeleteUpdate{ev}, true
	case *gateway.GuildRoleCreateEvent:
		return roleCreateUpdate{ev}, true
	case *gateway.GuildRoleUpdateEvent:
		return roleUpdateUpdate{ev}, true
	case *gateway.GuildRoleDeleteEvent:
		return roleDeleteUpdate{ev}, true
	case *gateway.GuildEmojisUpdateEvent:
		return emojisUpdate{ev}, true
	case *gateway.GuildMemberAddEvent:
		return memberAddUpdate{ev}, true
	case *gateway.GuildMemberUpdateEvent:
		return memberUpdateUpdate{ev}, true
	case *gateway.GuildMemberRemoveEvent:
		return memberRemoveUpdate{ev}, true
	case *gateway.GuildMembersChunkEvent:
		return memberChunkUpdate{ev}, true
	case *gateway.PresenceUpdateEvent:
		return presenceUpdate{ev}, true
	case *gateway.VoiceStateUpdateEvent:
		return voiceStateUpdate{ev}, true
	case *gateway.UserUpdateEvent:
		return userUpdate{ev}, true
	case *gateway.MessageCreateEvent:
		return messageCreateUpdate{ev}, true
	case *gateway.MessageUpdateEvent:
		return messageUpdateUpdate{ev}, true
	case *gateway.MessageDeleteEvent:
		return messageDeleteUpdate{ev}, true
	case *gateway.MessageDeleteBulkEvent:
		return messageDeleteBulkUpdate{ev}, true
	}
	return nil, false
}

type readyUpdate struct{ ev *gateway.ReadyEvent }

func (u readyUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceCurrentUser) {
		c.cacheCurrentUser(u.ev.User)
	}
}

type userUpdate struct{ ev *gateway.UserUpdateEvent }

func (u userUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceCurrentUser) {
		c.cacheCurrentUser(u.ev.User)
	}
}

type guildCreateUpdate struct{ ev *gateway.GuildCreateEvent }

func (u guildCreateUpdate) UpdateCache(c *Cache) {
	if !c.wants(ResourceGuilds) {
		return
	}
	if u.ev.Unavailable {
		c.guildUnavailable(u.ev.ID)
		return
	}
	c.cacheGuild(u.ev)
}

type guildUpdateUpdate struct{ ev *gateway.GuildUpdateEvent }

func (u guildUpdateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceGuilds) {
		c.cacheGuildUpdate(u.ev.Guild)
	}
}

type guildDeleteUpdate struct{ ev *gateway.GuildDeleteEvent }

func (u guildDeleteUpdate) UpdateCache(c *Cache) {
	if !c.wants(ResourceGuilds) {
		return
	}
	if u.ev.Unavailable {
		c.guildUnavailable(u.ev.ID)
		return
	}
	c.deleteGuild(u.ev.ID)
}

type channelCreateUpdate struct{ ev *gateway.ChannelCreateEvent }

func (u channelCreateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceChannels) {
		c.cacheChannel(u.ev.Channel)
	}
}

type channelUpdateUpdate struct{ ev *gateway.ChannelUpdateEvent }

func (u channelUpdateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceChannels) {
		c.cacheChannel(u.ev.Channel)
	}
}

type channelDeleteUpdate struct{ ev *gateway.ChannelDeleteEvent }

func (u channelDeleteUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceChannels) {
		c.deleteChannel(u.ev.Channel)
	}
}

type roleCreateUpdate struct{ ev *gateway.GuildRoleCreateEvent }

func (u roleCreateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceRoles) {
		c.cacheRole(u.ev.GuildID, u.ev.Role)
	}
}

type roleUpdateUpdate struct{ ev *gateway.GuildRoleUpdateEvent }

func (u roleUpdateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceRoles) {
		c.cacheRole(u.ev.GuildID, u.ev.Role)
	}
}

type roleDeleteUpdate struct{ ev *gateway.GuildRoleDeleteEvent }

func (u roleDeleteUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceRoles) {
		c.deleteRole(u.ev.RoleID)
	}
}

type emojisUpdate struct{ ev *gateway.GuildEmojisUpdateEvent }

func (u emojisUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceEmojis) {
		c.cacheEmojis(u.ev.GuildID, u.ev.Emojis)
	}
}

type memberAddUpdate struct{ ev *gateway.GuildMemberAddEvent }

func (u memberAddUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMembers) {
		c.cacheMember(u.ev.GuildID, u.ev.Member)
	}
}

type memberUpdateUpdate struct{ ev *gateway.GuildMemberUpdateEvent }

func (u memberUpdateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMembers) {
		c.cacheMemberUpdate(u.ev)
	}
}

type memberRemoveUpdate struct{ ev *gateway.GuildMemberRemoveEvent }

func (u memberRemoveUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMembers) {
		c.removeMember(u.ev.GuildID, u.ev.User.ID)
	}
}

type memberChunkUpdate struct{ ev *gateway.GuildMembersChunkEvent }

func (u memberChunkUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMembers) {
		c.cacheMembers(u.ev.GuildID, u.ev.Members)
	}
}

type presenceUpdate struct{ ev *gateway.PresenceUpdateEvent }

func (u presenceUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourcePresences) {
		c.cachePresence(u.ev.GuildID, u.ev.User.ID, u.ev.Status)
	}
}

type voiceStateUpdate struct{ ev *gateway.VoiceStateUpdateEvent }

func (u voiceStateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceVoiceStates) {
		c.cacheVoiceState(u.ev.VoiceState)
	}
}

type messageCreateUpdate struct{ ev *gateway.MessageCreateEvent }

func (u messageCreateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMessages) {
		c.cacheMessage(u.ev.Message)
	}
}

type messageUpdateUpdate struct{ ev *gateway.MessageUpdateEvent }

func (u messageUpdateUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMessages) {
		c.cacheMessageUpdate(u.ev.Message)
	}
}

type messageDeleteUpdate struct{ ev *gateway.MessageDeleteEvent }

func (u messageDeleteUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMessages) {
		c.removeMessages(u.ev.ChannelID, u.ev.ID)
	}
}

type messageDeleteBulkUpdate struct{ ev *gateway.MessageDeleteBulkEvent }

func (u messageDeleteBulkUpdate) UpdateCache(c *Cache) {
	if c.wants(ResourceMessages) {
		c.removeMessages(u.ev.ChannelID, u.ev.IDs...)
	}
}
