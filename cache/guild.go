package cache

import (
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/kagura-bot/kagura/common"
)

// Guild is the cached summary of a guild. Ownership of channels, roles,
// emojis, members, presences and voice states is expressed through the
// per-guild index sets, never on the guild record itself.
type Guild struct {
	ID            discord.GuildID
	OwnerID       discord.UserID
	Description   string
	Icon          discord.Hash
	Features      []discord.GuildFeature
	MemberCount   uint64
	NitroBoost    discord.NitroBoost
	NitroBoosters uint64
	VanityURLCode string
	Unavailable   bool
}

// Guild gets a guild by ID.
func (c *Cache) Guild(id discord.GuildID) (*Guild, bool) {
	return c.guilds.Get(id)
}

// Guilds returns the IDs of all cached guilds, unordered.
func (c *Cache) Guilds() []discord.GuildID {
	return c.guilds.Keys()
}

// GuildUnavailable reports whether the given guild is currently marked
// unavailable.
func (c *Cache) GuildUnavailable(id discord.GuildID) bool {
	return c.unavailable.Exists(id)
}

func guildFromModel(g discord.Guild) *Guild {
	return &Guild{
		ID:            g.ID,
		OwnerID:       g.OwnerID,
		Description:   g.Description,
		Icon:          g.Icon,
		Features:      g.Features,
		NitroBoost:    g.NitroBoost,
		NitroBoosters: g.NitroBoosters,
		VanityURLCode: g.VanityURLCode,
	}
}

// cacheGuild caches a full guild create payload: children first, so the
// index sets always exist by the time states and objects are put in them,
// then the guild record itself.
func (c *Cache) cacheGuild(ev *gateway.GuildCreateEvent) {
	if c.wants(ResourceChannels) {
		c.guildChannels.Set(ev.ID, common.NewSet[discord.ChannelID]())
		c.cacheGuildChannels(ev.ID, ev.Channels)
	}

	if c.wants(ResourceEmojis) {
		c.guildEmojis.Set(ev.ID, common.NewSet[discord.EmojiID]())
		for _, e := range ev.Emojis {
			c.cacheEmoji(ev.ID, e)
		}
	}

	if c.wants(ResourceMembers) {
		c.guildMembers.Set(ev.ID, common.NewSet[discord.UserID]())
		c.cacheMembers(ev.ID, ev.Members)
	}

	if c.wants(ResourcePresences) {
		c.guildOnline.Set(ev.ID, common.NewSet[discord.UserID]())
		c.cachePresences(ev.ID, ev.Presences)
	}

	if c.wants(ResourceRoles) {
		c.guildRoles.Set(ev.ID, common.NewSet[discord.RoleID]())
		c.cacheRoles(ev.ID, ev.Roles)
	}

	if c.wants(ResourceVoiceStates) {
		for _, vs := range ev.VoiceStates {
			// voice states inside a guild create omit the guild ID
			vs.GuildID = ev.ID
			c.cacheVoiceState(vs)
		}
	}

	g := guildFromModel(ev.Guild)
	g.MemberCount = ev.MemberCount
	g.Unavailable = ev.Unavailable

	c.unavailable.Remove(ev.ID)
	c.guilds.Set(ev.ID, g)
}

// cacheGuildUpdate refreshes a guild's summary fields. Member count and
// availability are not part of the update payload and carry over from the
// previous record.
func (c *Cache) cacheGuildUpdate(g discord.Guild) {
	c.guilds.WriteFunc(func(raw map[discord.GuildID]*Guild) {
		updated := guildFromModel(g)
		if cur, ok := raw[g.ID]; ok {
			updated.MemberCount = cur.MemberCount
			updated.Unavailable = cur.Unavailable
		}
		raw[g.ID] = updated
	})
}

// guildUnavailable marks a guild as unavailable. Only the guild record is
// dropped; children stay cached for when the guild comes back.
func (c *Cache) guildUnavailable(id discord.GuildID) {
	c.unavailable.Add(id)
	c.guilds.Remove(id)
}

// deleteGuild removes a guild and everything indexed under it.
func (c *Cache) deleteGuild(id discord.GuildID) {
	if set, ok := c.guildChannels.Get(id); ok {
		for _, chID := range set.Values() {
			c.channels.Remove(chID)
			c.messages.Remove(chID)
		}
	}
	c.guildChannels.Remove(id)

	if set, ok := c.guildEmojis.Get(id); ok {
		for _, emojiID := range set.Values() {
			c.emojis.Remove(emojiID)
		}
	}
	c.guildEmojis.Remove(id)

	if set, ok := c.guildRoles.Get(id); ok {
		for _, roleID := range set.Values() {
			c.roles.Remove(roleID)
		}
	}
	c.guildRoles.Remove(id)

	if set, ok := c.guildMembers.Get(id); ok {
		for _, userID := range set.Values() {
			c.members.Remove(memberKey{Guild: id, User: userID})
			c.removeUserGuild(userID, id)
		}
	}
	c.guildMembers.Remove(id)

	c.guildOnline.Remove(id)
	c.voice.removeGuild(id)

	c.unavailable.Remove(id)
	c.guilds.Remove(id)
}
