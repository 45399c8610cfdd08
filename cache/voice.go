package cache

import (
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
)

// voiceStates holds the (guild, user) → channel mapping plus the by-channel
// and by-guild reverse indices. All three maps live under one lock so the
// indices can never drift from the primary mapping: reverse entries are
// created when a channel or guild gains its first occupant and removed when
// the last one leaves.
type voiceStates struct {
	mu        sync.RWMutex
	states    map[memberKey]discord.ChannelID
	byChannel map[discord.ChannelID]map[discord.UserID]struct{}
	byGuild   map[discord.GuildID]map[discord.UserID]struct{}
}

func newVoiceStates() *voiceStates {
	v := &voiceStates{}
	v.reset()
	return v
}

func (v *voiceStates) reset() {
	v.states = make(map[memberKey]discord.ChannelID)
	v.byChannel = make(map[discord.ChannelID]map[discord.UserID]struct{})
	v.byGuild = make(map[discord.GuildID]map[discord.UserID]struct{})
}

func (v *voiceStates) clear() {
	v.mu.Lock()
	v.reset()
	v.mu.Unlock()
}

func (v *voiceStates) set(guildID discord.GuildID, userID discord.UserID, channelID discord.ChannelID) {
	key := memberKey{Guild: guildID, User: userID}

	v.mu.Lock()
	defer v.mu.Unlock()

	if old, ok := v.states[key]; ok && old != channelID {
		v.dropChannelOccupant(old, userID)
	}

	v.states[key] = channelID

	ch, ok := v.byChannel[channelID]
	if !ok {
		ch = make(map[discord.UserID]struct{})
		v.byChannel[channelID] = ch
	}
	ch[userID] = struct{}{}

	g, ok := v.byGuild[guildID]
	if !ok {
		g = make(map[discord.UserID]struct{})
		v.byGuild[guildID] = g
	}
	g[userID] = struct{}{}
}

func (v *voiceStates) remove(guildID discord.GuildID, userID discord.UserID) {
	key := memberKey{Guild: guildID, User: userID}

	v.mu.Lock()
	defer v.mu.Unlock()

	channelID, ok := v.states[key]
	if !ok {
		return
	}
	delete(v.states, key)

	v.dropChannelOccupant(channelID, userID)

	if g, ok := v.byGuild[guildID]; ok {
		delete(g, userID)
		if len(g) == 0 {
			delete(v.byGuild, guildID)
		}
	}
}

// dropChannelOccupant must be called with the lock held.
func (v *voiceStates) dropChannelOccupant(channelID discord.ChannelID, userID discord.UserID) {
	ch, ok := v.byChannel[channelID]
	if !ok {
		return
	}
	delete(ch, userID)
	if len(ch) == 0 {
		delete(v.byChannel, channelID)
	}
}

func (v *voiceStates) removeGuild(guildID discord.GuildID) {
	v.mu.Lock()
	defer v.mu.Unlock()

	users, ok := v.byGuild[guildID]
	if !ok {
		return
	}

	for userID := range users {
		key := memberKey{Guild: guildID, User: userID}
		if channelID, ok := v.states[key]; ok {
			delete(v.states, key)
			v.dropChannelOccupant(channelID, userID)
		}
	}

	delete(v.byGuild, guildID)
}

// cacheVoiceState applies a voice state update. A state without a guild ID
// cannot be indexed and is dropped; a state without a channel is a
// disconnect.
func (c *Cache) cacheVoiceState(vs discord.VoiceState) {
	if !vs.GuildID.IsValid() {
		return
	}

	if vs.ChannelID.IsValid() {
		c.voice.set(vs.GuildID, vs.UserID, vs.ChannelID)
	} else {
		c.voice.remove(vs.GuildID, vs.UserID)
	}
}

// VoiceState finds which voice channel a user is in for a given guild.
func (c *Cache) VoiceState(guildID discord.GuildID, userID discord.UserID) (discord.ChannelID, bool) {
	c.voice.mu.RLock()
	defer c.voice.mu.RUnlock()

	channelID, ok := c.voice.states[memberKey{Guild: guildID, User: userID}]
	return channelID, ok
}

// VoiceChannelUsers returns the users connected to the given voice channel.
// ok is false if the channel has no occupants.
func (c *Cache) VoiceChannelUsers(channelID discord.ChannelID) ([]discord.UserID, bool) {
	c.voice.mu.RLock()
	defer c.voice.mu.RUnlock()

	users, ok := c.voice.byChannel[channelID]
	if !ok {
		return nil, false
	}

	out := make([]discord.UserID, 0, len(users))
	for id := range users {
		out = append(out, id)
	}
	return out, true
}

// VoiceGuildUsers returns the users connected to any voice channel in the
// given guild. ok is false if the guild has no occupants.
func (c *Cache) VoiceGuildUsers(guildID discord.GuildID) ([]discord.UserID, bool) {
	c.voice.mu.RLock()
	defer c.voice.mu.RUnlock()

	users, ok := c.voice.byGuild[guildID]
	if !ok {
		return nil, false
	}

	out := make([]discord.UserID, 0, len(users))
	for id := range users {
		out = append(out, id)
	}
	return out, true
}
