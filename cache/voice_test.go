package cache

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voiceEvent(guildID discord.GuildID, userID discord.UserID, channelID discord.ChannelID) *gateway.VoiceStateUpdateEvent {
	return &gateway.VoiceStateUpdateEvent{VoiceState: discord.VoiceState{
		GuildID:   guildID,
		UserID:    userID,
		ChannelID: channelID,
	}}
}

func TestVoiceJoinMoveLeave(t *testing.T) {
	c := New()

	chA := testChannelID
	chB := testChannelID + 1

	applyEvent(t, c, voiceEvent(testGuildID, testUserID, chA))

	ch, ok := c.VoiceState(testGuildID, testUserID)
	require.True(t, ok)
	assert.Equal(t, chA, ch)

	users, ok := c.VoiceChannelUsers(chA)
	require.True(t, ok)
	assert.ElementsMatch(t, []discord.UserID{testUserID}, users)

	// moving channels removes the user from the old channel's index
	applyEvent(t, c, voiceEvent(testGuildID, testUserID, chB))

	ch, ok = c.VoiceState(testGuildID, testUserID)
	require.True(t, ok)
	assert.Equal(t, chB, ch)

	_, ok = c.VoiceChannelUsers(chA)
	assert.False(t, ok, "empty channel index should be dropped")

	// a null channel means the user disconnected
	applyEvent(t, c, voiceEvent(testGuildID, testUserID, 0))

	_, ok = c.VoiceState(testGuildID, testUserID)
	assert.False(t, ok)
	_, ok = c.VoiceChannelUsers(chB)
	assert.False(t, ok)
	_, ok = c.VoiceGuildUsers(testGuildID)
	assert.False(t, ok)
}

func TestVoiceIdempotentJoin(t *testing.T) {
	c := New()

	applyEvent(t, c, voiceEvent(testGuildID, testUserID, testChannelID))
	applyEvent(t, c, voiceEvent(testGuildID, testUserID, testChannelID))

	users, ok := c.VoiceChannelUsers(testChannelID)
	require.True(t, ok)
	assert.Len(t, users, 1)

	users, ok = c.VoiceGuildUsers(testGuildID)
	require.True(t, ok)
	assert.Len(t, users, 1)
}

func TestVoiceGuildIndex(t *testing.T) {
	c := New()

	applyEvent(t, c, voiceEvent(testGuildID, testUserID, testChannelID))
	applyEvent(t, c, voiceEvent(testGuildID, testUserID+1, testChannelID+1))

	users, ok := c.VoiceGuildUsers(testGuildID)
	require.True(t, ok)
	assert.ElementsMatch(t, []discord.UserID{testUserID, testUserID + 1}, users)

	applyEvent(t, c, voiceEvent(testGuildID, testUserID, 0))

	users, ok = c.VoiceGuildUsers(testGuildID)
	require.True(t, ok)
	assert.ElementsMatch(t, []discord.UserID{testUserID + 1}, users)
}

func TestVoiceNoGuildDropped(t *testing.T) {
	c := New()

	applyEvent(t, c, voiceEvent(0, testUserID, testChannelID))

	_, ok := c.VoiceChannelUsers(testChannelID)
	assert.False(t, ok)
}

func TestPresenceUpdate(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	other := testUserID + 1

	applyEvent(t, c, &gateway.PresenceUpdateEvent{Presence: discord.Presence{
		GuildID: testGuildID,
		User:    discord.User{ID: other},
		Status:  discord.OnlineStatus,
	}})
	assert.True(t, c.Presence(testGuildID, other))

	applyEvent(t, c, &gateway.PresenceUpdateEvent{Presence: discord.Presence{
		GuildID: testGuildID,
		User:    discord.User{ID: other},
		Status:  discord.IdleStatus,
	}})
	assert.False(t, c.Presence(testGuildID, other))

	// a guild the cache never saw stays untracked
	unknown := testGuildID + 42
	applyEvent(t, c, &gateway.PresenceUpdateEvent{Presence: discord.Presence{
		GuildID: unknown,
		User:    discord.User{ID: other},
		Status:  discord.OnlineStatus,
	}})

	_, ok := c.GuildOnline(unknown)
	assert.False(t, ok)
}
