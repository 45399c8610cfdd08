package cache

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testGuildID   = discord.GuildID(100)
	testChannelID = discord.ChannelID(200)
	testUserID    = discord.UserID(300)
	testRoleID    = discord.RoleID(400)
	testEmojiID   = discord.EmojiID(500)
)

func testGuildCreate() *gateway.GuildCreateEvent {
	return &gateway.GuildCreateEvent{
		Guild: discord.Guild{
			ID:      testGuildID,
			OwnerID: testUserID,
			Roles: []discord.Role{
				{ID: discord.RoleID(uint64(testGuildID)), Permissions: discord.PermissionViewChannel},
				{ID: testRoleID, Permissions: discord.PermissionSendMessages},
			},
			Emojis: []discord.Emoji{
				{ID: testEmojiID, Name: "blobcat"},
			},
		},
		MemberCount: 2,
		Channels: []discord.Channel{
			{ID: testChannelID, Name: "general"},
		},
		Members: []discord.Member{
			{User: discord.User{ID: testUserID, Username: "iroha"}},
			{User: discord.User{ID: testUserID + 1, Username: "yachiyo"}},
		},
		Presences: []discord.Presence{
			{User: discord.User{ID: testUserID}, Status: discord.OnlineStatus},
		},
		VoiceStates: []discord.VoiceState{
			{ChannelID: testChannelID, UserID: testUserID},
		},
	}
}

func applyEvent(t *testing.T, c *Cache, ev interface{}) {
	t.Helper()

	u, ok := UpdaterFor(ev)
	require.True(t, ok, "no updater for %T", ev)
	c.Update(u)
}

func TestGuildCreate(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	g, ok := c.Guild(testGuildID)
	require.True(t, ok)
	assert.Equal(t, testUserID, g.OwnerID)
	assert.EqualValues(t, 2, g.MemberCount)
	assert.False(t, g.Unavailable)
	assert.False(t, c.GuildUnavailable(testGuildID))

	// children attached to the guild
	channels, ok := c.GuildChannels(testGuildID)
	require.True(t, ok)
	assert.ElementsMatch(t, []discord.ChannelID{testChannelID}, channels)

	ch, ok := c.GuildChannel(testChannelID)
	require.True(t, ok)
	assert.Equal(t, testGuildID, ch.GuildID, "channel should get the guild ID attached")

	roles, ok := c.GuildRoles(testGuildID)
	require.True(t, ok)
	assert.Len(t, roles, 2)

	members, ok := c.GuildMembers(testGuildID)
	require.True(t, ok)
	assert.Len(t, members, 2)

	// voice states in the payload carry no guild ID of their own
	chID, ok := c.VoiceState(testGuildID, testUserID)
	require.True(t, ok)
	assert.Equal(t, testChannelID, chID)

	assert.True(t, c.Presence(testGuildID, testUserID))
}

func TestGuildCreateResetsIndexes(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	// second create with fewer children replaces, not merges
	ev := testGuildCreate()
	ev.Channels = nil
	applyEvent(t, c, ev)

	channels, ok := c.GuildChannels(testGuildID)
	require.True(t, ok)
	assert.Empty(t, channels)
}

func TestGuildUpdatePreservesCountAndAvailability(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	applyEvent(t, c, &gateway.GuildUpdateEvent{Guild: discord.Guild{
		ID:      testGuildID,
		OwnerID: testUserID + 1,
	}})

	g, ok := c.Guild(testGuildID)
	require.True(t, ok)
	assert.Equal(t, testUserID+1, g.OwnerID)
	assert.EqualValues(t, 2, g.MemberCount, "member count should survive guild updates")
}

func TestGuildUnavailable(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	applyEvent(t, c, &gateway.GuildDeleteEvent{ID: testGuildID, Unavailable: true})

	_, ok := c.Guild(testGuildID)
	assert.False(t, ok, "unavailable guild should not be gettable")
	assert.True(t, c.GuildUnavailable(testGuildID))

	// children survive an outage
	_, ok = c.GuildChannel(testChannelID)
	assert.True(t, ok)

	// guild coming back clears the flag
	applyEvent(t, c, testGuildCreate())
	assert.False(t, c.GuildUnavailable(testGuildID))
	_, ok = c.Guild(testGuildID)
	assert.True(t, ok)
}

func TestGuildDeleteCascades(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())
	applyEvent(t, c, &gateway.MessageCreateEvent{Message: discord.Message{
		ID:        discord.MessageID(1),
		ChannelID: testChannelID,
		GuildID:   testGuildID,
	}})

	applyEvent(t, c, &gateway.GuildDeleteEvent{ID: testGuildID})

	_, ok := c.Guild(testGuildID)
	assert.False(t, ok)
	assert.False(t, c.GuildUnavailable(testGuildID))

	_, ok = c.GuildChannel(testChannelID)
	assert.False(t, ok)
	_, ok = c.Role(testRoleID)
	assert.False(t, ok)
	_, ok = c.Emoji(testEmojiID)
	assert.False(t, ok)
	_, ok = c.Member(testGuildID, testUserID)
	assert.False(t, ok)
	_, ok = c.User(testUserID)
	assert.False(t, ok, "user reachable through no guild should be evicted")
	_, ok = c.VoiceState(testGuildID, testUserID)
	assert.False(t, ok)
	assert.Empty(t, c.ChannelMessages(testChannelID))

	_, ok = c.GuildChannels(testGuildID)
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	c.Clear()

	assert.Empty(t, c.Guilds())
	_, ok := c.GuildChannel(testChannelID)
	assert.False(t, ok)
	assert.Equal(t, Counts{}, c.Counts())
}

func TestResourceFiltering(t *testing.T) {
	c := NewWithConfig(Config{Resources: ResourceGuilds | ResourceRoles})
	applyEvent(t, c, testGuildCreate())

	_, ok := c.Guild(testGuildID)
	assert.True(t, ok)
	_, ok = c.Role(testRoleID)
	assert.True(t, ok)

	_, ok = c.GuildChannel(testChannelID)
	assert.False(t, ok, "channels resource is disabled")
	_, ok = c.Member(testGuildID, testUserID)
	assert.False(t, ok, "members resource is disabled")
	assert.False(t, c.Presence(testGuildID, testUserID))
}

func TestCurrentUser(t *testing.T) {
	c := New()

	_, ok := c.CurrentUser()
	assert.False(t, ok)

	applyEvent(t, c, &gateway.ReadyEvent{User: discord.User{ID: testUserID, Username: "kagura"}})

	u, ok := c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "kagura", u.Username)

	applyEvent(t, c, &gateway.UserUpdateEvent{User: discord.User{ID: testUserID, Username: "kagura2"}})

	u, ok = c.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "kagura2", u.Username)
}
