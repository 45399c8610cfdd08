package cache

import (
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmojisUpdateReplaces(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	added := testEmojiID + 1
	applyEvent(t, c, &gateway.GuildEmojisUpdateEvent{
		GuildID: testGuildID,
		Emojis: []discord.Emoji{
			{ID: added, Name: "blobcat_mlem"},
		},
	})

	// the original emoji is no longer in the list and must be gone
	_, ok := c.Emoji(testEmojiID)
	assert.False(t, ok)

	e, ok := c.Emoji(added)
	require.True(t, ok)
	assert.Equal(t, "blobcat_mlem", e.Name)

	ids, ok := c.GuildEmojis(testGuildID)
	require.True(t, ok)
	assert.ElementsMatch(t, []discord.EmojiID{added}, ids)
}

func TestEmojisUpdateUnchangedKeepsPointer(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	first, ok := c.Emoji(testEmojiID)
	require.True(t, ok)

	applyEvent(t, c, &gateway.GuildEmojisUpdateEvent{
		GuildID: testGuildID,
		Emojis: []discord.Emoji{
			{ID: testEmojiID, Name: "blobcat"},
		},
	})

	second, ok := c.Emoji(testEmojiID)
	require.True(t, ok)
	assert.Same(t, first, second)
}

func TestEmojiUploaderSharesUserRecord(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())

	applyEvent(t, c, &gateway.GuildEmojisUpdateEvent{
		GuildID: testGuildID,
		Emojis: []discord.Emoji{
			{
				ID:   testEmojiID,
				Name: "blobcat",
				User: discord.User{ID: testUserID, Username: "iroha"},
			},
		},
	})

	e, ok := c.Emoji(testEmojiID)
	require.True(t, ok)
	require.NotNil(t, e.User)

	u, ok := c.User(testUserID)
	require.True(t, ok)
	assert.Same(t, e.User, u)
}
