package cache

import (
	"fmt"
	"testing"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func messageEvent(id discord.MessageID, content string) *gateway.MessageCreateEvent {
	return &gateway.MessageCreateEvent{Message: discord.Message{
		ID:        id,
		ChannelID: testChannelID,
		GuildID:   testGuildID,
		Author:    discord.User{ID: testUserID},
		Content:   content,
	}}
}

func TestMessageCreate(t *testing.T) {
	c := New()

	applyEvent(t, c, messageEvent(1, "hello"))

	m, ok := c.Message(testChannelID, 1)
	require.True(t, ok)
	assert.Equal(t, "hello", m.Content)
	assert.Equal(t, testGuildID, m.GuildID)
}

func TestMessageEviction(t *testing.T) {
	c := NewWithConfig(Config{Resources: ResourceAll, MaxMessages: 3})

	for i := 1; i <= 5; i++ {
		applyEvent(t, c, messageEvent(discord.MessageID(i), fmt.Sprint(i)))
	}

	ids := c.ChannelMessages(testChannelID)
	assert.Equal(t, []discord.MessageID{3, 4, 5}, ids, "oldest messages evict first")

	_, ok := c.Message(testChannelID, 1)
	assert.False(t, ok)
}

func TestMessageOrderIndependentOfArrival(t *testing.T) {
	c := New()

	applyEvent(t, c, messageEvent(5, "later"))
	applyEvent(t, c, messageEvent(2, "earlier"))
	applyEvent(t, c, messageEvent(9, "latest"))

	assert.Equal(t, []discord.MessageID{2, 5, 9}, c.ChannelMessages(testChannelID))
}

func TestMessageUpdate(t *testing.T) {
	c := New()

	applyEvent(t, c, messageEvent(1, "original"))

	applyEvent(t, c, &gateway.MessageUpdateEvent{Message: discord.Message{
		ID:        1,
		ChannelID: testChannelID,
		Content:   "edited",
	}})

	m, ok := c.Message(testChannelID, 1)
	require.True(t, ok)
	assert.Equal(t, "edited", m.Content)
	assert.Equal(t, testGuildID, m.GuildID, "fields missing from the update carry over")

	// updates for unseen messages are dropped
	applyEvent(t, c, &gateway.MessageUpdateEvent{Message: discord.Message{
		ID:        77,
		ChannelID: testChannelID,
		Content:   "ghost",
	}})

	_, ok = c.Message(testChannelID, 77)
	assert.False(t, ok)
}

func TestMessageDelete(t *testing.T) {
	c := New()

	applyEvent(t, c, messageEvent(1, "one"))
	applyEvent(t, c, messageEvent(2, "two"))
	applyEvent(t, c, messageEvent(3, "three"))

	applyEvent(t, c, &gateway.MessageDeleteEvent{ID: 2, ChannelID: testChannelID})
	assert.Equal(t, []discord.MessageID{1, 3}, c.ChannelMessages(testChannelID))

	applyEvent(t, c, &gateway.MessageDeleteBulkEvent{
		IDs:       []discord.MessageID{1, 3},
		ChannelID: testChannelID,
	})
	assert.Empty(t, c.ChannelMessages(testChannelID))
}

func TestChannelDeleteDropsMessages(t *testing.T) {
	c := New()
	applyEvent(t, c, testGuildCreate())
	applyEvent(t, c, messageEvent(1, "one"))

	applyEvent(t, c, &gateway.ChannelDeleteEvent{Channel: discord.Channel{
		ID:      testChannelID,
		GuildID: testGuildID,
	}})

	_, ok := c.GuildChannel(testChannelID)
	assert.False(t, ok)
	assert.Empty(t, c.ChannelMessages(testChannelID))
}

func TestPrivateChannelRouting(t *testing.T) {
	c := New()

	dm := testChannelID + 50
	applyEvent(t, c, &gateway.ChannelCreateEvent{Channel: discord.Channel{
		ID:   dm,
		Type: discord.DirectMessage,
	}})

	_, ok := c.PrivateChannel(dm)
	assert.True(t, ok)
	_, ok = c.GuildChannel(dm)
	assert.False(t, ok)
}
