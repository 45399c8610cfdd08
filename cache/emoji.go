package cache

import (
	"reflect"

	"github.com/diamondburned/arikawa/v3/discord"
)

// Emoji is a cached guild emoji. The uploader, if known, is the shared User
// record, not a private copy.
type Emoji struct {
	ID            discord.EmojiID
	Name          string
	RoleIDs       []discord.RoleID
	User          *discord.User
	RequireColons bool
	Managed       bool
	Animated      bool
	Available     bool
}

// equal reports whether the cached emoji matches the incoming payload, so
// an unchanged emoji doesn't get a new allocation.
func (e *Emoji) equal(in discord.Emoji) bool {
	if e.ID != in.ID || e.Name != in.Name ||
		e.RequireColons != in.RequireColons || e.Managed != in.Managed ||
		e.Animated != in.Animated || e.Available != in.Available {
		return false
	}
	if !reflect.DeepEqual(e.RoleIDs, in.RoleIDs) {
		return false
	}
	if (e.User != nil) != in.User.ID.IsValid() {
		return false
	}
	return e.User == nil || reflect.DeepEqual(*e.User, in.User)
}

// Emoji gets an emoji by ID.
func (c *Cache) Emoji(id discord.EmojiID) (*Emoji, bool) {
	item, ok := c.emojis.Get(id)
	if !ok {
		return nil, false
	}
	return item.data, true
}

// GuildEmojis returns the IDs of the guild's emojis, unordered. ok is false
// if the guild is not indexed.
func (c *Cache) GuildEmojis(guildID discord.GuildID) ([]discord.EmojiID, bool) {
	set, ok := c.guildEmojis.Get(guildID)
	if !ok {
		return nil, false
	}
	return set.Values(), true
}

func (c *Cache) cacheEmoji(guildID discord.GuildID, emoji discord.Emoji) *Emoji {
	if cur, ok := c.emojis.Get(emoji.ID); ok && cur.data.equal(emoji) {
		return cur.data
	}

	var user *discord.User
	if emoji.User.ID.IsValid() {
		user = c.cacheUser(emoji.User, guildID)
	}

	cached := &Emoji{
		ID:            emoji.ID,
		Name:          emoji.Name,
		RoleIDs:       emoji.RoleIDs,
		User:          user,
		RequireColons: emoji.RequireColons,
		Managed:       emoji.Managed,
		Animated:      emoji.Animated,
		Available:     emoji.Available,
	}

	c.emojis.Set(emoji.ID, &guildItem[Emoji]{guildID: guildID, data: cached})
	c.guildEmojis.
		GetOrCreate(guildID, newSet[discord.EmojiID]).
		Add(emoji.ID)

	return cached
}

// cacheEmojis replaces a guild's emoji list. Entities no longer in the
// incoming list are removed first, so an unchanged list is a no-op rather
// than a remove-all/insert-all.
func (c *Cache) cacheEmojis(guildID discord.GuildID, emojis []discord.Emoji) {
	if set, ok := c.guildEmojis.Get(guildID); ok {
		incoming := make([]discord.EmojiID, len(emojis))
		for i, e := range emojis {
			incoming[i] = e.ID
		}

		for _, removed := range set.RetainRemoved(incoming...) {
			c.emojis.Remove(removed)
		}
	}

	for _, e := range emojis {
		c.cacheEmoji(guildID, e)
	}
}
