// Package cache implements a thread-safe, in-process snapshot of Discord
// state, kept up to date by feeding it gateway events.
//
// Returned values are shared: getters hand out pointers into the cache, and
// an update replaces the stored pointer rather than mutating the value in
// place. A reference obtained before an update stays valid, it is just
// outdated. Retrieval is cheap, so callers that need the current version
// should simply get the value again.
//
// The cache is partitioned per entity kind and per secondary index, so
// updates to unrelated kinds never contend on a lock.
package cache

import (
	"reflect"
	"sync"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/kagura-bot/kagura/common"
)

type memberKey struct {
	Guild discord.GuildID
	User  discord.UserID
}

// guildItem wraps an entity that does not carry its owning guild's ID itself,
// so deleting the guild can cascade to it.
type guildItem[T any] struct {
	guildID discord.GuildID
	data    *T
}

type userEntry struct {
	user *discord.User
	// guilds the user is reachable through. The entry is dropped when this
	// becomes empty.
	guilds map[discord.GuildID]struct{}
}

// Cache is the in-process entity cache. The zero value is not usable; use
// New or NewWithConfig.
//
// Cache handles may be copied and shared freely between goroutines.
type Cache struct {
	cfg Config

	guilds   *common.Map[discord.GuildID, *Guild]
	channels *common.Map[discord.ChannelID, *discord.Channel]
	privates *common.Map[discord.ChannelID, *discord.Channel]
	roles    *common.Map[discord.RoleID, *guildItem[discord.Role]]
	emojis   *common.Map[discord.EmojiID, *guildItem[Emoji]]
	members  *common.Map[memberKey, *Member]
	users    *common.Map[discord.UserID, *userEntry]

	guildChannels *common.Map[discord.GuildID, *common.Set[discord.ChannelID]]
	guildEmojis   *common.Map[discord.GuildID, *common.Set[discord.EmojiID]]
	guildMembers  *common.Map[discord.GuildID, *common.Set[discord.UserID]]
	guildOnline   *common.Map[discord.GuildID, *common.Set[discord.UserID]]
	guildRoles    *common.Map[discord.GuildID, *common.Set[discord.RoleID]]

	unavailable *common.Set[discord.GuildID]

	voice    *voiceStates
	messages *common.Map[discord.ChannelID, *messageLog]

	// currentUserMu is only ever held for a single pointer read or swap,
	// never across anything that can block.
	currentUserMu *sync.Mutex
	currentUser   **discord.User
}

// New creates a new, empty cache with the default configuration.
func New() *Cache {
	return NewWithConfig(Config{})
}

// NewWithConfig creates a new, empty cache with the given configuration.
func NewWithConfig(cfg Config) *Cache {
	if cfg.Resources == 0 {
		cfg.Resources = ResourceAll
	}
	if cfg.MaxMessages == 0 {
		cfg.MaxMessages = DefaultMaxMessages
	}

	var cu *discord.User

	return &Cache{
		cfg: cfg,

		guilds:   common.NewMap[discord.GuildID, *Guild](),
		channels: common.NewMap[discord.ChannelID, *discord.Channel](),
		privates: common.NewMap[discord.ChannelID, *discord.Channel](),
		roles:    common.NewMap[discord.RoleID, *guildItem[discord.Role]](),
		emojis:   common.NewMap[discord.EmojiID, *guildItem[Emoji]](),
		members:  common.NewMap[memberKey, *Member](),
		users:    common.NewMap[discord.UserID, *userEntry](),

		guildChannels: common.NewMap[discord.GuildID, *common.Set[discord.ChannelID]](),
		guildEmojis:   common.NewMap[discord.GuildID, *common.Set[discord.EmojiID]](),
		guildMembers:  common.NewMap[discord.GuildID, *common.Set[discord.UserID]](),
		guildOnline:   common.NewMap[discord.GuildID, *common.Set[discord.UserID]](),
		guildRoles:    common.NewMap[discord.GuildID, *common.Set[discord.RoleID]](),

		unavailable: common.NewSet[discord.GuildID](),

		voice:    newVoiceStates(),
		messages: common.NewMap[discord.ChannelID, *messageLog](),

		currentUserMu: new(sync.Mutex),
		currentUser:   &cu,
	}
}

// Update applies an update to the cache. See Updater for how gateway events
// map onto updates.
func (c *Cache) Update(u Updater) {
	u.UpdateCache(c)
}

// Clear empties the cache. It is equivalent to replacing the cache with a
// new empty one, except that existing handles stay usable.
func (c *Cache) Clear() {
	c.guilds.Clear()
	c.channels.Clear()
	c.privates.Clear()
	c.roles.Clear()
	c.emojis.Clear()
	c.members.Clear()
	c.users.Clear()

	c.guildChannels.Clear()
	c.guildEmojis.Clear()
	c.guildMembers.Clear()
	c.guildOnline.Clear()
	c.guildRoles.Clear()

	c.unavailable.Clear()

	c.voice.clear()
	c.messages.Clear()

	c.currentUserMu.Lock()
	*c.currentUser = nil
	c.currentUserMu.Unlock()
}

// wants reports whether the cache is configured to record the given resource.
func (c *Cache) wants(r Resource) bool {
	return c.cfg.Resources&r != 0
}

// newSet adapts common.NewSet's variadic signature for Map.GetOrCreate.
func newSet[T comparable]() *common.Set[T] {
	return common.NewSet[T]()
}

// upsertItem inserts v if absent. If present and unequal it replaces the
// stored pointer; if present and equal it leaves the existing pointer in
// place so references held elsewhere are not needlessly invalidated.
func upsertItem[K comparable, V any](m *common.Map[K, *V], k K, v V) *V {
	var out *V
	m.WriteFunc(func(raw map[K]*V) {
		if cur, ok := raw[k]; ok && reflect.DeepEqual(*cur, v) {
			out = cur
			return
		}
		out = &v
		raw[k] = out
	})
	return out
}

// upsertGuildItem is upsertItem for entities that need their owning guild
// recorded alongside them.
func upsertGuildItem[K comparable, V any](
	m *common.Map[K, *guildItem[V]], guildID discord.GuildID, k K, v V,
) *V {
	var out *V
	m.WriteFunc(func(raw map[K]*guildItem[V]) {
		if cur, ok := raw[k]; ok && cur.guildID == guildID && reflect.DeepEqual(*cur.data, v) {
			out = cur.data
			return
		}
		out = &v
		raw[k] = &guildItem[V]{guildID: guildID, data: out}
	})
	return out
}
