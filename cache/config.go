package cache

// Resource is a bitflag of entity kinds the cache records. Events for kinds
// that are switched off are dropped without touching the maps.
type Resource uint16

const (
	ResourceChannels Resource = 1 << iota
	ResourceEmojis
	ResourceGuilds
	ResourceMembers
	ResourceMessages
	ResourcePresences
	ResourceRoles
	ResourceUsers
	ResourceVoiceStates
	ResourceCurrentUser

	ResourceAll = ResourceChannels | ResourceEmojis | ResourceGuilds |
		ResourceMembers | ResourceMessages | ResourcePresences |
		ResourceRoles | ResourceUsers | ResourceVoiceStates |
		ResourceCurrentUser
)

// DefaultMaxMessages is the default per-channel message retention bound.
const DefaultMaxMessages = 100

// Config configures a Cache. The zero value means "record everything, keep
// DefaultMaxMessages messages per channel".
type Config struct {
	// Resources selects which entity kinds are recorded.
	Resources Resource
	// MaxMessages bounds the per-channel message log; the oldest messages
	// (by ID) are evicted first.
	MaxMessages int
}

// Config returns a copy of the cache's configuration.
func (c *Cache) Config() Config {
	return c.cfg
}
