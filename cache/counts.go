package cache

import "github.com/diamondburned/arikawa/v3/discord"

// Counts is a point-in-time size snapshot of every primary map, for metrics.
type Counts struct {
	Guilds          int
	Channels        int
	PrivateChannels int
	Roles           int
	Emojis          int
	Members         int
	Users           int
	Messages        int
	VoiceStates     int
}

// Counts returns the current entity counts. The counts are sampled per map
// and are not a consistent cross-map snapshot.
func (c *Cache) Counts() Counts {
	counts := Counts{
		Guilds:          c.guilds.Length(),
		Channels:        c.channels.Length(),
		PrivateChannels: c.privates.Length(),
		Roles:           c.roles.Length(),
		Emojis:          c.emojis.Length(),
		Members:         c.members.Length(),
		Users:           c.users.Length(),
	}

	c.messages.ReadFunc(func(raw map[discord.ChannelID]*messageLog) {
		for _, l := range raw {
			counts.Messages += len(l.ids)
		}
	})

	c.voice.mu.RLock()
	counts.VoiceStates = len(c.voice.states)
	c.voice.mu.RUnlock()

	return counts
}
