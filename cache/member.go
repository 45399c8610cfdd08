package cache

import (
	"reflect"

	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
)

// Member is a cached guild member. User points at the shared User record;
// the member never embeds a private copy.
type Member struct {
	GuildID      discord.GuildID
	Nick         string
	RoleIDs      []discord.RoleID
	Joined       discord.Timestamp
	BoostedSince discord.Timestamp
	Deaf         bool
	Mute         bool
	User         *discord.User
}

func (m *Member) equal(in discord.Member) bool {
	if m.Nick != in.Nick || m.Deaf != in.Deaf || m.Mute != in.Mute {
		return false
	}
	if m.Joined != in.Joined || m.BoostedSince != in.BoostedSince {
		return false
	}
	if !reflect.DeepEqual(m.RoleIDs, in.RoleIDs) {
		return false
	}
	return m.User != nil && reflect.DeepEqual(*m.User, in.User)
}

// Member gets a member by guild and user ID.
func (c *Cache) Member(guildID discord.GuildID, userID discord.UserID) (*Member, bool) {
	return c.members.Get(memberKey{Guild: guildID, User: userID})
}

// GuildMembers returns the user IDs of the guild's cached members,
// unordered. The list may be incomplete if not all members have been seen.
// ok is false if the guild is not indexed.
func (c *Cache) GuildMembers(guildID discord.GuildID) ([]discord.UserID, bool) {
	set, ok := c.guildMembers.Get(guildID)
	if !ok {
		return nil, false
	}
	return set.Values(), true
}

// User gets a user by ID.
func (c *Cache) User(id discord.UserID) (*discord.User, bool) {
	entry, ok := c.users.Get(id)
	if !ok {
		return nil, false
	}
	return entry.user, true
}

func (c *Cache) cacheMembers(guildID discord.GuildID, members []discord.Member) {
	for _, m := range members {
		c.cacheMember(guildID, m)
	}
}

func (c *Cache) cacheMember(guildID discord.GuildID, m discord.Member) *Member {
	key := memberKey{Guild: guildID, User: m.User.ID}

	if cur, ok := c.members.Get(key); ok && cur.equal(m) {
		return cur
	}

	user := c.cacheUser(m.User, guildID)
	cached := &Member{
		GuildID:      guildID,
		Nick:         m.Nick,
		RoleIDs:      m.RoleIDs,
		Joined:       m.Joined,
		BoostedSince: m.BoostedSince,
		Deaf:         m.Deaf,
		Mute:         m.Mute,
		User:         user,
	}

	c.members.Set(key, cached)
	c.guildMembers.
		GetOrCreate(guildID, newSet[discord.UserID]).
		Add(m.User.ID)

	return cached
}

// cacheMemberUpdate applies a partial member update. A member that was never
// cached is skipped: the payload doesn't carry enough to make one.
func (c *Cache) cacheMemberUpdate(ev *gateway.GuildMemberUpdateEvent) {
	user := c.cacheUser(ev.User, ev.GuildID)

	key := memberKey{Guild: ev.GuildID, User: ev.User.ID}
	c.members.WriteFunc(func(raw map[memberKey]*Member) {
		cur, ok := raw[key]
		if !ok {
			return
		}

		updated := *cur
		updated.Nick = ev.Nick
		updated.RoleIDs = ev.RoleIDs
		updated.User = user
		raw[key] = &updated
	})
}

// removeMember drops a member and the user's membership in the guild. If it
// was the user's last guild, the user record goes too.
func (c *Cache) removeMember(guildID discord.GuildID, userID discord.UserID) {
	c.members.Remove(memberKey{Guild: guildID, User: userID})
	if set, ok := c.guildMembers.Get(guildID); ok {
		set.Remove(userID)
	}
	c.removeUserGuild(userID, guildID)
}

// cacheUser caches a user, recording guildID in its reachable-guild set.
// An equal value keeps the existing shared record; a changed one replaces
// the whole entry, keeping the guild set. The entry's user field is never
// written after the entry is published, so readers that resolved an entry
// outside the lock still see a settled value. An invalid guildID means the
// user was seen outside a guild context and is returned without being
// stored.
func (c *Cache) cacheUser(u discord.User, guildID discord.GuildID) *discord.User {
	var out *discord.User

	c.users.WriteFunc(func(raw map[discord.UserID]*userEntry) {
		cur, ok := raw[u.ID]
		if !ok {
			out = &u
			if guildID.IsValid() {
				raw[u.ID] = &userEntry{
					user:   out,
					guilds: map[discord.GuildID]struct{}{guildID: {}},
				}
			}
			return
		}

		if guildID.IsValid() {
			cur.guilds[guildID] = struct{}{}
		}

		if reflect.DeepEqual(*cur.user, u) {
			out = cur.user
			return
		}

		out = &u
		raw[u.ID] = &userEntry{user: out, guilds: cur.guilds}
	})

	return out
}

func (c *Cache) removeUserGuild(userID discord.UserID, guildID discord.GuildID) {
	c.users.WriteFunc(func(raw map[discord.UserID]*userEntry) {
		cur, ok := raw[userID]
		if !ok {
			return
		}

		delete(cur.guilds, guildID)
		if len(cur.guilds) == 0 {
			delete(raw, userID)
		}
	})
}
