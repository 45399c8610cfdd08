package cache

import (
	"github.com/diamondburned/arikawa/v3/discord"
)

// CurrentUser gets the cache-owning identity, if one has been seen.
func (c *Cache) CurrentUser() (*discord.User, bool) {
	c.currentUserMu.Lock()
	u := *c.currentUser
	c.currentUserMu.Unlock()

	return u, u != nil
}

// cacheCurrentUser replaces the current-user slot. The lock is held for the
// pointer swap only; readers holding a previous snapshot are unaffected.
func (c *Cache) cacheCurrentUser(u discord.User) {
	c.currentUserMu.Lock()
	*c.currentUser = &u
	c.currentUserMu.Unlock()
}
