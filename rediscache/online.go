package rediscache

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/mediocregopher/radix/v4"
)

// OnlineStatus accumulates per-guild online member sets for a single atomic
// flush. Each guild's set is replaced wholesale: stale members from the
// previous snapshot must not survive the write.
type OnlineStatus struct {
	store   *Store
	pending []radix.Action
}

// OnlineStatus starts a new online-set batch.
func (s *Store) OnlineStatus() *OnlineStatus {
	return &OnlineStatus{store: s}
}

// SetGuild queues a full replacement of the guild's online set. An empty
// member list clears the set.
func (o *OnlineStatus) SetGuild(guildID discord.GuildID, online []discord.UserID) *OnlineStatus {
	key := Key(PrefixOnlineStatus, uint64(guildID))

	o.pending = append(o.pending, radix.Cmd(nil, "DEL", key))
	if len(online) > 0 {
		args := make([]string, 0, len(online)+1)
		args = append(args, key)
		for _, id := range online {
			args = append(args, idArg(uint64(id)))
		}
		o.pending = append(o.pending, radix.Cmd(nil, "SADD", args...))
	}
	o.pending = append(o.pending, radix.Cmd(nil, "EXPIRE", key, expirySeconds))
	return o
}

// Flush writes every queued guild set in one transaction. The batch is
// reusable after a successful flush.
func (o *OnlineStatus) Flush(ctx context.Context) error {
	if len(o.pending) == 0 {
		return nil
	}

	if err := o.store.doAtomic(ctx, o.pending...); err != nil {
		return errors.Wrap(err, "flushing online status")
	}
	o.pending = o.pending[:0]
	return nil
}

// GuildOnline returns the stored online set for the guild. A guild whose
// set expired or was never written yields an empty slice.
func (s *Store) GuildOnline(ctx context.Context, guildID discord.GuildID) ([]discord.UserID, error) {
	key := Key(PrefixOnlineStatus, uint64(guildID))

	var members [][]byte
	err := s.client.Do(ctx, radix.Cmd(&members, "SMEMBERS", key))
	if err != nil {
		return nil, errors.Wrap(err, "reading online status")
	}

	out := make([]discord.UserID, 0, len(members))
	for _, m := range members {
		id, err := parseIDArg(m)
		if err != nil {
			return nil, err
		}
		out = append(out, discord.UserID(id))
	}
	return out, nil
}
