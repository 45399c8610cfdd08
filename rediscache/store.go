// Package rediscache is the persistent tier of the cache: it mirrors a
// subset of gateway state into Redis so it survives process restarts.
// Values are compressed with a one-byte mode header and stored under
// fixed-width binary keys; every multi-command write runs as a MULTI/EXEC
// transaction so a mid-sequence failure can't leave keys half-written.
//
// This tier is deliberately decoupled from the in-memory cache: nothing
// syncs between the two automatically.
package rediscache

import (
	"context"
	"time"

	"emperror.dev/errors"
	"github.com/ReneKroon/ttlcache/v2"
	"github.com/mediocregopher/radix/v4"
)

// ErrNotFound is returned for keys that legitimately don't exist. It is
// never returned for guild configs, where absence means "default config".
const ErrNotFound = errors.Sentinel("value not found in store")

// expirySeconds is the TTL applied to online-status sets and message
// records. Stale entries self-heal if refreshing stops.
const expirySeconds = "3600"

// configCacheTTL bounds how long a guild config read is served from memory
// before going back to Redis.
const configCacheTTL = time.Minute

// Store is a handle to the persistent cache.
type Store struct {
	client radix.Client

	// read-through cache for guild config payloads, so hot config reads
	// don't round-trip to Redis
	configs *ttlcache.Cache
}

// New connects to Redis at the given address.
func New(url string) (*Store, error) {
	client, err := (&radix.PoolConfig{}).New(context.Background(), "tcp", url)
	if err != nil {
		return nil, errors.Wrap(err, "creating radix client")
	}

	configs := ttlcache.NewCache()
	configs.SetTTL(configCacheTTL)

	return &Store{client: client, configs: configs}, nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.configs.Purge()
	return s.client.Close()
}

// doAtomic runs the given commands as a single MULTI/EXEC transaction.
func (s *Store) doAtomic(ctx context.Context, cmds ...radix.Action) error {
	p := radix.NewPipeline()
	p.Append(radix.Cmd(nil, "MULTI"))
	for _, cmd := range cmds {
		p.Append(cmd)
	}
	p.Append(radix.Cmd(nil, "EXEC"))

	return s.client.Do(ctx, p)
}
