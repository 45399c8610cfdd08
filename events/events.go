// Package events contains the gateway handlers that keep both cache tiers
// fed. These handlers never call back into Discord.
package events

import (
	"context"
	"time"

	"github.com/diamondburned/arikawa/v3/gateway"

	"github.com/kagura-bot/kagura/bot"
	"github.com/kagura-bot/kagura/cache"
	"github.com/kagura-bot/kagura/common/log"
	"github.com/kagura-bot/kagura/rediscache"
)

// onlineFlushInterval is how often the per-guild online sets are mirrored
// to Redis. Must stay well under the sets' expiry.
const onlineFlushInterval = 5 * time.Minute

type Bot struct {
	*bot.Bot
}

func Setup(root *bot.Bot) {
	b := &Bot{Bot: root}

	b.AddHandler(
		b.dispatch,

		b.messageCreate,
		b.messageDelete,
		b.messageDeleteBulk,
	)

	if !b.Config.Cache.NoPersist {
		go b.onlineFlushLoop()
	}
}

// dispatch feeds every gateway event through the in-memory cache and the
// event counter. It must run before any handler that reads the cache.
func (b *Bot) dispatch(ev interface{}) {
	b.Stats.EventHandler(ev)

	if u, ok := cache.UpdaterFor(ev); ok {
		b.Cache.Update(u)
	}
}

func (b *Bot) messageCreate(ev *gateway.MessageCreateEvent) {
	if b.Config.Cache.NoPersist {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := b.Store.SetMessage(ctx, rediscache.NewCachedMessage(&ev.Message))
	if err != nil {
		log.Errorf("storing message %v: %v", ev.ID, err)
	}
}

func (b *Bot) messageDelete(ev *gateway.MessageDeleteEvent) {
	if b.Config.Cache.NoPersist {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := b.Store.DeleteMessage(ctx, ev.ChannelID, ev.ID)
	if err != nil {
		log.Errorf("deleting message %v: %v", ev.ID, err)
	}
}

func (b *Bot) messageDeleteBulk(ev *gateway.MessageDeleteBulkEvent) {
	if b.Config.Cache.NoPersist {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := b.Store.DeleteMessages(ctx, ev.ChannelID, ev.IDs)
	if err != nil {
		log.Errorf("deleting %v messages in %v: %v", len(ev.IDs), ev.ChannelID, err)
	}
}

// onlineFlushLoop periodically mirrors every guild's online set to Redis.
func (b *Bot) onlineFlushLoop() {
	ticker := time.NewTicker(onlineFlushInterval)
	defer ticker.Stop()

	for range ticker.C {
		b.flushOnline()
	}
}

func (b *Bot) flushOnline() {
	batch := b.Store.OnlineStatus()

	for _, guildID := range b.Cache.Guilds() {
		online, ok := b.Cache.GuildOnline(guildID)
		if !ok {
			continue
		}
		batch.SetGuild(guildID, online)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := batch.Flush(ctx); err != nil {
		log.Errorf("flushing online sets: %v", err)
	}
}
