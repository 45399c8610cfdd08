// Package bot wires the gateway connection to the caches.
package bot

import (
	"context"

	"emperror.dev/errors"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/diamondburned/arikawa/v3/gateway"
	"github.com/diamondburned/arikawa/v3/session/shard"
	"github.com/diamondburned/arikawa/v3/state"
	arikawastore "github.com/diamondburned/arikawa/v3/state/store"
	"github.com/diamondburned/arikawa/v3/utils/ws"

	"github.com/kagura-bot/kagura/cache"
	"github.com/kagura-bot/kagura/common/log"
	"github.com/kagura-bot/kagura/rediscache"
	"github.com/kagura-bot/kagura/stats"
)

const Intents = gateway.IntentGuilds |
	gateway.IntentGuildMembers |
	gateway.IntentGuildEmojis |
	gateway.IntentGuildVoiceStates |
	gateway.IntentGuildPresences |
	gateway.IntentGuildMessages |
	gateway.IntentDirectMessages

type Bot struct {
	Config Config

	Mgr *shard.Manager

	Cache *cache.Cache
	Store *rediscache.Store
	Stats *stats.Client
}

// New creates a new Bot.
func New(c Config) (*Bot, error) {
	// set up debug logging
	ws.WSDebug = log.Debug
	ws.WSError = func(err error) {
		log.SugaredLogger.Error("ws error: ", err)
	}

	// set up the shard manager, including intents and stores
	mgr, err := shard.NewManager("Bot "+c.Auth.Discord, state.NewShardFunc(func(m *shard.Manager, s *state.State) {
		s.AddIntents(Intents)

		// disable arikawa's own stores, we keep our own
		s.Cabinet.ChannelStore = arikawastore.Noop
		s.Cabinet.EmojiStore = arikawastore.Noop
		s.Cabinet.GuildStore = arikawastore.Noop
		s.Cabinet.MemberStore = arikawastore.Noop
		s.Cabinet.MessageStore = arikawastore.Noop
		s.Cabinet.PresenceStore = arikawastore.Noop
		s.Cabinet.RoleStore = arikawastore.Noop
		s.Cabinet.VoiceStateStore = arikawastore.Noop
	}))
	if err != nil {
		return nil, errors.Wrap(err, "creating shard manager")
	}

	bot := &Bot{
		Config: c,
		Mgr:    mgr,
		Cache: cache.NewWithConfig(cache.Config{
			Resources:   cache.ResourceAll,
			MaxMessages: c.Cache.MaxMessages,
		}),
	}

	bot.Store, err = rediscache.New(c.Auth.Redis)
	if err != nil {
		return nil, errors.Wrap(err, "creating redis store")
	}

	if c.Auth.Influx.URL != "" {
		bot.Stats = stats.New(
			c.Auth.Influx.URL, c.Auth.Influx.Token,
			c.Auth.Influx.Organization, c.Auth.Influx.Database,
			bot.Cache,
		)
	}

	return bot, nil
}

func (bot *Bot) Open(ctx context.Context) error {
	log.Debug("opening gateway connection")

	return bot.Mgr.Open(ctx)
}

func (bot *Bot) Close() error {
	if err := bot.Store.Close(); err != nil {
		log.Errorf("closing redis store: %v", err)
	}
	return bot.Mgr.Close()
}

// AddHandler adds handlers to all shards.
func (bot *Bot) AddHandler(i ...any) {
	bot.Mgr.ForEach(func(sh shard.Shard) {
		s := sh.(*state.State)
		for _, hn := range i {
			s.AddHandler(hn)
		}
	})
}

func (bot *Bot) StateFromGuildID(guildID discord.GuildID) (s *state.State, id int) {
	sh, id := bot.Mgr.FromGuildID(guildID)
	return sh.(*state.State), id
}
