// Package bot contains the "bot" subcommand, which runs the gateway
// consumer and the caches.
package bot

import (
	"os"
	"os/signal"

	"emperror.dev/errors"
	"github.com/getsentry/sentry-go"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v2"

	"github.com/kagura-bot/kagura/bot"
	"github.com/kagura-bot/kagura/common"
	"github.com/kagura-bot/kagura/common/log"
	"github.com/kagura-bot/kagura/events"
)

var Command = &cli.Command{
	Name:   "bot",
	Usage:  "Run the bot",
	Action: run,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Path to the config file",
			Value:   "config.toml",
		},
	},
}

func run(c *cli.Context) error {
	conf, err := bot.ReadConfig(c.String("config"))
	if err != nil {
		return errors.Wrap(err, "reading config")
	}

	if conf.Auth.Sentry != "" {
		err := sentry.Init(sentry.ClientOptions{
			Dsn:     conf.Auth.Sentry,
			Release: common.Version,
		})
		if err != nil {
			log.Fatalf("setting up sentry: %v", err)
		}
		log.Debug("set up sentry")
	} else {
		log.Debug("sentry DSN was not provided, not setting it up")
	}

	b, err := bot.New(conf)
	if err != nil {
		return errors.Wrap(err, "creating bot")
	}

	events.Setup(b)

	ctx, cancel := signal.NotifyContext(c.Context, os.Interrupt, os.Kill)
	defer cancel()

	err = b.Open(ctx)
	if err != nil {
		return errors.Wrap(err, "opening gateway connection")
	}

	defer func() {
		if err := b.Close(); err != nil {
			log.Errorf("closing gateway connection: %v", err)
		}
	}()

	log.Info("connected to Discord, press Ctrl-C to stop")

	<-ctx.Done()
	return nil
}
