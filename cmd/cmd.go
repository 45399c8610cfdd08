// Package cmd is the command-line entrypoint.
package cmd

import (
	"os"

	"github.com/urfave/cli/v2"

	"github.com/kagura-bot/kagura/cmd/bot"
	"github.com/kagura-bot/kagura/common"
)

var app = &cli.App{
	Name:    "Kagura",
	Usage:   "Discord state caching bot",
	Version: common.Version,

	Commands: []*cli.Command{
		bot.Command,
	},
}

func Run() error {
	return app.Run(os.Args)
}
