package main

import (
	"github.com/kagura-bot/kagura/cmd"
	"github.com/kagura-bot/kagura/common/log"
)

func main() {
	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}
