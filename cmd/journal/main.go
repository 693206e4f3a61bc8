package main

import (
	"context"
	"os"

	"trading_journal/internal/app/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
