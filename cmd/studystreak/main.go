package main

import (
	"context"
	"os"

	"github.com/sandeepkv93/studystreak/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		os.Exit(1)
	}
}
