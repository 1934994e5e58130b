package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

const version = "0.1.0"

var commands []*cli.Command

func newApp() *cli.App {
	return &cli.App{
		Name:                   "tli",
		Usage:                  "Run TinyLang, a line-oriented language of let, if/goto, print and input",
		Version:                version,
		ArgsUsage:              "<file>",
		EnableBashCompletion:   true,
		UseShortOptionHandling: true,
		Flags:                  runFlags(),
		Action:                 run,
		Commands:               commands,
	}
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
