package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/moonlightgen/cmd"
)

const (
	version = "0.2.0"
)

func main() {
	app := &cli.App{
		Name:    "moonlightgen",
		Usage:   "Generate Moonlight app identifier files from a Sunshine app list",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Load configuration from `FILE`",
			},
		},
		Commands: []*cli.Command{
			cmd.GenerateCommand(),
			cmd.ConfigCommand(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
