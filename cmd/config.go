package cmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/moonlightgen/internal/config"
)

// ConfigCommand returns the config command
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Manage configuration",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Initialize a new configuration file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
						Value:   "moonlightgen.toml",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the resolved configuration",
				Action: runConfigShow,
			},
		},
	}
}

func runConfigInit(c *cli.Context) error {
	outputPath := c.String("output")

	if err := config.InitConfig(outputPath); err != nil {
		return fmt.Errorf("failed to initialize config: %w", err)
	}

	fmt.Printf("Created configuration file at %s\n", outputPath)
	return nil
}

func runConfigShow(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Printf("source_folder       = %q\n", cfg.SourceFolder)
	fmt.Printf("json_file_path      = %q\n", cfg.JSONFilePath)
	fmt.Printf("app list            = %s\n", cfg.AppsPath())
	fmt.Printf("state file          = %s\n", cfg.StatePath())
	fmt.Printf("output_directory    = %s\n", cfg.OutputDirectory)
	fmt.Printf("use_index_in_id     = %v\n", cfg.UseIndexInID)
	fmt.Printf("clear_output_folder = %v\n", cfg.ClearOutput)
	fmt.Printf("log_level           = %s\n", cfg.LogLevel)
	return nil
}
