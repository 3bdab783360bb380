package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/moonlightgen/internal/config"
	"github.com/moonlightgen/internal/materializer"
	"github.com/moonlightgen/internal/sunshine"
)

// GenerateCommand returns the generate command
func GenerateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate .moonlight identifier files from the Sunshine app list",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "source-folder",
				Usage:   "Sunshine config folder holding apps.json and sunshine_state.json",
				EnvVars: []string{"MOONLIGHTGEN_SOURCE_FOLDER"},
			},
			&cli.StringFlag{
				Name:    "json-file",
				Usage:   "Path to a standalone apps.json (ignored when --source-folder is set)",
				EnvVars: []string{"MOONLIGHTGEN_JSON_FILE_PATH"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Directory the identifier files are written to",
				EnvVars: []string{"MOONLIGHTGEN_OUTPUT_DIRECTORY"},
			},
			&cli.BoolFlag{
				Name:    "use-index",
				Usage:   "Fold the app's list position into its identifier",
				EnvVars: []string{"MOONLIGHTGEN_USE_INDEX_IN_ID"},
			},
			&cli.BoolFlag{
				Name:  "clear",
				Usage: "Clear stale output files first, even when the config file disables it",
			},
			&cli.BoolFlag{
				Name:  "no-clear",
				Usage: "Keep existing output files instead of clearing them first",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: runGenerate,
	}
}

func runGenerate(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Flags override config file values
	if v := c.String("source-folder"); v != "" {
		cfg.SourceFolder = v
	}
	if v := c.String("json-file"); v != "" {
		cfg.JSONFilePath = v
	}
	if v := c.String("output"); v != "" {
		cfg.OutputDirectory = v
	}
	if c.Bool("use-index") {
		cfg.UseIndexInID = true
	}
	if c.Bool("clear") {
		cfg.ClearOutput = true
	}
	if c.Bool("no-clear") {
		cfg.ClearOutput = false
	}

	setupLogging(cfg.LogLevel, c.Bool("verbose"))

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	apps, err := sunshine.LoadApps(cfg.AppsPath())
	if err != nil {
		log.Error().Err(err).Msg("failed to load app list")
		return nil
	}
	if len(apps) == 0 {
		log.Error().Str("file", cfg.AppsPath()).Msg("no apps found in app list")
		return nil
	}
	log.Info().Int("count", len(apps)).Str("file", cfg.AppsPath()).Msg("loaded app list")

	hostUUID, err := sunshine.LoadHostUUID(cfg.StatePath())
	if err != nil {
		log.Warn().Err(err).Msg("no host UUID found, UUID file will be skipped")
	}

	m := materializer.New(materializer.Options{
		OutputDir:    cfg.OutputDirectory,
		IDFileSuffix: config.IDFileSuffix,
		UUIDFileName: config.UUIDFileName,
		UseIndex:     cfg.UseIndexInID,
		ClearFirst:   cfg.ClearOutput,
	})

	written, err := m.Run(apps, hostUUID)
	if err != nil {
		return fmt.Errorf("failed to materialize identifier files: %w", err)
	}

	log.Info().Int("count", written).Msg("identifier files written")
	return nil
}

// setupLogging points the global logger at stderr with a console writer and
// applies the configured level; --verbose wins over the config file.
func setupLogging(level string, verbose bool) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(lvl)
}
