package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/sleroq/anytype-to-markdown/internal/app/exporter"
	"github.com/sleroq/anytype-to-markdown/internal/config"
	"github.com/sleroq/anytype-to-markdown/internal/logging"
	pkgconfig "github.com/sleroq/anytype-to-markdown/pkg/config"
)

const defaultConfigFile = "config.yaml"

var (
	okStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg := config.NewDefaultConfig()

	configPath := cmd.String("config")
	var err error
	if cmd.IsSet("config") {
		err = pkgconfig.Load(configPath, cfg)
	} else {
		err = pkgconfig.LoadOptional(configPath, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if input := cmd.Args().First(); input != "" {
		cfg.InputFolder = input
	}
	if cmd.IsSet("output_folder") {
		cfg.OutputFolder = cmd.String("output_folder")
	}
	if cmd.IsSet("log_level") {
		cfg.LogLevel = cmd.String("log_level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := logging.New(cfg.LogLevel, cfg.LogFile, os.Stderr)
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer closeLog()

	stats, err := exporter.New(cfg, logger).Run(ctx)
	if err != nil {
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		return fmt.Errorf("conversion failed: %w", err)
	}

	fmt.Println(okStyle.Render("Conversion complete. Output files are in: " + cfg.OutputFolder))
	fmt.Println(mutedStyle.Render(fmt.Sprintf(
		"%d notes written, %d skipped, %d files copied, %d files missing, %d files failed",
		stats.Notes, stats.Skipped, stats.Files, stats.MissingFiles, stats.FailedFiles,
	)))
	return nil
}

func main() {
	cmd := &cli.Command{
		Name:      "anytype-to-markdown",
		Usage:     "Convert an Anytype JSON export into Markdown notes",
		ArgsUsage: "[input_folder]",
		Action:    run,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file (YAML, or TOML with a .toml extension)",
				DefaultText: defaultConfigFile,
				Value:       defaultConfigFile,
				Sources:     cli.EnvVars("ANYTYPE_MD_CONFIG"),
			},
			&cli.StringFlag{
				Name:  "output_folder",
				Usage: "Directory the Markdown files are written to",
			},
			&cli.StringFlag{
				Name:  "log_level",
				Usage: "DEBUG, INFO, WARNING, ERROR or CRITICAL",
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}
