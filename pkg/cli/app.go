package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	urfave "github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/modelscore/pkg/config"
	"github.com/mchmarny/modelscore/pkg/logging"
	"github.com/mchmarny/modelscore/pkg/store"
)

const (
	name         = "modelscore"
	appConfigKey = "app-config"

	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	version = "v0.0.1-default"
	commit  = ""
	date    = ""

	outputFormat = formatJSON

	debugFlag = &urfave.BoolFlag{
		Name:  "debug",
		Usage: "Prints verbose logs (optional, default: false)",
	}

	dbFilePathFlag = &urfave.StringFlag{
		Name:  "db",
		Usage: "Path to the Sqlite rating cache file",
	}

	formatFlag = &urfave.StringFlag{
		Name:  "format",
		Usage: "Output format [json, yaml]",
		Value: formatJSON,
	}
)

// Execute creates and runs the CLI application.
func Execute() {
	logging.SetDefault("warn", "")

	app := newApp()
	if err := app.Run(os.Args); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

type appConfig struct {
	Home   string
	Config *config.Config
	Store  *store.Store
	Debug  bool
}

func getAppConfig(c *urfave.Context) *appConfig {
	return c.App.Metadata[appConfigKey].(*appConfig)
}

func newApp() *urfave.App {
	return &urfave.App{
		Name:                 name,
		Version:              fmt.Sprintf("%s (%s - %s)", version, commit, date),
		Compiled:             time.Now(),
		EnableBashCompletion: true,
		HideHelpCommand:      true,
		Usage:                "CLI for scoring the reusability of ML models, datasets, and code",
		Flags: []urfave.Flag{
			debugFlag,
			dbFilePathFlag,
			formatFlag,
		},
		Commands: []*urfave.Command{
			scoreCmd,
			serveCmd,
			authCmd,
		},
		Before: func(c *urfave.Context) error {
			f := c.String(formatFlag.Name)
			if f == formatYAML || f == "yml" {
				outputFormat = formatYAML
			}

			home, created, err := config.GetOrCreateHomeDir(name)
			if err != nil {
				return fmt.Errorf("resolving home dir: %w", err)
			}
			if created {
				slog.Debug("created app home", "path", home)
			}

			cfg, err := config.ReadOrCreate(home)
			if err != nil {
				return fmt.Errorf("reading config: %w", err)
			}
			loadSecrets(cfg)

			level := cfg.LogLevel
			if c.Bool(debugFlag.Name) {
				level = "debug"
			}
			logging.SetDefault(level, cfg.LogFile)

			dbPath := c.String(dbFilePathFlag.Name)
			if dbPath == "" {
				dbPath = filepath.Join(home, store.DataFileName)
			}
			st, err := store.Open(dbPath)
			if err != nil {
				return fmt.Errorf("opening rating cache: %w", err)
			}

			c.App.Metadata[appConfigKey] = &appConfig{
				Home:   home,
				Config: cfg,
				Store:  st,
				Debug:  c.Bool(debugFlag.Name),
			}
			return nil
		},
		After: func(c *urfave.Context) error {
			if cfg, ok := c.App.Metadata[appConfigKey].(*appConfig); ok && cfg.Store != nil {
				cfg.Store.Close()
			}
			return nil
		},
	}
}

func encode(w io.Writer, v any) error {
	if outputFormat == formatYAML {
		return yaml.NewEncoder(w).Encode(v)
	}
	return json.NewEncoder(w).Encode(v)
}
