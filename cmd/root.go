package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hmans/crudql/internal/config"
	"github.com/hmans/crudql/internal/graph"
	"github.com/hmans/crudql/internal/logging"
	"github.com/hmans/crudql/internal/recordcore"
)

var (
	core   *recordcore.Core
	cfg    *config.Config
	logger = zerolog.Nop()

	configPath string
	variant    string
)

var rootCmd = &cobra.Command{
	Use:   "crudql",
	Short: "A GraphQL server over in-memory users and tables",
	Long: `crudql serves a small GraphQL API backed by two in-memory collections,
users and tables. Records have an id, a name and an age. Nothing is
persisted: every restart begins from the seed fixtures (or empty).

Configuration is read from crudql.toml in the working directory when present.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init writes the config file, so there is nothing to load yet
		if cmd.Name() == "init" {
			return nil
		}
		return setup(cmd)
	},
}

// setup loads configuration and builds the record store shared by all commands.
func setup(cmd *cobra.Command) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cmd.Flags().Changed("variant") {
		cfg.Schema.Variant = variant
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger = logging.New(cfg.Log, os.Stderr)

	core = recordcore.New(cfg)
	core.SetLogger(logger)
	if err := core.Load(); err != nil {
		return err
	}

	return nil
}

// newSchema binds the configured schema variant to the current core.
func newSchema() (*graph.Schema, error) {
	return graph.NewSchemaForVariant(cfg.Schema.Variant, &graph.Resolver{Core: core})
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.ConfigFile, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&variant, "variant", "", "Schema variant to serve (hello, crud)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
