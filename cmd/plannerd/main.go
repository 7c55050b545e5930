package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"tour-planner-backend/config"
	"tour-planner-backend/internal/logger"
)

const defaultConfigPath = "./config/config.yaml"

// app carries state shared by the subcommands.
type app struct {
	configPath string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:           "plannerd",
		Short:         "Ras Al Khaimah tour planner backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.loadConfig(cmd)
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default $CONFIG_PATH or "+defaultConfigPath+")")

	rootCmd.AddCommand(newServeCmd(a), newPlanCmd(a), newRefreshCmd(a))
	return rootCmd
}

// loadConfig reads .env, then the YAML config. A missing default config
// file is not an error; an explicitly requested one is.
func (a *app) loadConfig(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	path, explicit := a.configPath, a.configPath != ""
	if !explicit {
		if path = os.Getenv("CONFIG_PATH"); path != "" {
			explicit = true
		} else {
			path = defaultConfigPath
		}
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
	case os.IsNotExist(err) && !explicit:
		cfg = config.Default()
	default:
		return fmt.Errorf("failed to load configuration from %s: %w", path, err)
	}
	a.cfg = cfg

	logger.NewWithWriter(cmd.ErrOrStderr(), "plannerd", cfg.Log.Level, cfg.Log.Pretty)
	if err == nil {
		log.Debug().Str("path", path).Msg("configuration loaded")
	} else {
		log.Debug().Str("path", path).Msg("no config file, using defaults")
	}
	return nil
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
