package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Leonard1379/MyDjangoProject/config"
	"github.com/Leonard1379/MyDjangoProject/internal/app"
)

var (
	version = "dev"
	commit  = "none"
)

var flagDriver string

var rootCmd = &cobra.Command{
	Use:          "polls",
	Short:        "Poll questions and votes over HTTP",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDriver, "driver", "", "store driver (redis, postgres, sqlite, memory); overrides STORE_DRIVER")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(questionCmd)
	rootCmd.AddCommand(loaddataCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "polls %s (commit: %s)\n", version, commit)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c string) {
	version = v
	commit = c
}

func loadConfig() (config.Config, error) {
	config.LoadEnv()
	if flagDriver != "" {
		os.Setenv("STORE_DRIVER", flagDriver)
	}
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// openApp loads config and connects the store. Callers must Close the app.
func openApp(ctx context.Context) (*app.App, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
