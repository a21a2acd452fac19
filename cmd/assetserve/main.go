package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/assetserve/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "assetserve",
	Short:   "Static image asset server with immutable caching",
	Long: `assetserve serves image assets laid out as category/filename.ext
from a single static root, with long-lived cache headers and ETag-based
conditional GETs.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFiles, _ := cmd.Flags().GetStringSlice("config")

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg.Log)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringSlice("config", nil, "config file path, repeatable (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("static-root", "", "static asset directory (default: ./static, env: ASSETSERVE_STATIC_ROOT)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: ASSETSERVE_LOG_LEVEL)")
	rootCmd.PersistentFlags().String("log-format", "", "log format: text, json (env: ASSETSERVE_LOG_FORMAT)")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
