package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/assetserve"
	"github.com/sagarc03/assetserve/config"
	"github.com/sagarc03/assetserve/filesystem"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List servable assets under the static root",
	Long: `Walk the static root and print every file the server would serve,
with its size, content type and ETag. Files that fail path validation
(no category folder, unsupported extension) are left out.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.FromContext(ctx)
	if err != nil {
		return err
	}

	store, err := filesystem.NewFileStorage(cfg.Static.Root)
	if err != nil {
		return fmt.Errorf("open static root: %w", err)
	}
	defer func() { _ = store.Close() }()

	service, err := assetserve.NewAssetService(store)
	if err != nil {
		return fmt.Errorf("create service: %w", err)
	}

	entries, err := service.List(ctx)
	if err != nil {
		return err
	}

	return formatList(cmd.OutOrStdout(), entries, listJSON)
}
