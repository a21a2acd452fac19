package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sagarc03/assetserve"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path> [path] ...",
	Short: "Check request paths against the asset validator",
	Long: `Run each argument through the same validation the server applies
to request paths, without touching the file system.

Exits with a non-zero status if any path is rejected.

Examples:
  assetserve resolve /logos/long_dark.png
  assetserve resolve --json logos/a.svg ../../etc/passwd`,
	Args: cobra.MinimumNArgs(1),
	RunE: runResolve,
}

var resolveJSON bool

var errInvalidPaths = errors.New("one or more paths are invalid")

func init() {
	resolveCmd.Flags().BoolVar(&resolveJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(resolveCmd)
}

func resolvePaths(paths []string) ([]resolveResult, bool) {
	results := make([]resolveResult, 0, len(paths))
	allValid := true

	for _, p := range paths {
		req, err := assetserve.CheckAssetPath(p)
		if err != nil {
			allValid = false
			r := resolveResult{Input: p}
			var pe *assetserve.PathError
			if errors.As(err, &pe) {
				r.Reason = pe.Reason
			}
			results = append(results, r)
			continue
		}

		results = append(results, resolveResult{
			Input:     p,
			Valid:     true,
			Path:      req.Path,
			Folder:    req.Folder,
			Filename:  req.Filename,
			Extension: req.Extension,
			MimeType:  assetserve.GetMimeType(req.Extension),
		})
	}

	return results, allValid
}

func runResolve(cmd *cobra.Command, args []string) error {
	results, allValid := resolvePaths(args)

	if err := formatResolve(cmd.OutOrStdout(), results, resolveJSON); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if !allValid {
		return errInvalidPaths
	}
	return nil
}
