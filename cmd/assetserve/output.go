package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/sagarc03/assetserve"
)

// resolveResult is the outcome of running the resolver on one argument.
type resolveResult struct {
	Input     string            `json:"input"`
	Valid     bool              `json:"valid"`
	Path      string            `json:"path,omitempty"`
	Folder    string            `json:"folder,omitempty"`
	Filename  string            `json:"filename,omitempty"`
	Extension string            `json:"extension,omitempty"`
	MimeType  string            `json:"mime_type,omitempty"`
	Reason    assetserve.Reason `json:"reason,omitempty"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatResolve(w io.Writer, results []resolveResult, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, results)
	}

	for i := range results {
		r := &results[i]
		if !r.Valid {
			_, _ = fmt.Fprintf(w, "Invalid: %q (%s)\n", r.Input, r.Reason)
			continue
		}
		_, _ = fmt.Fprintf(w, "Valid: %s\n", r.Path)
		_, _ = fmt.Fprintf(w, "  Folder: %s\n", r.Folder)
		_, _ = fmt.Fprintf(w, "  File:   %s\n", r.Filename)
		_, _ = fmt.Fprintf(w, "  Type:   %s (%s)\n", r.MimeType, r.Extension)
	}
	return nil
}

func formatList(w io.Writer, entries []assetserve.AssetEntry, jsonOutput bool) error {
	if jsonOutput {
		if entries == nil {
			entries = []assetserve.AssetEntry{}
		}
		return writeJSON(w, entries)
	}

	if len(entries) == 0 {
		_, _ = fmt.Fprintln(w, "No assets found")
		return nil
	}

	// Calculate column widths
	maxPathLen := 4 // "PATH"
	for i := range entries {
		if len(entries[i].Path) > maxPathLen {
			maxPathLen = len(entries[i].Path)
		}
	}
	if maxPathLen > 60 {
		maxPathLen = 60
	}

	_, _ = fmt.Fprintf(w, "%-*s  %10s  %-13s  %s\n", maxPathLen, "PATH", "SIZE", "TYPE", "ETAG")
	_, _ = fmt.Fprintf(w, "%s  %s  %s  %s\n", strings.Repeat("-", maxPathLen), strings.Repeat("-", 10), strings.Repeat("-", 13), strings.Repeat("-", 20))

	for i := range entries {
		e := &entries[i]
		path := e.Path
		if len(path) > maxPathLen {
			path = path[:maxPathLen-3] + "..."
		}
		_, _ = fmt.Fprintf(w, "%-*s  %10s  %-13s  %s\n",
			maxPathLen,
			path,
			formatSize(e.Size),
			e.ContentType,
			e.ETag,
		)
	}

	_, _ = fmt.Fprintf(w, "\n%d assets\n", len(entries))
	return nil
}

func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
		TB = GB * 1024
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.1f TB", float64(bytes)/TB)
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
