package assetserve

import (
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

// AssetRequest is a validated, normalized asset path.
type AssetRequest struct {
	Path      string
	Folder    string
	Filename  string
	Extension string
}

// AssetEntry describes a servable file found under the static root.
type AssetEntry struct {
	Path        string    `json:"path"`
	Folder      string    `json:"folder"`
	Size        int64     `json:"size"`
	ETag        string    `json:"etag"`
	ContentType string    `json:"content_type"`
	ModTime     time.Time `json:"mod_time"`
}

// Outcome names the terminal state a Serve call ended in.
type Outcome string

const (
	OutcomeRejected    Outcome = "rejected"
	OutcomeForbidden   Outcome = "forbidden"
	OutcomeNotFound    Outcome = "not_found"
	OutcomeNotAFile    Outcome = "not_a_file"
	OutcomeNotModified Outcome = "not_modified"
	OutcomeServed      Outcome = "served"
)

// Response is the result of serving an asset. Body is non-nil only for
// OutcomeServed and must be closed by the caller.
type Response struct {
	Status  int
	Header  http.Header
	Body    io.ReadCloser
	Size    int64
	Outcome Outcome
	Reason  Reason
}

const defaultMimeType = "application/octet-stream"

var mimeTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".avif": "image/avif",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

func normalizeExtension(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext != "" && ext[0] != '.' {
		ext = "." + ext
	}
	return ext
}

// GetMimeType returns the MIME type for a file extension. The leading dot is
// optional and case is ignored. Unknown extensions map to
// application/octet-stream.
func GetMimeType(ext string) string {
	if mt, ok := mimeTypes[normalizeExtension(ext)]; ok {
		return mt
	}
	return defaultMimeType
}

// IsSupportedExtension reports whether ext is in the servable allow-list.
func IsSupportedExtension(ext string) bool {
	_, ok := mimeTypes[normalizeExtension(ext)]
	return ok
}

// SupportedExtensions returns the allow-list in sorted order.
func SupportedExtensions() []string {
	exts := make([]string, 0, len(mimeTypes))
	for ext := range mimeTypes {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}
