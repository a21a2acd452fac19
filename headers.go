package assetserve

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// HeaderKind selects one of the fixed response header sets.
type HeaderKind int

const (
	// HeadersAsset is the long-lived, immutable set for servable assets.
	HeadersAsset HeaderKind = iota
	// HeadersError is the no-cache set for error responses.
	HeadersError
	// HeadersPreflight is the CORS preflight set for OPTIONS.
	HeadersPreflight
)

const (
	CacheControlImmutable = "public, max-age=31536000, immutable"
	CacheControlNoCache   = "no-cache"

	AllowedMethods = "GET, HEAD, OPTIONS"
	AllowedHeaders = "Content-Type, If-None-Match"

	// PreflightMaxAge is one day, in seconds.
	PreflightMaxAge = 86400
)

// BuildHeaders returns a new header set of the given kind. contentType is
// only used for HeadersAsset. The returned header is never shared, so
// callers may add to it freely.
func BuildHeaders(kind HeaderKind, contentType string) http.Header {
	h := make(http.Header, 6)
	h.Set("Access-Control-Allow-Origin", "*")

	switch kind {
	case HeadersAsset:
		h.Set("Content-Type", contentType)
		h.Set("Cache-Control", CacheControlImmutable)
		h.Set("Access-Control-Allow-Methods", AllowedMethods)
		h.Set("Access-Control-Allow-Headers", AllowedHeaders)
	case HeadersPreflight:
		h.Set("Access-Control-Allow-Methods", AllowedMethods)
		h.Set("Access-Control-Allow-Headers", AllowedHeaders)
		h.Set("Access-Control-Max-Age", strconv.Itoa(PreflightMaxAge))
	default:
		h.Set("Cache-Control", CacheControlNoCache)
	}

	return h
}

// CacheHeaders returns the asset header set for an extension or MIME type.
// Values containing "/" are used as the Content-Type as-is.
func CacheHeaders(fileTypeOrMime string) http.Header {
	contentType := fileTypeOrMime
	if !strings.Contains(fileTypeOrMime, "/") {
		contentType = GetMimeType(fileTypeOrMime)
	}
	return BuildHeaders(HeadersAsset, contentType)
}

// FormatETag returns the quoted "<size>-<mtimeMillis>" entity tag.
func FormatETag(size int64, modTime time.Time) string {
	return `"` + strconv.FormatInt(size, 10) + "-" + strconv.FormatInt(modTime.UnixMilli(), 10) + `"`
}
