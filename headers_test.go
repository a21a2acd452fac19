package assetserve_test

import (
	"testing"
	"time"

	"github.com/sagarc03/assetserve"
	"github.com/stretchr/testify/assert"
)

func TestBuildHeaders_Asset(t *testing.T) {
	h := assetserve.BuildHeaders(assetserve.HeadersAsset, "image/png")

	assert.Equal(t, "image/png", h.Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", h.Get("Cache-Control"))
	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, HEAD, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, If-None-Match", h.Get("Access-Control-Allow-Headers"))
	assert.Empty(t, h.Get("Access-Control-Max-Age"))
}

func TestBuildHeaders_Error(t *testing.T) {
	h := assetserve.BuildHeaders(assetserve.HeadersError, "image/png")

	assert.Equal(t, "no-cache", h.Get("Cache-Control"))
	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, h.Get("Content-Type"))
}

func TestBuildHeaders_Preflight(t *testing.T) {
	h := assetserve.BuildHeaders(assetserve.HeadersPreflight, "")

	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "GET, HEAD, OPTIONS", h.Get("Access-Control-Allow-Methods"))
	assert.Equal(t, "Content-Type, If-None-Match", h.Get("Access-Control-Allow-Headers"))
	assert.Equal(t, "86400", h.Get("Access-Control-Max-Age"))
	assert.Empty(t, h.Get("Cache-Control"))
}

func TestBuildHeaders_FreshPerCall(t *testing.T) {
	a := assetserve.BuildHeaders(assetserve.HeadersAsset, "image/png")
	a.Set("ETag", `"1-2"`)

	b := assetserve.BuildHeaders(assetserve.HeadersAsset, "image/png")
	assert.Empty(t, b.Get("ETag"))
}

func TestCacheHeaders(t *testing.T) {
	assert.Equal(t, "image/svg+xml", assetserve.CacheHeaders(".svg").Get("Content-Type"))
	assert.Equal(t, "image/webp", assetserve.CacheHeaders("webp").Get("Content-Type"))
	assert.Equal(t, "image/png", assetserve.CacheHeaders("image/png").Get("Content-Type"))
	assert.Equal(t, "application/octet-stream", assetserve.CacheHeaders(".bin").Get("Content-Type"))
	assert.Equal(t, "public, max-age=31536000, immutable", assetserve.CacheHeaders(".png").Get("Cache-Control"))
}

func TestFormatETag(t *testing.T) {
	mtime := time.UnixMilli(1700000000123)
	assert.Equal(t, `"12345-1700000000123"`, assetserve.FormatETag(12345, mtime))
	assert.Equal(t, `"0-0"`, assetserve.FormatETag(0, time.UnixMilli(0)))
}
