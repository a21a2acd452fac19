// Package assetserve provides a small static asset server for image files.
//
// The package turns untrusted request paths into validated asset requests,
// derives MIME types and cache headers, and answers conditional GETs using
// size and modification-time entity tags.
//
// # Key Components
//
//   - CheckAssetPath / ValidateAssetPath / ParseAssetRequest: lexical
//     validation of category/filename.ext paths with no file-system access
//   - GetMimeType, BuildHeaders, CacheHeaders: fixed header tables
//   - FileStorage: interface for root-confined file access (see the
//     filesystem package)
//   - AssetService: the per-request serve state machine
//
// # Request Flow
//
// A request moves through these states and ends in exactly one response:
//
//	received -> validated (else 400) -> contained (else 403)
//	         -> stat'd -> 404 | 404 (not a file) | 304 | 200
//
// # Example Usage
//
//	store, err := filesystem.NewFileStorage("./static")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
//	service, err := assetserve.NewAssetService(store)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	resp, err := service.Serve(ctx, "/logos/long_dark.png", ifNoneMatch)
//	if resp.Body != nil {
//	    defer resp.Body.Close()
//	}
//
// See the http package for the HTTP surface.
package assetserve
