// Package http provides the HTTP surface of the assetserve static file server.
//
// # Routes
//
//   - GET, HEAD /{category}/{filename.ext}: serve an asset (400/403/404/304/200)
//   - GET, HEAD /: JSON index of every servable asset (when enabled)
//   - OPTIONS on any path: fixed CORS preflight, 200 with no body
//   - any other method: 405 with an Allow header
//
// HEAD runs the same code path as GET, including opening the file, and then
// closes the body without writing it.
//
// # Responses
//
// Error responses carry Cache-Control: no-cache and a JSON body:
//
//	{"error": "not_found", "message": "Asset not found"}
//
// Unexpected I/O errors are logged with their detail and answered with a
// generic 500. File-system paths are never written to clients.
//
// # Usage
//
//	store, err := filesystem.NewFileStorage("./static")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	service, _ := assetserve.NewAssetService(store)
//
//	handlerCfg := http.HandlerConfig{
//	    Index: http.IndexConfig{Enabled: true},
//	}
//	handler := http.NewHandler(&handlerCfg, service)
//	router := handler.Router()
//
// # Middleware
//
// The router installs RequestID (X-Request-ID propagation), AccessLog (one
// slog line per request) and chi's Recoverer.
package http
