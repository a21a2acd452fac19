package http

import (
	"io"
	"net/http"

	"github.com/sagarc03/assetserve"
)

const defaultNotFoundHTML = `<html>
<head><title>404 Not Found</title></head>
<body>
<center><h1>404 Not Found</h1></center>
<hr><center>assetserve</center>
</body>
</html>`

func writeDefaultNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", assetserve.CacheControlNoCache)
	w.WriteHeader(http.StatusNotFound)
	if r.Method != http.MethodHead {
		_, _ = io.WriteString(w, defaultNotFoundHTML)
	}
}
