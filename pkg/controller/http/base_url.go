package http

import (
	"fmt"
	"net/http"
	"strings"
)

// ResolveBaseURL returns the public base URL of the service, used for the
// Location of created resources. configured wins when set; otherwise the URL
// is built from the forwarding headers of r.
func ResolveBaseURL(r *http.Request, configured string) string {
	if configured != "" {
		return strings.TrimRight(configured, "/")
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
	}

	// Alt-Used (Cloud Run) > X-Forwarded-Host > Host
	host := r.Host
	if altUsed := r.Header.Get("Alt-Used"); altUsed != "" {
		host = altUsed
	} else if forwardedHost := r.Header.Get("X-Forwarded-Host"); forwardedHost != "" {
		// the first entry is the host the client asked for
		host = strings.TrimSpace(strings.Split(forwardedHost, ",")[0])
	}
	if host == "" {
		host = "localhost"
	}

	return fmt.Sprintf("%s://%s", scheme, host)
}
