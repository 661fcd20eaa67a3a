package health

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrymomot/pando/pkg/negotiate"
)

const (
	mediaJSON = "application/json"
	mediaText = "text/plain"
)

// LivenessHandler always responds OK while the process is running.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks and responds 503 if any of them fails.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		resp := runChecks(r.Context(), checks, cfg)

		status := http.StatusOK
		if resp.Status == StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}
		write(w, r, status, resp)
	}
}

// write answers JSON when asked for with ?format=json or an Accept header
// that prefers it, plain text otherwise.
func write(w http.ResponseWriter, r *http.Request, status int, resp *Response) {
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Add("Vary", "Accept")

	if wantsJSON(r) {
		w.Header().Set("Content-Type", mediaJSON)
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", mediaText+"; charset=utf-8")
	w.WriteHeader(status)
	if status == http.StatusOK {
		_, _ = w.Write([]byte("OK"))
		return
	}
	_, _ = w.Write([]byte(http.StatusText(status)))
}

func wantsJSON(r *http.Request) bool {
	if r.URL.Query().Get("format") == "json" {
		return true
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return false
	}
	best, ok := negotiate.Best(accept, []string{mediaText, mediaJSON})
	return ok && best == mediaJSON
}
