package httpx

import "net/http"

var healthBody = []byte(`{"status":"ok"}`)

// healthHandler answers liveness probes. It is registered outside the
// guard's protected surface and never touches the session.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(healthBody)
}
