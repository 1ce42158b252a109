package httpx

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable. The session store's
// Redis client is the only one today.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

// healthHandler returns 200 with {"status":"ok"} when every check passes and
// 503 with the failing check names otherwise.
func healthHandler(checks []HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		failed := map[string]string{}
		for _, c := range checks {
			if err := c.Check(ctx); err != nil {
				failed[c.Name] = err.Error()
				if logger != nil {
					logger.WarnContext(ctx, "health check failed", "check", c.Name, "error", err)
				}
			}
		}

		status, body := http.StatusOK, map[string]any{"status": "ok"}
		if len(failed) > 0 {
			status, body = http.StatusServiceUnavailable, map[string]any{"status": "unavailable", "failed": failed}
		}

		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			return
		}
		WriteJSON(w, status, body)
	}
}
