package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/botofarm/internal/leases/store"
	"github.com/aussiebroadwan/botofarm/pkg/httpx"
	"github.com/aussiebroadwan/botofarm/pkg/leasesdk"
)

// HealthHandler godoc
//
//	@Summary		Health check
//	@Description	Always returns {"status":"ok"} while the process is serving requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	leasesdk.HealthResponse
//	@Router			/api/health [get].
func HealthHandler(startTime time.Time, version string) http.HandlerFunc {
	return LivezHandler(startTime, version)
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 with uptime and version while the process is running.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	leasesdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, leasesdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the database. Returns 503 with status "degraded" when it is unreachable.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	leasesdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	leasesdk.HealthResponse	"database unreachable"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &leasesdk.HealthChecks{Database: "ok"}
		status := "ok"
		code := http.StatusOK

		if err := st.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status = "degraded"
			code = http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, leasesdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
