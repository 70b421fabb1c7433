package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-fintech-demo/internal/logger"
)

// HealthProbeTimeout bounds every backing store probe.
const HealthProbeTimeout = 2 * time.Second

// Probe checks one backing store.
type Probe func(ctx context.Context) error

// HealthResponse reports service liveness
// swagger:model HealthResponse
type HealthResponse struct {
	// OK or degraded
	// default: OK
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks"`
}

// NewHealthHandler returns an HTTP handler probing the configured stores.
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} handlers.HealthResponse
// @Failure 503 {object} handlers.HealthResponse
// @Router /health [get]
func NewHealthHandler(service string, probes map[string]Probe) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), HealthProbeTimeout)
		defer cancel()

		resp := HealthResponse{
			Status:    "OK",
			Service:   service,
			Timestamp: time.Now().UTC(),
			Checks:    make(map[string]string, len(probes)),
		}

		var (
			mu sync.Mutex
			wg sync.WaitGroup
		)
		for name, probe := range probes {
			wg.Add(1)
			go func() {
				defer wg.Done()
				result := "ok"
				if err := probe(ctx); err != nil {
					logger.Log.Warnw("health probe failed", "probe", name, "err", err)
					result = "error: " + err.Error()
				}
				mu.Lock()
				resp.Checks[name] = result
				mu.Unlock()
			}()
		}
		wg.Wait()

		status := http.StatusOK
		for _, result := range resp.Checks {
			if result != "ok" {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				break
			}
		}

		writeJSON(w, status, resp)
	}
}

// RegisterHealthHandler registers the health route.
func RegisterHealthHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/health", h)
}
