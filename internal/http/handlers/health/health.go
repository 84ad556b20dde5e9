package health

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/aanand-mishra/studentdb-api/internal/utils/response"
)

const pingTimeout = 2 * time.Second

// Pinger is the part of the storage the health check needs.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Check handles GET /health. It answers 503 when the database does not
// respond within pingTimeout.
func Check(db Pinger, log zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("health check failed")
			response.WriteJSON(w, http.StatusServiceUnavailable, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, map[string]any{
			"status":    "healthy",
			"timestamp": time.Now().UTC(),
		})
	}
}
