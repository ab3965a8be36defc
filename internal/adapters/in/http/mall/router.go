// internal/adapters/in/http/mall/router.go
package mall

import (
	"net/http"

	"go.uber.org/zap"
)

// Deps is the buyer-facing (mall) handler set.
type Deps struct {
	Variant http.Handler
	Health  http.Handler
}

// handleSafe registers pattern with h.
// If h is nil, it logs and registers NotFoundHandler instead (so Cloud Run won't crash).
func handleSafe(mux *http.ServeMux, log *zap.Logger, pattern string, h http.Handler, name string) {
	if h == nil {
		log.Warn("nil handler; registering NotFoundHandler", zap.String("name", name), zap.String("pattern", pattern))
		h = http.NotFoundHandler()
	}
	mux.Handle(pattern, h)
}

// Register registers buyer-facing routes onto mux (mall only).
func Register(mux *http.ServeMux, log *zap.Logger, deps Deps) {
	if mux == nil {
		return
	}
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("mall.router")

	// products/{id}/variants[...]; the handler parses the rest of the path
	handleSafe(mux, log, "/mall/products/", deps.Variant, "Variant")

	health := deps.Health
	if health == nil {
		health = HealthHandler()
	}
	handleSafe(mux, log, "/healthz", health, "Health")
}

// HealthHandler answers 200 "ok".
func HealthHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}
