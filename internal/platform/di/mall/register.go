// internal/platform/di/mall/register.go
package mall

import (
	"net/http"

	"go.uber.org/zap"

	mallhttp "github.com/komekovv/zen-moda-client-sub000/internal/adapters/in/http/mall"
	mallhandler "github.com/komekovv/zen-moda-client-sub000/internal/adapters/in/http/mall/handler"
	"github.com/komekovv/zen-moda-client-sub000/internal/adapters/in/http/middleware"
)

// Register registers mall routes onto mux.
// Pure DI: construct handlers and pass them into the mall router.
func Register(mux *http.ServeMux, cont *Container) {
	if mux == nil || cont == nil {
		return
	}
	log := cont.Log
	if log == nil {
		log = zap.NewNop()
	}

	deps := mallhttp.Deps{
		Health: mallhttp.HealthHandler(),
	}
	if cont.VariantQ != nil {
		deps.Variant = mallhandler.NewVariantHandler(cont.VariantQ, log)
	} else {
		log.Warn("variant query is nil; /mall/products/ will return 404")
	}

	mallhttp.Register(mux, log, deps)
}

// Handler builds the full mall HTTP handler with the middleware chain.
func Handler(cont *Container, corsOrigins string) http.Handler {
	mux := http.NewServeMux()
	Register(mux, cont)

	log := zap.NewNop()
	if cont != nil && cont.Log != nil {
		log = cont.Log
	}
	return middleware.Chain(mux,
		middleware.CORS(corsOrigins),
		middleware.RequestID,
		middleware.AccessLog(log),
		middleware.Recover(log),
	)
}
