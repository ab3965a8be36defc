// cmd/mall/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	mallhttp "github.com/komekovv/zen-moda-client-sub000/internal/adapters/in/http/mall"
	"github.com/komekovv/zen-moda-client-sub000/internal/adapters/in/http/middleware"
	appcfg "github.com/komekovv/zen-moda-client-sub000/internal/infra/config"
	"github.com/komekovv/zen-moda-client-sub000/internal/infra/logging"
	mallDI "github.com/komekovv/zen-moda-client-sub000/internal/platform/di/mall"
)

// atomicHandler allows swapping the underlying handler at runtime safely.
type atomicHandler struct {
	v atomic.Value // stores http.Handler
}

func newAtomicHandler(initial http.Handler) *atomicHandler {
	ah := &atomicHandler{}
	if initial == nil {
		initial = http.NotFoundHandler()
	}
	ah.v.Store(initial)
	return ah
}

func (h *atomicHandler) Store(next http.Handler) {
	if next == nil {
		return
	}
	h.v.Store(next)
}

func (h *atomicHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.v.Load().(http.Handler).ServeHTTP(w, r)
}

// bootHandler serves /healthz only, until the container is wired.
func bootHandler(corsOrigins string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/healthz", mallhttp.HealthHandler())
	return middleware.CORS(corsOrigins)(mux)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mall:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := appcfg.Load()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Named("boot")

	// Start listening ASAP with lightweight mux (healthz only)
	switcher := newAtomicHandler(bootHandler(cfg.CORSOrigin))
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      switcher,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var contHolder atomic.Pointer[mallDI.Container]

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Heavy DI init in background; then swap handler to full app mux
	initDone := make(chan struct{})
	go func() {
		defer close(initDone)
		initCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()

		cont, err := mallDI.NewContainer(initCtx, cfg, logger)
		if err != nil {
			log.Warn("mall di init failed; serving /healthz only", zap.Error(err))
			return
		}
		if ctx.Err() != nil {
			_ = cont.Close()
			return
		}
		contHolder.Store(cont)
		switcher.Store(mallDI.Handler(cont, cfg.CORSOrigin))
		log.Info("mall routes ready")
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown", zap.Error(err))
	}

	<-initDone
	if cont := contHolder.Load(); cont != nil {
		if err := cont.Close(); err != nil {
			log.Error("container close", zap.Error(err))
		}
	}
	return nil
}
