package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"bookit/internal/health"
	"bookit/pkg/config"
	"bookit/pkg/middleware"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/mongo"
)

// Handler is anything that can register routes on the shared router.
type Handler interface {
	RegisterRoutes(router *httprouter.Router)
}

type Application struct {
	cfg              *config.Config
	server           *http.Server
	idempotencyStore *middleware.InMemoryIdempotencyStore
	rateLimiter      *middleware.ClientRateLimiter
	closers          []io.Closer
}

func NewApplication(cfg *config.Config) *Application {
	return &Application{cfg: cfg}
}

// SetApp assembles the server: health probes behind a minimal middleware
// stack, application routes behind the full one.
func (a *Application) SetApp(mongoClient *mongo.Client, handlers ...Handler) {
	healthHandler := a.buildHealthHandler(mongoClient)
	appHandler := a.buildAppHandler(handlers)

	mux := http.NewServeMux()
	mux.Handle("/health", healthHandler)
	mux.Handle("/ready", healthHandler)
	mux.Handle("/", appHandler)

	a.server = &http.Server{
		Addr:         ":" + a.cfg.Port,
		Handler:      mux,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	a.cfg.Log.Info("HTTP server configured", "port", a.cfg.Port)
}

// AddCloser registers a resource shut down after the HTTP server drains.
func (a *Application) AddCloser(c io.Closer) {
	a.closers = append(a.closers, c)
}

func (a *Application) buildHealthHandler(mongoClient *mongo.Client) http.Handler {
	healthRouter := httprouter.New()
	health.NewHealthHandler(mongoClient, a.cfg.Log).RegisterRoutes(healthRouter)

	var handler http.Handler = healthRouter
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)
	return handler
}

func (a *Application) buildAppHandler(handlers []Handler) http.Handler {
	appRouter := httprouter.New()
	for _, h := range handlers {
		h.RegisterRoutes(appRouter)
	}

	a.idempotencyStore = middleware.NewInMemoryIdempotencyStore(a.cfg.IdempotencyTTL)
	a.rateLimiter = middleware.NewClientRateLimiter(
		a.cfg.RateLimitRequests,
		a.cfg.RateLimitWindow,
		middleware.RemoteAddrExtractor,
		a.cfg.Log,
	)

	var handler http.Handler = appRouter
	handler = middleware.Idempotency(a.idempotencyStore, "Idempotency-Key")(handler)
	handler = middleware.RequestTimeout(a.cfg.RequestTimeout)(handler)
	handler = middleware.ClientRateLimit(a.rateLimiter)(handler)
	handler = middleware.ContentTypeValidation(a.cfg.Log)(handler)
	handler = middleware.MaxRequestSize(int64(a.cfg.MaxRequestSize))(handler)
	handler = middleware.RequestLogging(a.cfg.Log)(handler)
	handler = middleware.Recovery(a.cfg.Log)(handler)
	return handler
}

func (a *Application) Run() {
	serverErrors := make(chan error, 1)

	go func() {
		a.cfg.Log.Info("Starting HTTP server", "address", a.server.Addr)
		serverErrors <- a.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		a.cfg.Log.Fatal("HTTP server failed", "error", err)

	case sig := <-shutdown:
		a.cfg.Log.Info("Shutdown signal received", "signal", sig)
		a.gracefulShutdown()
	}
}

func (a *Application) gracefulShutdown() {
	a.cfg.Log.Info("Starting graceful shutdown...")

	a.idempotencyStore.Stop()
	a.rateLimiter.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		a.cfg.Log.Error("Server shutdown failed", "error", err)
		if err := a.server.Close(); err != nil {
			a.cfg.Log.Fatal("Could not stop server gracefully", "error", err)
		}
	}

	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.cfg.Log.Error("Resource close failed", "error", err)
		}
	}
	a.cfg.GracefulShutdown()

	a.cfg.Log.Info("Server stopped gracefully")
}
