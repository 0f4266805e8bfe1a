// Package server assembles the HTTP handler that serves orderlines.
package server

import (
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/orderlines/internal/auth"
	"github.com/mmynk/orderlines/internal/metrics"
	"github.com/mmynk/orderlines/internal/middleware"
	"github.com/mmynk/orderlines/internal/service"
	"github.com/mmynk/orderlines/internal/storage"
	"github.com/mmynk/orderlines/pkg/orderapi"
)

// Options configures the handler.
type Options struct {
	Store         storage.Store
	Authenticator auth.Authenticator
	JWTManager    *auth.JWTManager
	Metrics       *metrics.Metrics
	MetricsPath   string
	Logger        *slog.Logger
}

// NewHandler returns the full HTTP handler: Connect services behind logging
// and auth interceptors, the metrics endpoint and a health check. HTTP/2
// without TLS is accepted, which Connect's gRPC protocol needs.
func NewHandler(opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metricsPath := opts.MetricsPath
	if metricsPath == "" {
		metricsPath = "/metrics"
	}

	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(opts.Metrics),
		middleware.RequireAuth(opts.JWTManager,
			orderapi.AuthServiceRegisterProcedure,
			orderapi.AuthServiceLoginProcedure,
		),
	)

	mux := http.NewServeMux()

	orderPath, orderHandler := orderapi.NewOrderServiceHandler(
		service.NewOrderService(opts.Store, opts.Metrics),
		interceptors,
	)
	mux.Handle(orderPath, orderHandler)

	authPath, authHandler := orderapi.NewAuthServiceHandler(
		service.NewAuthService(opts.Authenticator, opts.JWTManager, opts.Store, logger),
		interceptors,
	)
	mux.Handle(authPath, authHandler)

	mux.Handle(metricsPath, opts.Metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	return h2c.NewHandler(corsMiddleware(mux), &http2.Server{})
}

// NewHTTPServer wraps handler in an http.Server with sane timeouts.
func NewHTTPServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
