package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/CloverPit_Go/internal/config"
	"github.com/osse101/CloverPit_Go/internal/database"
	"github.com/osse101/CloverPit_Go/internal/game"
	"github.com/osse101/CloverPit_Go/internal/handler"
	"github.com/osse101/CloverPit_Go/internal/logger"
	"github.com/osse101/CloverPit_Go/internal/metrics"
	"github.com/osse101/CloverPit_Go/internal/ratelimit"
)

type Server struct {
	httpServer  *http.Server
	dbPool      database.Pool
	gameService game.Service
}

// NewServer creates a new Server instance. dbPool may be nil for the memory
// backend and limiter may be nil when rate limiting is disabled.
func NewServer(cfg *config.Config, dbPool database.Pool, gameService game.Service, limiter ratelimit.Limiter) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           NewRouter(cfg, dbPool, gameService, limiter),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		dbPool:      dbPool,
		gameService: gameService,
	}
}

// NewRouter builds the middleware stack and routes
func NewRouter(cfg *config.Config, dbPool database.Pool, gameService game.Service, limiter ratelimit.Limiter) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(loggingMiddleware)
	r.Use(metrics.Middleware)
	r.Use(AuthMiddleware(cfg.APIKey, cfg.TrustedProxies, detector))
	if limiter != nil {
		r.Use(RateLimitMiddleware(limiter, cfg.TrustedProxies))
	}
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Get("/version", handler.HandleVersion(cfg.Version))

	// Metrics endpoint (public, for Prometheus scraping)
	r.Handle("/metrics", promhttp.Handler())

	gameHandler := handler.NewGameHandler(gameService)
	r.Route(APIPrefix, func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Post("/", gameHandler.HandleStartGame)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", gameHandler.HandleGetGame)
				r.Get("/history", gameHandler.HandleGetHistory)
				r.Post("/spin", gameHandler.HandleSpin)
				r.Post("/end-round", gameHandler.HandleEndRound)
				r.Post("/items", gameHandler.HandleBuyItem)
			})
		})
		r.Get("/shop/items", gameHandler.HandleListShopItems)
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Skip logging for health check endpoints and metrics
		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
