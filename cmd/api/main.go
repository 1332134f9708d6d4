package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpSwagger "github.com/swaggo/http-swagger/v2"

	"yanyucloud-api/internal/infra/llm"
	"yanyucloud-api/internal/infra/notifier"
	"yanyucloud-api/internal/observability/logging"
	"yanyucloud-api/internal/observability/tracing"
	"yanyucloud-api/pkg/cache"
	"yanyucloud-api/pkg/config"
	"yanyucloud-api/pkg/ratelimit"

	chatUC "yanyucloud-api/internal/usecase/chat"
	fbUC "yanyucloud-api/internal/usecase/feedback"
	ntUC "yanyucloud-api/internal/usecase/nettest"

	hhttp "yanyucloud-api/internal/handler/http"
	hchat "yanyucloud-api/internal/handler/http/chat"
	hfeedback "yanyucloud-api/internal/handler/http/feedback"
	"yanyucloud-api/internal/handler/http/middleware"
	hnettest "yanyucloud-api/internal/handler/http/nettest"
	"yanyucloud-api/internal/handler/http/requestid"

	_ "yanyucloud-api/docs" // swagger docs
)

// @title           YanYuCloud API
// @version         1.0
// @description     Governed API surface: health, monitoring, feedback, network tests, and chat completions.
// @description     Every route shares request identification, per-client rate limiting, and a uniform response envelope.

// @contact.name   API Support
// @contact.url    https://github.com/yanyucloud/yanyucloud-api

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

func main() {
	logger := logging.NewLogger()
	slog.SetDefault(logger)

	version := getVersion()

	shutdownTracing, err := tracing.Init(context.Background(), "yanyucloud-api", version)
	if err != nil {
		logger.Error("failed to initialize tracing", slog.Any("error", err))
		os.Exit(1)
	}

	components := setupServer(logger, version)

	runServer(logger, components, version, shutdownTracing)
}

// getVersion returns the application version from environment or default.
func getVersion() string {
	if v := os.Getenv("VERSION"); v != "" {
		return v
	}
	return "dev"
}

// ServerComponents holds everything runServer needs for operation and cleanup.
type ServerComponents struct {
	Handler  http.Handler
	Limiter  *ratelimit.Limiter
	RLConfig ratelimit.Config
	Store    *cache.Cache
	Metrics  ratelimit.MetricsRecorder
}

// setupServer builds the shared infrastructure, the services, and the routed
// handler with its middleware chain.
func setupServer(logger *slog.Logger, version string) *ServerComponents {
	clock := &ratelimit.SystemClock{}
	limiter := ratelimit.NewLimiter(clock)
	store := cache.New(clock)
	metrics := ratelimit.NewPrometheusMetrics()
	hhttp.RegisterCacheMetrics(store)

	rlConfig, err := ratelimit.LoadConfig()
	if err != nil {
		logger.Error("failed to load rate limit configuration", slog.Any("error", err))
		os.Exit(1)
	}

	proxyConfig, err := middleware.LoadTrustedProxyConfig()
	if err != nil {
		logger.Error("failed to load trusted proxy configuration", slog.Any("error", err))
		os.Exit(1)
	}

	var extractor middleware.IdentifierExtractor
	if proxyConfig.Enabled {
		extractor = middleware.NewTrustedProxyExtractor(*proxyConfig)
		logger.Info("client identification: trusted proxy mode",
			slog.Int("trusted_proxies_count", len(proxyConfig.AllowedCIDRs)))
	} else {
		extractor = &middleware.RemoteAddrExtractor{}
		logger.Info("client identification: RemoteAddr only, proxy headers ignored")
	}

	if rlConfig.Enabled {
		logger.Info("rate limiting initialized",
			slog.Int("limit", rlConfig.Limit),
			slog.Duration("window", rlConfig.Window),
			slog.Int("chat_limit", rlConfig.ChatLimit))
	} else {
		logger.Warn("rate limiting is DISABLED - not recommended for production")
	}

	governor := middleware.NewGovernor(limiter, rlConfig, extractor, metrics, logger)

	mux := setupRoutes(logger, version, governor, limiter, rlConfig, store, extractor)
	handler := applyMiddleware(logger, mux)

	return &ServerComponents{
		Handler:  handler,
		Limiter:  limiter,
		RLConfig: rlConfig,
		Store:    store,
		Metrics:  metrics,
	}
}

// setupRoutes registers every endpoint on a fresh mux.
func setupRoutes(
	logger *slog.Logger,
	version string,
	governor *middleware.Governor,
	limiter *ratelimit.Limiter,
	rlConfig ratelimit.Config,
	store *cache.Cache,
	extractor middleware.IdentifierExtractor,
) *http.ServeMux {
	start := time.Now()

	llmConfig, err := llm.LoadConfig()
	if err != nil {
		logger.Error("failed to load chat configuration", slog.Any("error", err))
		os.Exit(1)
	}
	provider := llm.NewProvider(llmConfig)
	chatSvc := &chatUC.Service{Provider: provider}

	notifierCfg := notifier.LoadConfig()
	var relay fbUC.Notifier
	if notifierCfg.WebhookURL != "" {
		relay = notifier.NewWebhook(notifierCfg)
		logger.Info("feedback relay enabled", slog.String("channel", relay.Name()))
	} else {
		relay = notifier.NewNoop()
		logger.Warn("feedback relay disabled, submissions are accepted without delivery")
	}
	feedbackSvc := &fbUC.Service{Cache: store, Notifier: relay, Logger: logger}

	stageDelay := config.GetEnvDuration("NETWORK_TEST_STAGE_DELAY", 300*time.Millisecond)
	nettestSvc := ntUC.NewService(store, logger, stageDelay)

	mux := http.NewServeMux()

	health := &hhttp.HealthHandler{
		Version: version,
		Start:   start,
		Checks: map[string]func() hhttp.CheckStatus{
			"rateLimiter": hhttp.RateLimiterCheck(limiter, rlConfig.Enabled),
			"cache":       hhttp.CacheCheck(store),
			"chat":        hhttp.StaticCheck("healthy", "provider: "+provider.Name()),
		},
	}
	mux.Handle("GET /health", governor.Wrap(health.Handle, middleware.WithoutRateLimit()))

	monitor := &hhttp.MonitorHandler{
		Version:  version,
		Start:    start,
		Counters: governor.Counters(),
		Limiter:  limiter,
		Config:   rlConfig,
		Cache:    store,
	}
	mux.Handle("GET /monitor", governor.Wrap(monitor.Handle))

	hfeedback.Register(mux, governor, hfeedback.Handler{
		Svc:     feedbackSvc,
		Metrics: hhttp.RecordFeedbackSubmitted,
	})
	hnettest.Register(mux, governor, hnettest.Handler{
		Svc:       nettestSvc,
		Extractor: extractor,
		Metrics:   hhttp.RecordNetworkTest,
	})
	hchat.Register(mux, governor, hchat.Handler{
		Svc:     chatSvc,
		Metrics: hhttp.RecordChatCompletion,
	}, rlConfig.ChatLimit)

	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// applyMiddleware wraps the routed mux with the shared middleware chain.
// Order outermost to innermost: Recover, Tracing, Request ID, Logging,
// Metrics, Body Limit, Timeout.
func applyMiddleware(logger *slog.Logger, handler http.Handler) http.Handler {
	requestTimeout := config.GetEnvDuration("REQUEST_TIMEOUT", 30*time.Second)

	chain := handler
	chain = hhttp.Timeout(requestTimeout)(chain)
	chain = hhttp.LimitRequestBody(1 << 20)(chain) // 1MB limit
	chain = hhttp.MetricsMiddleware(chain)
	chain = hhttp.Logging(logger)(chain)
	chain = requestid.Middleware(chain)
	chain = tracing.Middleware(chain)
	chain = hhttp.Recover(logger)(chain)
	return chain
}

// runServer starts the HTTP server, the maintenance loop, and handles
// graceful shutdown.
func runServer(
	logger *slog.Logger,
	components *ServerComponents,
	version string,
	shutdownTracing func(context.Context) error,
) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go hhttp.StartMaintenance(ctx, components.Limiter, components.RLConfig,
		components.Store, components.Metrics, logger)

	addr := ":" + config.GetEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           components.Handler,
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		logger.Info("server starting",
			slog.String("addr", addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
