package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/2beens/challenge45/internal/account"
	"github.com/2beens/challenge45/internal/auth"
	"github.com/2beens/challenge45/internal/challenge"
	"github.com/2beens/challenge45/internal/config"
	"github.com/2beens/challenge45/internal/db"
	"github.com/2beens/challenge45/internal/geoip"
	"github.com/2beens/challenge45/internal/middleware"
	"github.com/2beens/challenge45/internal/notify"
	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/profiles"
	"github.com/2beens/challenge45/internal/progression"
	"github.com/2beens/challenge45/internal/telemetry/metrics"
	"github.com/2beens/challenge45/internal/telemetry/tracing"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
)

const sessionsCleanupInterval = 8 * time.Hour

type Server struct {
	httpServer        *http.Server
	metricsHTTPServer *http.Server
	versionInfo       string
	cronSecret        string

	config       *config.Config
	dbPool       *pgxpool.Pool
	planProvider *plan.Provider
	notifier     notify.Notifier
	tzGuesser    *geoip.TimezoneGuesser

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
	cleanupCancel  context.CancelFunc
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	PostgresPassword        string
	RedisPassword           string
	CronSecret              string
	ResendAPIKey            string
	IPInfoToken             string
	SheetsCredentialsFile   string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	cfg := params.Config

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown := func() {}
	if params.HoneycombTracingEnabled {
		shutdown, err := tracing.HoneycombSetup("challenge45-backend")
		if err != nil {
			return nil, err
		}
		otelShutdown = shutdown
	}

	dbParams := db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     params.PostgresPassword,
		TracingEnabled: params.HoneycombTracingEnabled && cfg.TracingInDBLayer,
	}
	if cfg.RunMigrations {
		if err := db.RunMigrations(dbParams.ConnString()); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	dbPool, err := db.NewDBPool(ctx, dbParams)
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	promRegistry := metrics.SetupPrometheus(db.NewPoolCollector(dbPool, cfg.PostgresDBName))
	metricsManager := metrics.NewManager("challenge45", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := NewRedisClient(ctx, cfg, params.RedisPassword)
	tracedHTTPClient := NewTracedHTTPClient()

	planProvider, err := NewPlanProvider(ctx, cfg, params.SheetsCredentialsFile, tracedHTTPClient, metricsManager)
	if err != nil {
		return nil, fmt.Errorf("new plan provider: %w", err)
	}

	tzGuesser := geoip.NewNoopTimezoneGuesser()
	if cfg.IPInfoEnabled {
		tzGuesser = geoip.NewTimezoneGuesser(params.IPInfoToken, tracedHTTPClient, rdb)
	}

	authService := auth.NewAuthService(auth.DefaultTTL, rdb)
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(sessionsCleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-cleanupCtx.Done():
				return
			case <-ticker.C:
				authService.ScanAndClean(cleanupCtx)
			}
		}
	}()

	return &Server{
		config:       cfg,
		dbPool:       dbPool,
		versionInfo:  params.VersionInfo,
		cronSecret:   params.CronSecret,
		planProvider: planProvider,
		notifier:     NewNotifier(cfg, params.ResendAPIKey, tracedHTTPClient, metricsManager),
		tzGuesser:    tzGuesser,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
		cleanupCancel:  cleanupCancel,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("challenge45-router"))

	profilesRepo := profiles.NewRepo(s.dbPool)

	accountHandler := account.NewHandler(account.NewHandlerParams{
		Repo:        profilesRepo,
		Sessions:    s.authService,
		TzGuesser:   s.tzGuesser,
		VersionInfo: s.versionInfo,
	})
	accountHandler.SetupRoutes(
		r,
		redis_rate.NewLimiter(s.redisClient),
		s.config.LoginRateLimitAllowedPerMin,
		s.metricsManager,
	)

	challengeHandler := challenge.NewHandler(
		challenge.NewService(challenge.NewServiceParams{
			Repo:           profilesRepo,
			Plans:          s.planProvider,
			SiteURL:        s.config.SiteURL,
			MetricsManager: s.metricsManager,
		}),
	)
	challengeHandler.SetupRoutes(r)

	cronHandler := progression.NewCronHandler(
		progression.NewRunner(progression.NewRunnerParams{
			Repo:           profilesRepo,
			Notifier:       s.notifier,
			WorkersLimit:   s.config.CronWorkersLimit,
			ReminderHour:   s.config.ReminderHour,
			MetricsManager: s.metricsManager,
		}),
	)
	cronHandler.SetupRoutes(r.PathPrefix("/cron").Subrouter())

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.cronSecret,
		s.loginChecker,
	)

	var allowedOrigins []string
	if s.config.SiteURL != "" {
		allowedOrigins = append(allowedOrigins, s.config.SiteURL)
	}

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors(allowedOrigins...))
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}))
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHTTPServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHTTPServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)
	s.cleanupCancel()

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown http server")
		}
		log.Warnln("server shut down")
	}

	if s.metricsHTTPServer != nil {
		if err := s.metricsHTTPServer.Shutdown(ctx); err != nil {
			log.Error(" >>> failed to gracefully shutdown metrics http server")
		}
		log.Warnln("metrics server shut down")
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
