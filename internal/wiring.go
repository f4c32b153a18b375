package internal

import (
	"context"
	"fmt"
	"net"
	"net/http"

	"github.com/2beens/challenge45/internal/config"
	"github.com/2beens/challenge45/internal/notify"
	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/telemetry/metrics"

	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"google.golang.org/api/option"
)

func NewTracedHTTPClient() *http.Client {
	return &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

func NewRedisClient(ctx context.Context, cfg *config.Config, password string) *redis.Client {
	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(cfg.RedisHost, cfg.RedisPort),
		Password: password,
		DB:       0, // use default DB
	})
	rdb.AddHook(redisotel.NewTracingHook())

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	return rdb
}

// NewPlanProvider builds the plan sources of both routines from the configured plan source.
// sheetsCredentialsFile may be empty, then default google credentials are used.
func NewPlanProvider(
	ctx context.Context,
	cfg *config.Config,
	sheetsCredentialsFile string,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) (*plan.Provider, error) {
	sources := map[plan.Routine]plan.Source{}

	switch cfg.PlanSource {
	case "sheets":
		var opts []option.ClientOption
		if sheetsCredentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(sheetsCredentialsFile))
		}
		homeSource, err := plan.NewSheetsSource(ctx, cfg.PlanSpreadsheetID, cfg.HomePlanSheetRange, opts...)
		if err != nil {
			return nil, fmt.Errorf("home plan sheets source: %w", err)
		}
		gymSource, err := plan.NewSheetsSource(ctx, cfg.PlanSpreadsheetID, cfg.GymPlanSheetRange, opts...)
		if err != nil {
			return nil, fmt.Errorf("gym plan sheets source: %w", err)
		}
		sources[plan.RoutineHome] = homeSource
		sources[plan.RoutineGym] = gymSource
	case "csv":
		sources[plan.RoutineHome] = plan.NewHTTPSource(cfg.HomeWorkoutPlanURL, httpClient)
		sources[plan.RoutineGym] = plan.NewHTTPSource(cfg.GymWorkoutPlanURL, httpClient)
	default:
		return nil, fmt.Errorf("unknown plan source: %s", cfg.PlanSource)
	}

	return plan.NewProvider(sources, cfg.PlanCacheTTLSecs, metricsManager), nil
}

// NewNotifier sends emails through resend when an api key is set, otherwise only logs.
func NewNotifier(
	cfg *config.Config,
	resendAPIKey string,
	httpClient *http.Client,
	metricsManager *metrics.Manager,
) notify.Notifier {
	if resendAPIKey == "" {
		log.Warnln("resend api key not set, notifications will only be logged")
		return notify.NewLoggingNotifier(metricsManager)
	}
	return notify.NewResendNotifier(notify.NewResendNotifierParams{
		APIURL:         cfg.ResendAPIURL,
		APIKey:         resendAPIKey,
		From:           cfg.EmailFrom,
		HTTPClient:     httpClient,
		MetricsManager: metricsManager,
	})
}
