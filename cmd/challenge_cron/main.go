package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/2beens/challenge45/internal"
	"github.com/2beens/challenge45/internal/config"
	"github.com/2beens/challenge45/internal/db"
	"github.com/2beens/challenge45/internal/logging"
	"github.com/2beens/challenge45/internal/profiles"
	"github.com/2beens/challenge45/internal/progression"
	"github.com/2beens/challenge45/internal/telemetry/metrics"
	"github.com/2beens/challenge45/internal/telemetry/tracing"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
)

// runs a single progression or reminder batch, meant for a system cron / k8s CronJob

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	job := flag.String("job", progression.JobProgression, "job to run [progression | reminder]")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    cfg.LogFormatJSON,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        os.Getenv("SENTRY_DSN"),
		SentryServerName: "challenge45-cron",
	})
	defer sentry.Flush(5 * time.Second)

	if err := run(*job, cfg); err != nil {
		log.Errorf("cron job [%s] failed: %s", *job, err)
		sentry.Flush(5 * time.Second)
		os.Exit(1)
	}
}

func run(job string, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		otelShutdown, err := tracing.HoneycombSetup("challenge45-cron")
		if err != nil {
			return err
		}
		defer otelShutdown()
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		DBUser:         cfg.PostgresUser,
		DBPassword:     os.Getenv("CHALLENGE_POSTGRES_PASS"),
		TracingEnabled: honeycombEnabled && cfg.TracingInDBLayer,
	})
	if err != nil {
		return err
	}
	defer dbPool.Close()

	metricsManager := metrics.NewManager("challenge45", "cron", metrics.SetupPrometheus())
	runner := progression.NewRunner(progression.NewRunnerParams{
		Repo: profiles.NewRepo(dbPool),
		Notifier: internal.NewNotifier(
			cfg,
			os.Getenv("RESEND_API_KEY"),
			internal.NewTracedHTTPClient(),
			metricsManager,
		),
		WorkersLimit:   cfg.CronWorkersLimit,
		ReminderHour:   cfg.ReminderHour,
		MetricsManager: metricsManager,
	})

	var report *progression.Report
	switch job {
	case progression.JobProgression:
		report, err = runner.RunProgression(ctx, time.Now())
	case progression.JobReminder:
		report, err = runner.RunReminders(ctx, time.Now())
	default:
		return fmt.Errorf("unknown job: %s", job)
	}
	if err != nil {
		return err
	}

	log.Infof(
		"cron job [%s] done: evaluated %d, reset %d, milestones %d, reminders %d, store failures %d, notify failures %d",
		report.Job, report.Evaluated, report.Reset, report.Milestones, report.Reminders,
		report.StoreFailures, report.NotifyFailures,
	)

	return report.Err()
}
