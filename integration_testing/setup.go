//go:build integration_test || all_tests

package integration_testing

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/2beens/challenge45/internal"
	"github.com/2beens/challenge45/internal/config"
	"github.com/2beens/challenge45/internal/db"

	_ "github.com/lib/pq"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

const (
	serverPort = 9045
	serverHost = "localhost"
	cronSecret = "test-cron-secret"
	dbName     = "challenge45"
)

var serverEndpoint = fmt.Sprintf("http://%s:%d", serverHost, serverPort)

const homePlanCSV = `Day,DayTitle,DayFocus,Category,ExerciseName,Sets,Reps,Cardio / Notes
1,Full Body,Strength,Main,Push-ups,2,12,
,,,Core,Plank,1,45s,
2,Rest,Recovery,,,,,Light stretching
3,Legs,Power,Main,Squats,3,15,
`

const gymPlanCSV = `Day,DayTitle,DayFocus,Category,ExerciseName,Sets,Reps,Cardio / Notes
1,Push,Chest,Main,Bench Press,3,8,
`

type Suite struct {
	DB         *sql.DB
	dockerPool *dockertest.Pool
	planServer *httptest.Server
	server     *internal.Server
	teardown   []func()
}

func newSuite(ctx context.Context) *Suite {
	var err error
	suite := &Suite{
		teardown: make([]func(), 0),
	}

	// uses a sensible default on windows (tcp/http) and linux/osx (socket)
	suite.dockerPool, err = dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not create new dockertest pool: %s", err)
	}

	// uses pool to try to connect to Docker
	if err = suite.dockerPool.Client.Ping(); err != nil {
		log.Fatalf("could not ping dockertest pool: %s", err)
	}

	redisPort, err := suite.redisSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup redis: %s", err.Error())
	}

	pgPort, err := suite.postgresSetup()
	if err != nil {
		suite.cleanup()
		log.Fatalf("failed to setup postgres: %s", err)
	}

	suite.planServer = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/home.csv":
			_, _ = w.Write([]byte(homePlanCSV))
		case "/gym.csv":
			_, _ = w.Write([]byte(gymPlanCSV))
		default:
			http.NotFound(w, r)
		}
	}))
	suite.teardown = append(suite.teardown, suite.planServer.Close)

	cfg := getTestConfig(redisPort, pgPort, suite.planServer.URL)
	suite.server, err = internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			VersionInfo:             "test-version-info",
			CronSecret:              cronSecret,
			HoneycombTracingEnabled: false,
		},
	)
	if err != nil {
		suite.cleanup()
		log.Fatalf("new server: %s", err)
	}

	suite.server.Serve(cfg.Host, cfg.Port)

	// wait for the listener
	for i := 0; i < 50; i++ {
		resp, err := http.Get(serverEndpoint + "/version")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	return suite
}

func (s *Suite) cleanup() {
	if s.server != nil {
		s.server.GracefulShutdown()
	}
	if s.DB != nil {
		s.DB.Close()
	}
	for _, teardown := range s.teardown {
		teardown()
	}
}

func getTestConfig(redisPort, postgresPort, planServerURL string) *config.Config {
	return &config.Config{
		Environment:                 "development",
		Host:                        serverHost,
		Port:                        serverPort,
		SiteURL:                     "http://localhost:3000",
		LogLevel:                    "debug",
		LogToStdout:                 true,
		PrometheusMetricsHost:       "localhost",
		PrometheusMetricsPort:       "9046",
		RedisHost:                   "localhost",
		RedisPort:                   redisPort,
		PostgresHost:                "localhost",
		PostgresPort:                postgresPort,
		PostgresDBName:              dbName,
		PostgresUser:                "postgres",
		RunMigrations:               true,
		LoginRateLimitAllowedPerMin: 100,
		PlanSource:                  "csv",
		HomeWorkoutPlanURL:          planServerURL + "/home.csv",
		GymWorkoutPlanURL:           planServerURL + "/gym.csv",
		PlanCacheTTLSecs:            60,
		ReminderHour:                18,
		CronWorkersLimit:            4,
	}
}

func (s *Suite) redisSetup() (string, error) {
	redisResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "redis",
		Tag:        "7.2",
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
	})
	if err != nil {
		return "", fmt.Errorf("run redis: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		redisResource.Close()
	})

	return redisResource.GetPort("6379/tcp"), nil
}

func (s *Suite) postgresSetup() (string, error) {
	pgResource, err := s.dockerPool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16",
		Env: []string{
			"POSTGRES_USER=postgres",
			"POSTGRES_DB=" + dbName,
			"POSTGRES_HOST_AUTH_METHOD=trust",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{
			Name: "no",
		}
	})
	if err != nil {
		return "", fmt.Errorf("dockerpool run postgres: %s", err)
	}

	s.teardown = append(s.teardown, func() {
		pgResource.Close()
	})

	pgPort := pgResource.GetPort("5432/tcp")
	dbParams := db.NewDBPoolParams{
		DBHost: "localhost",
		DBPort: pgPort,
		DBName: dbName,
	}
	sqlDB, err := sql.Open("postgres", dbParams.ConnString())
	if err != nil {
		return "", fmt.Errorf("open db conn: %s", err)
	}
	s.DB = sqlDB

	// migrations run by the server need a reachable db
	if err := s.dockerPool.Retry(sqlDB.Ping); err != nil {
		return "", fmt.Errorf("ping db: %s", err)
	}

	return pgPort, nil
}
