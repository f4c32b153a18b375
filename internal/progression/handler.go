package progression

import (
	"context"
	"net/http"
	"time"

	"github.com/2beens/challenge45/internal/telemetry/tracing"
	"github.com/2beens/challenge45/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=progression_test

type jobRunner interface {
	RunProgression(ctx context.Context, now time.Time) (*Report, error)
	RunReminders(ctx context.Context, now time.Time) (*Report, error)
}

// CronHandler exposes the batch jobs to an external scheduler.
type CronHandler struct {
	runner jobRunner
	now    func() time.Time
}

func NewCronHandler(runner jobRunner) *CronHandler {
	return &CronHandler{
		runner: runner,
		now:    time.Now,
	}
}

func (h *CronHandler) SetupRoutes(cronRouter *mux.Router) {
	cronRouter.HandleFunc("/progression", h.HandleProgression).Methods("POST").Name("cron-progression")
	cronRouter.HandleFunc("/reminder", h.HandleReminder).Methods("POST").Name("cron-reminder")
}

func (h *CronHandler) HandleProgression(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalCronTracer.Start(r.Context(), "cronHandler.progression")
	defer span.End()

	report, err := h.runner.RunProgression(ctx, h.now())
	if err != nil {
		log.Errorf("cron progression: %s", err)
		http.Error(w, "progression failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, report)
}

func (h *CronHandler) HandleReminder(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalCronTracer.Start(r.Context(), "cronHandler.reminder")
	defer span.End()

	report, err := h.runner.RunReminders(ctx, h.now())
	if err != nil {
		log.Errorf("cron reminder: %s", err)
		http.Error(w, "reminder failed", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONOK(w, report)
}
