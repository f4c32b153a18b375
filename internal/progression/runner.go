package progression

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/2beens/challenge45/internal/notify"
	"github.com/2beens/challenge45/internal/profiles"
	"github.com/2beens/challenge45/internal/telemetry/metrics"
	"github.com/2beens/challenge45/internal/telemetry/tracing"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=runner_mocks_test.go -package=progression_test

const (
	JobProgression = "progression"
	JobReminder    = "reminder"

	defaultWorkersLimit = 8
)

type profilesRepo interface {
	ListActive(ctx context.Context) ([]*profiles.Profile, error)
	ResetIfUnchanged(ctx context.Context, id uuid.UUID, observedStreak int, observedLastCompleted *time.Time) (bool, error)
}

// Report sums up one batch run.
type Report struct {
	Job            string   `json:"job"`
	Evaluated      int      `json:"evaluated"`
	Reset          int      `json:"reset"`
	Milestones     int      `json:"milestones"`
	Reminders      int      `json:"reminders"`
	StoreFailures  int      `json:"storeFailures"`
	NotifyFailures int      `json:"notifyFailures"`
	Errors         []string `json:"errors,omitempty"`

	mu  sync.Mutex
	err error
}

// Err combines all per-user failures of the run.
func (r *Report) Err() error {
	return r.err
}

func (r *Report) addErr(err error, notification bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if notification {
		r.NotifyFailures++
	} else {
		r.StoreFailures++
	}
	r.err = multierr.Append(r.err, err)
	r.Errors = append(r.Errors, err.Error())
}

func (r *Report) count(field *int) {
	r.mu.Lock()
	*field++
	r.mu.Unlock()
}

type Runner struct {
	repo           profilesRepo
	notifier       notify.Notifier
	workersLimit   int
	reminderHour   int
	metricsManager *metrics.Manager
}

type NewRunnerParams struct {
	Repo           profilesRepo
	Notifier       notify.Notifier
	WorkersLimit   int
	ReminderHour   int
	MetricsManager *metrics.Manager
}

func NewRunner(params NewRunnerParams) *Runner {
	workersLimit := params.WorkersLimit
	if workersLimit <= 0 {
		workersLimit = defaultWorkersLimit
	}
	reminderHour := params.ReminderHour
	if reminderHour < 0 || reminderHour > 23 {
		reminderHour = DefaultReminderHour
	}
	return &Runner{
		repo:           params.Repo,
		notifier:       params.Notifier,
		workersLimit:   workersLimit,
		reminderHour:   reminderHour,
		metricsManager: params.MetricsManager,
	}
}

func stateOf(p *profiles.Profile) State {
	return State{
		Streak:           p.CurrentStreak,
		LastCompletedDay: p.LastCompletedDay,
		Location:         p.Location(),
	}
}

// RunProgression resets users who missed yesterday and celebrates milestones.
// Only a failure to list users fails the whole run.
func (r *Runner) RunProgression(ctx context.Context, now time.Time) (_ *Report, err error) {
	ctx, span := tracing.GlobalCronTracer.Start(ctx, "progression.runner.progression")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer r.observeDuration(JobProgression, time.Now())

	users, err := r.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active profiles: %w", err)
	}

	report := &Report{Job: JobProgression}
	r.forEach(users, func(p *profiles.Profile) {
		report.count(&report.Evaluated)

		decision := Evaluate(stateOf(p), now)
		switch {
		case decision.Reset:
			reset, err := r.repo.ResetIfUnchanged(ctx, p.ID, p.CurrentStreak, p.LastCompletedDay)
			if err != nil {
				log.Errorf("progression: reset user %s: %s", p.ID, err)
				report.addErr(fmt.Errorf("reset %s: %w", p.ID, err), false)
				return
			}
			if !reset {
				log.Debugf("progression: user %s changed since listing, reset skipped", p.ID)
				return
			}
			report.count(&report.Reset)
			r.metricsManager.CounterStreakResets.Inc()
			r.send(ctx, report, p, notify.KindReset, p.CurrentStreak)
		case decision.Milestone:
			report.count(&report.Milestones)
			r.metricsManager.CounterMilestones.Inc()
			r.send(ctx, report, p, notify.KindMilestone, p.CurrentStreak)
		}
	})

	span.SetAttributes(
		attribute.Int("evaluated", report.Evaluated),
		attribute.Int("reset", report.Reset),
		attribute.Int("milestones", report.Milestones),
	)
	log.Infof(
		"progression done: evaluated %d, reset %d, milestones %d, store failures %d, notify failures %d",
		report.Evaluated, report.Reset, report.Milestones, report.StoreFailures, report.NotifyFailures,
	)

	return report, nil
}

// RunReminders nudges users who have not completed today when it is the
// reminder hour in their time zone.
func (r *Runner) RunReminders(ctx context.Context, now time.Time) (_ *Report, err error) {
	ctx, span := tracing.GlobalCronTracer.Start(ctx, "progression.runner.reminders")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	defer r.observeDuration(JobReminder, time.Now())

	users, err := r.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active profiles: %w", err)
	}

	report := &Report{Job: JobReminder}
	r.forEach(users, func(p *profiles.Profile) {
		report.count(&report.Evaluated)
		if !ShouldRemind(stateOf(p), now, r.reminderHour) {
			return
		}
		report.count(&report.Reminders)
		r.send(ctx, report, p, notify.KindReminder, p.CurrentStreak)
	})

	span.SetAttributes(attribute.Int("reminders", report.Reminders))
	log.Infof(
		"reminders done: evaluated %d, reminders %d, notify failures %d",
		report.Evaluated, report.Reminders, report.NotifyFailures,
	)

	return report, nil
}

func (r *Runner) forEach(users []*profiles.Profile, fn func(p *profiles.Profile)) {
	var g errgroup.Group
	g.SetLimit(r.workersLimit)
	for _, p := range users {
		g.Go(func() error {
			fn(p)
			return nil
		})
	}
	_ = g.Wait()
}

func (r *Runner) send(ctx context.Context, report *Report, p *profiles.Profile, kind notify.Kind, streak int) {
	err := r.notifier.Notify(ctx, notify.Event{
		UserID:      p.ID,
		UserEmail:   p.Email,
		UserName:    p.DisplayName(),
		Kind:        kind,
		StreakValue: streak,
	})
	if err != nil {
		log.Errorf("progression: notify %s for user %s: %s", kind, p.ID, err)
		report.addErr(fmt.Errorf("notify %s %s: %w", kind, p.ID, err), true)
	}
}

func (r *Runner) observeDuration(job string, start time.Time) {
	r.metricsManager.HistogramCronDuration.WithLabelValues(job).Observe(time.Since(start).Seconds())
}
