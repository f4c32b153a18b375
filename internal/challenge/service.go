package challenge

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/2beens/challenge45/internal/auth"
	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/profiles"
	"github.com/2beens/challenge45/internal/telemetry/metrics"
	"github.com/2beens/challenge45/internal/telemetry/tracing"
	"github.com/2beens/challenge45/pkg"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=challenge_test

var (
	ErrForbidden         = errors.New("caller may not access this challenge")
	ErrDayNotComplete    = errors.New("not every set of today is completed")
	ErrAlreadyCompleted  = errors.New("today is already completed")
	ErrChallengeFinished = errors.New("challenge already finished")
	ErrInvalidSubmission = errors.New("invalid set submission")
	ErrInvalidWeight     = errors.New("invalid weight")
	ErrCertificateLocked = errors.New("certificate not unlocked yet")
)

type profilesRepo interface {
	Get(ctx context.Context, id uuid.UUID) (*profiles.Profile, error)
	CompleteDay(ctx context.Context, progress profiles.DailyProgress) (int, error)
	ResetStreak(ctx context.Context, id uuid.UUID) error
	UpdateWeight(ctx context.Context, id uuid.UUID, weight float64, at time.Time) error
	WeightHistory(ctx context.Context, id uuid.UUID, from, to time.Time) ([]profiles.WeightEntry, error)
	ProgressLog(ctx context.Context, id uuid.UUID, from, to time.Time) ([]profiles.DailyProgress, error)
}

type planProvider interface {
	Get(ctx context.Context, routine plan.Routine) (*plan.Plan, error)
}

type Service struct {
	repo           profilesRepo
	plans          planProvider
	siteURL        string
	metricsManager *metrics.Manager
	now            func() time.Time
}

type NewServiceParams struct {
	Repo           profilesRepo
	Plans          planProvider
	SiteURL        string
	MetricsManager *metrics.Manager
	Now            func() time.Time
}

func NewService(params NewServiceParams) *Service {
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:           params.Repo,
		plans:          params.Plans,
		siteURL:        params.SiteURL,
		metricsManager: params.MetricsManager,
		now:            now,
	}
}

// authorize rejects any access to another user's challenge.
func authorize(identity auth.Identity, userID uuid.UUID) error {
	if identity.UserID == uuid.Nil || identity.UserID != userID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) profile(ctx context.Context, identity auth.Identity, userID uuid.UUID) (*profiles.Profile, error) {
	if err := authorize(identity, userID); err != nil {
		return nil, err
	}
	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return p, nil
}

func (s *Service) Today(ctx context.Context, identity auth.Identity, userID uuid.UUID) (_ *Dashboard, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.today")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.profile(ctx, identity, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dashboard := &Dashboard{
		Name:           p.DisplayName(),
		Streak:         p.CurrentStreak,
		CompletedToday: pkg.SameDate(p.LastCompletedDay, now),
	}

	if p.ChallengeCompleted() {
		dashboard.Today = plan.ResolveToday(nil, p.CurrentStreak)
		dashboard.Today.Routine = p.Routine
		dashboard.DayLabel = fmt.Sprintf("Day %d of %d", plan.ChallengeDays, plan.ChallengeDays)
		return dashboard, nil
	}

	plan45, err := s.plans.Get(ctx, p.Routine)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	dashboard.Today = plan.ResolveToday(plan45, p.CurrentStreak)
	dashboard.DayLabel = fmt.Sprintf("Day %d of %d", dashboard.Today.DayNumber, plan.ChallengeDays)
	dashboard.Completable = !dashboard.CompletedToday && dashboard.Today.IsCompletable()
	span.SetAttributes(attribute.Int("day", dashboard.Today.DayNumber))

	return dashboard, nil
}

// Complete marks today's day as done. The submitted set states are applied
// to a freshly resolved view, so only a fully completed workout (or a rest
// day) advances the streak.
func (s *Service) Complete(ctx context.Context, identity auth.Identity, userID uuid.UUID, req CompleteRequest) (_ *CompleteResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.complete")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.profile(ctx, identity, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if p.ChallengeCompleted() {
		return nil, ErrChallengeFinished
	}
	if pkg.SameDate(p.LastCompletedDay, now) {
		return nil, ErrAlreadyCompleted
	}

	plan45, err := s.plans.Get(ctx, p.Routine)
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	view := plan.ResolveToday(plan45, p.CurrentStreak)
	if view.Kind == plan.KindComplete {
		return nil, ErrChallengeFinished
	}

	for _, submitted := range req.Sets {
		if err := view.MarkSet(submitted.Exercise, submitted.Set, submitted.Completed); err != nil {
			return nil, fmt.Errorf("%w: exercise %d set %d: %w", ErrInvalidSubmission, submitted.Exercise, submitted.Set, err)
		}
		if submitted.Weight == "" {
			continue
		}
		if err := view.SetWeight(submitted.Exercise, submitted.Set, submitted.Weight); err != nil {
			return nil, fmt.Errorf("%w: exercise %d set %d: %w", ErrInvalidSubmission, submitted.Exercise, submitted.Set, err)
		}
	}

	if !view.IsCompletable() {
		return nil, ErrDayNotComplete
	}

	newStreak, err := s.repo.CompleteDay(ctx, profiles.DailyProgress{
		UserID:      p.ID,
		WorkoutDate: pkg.UTCDate(now),
		DayNumber:   view.DayNumber,
		IsCompleted: true,
		Sets:        setRecords(view),
	})
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrAlreadyCompletedToday):
			return nil, ErrAlreadyCompleted
		case errors.Is(err, profiles.ErrStreakAtMax):
			return nil, ErrChallengeFinished
		}
		return nil, fmt.Errorf("complete day: %w", err)
	}

	s.metricsManager.CounterDaysCompleted.Inc()
	finished := newStreak >= plan.ChallengeDays
	if finished {
		s.metricsManager.CounterChallengesFinished.Inc()
	}
	log.Debugf("user %s completed day %d, streak now %d", p.ID, view.DayNumber, newStreak)

	return &CompleteResult{
		CompletedDay:      view.DayNumber,
		Streak:            newStreak,
		ChallengeFinished: finished,
	}, nil
}

func setRecords(view *plan.TodayView) []profiles.SetRecord {
	records := make([]profiles.SetRecord, 0, view.SetsTotal())
	for _, ex := range view.Exercises {
		for _, slot := range ex.Sets {
			records = append(records, profiles.SetRecord{
				Exercise:  ex.Name,
				Set:       slot.Number,
				Reps:      slot.Reps,
				Weight:    slot.Weight,
				Completed: slot.Completed,
			})
		}
	}
	return records
}

// Reset starts the challenge over from day one.
func (s *Service) Reset(ctx context.Context, identity auth.Identity, userID uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.reset")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := authorize(identity, userID); err != nil {
		return err
	}
	if err := s.repo.ResetStreak(ctx, userID); err != nil {
		return fmt.Errorf("reset streak: %w", err)
	}
	return nil
}

func (s *Service) Profile(ctx context.Context, identity auth.Identity, userID uuid.UUID) (_ *ProfileView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.profile")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.profile(ctx, identity, userID)
	if err != nil {
		return nil, err
	}
	return newProfileView(p), nil
}

func (s *Service) UpdateWeight(ctx context.Context, identity auth.Identity, userID uuid.UUID, weight float64) (_ *ProfileView, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.update_weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := authorize(identity, userID); err != nil {
		return nil, err
	}
	if weight <= profiles.MinWeightKg {
		return nil, fmt.Errorf("%w: must be above %.0f kg", ErrInvalidWeight, profiles.MinWeightKg)
	}

	if err := s.repo.UpdateWeight(ctx, userID, weight, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("update weight: %w", err)
	}

	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return newProfileView(p), nil
}

// WeeklySummary covers the seven UTC days ending today.
func (s *Service) WeeklySummary(ctx context.Context, identity auth.Identity, userID uuid.UUID) (_ *WeeklySummary, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.weekly_summary")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	if err := authorize(identity, userID); err != nil {
		return nil, err
	}

	now := s.now()
	today := pkg.UTCDate(now)
	from := today.AddDate(0, 0, -(summaryDays - 1))

	weights, err := s.repo.WeightHistory(ctx, userID, from, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("weight history: %w", err)
	}
	progress, err := s.repo.ProgressLog(ctx, userID, from, today)
	if err != nil {
		return nil, fmt.Errorf("progress log: %w", err)
	}

	return buildWeeklySummary(now, weights, progress), nil
}

func (s *Service) Certificate(ctx context.Context, identity auth.Identity, userID uuid.UUID) (_ *Certificate, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.certificate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.profile(ctx, identity, userID)
	if err != nil {
		return nil, err
	}
	if !p.ChallengeCompleted() {
		return nil, ErrCertificateLocked
	}

	return newCertificate(p, s.siteURL, s.now()), nil
}

// SharePreview is public, it only exposes the display name.
func (s *Service) SharePreview(ctx context.Context, userID uuid.UUID) (_ *SharePreview, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.challenge.share_preview")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	p, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return newSharePreview(p, s.siteURL), nil
}
