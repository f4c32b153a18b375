package profiles

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/2beens/challenge45/internal/plan"
	"github.com/2beens/challenge45/internal/telemetry/tracing"
	"github.com/2beens/challenge45/pkg"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

const profileColumns = `
	id, email, name, password_hash, current_streak, last_completed_day,
	workout_routine, timezone, age, height_cm::float8, current_weight::float8,
	last_weight_update, created_at`

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func scanProfile(row pgx.Row) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(
		&p.ID,
		&p.Email,
		&p.Name,
		&p.PasswordHash,
		&p.CurrentStreak,
		&p.LastCompletedDay,
		&p.Routine,
		&p.Timezone,
		&p.Age,
		&p.HeightCm,
		&p.CurrentWeight,
		&p.LastWeightUpdate,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *Repo) Create(ctx context.Context, np NewProfile) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.create")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	var lastWeightUpdate *time.Time
	if np.Weight != nil {
		now := time.Now().UTC()
		lastWeightUpdate = &now
	}

	profile, err := scanProfile(tx.QueryRow(ctx, `
		INSERT INTO profile
			(email, name, password_hash, workout_routine, timezone, age, height_cm, current_weight, last_weight_update)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+profileColumns,
		strings.ToLower(strings.TrimSpace(np.Email)),
		strings.TrimSpace(np.Name),
		np.PasswordHash,
		string(np.Routine),
		np.Timezone,
		np.Age,
		np.HeightCm,
		np.Weight,
		lastWeightUpdate,
	))
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("insert profile: %w", err)
	}

	if np.Weight != nil {
		if _, err = tx.Exec(ctx, `
			INSERT INTO weight_history (user_id, weight, recorded_at) VALUES ($1, $2, $3)
		`, profile.ID, *np.Weight, *lastWeightUpdate); err != nil {
			return nil, fmt.Errorf("insert weight history: %w", err)
		}
	}

	span.SetAttributes(attribute.String("profile.id", profile.ID.String()))
	return profile, nil
}

func (r *Repo) Get(ctx context.Context, id uuid.UUID) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	return scanProfile(r.db.QueryRow(ctx, `SELECT `+profileColumns+` FROM profile WHERE id = $1`, id))
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (_ *Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.get_by_email")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	return scanProfile(r.db.QueryRow(
		ctx,
		`SELECT `+profileColumns+` FROM profile WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email)),
	))
}

// ListActive returns every profile with a running, unfinished streak.
func (r *Repo) ListActive(ctx context.Context) (_ []*Profile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.list_active")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT `+profileColumns+`
		FROM profile
		WHERE current_streak > 0 AND current_streak < $1
		ORDER BY created_at
	`, plan.ChallengeDays)
	if err != nil {
		return nil, fmt.Errorf("query active profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	span.SetAttributes(attribute.Int("count", len(profiles)))
	return profiles, nil
}

// CompleteDay advances the streak by one and stamps today as the last
// completed day in a single conditional update, then logs the day's progress.
func (r *Repo) CompleteDay(ctx context.Context, progress DailyProgress) (newStreak int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.complete_day")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("id", progress.UserID.String()),
		attribute.Int("day", progress.DayNumber),
	)

	today := pkg.UTCDate(progress.WorkoutDate)
	setsJson, err := json.Marshal(progress.Sets)
	if err != nil {
		return 0, fmt.Errorf("marshal sets: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		UPDATE profile
		SET current_streak = current_streak + 1, last_completed_day = $2
		WHERE id = $1
		  AND last_completed_day IS DISTINCT FROM $2
		  AND current_streak < $3
		RETURNING current_streak
	`, progress.UserID, today, plan.ChallengeDays).Scan(&newStreak)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("advance streak: %w", err)
		}
		return 0, r.notAdvancedReason(ctx, tx, progress.UserID, today)
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO daily_progress (user_id, workout_date, day_number, is_completed, sets)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, workout_date)
		DO UPDATE SET day_number = EXCLUDED.day_number, is_completed = EXCLUDED.is_completed, sets = EXCLUDED.sets
	`, progress.UserID, today, progress.DayNumber, progress.IsCompleted, setsJson); err != nil {
		return 0, fmt.Errorf("insert daily progress: %w", err)
	}

	span.SetAttributes(attribute.Int("streak", newStreak))
	return newStreak, nil
}

func (r *Repo) notAdvancedReason(ctx context.Context, tx pgx.Tx, id uuid.UUID, today time.Time) error {
	var (
		streak        int
		lastCompleted *time.Time
	)
	err := tx.QueryRow(ctx, `
		SELECT current_streak, last_completed_day FROM profile WHERE id = $1
	`, id).Scan(&streak, &lastCompleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("get streak: %w", err)
	}
	if pkg.SameDate(lastCompleted, today) {
		return ErrAlreadyCompletedToday
	}
	if streak >= plan.ChallengeDays {
		return ErrStreakAtMax
	}
	return fmt.Errorf("streak not advanced for %s", id)
}

// ResetStreak sets the streak back to zero and clears the last completed day.
func (r *Repo) ResetStreak(ctx context.Context, id uuid.UUID) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.reset_streak")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx, `
		UPDATE profile SET current_streak = 0, last_completed_day = NULL WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ResetIfUnchanged resets a missed streak, unless the streak state changed
// since it was observed (e.g. the user completed a day in the meantime).
func (r *Repo) ResetIfUnchanged(ctx context.Context, id uuid.UUID, observedStreak int, observedLastCompleted *time.Time) (_ bool, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.reset_if_unchanged")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tag, err := r.db.Exec(ctx, `
		UPDATE profile
		SET current_streak = 0, last_completed_day = NULL
		WHERE id = $1
		  AND current_streak = $2
		  AND last_completed_day IS NOT DISTINCT FROM $3::date
	`, id, observedStreak, observedLastCompleted)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateWeight sets the current weight and appends it to the weight history.
func (r *Repo) UpdateWeight(ctx context.Context, id uuid.UUID, weight float64, at time.Time) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.update_weight")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("id", id.String()))

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				err = fmt.Errorf("failed to rollback transaction: %w: %w", rollbackErr, err)
			}
		} else {
			err = tx.Commit(ctx)
		}
	}()

	tag, err := tx.Exec(ctx, `
		UPDATE profile SET current_weight = $2, last_weight_update = $3 WHERE id = $1
	`, id, weight, at)
	if err != nil {
		return fmt.Errorf("update weight: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}

	if _, err = tx.Exec(ctx, `
		INSERT INTO weight_history (user_id, weight, recorded_at) VALUES ($1, $2, $3)
	`, id, weight, at); err != nil {
		return fmt.Errorf("insert weight history: %w", err)
	}

	return nil
}

// WeightHistory lists weight entries recorded in [from, to).
func (r *Repo) WeightHistory(ctx context.Context, id uuid.UUID, from, to time.Time) (_ []WeightEntry, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.weight_history")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT weight::float8, recorded_at
		FROM weight_history
		WHERE user_id = $1 AND recorded_at >= $2 AND recorded_at < $3
		ORDER BY recorded_at
	`, id, from, to)
	if err != nil {
		return nil, fmt.Errorf("query weight history: %w", err)
	}
	defer rows.Close()

	entries := make([]WeightEntry, 0)
	for rows.Next() {
		var e WeightEntry
		if err := rows.Scan(&e.Weight, &e.RecordedAt); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ProgressLog lists the daily progress entries with workout dates in [from, to].
func (r *Repo) ProgressLog(ctx context.Context, id uuid.UUID, from, to time.Time) (_ []DailyProgress, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.profiles.progress_log")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	rows, err := r.db.Query(ctx, `
		SELECT user_id, workout_date, day_number, is_completed, sets
		FROM daily_progress
		WHERE user_id = $1 AND workout_date >= $2::date AND workout_date <= $3::date
		ORDER BY workout_date
	`, id, pkg.UTCDate(from), pkg.UTCDate(to))
	if err != nil {
		return nil, fmt.Errorf("query daily progress: %w", err)
	}
	defer rows.Close()

	entries := make([]DailyProgress, 0)
	for rows.Next() {
		var (
			p        DailyProgress
			setsJson []byte
		)
		if err := rows.Scan(&p.UserID, &p.WorkoutDate, &p.DayNumber, &p.IsCompleted, &setsJson); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		if err := json.Unmarshal(setsJson, &p.Sets); err != nil {
			return nil, fmt.Errorf("unmarshal sets: %w", err)
		}
		entries = append(entries, p)
	}
	return entries, rows.Err()
}
