package plan

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/2beens/challenge45/internal/telemetry/metrics"
	"github.com/2beens/challenge45/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultCacheTTLSecs = 60 * 60
	cacheSize           = 4 * 1024 * 1024
)

// Provider serves normalized plans per routine, keeping them in
// an in-memory cache for a while after each fetch.
type Provider struct {
	sources        map[Routine]Source
	cache          *freecache.Cache
	cacheTTLSecs   int
	metricsManager *metrics.Manager
}

func NewProvider(sources map[Routine]Source, cacheTTLSecs int, metricsManager *metrics.Manager) *Provider {
	if cacheTTLSecs <= 0 {
		cacheTTLSecs = defaultCacheTTLSecs
	}
	return &Provider{
		sources:        sources,
		cache:          freecache.NewCache(cacheSize),
		cacheTTLSecs:   cacheTTLSecs,
		metricsManager: metricsManager,
	}
}

func (p *Provider) Get(ctx context.Context, routine Routine) (_ *Plan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "plan.provider.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("routine", string(routine)))

	source, ok := p.sources[routine]
	if !ok {
		return nil, fmt.Errorf("%w: no source for routine %q", ErrPlanUnavailable, routine)
	}

	cacheKey := []byte("plan::" + string(routine))
	if cachedBytes, err := p.cache.Get(cacheKey); err == nil {
		var days []NormalizedDay
		if err := json.Unmarshal(cachedBytes, &days); err == nil {
			p.metricsManager.CounterPlanFetches.WithLabelValues(string(routine), "cache").Inc()
			return &Plan{Routine: routine, Days: days}, nil
		} else {
			log.Errorf("unmarshal cached plan for %s: %s", routine, err)
		}
	}

	rows, err := source.Rows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPlanUnavailable, err)
	}
	p.metricsManager.CounterPlanFetches.WithLabelValues(string(routine), source.Name()).Inc()

	plan := NewPlan(routine, rows)
	if len(plan.Days) == 0 {
		return nil, fmt.Errorf("%w: plan for %s has no days", ErrPlanUnavailable, routine)
	}
	log.Debugf("plan for %s loaded from %s: %d rows, %d days", routine, source.Name(), len(rows), len(plan.Days))

	daysBytes, err := json.Marshal(plan.Days)
	if err != nil {
		log.Errorf("marshal plan for %s: %s", routine, err)
		return plan, nil
	}
	if err := p.cache.Set(cacheKey, daysBytes, p.cacheTTLSecs); err != nil {
		log.Errorf("set plan cache for %s: %s", routine, err)
	}

	return plan, nil
}

// Invalidate drops the cached plan of the routine.
func (p *Provider) Invalidate(routine Routine) {
	p.cache.Del([]byte("plan::" + string(routine)))
}
