package geoip

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/2beens/challenge45/internal/telemetry/tracing"
	"github.com/2beens/challenge45/pkg"

	"github.com/go-redis/redis/v8"
	"github.com/ipinfo/go/v2/ipinfo"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	DefaultTimezone = "UTC"
	cacheTTL        = 30 * 24 * time.Hour
)

var ErrNoTimezone = errors.New("no timezone for ip")

// TimezoneGuesser resolves the IANA time zone of a client IP through ipinfo,
// caching answers in redis.
type TimezoneGuesser struct {
	client      *ipinfo.Client
	redisClient *redis.Client
}

func NewTimezoneGuesser(token string, httpClient *http.Client, redisClient *redis.Client) *TimezoneGuesser {
	return &TimezoneGuesser{
		client:      ipinfo.NewClient(httpClient, nil, token),
		redisClient: redisClient,
	}
}

// NewNoopTimezoneGuesser always answers DefaultTimezone, used when ipinfo is disabled.
func NewNoopTimezoneGuesser() *TimezoneGuesser {
	return &TimezoneGuesser{}
}

// WithBaseURL points the ipinfo client to another endpoint, e.g. a test server.
func (g *TimezoneGuesser) WithBaseURL(baseURL *url.URL) *TimezoneGuesser {
	g.client.BaseURL = baseURL
	return g
}

// GuessTimezone never fails, unknown or local clients get DefaultTimezone.
func (g *TimezoneGuesser) GuessTimezone(ctx context.Context, r *http.Request) string {
	if g.client == nil {
		return DefaultTimezone
	}

	userIp, err := pkg.ReadUserIP(r)
	if err != nil {
		log.Debugf("guess timezone, read user ip: %s", err)
		return DefaultTimezone
	}
	if userIp == "localhost" {
		return DefaultTimezone
	}

	tz, err := g.IPTimezone(ctx, userIp)
	if err != nil {
		log.Warnf("guess timezone for %s: %s", userIp, err)
		return DefaultTimezone
	}
	return tz
}

func (g *TimezoneGuesser) IPTimezone(ctx context.Context, ip string) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "geoip.ip_timezone")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user.ip", ip))

	parsedIp := net.ParseIP(ip)
	if parsedIp == nil {
		return "", fmt.Errorf("invalid ip: %s", ip)
	}

	cacheKey := fmt.Sprintf("ip-tz::%s", ip)
	if cached, err := g.redisClient.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
		span.SetAttributes(attribute.Bool("user.ip.from-cache", true))
		return cached, nil
	} else if err != nil && !errors.Is(err, redis.Nil) {
		log.Errorf("get cached timezone for [%s]: %s", ip, err)
	}
	span.SetAttributes(attribute.Bool("user.ip.from-cache", false))

	info, err := g.client.GetIPInfo(parsedIp)
	if err != nil {
		return "", fmt.Errorf("get ip info: %w", err)
	}
	if info.Timezone == "" {
		return "", ErrNoTimezone
	}
	if _, err := time.LoadLocation(info.Timezone); err != nil {
		return "", fmt.Errorf("%w: unknown zone %q", ErrNoTimezone, info.Timezone)
	}

	if err := g.redisClient.Set(ctx, cacheKey, info.Timezone, cacheTTL).Err(); err != nil {
		log.Errorf("cache timezone for %s: %s", ip, err)
	}

	return info.Timezone, nil
}
