package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/2beens/challenge45/internal/telemetry/metrics"
	"github.com/2beens/challenge45/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// ResendNotifier delivers events as emails through the Resend HTTP API.
type ResendNotifier struct {
	apiURL         string
	apiKey         string
	from           string
	httpClient     *http.Client
	metricsManager *metrics.Manager
}

type NewResendNotifierParams struct {
	APIURL         string
	APIKey         string
	From           string
	HTTPClient     *http.Client
	MetricsManager *metrics.Manager
}

func NewResendNotifier(params NewResendNotifierParams) *ResendNotifier {
	return &ResendNotifier{
		apiURL:         strings.TrimSuffix(params.APIURL, "/"),
		apiKey:         params.APIKey,
		from:           params.From,
		httpClient:     params.HTTPClient,
		metricsManager: params.MetricsManager,
	}
}

type resendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (n *ResendNotifier) Notify(ctx context.Context, event Event) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "notify.resend.notify")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
		status := "ok"
		if err != nil {
			status = "failed"
		}
		n.metricsManager.CounterNotifications.WithLabelValues(string(event.Kind), status).Inc()
	}()
	span.SetAttributes(
		attribute.String("kind", string(event.Kind)),
		attribute.String("user.id", event.UserID.String()),
	)

	msg, err := render(event)
	if err != nil {
		return err
	}

	reqBytes, err := json.Marshal(resendEmailRequest{
		From:    n.from,
		To:      []string{event.UserEmail},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("marshal email request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.apiURL+"/emails", bytes.NewReader(reqBytes))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http client do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("resend status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	log.Debugf("notification %s sent to user %s", event.Kind, event.UserID)
	return nil
}
