package notify

import (
	"context"

	"github.com/2beens/challenge45/internal/telemetry/metrics"

	log "github.com/sirupsen/logrus"
)

// LoggingNotifier only logs events. Used when no email API key is configured.
type LoggingNotifier struct {
	metricsManager *metrics.Manager
}

func NewLoggingNotifier(metricsManager *metrics.Manager) *LoggingNotifier {
	return &LoggingNotifier{
		metricsManager: metricsManager,
	}
}

func (n *LoggingNotifier) Notify(_ context.Context, event Event) error {
	msg, err := render(event)
	if err != nil {
		n.metricsManager.CounterNotifications.WithLabelValues(string(event.Kind), "failed").Inc()
		return err
	}

	log.WithFields(log.Fields{
		"kind":    event.Kind,
		"user_id": event.UserID,
		"email":   event.UserEmail,
		"streak":  event.StreakValue,
	}).Infof("notification: %s", msg.Subject)
	n.metricsManager.CounterNotifications.WithLabelValues(string(event.Kind), "logged").Inc()

	return nil
}
