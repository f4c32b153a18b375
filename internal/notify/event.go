package notify

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrUnknownKind = errors.New("unknown notification kind")

type Kind string

const (
	KindReset     Kind = "reset"
	KindMilestone Kind = "milestone"
	KindReminder  Kind = "reminder"
)

// Event is a single outbound message about a user's streak.
// StreakValue is the streak lost for KindReset, the reached
// day for KindMilestone, and the current streak for KindReminder.
type Event struct {
	UserID      uuid.UUID
	UserEmail   string
	UserName    string
	Kind        Kind
	StreakValue int
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}
