package auth

import (
	"context"

	"github.com/google/uuid"
)

var _ Checker = (*LoginChecker)(nil)

type Checker interface {
	SessionUser(ctx context.Context, token string) (uuid.UUID, error)
}
