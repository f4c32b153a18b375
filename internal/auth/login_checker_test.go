package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginChecker_SessionUser(t *testing.T) {
	db, mock := redismock.NewClientMock()
	defer db.Close()

	loginChecker := NewLoginChecker(time.Hour, db)
	require.NotNil(t, loginChecker)

	ctx := context.Background()

	_, err := loginChecker.SessionUser(ctx, "")
	assert.ErrorIs(t, err, ErrNoSession)

	mock.ExpectGet(sessionKeyPrefix + "invalid token").SetErr(redis.Nil)
	userID, err := loginChecker.SessionUser(ctx, "invalid token")
	assert.ErrorIs(t, err, ErrNoSession)
	assert.Equal(t, uuid.Nil, userID)

	testToken := "test-token"
	owner := uuid.New()
	sessionKey := sessionKeyPrefix + testToken

	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%s|%d", owner, time.Now().Unix()))
	userID, err = loginChecker.SessionUser(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, owner, userID)

	// idempotent
	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%s|%d", owner, time.Now().Unix()))
	userID, err = loginChecker.SessionUser(ctx, testToken)
	require.NoError(t, err)
	assert.Equal(t, owner, userID)

	mock.ExpectGet(sessionKey).SetVal(fmt.Sprintf("%s|%d", owner, time.Now().Add(-2*time.Hour).Unix()))
	_, err = loginChecker.SessionUser(ctx, testToken)
	assert.ErrorIs(t, err, ErrNoSession)

	mock.ExpectGet(sessionKey).SetVal("garbage")
	_, err = loginChecker.SessionUser(ctx, testToken)
	assert.ErrorIs(t, err, ErrInvalidSession)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFromContext(context.Background())
	assert.False(t, ok)

	_, ok = IdentityFromContext(WithIdentity(context.Background(), Identity{}))
	assert.False(t, ok)

	id := Identity{UserID: uuid.New(), Token: "tkn"}
	got, ok := IdentityFromContext(WithIdentity(context.Background(), id))
	assert.True(t, ok)
	assert.Equal(t, id, got)
}
