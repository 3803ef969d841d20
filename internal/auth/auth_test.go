package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	svc := NewService("test-secret", nil)

	digest, err := svc.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", digest)

	assert.True(t, svc.Verify("correct horse", digest))
	assert.False(t, svc.Verify("battery staple", digest))
	assert.False(t, svc.Verify("correct horse", "not-a-digest"))
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewService("test-secret", nil)

	token, err := svc.IssueToken(42, "ada")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), userID)
}

func TestParseTokenRejections(t *testing.T) {
	svc := NewService("test-secret", nil)
	token, err := svc.IssueToken(42, "ada")
	require.NoError(t, err)

	t.Run("Garbage", func(t *testing.T) {
		_, err := svc.ParseToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("Wrong secret", func(t *testing.T) {
		other := NewService("different-secret", nil)
		_, err := other.ParseToken(token)
		assert.Error(t, err)
	})

	t.Run("Empty secret refuses to sign", func(t *testing.T) {
		unset := NewService("", nil)
		_, err := unset.IssueToken(1, "x")
		assert.Error(t, err)
	})
}

func TestSessionsWithRedis(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := NewService("test-secret", rdb)
	ctx := context.Background()

	id, err := svc.CreateSession(ctx, 7)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	userID, ok := svc.ResolveSession(ctx, id)
	assert.True(t, ok)
	assert.Equal(t, uint(7), userID)

	t.Run("Expires with TTL", func(t *testing.T) {
		mr.FastForward(SessionTTL + time.Minute)
		_, ok := svc.ResolveSession(ctx, id)
		assert.False(t, ok)
	})

	t.Run("Destroy", func(t *testing.T) {
		id, err := svc.CreateSession(ctx, 8)
		require.NoError(t, err)

		svc.DestroySession(ctx, id)
		_, ok := svc.ResolveSession(ctx, id)
		assert.False(t, ok)
	})

	t.Run("Unknown session", func(t *testing.T) {
		_, ok := svc.ResolveSession(ctx, "no-such-session")
		assert.False(t, ok)
	})

	t.Run("Empty ID", func(t *testing.T) {
		_, ok := svc.ResolveSession(ctx, "")
		assert.False(t, ok)
	})
}

func TestSessionsWithoutRedis(t *testing.T) {
	// nil client falls back to the in-process store.
	svc := NewService("test-secret", nil)
	ctx := context.Background()

	id, err := svc.CreateSession(ctx, 7)
	require.NoError(t, err)

	userID, ok := svc.ResolveSession(ctx, id)
	assert.True(t, ok)
	assert.Equal(t, uint(7), userID)

	svc.DestroySession(ctx, id)
	_, ok = svc.ResolveSession(ctx, id)
	assert.False(t, ok)
}
