package apierr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindFromStatus(t *testing.T) {
	tests := []struct {
		name   string
		status int
		hint   string
		want   Kind
	}{
		{"401 expired", 401, "TOKEN_EXPIRED", KindTokenExpired},
		{"401 other hint", 401, "INVALID", KindInvalidToken},
		{"401 no hint", 401, "", KindInvalidToken},
		{"403", 403, "", KindInvalidAPIKey},
		{"403 ignores hint", 403, "TOKEN_EXPIRED", KindInvalidAPIKey},
		{"404", 404, "", KindNotFound},
		{"429", 429, "", KindRateLimited},
		{"500", 500, "", KindServerError},
		{"503", 503, "", KindServerError},
		{"400", 400, "", KindUnknown},
		{"409", 409, "", KindUnknown},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, KindFromStatus(tc.status, tc.hint))
		})
	}
}

func TestPredicates(t *testing.T) {
	auth := map[Kind]bool{KindInvalidAPIKey: true, KindInvalidToken: true, KindTokenExpired: true}
	retryable := map[Kind]bool{KindNetworkError: true, KindTimeout: true, KindServerError: true, KindRateLimited: true}

	all := []Kind{
		KindInvalidAPIKey, KindInvalidToken, KindTokenExpired, KindNotFound, KindNetworkError,
		KindRateLimited, KindTimeout, KindServerError, KindUnknown,
	}
	for _, k := range all {
		e := New(k, 0, "x")
		assert.Equal(t, auth[k], e.IsAuthError(), "IsAuthError(%s)", k)
		assert.Equal(t, retryable[k], e.IsRetryable(), "IsRetryable(%s)", k)
	}
}

func TestFromResponse_ParsesBody(t *testing.T) {
	e := FromResponse(401, []byte(`{"code":4011,"type":"TOKEN_EXPIRED","message":"jwt expired"}`))

	assert.Equal(t, KindTokenExpired, e.Kind)
	assert.Equal(t, 401, e.StatusCode)
	assert.Equal(t, 4011, e.Code)
	assert.Equal(t, "jwt expired", e.Message)
	assert.True(t, e.IsAuthError())
}

func TestFromResponse_ToleratesEmptyAndInvalidBodies(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		e := FromResponse(404, nil)
		assert.Equal(t, KindNotFound, e.Kind)
		assert.Equal(t, "Not Found", e.Message)
	})

	t.Run("not json", func(t *testing.T) {
		e := FromResponse(502, []byte("<html>bad gateway</html>\n"))
		assert.Equal(t, KindServerError, e.Kind)
		assert.Equal(t, "<html>bad gateway</html>", e.Message)
	})

	t.Run("json without message", func(t *testing.T) {
		e := FromResponse(429, []byte(`{"code":42}`))
		assert.Equal(t, KindRateLimited, e.Kind)
		assert.Equal(t, 42, e.Code)
		assert.Equal(t, "Too Many Requests", e.Message)
	})

	t.Run("unknown status", func(t *testing.T) {
		e := FromResponse(499, nil)
		assert.Equal(t, KindUnknown, e.Kind)
		assert.Equal(t, "unexpected status 499", e.Message)
	})
}

func TestNetworkAndTimeout_KeepCause(t *testing.T) {
	cause := errors.New("connection refused")

	n := Network(cause)
	assert.Equal(t, KindNetworkError, n.Kind)
	assert.Equal(t, 0, n.StatusCode)
	assert.ErrorIs(t, n, cause)

	to := Timeout(context.DeadlineExceeded)
	assert.Equal(t, KindTimeout, to.Kind)
	assert.ErrorIs(t, to, context.DeadlineExceeded)
	assert.True(t, to.IsRetryable())
}

func TestError_String(t *testing.T) {
	assert.Equal(t, "learnkit: NOT_FOUND (HTTP 404): course missing", New(KindNotFound, 404, "course missing").Error())
	assert.Equal(t, "learnkit: TIMEOUT: request timed out", Timeout(nil).Error())
}

func TestHelpers_SeeThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("get course: %w", New(KindNotFound, 404, "nope"))

	require.Equal(t, KindNotFound, KindOf(wrapped))
	assert.True(t, IsNotFound(wrapped))
	assert.False(t, IsAuthError(wrapped))
	assert.False(t, IsRetryable(wrapped))

	assert.True(t, IsAuthError(fmt.Errorf("x: %w", New(KindInvalidAPIKey, 403, "bad key"))))
	assert.True(t, IsRetryable(fmt.Errorf("x: %w", Network(nil))))

	plain := errors.New("plain")
	assert.Equal(t, Kind(""), KindOf(plain))
	assert.False(t, IsNotFound(plain))
}
