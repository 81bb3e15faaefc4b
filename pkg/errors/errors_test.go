package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"forbidden", ErrForbidden, http.StatusForbidden},
		{"unauthenticated", ErrUnauthenticated, http.StatusUnauthorized},
		{"token expired", ErrTokenExpired, http.StatusUnauthorized},
		{"not found", New(ErrCodeBookNotFound, "book not found"), http.StatusNotFound},
		{"favorite not found", New(ErrCodeFavoriteNotFound, "not favorited"), http.StatusNotFound},
		{"conflict", New(ErrCodeConflict, "already favorited"), http.StatusConflict},
		{"email duplicate", ErrEmailDuplicate, http.StatusConflict},
		{"validation", ErrInvalidParams, http.StatusBadRequest},
		{"business", New(ErrCodeBusinessError, "nope"), http.StatusBadRequest},
		{"internal", ErrInternal, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.HTTPStatus())
		})
	}
}

func TestWrapHidesCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := Wrap(cause, "database error")

	assert.Equal(t, ErrCodeInternal, err.Code)
	assert.Equal(t, "database error", err.Message)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestGetAppError(t *testing.T) {
	assert.Same(t, ErrForbidden, GetAppError(ErrForbidden))

	plain := errors.New("boom")
	wrapped := GetAppError(plain)
	assert.Equal(t, ErrCodeInternal, wrapped.Code)
	assert.ErrorIs(t, wrapped, plain)

	assert.True(t, IsAppError(wrapped))
	assert.False(t, IsAppError(plain))
}
