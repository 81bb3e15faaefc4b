package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUnavailable = errors.New("service unavailable")

func newTestBreaker(timeout time.Duration) *CircuitBreaker {
	return New("test", Config{
		MaxRequests: 3,
		Interval:    10 * time.Second,
		Timeout:     timeout,
		ReadyToTrip: func(counts Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	})
}

func TestClosedStatePassesRequests(t *testing.T) {
	cb := newTestBreaker(30 * time.Second)

	for i := 0; i < 10; i++ {
		require.NoError(t, cb.Execute(func() error { return nil }))
	}

	assert.Equal(t, StateClosed, cb.State())
	assert.Equal(t, uint32(10), cb.Counts().TotalSuccesses)
}

func TestTripsAfterConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(30 * time.Second)

	for i := 0; i < 5; i++ {
		err := cb.Execute(func() error { return errUnavailable })
		assert.ErrorIs(t, err, errUnavailable)
	}

	assert.Equal(t, StateOpen, cb.State())

	// While open, requests fail fast without invoking the function.
	called := false
	err := cb.Execute(func() error { called = true; return nil })
	assert.ErrorIs(t, err, ErrOpenState)
	assert.False(t, called)
}

func TestSuccessResetsConsecutiveFailures(t *testing.T) {
	cb := newTestBreaker(30 * time.Second)

	for i := 0; i < 4; i++ {
		_ = cb.Execute(func() error { return errUnavailable })
	}
	require.NoError(t, cb.Execute(func() error { return nil }))
	for i := 0; i < 4; i++ {
		_ = cb.Execute(func() error { return errUnavailable })
	}

	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenRecovery(t *testing.T) {
	cb := newTestBreaker(20 * time.Millisecond)

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error { return errUnavailable })
	}
	require.Equal(t, StateOpen, cb.State())

	time.Sleep(30 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	// MaxRequests successful probes close the breaker.
	for i := 0; i < 3; i++ {
		require.NoError(t, cb.Execute(func() error { return nil }))
	}
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenFailureReopens(t *testing.T) {
	cb := newTestBreaker(20 * time.Millisecond)

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error { return errUnavailable })
	}
	time.Sleep(30 * time.Millisecond)
	require.Equal(t, StateHalfOpen, cb.State())

	_ = cb.Execute(func() error { return errUnavailable })
	assert.Equal(t, StateOpen, cb.State())
}

func TestStateChangeCallback(t *testing.T) {
	cb := newTestBreaker(30 * time.Second)

	var transitions []string
	cb.SetStateChangeCallback(func(name string, from, to State) {
		transitions = append(transitions, from.String()+"->"+to.String())
	})

	for i := 0; i < 5; i++ {
		_ = cb.Execute(func() error { return errUnavailable })
	}

	require.Len(t, transitions, 1)
	assert.Equal(t, "CLOSED->OPEN", transitions[0])
}
