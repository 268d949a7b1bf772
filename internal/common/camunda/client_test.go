package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"startup-analyst/internal/common/config"

	"github.com/stretchr/testify/assert"
)

var fastRetry = &RetryConfig{MaxRetries: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	var attempts []int

	err := retry(context.Background(), fastRetry, func() error {
		calls++
		if calls < 3 {
			return errors.New("rpc error: code = Unavailable desc = connection refused")
		}
		return nil
	}, func(attempt int, _ time.Duration, _ error) {
		attempts = append(attempts, attempt)
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []int{1, 2}, attempts)
}

func TestRetry_StopsOnPermanentError(t *testing.T) {
	calls := 0
	err := retry(context.Background(), fastRetry, func() error {
		calls++
		return errors.New("invalid credentials")
	}, nil)

	assert.EqualError(t, err, "invalid credentials")
	assert.Equal(t, 1, calls)
}

func TestRetry_GivesUpAfterMaxRetries(t *testing.T) {
	calls := 0
	err := retry(context.Background(), fastRetry, func() error {
		calls++
		return errors.New("deadline exceeded")
	}, nil)

	assert.Error(t, err)
	assert.Equal(t, fastRetry.MaxRetries+1, calls)
}

func TestRetry_HonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	slow := &RetryConfig{MaxRetries: 5, BaseDelay: time.Hour, MaxDelay: time.Hour}
	err := retry(ctx, slow, func() error { return errors.New("connection reset by peer") }, nil)

	assert.ErrorIs(t, err, context.Canceled)
}

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("dial tcp: Connection Refused")))
	assert.True(t, isRetryableZeebeError(errors.New("i/o timeout")))
	assert.False(t, isRetryableZeebeError(errors.New("NOT_FOUND: process not deployed")))
}

func TestClientConfigFrom(t *testing.T) {
	cfg := ClientConfigFrom(config.CamundaConfig{BrokerAddress: "zeebe:26500"})

	assert.Equal(t, "zeebe:26500", cfg.GatewayAddress)
	assert.True(t, cfg.UsePlaintextConnection)
	assert.Same(t, DefaultRetryConfig, cfg.RetryConfig)
}
