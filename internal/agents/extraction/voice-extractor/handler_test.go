package voiceextractor

import (
	"context"
	"testing"
	"time"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestLogger(t *testing.T) logger.Logger {
	return &testLogger{t: t}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_NoVoiceData(t *testing.T) {
	handler := NewHandler(LoadConfig(), random.Fixed{F: 0.5}, newTestLogger(t))

	output, err := handler.Execute(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "neutral", output.Sentiment)
	assert.NotNil(t, output.KeyPoints)
	assert.Empty(t, output.KeyPoints)
	assert.Zero(t, output.Confidence)
}

func TestHandler_Execute_PinnedRandomness(t *testing.T) {
	tests := []struct {
		name           string
		sample         float64
		wantSentiment  string
		wantConfidence float64
	}{
		{"lowest sample", 0.0, "positive", 0.70},
		{"middle sample", 0.5, "neutral", 0.85},
		{"highest sample", 0.999, "enthusiastic", 1.00},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandler(LoadConfig(), random.Fixed{F: tt.sample}, newTestLogger(t))

			output, err := handler.Execute(context.Background(), &Input{Duration: 95})
			require.NoError(t, err)
			assert.Equal(t, tt.wantSentiment, output.Sentiment)
			assert.InDelta(t, tt.wantConfidence, output.Confidence, 1e-9)
			assert.Equal(t, 95.0, output.Duration)
			assert.Len(t, output.KeyPoints, 3)
		})
	}
}

func TestHandler_Execute_ConfidenceRange(t *testing.T) {
	handler := NewHandler(LoadConfig(), random.New(99), newTestLogger(t))
	sentiments := map[string]bool{"positive": true, "confident": true, "neutral": true, "enthusiastic": true}

	for i := 0; i < 200; i++ {
		output, err := handler.Execute(context.Background(), &Input{})
		require.NoError(t, err)
		assert.GreaterOrEqual(t, output.Confidence, 0.70)
		assert.LessOrEqual(t, output.Confidence, 1.00)
		assert.True(t, sentiments[output.Sentiment], output.Sentiment)
		assert.Zero(t, output.Duration)
	}
}

func TestHandler_Execute_HonoursCancellation(t *testing.T) {
	cfg := LoadConfig()
	cfg.Delay = time.Minute
	handler := NewHandler(cfg, random.Fixed{}, newTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := handler.Execute(ctx, &Input{Duration: 10})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Less(t, time.Since(start), time.Second)
}
