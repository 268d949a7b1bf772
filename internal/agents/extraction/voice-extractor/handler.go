// internal/agents/extraction/voice-extractor/handler.go
package voiceextractor

import (
	"context"
	"time"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "voice-extractor"
	Slot     = registry.SlotVoiceExtractor
)

type Handler struct {
	config *Config
	random random.Source
	logger logger.Logger
}

func NewHandler(config *Config, rnd random.Source, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		random: rnd,
		logger: logger.ForAgent(log, Slot),
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}

// execute returns placeholder voice signals. Sentiment and confidence are sampled.
func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil {
		return &Output{Sentiment: "neutral", KeyPoints: []string{}}, nil
	}

	if err := wait(ctx, h.config.Delay); err != nil {
		return nil, err
	}

	output := &Output{
		Sentiment:  h.config.Sentiments[h.random.Intn(len(h.config.Sentiments))],
		KeyPoints:  append([]string{}, h.config.KeyPoints...),
		Confidence: scoring.Clamp(scoring.RoundTo(random.Between(h.random, minConfidence, maxConfidence), 2), minConfidence, maxConfidence),
		Duration:   input.Duration,
	}

	h.logger.Info("voice signals extracted", map[string]interface{}{
		"sentiment":  output.Sentiment,
		"confidence": output.Confidence,
		"duration":   output.Duration,
	})

	return output, nil
}

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
