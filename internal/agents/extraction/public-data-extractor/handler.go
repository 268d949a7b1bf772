// internal/agents/extraction/public-data-extractor/handler.go
package publicdataextractor

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "public-data-extractor"
	Slot     = registry.SlotPublicDataExtractor
)

var ErrNoPublicData = errors.New("PUBLIC_DATA_UNAVAILABLE")

type Handler struct {
	config *Config
	lookup Lookup
	random random.Source
	logger logger.Logger
}

// NewHandler builds the extractor. lookup may be nil, in which case placeholder data is used.
func NewHandler(config *Config, lookup Lookup, rnd random.Source, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		lookup: lookup,
		random: rnd,
		logger: logger.ForAgent(log, Slot),
	}
}

func (h *Handler) Execute(ctx context.Context, company Input) (*Output, error) {
	return h.execute(ctx, company)
}

func (h *Handler) execute(ctx context.Context, company string) (*Output, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return &Output{MarketData: models.Record{}, Competitors: []models.Competitor{}}, nil
	}

	if err := wait(ctx, h.config.Delay); err != nil {
		return nil, err
	}

	if h.lookup != nil {
		record, err := h.lookup.Lookup(ctx, company)
		if err == nil {
			h.logger.Info("public data found", map[string]interface{}{
				"company":     company,
				"competitors": len(record.Competitors),
			})
			return record, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !h.config.Placeholder {
			return nil, fmt.Errorf("%w: %v", ErrNoPublicData, err)
		}
		h.logger.Warn("public data lookup failed, using placeholder", map[string]interface{}{
			"company": company,
			"error":   err.Error(),
		})
	} else if !h.config.Placeholder {
		return nil, ErrNoPublicData
	}

	return h.placeholder(company), nil
}

// placeholder samples market figures until a real source is wired.
func (h *Handler) placeholder(company string) *Output {
	size := math.Round(random.Between(h.random, 1e9, 50e9))
	growth := scoring.RoundTo(random.Between(h.random, 0.05, 0.35), 2)

	count := 2 + h.random.Intn(len(placeholderCompetitors)-1)
	competitors := make([]models.Competitor, 0, count)
	for _, name := range placeholderCompetitors[:count] {
		competitors = append(competitors, models.Competitor{Name: name})
	}

	today := time.Now().UTC().Format("2006-01-02")
	return &Output{
		MarketData: models.Record{
			"size":       size,
			"growthRate": growth,
			"trend":      "growing",
		},
		Competitors: competitors,
		News: []models.NewsItem{
			{Title: company + " featured in industry market report", Source: "placeholder", Date: today, Sentiment: "positive"},
			{Title: company + " announces product update", Source: "placeholder", Date: today, Sentiment: "neutral"},
		},
		Funding: []models.FundingRound{
			{Round: "Seed", Amount: math.Round(random.Between(h.random, 5e5, 5e6)), Date: today},
		},
	}
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
