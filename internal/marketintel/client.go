// internal/marketintel/client.go

// Package marketintel looks up public market data for a company in the
// market intelligence index, with a Redis cache in front.
package marketintel

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"strings"
	"time"

	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/database"
	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
)

var ErrNotFound = stderrors.New("MARKET_INTEL_NOT_FOUND")

const cacheKeyPrefix = "market_intel:"

type Config struct {
	Index    string
	CacheTTL time.Duration
	Timeout  time.Duration
}

func LoadConfig(cfg config.MarketIntelConfig) *Config {
	return &Config{
		Index:    cfg.Index,
		CacheTTL: time.Duration(cfg.CacheTTL) * time.Second,
		Timeout:  config.GetDuration(cfg.Timeout),
	}
}

type Searcher interface {
	Search(ctx context.Context, index string, query map[string]interface{}, size int) ([]json.RawMessage, error)
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dest interface{}) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type Client struct {
	config   *Config
	searcher Searcher
	cache    Cache
	logger   logger.Logger
}

// NewClient builds a lookup client. cache may be nil.
func NewClient(config *Config, searcher Searcher, cache Cache, log logger.Logger) *Client {
	return &Client{
		config:   config,
		searcher: searcher,
		cache:    cache,
		logger:   log.WithFields(map[string]interface{}{"component": "marketintel"}),
	}
}

// Lookup returns the indexed public data for company, or ErrNotFound.
func (c *Client) Lookup(ctx context.Context, company string) (*models.PublicDataRecord, error) {
	key := cacheKeyPrefix + strings.ToLower(strings.TrimSpace(company))

	if c.cache != nil {
		var cached models.PublicDataRecord
		err := c.cache.GetJSON(ctx, key, &cached)
		if err == nil {
			c.logger.Debug("market intel cache hit", map[string]interface{}{"company": company})
			return &cached, nil
		}
		if !stderrors.Is(err, database.ErrCacheMiss) {
			c.logger.Warn("market intel cache read failed", map[string]interface{}{"company": company, "error": err.Error()})
		}
	}

	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	hits, err := c.searcher.Search(ctx, c.config.Index, buildQuery(company), 1)
	if err != nil {
		return nil, errors.NewMarketIntelFailedError(company, err)
	}
	if len(hits) == 0 {
		return nil, ErrNotFound
	}

	var record models.PublicDataRecord
	if err := json.Unmarshal(hits[0], &record); err != nil {
		return nil, errors.NewMarketIntelFailedError(company, err)
	}
	if record.MarketData == nil {
		record.MarketData = models.Record{}
	}
	if record.Competitors == nil {
		record.Competitors = []models.Competitor{}
	}

	if c.cache != nil {
		if err := c.cache.SetJSON(ctx, key, &record, c.config.CacheTTL); err != nil {
			c.logger.Warn("market intel cache write failed", map[string]interface{}{"company": company, "error": err.Error()})
		}
	}

	return &record, nil
}

func buildQuery(company string) map[string]interface{} {
	return map[string]interface{}{
		"query": map[string]interface{}{
			"match_phrase": map[string]interface{}{
				"company": company,
			},
		},
	}
}
