// internal/agents/extraction/document-extractor/handler.go
package documentextractor

import (
	"context"
	"fmt"
	"time"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "document-extractor"
	Slot     = registry.SlotDocumentExtractor
)

type Handler struct {
	config *Config
	parser Parser
	logger logger.Logger
}

// NewHandler builds the extractor. A nil parser degrades every document to a placeholder.
func NewHandler(config *Config, parser Parser, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		parser: parser,
		logger: logger.ForAgent(log, Slot),
	}
}

func (h *Handler) Execute(ctx context.Context, docs Input) (Output, error) {
	return h.execute(ctx, docs)
}

// execute parses documents in order and merges them. A failing document is
// replaced by its placeholder and does not fail the batch.
func (h *Handler) execute(ctx context.Context, docs []models.Document) (Output, error) {
	if err := wait(ctx, h.config.Delay); err != nil {
		return nil, err
	}

	merged := models.Record{
		models.FieldSources:    []interface{}{},
		models.FieldHighlights: []interface{}{},
	}

	fallbacks := 0
	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := h.parse(ctx, doc)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			h.logger.Warn("document extraction failed, using placeholder", map[string]interface{}{
				"document": doc.Name,
				"index":    i,
				"error":    err.Error(),
			})
			record = placeholder(doc, i)
			fallbacks++
		}
		merged.Merge(record)
	}

	h.logger.Info("documents extracted", map[string]interface{}{
		"documents": len(docs),
		"fallbacks": fallbacks,
	})

	return merged, nil
}

func (h *Handler) parse(ctx context.Context, doc models.Document) (models.Record, error) {
	if h.parser == nil {
		return nil, fmt.Errorf("no document parser configured")
	}
	return h.parser.Parse(ctx, doc)
}

// placeholder is deterministic for a given document and position.
func placeholder(doc models.Document, index int) models.Record {
	name := doc.Name
	if name == "" {
		name = fmt.Sprintf("document-%d", index+1)
	}
	return models.Record{
		models.FieldSources:    []interface{}{name},
		models.FieldHighlights: []interface{}{fmt.Sprintf("No structured data could be extracted from %s", name)},
		FieldPlaceholders:      []interface{}{name},
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
