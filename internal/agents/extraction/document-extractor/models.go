// internal/agents/extraction/document-extractor/models.go
package documentextractor

import (
	"context"

	"startup-analyst/internal/models"
)

type Input = []models.Document

type Output = models.DocumentRecord

// Parser extracts a record from a single document. It may fail per document.
type Parser interface {
	Parse(ctx context.Context, doc models.Document) (models.Record, error)
}

// FieldPlaceholders lists the documents that fell back to placeholder data.
const FieldPlaceholders = "placeholders"
