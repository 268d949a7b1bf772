// internal/agents/extraction/public-data-extractor/models.go
package publicdataextractor

import (
	"context"

	"startup-analyst/internal/models"
)

// Input is the company name.
type Input = string

type Output = models.PublicDataRecord

// Lookup is the market intelligence source.
type Lookup interface {
	Lookup(ctx context.Context, company string) (*models.PublicDataRecord, error)
}

var placeholderCompetitors = []string{"Competitor A", "Competitor B", "Competitor C", "Competitor D", "Competitor E", "Competitor F", "Competitor G"}
