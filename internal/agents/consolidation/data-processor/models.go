// internal/agents/consolidation/data-processor/models.go
package dataprocessor

import "startup-analyst/internal/models"

type Input = models.ExtractionBundle

type Output = models.ConsolidatedView
