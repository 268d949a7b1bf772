// internal/agents/extraction/voice-extractor/models.go
package voiceextractor

import "startup-analyst/internal/models"

type Input = models.VoiceData

type Output = models.VoiceRecord

const (
	minConfidence = 0.70
	maxConfidence = 1.00
)
