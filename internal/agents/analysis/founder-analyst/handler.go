// internal/agents/analysis/founder-analyst/handler.go
package founderanalyst

import (
	"context"
	"fmt"
	"strings"

	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/internal/common/scoring"
	"startup-analyst/internal/models"
	"startup-analyst/pkg/registry"
)

const (
	TaskType = "founder-analyst"
	Slot     = registry.SlotFounderAnalyst
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	if input == nil {
		input = &Input{}
	}
	profile := input.Profile
	if profile == nil {
		profile = models.Record{}
	}
	founders := profile.Records("founders")

	metrics := make(map[string]float64)
	if v, ok := h.calculateExperience(profile, founders); ok {
		metrics[MetricExperience] = v
	}
	if v, ok := h.calculateEducation(profile, founders); ok {
		metrics[MetricEducation] = v
	}
	if v, ok := h.calculateTrackRecord(profile, founders); ok {
		metrics[MetricTrackRecord] = v
	}
	if v, ok := h.calculateTeamComplementarity(founders); ok {
		metrics[MetricTeamComplementarity] = v
	}
	// Placeholder until commitment signals are captured.
	metrics[MetricCommitment] = random.Between(h.random, minCommitment, maxCommitment)

	total := scoring.Round(scoring.ClampScore(scoring.WeightedAverage(metrics, h.config.Weights)))

	breakdown := make(models.Breakdown, len(metrics))
	for k, v := range metrics {
		breakdown[k] = float64(scoring.Round(v))
	}

	output := &Output{
		Total:     total,
		Breakdown: breakdown,
		Insights:  h.insights(metrics, input),
		RedFlags:  h.redFlags(metrics, profile, founders),
	}

	h.logger.Info("founder analysis completed", map[string]interface{}{
		"total":     output.Total,
		"founders":  len(founders),
		"breakdown": output.Breakdown,
	})

	return output, nil
}

func (h *Handler) calculateExperience(profile models.Record, founders []models.Record) (float64, bool) {
	var sum float64
	var n int
	for _, f := range founders {
		if years, ok := f.Float("yearsExperience"); ok && years >= 0 {
			sum += years
			n++
		}
	}
	if n == 0 {
		years, ok := profile.Float("yearsExperience")
		if !ok {
			return 0, false
		}
		sum, n = years, 1
	}
	return scoring.Bucket(sum/float64(n), experienceBuckets, 40), true
}

func (h *Handler) calculateEducation(profile models.Record, founders []models.Record) (float64, bool) {
	levels := []string{profile.String("education")}
	for _, f := range founders {
		levels = append(levels, f.String("education"))
	}

	best, found := 0.0, false
	for _, level := range levels {
		level = strings.ToLower(strings.TrimSpace(level))
		if level == "" {
			continue
		}
		found = true
		score, ok := educationScores[level]
		if !ok {
			score = 55
		}
		if score > best {
			best = score
		}
	}
	return best, found
}

func (h *Handler) calculateTrackRecord(profile models.Record, founders []models.Record) (float64, bool) {
	if len(founders) == 0 && !profile.Has("previousExits") && !profile.Has("priorStartups") {
		return 0, false
	}

	exits, _ := profile.Float("previousExits")
	priorStartups := profile.Bool("priorStartups")
	for _, f := range founders {
		if v, ok := f.Float("previousExits"); ok {
			exits += v
		}
		priorStartups = priorStartups || f.Bool("priorStartups")
	}

	fallback := 45.0
	if priorStartups {
		fallback = 65
	}
	return scoring.Bucket(exits, exitBuckets, fallback), true
}

// calculateTeamComplementarity rewards distinct roles and a technical founder.
func (h *Handler) calculateTeamComplementarity(founders []models.Record) (float64, bool) {
	if len(founders) == 0 {
		return 0, false
	}
	roles := make(map[string]bool)
	for _, f := range founders {
		if role := strings.ToUpper(strings.TrimSpace(f.String("role"))); role != "" {
			roles[role] = true
		}
	}
	distinct := len(roles)
	if distinct == 0 {
		distinct = 1
	}
	if distinct > 3 {
		distinct = 3
	}
	score := 30 + 20*float64(distinct)
	if hasTechnicalFounder(founders) {
		score += 10
	}
	return scoring.ClampScore(score), true
}

func (h *Handler) insights(metrics map[string]float64, input *Input) []string {
	insights := []string{}
	if v, ok := metrics[MetricExperience]; ok && v >= 85 {
		insights = append(insights, "Founders bring deep industry experience")
	}
	if v, ok := metrics[MetricEducation]; ok && v >= 85 {
		insights = append(insights, "Strong academic background in the founding team")
	}
	if v, ok := metrics[MetricTrackRecord]; ok && v >= 85 {
		insights = append(insights, "Founders have a track record of successful exits")
	}
	if v, ok := metrics[MetricTeamComplementarity]; ok && v >= 80 {
		insights = append(insights, "Founding team covers complementary roles")
	}
	switch input.Sentiment {
	case "positive", "confident", "enthusiastic":
		insights = append(insights, fmt.Sprintf("Founder came across as %s in the pitch", input.Sentiment))
	}
	return insights
}

func (h *Handler) redFlags(metrics map[string]float64, profile models.Record, founders []models.Record) []string {
	flags := []string{}
	if len(founders) == 0 && len(profile) == 0 {
		return append(flags, "No founder information provided")
	}
	if v, ok := metrics[MetricTeamComplementarity]; ok && v < 60 {
		flags = append(flags, "Team lacks complementary skill sets")
	}
	if v, ok := metrics[MetricExperience]; ok && v < 50 {
		flags = append(flags, "Limited founder industry experience")
	}
	if len(founders) == 1 {
		flags = append(flags, "Single founder dependency")
	}
	if len(founders) > 0 && !hasTechnicalFounder(founders) {
		flags = append(flags, "No technical co-founder identified")
	}
	return flags
}

func hasTechnicalFounder(founders []models.Record) bool {
	for _, f := range founders {
		if f.Bool("technical") || strings.EqualFold(f.String("role"), "CTO") {
			return true
		}
	}
	return false
}
