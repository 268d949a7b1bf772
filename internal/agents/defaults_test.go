package agents

import (
	"context"
	"testing"

	"startup-analyst/internal/common/config"
	"startup-analyst/internal/common/docparse"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/internal/models"
	"startup-analyst/internal/orchestrator"
	"startup-analyst/internal/store"
	"startup-analyst/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type recordingRegistrar struct {
	names []string
}

func (r *recordingRegistrar) RegisterAgent(name string, _ interface{}) error {
	r.names = append(r.names, name)
	return nil
}

func newTestSet(t *testing.T, cfg *config.Config) *Set {
	log := logger.NewTestLogger(t)
	return New(cfg, Dependencies{
		Parser: docparse.NewParser(nil, 0, log),
		Random: random.Fixed{F: 0.5},
	}, log)
}

// ==========================
// Registration Tests
// ==========================

func TestRegister_AllSlotsInPipelineOrder(t *testing.T) {
	cfg := &config.Config{}
	reg := &recordingRegistrar{}

	skipped, err := newTestSet(t, cfg).Register(reg, cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Empty(t, skipped)
	assert.Equal(t, registry.SlotNames(), reg.names)
}

func TestRegister_SkipsDisabledAgents(t *testing.T) {
	cfg := &config.Config{Agents: map[string]config.AgentConfig{
		"voiceextractor": {Enabled: false},
		"marketAnalyst":  {Enabled: true, Timeout: 500},
	}}
	reg := &recordingRegistrar{}

	skipped, err := newTestSet(t, cfg).Register(reg, cfg, logger.NewNoOpLogger())
	require.NoError(t, err)
	assert.Equal(t, []string{registry.SlotVoiceExtractor}, skipped)
	assert.NotContains(t, reg.names, registry.SlotVoiceExtractor)
	assert.Contains(t, reg.names, registry.SlotMarketAnalyst)
}

func TestBySlot_EveryHandlerFitsItsRole(t *testing.T) {
	o := orchestrator.New(nil, store.NewMemoryStore(), nil, nil, logger.NewNoOpLogger())
	for slot, handler := range newTestSet(t, &config.Config{}).BySlot() {
		assert.NoError(t, o.RegisterAgent(slot, handler), slot)
	}
	assert.Len(t, o.RegisteredAgents(), len(registry.SlotNames()))
}

// ==========================
// Integration Tests
// ==========================

func TestBuiltInPipeline_EndToEnd(t *testing.T) {
	cfg := &config.Config{}
	log := logger.NewTestLogger(t)
	o := orchestrator.New(orchestrator.LoadConfig(cfg, registry.Default()), store.NewMemoryStore(), nil, nil, log)

	_, err := newTestSet(t, cfg).Register(o, cfg, log)
	require.NoError(t, err)

	deck := "Acme Robotics\n" +
		"Founder: Jane Doe, CEO, 12 years experience, MBA\n" +
		"Business model: SaaS subscription\n" +
		"Revenue: $2,000,000 ARR growing 80% year over year\n" +
		"Market size: $15B\n"

	result, err := o.AnalyzeStartup(context.Background(), &models.AnalysisRequest{
		CompanyName: "Acme Robotics",
		Documents:   []models.Document{{Name: "deck.txt", ContentType: "text/plain", Content: []byte(deck)}},
		VoiceData:   &models.VoiceData{Duration: 120},
	})
	require.NoError(t, err)

	assert.Contains(t, []models.Action{models.ActionInvest, models.ActionConsider, models.ActionPass}, result.Memo.Recommendation.Action)
	for _, score := range []int{result.Scores.Founder, result.Scores.Market, result.Scores.Business, result.Scores.Risk, result.Scores.Overall} {
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, 100)
	}
	assert.Equal(t, "Acme Robotics", result.Memo.ExecutiveSummary.Company)
	assert.Equal(t, []string{"deck.txt"}, result.Memo.Appendices.DocumentsReviewed)

	stored, err := o.GetAnalysis(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Scores, stored.Scores)
}
