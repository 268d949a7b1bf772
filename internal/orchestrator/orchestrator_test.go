package orchestrator

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	decisionmaker "startup-analyst/internal/agents/decision/decision-maker"
	memogenerator "startup-analyst/internal/agents/memo/memo-generator"
	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/random"
	"startup-analyst/internal/models"
	"startup-analyst/internal/store"
	"startup-analyst/pkg/registry"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) NotifyAnalysisCompleted(ctx context.Context, analysis *models.StoredAnalysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

type failingStore struct {
	store.Store
	err error
}

func (s *failingStore) Put(context.Context, *models.StoredAnalysis) error {
	return s.err
}

func uberRequest() *models.AnalysisRequest {
	return &models.AnalysisRequest{
		Documents:   []models.Document{{Name: "uber_deck.pdf"}},
		CompanyName: "Uber",
	}
}

// stubAgents returns deterministic agents for every slot. Extractor delays
// can be set to exercise the fan-out.
func stubAgents(t *testing.T, delays map[string]time.Duration) map[string]interface{} {
	sleep := func(ctx context.Context, slot string) error {
		d := delays[slot]
		if d == 0 {
			return nil
		}
		select {
		case <-time.After(d):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return map[string]interface{}{
		registry.SlotDocumentExtractor: AgentFunc[[]models.Document, models.DocumentRecord](
			func(ctx context.Context, docs []models.Document) (models.DocumentRecord, error) {
				if err := sleep(ctx, registry.SlotDocumentExtractor); err != nil {
					return nil, err
				}
				return models.DocumentRecord{
					models.FieldFounderInfo: models.Record{"teamSize": 2},
					models.FieldSources:     []interface{}{docs[0].Name},
				}, nil
			}),
		registry.SlotVoiceExtractor: AgentFunc[*models.VoiceData, *models.VoiceRecord](
			func(ctx context.Context, _ *models.VoiceData) (*models.VoiceRecord, error) {
				if err := sleep(ctx, registry.SlotVoiceExtractor); err != nil {
					return nil, err
				}
				return &models.VoiceRecord{Sentiment: "neutral", KeyPoints: []string{}}, nil
			}),
		registry.SlotPublicDataExtractor: AgentFunc[string, *models.PublicDataRecord](
			func(ctx context.Context, company string) (*models.PublicDataRecord, error) {
				if err := sleep(ctx, registry.SlotPublicDataExtractor); err != nil {
					return nil, err
				}
				return &models.PublicDataRecord{
					MarketData:  models.Record{"size": 1e10},
					Competitors: []models.Competitor{{Name: company + " rival"}},
				}, nil
			}),
		registry.SlotDataProcessor: AgentFunc[*models.ExtractionBundle, *models.ConsolidatedView](
			func(_ context.Context, in *models.ExtractionBundle) (*models.ConsolidatedView, error) {
				return &models.ConsolidatedView{
					FounderData: models.FounderData{Profile: in.Documents.Map(models.FieldFounderInfo)},
					MarketData:  models.MarketData{Attributes: in.PublicData.MarketData, Competitors: in.PublicData.Competitors},
				}, nil
			}),
		registry.SlotFounderAnalyst: AgentFunc[*models.FounderData, *models.FounderAnalysis](
			func(context.Context, *models.FounderData) (*models.FounderAnalysis, error) {
				return &models.FounderAnalysis{Total: 88, Breakdown: models.Breakdown{}}, nil
			}),
		registry.SlotMarketAnalyst: AgentFunc[*models.MarketData, *models.MarketAnalysis](
			func(context.Context, *models.MarketData) (*models.MarketAnalysis, error) {
				return &models.MarketAnalysis{Total: 95, Breakdown: models.Breakdown{}}, nil
			}),
		registry.SlotBusinessAnalyst: AgentFunc[*models.BusinessData, *models.BusinessAnalysis](
			func(context.Context, *models.BusinessData) (*models.BusinessAnalysis, error) {
				return &models.BusinessAnalysis{Total: 94, Breakdown: models.Breakdown{}}, nil
			}),
		registry.SlotRiskAnalyst: AgentFunc[*models.ConsolidatedView, *models.RiskAssessment](
			func(context.Context, *models.ConsolidatedView) (*models.RiskAssessment, error) {
				return &models.RiskAssessment{TotalRisk: 20, Breakdown: models.Breakdown{}}, nil
			}),
		registry.SlotDecisionMaker: decisionmaker.NewHandler(decisionmaker.LoadConfig(), random.Fixed{F: 0.5}, logger.NewTestLogger(t)),
		registry.SlotMemoGenerator: memogenerator.NewHandler(memogenerator.LoadConfig(), logger.NewTestLogger(t)),
	}
}

func newOrchestrator(t *testing.T, agents map[string]interface{}, opts ...func(*Orchestrator)) *Orchestrator {
	t.Helper()
	o := New(&Config{}, store.NewMemoryStore(), nil, nil, logger.NewTestLogger(t))
	for _, opt := range opts {
		opt(o)
	}
	for name, agent := range agents {
		require.NoError(t, o.RegisterAgent(name, agent))
	}
	return o
}

// ==========================
// Core Functionality Tests
// ==========================

func TestAnalyzeStartup_ReferenceScenario(t *testing.T) {
	o := newOrchestrator(t, stubAgents(t, nil))

	result, err := o.AnalyzeStartup(context.Background(), uberRequest())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(result.ID, "analysis_"))
	assert.Equal(t, models.Scores{Founder: 88, Market: 95, Business: 94, Risk: 80, Overall: 90}, result.Scores)
	assert.Equal(t, models.ActionInvest, result.Memo.Recommendation.Action)
	assert.Equal(t, "Uber", result.Memo.ExecutiveSummary.Company)
	assert.Equal(t, []string{"uber_deck.pdf"}, result.Memo.Appendices.DocumentsReviewed)
	assert.False(t, result.Timestamp.IsZero())

	stored, err := o.GetAnalysis(context.Background(), result.ID)
	require.NoError(t, err)
	assert.Equal(t, result, stored)

	status, err := o.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsProcessing)
	assert.Equal(t, 1, status.CompletedAnalyses)
	assert.ElementsMatch(t, registry.SlotNames(), status.RegisteredAgents)
}

func TestAnalyzeStartup_OrderIndependence(t *testing.T) {
	syncRun := newOrchestrator(t, stubAgents(t, nil))
	delayed := newOrchestrator(t, stubAgents(t, map[string]time.Duration{
		registry.SlotDocumentExtractor:   30 * time.Millisecond,
		registry.SlotVoiceExtractor:      0,
		registry.SlotPublicDataExtractor: 10 * time.Millisecond,
	}))

	a, err := syncRun.AnalyzeStartup(context.Background(), uberRequest())
	require.NoError(t, err)
	b, err := delayed.AnalyzeStartup(context.Background(), uberRequest())
	require.NoError(t, err)

	assert.Equal(t, a.Scores, b.Scores)
	assert.Empty(t, cmp.Diff(a.Memo, b.Memo))
}

func TestAnalyzeStartup_FailFast(t *testing.T) {
	errMarket := stderrors.New("market data unavailable")

	agents := stubAgents(t, nil)
	agents[registry.SlotMarketAnalyst] = AgentFunc[*models.MarketData, *models.MarketAnalysis](
		func(context.Context, *models.MarketData) (*models.MarketAnalysis, error) {
			return nil, errMarket
		})
	o := newOrchestrator(t, agents)

	result, err := o.AnalyzeStartup(context.Background(), uberRequest())
	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, errMarket)
	assert.Equal(t, errors.ErrCodeAnalysisFailed, errors.CodeOf(err))

	status, err := o.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsProcessing)
	assert.Zero(t, status.ActiveAnalyses)
	assert.Zero(t, status.CompletedAnalyses)
}

func TestAnalyzeStartup_ExtractorFailureAbortsRun(t *testing.T) {
	errVoice := stderrors.New("audio decoder crashed")
	var consolidated atomic.Bool

	agents := stubAgents(t, nil)
	agents[registry.SlotVoiceExtractor] = AgentFunc[*models.VoiceData, *models.VoiceRecord](
		func(context.Context, *models.VoiceData) (*models.VoiceRecord, error) {
			return nil, errVoice
		})
	agents[registry.SlotDataProcessor] = AgentFunc[*models.ExtractionBundle, *models.ConsolidatedView](
		func(context.Context, *models.ExtractionBundle) (*models.ConsolidatedView, error) {
			consolidated.Store(true)
			return &models.ConsolidatedView{}, nil
		})
	o := newOrchestrator(t, agents)

	_, err := o.AnalyzeStartup(context.Background(), uberRequest())
	assert.ErrorIs(t, err, errVoice)
	assert.Equal(t, errors.ErrCodeExtractionFailed, errors.CodeOf(err))
	assert.False(t, consolidated.Load())
}

func TestAnalyzeStartup_MissingSlot(t *testing.T) {
	agents := stubAgents(t, nil)
	delete(agents, registry.SlotMemoGenerator)
	o := newOrchestrator(t, agents)

	_, err := o.AnalyzeStartup(context.Background(), uberRequest())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAgentNotFound, errors.CodeOf(err))
	assert.Contains(t, err.Error(), registry.SlotMemoGenerator)

	status, err := o.GetStatus(context.Background())
	require.NoError(t, err)
	assert.False(t, status.IsProcessing)
}

func TestAnalyzeStartup_AgentTimeout(t *testing.T) {
	agents := stubAgents(t, nil)
	agents[registry.SlotVoiceExtractor] = AgentFunc[*models.VoiceData, *models.VoiceRecord](
		func(ctx context.Context, _ *models.VoiceData) (*models.VoiceRecord, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	o := newOrchestrator(t, agents)
	o.config.Timeouts = map[string]time.Duration{registry.SlotVoiceExtractor: 20 * time.Millisecond}

	_, err := o.AnalyzeStartup(context.Background(), uberRequest())
	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAgentTimeout, errors.CodeOf(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAnalyzeStartup_RiskAnalystSeesWholeView(t *testing.T) {
	var seen *models.ConsolidatedView
	agents := stubAgents(t, nil)
	agents[registry.SlotRiskAnalyst] = AgentFunc[*models.ConsolidatedView, *models.RiskAssessment](
		func(_ context.Context, view *models.ConsolidatedView) (*models.RiskAssessment, error) {
			seen = view
			return &models.RiskAssessment{TotalRisk: 20}, nil
		})
	o := newOrchestrator(t, agents)

	_, err := o.AnalyzeStartup(context.Background(), uberRequest())
	require.NoError(t, err)
	require.NotNil(t, seen)
	assert.Equal(t, 2, seen.FounderData.Profile["teamSize"])
	assert.Equal(t, 1e10, seen.MarketData.Attributes["size"])
}

func TestAnalyzeStartup_InvalidRequest(t *testing.T) {
	o := newOrchestrator(t, stubAgents(t, nil))

	tests := []struct {
		name string
		req  *models.AnalysisRequest
	}{
		{"nil request", nil},
		{"nameless document", &models.AnalysisRequest{Documents: []models.Document{{Name: "a.pdf"}, {Name: " "}}}},
		{"negative voice duration", &models.AnalysisRequest{VoiceData: &models.VoiceData{Duration: -1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := o.AnalyzeStartup(context.Background(), tt.req)
			assert.Equal(t, errors.ErrCodeInvalidAnalysisRequest, errors.CodeOf(err))
		})
	}
}

func TestAnalyzeStartup_Notifications(t *testing.T) {
	notifier := &mockNotifier{}
	notifier.On("NotifyAnalysisCompleted", mock.Anything, mock.AnythingOfType("*models.StoredAnalysis")).
		Return(stderrors.New("topic not found")).Once()

	o := newOrchestrator(t, stubAgents(t, nil), func(o *Orchestrator) { o.notifier = notifier })

	_, err := o.AnalyzeStartup(context.Background(), uberRequest())
	require.NoError(t, err)
	notifier.AssertExpectations(t)
}

func TestAnalyzeStartup_StoreFailure(t *testing.T) {
	o := newOrchestrator(t, stubAgents(t, nil), func(o *Orchestrator) {
		o.store = &failingStore{Store: store.NewMemoryStore(), err: errors.NewStoreWriteFailedError("x", stderrors.New("down"))}
	})

	_, err := o.AnalyzeStartup(context.Background(), uberRequest())
	assert.Equal(t, errors.ErrCodeStoreWriteFailed, errors.CodeOf(err))
}

func TestAnalyzeStartup_ConcurrentCallsGetDistinctIDs(t *testing.T) {
	o := newOrchestrator(t, stubAgents(t, nil))

	const calls = 10
	ids := make(chan string, calls)
	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := o.AnalyzeStartup(context.Background(), uberRequest())
			if assert.NoError(t, err) {
				ids <- result.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, calls)

	status, err := o.GetStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, calls, status.CompletedAnalyses)
}

// ==========================
// Registration Tests
// ==========================

func TestRegisterAgent(t *testing.T) {
	o := New(nil, store.NewMemoryStore(), nil, nil, logger.NewTestLogger(t))
	founder := stubAgents(t, nil)[registry.SlotFounderAnalyst]

	err := o.RegisterAgent("sentimentAnalyst", founder)
	assert.Equal(t, errors.ErrCodeUnknownAgentSlot, errors.CodeOf(err))

	err = o.RegisterAgent(registry.SlotMarketAnalyst, founder)
	assert.Equal(t, errors.ErrCodeAgentRoleMismatch, errors.CodeOf(err))

	err = o.RegisterAgent(registry.SlotMarketAnalyst, nil)
	assert.Equal(t, errors.ErrCodeAgentRoleMismatch, errors.CodeOf(err))

	require.NoError(t, o.RegisterAgent(registry.SlotFounderAnalyst, founder))
	assert.Equal(t, []string{registry.SlotFounderAnalyst}, o.RegisteredAgents())
}

func TestRegisterAgent_LastRegistrationWins(t *testing.T) {
	agents := stubAgents(t, nil)
	o := newOrchestrator(t, agents)

	require.NoError(t, o.RegisterAgent(registry.SlotFounderAnalyst, AgentFunc[*models.FounderData, *models.FounderAnalysis](
		func(context.Context, *models.FounderData) (*models.FounderAnalysis, error) {
			return &models.FounderAnalysis{Total: 10}, nil
		})))

	result, err := o.AnalyzeStartup(context.Background(), uberRequest())
	require.NoError(t, err)
	assert.Equal(t, 10, result.Scores.Founder)
	assert.Len(t, o.RegisteredAgents(), len(agents))
}

func TestLoadConfig_Timeouts(t *testing.T) {
	cfg := LoadConfig(nil, registry.Default())
	assert.Equal(t, 60*time.Second, cfg.Timeouts[registry.SlotDocumentExtractor])
	assert.Equal(t, 10*time.Second, cfg.Timeouts[registry.SlotMemoGenerator])
}

func TestNotifiers_AttemptsEveryMember(t *testing.T) {
	errTopic := stderrors.New("topic not found")
	first, second := &mockNotifier{}, &mockNotifier{}
	first.On("NotifyAnalysisCompleted", mock.Anything, mock.Anything).Return(errTopic)
	second.On("NotifyAnalysisCompleted", mock.Anything, mock.Anything).Return(nil)

	err := Notifiers{first, second}.NotifyAnalysisCompleted(context.Background(), &models.StoredAnalysis{ID: "analysis_1"})

	assert.ErrorIs(t, err, errTopic)
	first.AssertExpectations(t)
	second.AssertExpectations(t)
	assert.NoError(t, Notifiers{}.NotifyAnalysisCompleted(context.Background(), nil))
}
