// internal/orchestrator/orchestrator.go
package orchestrator

import (
	"context"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/common/metrics"
	"startup-analyst/internal/common/observability"
	"startup-analyst/internal/models"
	"startup-analyst/internal/store"
	"startup-analyst/pkg/registry"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyResult is returned when an agent succeeds without producing output
// that later phases depend on.
var ErrEmptyResult = stderrors.New("EMPTY_AGENT_RESULT")

// Notifier is told about every stored analysis.
type Notifier interface {
	NotifyAnalysisCompleted(ctx context.Context, analysis *models.StoredAnalysis) error
}

// Notifiers sends to every member and joins their errors.
type Notifiers []Notifier

func (n Notifiers) NotifyAnalysisCompleted(ctx context.Context, analysis *models.StoredAnalysis) error {
	var errs []error
	for _, notifier := range n {
		if err := notifier.NotifyAnalysisCompleted(ctx, analysis); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Status is a point-in-time snapshot of the orchestrator.
type Status struct {
	IsProcessing      bool     `json:"isProcessing"`
	ActiveAnalyses    int      `json:"activeAnalyses"`
	RegisteredAgents  []string `json:"registeredAgents"`
	CompletedAnalyses int      `json:"completedAnalyses"`
}

type Orchestrator struct {
	config   *Config
	store    store.Store
	notifier Notifier
	obs      *observability.Observability
	logger   logger.Logger

	mu     sync.RWMutex
	agents map[string]interface{}

	active atomic.Int64
	newID  func() string
	now    func() time.Time
}

// New builds an orchestrator. notifier and obs may be nil.
func New(config *Config, st store.Store, notifier Notifier, obs *observability.Observability, log logger.Logger) *Orchestrator {
	if config == nil {
		config = &Config{}
	}
	return &Orchestrator{
		config:   config,
		store:    st,
		notifier: notifier,
		obs:      obs,
		logger:   log.WithFields(map[string]interface{}{"component": "orchestrator"}),
		agents:   make(map[string]interface{}),
		newID:    func() string { return "analysis_" + uuid.NewString() },
		now:      time.Now,
	}
}

// RegisterAgent stores agent under a pipeline slot. The agent must implement
// the role interface for that slot. Registering a slot again replaces it.
func (o *Orchestrator) RegisterAgent(name string, agent interface{}) error {
	r, ok := roles[name]
	if !ok {
		return errors.NewUnknownAgentSlotError(name)
	}
	if agent == nil || !r.fits(agent) {
		return errors.NewAgentRoleMismatchError(name, r.name, agent)
	}

	o.mu.Lock()
	_, replaced := o.agents[name]
	o.agents[name] = agent
	o.mu.Unlock()

	o.logger.Debug("agent registered", map[string]interface{}{
		"agent":    name,
		"role":     r.name,
		"replaced": replaced,
		"type":     fmt.Sprintf("%T", agent),
	})
	return nil
}

func (o *Orchestrator) agent(name string) (interface{}, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	a, ok := o.agents[name]
	return a, ok
}

// RegisteredAgents returns the registered slot names, sorted.
func (o *Orchestrator) RegisteredAgents() []string {
	o.mu.RLock()
	names := make([]string, 0, len(o.agents))
	for name := range o.agents {
		names = append(names, name)
	}
	o.mu.RUnlock()
	sort.Strings(names)
	return names
}

// AnalyzeStartup runs the five phases for one request and stores the result.
// Any phase failure aborts the run.
func (o *Orchestrator) AnalyzeStartup(ctx context.Context, req *models.AnalysisRequest) (*models.StoredAnalysis, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	o.active.Add(1)
	metrics.AnalysesActive.Inc()
	defer func() {
		o.active.Add(-1)
		metrics.AnalysesActive.Dec()
	}()

	id := o.newID()
	log := o.logger.WithFields(map[string]interface{}{"analysisId": id})
	start := time.Now()

	ctx, span := o.obs.StartSpan(ctx, "analyzeStartup", attribute.String("analysis.id", id))
	defer span.End()

	log.Info("analysis started", map[string]interface{}{
		"company":   req.Company(),
		"documents": len(req.Documents),
		"hasVoice":  req.VoiceData != nil,
	})

	result, err := o.run(ctx, id, req, log)

	status := "success"
	if err != nil {
		status = "failed"
	}
	o.obs.RecordAnalysisProcessed(ctx, status)
	o.obs.RecordAnalysisDuration(ctx, time.Since(start), status)

	if err != nil {
		log.Error("analysis failed", map[string]interface{}{
			"error":     err.Error(),
			"errorCode": errors.CodeOf(err),
			"duration":  time.Since(start).String(),
		})
		return nil, err
	}

	log.Info("analysis completed", map[string]interface{}{
		"overall":  result.Scores.Overall,
		"action":   result.Memo.Recommendation.Action,
		"duration": time.Since(start).String(),
	})
	return result, nil
}

func (o *Orchestrator) run(ctx context.Context, id string, req *models.AnalysisRequest, log logger.Logger) (*models.StoredAnalysis, error) {
	// Phase 1: extraction
	log.Info("phase started", map[string]interface{}{"phase": 1, "name": "extraction"})
	var (
		documents models.DocumentRecord
		voice     *models.VoiceRecord
		public    *models.PublicDataRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		documents, err = invoke[[]models.Document, models.DocumentRecord](gctx, o, registry.SlotDocumentExtractor, errors.ErrCodeExtractionFailed, req.Documents)
		return err
	})
	g.Go(func() error {
		var err error
		voice, err = invoke[*models.VoiceData, *models.VoiceRecord](gctx, o, registry.SlotVoiceExtractor, errors.ErrCodeExtractionFailed, req.VoiceData)
		return err
	})
	g.Go(func() error {
		var err error
		public, err = invoke[string, *models.PublicDataRecord](gctx, o, registry.SlotPublicDataExtractor, errors.ErrCodeExtractionFailed, req.Company())
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 2: consolidation
	log.Info("phase started", map[string]interface{}{"phase": 2, "name": "consolidation"})
	view, err := invoke[*models.ExtractionBundle, *models.ConsolidatedView](ctx, o, registry.SlotDataProcessor, errors.ErrCodeConsolidationFailed,
		&models.ExtractionBundle{Documents: documents, Voice: voice, PublicData: public})
	if err != nil {
		return nil, err
	}
	if view == nil {
		view = &models.ConsolidatedView{}
	}

	// Phase 3: analysis. The risk analyst reads the whole view.
	log.Info("phase started", map[string]interface{}{"phase": 3, "name": "analysis"})
	var results models.AnalysisResults
	g, gctx = errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		results.Founder, err = invoke[*models.FounderData, *models.FounderAnalysis](gctx, o, registry.SlotFounderAnalyst, errors.ErrCodeAnalysisFailed, &view.FounderData)
		return err
	})
	g.Go(func() error {
		var err error
		results.Market, err = invoke[*models.MarketData, *models.MarketAnalysis](gctx, o, registry.SlotMarketAnalyst, errors.ErrCodeAnalysisFailed, &view.MarketData)
		return err
	})
	g.Go(func() error {
		var err error
		results.Business, err = invoke[*models.BusinessData, *models.BusinessAnalysis](gctx, o, registry.SlotBusinessAnalyst, errors.ErrCodeAnalysisFailed, &view.BusinessData)
		return err
	})
	g.Go(func() error {
		var err error
		results.Risk, err = invoke[*models.ConsolidatedView, *models.RiskAssessment](gctx, o, registry.SlotRiskAnalyst, errors.ErrCodeAnalysisFailed, view)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Phase 4: decision
	log.Info("phase started", map[string]interface{}{"phase": 4, "name": "decision"})
	decision, err := invoke[*models.DecisionInput, *models.Decision](ctx, o, registry.SlotDecisionMaker, errors.ErrCodeDecisionFailed, &models.DecisionInput{
		FounderScore:   results.Founder,
		MarketScore:    results.Market,
		BusinessScore:  results.Business,
		RiskAssessment: results.Risk,
	})
	if err != nil {
		return nil, err
	}
	if decision == nil {
		return nil, errors.NewPhaseError(errors.ErrCodeDecisionFailed, registry.SlotDecisionMaker, ErrEmptyResult)
	}

	// Phase 5: memo
	log.Info("phase started", map[string]interface{}{"phase": 5, "name": "memo"})
	memo, err := invoke[*models.MemoInput, *models.Memo](ctx, o, registry.SlotMemoGenerator, errors.ErrCodeMemoFailed, &models.MemoInput{
		AnalysisResults: results,
		Decision:        decision,
		InputData:       req,
	})
	if err != nil {
		return nil, err
	}
	if memo == nil {
		return nil, errors.NewPhaseError(errors.ErrCodeMemoFailed, registry.SlotMemoGenerator, ErrEmptyResult)
	}

	stored := &models.StoredAnalysis{
		ID:         id,
		Scores:     decision.Scores,
		Memo:       memo,
		Timestamp:  o.now().UTC(),
		Confidence: decision.Confidence,
	}
	if err := o.store.Put(ctx, stored); err != nil {
		return nil, err
	}
	metrics.AnalysisDecisions.WithLabelValues(string(decision.Decision.Action)).Inc()

	o.notify(ctx, stored, log)
	return stored, nil
}

// notify is best-effort. A failed notification does not fail the run.
func (o *Orchestrator) notify(ctx context.Context, analysis *models.StoredAnalysis, log logger.Logger) {
	if o.notifier == nil {
		return
	}
	if err := o.notifier.NotifyAnalysisCompleted(ctx, analysis); err != nil {
		log.Warn("analysis notification failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}

// GetStatus returns a snapshot of the in-flight and stored analyses.
func (o *Orchestrator) GetStatus(ctx context.Context) (Status, error) {
	active := int(o.active.Load())
	status := Status{
		IsProcessing:     active > 0,
		ActiveAnalyses:   active,
		RegisteredAgents: o.RegisteredAgents(),
	}
	n, err := o.store.Count(ctx)
	if err != nil {
		return status, err
	}
	status.CompletedAnalyses = n
	return status, nil
}

// GetAnalysis reads a stored analysis back by id.
func (o *Orchestrator) GetAnalysis(ctx context.Context, id string) (*models.StoredAnalysis, error) {
	return o.store.Get(ctx, id)
}

func validateRequest(req *models.AnalysisRequest) error {
	if req == nil {
		return errors.NewInvalidAnalysisRequestError("request is required")
	}
	var missing []string
	for i, doc := range req.Documents {
		if strings.TrimSpace(doc.Name) == "" {
			missing = append(missing, fmt.Sprintf("documents[%d].name", i))
		}
	}
	if len(missing) > 0 {
		return errors.NewInvalidAnalysisRequestError("missing " + strings.Join(missing, ", "))
	}
	if req.VoiceData != nil && req.VoiceData.Duration < 0 {
		return errors.NewInvalidAnalysisRequestError("voiceData.duration must not be negative")
	}
	return nil
}
