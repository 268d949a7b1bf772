// internal/jobworker/agent.go
package jobworker

import (
	"context"
	"encoding/json"
	"time"

	"startup-analyst/internal/agents"
	"startup-analyst/internal/common/camunda"
	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"
	"startup-analyst/internal/orchestrator"
	"startup-analyst/pkg/registry"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

// AgentInput is the variable layout of a single-agent task.
type AgentInput[In any] struct {
	Input In `json:"input"`
}

type AgentOutput[Out any] struct {
	Agent  string `json:"agent"`
	Output Out    `json:"output"`
}

// AgentHandler exposes one pipeline agent as its own service task, so a BPMN
// model can wire the phases itself.
type AgentHandler[In, Out any] struct {
	slot         string
	agent        orchestrator.Agent[In, Out]
	code         errors.ErrorCode
	timeout      time.Duration
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewAgentHandler[In, Out any](entry registry.AgentSlot, agent orchestrator.Agent[In, Out], log logger.Logger) *AgentHandler[In, Out] {
	code := errors.ErrCodeAnalysisFailed
	if len(entry.ErrorCodes) > 0 {
		code = errors.ErrorCode(entry.ErrorCodes[0])
	}
	timeout, _ := time.ParseDuration(entry.Timeout)

	log = logger.ForAgent(log, entry.ID).WithFields(map[string]interface{}{"taskType": entry.TaskType})
	return &AgentHandler[In, Out]{
		slot:         entry.ID,
		agent:        agent,
		code:         code,
		timeout:      timeout,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *AgentHandler[In, Out]) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := jobContext(h.timeout)
	defer cancel()

	output, err := h.Execute(ctx, job.Variables)

	reportCtx, cancelReport := reportContext()
	defer cancelReport()

	if err != nil {
		h.errorHandler.HandleJobError(reportCtx, client, job, err)
		return
	}
	completeJob(reportCtx, client, job, output, h.logger)
}

func (h *AgentHandler[In, Out]) Execute(ctx context.Context, variables string) (*AgentOutput[Out], error) {
	var in AgentInput[In]
	if err := json.Unmarshal([]byte(variables), &in); err != nil {
		return nil, errors.NewInvalidAnalysisRequestError(h.slot + " job variables: " + err.Error())
	}

	out, err := h.agent.Execute(ctx, in.Input)
	if err != nil {
		if ctx.Err() != nil {
			return nil, errors.NewAgentTimeoutError(h.slot, err)
		}
		return nil, errors.NewPhaseError(h.code, h.slot, err)
	}
	return &AgentOutput[Out]{Agent: h.slot, Output: out}, nil
}

// AgentHandlers builds one handler per slot in the set, keyed by the
// catalogue task type.
func AgentHandlers(set *agents.Set, catalogue *registry.AgentRegistry, log logger.Logger) map[string]camunda.JobHandler {
	handlers := make(map[string]camunda.JobHandler)
	add := func(slot string, build func(registry.AgentSlot) camunda.JobHandler) {
		entry, ok := catalogue.Lookup(slot)
		if !ok || entry.TaskType == "" {
			return
		}
		handlers[entry.TaskType] = build(entry)
	}

	add(registry.SlotDocumentExtractor, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[[]models.Document, models.DocumentRecord](s, set.DocumentExtractor, log)
	})
	add(registry.SlotVoiceExtractor, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.VoiceData, *models.VoiceRecord](s, set.VoiceExtractor, log)
	})
	add(registry.SlotPublicDataExtractor, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[string, *models.PublicDataRecord](s, set.PublicDataExtractor, log)
	})
	add(registry.SlotDataProcessor, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.ExtractionBundle, *models.ConsolidatedView](s, set.DataProcessor, log)
	})
	add(registry.SlotFounderAnalyst, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.FounderData, *models.FounderAnalysis](s, set.FounderAnalyst, log)
	})
	add(registry.SlotMarketAnalyst, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.MarketData, *models.MarketAnalysis](s, set.MarketAnalyst, log)
	})
	add(registry.SlotBusinessAnalyst, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.BusinessData, *models.BusinessAnalysis](s, set.BusinessAnalyst, log)
	})
	add(registry.SlotRiskAnalyst, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.ConsolidatedView, *models.RiskAssessment](s, set.RiskAnalyst, log)
	})
	add(registry.SlotDecisionMaker, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.DecisionInput, *models.Decision](s, set.DecisionMaker, log)
	})
	add(registry.SlotMemoGenerator, func(s registry.AgentSlot) camunda.JobHandler {
		return NewAgentHandler[*models.MemoInput, *models.Memo](s, set.MemoGenerator, log)
	})
	return handlers
}
