// internal/jobworker/analyze.go

// Package jobworker runs the pipeline as Zeebe service tasks.
package jobworker

import (
	"context"
	"encoding/json"
	"time"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/logger"
	"startup-analyst/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskTypeAnalyzeStartup = "analyze-startup"

// reportTimeout bounds the complete, fail and throw commands sent after a job
// has run. They never share the job's own deadline.
const reportTimeout = 5 * time.Second

// Analyzer runs one full analysis.
type Analyzer interface {
	AnalyzeStartup(ctx context.Context, req *models.AnalysisRequest) (*models.StoredAnalysis, error)
}

// AnalyzeOutput is written back to the process instance.
type AnalyzeOutput struct {
	AnalysisID   string            `json:"analysisId"`
	Action       models.Action     `json:"action"`
	OverallScore int               `json:"overallScore"`
	Scores       models.Scores     `json:"scores"`
	Confidence   models.Confidence `json:"confidence"`
}

// AnalyzeHandler runs the whole pipeline for the request held in the job
// variables.
type AnalyzeHandler struct {
	analyzer     Analyzer
	timeout      time.Duration
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewAnalyzeHandler(analyzer Analyzer, timeout time.Duration, log logger.Logger) *AnalyzeHandler {
	log = log.WithFields(map[string]interface{}{"taskType": TaskTypeAnalyzeStartup})
	return &AnalyzeHandler{
		analyzer:     analyzer,
		timeout:      timeout,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *AnalyzeHandler) Handle(client worker.JobClient, job entities.Job) {
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

// Execute decodes the request variables and runs the analysis.
func (h *AnalyzeHandler) Execute(ctx context.Context, variables string) (*AnalyzeOutput, error) {
	var req models.AnalysisRequest
	if err := json.Unmarshal([]byte(variables), &req); err != nil {
		return nil, errors.NewInvalidAnalysisRequestError("job variables: " + err.Error())
	}

	result, err := h.analyzer.AnalyzeStartup(ctx, &req)
	if err != nil {
		return nil, err
	}

	return &AnalyzeOutput{
		AnalysisID:   result.ID,
		Action:       result.Memo.Recommendation.Action,
		OverallScore: result.Scores.Overall,
		Scores:       result.Scores,
		Confidence:   result.Confidence,
	}, nil
}

func jobContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

func reportContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), reportTimeout)
}

func completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}, log logger.Logger) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		log.Error("failed to create complete job command", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		log.Error("failed to send complete job command", map[string]interface{}{"jobKey": job.Key, "error": err.Error()})
		return
	}
	log.Info("job completed", map[string]interface{}{"jobKey": job.Key})
}
