// internal/orchestrator/invoke.go
package orchestrator

import (
	"context"
	stderrors "errors"
	"time"

	"startup-analyst/internal/common/errors"
	"startup-analyst/internal/common/metrics"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// invoke runs the agent registered under slot with the slot timeout, a span
// and per-agent metrics. Failures are wrapped with code unless the agent is
// missing or timed out.
func invoke[In, Out any](ctx context.Context, o *Orchestrator, slot string, code errors.ErrorCode, input In) (Out, error) {
	var zero Out

	raw, ok := o.agent(slot)
	if !ok {
		metrics.AgentRunsFailed.WithLabelValues(slot, string(errors.ErrCodeAgentNotFound)).Inc()
		return zero, errors.NewAgentNotFoundError(slot)
	}
	agent, ok := raw.(Agent[In, Out])
	if !ok {
		return zero, errors.NewAgentRoleMismatchError(slot, roles[slot].name, raw)
	}

	ctx, span := o.obs.StartSpan(ctx, slot, attribute.String("agent", slot))
	defer span.End()

	callCtx := ctx
	timeout := o.config.Timeouts[slot]
	if timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := agent.Execute(callCtx, input)
	metrics.AgentRunDuration.WithLabelValues(slot).Observe(time.Since(start).Seconds())

	if err != nil {
		var wrapped *errors.StandardError
		if timeout > 0 && ctx.Err() == nil && stderrors.Is(callCtx.Err(), context.DeadlineExceeded) {
			wrapped = errors.NewAgentTimeoutError(slot, err)
		} else {
			wrapped = errors.NewPhaseError(code, slot, err)
		}
		metrics.AgentRunsFailed.WithLabelValues(slot, string(wrapped.Code)).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, string(wrapped.Code))
		return zero, wrapped
	}

	metrics.AgentRunsCompleted.WithLabelValues(slot).Inc()
	return out, nil
}
