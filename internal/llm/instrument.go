package llm

import (
	"atomic_sensei_backend/pkg/logger"
	"atomic_sensei_backend/pkg/monitoring"
	"atomic_sensei_backend/pkg/tracing"
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// InstrumentedProvider records a span, a log line and Prometheus metrics
// for every call.
type InstrumentedProvider struct {
	inner Provider
}

func WithInstrumentation(p Provider) Provider {
	return &InstrumentedProvider{inner: p}
}

func (i *InstrumentedProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	purpose := PurposeFrom(ctx)
	ctx, span := tracing.StartSpan(ctx, "llm.generate",
		attribute.String("llm.purpose", purpose),
		attribute.String("llm.model", i.inner.ModelID()),
	)
	defer span.End()

	start := time.Now()
	resp, err := i.inner.Generate(ctx, req)
	elapsed := time.Since(start)

	monitoring.AIRequestDuration.WithLabelValues(purpose).Observe(elapsed.Seconds())

	if err != nil {
		monitoring.AIRequests.WithLabelValues(purpose, "error").Inc()
		tracing.Fail(span, err)
		logger.Log.Warn("AI request failed",
			zap.String("purpose", purpose),
			zap.String("model", i.inner.ModelID()),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		return nil, err
	}

	monitoring.AIRequests.WithLabelValues(purpose, "ok").Inc()
	span.SetAttributes(
		attribute.Int("llm.input_tokens", resp.Usage.InputTokens),
		attribute.Int("llm.output_tokens", resp.Usage.OutputTokens),
	)
	logger.Log.Debug("AI request completed",
		zap.String("purpose", purpose),
		zap.String("model", resp.Model),
		zap.Duration("latency", elapsed),
		zap.Int("input_tokens", resp.Usage.InputTokens),
		zap.Int("output_tokens", resp.Usage.OutputTokens),
	)
	return resp, nil
}

func (i *InstrumentedProvider) ModelID() string {
	return i.inner.ModelID()
}
