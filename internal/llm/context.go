package llm

import "context"

type contextKey string

const purposeKey contextKey = "llm_purpose"

const (
	PurposeRoadmap  = "roadmap"
	PurposeContent  = "content"
	PurposeQuiz     = "quiz"
	PurposeEvaluate = "evaluate"
	PurposeSchedule = "schedule"
)

// WithPurpose labels the calls made with ctx for logs and metrics.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}
