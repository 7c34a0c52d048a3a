package llm

import (
	"atomic_sensei_backend/internal/config"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderMock(t *testing.T) {
	p, err := NewProvider(context.Background(), config.AIConfig{Provider: "mock"})
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = p.Generate(WithPurpose(context.Background(), PurposeQuiz), UserPrompt("", "hi"))
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail))
}

func TestNewProviderRequiresKey(t *testing.T) {
	for _, name := range []string{"openai", "anthropic"} {
		_, err := NewProvider(context.Background(), config.AIConfig{Provider: name})
		assert.Error(t, err, name)
	}
}

func TestNewProviderUnknown(t *testing.T) {
	_, err := NewProvider(context.Background(), config.AIConfig{Provider: "nope"})
	assert.Error(t, err)
}

func TestResolveModel(t *testing.T) {
	assert.Equal(t, "gpt-4o-mini", resolveModel("gpt-4o-mini", openaiModels))
	assert.Equal(t, "gemini-2.0-flash", resolveModel("gemini-flash", geminiModels))
	assert.Equal(t, "custom-model", resolveModel("custom-model", geminiModels))
}

func TestPurposeFrom(t *testing.T) {
	assert.Equal(t, "unknown", PurposeFrom(context.Background()))
	assert.Equal(t, PurposeRoadmap, PurposeFrom(WithPurpose(context.Background(), PurposeRoadmap)))
}
