package service

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/model"
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAIService(mock *llm.MockProvider, fallback bool) *AIService {
	return NewAIService(mock, NewIntervalScheduler(defaultSchedule()), config.AIConfig{
		TimeoutSeconds:  5,
		FallbackContent: fallback,
	})
}

var goUnit = UnitContext{
	RoadmapTitle: "Go",
	RoadmapGoal:  "learn go",
	ModuleTitle:  "Basics",
	TopicTitle:   "Types",
}

const roadmapJSON = "```json\n" + `{
  "title": "Go in a month",
  "description": "From zero to goroutines",
  "modules": [
    {"title": "Basics", "topics": [
      {"title": "Types", "estimatedTimeMinutes": 0, "subtopics": [{"title": "ints"}]},
      {"title": "Loops", "order": 7}
    ]}
  ]
}` + "\n```"

func TestGenerateRoadmapNormalizes(t *testing.T) {
	mock := llm.NewMockProvider(llm.Text(roadmapJSON))
	svc := newAIService(mock, true)

	draft, err := svc.GenerateRoadmap(context.Background(), LearnerProfile{Name: "Ada", Goal: "learn go", SkillLevel: "beginner"})
	require.NoError(t, err)

	assert.Equal(t, "Go in a month", draft.Title)
	require.Len(t, draft.Modules, 1)
	module := draft.Modules[0]
	assert.Equal(t, 1, module.Order)
	require.Len(t, module.Topics, 2)
	assert.Equal(t, 1, module.Topics[0].Order)
	assert.Equal(t, 10, module.Topics[0].EstimatedTimeMinutes)
	assert.Equal(t, 7, module.Topics[1].Order)
	assert.NotNil(t, module.Topics[1].Subtopics)
	assert.Empty(t, module.Topics[1].Subtopics)

	require.Equal(t, 1, mock.CallCount())
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "learn go")
	assert.NotNil(t, mock.Calls[0].Schema)
}

func TestGenerateRoadmapRejectsIncompleteDraft(t *testing.T) {
	mock := llm.NewMockProvider(llm.Text(`{"title": "Go", "modules": []}`))
	svc := newAIService(mock, true)

	_, err := svc.GenerateRoadmap(context.Background(), LearnerProfile{Goal: "go"})
	var invalid *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &invalid))
}

func TestGenerateContentCountsWords(t *testing.T) {
	lesson := strings.Repeat("word ", 401)
	svc := newAIService(llm.NewMockProvider(llm.Text(lesson)), false)

	content, err := svc.GenerateContent(context.Background(), goUnit, LearnerProfile{SkillLevel: "advanced"})
	require.NoError(t, err)
	assert.Equal(t, "Types", content.Title)
	assert.Equal(t, 401, content.WordCount)
	assert.Equal(t, 3, content.ReadingTimeMinutes)
	assert.True(t, content.AIGenerated)
}

func TestGenerateContentFallback(t *testing.T) {
	svc := newAIService(llm.NewMockProvider(), true)
	content, err := svc.GenerateContent(context.Background(), goUnit, LearnerProfile{})
	require.NoError(t, err)
	assert.False(t, content.AIGenerated)
	assert.Contains(t, content.Text, "# Types")

	svc = newAIService(llm.NewMockProvider(), false)
	_, err = svc.GenerateContent(context.Background(), goUnit, LearnerProfile{})
	var unavailable *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

func TestGenerateQuizConvertsQuestions(t *testing.T) {
	payload := `{
	  "title": "Quiz: Types",
	  "questions": [
	    {"type": "multipleChoice", "question": "Which is an integer type?", "options": ["int", "string", "bool", "rune slice"], "answer": 0},
	    {"type": "trueFalse", "question": "Go has generics.", "answer": true, "explanation": "Since 1.18"},
	    {"type": "multipleChoice", "question": "Pick one", "answer": 2}
	  ]
	}`
	mock := llm.NewMockProvider(llm.Text(payload))
	svc := newAIService(mock, true)

	quiz := svc.GenerateQuiz(context.Background(), goUnit, strings.Repeat("x", 9000))
	require.True(t, quiz.AIGenerated)
	require.Len(t, quiz.Questions, 3)

	mc := quiz.Questions[0]
	assert.Equal(t, model.QuestionMultipleChoice, mc.QuestionType)
	require.Len(t, mc.Options, 4)
	assert.Equal(t, mc.Options[0].ID, mc.CorrectAnswer)
	assert.Equal(t, []string{mc.Options[0].ID}, mc.CorrectOptionIDs())
	assert.NotEmpty(t, mc.Explanation)

	tf := quiz.Questions[1]
	assert.Equal(t, model.QuestionTrueFalse, tf.QuestionType)
	assert.Equal(t, "true", tf.CorrectAnswer)

	placeholder := quiz.Questions[2]
	require.Len(t, placeholder.Options, 4)
	assert.Equal(t, "Option A", placeholder.Options[0].Text)
	assert.Equal(t, placeholder.Options[0].ID, placeholder.CorrectAnswer)

	req := mock.Calls[0]
	assert.Equal(t, 0.2, req.Temperature)
	assert.NotContains(t, req.Messages[0].Content, strings.Repeat("x", 8001))
}

func TestGenerateQuizFallback(t *testing.T) {
	svc := newAIService(llm.NewMockProvider(llm.Text(`{"questions": []}`)), true)

	quiz := svc.GenerateQuiz(context.Background(), goUnit, "")
	assert.False(t, quiz.AIGenerated)
	assert.Equal(t, "Quiz: Types", quiz.Title)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, model.QuestionMultipleChoice, quiz.Questions[0].QuestionType)
	assert.Equal(t, model.QuestionTrueFalse, quiz.Questions[1].QuestionType)
	assert.Equal(t, "true", quiz.Questions[1].CorrectAnswer)
}

func TestEvaluateAnswerClampsScore(t *testing.T) {
	svc := newAIService(llm.NewMockProvider(llm.Text(`{"isCorrect": true, "score": 140, "feedback": "great"}`)), true)

	eval, err := svc.EvaluateAnswer(context.Background(), "q", "a", "a")
	require.NoError(t, err)
	assert.True(t, eval.IsCorrect)
	assert.Equal(t, 100.0, eval.Score)
}

func TestPlanAfterQuiz(t *testing.T) {
	result := &model.QuizResult{PercentageScore: 90, Passed: true}

	svc := newAIService(llm.NewMockProvider(llm.Text(`{"intervalMinutes": 99999, "isReview": false, "reason": "solid"}`)), true)
	plan := svc.PlanAfterQuiz(context.Background(), LearnerProfile{}, goUnit, result, 0)
	assert.Equal(t, 10080, plan.IntervalMinutes)
	assert.Equal(t, "solid", plan.Reason)

	svc = newAIService(llm.NewMockProvider(), true)
	plan = svc.PlanAfterQuiz(context.Background(), LearnerProfile{}, goUnit, result, 1)
	assert.Equal(t, 120, plan.IntervalMinutes)
	assert.False(t, plan.IsReview)
}

func TestQuizPromptTruncatesOnCharacterBoundary(t *testing.T) {
	lesson := "a" + strings.Repeat("é", maxQuizContentChars)

	cut := truncateUTF8(lesson, maxQuizContentChars)
	assert.True(t, utf8.ValidString(cut))
	assert.Equal(t, maxQuizContentChars-1, len(cut))

	prompt := quizPrompt(goUnit, lesson)
	assert.True(t, utf8.ValidString(prompt))
	assert.Equal(t, "short", truncateUTF8("short", maxQuizContentChars))
}
