package service

import (
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/util"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quizPayloadJSON = `{
  "title": "Quiz: Loops",
  "description": "Check your understanding",
  "questions": [
    {"type": "multipleChoice", "question": "Which keyword loops?", "options": ["for", "loop", "while", "repeat"], "answer": 0},
    {"type": "trueFalse", "question": "Go has a while keyword.", "answer": false}
  ]
}`

func TestQuizGenerateRequiresContent(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	_, _, err := f.quiz.Generate(context.Background(), user.ID, GenerateQuizInput{RoadmapID: roadmap.ID, TopicIndex: 1})
	assert.ErrorIs(t, err, util.ErrContentNotFound)
}

func TestQuizGenerateLinksUnit(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	content := f.seedContent(t, user.ID, roadmap, model.UnitRef{ModuleIndex: 0, TopicIndex: 1})
	f.mock.AddResponse(llm.Text(quizPayloadJSON))
	in := GenerateQuizInput{RoadmapID: roadmap.ID, TopicIndex: 1, ContentID: &content.ID}

	quiz, created, err := f.quiz.Generate(context.Background(), user.ID, in)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, quiz.AIGenerated)
	assert.Equal(t, "Quiz: Loops", quiz.Title)
	assert.Equal(t, 70, quiz.PassingScore)
	assert.Equal(t, roadmap.Modules[0].Topics[1].ID, quiz.UnitID)
	require.Len(t, quiz.Questions, 2)
	assert.Equal(t, "false", quiz.Questions[1].CorrectAnswer)

	stored, err := f.roadmap.Get(user.ID, roadmap.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Modules[0].Topics[1].QuizID)
	assert.Equal(t, quiz.ID, *stored.Modules[0].Topics[1].QuizID)

	lesson, err := f.contents.FindByIDForUser(content.ID, user.ID)
	require.NoError(t, err)
	require.NotNil(t, lesson.RelatedQuizID)
	assert.Equal(t, quiz.ID, *lesson.RelatedQuizID)

	again, created, err := f.quiz.Generate(context.Background(), user.ID, GenerateQuizInput{RoadmapID: roadmap.ID, TopicIndex: 1})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, quiz.ID, again.ID)
	assert.Equal(t, 1, f.mock.CallCount())

	byUnit, err := f.quiz.GetByUnit(user.ID, roadmap.ID, model.UnitRef{ModuleIndex: 0, TopicIndex: 1})
	require.NoError(t, err)
	assert.Equal(t, quiz.ID, byUnit.ID)
	_, err = f.quiz.GetByUnit(user.ID, roadmap.ID, model.UnitRef{ModuleIndex: 1, TopicIndex: 0})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

// seedQuiz stores a three question quiz on the "Loops" topic.
func (f *fixture) seedQuiz(t *testing.T, userID uint, roadmap *model.Roadmap) *model.Quiz {
	t.Helper()
	quiz := &model.Quiz{
		Title:       "Quiz: Loops",
		RoadmapID:   roadmap.ID,
		UnitID:      roadmap.Modules[0].Topics[1].ID,
		ModuleIndex: 0,
		TopicIndex:  1,
		UserID:      userID,
		Questions: []model.Question{
			{
				ID:           "q1",
				QuestionText: "Which keyword starts a loop?",
				QuestionType: model.QuestionMultipleChoice,
				Options: []model.Option{
					{ID: "a", Text: "for", IsCorrect: true},
					{ID: "b", Text: "loop"},
				},
				CorrectAnswer: "a",
				PointsValue:   1,
			},
			{ID: "q2", QuestionText: "Which keyword exits a loop?", QuestionType: model.QuestionTrueFalse, CorrectAnswer: "true", PointsValue: 1},
			{ID: "q3", QuestionText: "Name the concurrency primitive", QuestionType: model.QuestionShortAnswer, CorrectAnswer: "goroutine", PointsValue: 1},
		},
		TimeLimit:    5,
		PassingScore: 70,
	}
	require.NoError(t, f.quizzes.Create(quiz))
	return quiz
}

func answer(questionID string, v any) SubmittedAnswer {
	raw, _ := json.Marshal(v)
	return SubmittedAnswer{QuestionID: questionID, Answer: raw}
}

func TestQuizSubmitPassAdvancesRoadmap(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	quiz := f.seedQuiz(t, user.ID, roadmap)
	f.mock.AddResponse(llm.Text(`{"isCorrect": true, "score": 50, "feedback": "partially right"}`))
	f.mock.AddResponse(llm.Text(`{"intervalMinutes": 45, "isReview": false, "reason": "good recall"}`))
	ctx := context.Background()

	out, err := f.quiz.Submit(ctx, user.ID, quiz.ID, SubmitQuizInput{
		Answers: []SubmittedAnswer{
			answer("q1", "a"),
			answer("q2", true),
			answer("q3", "goroutines"),
		},
		CompletionTime: 120,
	})
	require.NoError(t, err)

	result := out.QuizResult
	assert.Equal(t, 83, result.PercentageScore)
	assert.InDelta(t, 2.5, result.TotalScore, 0.001)
	assert.True(t, result.Passed)
	assert.False(t, result.ReviewNeeded)
	assert.Empty(t, result.ConceptsToReview)
	assert.Equal(t, "partially right", result.QuestionResults[2].Feedback)
	assert.Equal(t, 120, result.CompletionTime)

	assert.Equal(t, 45, out.NextDelivery.IntervalMinutes)
	assert.False(t, out.NextDelivery.IsReview)
	assert.Equal(t, fixedNow.Add(45*time.Minute), out.NextDelivery.Timestamp)

	stored, err := f.roadmap.Get(user.ID, roadmap.ID)
	require.NoError(t, err)
	topic := stored.Modules[0].Topics[1]
	assert.True(t, topic.Completed)
	assert.Equal(t, 1, topic.ReviewCount)
	require.NotNil(t, topic.NextReviewDate)
	assert.Equal(t, 33, stored.Progress)
	assert.Equal(t, 1, stored.CurrentModule)

	timers, err := f.timer.Active(user.ID)
	require.NoError(t, err)
	require.Len(t, timers, 1)
	assert.Equal(t, model.TimerQuiz, timers[0].Kind)
	assert.Equal(t, 1, timers[0].ModuleIndex)
	assert.Equal(t, 0, timers[0].TopicIndex)
	assert.Equal(t, 45, timers[0].Interval)

	notes, err := f.notifications.List(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "Quiz completed", notes[0].Title)

	results, err := f.quiz.Results(user.ID, quiz.ID)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestQuizSubmitFailSchedulesReview(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	quiz := f.seedQuiz(t, user.ID, roadmap)
	quiz.Questions = append(quiz.Questions, model.Question{
		ID:            "q4",
		QuestionText:  "Which keyword exits early?",
		QuestionType:  model.QuestionTrueFalse,
		CorrectAnswer: "false",
	})
	require.NoError(t, f.quizzes.DB.Save(quiz).Error)

	require.NoError(t, f.timer.Replace(&model.Timer{UserID: user.ID, RoadmapID: roadmap.ID, NextContentDelivery: fixedNow.Add(time.Hour)}))

	// Answers by position: q1 wrong, q2 wrong, q3 matched exactly after
	// the evaluator fails, q4 unanswered.
	out, err := f.quiz.Submit(context.Background(), user.ID, quiz.ID, SubmitQuizInput{
		Answers: []SubmittedAnswer{
			{Answer: json.RawMessage(`"b"`)},
			{Answer: json.RawMessage(`"FALSE"`)},
			{Answer: json.RawMessage(`"  Goroutine "`)},
		},
	})
	require.NoError(t, err)

	result := out.QuizResult
	assert.Equal(t, 25, result.PercentageScore)
	assert.False(t, result.Passed)
	assert.True(t, result.ReviewNeeded)
	assert.True(t, result.QuestionResults[2].IsCorrect)
	assert.Equal(t, []string{"Which keyword starts...", "Which keyword exits..."}, []string(result.ConceptsToReview))

	assert.Equal(t, 10, out.NextDelivery.IntervalMinutes)
	assert.True(t, out.NextDelivery.IsReview)

	stored, err := f.roadmap.Get(user.ID, roadmap.ID)
	require.NoError(t, err)
	assert.False(t, stored.Modules[0].Topics[1].Completed)
	assert.Equal(t, 0, stored.Modules[0].Topics[1].ReviewCount)

	timers, err := f.timer.Active(user.ID)
	require.NoError(t, err)
	require.Len(t, timers, 1)
	assert.True(t, timers[0].IsReview)
	assert.Equal(t, 1, timers[0].TopicIndex)
	assert.Equal(t, fixedNow.Add(10*time.Minute).Unix(), timers[0].NextContentDelivery.Unix())
}

func TestQuizSubmitUnknownQuiz(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)

	_, err := f.quiz.Submit(context.Background(), user.ID, 99, SubmitQuizInput{})
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
	_, err = f.quiz.Results(user.ID, 99)
	assert.ErrorIs(t, err, util.ErrQuizNotFound)
}

func TestGradeLocally(t *testing.T) {
	mc := model.Question{
		QuestionType: model.QuestionMultipleChoice,
		Options:      []model.Option{{ID: "a", IsCorrect: true}, {ID: "b"}, {ID: "c", IsCorrect: true}},
	}
	assert.True(t, gradeLocally(mc, json.RawMessage(`["c", "a"]`)))
	assert.False(t, gradeLocally(mc, json.RawMessage(`["a"]`)))
	assert.True(t, gradeLocally(mc, json.RawMessage(`"a"`)))
	assert.False(t, gradeLocally(mc, json.RawMessage(`"b"`)))

	tf := model.Question{QuestionType: model.QuestionTrueFalse, CorrectAnswer: "True"}
	assert.True(t, gradeLocally(tf, json.RawMessage(`true`)))
	assert.True(t, gradeLocally(tf, json.RawMessage(`"true"`)))
	assert.False(t, gradeLocally(tf, json.RawMessage(`"false"`)))
}

func TestScoreWithoutQuestions(t *testing.T) {
	result := Score(&model.Quiz{PassingScore: 70}, nil)
	assert.Equal(t, 0, result.PercentageScore)
	assert.False(t, result.Passed)
	assert.True(t, result.ReviewNeeded)
}
