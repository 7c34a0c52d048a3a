package service

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/pkg/logger"
	"atomic_sensei_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const wordsPerMinute = 200

// LearnerProfile is what the model is told about the learner.
type LearnerProfile struct {
	Name           string                    `json:"name"`
	Age            *int                      `json:"age,omitempty"`
	EducationLevel model.EducationLevel      `json:"educationLevel"`
	SkillLevel     string                    `json:"skillLevel"`
	Goal           string                    `json:"goal,omitempty"`
	Preferences    model.LearningPreferences `json:"learningPreferences"`
}

func ProfileFromUser(u *model.User, goal string) LearnerProfile {
	return LearnerProfile{
		Name:           u.Name,
		Age:            u.Age,
		EducationLevel: u.EducationLevel,
		SkillLevel:     u.SkillLevel(),
		Goal:           goal,
		Preferences:    u.LearningPreferences,
	}
}

// UnitContext describes the topic or subtopic being taught.
type UnitContext struct {
	RoadmapTitle        string `json:"roadmapTitle"`
	RoadmapGoal         string `json:"roadmapGoal"`
	ModuleTitle         string `json:"moduleTitle"`
	ModuleDescription   string `json:"moduleDescription"`
	TopicTitle          string `json:"topicTitle"`
	TopicDescription    string `json:"topicDescription"`
	SubtopicTitle       string `json:"subtopicTitle,omitempty"`
	SubtopicDescription string `json:"subtopicDescription,omitempty"`
}

func (u UnitContext) IsSubtopic() bool {
	return u.SubtopicTitle != ""
}

func (u UnitContext) Title() string {
	if u.IsSubtopic() {
		return u.SubtopicTitle
	}
	return u.TopicTitle
}

type RoadmapDraft struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Modules     []model.Module `json:"modules"`
}

type GeneratedContent struct {
	Title              string
	Text               string
	WordCount          int
	ReadingTimeMinutes int
	AIGenerated        bool
}

type QuizDraft struct {
	Title       string
	Description string
	Questions   []model.Question
	AIGenerated bool
}

type Evaluation struct {
	IsCorrect bool    `json:"isCorrect"`
	Score     float64 `json:"score"`
	Feedback  string  `json:"feedback"`
}

// AIService turns learner and curriculum context into prompts and parses
// what comes back.
type AIService struct {
	LLM             llm.Provider
	Scheduler       *IntervalScheduler
	Timeout         time.Duration
	FallbackContent bool
}

func NewAIService(provider llm.Provider, scheduler *IntervalScheduler, cfg config.AIConfig) *AIService {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = time.Minute
	}
	return &AIService{
		LLM:             provider,
		Scheduler:       scheduler,
		Timeout:         timeout,
		FallbackContent: cfg.FallbackContent,
	}
}

func (s *AIService) generate(ctx context.Context, purpose string, req llm.Request) (*llm.Response, error) {
	ctx, cancel := context.WithTimeout(llm.WithPurpose(ctx, purpose), s.Timeout)
	defer cancel()
	return s.LLM.Generate(ctx, req)
}

func (s *AIService) GenerateRoadmap(ctx context.Context, profile LearnerProfile) (*RoadmapDraft, error) {
	req := llm.UserPrompt(curriculumSystem, roadmapPrompt(profile))
	req.Schema = &llm.Schema{Name: "roadmap", Definition: roadmapSchema}

	resp, err := s.generate(ctx, llm.PurposeRoadmap, req)
	if err != nil {
		return nil, fmt.Errorf("generating roadmap: %w", err)
	}

	var draft RoadmapDraft
	if err := resp.Decode(&draft); err != nil {
		return nil, fmt.Errorf("parsing roadmap: %w", err)
	}
	if strings.TrimSpace(draft.Title) == "" || strings.TrimSpace(draft.Description) == "" || draft.Modules == nil {
		return nil, &llm.ErrInvalidResponse{
			Content: resp.Content,
			Err:     fmt.Errorf("roadmap needs a title, a description and a modules array"),
		}
	}

	normalizeModules(draft.Modules)
	return &draft, nil
}

// normalizeModules fills the defaults the model tends to leave out and
// drops any completion state it invented.
func normalizeModules(modules []model.Module) {
	for m := range modules {
		module := &modules[m]
		if module.Order == 0 {
			module.Order = m + 1
		}
		module.Completed, module.CompletedAt = false, nil
		if module.Topics == nil {
			module.Topics = []model.Topic{}
		}
		for t := range module.Topics {
			topic := &module.Topics[t]
			if topic.Order == 0 {
				topic.Order = t + 1
			}
			if topic.EstimatedTimeMinutes <= 0 {
				topic.EstimatedTimeMinutes = 10
			}
			topic.Completed, topic.CompletedAt = false, nil
			topic.ContentID, topic.QuizID = nil, nil
			if topic.Subtopics == nil {
				topic.Subtopics = []model.Subtopic{}
			}
			for i := range topic.Subtopics {
				sub := &topic.Subtopics[i]
				sub.Completed, sub.CompletedAt = false, nil
				sub.ContentID, sub.QuizID = nil, nil
			}
		}
	}
}

// GenerateContent writes a markdown lesson. When generation fails and
// placeholder content is enabled a placeholder lesson is returned instead.
func (s *AIService) GenerateContent(ctx context.Context, unit UnitContext, profile LearnerProfile) (*GeneratedContent, error) {
	resp, err := s.generate(ctx, llm.PurposeContent, llm.UserPrompt(lessonSystem, lessonPrompt(unit, profile)))
	if err == nil && strings.TrimSpace(resp.Text()) == "" {
		err = &llm.ErrInvalidResponse{Err: fmt.Errorf("empty lesson")}
	}
	if err != nil {
		if !s.FallbackContent {
			return nil, fmt.Errorf("generating content: %w", err)
		}
		logger.Log.Warn("Using placeholder lesson", zap.String("unit", unit.Title()), zap.Error(err))
		monitoring.AIFallbacks.WithLabelValues("content").Inc()
		return PlaceholderContent(unit), nil
	}

	return newGeneratedContent(unit.Title(), resp.Text(), true), nil
}

func newGeneratedContent(title, text string, aiGenerated bool) *GeneratedContent {
	words := len(strings.Fields(text))
	return &GeneratedContent{
		Title:              title,
		Text:               text,
		WordCount:          words,
		ReadingTimeMinutes: int(math.Ceil(float64(words) / wordsPerMinute)),
		AIGenerated:        aiGenerated,
	}
}

func PlaceholderContent(unit UnitContext) *GeneratedContent {
	title := unit.Title()
	text := fmt.Sprintf(`# %s

## Introduction

This lesson introduces **%s**, part of %s.

## Main concepts

%s

## Summary

Review the key ideas of %s before taking the quiz.`,
		title, title, orDefault(unit.ModuleTitle, "this module"),
		orDefault(unit.SubtopicDescription, orDefault(unit.TopicDescription, "Content for this unit is being prepared.")),
		title)
	return newGeneratedContent(title, text, false)
}

type quizPayload struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Questions   []questionPayload `json:"questions"`
}

type questionPayload struct {
	Type        string          `json:"type"`
	Question    string          `json:"question"`
	Options     []string        `json:"options"`
	Answer      json.RawMessage `json:"answer"`
	Explanation string          `json:"explanation"`
	Difficulty  string          `json:"difficulty"`
}

// GenerateQuiz never fails: any generation or parsing problem yields the
// fallback quiz for the unit.
func (s *AIService) GenerateQuiz(ctx context.Context, unit UnitContext, contentText string) *QuizDraft {
	req := llm.UserPrompt(quizSystem, quizPrompt(unit, contentText))
	req.Temperature = 0.2
	req.MaxTokens = 8192

	draft, err := s.requestQuiz(ctx, unit, req)
	if err != nil {
		logger.Log.Warn("Using fallback quiz", zap.String("unit", unit.Title()), zap.Error(err))
		monitoring.AIFallbacks.WithLabelValues("quiz").Inc()
		return FallbackQuiz(unit)
	}
	return draft
}

func (s *AIService) requestQuiz(ctx context.Context, unit UnitContext, req llm.Request) (*QuizDraft, error) {
	resp, err := s.generate(ctx, llm.PurposeQuiz, req)
	if err != nil {
		return nil, err
	}

	var payload quizPayload
	if err := resp.Decode(&payload); err != nil {
		return nil, err
	}

	questions := make([]model.Question, 0, len(payload.Questions))
	for _, q := range payload.Questions {
		if question, ok := convertQuestion(q); ok {
			questions = append(questions, question)
		}
	}
	if len(questions) == 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("quiz has no usable questions")}
	}

	title := payload.Title
	if title == "" {
		title = "Quiz: " + unit.Title()
		if unit.IsSubtopic() {
			title = fmt.Sprintf("Quiz: %s: %s", unit.TopicTitle, unit.SubtopicTitle)
		}
	}
	return &QuizDraft{
		Title:       title,
		Description: orDefault(payload.Description, "Test your knowledge about "+unit.Title()),
		Questions:   questions,
		AIGenerated: true,
	}, nil
}

func convertQuestion(p questionPayload) (model.Question, bool) {
	if strings.TrimSpace(p.Question) == "" {
		return model.Question{}, false
	}

	q := model.Question{
		ID:           model.GenerateUUID(),
		QuestionText: p.Question,
		Explanation:  orDefault(p.Explanation, "This answer is correct based on the learning material."),
		Difficulty:   orDefault(p.Difficulty, "medium"),
		PointsValue:  1,
	}

	switch normalizeQuestionType(p.Type) {
	case model.QuestionTrueFalse:
		q.QuestionType = model.QuestionTrueFalse
		q.CorrectAnswer = strconv.FormatBool(parseBoolAnswer(p.Answer))
		q.Options = []model.Option{
			{ID: "true", Text: "True", IsCorrect: q.CorrectAnswer == "true"},
			{ID: "false", Text: "False", IsCorrect: q.CorrectAnswer == "false"},
		}
	case model.QuestionShortAnswer:
		q.QuestionType = model.QuestionShortAnswer
		var answer string
		if err := json.Unmarshal(p.Answer, &answer); err != nil {
			answer = strings.Trim(string(p.Answer), `"`)
		}
		q.CorrectAnswer = answer
	default:
		q.QuestionType = model.QuestionMultipleChoice
		options, answer := p.Options, parseIndexAnswer(p.Answer)
		if len(options) == 0 {
			options, answer = []string{"Option A", "Option B", "Option C", "Option D"}, 0
		}
		if answer < 0 || answer >= len(options) {
			answer = 0
		}
		q.Options = make([]model.Option, len(options))
		for i, text := range options {
			q.Options[i] = model.Option{ID: model.GenerateUUID(), Text: text, IsCorrect: i == answer}
		}
		q.CorrectAnswer = q.Options[answer].ID
	}
	return q, true
}

func normalizeQuestionType(t string) model.QuestionType {
	switch strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(t)) {
	case "truefalse", "boolean":
		return model.QuestionTrueFalse
	case "shortanswer", "text":
		return model.QuestionShortAnswer
	default:
		return model.QuestionMultipleChoice
	}
}

func parseBoolAnswer(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.EqualFold(strings.TrimSpace(s), "true")
	}
	return false
}

func parseIndexAnswer(raw json.RawMessage) int {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if i, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return i
		}
	}
	return 0
}

// FallbackQuiz is a two question quiz that only needs the unit title.
func FallbackQuiz(unit UnitContext) *QuizDraft {
	title := unit.Title()
	mc := convertQuestionMust(questionPayload{
		Type:     "multipleChoice",
		Question: fmt.Sprintf("Which of the following best describes %s?", title),
		Options: []string{
			"A core concept in this module",
			"An advanced topic requiring prerequisite knowledge",
			"A supplementary concept providing context",
			"A practical application of earlier concepts",
		},
		Answer:      json.RawMessage("0"),
		Explanation: "This is the main focus of the current learning unit.",
		Difficulty:  "easy",
	})
	tf := convertQuestionMust(questionPayload{
		Type:        "trueFalse",
		Question:    fmt.Sprintf("%s is an important concept to understand for mastery of this subject.", title),
		Answer:      json.RawMessage("true"),
		Explanation: "Understanding this concept is essential for building a solid foundation in this subject area.",
		Difficulty:  "easy",
	})

	return &QuizDraft{
		Title:       "Quiz: " + title,
		Description: "Test your knowledge about " + title,
		Questions:   []model.Question{mc, tf},
	}
}

func convertQuestionMust(p questionPayload) model.Question {
	q, _ := convertQuestion(p)
	return q
}

// EvaluateAnswer grades a free text answer against the expected one.
func (s *AIService) EvaluateAnswer(ctx context.Context, question, correct, answer string) (*Evaluation, error) {
	req := llm.UserPrompt(evaluatorSystem, evaluationPrompt(question, correct, answer))
	req.Schema = &llm.Schema{Name: "evaluation", Definition: evaluationSchema}

	resp, err := s.generate(ctx, llm.PurposeEvaluate, req)
	if err != nil {
		return nil, fmt.Errorf("evaluating answer: %w", err)
	}

	var eval Evaluation
	if err := resp.Decode(&eval); err != nil {
		return nil, err
	}
	eval.Score = math.Max(0, math.Min(100, eval.Score))
	return &eval, nil
}

// SuggestNextDelivery asks the model for the next interval. The interval
// is clamped into the scheduler bounds.
func (s *AIService) SuggestNextDelivery(ctx context.Context, profile LearnerProfile, unit UnitContext, result any) (*DeliveryPlan, error) {
	req := llm.UserPrompt(spacingSystem, deliveryPrompt(profile, unit, result))
	req.Schema = &llm.Schema{Name: "delivery_plan", Definition: deliverySchema}

	resp, err := s.generate(ctx, llm.PurposeSchedule, req)
	if err != nil {
		return nil, fmt.Errorf("planning next delivery: %w", err)
	}

	var plan DeliveryPlan
	if err := resp.Decode(&plan); err != nil {
		return nil, err
	}
	if plan.IntervalMinutes <= 0 {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("non-positive interval %d", plan.IntervalMinutes)}
	}
	plan.IntervalMinutes = s.Scheduler.Clamp(plan.IntervalMinutes)
	return &plan, nil
}

// PlanAfterQuiz plans the next delivery after a graded quiz, falling back
// to the interval scheduler.
func (s *AIService) PlanAfterQuiz(ctx context.Context, profile LearnerProfile, unit UnitContext, result *model.QuizResult, reviewCount int) DeliveryPlan {
	plan, err := s.SuggestNextDelivery(ctx, profile, unit, map[string]any{
		"percentageScore":  result.PercentageScore,
		"passed":           result.Passed,
		"reviewNeeded":     result.ReviewNeeded,
		"conceptsToReview": result.ConceptsToReview,
		"reviewCount":      reviewCount,
	})
	if err != nil {
		logger.Log.Info("Falling back to interval scheduler", zap.Error(err))
		monitoring.AIFallbacks.WithLabelValues("schedule").Inc()
		return s.Scheduler.Plan(result.PercentageScore, reviewCount)
	}
	return *plan
}
