package service

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/repository"
	"atomic_sensei_backend/internal/util"
	"atomic_sensei_backend/pkg/logger"
	"atomic_sensei_backend/pkg/monitoring"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	reviewThreshold   = 80
	maxParallelGrades = 4
)

type QuizService struct {
	QuizRepo      *repository.QuizRepository
	ResultRepo    *repository.QuizResultRepository
	ContentRepo   *repository.ContentRepository
	RoadmapRepo   *repository.RoadmapRepository
	UserRepo      *repository.UserRepository
	AI            *AIService
	Timers        *TimerService
	Notifications *NotificationService
	Now           func() time.Time
}

func NewQuizService(
	quizRepo *repository.QuizRepository,
	resultRepo *repository.QuizResultRepository,
	contentRepo *repository.ContentRepository,
	roadmapRepo *repository.RoadmapRepository,
	userRepo *repository.UserRepository,
	ai *AIService,
	timers *TimerService,
	notifications *NotificationService,
) *QuizService {
	return &QuizService{
		QuizRepo:      quizRepo,
		ResultRepo:    resultRepo,
		ContentRepo:   contentRepo,
		RoadmapRepo:   roadmapRepo,
		UserRepo:      userRepo,
		AI:            ai,
		Timers:        timers,
		Notifications: notifications,
		Now:           time.Now,
	}
}

type GenerateQuizInput struct {
	RoadmapID     uint  `json:"roadmapId" binding:"required"`
	ModuleIndex   int   `json:"moduleIndex" binding:"min=0"`
	TopicIndex    int   `json:"topicIndex" binding:"min=0"`
	SubtopicIndex *int  `json:"subtopicIndex" binding:"omitempty,min=0"`
	ContentID     *uint `json:"contentId"`
}

func (in GenerateQuizInput) Ref() model.UnitRef {
	return model.UnitRef{ModuleIndex: in.ModuleIndex, TopicIndex: in.TopicIndex, SubtopicIndex: in.SubtopicIndex}
}

func (s *QuizService) roadmap(userID, roadmapID uint) (*model.Roadmap, error) {
	roadmap, err := s.RoadmapRepo.FindByIDForUser(roadmapID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoadmapNotFound
		}
		return nil, err
	}
	return roadmap, nil
}

// unitContent finds the lesson a quiz is built from: the explicit id, the
// id linked on the unit, then a coordinate lookup.
func (s *QuizService) unitContent(userID uint, roadmap *model.Roadmap, ref model.UnitRef, contentID *uint) (*model.Content, error) {
	candidates := []*uint{contentID, linkedContentID(roadmap, ref)}
	for _, id := range candidates {
		if id == nil {
			continue
		}
		content, err := s.ContentRepo.FindByIDForUser(*id, userID)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	content, err := s.ContentRepo.FindByUnit(roadmap.ID, userID, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}
	return content, nil
}

func linkedContentID(roadmap *model.Roadmap, ref model.UnitRef) *uint {
	topic := &roadmap.Modules[ref.ModuleIndex].Topics[ref.TopicIndex]
	if ref.SubtopicIndex != nil {
		return topic.Subtopics[*ref.SubtopicIndex].ContentID
	}
	return topic.ContentID
}

func linkQuiz(roadmap *model.Roadmap, ref model.UnitRef, id uint) bool {
	topic := &roadmap.Modules[ref.ModuleIndex].Topics[ref.TopicIndex]
	slot := &topic.QuizID
	if ref.SubtopicIndex != nil {
		slot = &topic.Subtopics[*ref.SubtopicIndex].QuizID
	}
	if *slot != nil {
		return false
	}
	*slot = model.UintPtr(id)
	return true
}

// Generate returns the quiz for a unit, building one from its lesson when
// none exists. created reports whether a new quiz was stored.
func (s *QuizService) Generate(ctx context.Context, userID uint, in GenerateQuizInput) (quiz *model.Quiz, created bool, err error) {
	roadmap, err := s.roadmap(userID, in.RoadmapID)
	if err != nil {
		return nil, false, err
	}
	ref := in.Ref()
	unit, err := ResolveUnit(roadmap, ref)
	if err != nil {
		return nil, false, err
	}

	content, err := s.unitContent(userID, roadmap, ref, in.ContentID)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.QuizRepo.FindByUnit(roadmap.ID, userID, ref)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	draft := s.AI.GenerateQuiz(ctx, unit, content.TextContent)
	unitID, _ := roadmap.UnitID(ref)
	quiz = &model.Quiz{
		Title:         draft.Title,
		Description:   draft.Description,
		RoadmapID:     roadmap.ID,
		UnitID:        unitID,
		ModuleIndex:   ref.ModuleIndex,
		TopicIndex:    ref.TopicIndex,
		SubtopicIndex: ref.SubtopicIndex,
		ContentID:     model.UintPtr(content.ID),
		UserID:        userID,
		Questions:     draft.Questions,
		TimeLimit:     5,
		PassingScore:  70,
		AIGenerated:   draft.AIGenerated,
	}
	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, false, err
	}

	if linkQuiz(roadmap, ref, quiz.ID) {
		if err := s.RoadmapRepo.Save(roadmap); err != nil {
			return nil, false, err
		}
	}
	if content.RelatedQuizID == nil {
		content.RelatedQuizID = model.UintPtr(quiz.ID)
		if err := s.ContentRepo.Save(content); err != nil {
			return nil, false, err
		}
	}

	logger.Log.Info("Quiz generated",
		zap.Uint("roadmapId", roadmap.ID),
		zap.Uint("quizId", quiz.ID),
		zap.Int("questions", len(quiz.Questions)),
		zap.Bool("aiGenerated", quiz.AIGenerated))
	return quiz, true, nil
}

func (s *QuizService) GetByUnit(userID, roadmapID uint, ref model.UnitRef) (*model.Quiz, error) {
	if _, err := s.roadmap(userID, roadmapID); err != nil {
		return nil, err
	}
	quiz, err := s.QuizRepo.FindByUnit(roadmapID, userID, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

func (s *QuizService) Get(userID, id uint) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	return quiz, nil
}

type SubmittedAnswer struct {
	QuestionID string          `json:"questionId"`
	Answer     json.RawMessage `json:"answer" swaggertype:"string"`
	AnswerTime int             `json:"answerTime"`
}

type SubmitQuizInput struct {
	Answers        []SubmittedAnswer `json:"answers" binding:"required"`
	CompletionTime int               `json:"completionTime" binding:"min=0"`
}

type NextDeliveryInfo struct {
	Timestamp       time.Time `json:"timestamp"`
	IntervalMinutes int       `json:"intervalMinutes"`
	IsReview        bool      `json:"isReview"`
	Reason          string    `json:"reason"`
}

type SubmitQuizResult struct {
	QuizResult   *model.QuizResult `json:"quizResult"`
	NextDelivery NextDeliveryInfo  `json:"nextDelivery"`
}

// answerFor matches an answer by question id, falling back to position.
func answerFor(answers []SubmittedAnswer, q model.Question, i int) (SubmittedAnswer, bool) {
	for _, a := range answers {
		if a.QuestionID != "" && a.QuestionID == q.ID {
			return a, true
		}
	}
	if i < len(answers) && answers[i].QuestionID == "" {
		return answers[i], true
	}
	return SubmittedAnswer{}, false
}

// Grade scores every question. Short answers are evaluated by the model in
// parallel; everything else is compared locally.
func (s *QuizService) Grade(ctx context.Context, quiz *model.Quiz, answers []SubmittedAnswer) ([]model.QuestionResult, error) {
	results := make([]model.QuestionResult, len(quiz.Questions))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelGrades)
	for i := range quiz.Questions {
		q := quiz.Questions[i]
		answer, ok := answerFor(answers, q, i)
		results[i] = model.QuestionResult{
			QuestionID: q.ID,
			UserAnswer: datatypes.JSON(orNull(answer.Answer)),
			AnswerTime: answer.AnswerTime,
		}
		if !ok || isNull(answer.Answer) {
			continue
		}

		if q.QuestionType != model.QuestionShortAnswer {
			if gradeLocally(q, answer.Answer) {
				results[i].IsCorrect = true
				results[i].PointsEarned = float64(q.Points())
			}
			continue
		}

		i := i
		g.Go(func() error {
			results[i].IsCorrect, results[i].PointsEarned, results[i].Feedback = s.gradeShortAnswer(gctx, q, answer.Answer)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *QuizService) gradeShortAnswer(ctx context.Context, q model.Question, raw json.RawMessage) (bool, float64, string) {
	answer := answerText(raw)
	eval, err := s.AI.EvaluateAnswer(ctx, q.QuestionText, q.CorrectAnswer, answer)
	if err != nil {
		logger.Log.Info("Short answer evaluation fell back to exact match",
			zap.String("questionId", q.ID),
			zap.Error(err))
		monitoring.AIFallbacks.WithLabelValues("evaluation").Inc()
		if strings.EqualFold(strings.TrimSpace(answer), strings.TrimSpace(q.CorrectAnswer)) {
			return true, float64(q.Points()), ""
		}
		return false, 0, ""
	}
	return eval.IsCorrect, eval.Score / 100 * float64(q.Points()), eval.Feedback
}

func gradeLocally(q model.Question, raw json.RawMessage) bool {
	switch q.QuestionType {
	case model.QuestionMultipleChoice:
		var many []string
		if err := json.Unmarshal(raw, &many); err == nil {
			return sameSet(many, q.CorrectOptionIDs())
		}
		correct := q.CorrectAnswer
		if ids := q.CorrectOptionIDs(); correct == "" && len(ids) > 0 {
			correct = ids[0]
		}
		return correct != "" && answerText(raw) == correct
	case model.QuestionTrueFalse:
		return strings.EqualFold(strings.TrimSpace(answerText(raw)), strings.TrimSpace(q.CorrectAnswer))
	default:
		return false
	}
}

// answerText renders a JSON scalar as plain text.
func answerText(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	switch x := v.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return string(raw)
	}
}

func sameSet(a, b []string) bool {
	if len(a) != len(b) || len(a) == 0 {
		return false
	}
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	for i := range x {
		if x[i] != y[i] {
			return false
		}
	}
	return true
}

func isNull(raw json.RawMessage) bool {
	trimmed := strings.TrimSpace(string(raw))
	return trimmed == "" || trimmed == "null"
}

func orNull(raw json.RawMessage) []byte {
	if isNull(raw) {
		return []byte("null")
	}
	return raw
}

// reviewConcept shortens a missed question to its first three words.
func reviewConcept(question string) string {
	words := strings.Fields(question)
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ") + "..."
}

// Score totals graded answers into a result row.
func Score(quiz *model.Quiz, graded []model.QuestionResult) *model.QuizResult {
	var total, earned float64
	var concepts []string
	seen := map[string]bool{}
	for i, q := range quiz.Questions {
		total += float64(q.Points())
		earned += graded[i].PointsEarned
		if graded[i].IsCorrect {
			continue
		}
		concept := reviewConcept(q.QuestionText)
		if !seen[concept] {
			seen[concept] = true
			concepts = append(concepts, concept)
		}
	}

	percentage := 0
	if total > 0 {
		percentage = int(math.Round(earned / total * 100))
	}
	passed := percentage >= quiz.PassingScore
	return &model.QuizResult{
		UserID:           quiz.UserID,
		QuizID:           quiz.ID,
		RoadmapID:        quiz.RoadmapID,
		ContentID:        quiz.ContentID,
		QuestionResults:  graded,
		TotalScore:       earned,
		PercentageScore:  percentage,
		Passed:           passed,
		ReviewNeeded:     !passed || percentage < reviewThreshold,
		ConceptsToReview: concepts,
	}
}

// Submit grades an attempt, records it, moves the roadmap forward on a
// pass and schedules the next delivery.
func (s *QuizService) Submit(ctx context.Context, userID, quizID uint, in SubmitQuizInput) (*SubmitQuizResult, error) {
	quiz, err := s.Get(userID, quizID)
	if err != nil {
		return nil, err
	}
	roadmap, err := s.roadmap(userID, quiz.RoadmapID)
	if err != nil {
		return nil, err
	}

	graded, err := s.Grade(ctx, quiz, in.Answers)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	result := Score(quiz, graded)
	result.CompletionTime = in.CompletionTime
	result.CompletedAt = now
	if err := s.ResultRepo.Create(result); err != nil {
		return nil, err
	}
	monitoring.QuizSubmissions.WithLabelValues(strconv.FormatBool(result.Passed)).Inc()

	if found, ok := roadmap.FindUnitByID(quiz.UnitID); ok && quiz.UnitID != "" {
		quiz.ModuleIndex, quiz.TopicIndex, quiz.SubtopicIndex = found.ModuleIndex, found.TopicIndex, found.SubtopicIndex
	}
	ref := quiz.Ref()
	unit, err := ResolveUnit(roadmap, ref)
	if err != nil {
		return nil, err
	}
	topic := &roadmap.Modules[ref.ModuleIndex].Topics[ref.TopicIndex]

	if result.Passed {
		if ref.SubtopicIndex != nil {
			err = roadmap.SetSubtopicCompleted(ref.ModuleIndex, ref.TopicIndex, *ref.SubtopicIndex, true, now)
		} else {
			err = roadmap.SetTopicCompleted(ref.ModuleIndex, ref.TopicIndex, true, now)
		}
		if err != nil {
			return nil, err
		}
	}

	var profile LearnerProfile
	if user, err := s.UserRepo.FindByID(userID); err == nil {
		profile = ProfileFromUser(user, roadmap.Goal)
	}
	plan := s.AI.PlanAfterQuiz(ctx, profile, unit, result, topic.ReviewCount)
	deliverAt := now.Add(time.Duration(plan.IntervalMinutes) * time.Minute)

	if result.Passed {
		topic.ReviewCount++
		topic.NextReviewDate = model.TimePtr(deliverAt)
	}
	if err := s.RoadmapRepo.Save(roadmap); err != nil {
		return nil, err
	}

	if err := s.scheduleAfterQuiz(roadmap, quiz, plan, deliverAt); err != nil {
		return nil, err
	}

	notification := &model.Notification{
		Title:         "Quiz completed",
		Message:       fmt.Sprintf("You scored %d%% on %s. Next lesson in %d minutes.", result.PercentageScore, quiz.Title, plan.IntervalMinutes),
		Type:          model.NotificationQuiz,
		RoadmapID:     roadmap.ID,
		ModuleIndex:   model.IntPtr(ref.ModuleIndex),
		TopicIndex:    model.IntPtr(ref.TopicIndex),
		SubtopicIndex: ref.SubtopicIndex,
	}
	if err := s.Notifications.Push(ctx, userID, notification); err != nil {
		logger.Log.Warn("Failed to push quiz notification", zap.Uint("quizId", quiz.ID), zap.Error(err))
	}

	logger.Log.Info("Quiz submitted",
		zap.Uint("quizId", quiz.ID),
		zap.Int("percentage", result.PercentageScore),
		zap.Bool("passed", result.Passed),
		zap.Int("nextIntervalMinutes", plan.IntervalMinutes))

	return &SubmitQuizResult{
		QuizResult: result,
		NextDelivery: NextDeliveryInfo{
			Timestamp:       deliverAt,
			IntervalMinutes: plan.IntervalMinutes,
			IsReview:        plan.IsReview,
			Reason:          plan.Reason,
		},
	}, nil
}

// scheduleAfterQuiz replaces the pending timer. A review revisits the quiz
// unit; otherwise the timer points at the unit after it.
func (s *QuizService) scheduleAfterQuiz(roadmap *model.Roadmap, quiz *model.Quiz, plan DeliveryPlan, deliverAt time.Time) error {
	target := quiz.Ref()
	if !plan.IsReview {
		next, err := roadmap.NextUnit(target.ModuleIndex, target.TopicIndex, target.SubtopicIndex)
		if err != nil {
			return err
		}
		target = next
	}
	unitID, _ := roadmap.UnitID(target)

	var contentID *uint
	if plan.IsReview {
		contentID = quiz.ContentID
	}
	timer := &model.Timer{
		UserID:              quiz.UserID,
		RoadmapID:           roadmap.ID,
		NextContentDelivery: deliverAt,
		UnitID:              unitID,
		ModuleIndex:         target.ModuleIndex,
		TopicIndex:          target.TopicIndex,
		SubtopicIndex:       target.SubtopicIndex,
		ContentID:           contentID,
		QuizID:              model.UintPtr(quiz.ID),
		Kind:                model.TimerQuiz,
		IsReview:            plan.IsReview,
		Interval:            plan.IntervalMinutes,
		Reason:              plan.Reason,
	}
	return s.Timers.Replace(timer)
}

func (s *QuizService) Results(userID, quizID uint) ([]model.QuizResult, error) {
	if _, err := s.Get(userID, quizID); err != nil {
		return nil, err
	}
	return s.ResultRepo.FindByQuiz(quizID, userID)
}
