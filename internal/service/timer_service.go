package service

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/repository"
	"atomic_sensei_backend/internal/util"
	"atomic_sensei_backend/pkg/logger"
	"atomic_sensei_backend/pkg/monitoring"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const reminderBatchSize = 100

type TimerService struct {
	TimerRepo     *repository.TimerRepository
	RoadmapRepo   *repository.RoadmapRepository
	ContentRepo   *repository.ContentRepository
	QuizRepo      *repository.QuizRepository
	ResultRepo    *repository.QuizResultRepository
	UserRepo      *repository.UserRepository
	AI            *AIService
	Notifications *NotificationService
	Scheduler     *IntervalScheduler
	Now           func() time.Time
}

func NewTimerService(
	timerRepo *repository.TimerRepository,
	roadmapRepo *repository.RoadmapRepository,
	contentRepo *repository.ContentRepository,
	quizRepo *repository.QuizRepository,
	resultRepo *repository.QuizResultRepository,
	userRepo *repository.UserRepository,
	ai *AIService,
	notifications *NotificationService,
	scheduler *IntervalScheduler,
) *TimerService {
	return &TimerService{
		TimerRepo:     timerRepo,
		RoadmapRepo:   roadmapRepo,
		ContentRepo:   contentRepo,
		QuizRepo:      quizRepo,
		ResultRepo:    resultRepo,
		UserRepo:      userRepo,
		AI:            ai,
		Notifications: notifications,
		Scheduler:     scheduler,
		Now:           time.Now,
	}
}

func (s *TimerService) roadmap(userID, roadmapID uint) (*model.Roadmap, error) {
	roadmap, err := s.RoadmapRepo.FindByIDForUser(roadmapID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoadmapNotFound
		}
		return nil, err
	}
	return roadmap, nil
}

func (s *TimerService) find(userID, id uint) (*model.Timer, error) {
	timer, err := s.TimerRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrTimerNotFound
		}
		return nil, err
	}
	return timer, nil
}

// Replace makes timer the only pending timer of its roadmap.
func (s *TimerService) Replace(timer *model.Timer) error {
	if err := s.TimerRepo.DeactivatePending(timer.UserID, timer.RoadmapID); err != nil {
		return err
	}
	timer.Active = true
	return s.TimerRepo.Create(timer)
}

type CreateTimerInput struct {
	RoadmapID     uint            `json:"roadmapId" binding:"required"`
	ModuleIndex   int             `json:"moduleIndex" binding:"min=0"`
	TopicIndex    int             `json:"topicIndex" binding:"min=0"`
	SubtopicIndex *int            `json:"subtopicIndex" binding:"omitempty,min=0"`
	Minutes       int             `json:"minutes" binding:"required,min=1,max=1440"`
	Kind          model.TimerKind `json:"kind" binding:"omitempty,oneof=manual ai"`
	Reason        string          `json:"reason"`
}

func (in CreateTimerInput) Ref() model.UnitRef {
	return model.UnitRef{ModuleIndex: in.ModuleIndex, TopicIndex: in.TopicIndex, SubtopicIndex: in.SubtopicIndex}
}

func (s *TimerService) Create(userID uint, in CreateTimerInput) (*model.Timer, error) {
	roadmap, err := s.roadmap(userID, in.RoadmapID)
	if err != nil {
		return nil, err
	}
	ref := in.Ref()
	if _, err := ResolveUnit(roadmap, ref); err != nil {
		return nil, err
	}
	unitID, _ := roadmap.UnitID(ref)

	kind := in.Kind
	if kind == "" {
		kind = model.TimerManual
	}
	timer := &model.Timer{
		UserID:              userID,
		RoadmapID:           roadmap.ID,
		NextContentDelivery: s.Now().Add(time.Duration(in.Minutes) * time.Minute),
		UnitID:              unitID,
		ModuleIndex:         ref.ModuleIndex,
		TopicIndex:          ref.TopicIndex,
		SubtopicIndex:       ref.SubtopicIndex,
		Kind:                kind,
		Interval:            in.Minutes,
		Reason:              in.Reason,
	}
	if err := s.Replace(timer); err != nil {
		return nil, err
	}
	return timer, nil
}

type SuggestTimerInput struct {
	RoadmapID     uint `json:"roadmapId" binding:"required"`
	ModuleIndex   int  `json:"moduleIndex" binding:"min=0"`
	TopicIndex    int  `json:"topicIndex" binding:"min=0"`
	SubtopicIndex *int `json:"subtopicIndex" binding:"omitempty,min=0"`
}

type TimerSuggestion struct {
	Minutes  int    `json:"minutes"`
	IsReview bool   `json:"isReview"`
	Reason   string `json:"reason"`
	Source   string `json:"source"`
}

// Suggest proposes a delay for the next lesson based on the latest quiz
// attempt for the unit.
func (s *TimerService) Suggest(ctx context.Context, userID uint, in SuggestTimerInput) (*TimerSuggestion, error) {
	roadmap, err := s.roadmap(userID, in.RoadmapID)
	if err != nil {
		return nil, err
	}
	ref := model.UnitRef{ModuleIndex: in.ModuleIndex, TopicIndex: in.TopicIndex, SubtopicIndex: in.SubtopicIndex}
	unit, err := ResolveUnit(roadmap, ref)
	if err != nil {
		return nil, err
	}

	var profile LearnerProfile
	if user, err := s.UserRepo.FindByID(userID); err == nil {
		profile = ProfileFromUser(user, roadmap.Goal)
	}

	var latest any
	if quiz, err := s.QuizRepo.FindByUnit(roadmap.ID, userID, ref); err == nil {
		if result, err := s.ResultRepo.LatestForQuiz(quiz.ID, userID); err == nil {
			latest = map[string]any{
				"percentageScore":  result.PercentageScore,
				"passed":           result.Passed,
				"conceptsToReview": result.ConceptsToReview,
			}
		}
	}

	plan, err := s.AI.SuggestNextDelivery(ctx, profile, unit, latest)
	if err != nil {
		logger.Log.Info("Using default timer suggestion", zap.Error(err))
		monitoring.AIFallbacks.WithLabelValues("timer").Inc()
		return &TimerSuggestion{
			Minutes: s.Scheduler.Clamp(s.Scheduler.Config().DefaultSuggestMinutes),
			Reason:  "Default learning interval",
			Source:  "default",
		}, nil
	}
	return &TimerSuggestion{
		Minutes:  plan.IntervalMinutes,
		IsReview: plan.IsReview,
		Reason:   plan.Reason,
		Source:   "ai",
	}, nil
}

func (s *TimerService) Active(userID uint) ([]model.Timer, error) {
	return s.TimerRepo.FindActive(userID)
}

type CurrentTimer struct {
	Timer     model.Timer   `json:"timer"`
	Remaining TimeRemaining `json:"timeRemaining"`
}

// Current returns the soonest pending timer, or nil when there is none.
func (s *TimerService) Current(userID uint) (*CurrentTimer, error) {
	timers, err := s.TimerRepo.FindActive(userID)
	if err != nil {
		return nil, err
	}
	if len(timers) == 0 {
		return nil, nil
	}
	return &CurrentTimer{
		Timer:     timers[0],
		Remaining: Remaining(timers[0].NextContentDelivery, s.Now()),
	}, nil
}

func (s *TimerService) History(userID uint) ([]model.Timer, error) {
	return s.TimerRepo.FindDelivered(userID, util.MaxTimerHistory)
}

// NextDelivery is what a learner should study now.
type NextDelivery struct {
	Ready        bool           `json:"ready"`
	Message      string         `json:"message,omitempty"`
	Timer        *model.Timer   `json:"timer,omitempty"`
	RoadmapID    uint           `json:"roadmapId,omitempty"`
	RoadmapTitle string         `json:"roadmapTitle,omitempty"`
	Unit         *NextUnitInfo  `json:"unit,omitempty"`
	Content      *model.Content `json:"content,omitempty"`
	Quiz         *model.Quiz    `json:"quiz,omitempty"`
	IsReview     bool           `json:"isReview"`
}

// Next picks the earliest due timer and resolves the lesson it points
// at. Review timers keep their own unit; other timers follow the
// roadmap's current position.
func (s *TimerService) Next(userID uint) (*NextDelivery, error) {
	now := s.Now()
	timer, err := s.TimerRepo.FindFirstDue(userID, now)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &NextDelivery{Message: "No content ready for delivery"}, nil
	}
	if err != nil {
		return nil, err
	}

	roadmap, err := s.roadmap(userID, timer.RoadmapID)
	if err != nil {
		return nil, err
	}

	ref := model.UnitRef{ModuleIndex: roadmap.CurrentModule, TopicIndex: roadmap.CurrentTopic}
	if timer.IsReview {
		ref = timer.Ref()
		if found, ok := roadmap.FindUnitByID(timer.UnitID); ok {
			ref = found
		}
	}
	unit, err := describeUnit(roadmap, ref)
	if err != nil {
		return nil, err
	}

	next := &NextDelivery{
		Timer:        timer,
		RoadmapID:    roadmap.ID,
		RoadmapTitle: roadmap.Title,
		Unit:         unit,
		IsReview:     timer.IsReview,
	}

	content, err := s.ContentRepo.FindByUnit(roadmap.ID, userID, ref)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		next.Message = "Content needs to be generated"
		return next, nil
	}
	if err != nil {
		return nil, err
	}
	next.Content = content

	if quiz, err := s.QuizRepo.FindByUnit(roadmap.ID, userID, ref); err == nil {
		next.Quiz = quiz
	}

	timer.NotificationSent = true
	timer.NotificationSentAt = &now
	if err := s.TimerRepo.Save(timer); err != nil {
		return nil, err
	}
	next.Ready = true
	return next, nil
}

func (s *TimerService) MarkDelivered(userID, id uint) (*model.Timer, error) {
	timer, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	timer.ContentDelivered = true
	timer.ContentDeliveredAt = &now
	if err := s.TimerRepo.Save(timer); err != nil {
		return nil, err
	}
	return timer, nil
}

// maxSnoozeMinutes matches the longest timer a learner can set.
const maxSnoozeMinutes = 1440

// Snooze postpones the delivery by 1 to maxSnoozeMinutes and re-arms the
// reminder.
func (s *TimerService) Snooze(userID, id uint, minutes int) (*model.Timer, error) {
	if minutes < 1 || minutes > maxSnoozeMinutes {
		return nil, util.ErrInvalidSnooze
	}
	timer, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}
	timer.NextContentDelivery = timer.NextContentDelivery.Add(time.Duration(minutes) * time.Minute)
	timer.NotificationSent = false
	timer.NotificationSentAt = nil
	if err := s.TimerRepo.Save(timer); err != nil {
		return nil, err
	}
	return timer, nil
}

func (s *TimerService) Delete(userID, id uint) error {
	timer, err := s.find(userID, id)
	if err != nil {
		return err
	}
	return s.TimerRepo.Delete(timer)
}

// DispatchDueNotifications raises a reminder for every due timer that has
// not produced one yet and returns how many were sent.
func (s *TimerService) DispatchDueNotifications(ctx context.Context) (int, error) {
	now := s.Now()
	timers, err := s.TimerRepo.FindDueUnnotified(now, reminderBatchSize)
	if err != nil {
		return 0, err
	}

	sent := 0
	for i := range timers {
		timer := &timers[i]
		if err := s.Notifications.Push(ctx, timer.UserID, s.reminderFor(timer)); err != nil {
			logger.Log.Warn("Failed to push reminder", zap.Uint("timerId", timer.ID), zap.Error(err))
			continue
		}

		timer.NotificationSent = true
		timer.NotificationSentAt = &now
		if err := s.TimerRepo.Save(timer); err != nil {
			return sent, err
		}
		sent++
		monitoring.RemindersDispatched.Inc()
	}
	return sent, nil
}

func (s *TimerService) reminderFor(timer *model.Timer) *model.Notification {
	ref := timer.Ref()
	prefix := "Time for your next lesson"
	if timer.IsReview {
		prefix = "Time to review"
	}
	message := prefix
	if roadmap, err := s.RoadmapRepo.FindByIDForUser(timer.RoadmapID, timer.UserID); err == nil {
		if unit, err := ResolveUnit(roadmap, ref); err == nil {
			message = fmt.Sprintf("%s: %s", prefix, unit.Title())
		}
	}

	url := fmt.Sprintf("/roadmaps/%d/learning?module=%d&topic=%d", timer.RoadmapID, ref.ModuleIndex, ref.TopicIndex)
	if ref.SubtopicIndex != nil {
		url += fmt.Sprintf("&subtopic=%d", *ref.SubtopicIndex)
	}

	return &model.Notification{
		Title:         "Learning Reminder",
		Message:       message,
		Type:          model.NotificationTimer,
		RoadmapID:     timer.RoadmapID,
		ModuleIndex:   model.IntPtr(ref.ModuleIndex),
		TopicIndex:    model.IntPtr(ref.TopicIndex),
		SubtopicIndex: ref.SubtopicIndex,
		URL:           url,
	}
}
