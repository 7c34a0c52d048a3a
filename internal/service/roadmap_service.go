package service

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/repository"
	"atomic_sensei_backend/internal/util"
	"atomic_sensei_backend/pkg/logger"
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RoadmapService struct {
	RoadmapRepo *repository.RoadmapRepository
	UserRepo    *repository.UserRepository
	ContentRepo *repository.ContentRepository
	AI          *AIService
	Storage     *StorageService
	Cache       *ContentCache
	Now         func() time.Time
}

func NewRoadmapService(
	roadmapRepo *repository.RoadmapRepository,
	userRepo *repository.UserRepository,
	contentRepo *repository.ContentRepository,
	ai *AIService,
	storage *StorageService,
	cache *ContentCache,
) *RoadmapService {
	return &RoadmapService{
		RoadmapRepo: roadmapRepo,
		UserRepo:    userRepo,
		ContentRepo: contentRepo,
		AI:          ai,
		Storage:     storage,
		Cache:       cache,
		Now:         time.Now,
	}
}

// Create asks the model for a curriculum and stores it for the user.
func (s *RoadmapService) Create(ctx context.Context, userID uint, goal string) (*model.Roadmap, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	draft, err := s.AI.GenerateRoadmap(ctx, ProfileFromUser(user, goal))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrAIGeneration, err)
	}

	roadmap := &model.Roadmap{
		UserID:      userID,
		Title:       draft.Title,
		Description: draft.Description,
		Goal:        goal,
		Modules:     draft.Modules,
		Active:      true,
	}
	roadmap.AssignIDs()

	if err := s.RoadmapRepo.Create(roadmap); err != nil {
		return nil, err
	}
	logger.Log.Info("Roadmap created",
		zap.Uint("userId", userID),
		zap.Uint("roadmapId", roadmap.ID),
		zap.Int("modules", len(roadmap.Modules)))
	return roadmap, nil
}

func (s *RoadmapService) List(userID uint) ([]model.Roadmap, error) {
	return s.RoadmapRepo.FindByUser(userID)
}

func (s *RoadmapService) Get(userID, id uint) (*model.Roadmap, error) {
	roadmap, err := s.RoadmapRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoadmapNotFound
		}
		return nil, err
	}
	return roadmap, nil
}

func (s *RoadmapService) UpdateTopicProgress(userID, id uint, m, t int, completed bool) (*model.Roadmap, error) {
	roadmap, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := roadmap.SetTopicCompleted(m, t, completed, s.Now()); err != nil {
		return nil, err
	}
	if err := s.RoadmapRepo.Save(roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

func (s *RoadmapService) UpdateSubtopicProgress(userID, id uint, m, t, sub int, completed bool) (*model.Roadmap, error) {
	roadmap, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}
	if err := roadmap.SetSubtopicCompleted(m, t, sub, completed, s.Now()); err != nil {
		return nil, err
	}
	if err := s.RoadmapRepo.Save(roadmap); err != nil {
		return nil, err
	}
	return roadmap, nil
}

type ModuleProgress struct {
	Title           string `json:"title"`
	Completed       bool   `json:"completed"`
	TotalTopics     int    `json:"totalTopics"`
	CompletedTopics int    `json:"completedTopics"`
}

type ProgressSummary struct {
	Progress         int              `json:"progress"`
	TotalTopics      int              `json:"totalTopics"`
	CompletedTopics  int              `json:"completedTopics"`
	TotalModules     int              `json:"totalModules"`
	CompletedModules int              `json:"completedModules"`
	CurrentModule    int              `json:"currentModule"`
	CurrentTopic     int              `json:"currentTopic"`
	CompletedAt      *time.Time       `json:"completedAt,omitempty"`
	Modules          []ModuleProgress `json:"modules"`
}

func (s *RoadmapService) Summary(userID, id uint) (*ProgressSummary, error) {
	roadmap, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	summary := &ProgressSummary{
		Progress:        roadmap.Progress,
		TotalTopics:     roadmap.TotalTopics(),
		CompletedTopics: roadmap.CompletedTopics(),
		TotalModules:    len(roadmap.Modules),
		CurrentModule:   roadmap.CurrentModule,
		CurrentTopic:    roadmap.CurrentTopic,
		CompletedAt:     roadmap.CompletedAt,
		Modules:         make([]ModuleProgress, len(roadmap.Modules)),
	}
	for i, module := range roadmap.Modules {
		done := 0
		for _, topic := range module.Topics {
			if topic.Completed {
				done++
			}
		}
		if module.Completed {
			summary.CompletedModules++
		}
		summary.Modules[i] = ModuleProgress{
			Title:           module.Title,
			Completed:       module.Completed,
			TotalTopics:     len(module.Topics),
			CompletedTopics: done,
		}
	}
	return summary, nil
}

type NextUnitInfo struct {
	model.UnitRef
	UnitID        string `json:"unitId"`
	ModuleTitle   string `json:"moduleTitle"`
	TopicTitle    string `json:"topicTitle"`
	SubtopicTitle string `json:"subtopicTitle,omitempty"`
}

// NextUnit resolves the unit that follows (m, t, sub). Without an explicit
// coordinate the roadmap's current pointer is used.
func (s *RoadmapService) NextUnit(userID, id uint, m, t *int, sub *int) (*NextUnitInfo, error) {
	roadmap, err := s.Get(userID, id)
	if err != nil {
		return nil, err
	}

	fromModule, fromTopic := roadmap.CurrentModule, roadmap.CurrentTopic
	if m != nil && t != nil {
		fromModule, fromTopic = *m, *t
	}

	ref, err := roadmap.NextUnit(fromModule, fromTopic, sub)
	if err != nil {
		return nil, err
	}
	return describeUnit(roadmap, ref)
}

func describeUnit(roadmap *model.Roadmap, ref model.UnitRef) (*NextUnitInfo, error) {
	unit, err := ResolveUnit(roadmap, ref)
	if err != nil {
		return nil, err
	}
	unitID, err := roadmap.UnitID(ref)
	if err != nil {
		return nil, err
	}
	return &NextUnitInfo{
		UnitRef:       ref,
		UnitID:        unitID,
		ModuleTitle:   unit.ModuleTitle,
		TopicTitle:    unit.TopicTitle,
		SubtopicTitle: unit.SubtopicTitle,
	}, nil
}

// Delete removes the roadmap and everything generated for it.
func (s *RoadmapService) Delete(ctx context.Context, userID, id uint) error {
	roadmap, err := s.Get(userID, id)
	if err != nil {
		return err
	}

	contents, err := s.ContentRepo.ListByRoadmap(roadmap.ID, userID)
	if err != nil {
		return err
	}
	if err := s.RoadmapRepo.Delete(roadmap); err != nil {
		return err
	}
	for _, c := range contents {
		s.Cache.Evict(ctx, roadmap.ID, c.Ref())
	}
	return nil
}

// ResolveUnit looks up the titles along ref, reporting which level is
// missing.
func ResolveUnit(roadmap *model.Roadmap, ref model.UnitRef) (UnitContext, error) {
	module, err := roadmap.Module(ref.ModuleIndex)
	if err != nil {
		return UnitContext{}, util.ErrModuleNotFound
	}
	topic, err := roadmap.Topic(ref.ModuleIndex, ref.TopicIndex)
	if err != nil {
		return UnitContext{}, util.ErrTopicNotFound
	}

	unit := UnitContext{
		RoadmapTitle:      roadmap.Title,
		RoadmapGoal:       roadmap.Goal,
		ModuleTitle:       module.Title,
		ModuleDescription: module.Description,
		TopicTitle:        topic.Title,
		TopicDescription:  topic.Description,
	}
	if ref.SubtopicIndex != nil {
		subtopic, err := roadmap.Subtopic(ref.ModuleIndex, ref.TopicIndex, *ref.SubtopicIndex)
		if err != nil {
			return UnitContext{}, util.ErrSubtopicNotFound
		}
		unit.SubtopicTitle = subtopic.Title
		unit.SubtopicDescription = subtopic.Description
	}
	return unit, nil
}
