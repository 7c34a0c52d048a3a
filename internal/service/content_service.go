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

type ContentService struct {
	ContentRepo *repository.ContentRepository
	RoadmapRepo *repository.RoadmapRepository
	UserRepo    *repository.UserRepository
	AI          *AIService
	Cache       *ContentCache

	// ProbeVideo inspects lesson videos on update. Nil disables probing.
	ProbeVideo func(source string) (*util.VideoInfo, error)
	Now        func() time.Time
}

func NewContentService(
	contentRepo *repository.ContentRepository,
	roadmapRepo *repository.RoadmapRepository,
	userRepo *repository.UserRepository,
	ai *AIService,
	cache *ContentCache,
	probeVideo bool,
) *ContentService {
	s := &ContentService{
		ContentRepo: contentRepo,
		RoadmapRepo: roadmapRepo,
		UserRepo:    userRepo,
		AI:          ai,
		Cache:       cache,
		Now:         time.Now,
	}
	if probeVideo {
		s.ProbeVideo = util.GetVideoInfo
	}
	return s
}

func (s *ContentService) roadmap(userID, roadmapID uint) (*model.Roadmap, error) {
	roadmap, err := s.RoadmapRepo.FindByIDForUser(roadmapID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrRoadmapNotFound
		}
		return nil, err
	}
	return roadmap, nil
}

// Generate returns the lesson for a roadmap unit, creating it with the
// model on first request. created reports whether a new lesson was stored.
func (s *ContentService) Generate(ctx context.Context, userID, roadmapID uint, ref model.UnitRef) (content *model.Content, created bool, err error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, util.ErrUserNotFound
		}
		return nil, false, err
	}
	roadmap, err := s.roadmap(userID, roadmapID)
	if err != nil {
		return nil, false, err
	}
	unit, err := ResolveUnit(roadmap, ref)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.ContentRepo.FindByUnit(roadmapID, userID, ref)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	generated, err := s.AI.GenerateContent(ctx, unit, ProfileFromUser(user, roadmap.Goal))
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", util.ErrAIGeneration, err)
	}

	topic := &roadmap.Modules[ref.ModuleIndex].Topics[ref.TopicIndex]
	content = &model.Content{
		Title:                generated.Title,
		Description:          orDefault(unit.SubtopicDescription, unit.TopicDescription),
		Type:                 model.ContentText,
		TextContent:          generated.Text,
		Tags:                 []string{unit.ModuleTitle, unit.TopicTitle},
		EstimatedTimeMinutes: topic.EstimatedTimeMinutes,
		Difficulty:           model.Difficulty(user.SkillLevel()),
		RoadmapID:            roadmapID,
		ModuleIndex:          ref.ModuleIndex,
		TopicIndex:           ref.TopicIndex,
		SubtopicIndex:        ref.SubtopicIndex,
		UserID:               userID,
		AIGenerated:          generated.AIGenerated,
		WordCount:            generated.WordCount,
		ReadingTimeMinutes:   generated.ReadingTimeMinutes,
	}
	if content.EstimatedTimeMinutes <= 0 {
		content.EstimatedTimeMinutes = generated.ReadingTimeMinutes
	}
	if err := s.ContentRepo.Create(content); err != nil {
		return nil, false, err
	}

	if linkContent(roadmap, ref, &content.ID) {
		if err := s.RoadmapRepo.Save(roadmap); err != nil {
			return nil, false, err
		}
	}
	s.Cache.Set(ctx, content)

	logger.Log.Info("Lesson generated",
		zap.Uint("roadmapId", roadmapID),
		zap.Uint("contentId", content.ID),
		zap.Bool("aiGenerated", content.AIGenerated))
	return content, true, nil
}

// linkContent points the unit at id when nothing is linked yet and
// reports whether the roadmap changed.
func linkContent(roadmap *model.Roadmap, ref model.UnitRef, id *uint) bool {
	topic := &roadmap.Modules[ref.ModuleIndex].Topics[ref.TopicIndex]
	slot := &topic.ContentID
	if ref.SubtopicIndex != nil {
		slot = &topic.Subtopics[*ref.SubtopicIndex].ContentID
	}
	if *slot != nil {
		return false
	}
	*slot = model.UintPtr(*id)
	return true
}

// GetByUnit serves the lesson for a coordinate, cache first.
func (s *ContentService) GetByUnit(ctx context.Context, userID, roadmapID uint, ref model.UnitRef) (*model.Content, error) {
	if cached, ok := s.Cache.Get(ctx, roadmapID, ref); ok && cached.UserID == userID {
		return cached, nil
	}

	content, err := s.ContentRepo.FindByUnit(roadmapID, userID, ref)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}
	s.Cache.Set(ctx, content)
	return content, nil
}

func (s *ContentService) find(userID, id uint) (*model.Content, error) {
	content, err := s.ContentRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrContentNotFound
		}
		return nil, err
	}
	return content, nil
}

// Get returns a lesson and records the view.
func (s *ContentService) Get(userID, id uint) (*model.Content, error) {
	content, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	if err := s.ContentRepo.RecordView(content.ID, now); err != nil {
		return nil, err
	}
	content.ViewCount++
	content.LastViewed = &now
	return content, nil
}

type UpdateContentInput struct {
	Title                *string            `json:"title"`
	Description          *string            `json:"description"`
	Type                 *model.ContentType `json:"type" binding:"omitempty,oneof=text video mixed"`
	TextContent          *string            `json:"textContent"`
	VideoURL             *string            `json:"videoUrl"`
	VideoStartTime       *int               `json:"videoStartTime" binding:"omitempty,min=0"`
	VideoEndTime         *int               `json:"videoEndTime" binding:"omitempty,min=0"`
	Tags                 *[]string          `json:"tags"`
	EstimatedTimeMinutes *int               `json:"estimatedTimeMinutes" binding:"omitempty,min=1"`
	Difficulty           *model.Difficulty  `json:"difficulty" binding:"omitempty,oneof=beginner intermediate advanced"`
}

// Update applies a manual edit. Edited lessons are no longer marked as
// generated.
func (s *ContentService) Update(ctx context.Context, userID, id uint, in UpdateContentInput) (*model.Content, error) {
	content, err := s.find(userID, id)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		content.Title = *in.Title
	}
	if in.Description != nil {
		content.Description = *in.Description
	}
	if in.Type != nil {
		content.Type = *in.Type
	}
	if in.TextContent != nil {
		stats := newGeneratedContent(content.Title, *in.TextContent, false)
		content.TextContent = stats.Text
		content.WordCount = stats.WordCount
		content.ReadingTimeMinutes = stats.ReadingTimeMinutes
	}
	if in.VideoStartTime != nil {
		content.VideoStartTime = in.VideoStartTime
	}
	if in.VideoEndTime != nil {
		content.VideoEndTime = in.VideoEndTime
	}
	if in.VideoURL != nil {
		content.VideoURL = *in.VideoURL
		s.probe(content)
	}
	if in.Tags != nil {
		content.Tags = *in.Tags
	}
	if in.EstimatedTimeMinutes != nil {
		content.EstimatedTimeMinutes = *in.EstimatedTimeMinutes
	}
	if in.Difficulty != nil {
		content.Difficulty = *in.Difficulty
	}
	content.AIGenerated = false

	if err := s.ContentRepo.Save(content); err != nil {
		return nil, err
	}
	s.Cache.Set(ctx, content)
	return content, nil
}

// probe fills the video end time from the media duration when the caller
// did not set one.
func (s *ContentService) probe(content *model.Content) {
	if s.ProbeVideo == nil || content.VideoURL == "" || content.VideoEndTime != nil {
		return
	}
	info, err := s.ProbeVideo(content.VideoURL)
	if err != nil {
		logger.Log.Warn("Video probe failed", zap.String("url", content.VideoURL), zap.Error(err))
		return
	}
	if info.Duration > 0 {
		content.VideoEndTime = model.IntPtr(int(info.Duration))
	}
}

// Delete removes a lesson and unlinks it from its roadmap unit.
func (s *ContentService) Delete(ctx context.Context, userID, id uint) error {
	content, err := s.find(userID, id)
	if err != nil {
		return err
	}

	roadmap, err := s.RoadmapRepo.FindByIDForUser(content.RoadmapID, userID)
	switch {
	case err == nil:
		if unlinkContent(roadmap, content.Ref(), content.ID) {
			if err := s.RoadmapRepo.Save(roadmap); err != nil {
				return err
			}
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return err
	}

	if err := s.ContentRepo.Delete(content); err != nil {
		return err
	}
	s.Cache.Evict(ctx, content.RoadmapID, content.Ref())
	return nil
}

func unlinkContent(roadmap *model.Roadmap, ref model.UnitRef, id uint) bool {
	topic, err := roadmap.Topic(ref.ModuleIndex, ref.TopicIndex)
	if err != nil {
		return false
	}
	slot := &topic.ContentID
	if ref.SubtopicIndex != nil {
		if *ref.SubtopicIndex < 0 || *ref.SubtopicIndex >= len(topic.Subtopics) {
			return false
		}
		slot = &topic.Subtopics[*ref.SubtopicIndex].ContentID
	}
	if *slot == nil || **slot != id {
		return false
	}
	*slot = nil
	return true
}
