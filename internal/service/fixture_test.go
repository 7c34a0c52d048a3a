package service

import (
	"atomic_sensei_backend/internal/config"
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/repository"
	"atomic_sensei_backend/internal/testutil"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// fixture wires every service against SQLite, miniredis and a mock model.
type fixture struct {
	mock  *llm.MockProvider
	redis *miniredis.Miniredis

	users    *repository.UserRepository
	roadmaps *repository.RoadmapRepository
	contents *repository.ContentRepository
	quizzes  *repository.QuizRepository
	results  *repository.QuizResultRepository
	timers   *repository.TimerRepository

	ai            *AIService
	notifications *NotificationService
	cache         *ContentCache
	auth          *AuthService
	user          *UserService
	roadmap       *RoadmapService
	content       *ContentService
	quiz          *QuizService
	timer         *TimerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.DB(t)
	rdb, mr := testutil.Redis(t)
	mock := llm.NewMockProvider()
	clock := func() time.Time { return fixedNow }

	f := &fixture{
		mock:     mock,
		redis:    mr,
		users:    repository.NewUserRepository(db),
		roadmaps: repository.NewRoadmapRepository(db),
		contents: repository.NewContentRepository(db),
		quizzes:  repository.NewQuizRepository(db),
		results:  repository.NewQuizResultRepository(db),
		timers:   repository.NewTimerRepository(db),
	}

	scheduler := NewIntervalScheduler(defaultSchedule())
	f.ai = NewAIService(mock, scheduler, config.AIConfig{TimeoutSeconds: 5, FallbackContent: true})
	f.notifications = NewNotificationService(rdb, 100)
	f.cache = NewContentCache(rdb, time.Hour)
	storage := NewStorageService(&config.StorageConfig{Type: "local", LocalPath: t.TempDir()})

	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour}}
	f.auth = NewAuthService(f.users, cfg)
	f.auth.Now = clock
	f.user = NewUserService(f.users)

	f.roadmap = NewRoadmapService(f.roadmaps, f.users, f.contents, f.ai, storage, f.cache)
	f.roadmap.Now = clock
	f.content = NewContentService(f.contents, f.roadmaps, f.users, f.ai, f.cache, false)
	f.content.Now = clock
	f.timer = NewTimerService(f.timers, f.roadmaps, f.contents, f.quizzes, f.results, f.users, f.ai, f.notifications, scheduler)
	f.timer.Now = clock
	f.quiz = NewQuizService(f.quizzes, f.results, f.contents, f.roadmaps, f.users, f.ai, f.timer, f.notifications)
	f.quiz.Now = clock
	return f
}

func (f *fixture) seedUser(t *testing.T) *model.User {
	t.Helper()
	user := &model.User{
		Name:                "Ada",
		Email:               "ada@example.com",
		Password:            "x",
		EducationLevel:      model.EducationUndergraduate,
		LearningPreferences: model.DefaultLearningPreferences(),
		LastActive:          fixedNow,
	}
	require.NoError(t, f.users.Create(user))
	return user
}

// seedRoadmap stores the two module roadmap used across service tests.
// Module 0 holds "Types" (two subtopics) and "Loops"; module 1 holds
// "Goroutines".
func (f *fixture) seedRoadmap(t *testing.T, userID uint) *model.Roadmap {
	t.Helper()
	r := &model.Roadmap{
		UserID: userID,
		Title:  "Go",
		Goal:   "learn go",
		Active: true,
		Modules: []model.Module{
			{
				Title: "Basics",
				Order: 1,
				Topics: []model.Topic{
					{Title: "Types", Order: 1, EstimatedTimeMinutes: 15, Subtopics: []model.Subtopic{{Title: "ints"}, {Title: "strings"}}},
					{Title: "Loops", Order: 2, EstimatedTimeMinutes: 10, Subtopics: []model.Subtopic{}},
				},
			},
			{
				Title:  "Concurrency",
				Order:  2,
				Topics: []model.Topic{{Title: "Goroutines", Order: 1, EstimatedTimeMinutes: 20, Subtopics: []model.Subtopic{}}},
			},
		},
	}
	r.AssignIDs()
	require.NoError(t, f.roadmaps.Create(r))
	return r
}

func (f *fixture) seedContent(t *testing.T, userID uint, roadmap *model.Roadmap, ref model.UnitRef) *model.Content {
	t.Helper()
	content := &model.Content{
		Title:         "Lesson",
		Type:          model.ContentText,
		TextContent:   "Loops repeat work.",
		RoadmapID:     roadmap.ID,
		ModuleIndex:   ref.ModuleIndex,
		TopicIndex:    ref.TopicIndex,
		SubtopicIndex: ref.SubtopicIndex,
		UserID:        userID,
	}
	require.NoError(t, f.contents.Create(content))
	return content
}
