package repository

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedRoadmap(t *testing.T, db *gorm.DB, userID uint) *model.Roadmap {
	t.Helper()
	roadmap := &model.Roadmap{
		UserID: userID,
		Title:  "Go",
		Goal:   "learn go",
		Modules: []model.Module{{
			Title:  "Basics",
			Topics: []model.Topic{{Title: "Types", Subtopics: []model.Subtopic{{Title: "ints"}}}},
		}},
	}
	roadmap.AssignIDs()
	require.NoError(t, NewRoadmapRepository(db).Create(roadmap))
	return roadmap
}

func TestUserRepositoryFindByEmail(t *testing.T) {
	db := testutil.DB(t)
	repo := NewUserRepository(db)

	user := &model.User{Name: "Ada", Email: "ada@example.com", Password: "hash"}
	require.NoError(t, repo.Create(user))

	found, err := repo.FindByEmail("ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
	assert.Equal(t, model.ContentMixed, found.LearningPreferences.PreferredContentType)

	_, err = repo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.Error(t, repo.Create(&model.User{Name: "Dup", Email: "ada@example.com", Password: "x"}))
}

func TestRoadmapRepositoryIsOwnerScoped(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRoadmapRepository(db)
	roadmap := seedRoadmap(t, db, 1)

	found, err := repo.FindByIDForUser(roadmap.ID, 1)
	require.NoError(t, err)
	require.Len(t, found.Modules, 1)
	assert.Equal(t, roadmap.Modules[0].Topics[0].ID, found.Modules[0].Topics[0].ID)

	_, err = repo.FindByIDForUser(roadmap.ID, 2)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRoadmapRepositoryListsNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	repo := NewRoadmapRepository(db)

	older := seedRoadmap(t, db, 1)
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)
	newer := seedRoadmap(t, db, 1)
	seedRoadmap(t, db, 2)

	roadmaps, err := repo.FindByUser(1)
	require.NoError(t, err)
	require.Len(t, roadmaps, 2)
	assert.Equal(t, newer.ID, roadmaps[0].ID)
	assert.Equal(t, older.ID, roadmaps[1].ID)
}

func TestRoadmapDeleteCascades(t *testing.T) {
	db := testutil.DB(t)
	roadmap := seedRoadmap(t, db, 1)

	require.NoError(t, NewContentRepository(db).Create(&model.Content{Title: "c", RoadmapID: roadmap.ID, UserID: 1}))
	require.NoError(t, NewQuizRepository(db).Create(&model.Quiz{Title: "q", RoadmapID: roadmap.ID, UserID: 1}))
	require.NoError(t, NewQuizResultRepository(db).Create(&model.QuizResult{QuizID: 1, RoadmapID: roadmap.ID, UserID: 1}))
	require.NoError(t, NewTimerRepository(db).Create(&model.Timer{RoadmapID: roadmap.ID, UserID: 1, NextContentDelivery: time.Now()}))

	require.NoError(t, NewRoadmapRepository(db).Delete(roadmap))

	for _, m := range []any{&model.Roadmap{}, &model.Content{}, &model.Quiz{}, &model.QuizResult{}, &model.Timer{}} {
		var count int64
		require.NoError(t, db.Model(m).Count(&count).Error)
		assert.Zero(t, count)
	}
}

func TestContentFindByUnitDistinguishesSubtopics(t *testing.T) {
	db := testutil.DB(t)
	repo := NewContentRepository(db)

	topicLesson := &model.Content{Title: "topic", RoadmapID: 1, UserID: 1}
	subLesson := &model.Content{Title: "sub", RoadmapID: 1, UserID: 1, SubtopicIndex: model.IntPtr(0)}
	require.NoError(t, repo.Create(topicLesson))
	require.NoError(t, repo.Create(subLesson))

	found, err := repo.FindByUnit(1, 1, model.UnitRef{})
	require.NoError(t, err)
	assert.Equal(t, topicLesson.ID, found.ID)

	found, err = repo.FindByUnit(1, 1, model.UnitRef{SubtopicIndex: model.IntPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, subLesson.ID, found.ID)

	_, err = repo.FindByUnit(1, 2, model.UnitRef{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestContentRecordView(t *testing.T) {
	db := testutil.DB(t)
	repo := NewContentRepository(db)

	content := &model.Content{Title: "c", RoadmapID: 1, UserID: 1}
	require.NoError(t, repo.Create(content))
	require.NoError(t, repo.RecordView(content.ID, time.Now()))
	require.NoError(t, repo.RecordView(content.ID, time.Now()))

	found, err := repo.FindByIDForUser(content.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, found.ViewCount)
	assert.NotNil(t, found.LastViewed)
}

func TestQuizResultsNewestFirst(t *testing.T) {
	db := testutil.DB(t)
	repo := NewQuizResultRepository(db)

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Create(&model.QuizResult{QuizID: 3, RoadmapID: 1, UserID: 1, PercentageScore: 40, CompletedAt: base}))
	require.NoError(t, repo.Create(&model.QuizResult{QuizID: 3, RoadmapID: 1, UserID: 1, PercentageScore: 90, CompletedAt: base.Add(time.Hour)}))

	results, err := repo.FindByQuiz(3, 1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 90, results[0].PercentageScore)

	latest, err := repo.LatestForQuiz(3, 1)
	require.NoError(t, err)
	assert.Equal(t, 90, latest.PercentageScore)
}

func TestTimerRepositoryPendingQueries(t *testing.T) {
	db := testutil.DB(t)
	repo := NewTimerRepository(db)
	now := time.Now()

	due := &model.Timer{UserID: 1, RoadmapID: 1, NextContentDelivery: now.Add(-time.Minute), Active: true}
	later := &model.Timer{UserID: 1, RoadmapID: 1, NextContentDelivery: now.Add(time.Hour), Active: true}
	require.NoError(t, repo.Create(later))
	require.NoError(t, repo.Create(due))

	active, err := repo.FindActive(1)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, due.ID, active[0].ID)

	first, err := repo.FindFirstDue(1, now)
	require.NoError(t, err)
	assert.Equal(t, due.ID, first.ID)

	unnotified, err := repo.FindDueUnnotified(now, 10)
	require.NoError(t, err)
	require.Len(t, unnotified, 1)

	require.NoError(t, repo.DeactivatePending(1, 1))
	active, err = repo.FindActive(1)
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestTimerRepositoryHistory(t *testing.T) {
	db := testutil.DB(t)
	repo := NewTimerRepository(db)
	now := time.Now()

	for i := 0; i < 3; i++ {
		delivered := now.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(&model.Timer{
			UserID:              1,
			RoadmapID:           1,
			NextContentDelivery: delivered,
			ContentDelivered:    true,
			ContentDeliveredAt:  &delivered,
		}))
	}

	history, err := repo.FindDelivered(1, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].ContentDeliveredAt.After(*history[1].ContentDeliveredAt))
}
