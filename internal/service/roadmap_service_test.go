package service

import (
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/util"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoadmapCreate(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	f.mock.AddResponse(llm.Text(roadmapJSON))

	roadmap, err := f.roadmap.Create(context.Background(), user.ID, "learn go")
	require.NoError(t, err)
	assert.Equal(t, "Go in a month", roadmap.Title)
	assert.Equal(t, "learn go", roadmap.Goal)
	assert.True(t, roadmap.Active)

	stored, err := f.roadmap.Get(user.ID, roadmap.ID)
	require.NoError(t, err)
	require.Len(t, stored.Modules, 1)
	assert.NotEmpty(t, stored.Modules[0].ID)
	assert.NotEmpty(t, stored.Modules[0].Topics[0].Subtopics[0].ID)
}

func TestRoadmapCreateErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.roadmap.Create(context.Background(), 42, "learn go")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	user := f.seedUser(t)
	_, err = f.roadmap.Create(context.Background(), user.ID, "learn go")
	assert.ErrorIs(t, err, util.ErrAIGeneration)
}

func TestRoadmapOwnership(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	_, err := f.roadmap.Get(user.ID+1, roadmap.ID)
	assert.ErrorIs(t, err, util.ErrRoadmapNotFound)

	list, err := f.roadmap.List(user.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestRoadmapProgressUpdates(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	updated, err := f.roadmap.UpdateTopicProgress(user.ID, roadmap.ID, 0, 1, true)
	require.NoError(t, err)
	assert.Equal(t, 33, updated.Progress)

	_, err = f.roadmap.UpdateSubtopicProgress(user.ID, roadmap.ID, 0, 0, 0, true)
	require.NoError(t, err)
	updated, err = f.roadmap.UpdateSubtopicProgress(user.ID, roadmap.ID, 0, 0, 1, true)
	require.NoError(t, err)
	assert.True(t, updated.Modules[0].Completed)
	assert.Equal(t, 67, updated.Progress)

	summary, err := f.roadmap.Summary(user.ID, roadmap.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalTopics)
	assert.Equal(t, 2, summary.CompletedTopics)
	assert.Equal(t, 1, summary.CompletedModules)
	assert.Equal(t, 0, summary.CurrentModule)
	assert.Equal(t, 1, summary.CurrentTopic)
	require.Len(t, summary.Modules, 2)
	assert.Equal(t, 2, summary.Modules[0].CompletedTopics)

	_, err = f.roadmap.UpdateTopicProgress(user.ID, roadmap.ID, 4, 0, true)
	assert.ErrorIs(t, err, model.ErrInvalidIndex)
}

func TestRoadmapNextUnit(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	next, err := f.roadmap.NextUnit(user.ID, roadmap.ID, nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, next.TopicIndex)
	assert.Equal(t, "Loops", next.TopicTitle)
	assert.Nil(t, next.SubtopicIndex)

	next, err = f.roadmap.NextUnit(user.ID, roadmap.ID, model.IntPtr(0), model.IntPtr(0), model.IntPtr(0))
	require.NoError(t, err)
	assert.Equal(t, "strings", next.SubtopicTitle)
	assert.Equal(t, roadmap.Modules[0].Topics[0].Subtopics[1].ID, next.UnitID)
}

func TestRoadmapExport(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	f.seedContent(t, user.ID, roadmap, model.UnitRef{ModuleIndex: 0, TopicIndex: 1})

	result, err := f.roadmap.Export(context.Background(), user.ID, roadmap.ID, "")
	require.NoError(t, err)
	assert.Equal(t, util.ExportMarkdown, result.Format)
	key := fmt.Sprintf("exports/%d/roadmap-%d-%d.md", user.ID, roadmap.ID, fixedNow.Unix())
	assert.Equal(t, key, result.Key)
	assert.Equal(t, "/uploads/"+key, result.URL)

	root := f.roadmap.Storage.Store.(*LocalObjectStore).Root
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(key)))
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Go")
	assert.Contains(t, string(data), "- [ ] Loops (10 min), lesson: Lesson")
	assert.Contains(t, string(data), "  - [ ] ints")

	yamlResult, err := f.roadmap.Export(context.Background(), user.ID, roadmap.ID, "yaml")
	require.NoError(t, err)
	assert.Equal(t, ".yaml", filepath.Ext(yamlResult.Key))

	_, err = f.roadmap.Export(context.Background(), user.ID, roadmap.ID, "pdf")
	assert.ErrorIs(t, err, util.ErrUnsupportedFormat)
}

func TestRoadmapDeleteRemovesGeneratedData(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	ref := model.UnitRef{ModuleIndex: 0, TopicIndex: 1}
	content := f.seedContent(t, user.ID, roadmap, ref)
	f.cache.Set(context.Background(), content)
	require.NoError(t, f.timers.Create(&model.Timer{UserID: user.ID, RoadmapID: roadmap.ID, NextContentDelivery: fixedNow, Active: true}))

	require.NoError(t, f.roadmap.Delete(context.Background(), user.ID, roadmap.ID))

	_, err := f.roadmap.Get(user.ID, roadmap.ID)
	assert.ErrorIs(t, err, util.ErrRoadmapNotFound)
	_, err = f.content.Get(user.ID, content.ID)
	assert.ErrorIs(t, err, util.ErrContentNotFound)
	assert.False(t, f.redis.Exists(ContentCacheKey(roadmap.ID, ref)))

	active, err := f.timer.Active(user.ID)
	require.NoError(t, err)
	assert.Empty(t, active)
}
