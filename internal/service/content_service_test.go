package service

import (
	"atomic_sensei_backend/internal/llm"
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/util"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentGenerateLinksAndCaches(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	ref := model.UnitRef{ModuleIndex: 0, TopicIndex: 0, SubtopicIndex: model.IntPtr(1)}
	f.mock.AddResponse(llm.Text(strings.Repeat("rune ", 250)))
	ctx := context.Background()

	content, created, err := f.content.Generate(ctx, user.ID, roadmap.ID, ref)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "strings", content.Title)
	assert.True(t, content.AIGenerated)
	assert.Equal(t, 250, content.WordCount)
	assert.Equal(t, 2, content.ReadingTimeMinutes)
	assert.Equal(t, 15, content.EstimatedTimeMinutes)
	assert.Equal(t, model.DifficultyIntermediate, content.Difficulty)

	stored, err := f.roadmap.Get(user.ID, roadmap.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.Modules[0].Topics[0].Subtopics[1].ContentID)
	assert.Equal(t, content.ID, *stored.Modules[0].Topics[0].Subtopics[1].ContentID)
	assert.Nil(t, stored.Modules[0].Topics[0].ContentID)
	assert.True(t, f.redis.Exists(ContentCacheKey(roadmap.ID, ref)))

	again, created, err := f.content.Generate(ctx, user.ID, roadmap.ID, ref)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, content.ID, again.ID)
	assert.Equal(t, 1, f.mock.CallCount())
}

func TestContentGenerateFallsBackToPlaceholder(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)

	content, created, err := f.content.Generate(context.Background(), user.ID, roadmap.ID, model.UnitRef{ModuleIndex: 1, TopicIndex: 0})
	require.NoError(t, err)
	assert.True(t, created)
	assert.False(t, content.AIGenerated)
	assert.Contains(t, content.TextContent, "# Goroutines")

	stored, err := f.contents.FindByIDForUser(content.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.AIGenerated)
}

func TestContentGenerateUnknownUnit(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	ctx := context.Background()

	_, _, err := f.content.Generate(ctx, user.ID, roadmap.ID, model.UnitRef{ModuleIndex: 5})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
	_, _, err = f.content.Generate(ctx, user.ID, roadmap.ID, model.UnitRef{ModuleIndex: 0, TopicIndex: 9})
	assert.ErrorIs(t, err, util.ErrTopicNotFound)
	_, _, err = f.content.Generate(ctx, user.ID, roadmap.ID, model.UnitRef{ModuleIndex: 0, TopicIndex: 1, SubtopicIndex: model.IntPtr(0)})
	assert.ErrorIs(t, err, util.ErrSubtopicNotFound)
	_, _, err = f.content.Generate(ctx, user.ID, roadmap.ID+1, model.UnitRef{})
	assert.ErrorIs(t, err, util.ErrRoadmapNotFound)
	assert.Equal(t, 0, f.mock.CallCount())
}

func TestContentGetByUnit(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	ref := model.UnitRef{ModuleIndex: 0, TopicIndex: 1}
	ctx := context.Background()

	_, err := f.content.GetByUnit(ctx, user.ID, roadmap.ID, ref)
	assert.ErrorIs(t, err, util.ErrContentNotFound)

	seeded := f.seedContent(t, user.ID, roadmap, ref)
	found, err := f.content.GetByUnit(ctx, user.ID, roadmap.ID, ref)
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, found.ID)
	assert.True(t, f.redis.Exists(ContentCacheKey(roadmap.ID, ref)))

	_, err = f.content.GetByUnit(ctx, user.ID+1, roadmap.ID, ref)
	assert.ErrorIs(t, err, util.ErrContentNotFound)
}

func TestContentGetRecordsView(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	seeded := f.seedContent(t, user.ID, roadmap, model.UnitRef{ModuleIndex: 0, TopicIndex: 1})

	_, err := f.content.Get(user.ID, seeded.ID)
	require.NoError(t, err)
	content, err := f.content.Get(user.ID, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, content.ViewCount)

	stored, err := f.contents.FindByIDForUser(seeded.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.ViewCount)
	require.NotNil(t, stored.LastViewed)
}

func TestContentUpdate(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	seeded := f.seedContent(t, user.ID, roadmap, model.UnitRef{ModuleIndex: 0, TopicIndex: 1})
	seeded.AIGenerated = true
	require.NoError(t, f.contents.Save(seeded))

	var probed string
	f.content.ProbeVideo = func(source string) (*util.VideoInfo, error) {
		probed = source
		return &util.VideoInfo{Duration: 95.4}, nil
	}

	text := "for range over integers"
	video := "https://cdn.example.com/loops.mp4"
	updated, err := f.content.Update(context.Background(), user.ID, seeded.ID, UpdateContentInput{
		TextContent: &text,
		VideoURL:    &video,
	})
	require.NoError(t, err)
	assert.False(t, updated.AIGenerated)
	assert.Equal(t, 4, updated.WordCount)
	assert.Equal(t, 1, updated.ReadingTimeMinutes)
	assert.Equal(t, video, probed)
	require.NotNil(t, updated.VideoEndTime)
	assert.Equal(t, 95, *updated.VideoEndTime)

	stored, err := f.contents.FindByIDForUser(seeded.ID, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.AIGenerated)
	assert.Equal(t, text, stored.TextContent)
}

func TestContentDeleteUnlinks(t *testing.T) {
	f := newFixture(t)
	user := f.seedUser(t)
	roadmap := f.seedRoadmap(t, user.ID)
	ref := model.UnitRef{ModuleIndex: 0, TopicIndex: 1}
	f.mock.AddResponse(llm.Text("loops lesson"))
	ctx := context.Background()

	content, _, err := f.content.Generate(ctx, user.ID, roadmap.ID, ref)
	require.NoError(t, err)

	require.NoError(t, f.content.Delete(ctx, user.ID, content.ID))

	stored, err := f.roadmap.Get(user.ID, roadmap.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Modules[0].Topics[1].ContentID)
	assert.False(t, f.redis.Exists(ContentCacheKey(roadmap.ID, ref)))

	assert.ErrorIs(t, f.content.Delete(ctx, user.ID, content.ID), util.ErrContentNotFound)
}
