package service

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/internal/testutil"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentCacheKey(t *testing.T) {
	assert.Equal(t, "content:4_1_2", ContentCacheKey(4, model.UnitRef{ModuleIndex: 1, TopicIndex: 2}))
	assert.Equal(t, "content:4_1_2_0", ContentCacheKey(4, model.UnitRef{ModuleIndex: 1, TopicIndex: 2, SubtopicIndex: model.IntPtr(0)}))
}

func TestContentCacheRoundTrip(t *testing.T) {
	rdb, mr := testutil.Redis(t)
	cache := NewContentCache(rdb, time.Hour)
	ctx := context.Background()

	content := &model.Content{Title: "Loops", RoadmapID: 4, ModuleIndex: 0, TopicIndex: 1, TextContent: "for {}"}
	content.ID = 9
	cache.Set(ctx, content)

	ttl := mr.TTL("content:4_0_1")
	assert.Equal(t, time.Hour, ttl)

	got, ok := cache.Get(ctx, 4, content.Ref())
	require.True(t, ok)
	assert.Equal(t, uint(9), got.ID)
	assert.Equal(t, "for {}", got.TextContent)

	cache.Evict(ctx, 4, content.Ref())
	_, ok = cache.Get(ctx, 4, content.Ref())
	assert.False(t, ok)
}

func TestContentCacheDropsCorruptEntries(t *testing.T) {
	rdb, mr := testutil.Redis(t)
	cache := NewContentCache(rdb, time.Hour)

	require.NoError(t, mr.Set("content:1_0_0", "{not json"))
	_, ok := cache.Get(context.Background(), 1, model.UnitRef{})
	assert.False(t, ok)
	assert.False(t, mr.Exists("content:1_0_0"))
}
