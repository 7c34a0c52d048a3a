package service

import (
	"atomic_sensei_backend/internal/model"
	"atomic_sensei_backend/pkg/logger"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const contentCacheKeyPrefix = "content:"

// ContentCache keeps generated lessons in Redis keyed by roadmap
// coordinate. Cache failures are logged and otherwise ignored.
type ContentCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewContentCache(rdb *redis.Client, ttl time.Duration) *ContentCache {
	return &ContentCache{Redis: rdb, TTL: ttl}
}

func ContentCacheKey(roadmapID uint, ref model.UnitRef) string {
	key := fmt.Sprintf("%s%d_%d_%d", contentCacheKeyPrefix, roadmapID, ref.ModuleIndex, ref.TopicIndex)
	if ref.SubtopicIndex != nil {
		key += fmt.Sprintf("_%d", *ref.SubtopicIndex)
	}
	return key
}

func (c *ContentCache) Get(ctx context.Context, roadmapID uint, ref model.UnitRef) (*model.Content, bool) {
	val, err := c.Redis.Get(ctx, ContentCacheKey(roadmapID, ref)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Log.Warn("Content cache read failed", zap.Error(err))
		return nil, false
	}

	var content model.Content
	if err := json.Unmarshal(val, &content); err != nil {
		logger.Log.Warn("Dropping corrupt content cache entry", zap.Error(err))
		c.Redis.Del(ctx, ContentCacheKey(roadmapID, ref))
		return nil, false
	}
	return &content, true
}

func (c *ContentCache) Set(ctx context.Context, content *model.Content) {
	data, err := json.Marshal(content)
	if err != nil {
		logger.Log.Warn("Content cache encode failed", zap.Error(err))
		return
	}
	if err := c.Redis.Set(ctx, ContentCacheKey(content.RoadmapID, content.Ref()), data, c.TTL).Err(); err != nil {
		logger.Log.Warn("Content cache write failed", zap.Error(err))
	}
}

func (c *ContentCache) Evict(ctx context.Context, roadmapID uint, ref model.UnitRef) {
	if err := c.Redis.Del(ctx, ContentCacheKey(roadmapID, ref)).Err(); err != nil {
		logger.Log.Warn("Content cache evict failed", zap.Error(err))
	}
}
