package service

import (
	"atomic_sensei_backend/internal/model"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	notificationKeyPrefix = "notifications:"
	markReadAttempts      = 10
)

// NotificationService stores each user's notifications as a capped Redis
// list, newest first.
type NotificationService struct {
	Redis    *redis.Client
	MaxItems int
}

func NewNotificationService(rdb *redis.Client, maxItems int) *NotificationService {
	if maxItems <= 0 {
		maxItems = 100
	}
	return &NotificationService{Redis: rdb, MaxItems: maxItems}
}

func notificationKey(userID uint) string {
	return fmt.Sprintf("%s%d", notificationKeyPrefix, userID)
}

// Push stores n for userID. ID and Timestamp are filled in when empty.
func (s *NotificationService) Push(ctx context.Context, userID uint, n *model.Notification) error {
	if n.Timestamp.IsZero() {
		n.Timestamp = time.Now()
	}
	if n.ID == 0 {
		n.ID = n.Timestamp.UnixMilli()
		if head, err := s.head(ctx, userID); err == nil && head.ID >= n.ID {
			n.ID = head.ID + 1
		}
	}

	data, err := json.Marshal(n)
	if err != nil {
		return err
	}

	key := notificationKey(userID)
	pipe := s.Redis.TxPipeline()
	pipe.LPush(ctx, key, data)
	pipe.LTrim(ctx, key, 0, int64(s.MaxItems-1))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *NotificationService) head(ctx context.Context, userID uint) (*model.Notification, error) {
	val, err := s.Redis.LIndex(ctx, notificationKey(userID), 0).Bytes()
	if err != nil {
		return nil, err
	}
	var n model.Notification
	if err := json.Unmarshal(val, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *NotificationService) List(ctx context.Context, userID uint) ([]model.Notification, error) {
	vals, err := s.Redis.LRange(ctx, notificationKey(userID), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	notifications := make([]model.Notification, 0, len(vals))
	for _, v := range vals {
		var n model.Notification
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			continue
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int, error) {
	notifications, err := s.List(ctx, userID)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, n := range notifications {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// beforeMarkReadWrite is swapped in tests.
var beforeMarkReadWrite = func() {}

// MarkRead flags one notification. It reports false when id is unknown.
// The list is watched so a concurrent push cannot shift the index between
// the read and the write.
func (s *NotificationService) MarkRead(ctx context.Context, userID uint, id int64) (bool, error) {
	key := notificationKey(userID)
	var found bool
	markRead := func(tx *redis.Tx) error {
		found = false
		vals, err := tx.LRange(ctx, key, 0, -1).Result()
		if err != nil {
			return err
		}
		for i, v := range vals {
			var n model.Notification
			if err := json.Unmarshal([]byte(v), &n); err != nil || n.ID != id {
				continue
			}
			found = true
			if n.Read {
				return nil
			}
			n.Read = true
			beforeMarkReadWrite()
			data, err := json.Marshal(n)
			if err != nil {
				return err
			}
			_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
				pipe.LSet(ctx, key, int64(i), data)
				return nil
			})
			return err
		}
		return nil
	}

	for attempt := 0; attempt < markReadAttempts; attempt++ {
		err := s.Redis.Watch(ctx, markRead, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return found, err
	}
	return false, fmt.Errorf("mark notification %d read: %w", id, redis.TxFailedErr)
}

func (s *NotificationService) Clear(ctx context.Context, userID uint) error {
	return s.Redis.Del(ctx, notificationKey(userID)).Err()
}
