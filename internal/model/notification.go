package model

import (
	"time"
)

type NotificationType string

const (
	NotificationTimer  NotificationType = "timer"
	NotificationQuiz   NotificationType = "quiz"
	NotificationSystem NotificationType = "system"
)

// Notification lives in Redis, one list per user.
type Notification struct {
	ID            int64            `json:"id"`
	Title         string           `json:"title"`
	Message       string           `json:"message"`
	Type          NotificationType `json:"type"`
	RoadmapID     uint             `json:"roadmapId,omitempty"`
	ModuleIndex   *int             `json:"moduleIndex,omitempty"`
	TopicIndex    *int             `json:"topicIndex,omitempty"`
	SubtopicIndex *int             `json:"subtopicIndex,omitempty"`
	URL           string           `json:"url,omitempty"`
	Read          bool             `json:"read"`
	Timestamp     time.Time        `json:"timestamp"`
}
