package model

import (
	"time"
)

type TimerKind string

const (
	TimerManual TimerKind = "manual"
	TimerAI     TimerKind = "ai"
	TimerQuiz   TimerKind = "quiz"
)

// Timer schedules the next lesson delivery for a roadmap.
// swagger:model Timer
type Timer struct {
	BaseModel
	UserID              uint       `gorm:"index;not null" json:"userId"`
	RoadmapID           uint       `gorm:"index;not null" json:"roadmapId"`
	NextContentDelivery time.Time  `gorm:"index;not null" json:"nextContentDelivery"`
	UnitID              string     `gorm:"size:36" json:"unitId,omitempty"`
	ModuleIndex         int        `json:"moduleIndex"`
	TopicIndex          int        `json:"topicIndex"`
	SubtopicIndex       *int       `json:"subtopicIndex,omitempty"`
	ContentID           *uint      `json:"contentId,omitempty"`
	QuizID              *uint      `json:"quizId,omitempty"`
	Kind                TimerKind  `gorm:"size:10;default:'manual'" json:"kind"`
	IsReview            bool       `gorm:"default:false" json:"isReview"`
	NotificationSent    bool       `gorm:"default:false" json:"notificationSent"`
	NotificationSentAt  *time.Time `json:"notificationSentAt,omitempty"`
	ContentDelivered    bool       `gorm:"default:false" json:"contentDelivered"`
	ContentDeliveredAt  *time.Time `json:"contentDeliveredAt,omitempty"`
	Active              bool       `gorm:"default:true" json:"active"`
	Interval            int        `gorm:"default:60" json:"interval"`
	Reason              string     `gorm:"type:text" json:"reason,omitempty"`
}

func (Timer) TableName() string {
	return "timers"
}

func (t *Timer) Ref() UnitRef {
	return UnitRef{ModuleIndex: t.ModuleIndex, TopicIndex: t.TopicIndex, SubtopicIndex: t.SubtopicIndex}
}
