package model

import (
	"time"

	"gorm.io/datatypes"
)

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Content is a lesson attached to a roadmap coordinate. SubtopicIndex is
// nil for topic level lessons.
// swagger:model Content
type Content struct {
	BaseModel
	Title                string                      `gorm:"size:255;not null" json:"title"`
	Description          string                      `gorm:"type:text" json:"description"`
	Type                 ContentType                 `gorm:"size:10;default:'text'" json:"type"`
	TextContent          string                      `gorm:"type:text" json:"textContent"`
	VideoURL             string                      `gorm:"size:512" json:"videoUrl,omitempty"`
	VideoStartTime       *int                        `json:"videoStartTime,omitempty"`
	VideoEndTime         *int                        `json:"videoEndTime,omitempty"`
	Tags                 datatypes.JSONSlice[string] `json:"tags"`
	EstimatedTimeMinutes int                         `gorm:"default:10" json:"estimatedTimeMinutes"`
	Difficulty           Difficulty                  `gorm:"size:20;default:'beginner'" json:"difficulty"`
	RoadmapID            uint                        `gorm:"index;not null" json:"roadmapId"`
	ModuleIndex          int                         `json:"moduleIndex"`
	TopicIndex           int                         `json:"topicIndex"`
	SubtopicIndex        *int                        `json:"subtopicIndex,omitempty"`
	UserID               uint                        `gorm:"index;not null" json:"userId"`
	AIGenerated          bool                        `json:"aiGenerated"`
	ViewCount            int                         `gorm:"default:0" json:"viewCount"`
	LastViewed           *time.Time                  `json:"lastViewed,omitempty"`
	WordCount            int                         `json:"wordCount"`
	ReadingTimeMinutes   int                         `json:"readingTimeMinutes"`
	RelatedQuizID        *uint                       `json:"relatedQuizId,omitempty"`
}

func (Content) TableName() string {
	return "contents"
}

// Ref returns the roadmap coordinate this lesson belongs to.
func (c *Content) Ref() UnitRef {
	return UnitRef{ModuleIndex: c.ModuleIndex, TopicIndex: c.TopicIndex, SubtopicIndex: c.SubtopicIndex}
}
