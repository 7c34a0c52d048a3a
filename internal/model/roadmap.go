package model

import (
	"time"

	"gorm.io/datatypes"
)

// Subtopic is the smallest learning unit.
type Subtopic struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	ContentID   *uint      `json:"contentId,omitempty"`
	QuizID      *uint      `json:"quizId,omitempty"`
}

type Topic struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Order                int        `json:"order"`
	EstimatedTimeMinutes int        `json:"estimatedTimeMinutes"`
	Completed            bool       `json:"completed"`
	CompletedAt          *time.Time `json:"completedAt,omitempty"`
	NextReviewDate       *time.Time `json:"nextReviewDate,omitempty"`
	ReviewCount          int        `json:"reviewCount"`
	ContentID            *uint      `json:"contentId,omitempty"`
	QuizID               *uint      `json:"quizId,omitempty"`
	Subtopics            []Subtopic `json:"subtopics"`
}

type Module struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Order       int        `json:"order"`
	Topics      []Topic    `json:"topics"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Roadmap is a generated curriculum. The module tree is persisted as a
// single JSON document.
// swagger:model Roadmap
type Roadmap struct {
	BaseModel
	UserID        uint                        `gorm:"index;not null" json:"userId"`
	Title         string                      `gorm:"size:255;not null" json:"title"`
	Description   string                      `gorm:"type:text" json:"description"`
	Goal          string                      `gorm:"type:text;not null" json:"goal"`
	Modules       datatypes.JSONSlice[Module] `json:"modules"`
	Progress      int                         `gorm:"default:0" json:"progress"`
	Active        bool                        `gorm:"default:true" json:"active"`
	CompletedAt   *time.Time                  `json:"completedAt,omitempty"`
	CurrentModule int                         `gorm:"default:0" json:"currentModule"`
	CurrentTopic  int                         `gorm:"default:0" json:"currentTopic"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}

// AssignIDs gives every module, topic and subtopic a stable identifier.
func (r *Roadmap) AssignIDs() {
	for m := range r.Modules {
		if r.Modules[m].ID == "" {
			r.Modules[m].ID = GenerateUUID()
		}
		for t := range r.Modules[m].Topics {
			topic := &r.Modules[m].Topics[t]
			if topic.ID == "" {
				topic.ID = GenerateUUID()
			}
			for s := range topic.Subtopics {
				if topic.Subtopics[s].ID == "" {
					topic.Subtopics[s].ID = GenerateUUID()
				}
			}
		}
	}
}
