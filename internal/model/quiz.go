package model

import (
	"gorm.io/datatypes"
)

type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple-choice"
	QuestionTrueFalse      QuestionType = "true-false"
	QuestionShortAnswer    QuestionType = "short-answer"
)

type Option struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type Question struct {
	ID            string       `json:"id"`
	QuestionText  string       `json:"questionText"`
	QuestionType  QuestionType `json:"questionType"`
	Options       []Option     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
	Difficulty    string       `json:"difficulty"`
	PointsValue   int          `json:"pointsValue"`
}

// CorrectOptionIDs lists the options flagged as correct.
func (q *Question) CorrectOptionIDs() []string {
	var ids []string
	for _, o := range q.Options {
		if o.IsCorrect {
			ids = append(ids, o.ID)
		}
	}
	return ids
}

// Points is the question weight, never below one.
func (q *Question) Points() int {
	if q.PointsValue <= 0 {
		return 1
	}
	return q.PointsValue
}

// swagger:model Quiz
type Quiz struct {
	BaseModel
	Title         string                        `gorm:"size:255;not null" json:"title"`
	Description   string                        `gorm:"type:text" json:"description"`
	RoadmapID     uint                          `gorm:"index;not null" json:"roadmapId"`
	UnitID        string                        `gorm:"size:36;index" json:"unitId"`
	ModuleIndex   int                           `json:"moduleIndex"`
	TopicIndex    int                           `json:"topicIndex"`
	SubtopicIndex *int                          `json:"subtopicIndex,omitempty"`
	ContentID     *uint                         `json:"contentId,omitempty"`
	UserID        uint                          `gorm:"index;not null" json:"userId"`
	Questions     datatypes.JSONSlice[Question] `json:"questions"`
	TimeLimit     int                           `gorm:"default:5" json:"timeLimit"`
	PassingScore  int                           `gorm:"default:70" json:"passingScore"`
	IsReview      bool                          `gorm:"default:false" json:"isReview"`
	AIGenerated   bool                          `json:"aiGenerated"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) Ref() UnitRef {
	return UnitRef{ModuleIndex: q.ModuleIndex, TopicIndex: q.TopicIndex, SubtopicIndex: q.SubtopicIndex}
}
