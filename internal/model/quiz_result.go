package model

import (
	"time"

	"gorm.io/datatypes"
)

type QuestionResult struct {
	QuestionID   string         `json:"questionId"`
	UserAnswer   datatypes.JSON `json:"userAnswer"`
	IsCorrect    bool           `json:"isCorrect"`
	PointsEarned float64        `json:"pointsEarned"`
	Feedback     string         `json:"feedback,omitempty"`
	AnswerTime   int            `json:"answerTime,omitempty"`
}

// QuizResult stores one graded submission.
// swagger:model QuizResult
type QuizResult struct {
	BaseModel
	UserID           uint                                `gorm:"index;not null" json:"userId"`
	QuizID           uint                                `gorm:"index;not null" json:"quizId"`
	RoadmapID        uint                                `gorm:"index;not null" json:"roadmapId"`
	ContentID        *uint                               `json:"contentId,omitempty"`
	QuestionResults  datatypes.JSONSlice[QuestionResult] `json:"questionResults"`
	TotalScore       float64                             `json:"totalScore"`
	PercentageScore  int                                 `json:"percentageScore"`
	Passed           bool                                `json:"passed"`
	CompletionTime   int                                 `json:"completionTime"`
	ReviewNeeded     bool                                `json:"reviewNeeded"`
	ConceptsToReview datatypes.JSONSlice[string]         `json:"conceptsToReview"`
	CompletedAt      time.Time                           `json:"completedAt"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
