package model

import (
	"time"
)

type EducationLevel string

const (
	EducationPrimary       EducationLevel = "primary"
	EducationMiddle        EducationLevel = "middle"
	EducationHigh          EducationLevel = "high"
	EducationUndergraduate EducationLevel = "undergraduate"
	EducationGraduate      EducationLevel = "graduate"
	EducationOther         EducationLevel = "other"
)

type ContentType string

const (
	ContentText  ContentType = "text"
	ContentVideo ContentType = "video"
	ContentMixed ContentType = "mixed"
)

// LearningPreferences is stored inline on the users table.
type LearningPreferences struct {
	PreferredContentType  ContentType `gorm:"size:10;default:'mixed'" json:"preferredContentType"`
	PreferredTheme        string      `gorm:"size:50;default:'default'" json:"preferredTheme"`
	IsGamificationEnabled bool        `gorm:"not null" json:"isGamificationEnabled"`
	PreferredLearningTime int         `gorm:"default:10" json:"preferredLearningTime"`
}

// DefaultLearningPreferences matches the column defaults. Gamification has
// no column default, so an explicit false survives the insert.
func DefaultLearningPreferences() LearningPreferences {
	return LearningPreferences{
		PreferredContentType:  ContentMixed,
		PreferredTheme:        "default",
		IsGamificationEnabled: true,
		PreferredLearningTime: 10,
	}
}

// swagger:model User
type User struct {
	BaseModel
	Name                string              `gorm:"size:100;not null" json:"name"`
	Email               string              `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Password            string              `gorm:"size:100;not null" json:"-"`
	Age                 *int                `json:"age,omitempty"`
	EducationLevel      EducationLevel      `gorm:"size:20;default:'other'" json:"educationLevel"`
	LearningPreferences LearningPreferences `gorm:"embedded;embeddedPrefix:pref_" json:"learningPreferences"`
	LastActive          time.Time           `json:"lastActive"`
}

func (User) TableName() string {
	return "users"
}

// SkillLevel maps the education level onto the difficulty vocabulary used
// for lesson generation.
func (u *User) SkillLevel() string {
	switch u.EducationLevel {
	case EducationPrimary, EducationMiddle:
		return "beginner"
	case EducationGraduate:
		return "advanced"
	default:
		return "intermediate"
	}
}
