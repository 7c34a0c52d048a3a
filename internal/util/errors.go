package util

import "errors"

var (
	ErrUserNotFound       = errors.New("User not found")
	ErrEmailRegistered    = errors.New("User already exists")
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrWrongPassword      = errors.New("Current password is incorrect")
	ErrRoadmapNotFound    = errors.New("Roadmap not found")
	ErrModuleNotFound     = errors.New("Module not found")
	ErrTopicNotFound      = errors.New("Topic not found")
	ErrSubtopicNotFound   = errors.New("Subtopic not found")
	ErrContentNotFound    = errors.New("Content not found")
	ErrQuizNotFound       = errors.New("Quiz not found")
	ErrTimerNotFound      = errors.New("Timer not found")
	ErrGoalRequired       = errors.New("Learning goal is required")
	ErrInvalidSnooze      = errors.New("Invalid snooze time")
	ErrAIGeneration       = errors.New("AI generation failed")
	ErrUnsupportedFormat  = errors.New("Unsupported export format")
)
