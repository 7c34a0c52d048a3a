package service

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	curriculumSystem = "You are an expert educational curriculum designer."
	lessonSystem     = "You are an expert educational content creator."
	quizSystem       = "You are an expert educational assessment creator designing a quiz for a learning platform."
	evaluatorSystem  = "You are an educational assessment evaluator."
	spacingSystem    = "You are an expert in spaced repetition learning."

	maxQuizContentChars = 8000
)

func roadmapPrompt(p LearnerProfile) string {
	age := "Unknown"
	if p.Age != nil {
		age = fmt.Sprint(*p.Age)
	}
	prefs, _ := json.Marshal(p.Preferences)

	return fmt.Sprintf(`Create a detailed learning roadmap for a student with the following profile:

Name: %s
Age: %s
Education Level: %s
Learning Goal: %s
Learning Preferences: %s

The roadmap is made of modules and topics. A module is a major section and topics are specific
lessons within it. Break topics down into atomic units that can be learned in 5-10 minutes, and
break each topic into 2-4 subtopics covering a single focused concept each.

Return a JSON object with this structure:
{
  "title": "Roadmap title",
  "description": "Brief description of the roadmap",
  "modules": [
    {
      "title": "Module title",
      "description": "Module description",
      "order": 1,
      "topics": [
        {
          "title": "Topic title",
          "description": "Brief topic description",
          "order": 1,
          "estimatedTimeMinutes": 10,
          "subtopics": [
            {"title": "Subtopic title", "description": "Brief subtopic description"}
          ]
        }
      ]
    }
  ]
}

Use 3-5 modules with 5-10 topics each. The response must be a single valid JSON object with no
markdown formatting or explanation text.`,
		orDefault(p.Name, "Student"), age, orDefault(string(p.EducationLevel), "Unknown"), p.Goal, prefs)
}

func lessonPrompt(u UnitContext, p LearnerProfile) string {
	kind, placement := "Topic", fmt.Sprintf("%s in %s", u.TopicTitle, u.ModuleTitle)
	if u.IsSubtopic() {
		kind, placement = "Subtopic", u.TopicTitle
	}

	return fmt.Sprintf(`Generate comprehensive, engaging learning content on the following unit:

%s: %s

This content is part of: %s
Module Goal: %s
Overall Learning Goal: %s

The content should:
1. Be tailored for a %s skill level
2. Be concise but complete, 800-1200 words
3. Include concrete examples and practical applications
4. Use analogies where they help understanding
5. Use a clear structure with headings and subheadings
6. Include code examples if the unit is technical

Structure: introduction, main concepts, examples and applications, common pitfalls, summary of key
takeaways. Format the lesson as Markdown and return only the lesson itself.`,
		kind, u.Title(), placement,
		orDefault(u.ModuleDescription, "Build skills in this area"),
		orDefault(u.RoadmapGoal, "Learn new skills"),
		p.SkillLevel)
}

// truncateUTF8 cuts s to at most max bytes without splitting a character.
func truncateUTF8(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func quizPrompt(u UnitContext, contentText string) string {
	contentText = truncateUTF8(contentText, maxQuizContentChars)
	if strings.TrimSpace(contentText) == "" {
		contentText = "Focus on the unit title and description as content is not available"
	}

	parent := ""
	if u.IsSubtopic() {
		parent = "Parent Topic: " + u.TopicTitle + "\n"
	}

	return fmt.Sprintf(`Create a quiz based on the following content.

--- LEARNING CONTEXT ---
Topic: %s
%sModule: %s
Module Description: %s

--- CONTENT TO QUIZ ON ---
%s

--- QUIZ REQUIREMENTS ---
1. Exactly 5 questions testing the key concepts of this content
2. Questions must be accurate and based only on the content
3. Mix multiple-choice (4 options) and true/false questions
4. Every question has an explanation of the correct answer
5. Range from basic recall to application of concepts

--- RESPONSE FORMAT ---
{
  "title": "Quiz: title based on the content",
  "description": "What the quiz covers",
  "questions": [
    {"type": "multipleChoice", "question": "...?", "options": ["A", "B", "C", "D"], "answer": 0, "explanation": "..."},
    {"type": "trueFalse", "question": "...", "answer": true, "explanation": "..."}
  ]
}

For multiple-choice questions "answer" is the 0-based index of the correct option. For true/false
questions "answer" is a boolean. Return a single valid JSON object and nothing else.`,
		u.Title(), parent, u.ModuleTitle, u.ModuleDescription, contentText)
}

func evaluationPrompt(question, correct, answer string) string {
	return fmt.Sprintf(`Evaluate if the student's answer is correct.

Question: %s
Correct Answer: %s
Student's Answer: %s

Judge whether the student's answer captures the key points of the correct answer. Give partial
credit where appropriate.

Return a JSON object:
{"isCorrect": true, "score": 0-100, "feedback": "Constructive feedback for the student"}`,
		question, correct, answer)
}

func deliveryPrompt(p LearnerProfile, u UnitContext, result any) string {
	profile, _ := json.Marshal(p)
	unit, _ := json.Marshal(u)
	res, _ := json.Marshal(result)

	return fmt.Sprintf(`Calculate the next optimal time to deliver content to a student.

User Profile: %s
Learning Unit: %s
Quiz Result: %s

Based on the quiz performance and spaced repetition principles decide how many minutes from now
the next content should arrive and whether it should review this unit or move on.
A high score (>80%%) allows a longer interval. A low score (<50%%) calls for a short interval with
review.

Return a JSON object:
{"intervalMinutes": 60, "isReview": false, "reason": "Brief explanation of the decision"}`,
		profile, unit, res)
}

var roadmapSchema = map[string]any{
	"type":     "object",
	"required": []any{"title", "description", "modules"},
	"properties": map[string]any{
		"title":       map[string]any{"type": "string"},
		"description": map[string]any{"type": "string"},
		"modules": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type":     "object",
				"required": []any{"title", "topics"},
				"properties": map[string]any{
					"title":       map[string]any{"type": "string"},
					"description": map[string]any{"type": "string"},
					"order":       map[string]any{"type": "integer"},
					"topics": map[string]any{
						"type": "array",
						"items": map[string]any{
							"type":     "object",
							"required": []any{"title"},
							"properties": map[string]any{
								"title":                map[string]any{"type": "string"},
								"description":          map[string]any{"type": "string"},
								"order":                map[string]any{"type": "integer"},
								"estimatedTimeMinutes": map[string]any{"type": "integer"},
								"subtopics": map[string]any{
									"type": "array",
									"items": map[string]any{
										"type":     "object",
										"required": []any{"title"},
										"properties": map[string]any{
											"title":       map[string]any{"type": "string"},
											"description": map[string]any{"type": "string"},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	},
}

var evaluationSchema = map[string]any{
	"type":     "object",
	"required": []any{"isCorrect", "score"},
	"properties": map[string]any{
		"isCorrect": map[string]any{"type": "boolean"},
		"score":     map[string]any{"type": "number"},
		"feedback":  map[string]any{"type": "string"},
	},
}

var deliverySchema = map[string]any{
	"type":     "object",
	"required": []any{"intervalMinutes", "isReview"},
	"properties": map[string]any{
		"intervalMinutes": map[string]any{"type": "integer"},
		"isReview":        map[string]any{"type": "boolean"},
		"reason":          map[string]any{"type": "string"},
	},
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
