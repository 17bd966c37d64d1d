package models

import "time"

// ExperienceLevel tailors tone, postscripts and follow-up questions.
type ExperienceLevel string

const (
	Beginner     ExperienceLevel = "beginner"
	Intermediate ExperienceLevel = "intermediate"
	Advanced     ExperienceLevel = "advanced"
)

// ParseExperienceLevel returns the level named by s, or false if s names none.
func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch ExperienceLevel(s) {
	case Beginner, Intermediate, Advanced:
		return ExperienceLevel(s), true
	}
	return "", false
}

type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

type Rating string

const (
	RatingUp   Rating = "up"
	RatingDown Rating = "down"
)

// ConversationContext is rebuilt from the message history on every request.
type ConversationContext struct {
	QuestionCount       int             `json:"question_count"`
	TopicsDiscussed     []string        `json:"topics_discussed"`
	UserExperienceLevel ExperienceLevel `json:"user_experience_level"`
	LastTopics          []string        `json:"last_topics"`
}

// VisualAid is rendered next to an AI turn.
type VisualAid struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// ChatTurn is one message in the chat panel.
type ChatTurn struct {
	ID          string     `json:"id"`
	Content     string     `json:"content"`
	Sender      Sender     `json:"sender"`
	Timestamp   time.Time  `json:"timestamp"`
	Confidence  *float64   `json:"confidence,omitempty"`
	TeachingTip string     `json:"teaching_tip,omitempty"`
	VisualAid   *VisualAid `json:"visual_aid,omitempty"`
	CheckPoint  string     `json:"check_point,omitempty"`
	Rating      Rating     `json:"rating,omitempty"`
}

type TeachingElements struct {
	Explanation string `json:"explanation"`
	Example     string `json:"example"`
	CheckPoint  string `json:"check_point"`
}

// StructuredResponse is the shaped result of one advisory request.
type StructuredResponse struct {
	ResponseText      string           `json:"response"`
	Confidence        float64          `json:"confidence"`
	FollowUpQuestions []string         `json:"follow_up_questions"`
	TeachingElements  TeachingElements `json:"teaching_elements"`
}
