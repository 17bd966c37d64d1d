package classifier

import (
	"github.com/xaenox/mudhumeni/internal/models"
)

const recentTopicLimit = 3

// Tracker derives a ConversationContext from message history. It keeps no
// state between calls.
type Tracker struct {
	classifier Classifier
}

func NewTracker(c Classifier) *Tracker {
	if c == nil {
		c = NewKeywordClassifier()
	}
	return &Tracker{classifier: c}
}

// Build counts user questions and collects topics from AI turns. LastTopics
// keeps duplicates and is ordered oldest to newest.
func (t *Tracker) Build(history []models.ChatTurn, level models.ExperienceLevel) models.ConversationContext {
	questions := 0
	var topics []string

	for _, turn := range history {
		switch turn.Sender {
		case models.SenderUser:
			questions++
		case models.SenderAI:
			topics = append(topics, t.classifier.ClassifyContent(turn.Content)...)
		}
	}

	seen := make(map[string]struct{}, len(topics))
	discussed := make([]string, 0, len(topics))
	for _, topic := range topics {
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		discussed = append(discussed, topic)
	}

	start := len(topics) - recentTopicLimit
	if start < 0 {
		start = 0
	}
	last := append([]string{}, topics[start:]...)

	return models.ConversationContext{
		QuestionCount:       questions,
		TopicsDiscussed:     discussed,
		UserExperienceLevel: level,
		LastTopics:          last,
	}
}
