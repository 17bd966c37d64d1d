package classifier

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/mudhumeni/internal/models"
)

func TestKeywordClassifier_ClassifyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"empty", "", []string{}},
		{"no match", "Irrigate in the evening.", []string{}},
		{"maize", "Plant MAIZE early.", []string{"maize"}},
		{"tomato plural", "Tomatoes need staking.", []string{"tomatoes"}},
		{"vocabulary order", "Soil pests damage maize and tomato roots", []string{"maize", "tomatoes", "pest_control", "soil"}},
	}

	c := NewKeywordClassifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.ClassifyContent(tt.content))
		})
	}
}

func TestTracker_EmptyHistory(t *testing.T) {
	ctx := NewTracker(nil).Build(nil, models.Intermediate)

	assert.Equal(t, 0, ctx.QuestionCount)
	assert.Empty(t, ctx.TopicsDiscussed)
	assert.Empty(t, ctx.LastTopics)
	assert.Equal(t, models.Intermediate, ctx.UserExperienceLevel)
}

func TestTracker_Build(t *testing.T) {
	history := []models.ChatTurn{
		{Sender: models.SenderAI, Content: "Welcome! Ask me about maize or soil."},
		{Sender: models.SenderUser, Content: "How do I fight pests on my tomato plants?"},
		{Sender: models.SenderAI, Content: "Tomato pests such as red spider mite..."},
		{Sender: models.SenderUser, Content: "And maize?"},
		{Sender: models.SenderAI, Content: "Maize needs fertile soil."},
	}

	ctx := NewTracker(nil).Build(history, models.Beginner)

	assert.Equal(t, 2, ctx.QuestionCount)
	assert.ElementsMatch(t, []string{"maize", "soil", "tomatoes", "pest_control"}, ctx.TopicsDiscussed)
	// flattened: maize soil tomatoes pest_control maize soil
	assert.Equal(t, []string{"pest_control", "maize", "soil"}, ctx.LastTopics)
}

func TestTracker_LastTopicsKeepsDuplicates(t *testing.T) {
	history := []models.ChatTurn{
		{Sender: models.SenderAI, Content: "maize"},
		{Sender: models.SenderAI, Content: "maize"},
		{Sender: models.SenderAI, Content: "maize"},
	}

	ctx := NewTracker(nil).Build(history, models.Advanced)

	assert.Equal(t, []string{"maize"}, ctx.TopicsDiscussed)
	assert.Equal(t, []string{"maize", "maize", "maize"}, ctx.LastTopics)
}

func TestTracker_IgnoresUserTopics(t *testing.T) {
	history := []models.ChatTurn{
		{Sender: models.SenderUser, Content: "When should I plant maize in Mashonaland?"},
	}

	ctx := NewTracker(nil).Build(history, models.Intermediate)

	assert.Equal(t, 1, ctx.QuestionCount)
	assert.Empty(t, ctx.TopicsDiscussed)
	assert.Empty(t, ctx.LastTopics)
}
