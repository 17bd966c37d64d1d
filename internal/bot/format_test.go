package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xaenox/mudhumeni/internal/models"
)

func TestParseRatingData(t *testing.T) {
	tests := []struct {
		data   string
		id     string
		rating models.Rating
		ok     bool
	}{
		{"rate:up:abc", "abc", models.RatingUp, true},
		{"rate:down:0f8c-11", "0f8c-11", models.RatingDown, true},
		{"rate:meh:abc", "", "", false},
		{"rate:up:", "", "", false},
		{"rate:up", "", "", false},
		{"like:up:abc", "", "", false},
	}
	for _, tt := range tests {
		id, rating, ok := parseRatingData(tt.data)
		assert.Equal(t, tt.ok, ok, tt.data)
		assert.Equal(t, tt.id, id, tt.data)
		assert.Equal(t, tt.rating, rating, tt.data)
	}
}

func TestParseSoilArgs(t *testing.T) {
	soil, err := parseSoilArgs("")
	assert.NoError(t, err)
	assert.Equal(t, models.DefaultSoilData(), soil)

	soil, err = parseSoilArgs("ph=5.8 N=20 texture=Sandy location=Chipinge, Manicaland")
	assert.NoError(t, err)
	assert.Equal(t, 5.8, soil.PH)
	assert.Equal(t, 20.0, soil.Nitrogen)
	assert.Equal(t, models.TextureSandy, soil.Texture)
	assert.Equal(t, "Chipinge, Manicaland", soil.Location)

	for _, bad := range []string{"ph", "ph=15", "texture=peat", "zinc=3", "k=-1"} {
		_, err := parseSoilArgs(bad)
		assert.Error(t, err, bad)
	}
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, `Star 9009 \(hybrid\) \- 20\-30 t/ha`, escapeMarkdown("Star 9009 (hybrid) - 20-30 t/ha"))
	assert.Equal(t, `a\\b\_c`, escapeMarkdown(`a\b_c`))
}

func TestFormatAnswer(t *testing.T) {
	conf := 0.86
	turn := models.ChatTurn{Content: "Answer", TeachingTip: "Tip", Confidence: &conf}
	resp := models.StructuredResponse{FollowUpQuestions: []string{"a", "b", "c", "d"}}

	assert.Equal(t, "Answer\n\n💡 Tip\n\nYou might also ask:\n• a\n• b\n• c\n\nConfidence: 86%", formatAnswer(turn, resp))
}

func TestSplitMessage(t *testing.T) {
	assert.Equal(t, []string{"short"}, splitMessage("short", 10))
	assert.Equal(t, []string{""}, splitMessage("", 10))

	// No newline to break on: hard cut at the limit.
	assert.Equal(t, []string{"abcdefghij", "klm"}, splitMessage("abcdefghijklm", 10))

	// Break after the last newline in the second half.
	assert.Equal(t, []string{"abcdefg", "hijkl"}, splitMessage("abcdefg\n\nhijkl", 10))

	// Runes, not bytes.
	parts := splitMessage(strings.Repeat("🌽", 25), 10)
	require.Len(t, parts, 3)
	assert.Equal(t, 10, len([]rune(parts[0])))
	assert.Equal(t, 5, len([]rune(parts[2])))
}
