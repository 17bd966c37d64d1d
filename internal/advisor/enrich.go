package advisor

import (
	"strings"
	"unicode/utf8"

	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/season"
)

// Confidence is scored in hundredths so the additive steps stay exact.
const (
	baseConfidence = 75
	maxConfidence  = 95
)

const (
	beginnerPostscript = "\n\n🌱 **Beginner Tip**: Since you're starting out, try these techniques on a small test plot (0.1-0.25 hectares) before scaling up. It keeps the risk low and builds hands-on experience."
	advancedPostscript = "\n\n🎯 **Advanced Strategy**: Consider how this fits your overall farm management plan, including crop rotation schedules, input cost optimization and market timing for maximum profitability."
)

// Confidence scores how specific and locally relevant a completion is. It
// is a heuristic in [0, 0.95], not a calibrated probability.
func Confidence(text string, info season.Info) float64 {
	lower := strings.ToLower(text)
	score := baseConfidence

	if strings.Contains(lower, "zimbabwe") {
		score += 10
	}
	if containsAny(lower, "harare", "bulawayo", "mutare") {
		score += 5
	}
	if containsAny(lower, "highveld", "lowveld", "middleveld") {
		score += 5
	}
	if mentionsSeason(lower, info) {
		score += 10
	}
	if strings.Contains(lower, "plant") && strings.Contains(lower, "harvest") {
		score += 10
	}
	if containsAny(lower, "fertilizer", "manure") {
		score += 5
	}
	if containsAny(lower, "variety", "cultivar") {
		score += 5
	}
	if strings.Contains(lower, "spacing") && strings.Contains(lower, "depth") {
		score += 5
	}
	if containsAny(lower, "pest", "disease") {
		score += 5
	}

	n := utf8.RuneCountInString(text)
	if n > 400 {
		score += 5
	}
	if n > 600 {
		score += 5
	}

	if score > maxConfidence {
		score = maxConfidence
	}
	return float64(score) / 100
}

// Enrich shapes a raw completion into a StructuredResponse. Scoring,
// follow-ups and teaching elements all read the raw text; postscripts are
// appended only to the returned response text.
func Enrich(raw, question string, cc models.ConversationContext, info season.Info) models.StructuredResponse {
	lower := strings.ToLower(raw)
	text := raw

	switch cc.UserExperienceLevel {
	case models.Beginner:
		if !strings.Contains(lower, "beginner") {
			text += beginnerPostscript
		}
	case models.Advanced:
		if !strings.Contains(lower, "advanced") {
			text += advancedPostscript
		}
	}

	if !mentionsSeason(lower, info) {
		text += seasonalPostscript(info)
	}

	return models.StructuredResponse{
		ResponseText:      text,
		Confidence:        Confidence(raw, info),
		FollowUpQuestions: FollowUpQuestions(question, raw, cc.UserExperienceLevel),
		TeachingElements:  ExtractTeachingElements(raw, cc.UserExperienceLevel),
	}
}

func seasonalPostscript(info season.Info) string {
	return "\n\n📅 **Current Season Context**: Since it's " + info.Month + " (" + info.Season +
		"), this is typically the time for " + info.Activity + " in Zimbabwe."
}

func mentionsSeason(lower string, info season.Info) bool {
	if strings.Contains(lower, "season") {
		return true
	}
	return info.Month != "" && strings.Contains(lower, strings.ToLower(info.Month))
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
