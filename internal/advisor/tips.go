package advisor

import (
	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/season"
)

var teachingTips = map[string]string{
	"planting": "In Zimbabwe, start with small test plots (0.1-0.25 hectares) before scaling up new varieties or techniques. This reduces risk and helps you learn what works in your specific conditions.",
	"soil":     "Zimbabwe's soils vary greatly - from granite-derived sandy soils to fertile basalt clays. Test your soil and add organic matter annually to build long-term fertility.",
	"pests":    "With Zimbabwe's climate, prevention through good agricultural practices is always better than treatment. Integrated Pest Management (IPM) works best in our conditions.",
	"weather":  "Keep a detailed farm diary tracking weather patterns, planting dates, and crop performance. This builds valuable knowledge for your specific location in Zimbabwe.",
	"market":   "Zimbabwe's agricultural markets can be volatile. Diversify your crops and consider value-addition to reduce risk and increase profitability.",
	"general":  "Zimbabwe agriculture is diverse and challenging. Ask specific questions about your crops, location, and farming challenges for the most helpful guidance!",
}

// TeachingTip returns the tip for topic, or the general tip.
func TeachingTip(topic string) string {
	if tip, ok := teachingTips[topic]; ok {
		return tip
	}
	return teachingTips["general"]
}

// OpeningQuestions are shown before the farmer has asked anything.
func OpeningQuestions(level models.ExperienceLevel, info season.Info) []string {
	switch level {
	case models.Beginner:
		return []string{
			"What crop are you planning to grow this season in Zimbabwe?",
			"Which province or region is your farm located in?",
			"What's the size of your farm or planned growing area?",
			"Do you have access to irrigation or rely on rainfall?",
			"Given it's " + info.Month + ", what farming activities are you planning?",
		}
	case models.Advanced:
		return []string{
			"How do you want to optimize your current farming practices?",
			"Are you interested in new crops or value-addition opportunities?",
			"Would you like to explore export markets or improved varieties?",
			"How can you better integrate technology into your farming?",
			"What are your main profitability and sustainability goals?",
		}
	default:
		return []string{
			"What crop or farming activity are you most interested in?",
			"What's your biggest agricultural challenge right now?",
			"Which region of Zimbabwe are you farming in?",
			"Do you need help with timing, techniques, or problem-solving?",
			"Since it's " + info.Season + ", what should you be focusing on?",
		}
	}
}
