package advisor

import (
	"slices"
	"strings"

	"github.com/xaenox/mudhumeni/internal/models"
)

var (
	cultivationQuestions = []string{
		"What specific variety is best for my region in Zimbabwe?",
		"How should I prepare my soil for optimal results?",
		"What are the key signs of healthy growth to look for?",
		"When is the optimal harvest time for best quality?",
		"What common problems should I watch out for?",
	}
	pestQuestions = []string{
		"How can I prevent this problem in future seasons?",
		"What organic/natural treatments are most effective?",
		"What's the best timing for applying treatments?",
		"How do I identify this problem in its early stages?",
		"Are there resistant varieties available in Zimbabwe?",
	}
	soilQuestions = []string{
		"How often should I apply fertilizer during the growing season?",
		"What are the signs of nutrient deficiency in my crops?",
		"Can I make effective organic fertilizer myself?",
		"Where can I get my soil tested in Zimbabwe?",
		"How do I improve soil fertility long-term?",
	}
	marketQuestions = []string{
		"What's the best time to sell for maximum profit?",
		"How do I find reliable buyers in my area?",
		"What value-addition opportunities exist for this crop?",
		"How should I store my harvest until market time?",
		"What are the current market trends for this crop?",
	}
	beginnerQuestions = []string{
		"What basic equipment do I need to get started?",
		"Should I start with a small test area first?",
		"What are the most common beginner mistakes to avoid?",
		"Where can I get extension services support in Zimbabwe?",
		"What's the total cost to get started with this crop?",
	}
	advancedQuestions = []string{
		"How can I optimize my current practices for better efficiency?",
		"What new technologies or methods should I consider?",
		"How does this compare to alternative crops for profitability?",
		"What are the export opportunities for this crop?",
		"How can I integrate this with my existing farming system?",
	}
	generalQuestions = []string{
		"What specific challenges might I face in my region of Zimbabwe?",
		"How does this approach vary by season?",
		"What local resources or suppliers should I contact?",
		"Are there government programs that support this activity?",
		"What's the expected return on investment?",
	}
)

// FollowUpQuestions picks five follow-ups for a turn. The first matching
// rule wins: cultivation, pests, soil, market, then experience level.
func FollowUpQuestions(question, response string, level models.ExperienceLevel) []string {
	q := strings.ToLower(question)
	r := strings.ToLower(response)

	switch {
	case containsAny(q, "plant", "grow", "cultivat"):
		return slices.Clone(cultivationQuestions)
	case containsAny(q, "pest", "disease", "control", "problem"):
		return slices.Clone(pestQuestions)
	case containsAny(r, "fertilizer", "soil") || strings.Contains(q, "nutrient"):
		return slices.Clone(soilQuestions)
	case containsAny(q, "market", "price", "profit", "sell"):
		return slices.Clone(marketQuestions)
	case level == models.Beginner:
		return slices.Clone(beginnerQuestions)
	case level == models.Advanced:
		return slices.Clone(advancedQuestions)
	default:
		return slices.Clone(generalQuestions)
	}
}
