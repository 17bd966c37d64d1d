package recommend

import (
	"strconv"
	"strings"

	"github.com/xaenox/mudhumeni/internal/models"
)

// SoilPrompt asks for 4-5 crop recommendations for the given soil.
func SoilPrompt(soil models.SoilData) string {
	location := strings.TrimSpace(soil.Location)
	if location == "" {
		location = "Zimbabwe"
	}

	var b strings.Builder
	b.WriteString("Based on these soil conditions in Zimbabwe, provide 4-5 specific crop recommendations:\n\n")
	b.WriteString("SOIL ANALYSIS:\n")
	b.WriteString("- pH Level: " + num(soil.PH) + "\n")
	b.WriteString("- Nitrogen: " + num(soil.Nitrogen) + "%\n")
	b.WriteString("- Phosphorus: " + num(soil.Phosphorus) + " ppm\n")
	b.WriteString("- Potassium: " + num(soil.Potassium) + " ppm\n")
	b.WriteString("- Organic Matter: " + num(soil.OrganicMatter) + "%\n")
	b.WriteString("- Moisture: " + num(soil.Moisture) + "%\n")
	b.WriteString("- Soil Texture: " + string(soil.Texture) + "\n")
	b.WriteString("- Location: " + location + "\n\n")
	b.WriteString(`Please provide specific crop recommendations with:
1. Crop name and best variety for Zimbabwe
2. Confidence level (0-100%)
3. Expected yield per hectare
4. Profitability assessment (high/medium/low)
5. Planting and harvest timing
6. Specific soil requirements
7. Water/irrigation needs
8. Brief reasoning for recommendation

Consider Zimbabwe's climate zones, current season, local varieties, and market conditions. Focus on crops that will perform well with these specific soil conditions.`)
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// soilContext is the conversation context the crop advisory is asked under.
func soilContext() models.ConversationContext {
	return models.ConversationContext{
		QuestionCount:       1,
		TopicsDiscussed:     []string{"crop_recommendations", "soil_analysis"},
		UserExperienceLevel: models.Intermediate,
		LastTopics:          []string{"soil", "crops"},
	}
}
