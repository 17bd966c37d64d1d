package recommend

import (
	"fmt"

	"github.com/xaenox/mudhumeni/internal/models"
)

const (
	defaultPlantingTime = "October-December"
	defaultHarvestTime  = "April-May"
	defaultYield        = "2-4 tonnes/hectare"
)

// DefaultConfidence is used for the templates when no completion was
// obtained at all.
const DefaultConfidence = 0.75

type cropTemplate struct {
	name    string
	variety string
	yield   string
	price   float64
}

var templates = []cropTemplate{
	{name: "Maize", variety: "ZM521", yield: "4-6 tonnes/hectare", price: 400},
	{name: "Tomatoes", variety: "Star 9009", yield: "20-30 tonnes/hectare", price: 800},
	{name: "Beans", variety: "Sugar Bean", yield: "1-2 tonnes/hectare", price: 900},
	{name: "Sunflower", variety: "Hybrid", yield: "1.5-2.5 tonnes/hectare", price: 600},
	{name: "Sorghum", variety: "Local", yield: "2-3 tonnes/hectare", price: 350},
}

func defaultRecommendation(index int, confidence float64) models.CropRecommendation {
	t := templates[0]
	if index >= 0 && index < len(templates) {
		t = templates[index]
	}
	price := t.price

	return models.CropRecommendation{
		ID:                fmt.Sprintf("default-%d", index+1),
		CropName:          t.name,
		Confidence:        confidence,
		Reason:            t.name + " is well-suited to your soil conditions and Zimbabwe's climate",
		ExpectedYield:     t.yield,
		Profitability:     models.ProfitabilityMedium,
		PlantingTime:      defaultPlantingTime,
		HarvestTime:       defaultHarvestTime,
		SoilRequirements:  []string{"Well-drained soil", "pH 6.0-7.0"},
		WaterRequirements: "Regular rainfall",
		MarketPrice:       &price,
		Variety:           t.variety,
		PlantingInstructions: &models.PlantingInstructions{
			Spacing:     "30cm x 75cm",
			Depth:       "2-3cm",
			SoilPrep:    "Deep plowing and ridging",
			Fertilizer:  "Compound fertilizer at planting",
			PestControl: "IPM approach recommended",
		},
	}
}

// Defaults returns the first three templates.
func Defaults(confidence float64) []models.CropRecommendation {
	recs := make([]models.CropRecommendation, 0, MinRecommendations)
	for i := 0; i < MinRecommendations; i++ {
		recs = append(recs, defaultRecommendation(i, confidence))
	}
	return recs
}

// pad fills recs up to MinRecommendations with templates indexed by the
// current list length.
func pad(recs []models.CropRecommendation, confidence float64) []models.CropRecommendation {
	for len(recs) < MinRecommendations {
		recs = append(recs, defaultRecommendation(len(recs), confidence))
	}
	return recs
}
