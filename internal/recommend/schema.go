package recommend

import (
	"github.com/xaenox/mudhumeni/internal/completion"
	"github.com/xaenox/mudhumeni/internal/models"
)

var recommendationSchema = &completion.Schema{
	Name:        "crop-recommendations",
	Description: "Crop recommendations for a Zimbabwean farm given a soil analysis",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"recommendations": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": MaxRecommendations,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"crop_name":          map[string]any{"type": "string", "minLength": 1},
						"variety":            map[string]any{"type": "string"},
						"confidence":         map[string]any{"type": "number", "minimum": 0, "maximum": 1},
						"reason":             map[string]any{"type": "string"},
						"expected_yield":     map[string]any{"type": "string"},
						"profitability":      map[string]any{"type": "string", "enum": []string{"high", "medium", "low"}},
						"planting_time":      map[string]any{"type": "string"},
						"harvest_time":       map[string]any{"type": "string"},
						"soil_requirements":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
						"water_requirements": map[string]any{"type": "string"},
					},
					"required": []string{
						"crop_name", "variety", "confidence", "reason", "expected_yield",
						"profitability", "planting_time", "harvest_time",
						"soil_requirements", "water_requirements",
					},
					"additionalProperties": false,
				},
			},
		},
		"required":             []string{"recommendations"},
		"additionalProperties": false,
	},
}

type structuredRecommendations struct {
	Recommendations []structuredRecommendation `json:"recommendations"`
}

type structuredRecommendation struct {
	CropName          string               `json:"crop_name"`
	Variety           string               `json:"variety"`
	Confidence        float64              `json:"confidence"`
	Reason            string               `json:"reason"`
	ExpectedYield     string               `json:"expected_yield"`
	Profitability     models.Profitability `json:"profitability"`
	PlantingTime      string               `json:"planting_time"`
	HarvestTime       string               `json:"harvest_time"`
	SoilRequirements  []string             `json:"soil_requirements"`
	WaterRequirements string               `json:"water_requirements"`
}

// toModel fills the same derived fields a line-scanned record gets.
func (s structuredRecommendation) toModel(index int) models.CropRecommendation {
	rec := draft{
		cropName:      s.CropName,
		reason:        s.Reason,
		confidence:    s.Confidence,
		expectedYield: s.ExpectedYield,
		profitability: s.Profitability,
		plantingTime:  s.PlantingTime,
		harvestTime:   s.HarvestTime,
	}.build(index, 0)

	if s.Variety != "" {
		rec.Variety = s.Variety
	}
	if len(s.SoilRequirements) > 0 {
		rec.SoilRequirements = s.SoilRequirements
	}
	if s.WaterRequirements != "" {
		rec.WaterRequirements = s.WaterRequirements
	}
	return rec
}
