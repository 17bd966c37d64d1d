package models

type Profitability string

const (
	ProfitabilityHigh   Profitability = "high"
	ProfitabilityMedium Profitability = "medium"
	ProfitabilityLow    Profitability = "low"
)

type PlantingInstructions struct {
	Spacing     string `json:"spacing"`
	Depth       string `json:"depth"`
	SoilPrep    string `json:"soil_prep"`
	Fertilizer  string `json:"fertilizer"`
	PestControl string `json:"pest_control"`
}

// CropRecommendation is one entry of the crop advisory list.
type CropRecommendation struct {
	ID                   string                `json:"id"`
	CropName             string                `json:"crop_name"`
	Confidence           float64               `json:"confidence"`
	Reason               string                `json:"reason"`
	ExpectedYield        string                `json:"expected_yield"`
	Profitability        Profitability         `json:"profitability"`
	PlantingTime         string                `json:"planting_time"`
	HarvestTime          string                `json:"harvest_time"`
	SoilRequirements     []string              `json:"soil_requirements"`
	WaterRequirements    string                `json:"water_requirements"`
	MarketPrice          *float64              `json:"market_price,omitempty"`
	Variety              string                `json:"variety,omitempty"`
	PlantingInstructions *PlantingInstructions `json:"planting_instructions,omitempty"`
}

type SoilTexture string

const (
	TextureClay  SoilTexture = "clay"
	TextureLoam  SoilTexture = "loam"
	TextureSandy SoilTexture = "sandy"
	TextureSilt  SoilTexture = "silt"
)

// SoilData is the crop-input form.
type SoilData struct {
	PH            float64     `json:"ph"`
	Nitrogen      float64     `json:"nitrogen"`
	Phosphorus    float64     `json:"phosphorus"`
	Potassium     float64     `json:"potassium"`
	OrganicMatter float64     `json:"organic_matter"`
	Texture       SoilTexture `json:"texture"`
	Moisture      float64     `json:"moisture"`
	Location      string      `json:"location,omitempty"`
}

// DefaultSoilData mirrors the form's initial values.
func DefaultSoilData() SoilData {
	return SoilData{
		PH:            6.5,
		Nitrogen:      15,
		Phosphorus:    25,
		Potassium:     200,
		OrganicMatter: 3.5,
		Moisture:      60,
		Texture:       TextureLoam,
		Location:      "Harare",
	}
}
