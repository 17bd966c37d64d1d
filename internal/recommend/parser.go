package recommend

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/xaenox/mudhumeni/internal/models"
)

const (
	MinRecommendations = 3
	MaxRecommendations = 5

	maxLineLength = 64 * 1024
)

// ParseError reports why the line scan was abandoned. Parse still returns
// a usable default list alongside it.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse recommendations at line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

var (
	numberedLine = regexp.MustCompile(`^\d+\.`)
	numberPrefix = regexp.MustCompile(`^\d+\.?\s*`)
	cropPattern  = regexp.MustCompile(`(?i)maize|corn|tomato|bean|tobacco|cotton|sunflower|sorghum|cassava|groundnut|soybean`)
	percentValue = regexp.MustCompile(`(\d+)%`)
	yieldValue   = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:tonnes?|tons?|kg)\s*(?:per\s*|/\s*)?(?:hectare|ha)`)
	harvestWord  = regexp.MustCompile(`(?i)harvest`)
	monthRange   = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)(?:\s*(?:-|–|to)\s*(january|february|march|april|may|june|july|august|september|october|november|december))?\b`)
)

// startKeywords mark a line as the head of a new recommendation.
var startKeywords = []string{"maize", "tomato", "bean", "tobacco", "cotton", "sunflower", "sorghum", "cassava"}

type draft struct {
	cropName      string
	reason        string
	confidence    float64
	expectedYield string
	profitability models.Profitability
	plantingTime  string
	harvestTime   string
}

// Parse extracts 3 to 5 crop recommendations from free text in a single
// pass over its lines. confidence is used for records that state none.
func Parse(text string, confidence float64) ([]models.CropRecommendation, error) {
	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)

	var recs []models.CropRecommendation
	var current draft
	lineNo := 0

	for len(recs) < MaxRecommendations && scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case numberedLine.MatchString(line) || containsAny(lower, startKeywords):
			if current.cropName != "" {
				recs = append(recs, current.build(len(recs), confidence))
			}
			current = draft{cropName: cropName(line), reason: line}
		case strings.Contains(lower, "confidence") || strings.Contains(line, "%"):
			if m := percentValue.FindStringSubmatch(line); m != nil {
				if v, err := strconv.Atoi(m[1]); err == nil {
					current.confidence = min(float64(v)/100, 1)
				}
			}
		case strings.Contains(lower, "yield"):
			current.expectedYield = extractYield(line)
		case strings.Contains(lower, "profit"):
			current.profitability = extractProfitability(lower)
		case strings.Contains(lower, "plant") && strings.Contains(lower, "harvest"):
			current.plantingTime, current.harvestTime = extractTiming(line)
		}
	}
	if err := scanner.Err(); err != nil {
		return Defaults(confidence), &ParseError{Line: lineNo + 1, Err: err}
	}

	if current.cropName != "" {
		recs = append(recs, current.build(len(recs), confidence))
	}

	recs = pad(recs, confidence)
	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs, nil
}

func (d draft) build(index int, confidence float64) models.CropRecommendation {
	price := float64(500 + index*100)
	rec := models.CropRecommendation{
		ID:                fmt.Sprintf("ai-rec-%d", index+1),
		CropName:          d.cropName,
		Confidence:        confidence,
		Reason:            d.reason,
		ExpectedYield:     d.expectedYield,
		Profitability:     d.profitability,
		PlantingTime:      d.plantingTime,
		HarvestTime:       d.harvestTime,
		SoilRequirements:  []string{"Well-drained soil", "pH 6.0-7.0"},
		WaterRequirements: "Regular rainfall or irrigation",
		MarketPrice:       &price,
		Variety:           "Local variety",
		PlantingInstructions: &models.PlantingInstructions{
			Spacing:     "30cm x 75cm",
			Depth:       "2-3cm",
			SoilPrep:    "Deep plowing and ridging",
			Fertilizer:  "Basal fertilizer at planting",
			PestControl: "Regular monitoring and IPM",
		},
	}

	if d.confidence > 0 {
		rec.Confidence = d.confidence
	}
	if rec.Reason == "" {
		rec.Reason = "Suitable for current soil conditions"
	}
	if rec.ExpectedYield == "" {
		rec.ExpectedYield = defaultYield
	}
	if rec.Profitability == "" {
		rec.Profitability = models.ProfitabilityMedium
	}
	if rec.PlantingTime == "" {
		rec.PlantingTime = defaultPlantingTime
	}
	if rec.HarvestTime == "" {
		rec.HarvestTime = defaultHarvestTime
	}
	return rec
}

func cropName(line string) string {
	if m := cropPattern.FindString(line); m != "" {
		return strings.ToUpper(m[:1]) + strings.ToLower(m[1:])
	}

	head := numberPrefix.ReplaceAllString(line, "")
	if i := strings.IndexAny(head, "(:"); i >= 0 {
		head = head[:i]
	}
	return strings.Trim(head, "*_# \t")
}

func extractYield(line string) string {
	if m := yieldValue.FindStringSubmatch(line); m != nil {
		return m[1] + " tonnes/hectare"
	}
	return defaultYield
}

func extractProfitability(lower string) models.Profitability {
	switch {
	case strings.Contains(lower, "high"):
		return models.ProfitabilityHigh
	case strings.Contains(lower, "low"):
		return models.ProfitabilityLow
	default:
		return models.ProfitabilityMedium
	}
}

// extractTiming reads a planting window from the text before "harvest" and
// a harvest window from the text after it. A missing harvest window comes
// back empty.
func extractTiming(line string) (planting, harvest string) {
	cut := len(line)
	if loc := harvestWord.FindStringIndex(line); loc != nil {
		cut = loc[0]
	}

	planting = findMonthRange(line[:cut])
	if planting == "" {
		planting = defaultPlantingTime
	}
	harvest = findMonthRange(line[cut:])
	return planting, harvest
}

func findMonthRange(s string) string {
	m := monthRange.FindStringSubmatch(s)
	if m == nil {
		return ""
	}
	if m[2] == "" {
		return capitalize(m[1])
	}
	return capitalize(m[1]) + "-" + capitalize(m[2])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
