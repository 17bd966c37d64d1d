package bot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xaenox/mudhumeni/internal/models"
)

// parseSoilArgs reads key=value pairs over the default soil sample.
// location takes the rest of the line so place names may contain spaces.
func parseSoilArgs(args string) (models.SoilData, error) {
	soil := models.DefaultSoilData()

	if i := strings.Index(args, "location="); i >= 0 {
		soil.Location = strings.TrimSpace(args[i+len("location="):])
		args = args[:i]
	}

	for _, field := range strings.Fields(args) {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return soil, fmt.Errorf("expected key=value, got %q", field)
		}
		key = strings.ToLower(key)

		if key == "texture" {
			t := models.SoilTexture(strings.ToLower(value))
			switch t {
			case models.TextureClay, models.TextureLoam, models.TextureSandy, models.TextureSilt:
				soil.Texture = t
			default:
				return soil, fmt.Errorf("texture must be clay, loam, sandy or silt, got %q", value)
			}
			continue
		}

		v, err := strconv.ParseFloat(value, 64)
		if err != nil || v < 0 {
			return soil, fmt.Errorf("%s must be a non-negative number, got %q", key, value)
		}

		switch key {
		case "ph":
			if v > 14 {
				return soil, fmt.Errorf("ph must be between 0 and 14, got %q", value)
			}
			soil.PH = v
		case "n", "nitrogen":
			soil.Nitrogen = v
		case "p", "phosphorus":
			soil.Phosphorus = v
		case "k", "potassium":
			soil.Potassium = v
		case "om", "organic_matter":
			soil.OrganicMatter = v
		case "moisture":
			soil.Moisture = v
		default:
			return soil, fmt.Errorf("unknown soil field %q", key)
		}
	}
	return soil, nil
}
