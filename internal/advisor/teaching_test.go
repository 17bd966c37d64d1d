package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xaenox/mudhumeni/internal/models"
)

func TestExtractTeachingElements(t *testing.T) {
	response := "Mulch the beds because it keeps moisture in the soil. Short one! " +
		"For example, farmers in Masvingo mulch with grass? Done."

	got := ExtractTeachingElements(response, models.Intermediate)

	assert.Equal(t, "Mulch the beds because it keeps moisture in the soil", got.Explanation)
	assert.Equal(t, "For example, farmers in Masvingo mulch with grass", got.Example)
	assert.Equal(t, checkPoints[models.Intermediate], got.CheckPoint)
}

func TestExtractTeachingElements_Fallbacks(t *testing.T) {
	got := ExtractTeachingElements("Weed twice before the canopy closes over the rows.", models.Advanced)

	assert.Equal(t, genericExplanation, got.Explanation)
	assert.Equal(t, genericExample, got.Example)
	assert.Equal(t, checkPoints[models.Advanced], got.CheckPoint)
}

func TestExtractTeachingElements_IgnoresShortFragments(t *testing.T) {
	// 19 characters: too short to count as a sentence
	got := ExtractTeachingElements("Due to rain it rots.", models.Beginner)

	assert.Equal(t, genericExplanation, got.Explanation)
}

func TestExtractTeachingElements_CaseInsensitiveMarkers(t *testing.T) {
	got := ExtractTeachingElements("  TYPICALLY growers split the nitrogen dose  .", models.Beginner)

	assert.Equal(t, "TYPICALLY growers split the nitrogen dose", got.Example)
}

func TestCheckPoint_UnknownLevel(t *testing.T) {
	assert.Equal(t, checkPoints[models.Intermediate], checkPoint(""))
}
