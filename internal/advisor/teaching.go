package advisor

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/xaenox/mudhumeni/internal/models"
)

const minSentenceLength = 20

const (
	genericExplanation = "Understanding the science and reasoning behind farming practices leads to better decision-making and improved results in Zimbabwe's diverse agricultural conditions."
	genericExample     = "Many successful Zimbabwe farmers have achieved excellent results by adapting these practices to their specific local conditions, climate zone, and soil type."
)

var sentenceDelims = regexp.MustCompile(`[.!?]+`)

var (
	causalMarkers = []string{
		"because", "this helps", "this ensures", "the reason",
		"due to", "this allows", "this prevents", "as a result",
	}
	exampleMarkers = []string{
		"example", "for instance", "many farmers", "in zimbabwe",
		"successful farmers", "farmers often", "common practice",
		"typically", "farmers in",
	}
)

var checkPoints = map[models.ExperienceLevel]string{
	models.Beginner:     "Remember that farming is a learning process - start small, observe carefully, and build your knowledge gradually.",
	models.Intermediate: "Keep records of what works well in your specific conditions to improve your farming success year after year.",
	models.Advanced:     "Consider documenting your results to build data for optimizing your farming system over time.",
}

// ExtractTeachingElements pulls the first explanatory and the first
// exemplary sentence out of response, falling back to fixed sentences.
func ExtractTeachingElements(response string, level models.ExperienceLevel) models.TeachingElements {
	var sentences []string
	for _, s := range sentenceDelims.Split(response, -1) {
		if utf8.RuneCountInString(strings.TrimSpace(s)) > minSentenceLength {
			sentences = append(sentences, s)
		}
	}

	return models.TeachingElements{
		Explanation: strings.TrimSpace(firstWith(sentences, causalMarkers, genericExplanation)),
		Example:     strings.TrimSpace(firstWith(sentences, exampleMarkers, genericExample)),
		CheckPoint:  checkPoint(level),
	}
}

func checkPoint(level models.ExperienceLevel) string {
	if tip, ok := checkPoints[level]; ok {
		return tip
	}
	return checkPoints[models.Intermediate]
}

func firstWith(sentences, markers []string, fallback string) string {
	for _, s := range sentences {
		if containsAny(strings.ToLower(s), markers...) {
			return s
		}
	}
	return fallback
}
