package bot

import (
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/recommend"
)

const (
	ratingPrefix      = "rate:"
	maxFollowUpsShown = 3
	// maxMessageRunes is Telegram's limit on a message's text.
	maxMessageRunes = 4096
)

func ratingKeyboard(turnID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👍", ratingPrefix+string(models.RatingUp)+":"+turnID),
			tgbotapi.NewInlineKeyboardButtonData("👎", ratingPrefix+string(models.RatingDown)+":"+turnID),
		),
	)
}

// parseRatingData reads callback data of the form rate:<up|down>:<turn id>.
func parseRatingData(data string) (turnID string, rating models.Rating, ok bool) {
	rest, found := strings.CutPrefix(data, ratingPrefix)
	if !found {
		return "", "", false
	}
	r, id, found := strings.Cut(rest, ":")
	if !found || id == "" {
		return "", "", false
	}

	rating = models.Rating(r)
	if rating != models.RatingUp && rating != models.RatingDown {
		return "", "", false
	}
	return id, rating, true
}

func formatAnswer(turn models.ChatTurn, resp models.StructuredResponse) string {
	var b strings.Builder
	b.WriteString(turn.Content)

	if turn.TeachingTip != "" {
		b.WriteString("\n\n💡 " + turn.TeachingTip)
	}

	qs := resp.FollowUpQuestions
	if len(qs) > maxFollowUpsShown {
		qs = qs[:maxFollowUpsShown]
	}
	if len(qs) > 0 {
		b.WriteString("\n\n" + formatQuestions("You might also ask:", qs))
	}

	if turn.Confidence != nil {
		fmt.Fprintf(&b, "\n\nConfidence: %d%%", int(*turn.Confidence*100+0.5))
	}
	return b.String()
}

// splitMessage cuts text into parts of at most limit runes, preferring to
// break after a newline in the second half of a part.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	var parts []string
	for len(runes) > limit {
		cut := limit
		for i := limit - 1; i > limit/2; i-- {
			if runes[i] == '\n' {
				cut = i + 1
				break
			}
		}
		if part := strings.TrimRight(string(runes[:cut]), "\n"); part != "" {
			parts = append(parts, part)
		}
		runes = runes[cut:]
		for len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	if len(runes) > 0 || len(parts) == 0 {
		parts = append(parts, string(runes))
	}
	return parts
}

func formatQuestions(title string, qs []string) string {
	var b strings.Builder
	b.WriteString(title)
	for _, q := range qs {
		b.WriteString("\n• " + q)
	}
	return b.String()
}

func formatRecommendations(result recommend.Result) string {
	var b strings.Builder
	b.WriteString("*Crop recommendations*\n")
	if result.Source == recommend.SourceDefault {
		b.WriteString(escapeMarkdown("Unable to get AI recommendations. Showing default suggestions.") + "\n")
	}

	for i, r := range result.Recommendations {
		b.WriteString("\n")
		fmt.Fprintf(&b, "*%d\\. %s*", i+1, escapeMarkdown(r.CropName))
		if r.Variety != "" {
			b.WriteString(" " + escapeMarkdown("("+r.Variety+")"))
		}
		b.WriteString("\n")
		b.WriteString(escapeMarkdown(fmt.Sprintf("Confidence: %d%% | Profitability: %s", int(r.Confidence*100+0.5), r.Profitability)) + "\n")
		b.WriteString(escapeMarkdown("Yield: "+r.ExpectedYield) + "\n")
		b.WriteString(escapeMarkdown("Plant: "+r.PlantingTime+" | Harvest: "+r.HarvestTime) + "\n")
		if r.MarketPrice != nil {
			b.WriteString(escapeMarkdown("Market price: $"+strconv.FormatFloat(*r.MarketPrice, 'f', -1, 64)+"/tonne") + "\n")
		}
		b.WriteString("_" + escapeMarkdown(r.Reason) + "_\n")
	}
	return b.String()
}

func formatWeather(s models.WeatherSnapshot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌤 Weather for %s\n", s.Location)
	fmt.Fprintf(&b, "%s\n", s.Description)
	fmt.Fprintf(&b, "🌡 %s°C - %s°C | 💧 %s%% humidity\n", num(s.Temperature.Min), num(s.Temperature.Max), num(s.Humidity))
	fmt.Fprintf(&b, "🌧 %smm rain | 💨 %s km/h wind", num(s.Rainfall), num(s.WindSpeed))
	if s.UVIndex != nil {
		fmt.Fprintf(&b, " | UV %d", *s.UVIndex)
	}

	if len(s.Forecast) > 0 {
		b.WriteString("\n\nNext days:")
		for _, d := range s.Forecast {
			fmt.Fprintf(&b, "\n%s: %s, %s-%s°C", d.Date.Format("Mon 2 Jan"), d.Condition, num(d.Temperature.Min), num(d.Temperature.Max))
		}
	}
	return b.String()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// escapeMarkdown escapes the characters MarkdownV2 reserves.
func escapeMarkdown(text string) string {
	specialChars := []string{"\\", "_", "*", "[", "]", "(", ")", "~", "`", ">", "#", "+", "-", "=", "|", "{", "}", ".", "!"}
	escaped := text
	for _, char := range specialChars {
		escaped = strings.ReplaceAll(escaped, char, "\\"+char)
	}
	return escaped
}
