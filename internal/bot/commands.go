package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/advisor"
	"github.com/xaenox/mudhumeni/internal/models"
)

const helpText = `Available commands:
/start - Start a new conversation
/help - Show this help message
/level <beginner|intermediate|advanced> - Set your experience level
/crops [ph=6.5 n=15 p=25 k=200 om=3.5 moisture=60 texture=loam location=Harare] - Crop recommendations for your soil
/weather [location] - Weather and farming advice
/season - Current farming season in Zimbabwe

Or just ask a farming question, for example "When should I plant maize in Mashonaland?"`

func (b *Bot) handleCommand(ctx context.Context, message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		b.handleStart(message)
	case "help":
		b.sendMessage(message.Chat.ID, helpText)
	case "level":
		b.handleLevel(message)
	case "crops":
		b.handleCrops(ctx, message)
	case "weather":
		b.handleWeather(ctx, message)
	case "season":
		b.handleSeason(message)
	default:
		b.sendMessage(message.Chat.ID, "Unknown command. Use /help to see available commands.")
	}
}

func (b *Bot) handleStart(message *tgbotapi.Message) {
	s := b.resetSession(message.Chat.ID)
	welcome := s.Turns()[0].Content

	questions := advisor.OpeningQuestions(s.Level(), b.services.Advisor.Season())
	b.sendMessage(message.Chat.ID, welcome+"\n\n"+formatQuestions("To get started:", questions))
}

func (b *Bot) handleLevel(message *tgbotapi.Message) {
	level, ok := models.ParseExperienceLevel(strings.ToLower(strings.TrimSpace(message.CommandArguments())))
	if !ok {
		b.sendMessage(message.Chat.ID, "Usage: /level beginner|intermediate|advanced")
		return
	}

	b.session(message.Chat.ID).SetLevel(level)
	b.sendMessage(message.Chat.ID, fmt.Sprintf("Got it, I'll tailor my advice to your level: %s.", level))
}

func (b *Bot) handleCrops(ctx context.Context, message *tgbotapi.Message) {
	soil, err := parseSoilArgs(message.CommandArguments())
	if err != nil {
		b.sendMessage(message.Chat.ID, err.Error()+"\n\n"+helpText)
		return
	}

	b.sendTyping(message.Chat.ID)
	result := b.services.Recommender.Recommend(ctx, soil)
	b.logger.Info("Crop recommendations served",
		zap.Int64("chat_id", message.Chat.ID),
		zap.String("source", string(result.Source)),
		zap.Int("count", len(result.Recommendations)))

	b.sendMarkdown(message.Chat.ID, formatRecommendations(result))
}

func (b *Bot) handleWeather(ctx context.Context, message *tgbotapi.Message) {
	location := strings.TrimSpace(message.CommandArguments())

	snap, err := b.services.Weather.Current(ctx, location)
	if err != nil {
		b.logger.Error("Failed to get weather",
			zap.Error(err),
			zap.String("location", location))
		b.sendErrorMessage(message.Chat.ID, "Sorry, weather data is unavailable right now.")
		return
	}
	b.sendMessage(message.Chat.ID, formatWeather(snap))

	b.sendTyping(message.Chat.ID)
	advice := b.services.WeatherAdvisor.Advise(ctx, snap)
	b.sendMessage(message.Chat.ID, "🌾 Farming advice\n\n"+advice.ResponseText)
}

func (b *Bot) handleSeason(message *tgbotapi.Message) {
	info := b.services.Advisor.Season()
	b.sendMessage(message.Chat.ID, fmt.Sprintf("📅 It's %s: the %s in Zimbabwe.\nThis is the time for %s.",
		info.Month, info.Season, info.Activity))
}
