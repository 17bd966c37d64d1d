package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/xaenox/mudhumeni/internal/advisor"
	"github.com/xaenox/mudhumeni/internal/models"
	"github.com/xaenox/mudhumeni/internal/recommend"
	"github.com/xaenox/mudhumeni/internal/weather"
)

// telegramAPI is the part of *tgbotapi.BotAPI the bot uses.
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Services are the advisory pipelines the bot exposes.
type Services struct {
	Advisor        *advisor.Advisor
	Recommender    *recommend.Service
	Weather        weather.Provider
	WeatherAdvisor *weather.Advisor
}

const (
	// sessionIdleTTL is how long a chat may stay silent before its
	// conversation is dropped.
	sessionIdleTTL = 24 * time.Hour
	pruneInterval  = 10 * time.Minute
)

type chatSession struct {
	session  *advisor.Session
	lastSeen time.Time
}

type Bot struct {
	api      telegramAPI
	services Services
	logger   *zap.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[int64]*chatSession
}

func New(token string, debug bool, services Services, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = debug

	logger.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))
	return newBot(api, services, logger), nil
}

func newBot(api telegramAPI, services Services, logger *zap.Logger) *Bot {
	return &Bot{
		api:      api,
		services: services,
		logger:   logger,
		now:      time.Now,
		sessions: make(map[int64]*chatSession),
	}
}

// Start polls for updates until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	var wg sync.WaitGroup
	defer wg.Wait()

	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := b.pruneSessions(); n > 0 {
				b.logger.Debug("Pruned idle chat sessions", zap.Int("count", n))
			}
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// session returns the chat's session, creating it on first use.
func (b *Bot) session(chatID int64) *advisor.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	cs, ok := b.sessions[chatID]
	if !ok {
		cs = &chatSession{session: b.newSession(chatID, models.Intermediate)}
		b.sessions[chatID] = cs
	}
	cs.lastSeen = b.now()
	return cs.session
}

func (b *Bot) resetSession(chatID int64) *advisor.Session {
	b.mu.Lock()
	defer b.mu.Unlock()

	level := models.Intermediate
	if old, ok := b.sessions[chatID]; ok {
		level = old.session.Level()
	}
	cs := &chatSession{session: b.newSession(chatID, level), lastSeen: b.now()}
	b.sessions[chatID] = cs
	return cs.session
}

func (b *Bot) newSession(chatID int64, level models.ExperienceLevel) *advisor.Session {
	return advisor.NewSession(b.services.Advisor, level, b.logger.With(zap.Int64("chat_id", chatID)))
}

// pruneSessions drops chats idle for longer than sessionIdleTTL and
// returns how many were dropped.
func (b *Bot) pruneSessions() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	cutoff := b.now().Add(-sessionIdleTTL)
	n := 0
	for id, cs := range b.sessions {
		if cs.lastSeen.Before(cutoff) {
			delete(b.sessions, id)
			n++
		}
	}
	return n
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.IsCommand() {
		b.handleCommand(ctx, message)
		return
	}

	content := message.Text
	if message.Caption != "" {
		content = message.Caption
	}
	if strings.TrimSpace(content) == "" {
		return
	}

	b.sendTyping(message.Chat.ID)

	turn, resp, err := b.session(message.Chat.ID).Submit(ctx, content)
	if errors.Is(err, advisor.ErrStaleResponse) {
		return
	}
	if err != nil {
		b.logger.Error("Failed to answer message",
			zap.Error(err),
			zap.Int64("chat_id", message.Chat.ID))
		b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't answer that. Please try again.")
		return
	}

	parts := splitMessage(formatAnswer(turn, resp), maxMessageRunes)
	for i, part := range parts {
		msg := tgbotapi.NewMessage(message.Chat.ID, part)
		if i == 0 {
			msg.ReplyToMessageID = message.MessageID
		}
		if i == len(parts)-1 {
			msg.ReplyMarkup = ratingKeyboard(turn.ID)
		}
		if _, err := b.api.Send(msg); err != nil {
			b.logger.Error("Failed to send answer",
				zap.Error(err),
				zap.Int64("chat_id", message.Chat.ID),
				zap.Int("part", i+1),
				zap.Int("parts", len(parts)))
			b.sendErrorMessage(message.Chat.ID, "Sorry, I couldn't deliver the full answer. Please try again.")
			return
		}
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	turnID, rating, ok := parseRatingData(cb.Data)
	if !ok || cb.Message == nil {
		b.answerCallback(cb.ID, "Unknown action")
		return
	}

	if err := b.session(cb.Message.Chat.ID).Rate(turnID, rating); err != nil {
		b.logger.Warn("Failed to rate turn",
			zap.Error(err),
			zap.String("turn_id", turnID))
		b.answerCallback(cb.ID, "That answer can no longer be rated")
		return
	}
	b.answerCallback(cb.ID, "Thanks for the feedback!")
}

func (b *Bot) answerCallback(id, text string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(id, text)); err != nil {
		b.logger.Error("Failed to answer callback", zap.Error(err))
	}
}

func (b *Bot) sendTyping(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.logger.Debug("Failed to send chat action", zap.Error(err))
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageRunes) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			b.logger.Error("Failed to send message",
				zap.Error(err),
				zap.Int64("chat_id", chatID))
			return
		}
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "MarkdownV2"
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "⚠️ "+text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID))
	}
}
