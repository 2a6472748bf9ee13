package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ivanoskov/atm_bot/internal/atm"
	"github.com/ivanoskov/atm_bot/internal/charts"
	"github.com/ivanoskov/atm_bot/internal/service"
)

// botAPI - часть tgbotapi.BotAPI, которой пользуется бот
type botAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

type updateSource interface {
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// chatState хранит сообщение с клавиатурой банкомата, которое бот редактирует
type chatState struct {
	messageID int
}

type Bot struct {
	api     botAPI
	updates updateSource
	teller  *service.Teller
	charts  *charts.ChartGenerator
	logger  *zap.Logger

	mu    sync.Mutex
	chats map[int64]*chatState // состояния чатов по их ID
}

func NewBot(token string, teller *service.Teller, logger *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram api: %w", err)
	}

	b := newBot(api, teller, logger)
	b.updates = api
	logger.Info("telegram bot authorized", zap.String("username", api.Self.UserName))
	return b, nil
}

func newBot(api botAPI, teller *service.Teller, logger *zap.Logger) *Bot {
	return &Bot{
		api:    api,
		teller: teller,
		charts: charts.NewChartGenerator(),
		logger: logger,
		chats:  make(map[int64]*chatState),
	}
}

// Start запускает бота в режиме long polling до отмены ctx
func (b *Bot) Start(ctx context.Context) error {
	if b.updates == nil {
		return fmt.Errorf("bot has no update source")
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.updates.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.updates.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if err := b.handleUpdate(update); err != nil {
				// Логируем ошибку, но продолжаем работу
				b.logger.Error("failed to handle update", zap.Int("update_id", update.UpdateID), zap.Error(err))
			}
		}
	}
}

// HandleWebhook - точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return fmt.Errorf("failed to decode update: %w", err)
	}

	return b.handleUpdate(update)
}

// session возвращает сессию чата; переходы по таймеру перерисовывают клавиатуру чата
func (b *Bot) session(chatID int64) (*atm.Session, error) {
	return b.teller.Session(chatID, func(d atm.Directive) {
		if err := b.show(chatID, d); err != nil {
			b.logger.Error("failed to render timed transition",
				zap.Int64("chat_id", chatID),
				zap.Stringer("screen", d.Screen),
				zap.Error(err))
		}
	})
}

func (b *Bot) messageID(chatID int64) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if st, ok := b.chats[chatID]; ok {
		return st.messageID
	}
	return 0
}

func (b *Bot) setMessageID(chatID int64, messageID int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.chats[chatID]
	if !ok {
		st = &chatState{}
		b.chats[chatID] = st
	}
	st.messageID = messageID
}

// show редактирует сообщение с клавиатурой чата или отправляет новое
func (b *Bot) show(chatID int64, d atm.Directive) error {
	text, markup := b.renderDirective(d)

	if messageID := b.messageID(chatID); messageID != 0 {
		edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
		edit.ReplyMarkup = markup
		if _, err := b.api.Send(edit); err != nil {
			if isNotModified(err) {
				return nil
			}
			return fmt.Errorf("failed to edit atm message: %w", err)
		}
		return nil
	}

	return b.showNew(chatID, text, markup)
}

func (b *Bot) showNew(chatID int64, text string, markup *tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if markup != nil {
		msg.ReplyMarkup = *markup
	}
	sent, err := b.api.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send atm message: %w", err)
	}
	b.setMessageID(chatID, sent.MessageID)
	return nil
}

func (b *Bot) sendPhoto(chatID int64, name string, png []byte, caption string) error {
	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: png})
	photo.Caption = caption
	if _, err := b.api.Send(photo); err != nil {
		return fmt.Errorf("failed to send chart: %w", err)
	}
	return nil
}

func (b *Bot) sendErrorMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "❌ "+text)
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("failed to send error message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

// Telegram отвечает ошибкой, если текст и клавиатура не изменились
func isNotModified(err error) bool {
	return strings.Contains(err.Error(), "message is not modified")
}
