package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ivanoskov/atm_bot/internal/atm"
)

const (
	statementLimit = 20
	activityLimit  = 10
	requestTimeout = 10 * time.Second
)

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.Message != nil && update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	return b.handleMessage(update.Message)
}

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	switch message.Command() {
	case "start":
		return b.handleStart(message)
	case "statement":
		return b.handleStatement(message)
	case "activity":
		return b.handleActivity(message)
	case "help":
		return b.handleHelp(message)
	}
	return b.handleHelp(message)
}

// handleStart присылает текущий экран банкомата новым сообщением
func (b *Bot) handleStart(message *tgbotapi.Message) error {
	s, err := b.session(message.Chat.ID)
	if err != nil {
		return err
	}
	text, markup := b.renderDirective(s.Render())
	return b.showNew(message.Chat.ID, text, markup)
}

func (b *Bot) handleHelp(message *tgbotapi.Message) error {
	msg := tgbotapi.NewMessage(message.Chat.ID,
		"🏧 ATM simulator\n\n"+
			"/start - show the ATM screen\n"+
			"/statement - statement from the transaction journal\n"+
			"/activity - recent session events\n\n"+
			"You can also type digits instead of pressing the keypad.")
	if _, err := b.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send help: %w", err)
	}
	return nil
}

func (b *Bot) handleStatement(message *tgbotapi.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	st, err := b.teller.Statement(ctx, message.Chat.ID, statementLimit)
	if err != nil {
		b.logger.Error("failed to build statement", zap.Int64("chat_id", message.Chat.ID), zap.Error(err))
		b.sendErrorMessage(message.Chat.ID, "Could not load the statement")
		return nil
	}

	if _, err := b.api.Send(tgbotapi.NewMessage(message.Chat.ID, st.Text)); err != nil {
		return fmt.Errorf("failed to send statement: %w", err)
	}

	png, err := b.charts.GenerateStatementChart(st)
	if err != nil {
		return err
	}
	if png == nil {
		return nil
	}
	return b.sendPhoto(message.Chat.ID, "statement.png", png, "Totals by operation")
}

func (b *Bot) handleActivity(message *tgbotapi.Message) error {
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	events, err := b.teller.Activity(ctx, message.Chat.ID, activityLimit)
	if err != nil {
		b.logger.Error("failed to load activity", zap.Int64("chat_id", message.Chat.ID), zap.Error(err))
		b.sendErrorMessage(message.Chat.ID, "Could not load session activity")
		return nil
	}

	text := "📋 Recent activity:\n"
	if len(events) == 0 {
		text += "\nNo activity yet."
	}
	for _, ev := range events {
		text += fmt.Sprintf("• %s: %s\n", ev.CreatedAt.Format("02.01.2006 15:04:05"), ev.Kind)
	}
	if _, err := b.api.Send(tgbotapi.NewMessage(message.Chat.ID, strings.TrimRight(text, "\n"))); err != nil {
		return fmt.Errorf("failed to send activity: %w", err)
	}
	return nil
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	if callback.Message == nil {
		return nil
	}
	chatID := callback.Message.Chat.ID
	b.setMessageID(chatID, callback.Message.MessageID)

	s, err := b.session(chatID)
	if err != nil {
		return err
	}

	var (
		d        atm.Directive
		opErr    error
		selected atm.MenuItem
	)
	data := callback.Data
	switch {
	case data == dataStart:
		d, opErr = s.Start()
	case data == dataConfirm:
		d, opErr = s.Confirm()
	case data == dataBackspace:
		d, opErr = s.Backspace()
	case data == dataCancel:
		d, opErr = s.Cancel()
	case strings.HasPrefix(data, prefixDigit) && len(data) == len(prefixDigit)+1:
		d, opErr = s.EnterDigit(rune(data[len(prefixDigit)]))
	case strings.HasPrefix(data, prefixMenu):
		item, ok := atm.ParseMenuItem(strings.TrimPrefix(data, prefixMenu))
		if !ok {
			d, opErr = s.Render(), fmt.Errorf("%w: %s", atm.ErrInvalidTransition, data)
			break
		}
		selected = item
		d, opErr = s.Select(item)
	default:
		d = s.Render()
	}

	if opErr != nil {
		b.logger.Debug("atm input rejected",
			zap.Int64("chat_id", chatID),
			zap.Stringer("screen", d.Screen),
			zap.Error(opErr))
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	if _, err := b.api.Request(tgbotapi.NewCallback(callback.ID, callbackText(opErr))); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}

	if err := b.show(chatID, d); err != nil {
		return err
	}

	if selected == atm.ItemMiniStatement && opErr == nil {
		return b.sendStatementChart(chatID, d)
	}
	return nil
}

// handleMessage позволяет набирать цифры текстом вместо кнопок
func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	s, err := b.session(message.Chat.ID)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(message.Text)
	if !isDigits(text) || !s.Render().AcceptsInput() {
		return b.handleStart(message)
	}

	var d atm.Directive
	for _, r := range text {
		if d, err = s.EnterDigit(r); err != nil {
			break
		}
	}
	text, markup := b.renderDirective(d)
	return b.showNew(message.Chat.ID, text, markup)
}

func (b *Bot) sendStatementChart(chatID int64, d atm.Directive) error {
	png, err := b.charts.GenerateBalanceChart(d.History)
	if err != nil {
		return err
	}
	if png == nil {
		return nil
	}
	return b.sendPhoto(chatID, "balance.png", png, "Balance over the last operations")
}

func callbackText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, atm.ErrCardBlocked):
		return "Card blocked"
	case errors.Is(err, atm.ErrInvalidTransition):
		return "Not available"
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
