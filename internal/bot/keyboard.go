package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/atm_bot/internal/atm"
)

// Данные callback-кнопок
const (
	dataStart     = "atm_start"
	dataCancel    = "atm_cancel"
	dataConfirm   = "key_ok"
	dataBackspace = "key_clear"
	prefixDigit   = "key_"
	prefixMenu    = "menu_"
)

func (b *Bot) getWelcomeKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("💳 Start", dataStart),
		),
	)
}

// getKeypadKeyboard повторяет клавиатуру банкомата: 1-9, C, 0, OK
func (b *Bot) getKeypadKeyboard(withCancel bool) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, keys := range [][]string{{"1", "2", "3"}, {"4", "5", "6"}, {"7", "8", "9"}} {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(keys))
		for _, key := range keys {
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(key, prefixDigit+key))
		}
		rows = append(rows, row)
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("C", dataBackspace),
		tgbotapi.NewInlineKeyboardButtonData("0", prefixDigit+"0"),
		tgbotapi.NewInlineKeyboardButtonData("OK", dataConfirm),
	))
	if withCancel {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✖️ Cancel", dataCancel),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getMenuKeyboard(items []atm.MenuItem) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, item := range items {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(item.Label(), prefixMenu+item.Key()))
		if len(row) == 2 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func (b *Bot) getBackKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Back to Menu", dataCancel),
		),
	)
}
