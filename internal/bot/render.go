package bot

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/atm_bot/internal/atm"
)

// renderDirective превращает директиву сессии в текст сообщения и клавиатуру.
// Клавиатура nil означает, что кнопок быть не должно.
func (b *Bot) renderDirective(d atm.Directive) (string, *tgbotapi.InlineKeyboardMarkup) {
	var text strings.Builder
	fmt.Fprintf(&text, "🏧 %s\n", d.Title)
	if d.Prompt != "" && d.Screen != atm.ScreenBlocked {
		text.WriteString(d.Prompt + "\n")
	}
	text.WriteString("\n")

	var markup tgbotapi.InlineKeyboardMarkup
	switch d.Screen {
	case atm.ScreenWelcome:
		markup = b.getWelcomeKeyboard()
	case atm.ScreenPinEntry, atm.ScreenChangePin:
		text.WriteString(pinDots(d.Digits) + "\n")
		markup = b.getKeypadKeyboard(d.Screen == atm.ScreenChangePin)
	case atm.ScreenMenu:
		markup = b.getMenuKeyboard(d.Menu)
	case atm.ScreenBalance:
		fmt.Fprintf(&text, "💵 ₹ %d\n", d.Balance)
		markup = b.getBackKeyboard()
	case atm.ScreenMiniStatement:
		if len(d.History) == 0 {
			text.WriteString("No transactions yet.\n")
		}
		for _, tx := range d.History {
			text.WriteString("• " + tx.Line() + "\n")
		}
		markup = b.getBackKeyboard()
	case atm.ScreenWithdraw, atm.ScreenDeposit, atm.ScreenTransferAmount:
		if d.TransferTo != "" {
			fmt.Fprintf(&text, "To: %s\n", d.TransferTo)
		}
		fmt.Fprintf(&text, "₹ %s\n", orDefault(d.Input, "0"))
		markup = b.getKeypadKeyboard(true)
	case atm.ScreenTransferAccount:
		text.WriteString(orDefault(d.Input, "-") + "\n")
		markup = b.getKeypadKeyboard(true)
	case atm.ScreenBlocked:
		text.WriteString("⛔ " + d.Prompt + "\n")
	}

	if d.Message.Text != "" && d.Screen != atm.ScreenBlocked {
		text.WriteString("\n" + severityIcon(d.Message.Severity) + d.Message.Text)
	}

	if d.Screen == atm.ScreenBlocked {
		return strings.TrimRight(text.String(), "\n"), nil
	}
	if d.Awaiting {
		markup = b.getBackKeyboard()
	}
	return strings.TrimRight(text.String(), "\n"), &markup
}

func pinDots(n int) string {
	size := atm.ModePin.MaxLen()
	return strings.TrimSpace(strings.Repeat("● ", n) + strings.Repeat("○ ", size-n))
}

func severityIcon(s atm.Severity) string {
	switch s {
	case atm.SeveritySuccess:
		return "✅ "
	case atm.SeverityError:
		return "❌ "
	case atm.SeverityInfo:
		return "ℹ️ "
	}
	return ""
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
