// Package tui - терминальный банкомат на bubbletea.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ivanoskov/atm_bot/internal/atm"
)

// refreshMsg приходит, когда сессия сменила экран по таймеру
type refreshMsg struct{}

// Notifier передаёт переходы по таймеру в цикл bubbletea
type Notifier struct {
	ch chan struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan struct{}, 1)}
}

// Hook подходит для atm.WithRenderHook. Не блокирует: модель всё равно
// перечитывает актуальное состояние сессии.
func (n *Notifier) Hook(atm.Directive) {
	select {
	case n.ch <- struct{}{}:
	default:
	}
}

func (n *Notifier) wait() tea.Msg {
	<-n.ch
	return refreshMsg{}
}

type Model struct {
	session   *atm.Session
	notifier  *Notifier
	directive atm.Directive
	styles    styles
	quitting  bool
}

func New(session *atm.Session, notifier *Notifier) Model {
	return Model{
		session:   session,
		notifier:  notifier,
		directive: session.Render(),
		styles:    defaultStyles(),
	}
}

func (m Model) Init() tea.Cmd {
	if m.notifier == nil {
		return nil
	}
	return m.notifier.wait
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case refreshMsg:
		m.directive = m.session.Render()
		return m, m.notifier.wait
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit
	case "enter":
		m.directive, _ = m.session.Confirm()
	case "backspace":
		m.directive, _ = m.session.Backspace()
	case "esc":
		m.directive, _ = m.session.Cancel()
	default:
		if len(msg.Runes) != 1 {
			return m, nil
		}
		r := msg.Runes[0]
		if r == 's' && m.directive.Screen == atm.ScreenWelcome {
			m.directive, _ = m.session.Start()
			return m, nil
		}
		if m.directive.Screen == atm.ScreenMenu {
			m.directive = m.selectByNumber(r)
			return m, nil
		}
		m.directive, _ = m.session.EnterDigit(r)
	}
	return m, nil
}

// selectByNumber выбирает пункт меню по его номеру на экране
func (m Model) selectByNumber(r rune) atm.Directive {
	idx := int(r - '1')
	if idx < 0 || idx >= len(m.directive.Menu) {
		return m.directive
	}
	d, _ := m.session.Select(m.directive.Menu[idx])
	return d
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	d := m.directive
	var b strings.Builder
	b.WriteString(m.styles.title.Render(d.Title) + "\n")
	if d.Prompt != "" && d.Screen != atm.ScreenBlocked {
		b.WriteString(m.styles.prompt.Render(d.Prompt) + "\n\n")
	}

	switch d.Screen {
	case atm.ScreenWelcome:
		b.WriteString(m.styles.item.Render("Press enter or s to start") + "\n")
	case atm.ScreenPinEntry, atm.ScreenChangePin:
		b.WriteString(m.styles.value.Render(dots(d.Digits)) + "\n")
	case atm.ScreenMenu:
		for i, item := range d.Menu {
			b.WriteString(m.styles.item.Render(fmt.Sprintf("%d. %s", i+1, item.Label())) + "\n")
		}
	case atm.ScreenBalance:
		b.WriteString(m.styles.value.Render(fmt.Sprintf("₹ %d", d.Balance)) + "\n")
	case atm.ScreenMiniStatement:
		if len(d.History) == 0 {
			b.WriteString(m.styles.prompt.Render("No transactions yet.") + "\n")
		}
		for _, tx := range d.History {
			b.WriteString(m.styles.item.Render(tx.Line()) + "\n")
		}
	case atm.ScreenWithdraw, atm.ScreenDeposit, atm.ScreenTransferAmount:
		if d.TransferTo != "" {
			b.WriteString(m.styles.prompt.Render("To: "+d.TransferTo) + "\n")
		}
		b.WriteString(m.styles.value.Render("₹ "+orDefault(d.Input, "0")) + "\n")
	case atm.ScreenTransferAccount:
		b.WriteString(m.styles.value.Render(orDefault(d.Input, "-")) + "\n")
	case atm.ScreenBlocked:
		b.WriteString(m.styles.error.Render(d.Prompt) + "\n")
	}

	if d.Message.Text != "" && d.Screen != atm.ScreenBlocked {
		style := m.styles.prompt
		switch d.Message.Severity {
		case atm.SeverityError:
			style = m.styles.error
		case atm.SeveritySuccess:
			style = m.styles.success
		}
		b.WriteString("\n" + style.Render(d.Message.Text) + "\n")
	}

	screen := m.styles.screen.Render(strings.TrimRight(b.String(), "\n"))
	return screen + "\n" + m.styles.help.Render(helpLine(d)) + "\n"
}

func helpLine(d atm.Directive) string {
	switch {
	case d.Screen == atm.ScreenMenu:
		return "1-7 choose • q quit"
	case d.AcceptsInput():
		return "0-9 digits • enter OK • backspace C • esc cancel • q quit"
	}
	return "enter OK • esc back • q quit"
}

func dots(n int) string {
	size := atm.ModePin.MaxLen()
	return strings.TrimSpace(strings.Repeat("● ", n) + strings.Repeat("○ ", size-n))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
