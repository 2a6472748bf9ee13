package atm

import "github.com/ivanoskov/atm_bot/internal/model"

// Severity определяет тип сообщения на экране
type Severity int

const (
	SeverityNone Severity = iota
	SeverityInfo
	SeveritySuccess
	SeverityError
)

// Message - временное сообщение на текущем экране
type Message struct {
	Text     string
	Severity Severity
}

// Directive описывает, что должен показать слой представления после перехода
type Directive struct {
	Screen Screen
	Title  string
	Prompt string
	// Step - шаг мастера смены PIN (0..2)
	Step int
	Mode InputMode
	// Input - введённое значение; в режиме PIN цифры заменены точками
	Input       string
	Digits      int
	Balance     int64
	History     []model.Transaction
	TransferTo  string
	PinAttempts int
	Message     Message
	// Awaiting выставлен, пока экран успеха ждёт автоматического возврата в меню
	Awaiting bool
	Menu     []MenuItem
}

// AcceptsInput сообщает, принимает ли экран цифры с клавиатуры
func (d Directive) AcceptsInput() bool {
	return d.Mode != ModeNone && !d.Awaiting
}

// Title возвращает заголовок экрана
func (s Screen) Title() string {
	switch s {
	case ScreenWelcome:
		return "Welcome to ATM"
	case ScreenPinEntry:
		return "Enter PIN"
	case ScreenMenu:
		return "Main Menu"
	case ScreenBalance:
		return "Account Balance"
	case ScreenMiniStatement:
		return "Mini Statement"
	case ScreenWithdraw:
		return "Withdraw"
	case ScreenDeposit:
		return "Deposit"
	case ScreenTransferAccount, ScreenTransferAmount:
		return "Transfer"
	case ScreenChangePin:
		return "Change PIN"
	case ScreenBlocked:
		return "Card Blocked"
	}
	return ""
}

func prompt(s Screen, step int) string {
	switch s {
	case ScreenWelcome:
		return "Insert your card to begin"
	case ScreenPinEntry:
		return "Enter your 4-digit PIN"
	case ScreenMenu:
		return "Choose an operation"
	case ScreenWithdraw, ScreenDeposit, ScreenTransferAmount:
		return "Enter amount (multiples of 10)"
	case ScreenTransferAccount:
		return "Enter recipient account number"
	case ScreenChangePin:
		switch step {
		case 0:
			return "Enter current PIN"
		case 1:
			return "Enter new PIN"
		default:
			return "Confirm new PIN"
		}
	case ScreenBlocked:
		return "Card blocked. Please contact your bank."
	}
	return ""
}
