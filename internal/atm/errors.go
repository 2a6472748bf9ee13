package atm

import "errors"

// Ошибки валидации ввода. Все они восстанавливаемые: сессия остаётся на текущем экране.
var (
	ErrIncompletePin          = errors.New("pin must have 4 digits")
	ErrWrongPin               = errors.New("incorrect pin")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrAmountNotMultipleOfTen = errors.New("amount must be a multiple of 10")
	ErrInsufficientBalance    = errors.New("insufficient balance")
	ErrInvalidAccountNumber   = errors.New("invalid account number")
	ErrPinMismatch            = errors.New("current pin is incorrect")
	ErrPinsDoNotMatch         = errors.New("new pins do not match")
)

// Ошибки управления сессией.
var (
	ErrCardBlocked       = errors.New("card blocked")
	ErrInvalidDigit      = errors.New("invalid digit")
	ErrInvalidTransition = errors.New("invalid transition")
)

// userMessage возвращает текст, который показывается на экране банкомата
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrCardBlocked):
		return "Card blocked. Please contact your bank."
	case errors.Is(err, ErrIncompletePin):
		return "Enter all 4 digits."
	case errors.Is(err, ErrWrongPin):
		return "Incorrect PIN. Try again."
	case errors.Is(err, ErrInvalidAmount):
		return "Enter a valid amount."
	case errors.Is(err, ErrAmountNotMultipleOfTen):
		return "Amount must be a multiple of 10."
	case errors.Is(err, ErrInsufficientBalance):
		return "Insufficient balance."
	case errors.Is(err, ErrInvalidAccountNumber):
		return "Enter a valid account number."
	case errors.Is(err, ErrPinMismatch):
		return "Current PIN is incorrect."
	case errors.Is(err, ErrPinsDoNotMatch):
		return "New PINs do not match."
	case errors.Is(err, ErrInvalidDigit):
		return "Use the digit keys 0-9."
	case errors.Is(err, ErrInvalidTransition):
		return "This action is not available here."
	default:
		return err.Error()
	}
}
