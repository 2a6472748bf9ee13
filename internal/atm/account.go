package atm

import (
	"strconv"

	"github.com/ivanoskov/atm_bot/internal/model"
)

// Account - счёт, которым владеет сессия
type Account struct {
	PIN     string
	Balance int64
	// History хранится от новых к старым
	History []model.Transaction
}

func newAccount(pin string, balance int64) Account {
	return Account{PIN: pin, Balance: balance}
}

func (a *Account) debit(amount int64) error {
	if amount > a.Balance {
		return ErrInsufficientBalance
	}
	a.Balance -= amount
	return nil
}

func (a *Account) credit(amount int64) {
	a.Balance += amount
}

func (a *Account) record(tx model.Transaction) {
	a.History = append([]model.Transaction{tx}, a.History...)
}

// recent возвращает копию n последних операций
func (a *Account) recent(n int) []model.Transaction {
	if n > len(a.History) {
		n = len(a.History)
	}
	out := make([]model.Transaction, n)
	copy(out, a.History[:n])
	return out
}

// parseAmount разбирает сумму из буфера ввода.
// Сумма должна быть положительной и кратной 10.
func parseAmount(buf string) (int64, error) {
	if buf == "" {
		return 0, ErrInvalidAmount
	}
	amount, err := strconv.ParseInt(buf, 10, 64)
	if err != nil || amount <= 0 {
		return 0, ErrInvalidAmount
	}
	if amount%10 != 0 {
		return 0, ErrAmountNotMultipleOfTen
	}
	return amount, nil
}
