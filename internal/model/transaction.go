package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// TransactionKind - вид операции банкомата
type TransactionKind string

const (
	KindWithdraw TransactionKind = "withdraw"
	KindDeposit  TransactionKind = "deposit"
	KindTransfer TransactionKind = "transfer"
)

// Title возвращает название операции для выписки
func (k TransactionKind) Title() string {
	switch k {
	case KindWithdraw:
		return "Withdraw"
	case KindDeposit:
		return "Deposit"
	case KindTransfer:
		return "Transfer"
	}
	return string(k)
}

// Transaction - проведённая операция. После создания не изменяется.
type Transaction struct {
	ID           string          `json:"id"`
	ChatID       int64           `json:"chat_id"`
	Kind         TransactionKind `json:"kind"`
	Amount       int64           `json:"amount"`
	To           string          `json:"to,omitempty"`
	BalanceAfter int64           `json:"balance_after"`
	CreatedAt    time.Time       `json:"created_at"`
}

// GenerateID генерирует новый UUID для транзакции, если он еще не установлен
func (t *Transaction) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}

// Line форматирует строку мини-выписки
func (t Transaction) Line() string {
	line := t.CreatedAt.Format("02.01.2006 15:04:05") + ": " + t.Kind.Title() + " ₹" + strconv.FormatInt(t.Amount, 10)
	if t.To != "" {
		line += " to " + t.To
	}
	return line
}

// TransactionFilter ограничивает выборку транзакций из журнала
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Kind      TransactionKind
	Limit     int
}
