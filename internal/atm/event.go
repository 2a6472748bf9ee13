package atm

import (
	"time"

	"github.com/ivanoskov/atm_bot/internal/model"
)

// EventKind - вид события сессии
type EventKind int

const (
	EventTransaction EventKind = iota + 1
	EventLogin
	EventPinChanged
	EventCardBlocked
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventTransaction:
		return "transaction"
	case EventLogin:
		return "login"
	case EventPinChanged:
		return "pin_changed"
	case EventCardBlocked:
		return "card_blocked"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event сообщает наблюдателям о смене состояния сессии.
// Transaction заполнено только для EventTransaction.
type Event struct {
	Kind        EventKind
	Screen      Screen
	Transaction model.Transaction
	At          time.Time
}
