package model

import (
	"time"

	"github.com/google/uuid"
)

// SessionEventKind - вид события сессии, который попадает в журнал
type SessionEventKind string

const (
	EventLogin       SessionEventKind = "login"
	EventPinChanged  SessionEventKind = "pin_changed"
	EventCardBlocked SessionEventKind = "card_blocked"
	EventReset       SessionEventKind = "reset"
)

// SessionEvent - запись журнала о смене состояния сессии пользователя
type SessionEvent struct {
	ID        string           `json:"id"`
	ChatID    int64            `json:"chat_id"`
	Kind      SessionEventKind `json:"kind"`
	Screen    string           `json:"screen"`
	CreatedAt time.Time        `json:"created_at"`
}

// GenerateID генерирует новый UUID для события
func (e *SessionEvent) GenerateID() {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
}
