package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/ivanoskov/atm_bot/internal/model"
)

// MemoryRepository хранит журнал в памяти процесса.
// Используется без Supabase и в тестах.
type MemoryRepository struct {
	mu           sync.RWMutex
	transactions []model.Transaction
	events       []model.SessionEvent
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	transaction.GenerateID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.transactions = append(r.transactions, *transaction)
	return nil
}

func (r *MemoryRepository) GetTransactions(ctx context.Context, chatID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Transaction, 0)
	for i := len(r.transactions) - 1; i >= 0; i-- {
		t := r.transactions[i]
		if t.ChatID != chatID {
			continue
		}
		if filter.StartDate != nil && t.CreatedAt.Before(*filter.StartDate) {
			continue
		}
		if filter.EndDate != nil && t.CreatedAt.After(*filter.EndDate) {
			continue
		}
		if filter.Kind != "" && t.Kind != filter.Kind {
			continue
		}
		out = append(out, t)
	}

	// Сначала новые; при равном времени - позже записанные
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *MemoryRepository) CreateSessionEvent(ctx context.Context, event *model.SessionEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	event.GenerateID()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, *event)
	return nil
}

func (r *MemoryRepository) GetSessionEvents(ctx context.Context, chatID int64, limit int) ([]model.SessionEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.SessionEvent, 0)
	for i := len(r.events) - 1; i >= 0; i-- {
		if r.events[i].ChatID == chatID {
			out = append(out, r.events[i])
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
