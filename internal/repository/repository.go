package repository

import (
	"context"

	"go.uber.org/zap"

	"github.com/ivanoskov/atm_bot/internal/model"
)

// Repository - журнал операций банкомата
type Repository interface {
	// Транзакции
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, chatID int64, filter model.TransactionFilter) ([]model.Transaction, error)

	// События сессий
	CreateSessionEvent(ctx context.Context, event *model.SessionEvent) error
	GetSessionEvents(ctx context.Context, chatID int64, limit int) ([]model.SessionEvent, error)
}

// Open возвращает журнал в Supabase, если заданы url и key, иначе журнал в памяти
func Open(url, key string, logger *zap.Logger) (Repository, error) {
	if url == "" || key == "" {
		logger.Info("supabase is not configured, journal is kept in memory")
		return NewMemoryRepository(), nil
	}
	return NewSupabaseRepository(url, key, logger)
}
