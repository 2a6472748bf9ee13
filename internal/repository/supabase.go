package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/supabase-community/supabase-go"
	"go.uber.org/zap"

	"github.com/ivanoskov/atm_bot/internal/model"
)

const (
	transactionsTable  = "atm_transactions"
	sessionEventsTable = "atm_session_events"
)

type SupabaseRepository struct {
	client *supabase.Client
	logger *zap.Logger
}

func NewSupabaseRepository(url, key string, logger *zap.Logger) (*SupabaseRepository, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &SupabaseRepository{
		client: client,
		logger: logger,
	}, nil
}

func (r *SupabaseRepository) CreateTransaction(ctx context.Context, transaction *model.Transaction) error {
	transaction.GenerateID()
	data, count, err := r.client.From(transactionsTable).Insert(transaction, false, "", "representation", "").Execute()
	if err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	r.logger.Debug("transaction journaled",
		zap.String("id", transaction.ID),
		zap.Int64("chat_id", transaction.ChatID),
		zap.Int64("count", count))

	// Парсим ответ, чтобы получить время записи на стороне базы
	var created []model.Transaction
	if err := json.Unmarshal(data, &created); err != nil {
		return fmt.Errorf("failed to parse created transaction: %w", err)
	}
	if len(created) > 0 && !created[0].CreatedAt.IsZero() {
		transaction.CreatedAt = created[0].CreatedAt
	}
	return nil
}

func (r *SupabaseRepository) GetTransactions(ctx context.Context, chatID int64, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := r.client.From(transactionsTable).
		Select("*", "", false).
		Eq("chat_id", strconv.FormatInt(chatID, 10))

	if filter.StartDate != nil {
		query = query.Gte("created_at", filter.StartDate.Format(time.RFC3339))
	}
	if filter.EndDate != nil {
		query = query.Lte("created_at", filter.EndDate.Format(time.RFC3339))
	}
	if filter.Kind != "" {
		query = query.Eq("kind", string(filter.Kind))
	}

	// Сначала новые
	query = query.Order("created_at", nil)

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	var transactions []model.Transaction
	if err := json.Unmarshal(data, &transactions); err != nil {
		return nil, fmt.Errorf("failed to parse transactions: %w", err)
	}
	return transactions, nil
}

func (r *SupabaseRepository) CreateSessionEvent(ctx context.Context, event *model.SessionEvent) error {
	event.GenerateID()
	if _, _, err := r.client.From(sessionEventsTable).Insert(event, false, "", "minimal", "").Execute(); err != nil {
		return fmt.Errorf("failed to create session event: %w", err)
	}
	return nil
}

func (r *SupabaseRepository) GetSessionEvents(ctx context.Context, chatID int64, limit int) ([]model.SessionEvent, error) {
	query := r.client.From(sessionEventsTable).
		Select("*", "", false).
		Eq("chat_id", strconv.FormatInt(chatID, 10)).
		Order("created_at", nil)
	if limit > 0 {
		query = query.Limit(limit, "")
	}

	data, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to get session events: %w", err)
	}

	var events []model.SessionEvent
	if err := json.Unmarshal(data, &events); err != nil {
		return nil, fmt.Errorf("failed to parse session events: %w", err)
	}
	return events, nil
}
