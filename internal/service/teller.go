package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ivanoskov/atm_bot/internal/atm"
	"github.com/ivanoskov/atm_bot/internal/model"
)

const (
	defaultJournalTimeout = 5 * time.Second
	// DefaultIdleTTL - через сколько неактивная сессия чата выгружается
	DefaultIdleTTL = 30 * time.Minute
)

// Repository определяет интерфейс журнала операций
type Repository interface {
	CreateTransaction(ctx context.Context, transaction *model.Transaction) error
	GetTransactions(ctx context.Context, chatID int64, filter model.TransactionFilter) ([]model.Transaction, error)
	CreateSessionEvent(ctx context.Context, event *model.SessionEvent) error
	GetSessionEvents(ctx context.Context, chatID int64, limit int) ([]model.SessionEvent, error)
}

// Teller держит по одной сессии банкомата на чат и ведёт журнал операций
type Teller struct {
	repo           Repository
	cfg            atm.Config
	logger         *zap.Logger
	opts           []atm.Option
	journalTimeout time.Duration
	now            func() time.Time

	mu       sync.Mutex
	sessions map[int64]*atm.Session
	lastUsed map[int64]time.Time
}

// NewTeller создает новый экземпляр Teller.
// opts применяются к каждой создаваемой сессии.
func NewTeller(repo Repository, cfg atm.Config, logger *zap.Logger, opts ...atm.Option) *Teller {
	return &Teller{
		repo:           repo,
		cfg:            cfg,
		logger:         logger,
		opts:           opts,
		journalTimeout: defaultJournalTimeout,
		now:            time.Now,
		sessions:       make(map[int64]*atm.Session),
		lastUsed:       make(map[int64]time.Time),
	}
}

// Session возвращает сессию чата, создавая её при первом обращении.
// render получает директивы переходов по таймеру; для существующей сессии он не заменяется.
func (t *Teller) Session(chatID int64, render func(atm.Directive)) (*atm.Session, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if s, ok := t.sessions[chatID]; ok {
		t.lastUsed[chatID] = t.now()
		return s, nil
	}

	opts := append([]atm.Option{}, t.opts...)
	opts = append(opts, atm.WithObserver(t.observer(chatID)))
	if render != nil {
		opts = append(opts, atm.WithRenderHook(render))
	}

	s, err := atm.NewSession(t.cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create session for chat %d: %w", chatID, err)
	}
	t.sessions[chatID] = s
	t.lastUsed[chatID] = t.now()
	t.logger.Info("atm session created", zap.Int64("chat_id", chatID))
	return s, nil
}

// Sessions возвращает число активных сессий
func (t *Teller) Sessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// Close останавливает отложенные переходы всех сессий
func (t *Teller) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for chatID, s := range t.sessions {
		s.Close()
		delete(t.sessions, chatID)
		delete(t.lastUsed, chatID)
	}
}

// EvictIdle закрывает сессии, к которым не обращались дольше ttl.
// Следующее обращение чата начнёт новую сессию с экрана приветствия.
func (t *Teller) EvictIdle(ttl time.Duration) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	deadline := t.now().Add(-ttl)
	evicted := 0
	for chatID, used := range t.lastUsed {
		if used.After(deadline) {
			continue
		}
		if s, ok := t.sessions[chatID]; ok {
			s.Close()
		}
		delete(t.sessions, chatID)
		delete(t.lastUsed, chatID)
		evicted++
		t.logger.Debug("idle atm session evicted", zap.Int64("chat_id", chatID))
	}
	return evicted
}

// RunEviction раз в interval выгружает сессии, простаивающие дольше ttl, пока не отменён ctx
func (t *Teller) RunEviction(ctx context.Context, interval, ttl time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := t.EvictIdle(ttl); n > 0 {
				t.logger.Info("idle atm sessions evicted", zap.Int("count", n), zap.Int("active", t.Sessions()))
			}
		}
	}
}

func (t *Teller) observer(chatID int64) func(atm.Event) {
	return func(ev atm.Event) {
		ctx, cancel := context.WithTimeout(context.Background(), t.journalTimeout)
		defer cancel()

		if err := t.journal(ctx, chatID, ev); err != nil {
			// Журнал не откатывает операцию: сессия уже перешла в новое состояние
			t.logger.Error("failed to journal atm event",
				zap.Int64("chat_id", chatID),
				zap.Stringer("kind", ev.Kind),
				zap.Error(err))
		}
	}
}

func (t *Teller) journal(ctx context.Context, chatID int64, ev atm.Event) error {
	if ev.Kind == atm.EventTransaction {
		tx := ev.Transaction
		tx.ChatID = chatID
		t.logger.Info("atm transaction",
			zap.Int64("chat_id", chatID),
			zap.String("kind", string(tx.Kind)),
			zap.Int64("amount", tx.Amount),
			zap.Int64("balance_after", tx.BalanceAfter))
		return t.repo.CreateTransaction(ctx, &tx)
	}

	var kind model.SessionEventKind
	switch ev.Kind {
	case atm.EventLogin:
		kind = model.EventLogin
	case atm.EventPinChanged:
		kind = model.EventPinChanged
	case atm.EventCardBlocked:
		kind = model.EventCardBlocked
		t.logger.Warn("card blocked", zap.Int64("chat_id", chatID))
	case atm.EventReset:
		kind = model.EventReset
	default:
		return fmt.Errorf("unknown event kind %d", ev.Kind)
	}

	return t.repo.CreateSessionEvent(ctx, &model.SessionEvent{
		ChatID:    chatID,
		Kind:      kind,
		Screen:    ev.Screen.String(),
		CreatedAt: ev.At,
	})
}

// Statement - выписка по журналу операций чата
type Statement struct {
	ChatID           int64
	Transactions     []model.Transaction
	Count            int
	TotalDeposited   int64
	TotalWithdrawn   int64
	TotalTransferred int64
	Text             string
}

// Statement собирает выписку из журнала по последним limit операциям
func (t *Teller) Statement(ctx context.Context, chatID int64, limit int) (*Statement, error) {
	transactions, err := t.repo.GetTransactions(ctx, chatID, model.TransactionFilter{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to get transactions: %w", err)
	}

	st := summarize(chatID, transactions)
	st.Text = formatStatement(st)
	return st, nil
}

// Activity возвращает последние события сессий чата
func (t *Teller) Activity(ctx context.Context, chatID int64, limit int) ([]model.SessionEvent, error) {
	events, err := t.repo.GetSessionEvents(ctx, chatID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get session events: %w", err)
	}
	return events, nil
}

// summarize считает итоги по видам операций
func summarize(chatID int64, transactions []model.Transaction) *Statement {
	sorted := append([]model.Transaction(nil), transactions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})

	st := &Statement{
		ChatID:       chatID,
		Transactions: sorted,
		Count:        len(sorted),
	}
	for _, tx := range sorted {
		switch tx.Kind {
		case model.KindDeposit:
			st.TotalDeposited += tx.Amount
		case model.KindWithdraw:
			st.TotalWithdrawn += tx.Amount
		case model.KindTransfer:
			st.TotalTransferred += tx.Amount
		}
	}
	return st
}

func formatStatement(st *Statement) string {
	if st.Count == 0 {
		return "📊 Statement\n\nNo transactions yet."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📊 Statement (%d operations)\n\n", st.Count)
	fmt.Fprintf(&b, "💰 Deposited: ₹%d\n", st.TotalDeposited)
	fmt.Fprintf(&b, "💸 Withdrawn: ₹%d\n", st.TotalWithdrawn)
	fmt.Fprintf(&b, "🔁 Transferred: ₹%d\n\n", st.TotalTransferred)
	b.WriteString("Last operations:\n")
	for _, tx := range st.Transactions {
		b.WriteString("• " + tx.Line() + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
