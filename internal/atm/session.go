package atm

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ivanoskov/atm_bot/internal/model"
)

// changePin - состояние мастера смены PIN
type changePin struct {
	step    int
	current string
	next    string
}

// Option настраивает сессию
type Option func(*Session)

// WithScheduler задаёт планировщик отложенных переходов
func WithScheduler(s Scheduler) Option {
	return func(sess *Session) {
		sess.sched = s
	}
}

// WithClock задаёт источник времени для меток транзакций
func WithClock(now func() time.Time) Option {
	return func(sess *Session) {
		sess.now = now
	}
}

// WithRenderHook получает директивы переходов, которые произошли по таймеру
func WithRenderHook(f func(Directive)) Option {
	return func(sess *Session) {
		sess.render = f
	}
}

// WithObserver подписывает f на события сессии
func WithObserver(f func(Event)) Option {
	return func(sess *Session) {
		sess.observers = append(sess.observers, f)
	}
}

// Session - сессия банкомата от экрана приветствия до сброса.
// Все операции сериализованы; таймеры выполняются под тем же мьютексом.
type Session struct {
	mu        sync.Mutex
	cfg       Config
	sched     Scheduler
	now       func() time.Time
	render    func(Directive)
	observers []func(Event)

	screen      Screen
	pinAttempts int
	blocked     bool
	account     Account
	buffer      string
	transferTo  string
	wizard      changePin
	message     Message
	awaiting    bool

	timer  Timer
	gen    uint64
	events []Event
}

// NewSession создаёт сессию на экране приветствия
func NewSession(cfg Config, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid atm config: %w", err)
	}

	s := &Session{
		cfg:     cfg,
		sched:   RealScheduler{},
		now:     time.Now,
		screen:  ScreenWelcome,
		account: newAccount(cfg.PIN, cfg.InitialBalance),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start переводит сессию с экрана приветствия на ввод PIN
func (s *Session) Start() (Directive, error) {
	return s.apply(s.start)
}

// EnterDigit добавляет цифру в буфер ввода, если не достигнут предел режима
func (s *Session) EnterDigit(d rune) (Directive, error) {
	return s.apply(func() error {
		if s.blocked {
			return ErrCardBlocked
		}
		if d < '0' || d > '9' {
			return ErrInvalidDigit
		}
		mode := s.screen.inputMode()
		if mode == ModeNone || s.awaiting {
			return nil
		}
		if len(s.buffer) < mode.MaxLen() {
			s.buffer += string(d)
		}
		s.message = Message{}
		return nil
	})
}

// Backspace удаляет последний введённый символ
func (s *Session) Backspace() (Directive, error) {
	return s.apply(func() error {
		if s.blocked {
			return ErrCardBlocked
		}
		if s.awaiting || s.buffer == "" {
			return nil
		}
		s.buffer = s.buffer[:len(s.buffer)-1]
		s.message = Message{}
		return nil
	})
}

// Confirm проверяет буфер по правилам текущего экрана.
// Возвращает ошибку валидации, если ввод отклонён; экран при этом не меняется.
func (s *Session) Confirm() (Directive, error) {
	return s.apply(func() error {
		if s.blocked {
			return ErrCardBlocked
		}
		if s.awaiting {
			return nil
		}

		switch s.screen {
		case ScreenWelcome:
			return s.start()
		case ScreenPinEntry:
			return s.confirmPin()
		case ScreenBalance, ScreenMiniStatement:
			s.goTo(ScreenMenu)
			return nil
		case ScreenWithdraw:
			return s.confirmDebit(model.KindWithdraw, "")
		case ScreenDeposit:
			return s.confirmDeposit()
		case ScreenTransferAccount:
			return s.confirmTransferAccount()
		case ScreenTransferAmount:
			return s.confirmDebit(model.KindTransfer, s.transferTo)
		case ScreenChangePin:
			return s.confirmChangePin()
		}
		return fmt.Errorf("%w: confirm on %s", ErrInvalidTransition, s.screen)
	})
}

// Cancel сбрасывает ввод и возвращает в меню.
// С экрана ввода PIN возвращает на экран приветствия, счётчик попыток сохраняется.
func (s *Session) Cancel() (Directive, error) {
	return s.apply(func() error {
		if s.blocked {
			return ErrCardBlocked
		}
		switch s.screen {
		case ScreenWelcome, ScreenMenu:
			s.buffer = ""
		case ScreenPinEntry:
			s.goTo(ScreenWelcome)
		default:
			s.goTo(ScreenMenu)
		}
		return nil
	})
}

// Select выбирает пункт главного меню
func (s *Session) Select(item MenuItem) (Directive, error) {
	return s.apply(func() error {
		if s.blocked {
			return ErrCardBlocked
		}
		if s.screen != ScreenMenu {
			return fmt.Errorf("%w: select on %s", ErrInvalidTransition, s.screen)
		}
		switch item {
		case ItemExit:
			s.reset()
		case ItemBalance, ItemMiniStatement, ItemWithdraw, ItemDeposit, ItemTransfer, ItemChangePin:
			s.goTo(item.screen())
		default:
			return fmt.Errorf("%w: unknown menu item %d", ErrInvalidTransition, item)
		}
		return nil
	})
}

// Reset возвращает сессию в исходное состояние. Сохранённый PIN не сбрасывается.
func (s *Session) Reset() Directive {
	d, _ := s.apply(func() error {
		s.reset()
		return nil
	})
	return d
}

// Render возвращает директиву для текущего состояния
func (s *Session) Render() Directive {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.directive()
}

// Close отменяет запланированный переход
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimer()
}

func (s *Session) Screen() Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen
}

func (s *Session) Balance() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.Balance
}

func (s *Session) PinAttempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pinAttempts
}

func (s *Session) Blocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.blocked
}

// History возвращает копию всей истории, от новых к старым
func (s *Session) History() []model.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account.recent(len(s.account.History))
}

// apply выполняет fn под мьютексом и рассылает накопленные события после его освобождения
func (s *Session) apply(fn func() error) (Directive, error) {
	s.mu.Lock()
	err := fn()
	if err != nil {
		s.message = Message{Text: userMessage(err), Severity: SeverityError}
	}
	d := s.directive()
	events := s.events
	s.events = nil
	s.mu.Unlock()

	s.dispatch(events)
	return d, err
}

func (s *Session) dispatch(events []Event) {
	for _, ev := range events {
		for _, f := range s.observers {
			f(ev)
		}
	}
}

func (s *Session) emit(kind EventKind, tx model.Transaction) {
	s.events = append(s.events, Event{
		Kind:        kind,
		Screen:      s.screen,
		Transaction: tx,
		At:          s.now(),
	})
}

func (s *Session) start() error {
	if s.blocked {
		return ErrCardBlocked
	}
	if s.screen != ScreenWelcome {
		return fmt.Errorf("%w: start on %s", ErrInvalidTransition, s.screen)
	}
	s.goTo(ScreenPinEntry)
	return nil
}

// goTo выполняет ручной переход: отменяет отложенный переход и очищает ввод
func (s *Session) goTo(screen Screen) {
	s.stopTimer()
	s.screen = screen
	s.buffer = ""
	s.message = Message{}
	s.awaiting = false
	// получатель перевода живёт только до экрана суммы
	if screen != ScreenTransferAmount {
		s.transferTo = ""
	}
	if screen == ScreenChangePin {
		s.wizard = changePin{}
	}
}

func (s *Session) reset() {
	s.goTo(ScreenWelcome)
	s.pinAttempts = 0
	s.blocked = false
	s.account = newAccount(s.account.PIN, s.cfg.InitialBalance)
	s.wizard = changePin{}
	s.emit(EventReset, model.Transaction{})
}

func (s *Session) block() {
	s.goTo(ScreenBlocked)
	s.blocked = true
	s.emit(EventCardBlocked, model.Transaction{})
	s.schedule(s.cfg.BlockResetDelay, s.reset)
}

// succeed показывает сообщение об успехе и планирует возврат в меню
func (s *Session) succeed(text string, delay time.Duration) {
	msg := Message{Text: text, Severity: SeveritySuccess}
	if delay <= 0 {
		s.goTo(ScreenMenu)
		s.message = msg
		return
	}
	s.buffer = ""
	s.message = msg
	s.awaiting = true
	s.schedule(delay, func() { s.goTo(ScreenMenu) })
}

func (s *Session) schedule(d time.Duration, fn func()) {
	s.stopTimer()
	if d <= 0 {
		fn()
		return
	}
	gen := s.gen
	s.timer = s.sched.AfterFunc(d, func() { s.fire(gen, fn) })
}

func (s *Session) stopTimer() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.gen++
}

// fire выполняет отложенный переход, если за это время не было ручного перехода
func (s *Session) fire(gen uint64, fn func()) {
	s.mu.Lock()
	if gen != s.gen {
		s.mu.Unlock()
		return
	}
	s.timer = nil
	fn()
	d := s.directive()
	events := s.events
	s.events = nil
	render := s.render
	s.mu.Unlock()

	s.dispatch(events)
	if render != nil {
		render(d)
	}
}

func (s *Session) confirmPin() error {
	if len(s.buffer) != ModePin.MaxLen() {
		return ErrIncompletePin
	}
	if s.buffer == s.account.PIN {
		s.pinAttempts = 0
		s.goTo(ScreenMenu)
		s.emit(EventLogin, model.Transaction{})
		return nil
	}

	s.pinAttempts++
	s.buffer = ""
	if s.pinAttempts >= s.cfg.MaxPinAttempts {
		s.block()
		return fmt.Errorf("%w: %w", ErrCardBlocked, ErrWrongPin)
	}
	return ErrWrongPin
}

func (s *Session) confirmDebit(kind model.TransactionKind, to string) error {
	amount, err := parseAmount(s.buffer)
	if err != nil {
		return err
	}
	if err := s.account.debit(amount); err != nil {
		return err
	}
	s.commit(kind, amount, to)

	if kind == model.KindTransfer {
		s.succeed(fmt.Sprintf("Transferred ₹%d to %s. New balance: ₹%d", amount, to, s.account.Balance),
			s.cfg.TransferReturnDelay)
		return nil
	}
	s.succeed(fmt.Sprintf("Withdrawn ₹%d. New balance: ₹%d", amount, s.account.Balance), s.cfg.ReturnDelay)
	return nil
}

func (s *Session) confirmDeposit() error {
	amount, err := parseAmount(s.buffer)
	if err != nil {
		return err
	}
	s.account.credit(amount)
	s.commit(model.KindDeposit, amount, "")
	s.succeed(fmt.Sprintf("Deposited ₹%d. New balance: ₹%d", amount, s.account.Balance), s.cfg.ReturnDelay)
	return nil
}

func (s *Session) commit(kind model.TransactionKind, amount int64, to string) {
	tx := model.Transaction{
		Kind:         kind,
		Amount:       amount,
		To:           to,
		BalanceAfter: s.account.Balance,
		CreatedAt:    s.now(),
	}
	tx.GenerateID()
	s.account.record(tx)
	s.emit(EventTransaction, tx)
}

func (s *Session) confirmTransferAccount() error {
	if len(s.buffer) < MinAccountNumberLen {
		return ErrInvalidAccountNumber
	}
	target := s.buffer
	s.goTo(ScreenTransferAmount)
	s.transferTo = target
	return nil
}

func (s *Session) confirmChangePin() error {
	if len(s.buffer) != ModePin.MaxLen() {
		return ErrIncompletePin
	}

	switch s.wizard.step {
	case 0:
		if s.buffer != s.account.PIN {
			s.buffer = ""
			return ErrPinMismatch
		}
		s.wizard.current = s.buffer
		s.wizard.step = 1
	case 1:
		if !isPIN(s.buffer) {
			s.buffer = ""
			return ErrIncompletePin
		}
		s.wizard.next = s.buffer
		s.wizard.step = 2
	default:
		if s.buffer != s.wizard.next {
			s.buffer = ""
			return ErrPinsDoNotMatch
		}
		s.account.PIN = s.wizard.next
		s.wizard = changePin{}
		s.emit(EventPinChanged, model.Transaction{})
		s.succeed("PIN changed successfully!", s.cfg.ReturnDelay)
		return nil
	}
	s.buffer = ""
	s.message = Message{}
	return nil
}

func (s *Session) directive() Directive {
	mode := s.screen.inputMode()
	d := Directive{
		Screen:      s.screen,
		Title:       s.screen.Title(),
		Prompt:      prompt(s.screen, s.wizard.step),
		Mode:        mode,
		Digits:      len(s.buffer),
		Balance:     s.account.Balance,
		History:     s.account.recent(s.cfg.StatementSize),
		TransferTo:  s.transferTo,
		PinAttempts: s.pinAttempts,
		Message:     s.message,
		Awaiting:    s.awaiting,
	}
	if s.screen == ScreenChangePin {
		d.Step = s.wizard.step
	}
	if mode.Masked() {
		d.Input = strings.Repeat("•", len(s.buffer))
	} else {
		d.Input = s.buffer
	}
	if s.screen == ScreenMenu {
		d.Menu = append([]MenuItem(nil), MenuItems...)
	}
	return d
}
