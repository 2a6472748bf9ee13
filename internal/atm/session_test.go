package atm

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/atm_bot/internal/model"
)

var fixedNow = time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)

func newTestSession(t *testing.T, opts ...Option) (*Session, *ManualScheduler) {
	t.Helper()
	sched := NewManualScheduler()
	opts = append([]Option{
		WithScheduler(sched),
		WithClock(func() time.Time { return fixedNow }),
	}, opts...)
	s, err := NewSession(DefaultConfig(), opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s, sched
}

func typeDigits(t *testing.T, s *Session, digits string) Directive {
	t.Helper()
	var d Directive
	for _, r := range digits {
		var err error
		d, err = s.EnterDigit(r)
		require.NoError(t, err)
	}
	return d
}

func login(t *testing.T, s *Session) {
	t.Helper()
	_, err := s.Start()
	require.NoError(t, err)
	typeDigits(t, s, DefaultPIN)
	d, err := s.Confirm()
	require.NoError(t, err)
	require.Equal(t, ScreenMenu, d.Screen)
}

func choose(t *testing.T, s *Session, item MenuItem) Directive {
	t.Helper()
	d, err := s.Select(item)
	require.NoError(t, err)
	return d
}

func TestSession_StartsOnWelcome(t *testing.T) {
	s, _ := newTestSession(t)

	d := s.Render()
	assert.Equal(t, ScreenWelcome, d.Screen)
	assert.Equal(t, "Welcome to ATM", d.Title)
	assert.Equal(t, DefaultInitialBalance, d.Balance)
	assert.False(t, d.AcceptsInput())
}

func TestSession_InputBufferIsBounded(t *testing.T) {
	tests := []struct {
		name   string
		reach  func(t *testing.T, s *Session)
		maxLen int
	}{
		{
			name: "pin entry",
			reach: func(t *testing.T, s *Session) {
				_, err := s.Start()
				require.NoError(t, err)
			},
			maxLen: 4,
		},
		{
			name: "withdraw amount",
			reach: func(t *testing.T, s *Session) {
				login(t, s)
				choose(t, s, ItemWithdraw)
			},
			maxLen: 6,
		},
		{
			name: "transfer account",
			reach: func(t *testing.T, s *Session) {
				login(t, s)
				choose(t, s, ItemTransfer)
			},
			maxLen: 12,
		},
		{
			name: "change pin",
			reach: func(t *testing.T, s *Session) {
				login(t, s)
				choose(t, s, ItemChangePin)
			},
			maxLen: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			tt.reach(t, s)

			for i := 1; i <= 20; i++ {
				d, err := s.EnterDigit(rune('0' + i%10))
				require.NoError(t, err)
				assert.LessOrEqual(t, d.Digits, tt.maxLen)
				assert.Equal(t, min(i, tt.maxLen), d.Digits)
			}
		})
	}
}

func TestSession_PinDigitsAreMasked(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	d := typeDigits(t, s, "12")
	assert.Equal(t, "••", d.Input)
	assert.Equal(t, 2, d.Digits)
	assert.Equal(t, ModePin, d.Mode)
}

func TestSession_RejectsNonDigits(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	d, err := s.EnterDigit('x')
	assert.ErrorIs(t, err, ErrInvalidDigit)
	assert.Equal(t, 0, d.Digits)
	assert.Equal(t, SeverityError, d.Message.Severity)
}

func TestSession_Backspace(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	d, err := s.Backspace()
	require.NoError(t, err)
	assert.Equal(t, 0, d.Digits)

	typeDigits(t, s, "123")
	d, err = s.Backspace()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Digits)
}

func TestSession_CorrectPinReachesMenu(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Start()
	require.NoError(t, err)
	typeDigits(t, s, "12")
	d, err := s.Confirm()
	require.ErrorIs(t, err, ErrIncompletePin)
	assert.Equal(t, ScreenPinEntry, d.Screen)
	assert.Equal(t, 0, d.PinAttempts)

	typeDigits(t, s, "9")
	_, err = s.Backspace()
	require.NoError(t, err)
	typeDigits(t, s, "34")
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, d.Screen)
	assert.Equal(t, 0, d.PinAttempts)
	assert.Equal(t, MenuItems, d.Menu)
}

func TestSession_WrongPinThenCorrectResetsAttempts(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Start()
	require.NoError(t, err)

	typeDigits(t, s, "0000")
	d, err := s.Confirm()
	require.ErrorIs(t, err, ErrWrongPin)
	assert.Equal(t, 1, d.PinAttempts)
	assert.Equal(t, 0, d.Digits)
	assert.Equal(t, "Incorrect PIN. Try again.", d.Message.Text)

	typeDigits(t, s, DefaultPIN)
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, d.Screen)
	assert.Equal(t, 0, s.PinAttempts())
}

func TestSession_ThreeWrongPinsBlock(t *testing.T) {
	attempts := [][]string{
		{"0000", "0000", "0000"},
		{"1111", "4321", "9999"},
		{"1235", "2234", "1243"},
	}

	for _, pins := range attempts {
		t.Run(strings.Join(pins, "-"), func(t *testing.T) {
			var rendered []Directive
			s, sched := newTestSession(t, WithRenderHook(func(d Directive) {
				rendered = append(rendered, d)
			}))
			_, err := s.Start()
			require.NoError(t, err)

			var d Directive
			for i, pin := range pins {
				typeDigits(t, s, pin)
				d, err = s.Confirm()
				require.ErrorIs(t, err, ErrWrongPin)
				if i < len(pins)-1 {
					assert.Equal(t, ScreenPinEntry, d.Screen)
				}
			}
			require.ErrorIs(t, err, ErrCardBlocked)
			assert.Equal(t, ScreenBlocked, d.Screen)
			assert.True(t, s.Blocked())
			assert.Equal(t, "Card blocked. Please contact your bank.", d.Message.Text)

			// заблокированная карта не принимает ввод
			_, err = s.EnterDigit('1')
			assert.ErrorIs(t, err, ErrCardBlocked)
			_, err = s.Confirm()
			assert.ErrorIs(t, err, ErrCardBlocked)
			_, err = s.Cancel()
			assert.ErrorIs(t, err, ErrCardBlocked)
			_, err = s.Start()
			assert.ErrorIs(t, err, ErrCardBlocked)

			sched.Advance(DefaultBlockResetDelay - time.Millisecond)
			assert.Equal(t, ScreenBlocked, s.Screen())

			sched.Advance(time.Millisecond)
			assert.Equal(t, ScreenWelcome, s.Screen())
			assert.False(t, s.Blocked())
			assert.Equal(t, 0, s.PinAttempts())
			require.Len(t, rendered, 1)
			assert.Equal(t, ScreenWelcome, rendered[0].Screen)
		})
	}
}

func TestSession_Withdraw(t *testing.T) {
	t.Run("whole balance", func(t *testing.T) {
		s, sched := newTestSession(t)
		login(t, s)
		choose(t, s, ItemWithdraw)

		typeDigits(t, s, "1000")
		d, err := s.Confirm()
		require.NoError(t, err)
		assert.Equal(t, int64(0), d.Balance)
		assert.True(t, d.Awaiting)
		assert.Equal(t, "Withdrawn ₹1000. New balance: ₹0", d.Message.Text)
		assert.Equal(t, SeveritySuccess, d.Message.Severity)

		sched.Advance(DefaultReturnDelay)
		assert.Equal(t, ScreenMenu, s.Screen())
	})

	t.Run("more than balance", func(t *testing.T) {
		s, _ := newTestSession(t)
		login(t, s)
		choose(t, s, ItemWithdraw)

		typeDigits(t, s, "1010")
		d, err := s.Confirm()
		require.ErrorIs(t, err, ErrInsufficientBalance)
		assert.Equal(t, ScreenWithdraw, d.Screen)
		assert.Equal(t, DefaultInitialBalance, d.Balance)
		assert.Empty(t, s.History())
		assert.Equal(t, "Insufficient balance.", d.Message.Text)
	})

	t.Run("empty amount", func(t *testing.T) {
		s, _ := newTestSession(t)
		login(t, s)
		choose(t, s, ItemWithdraw)

		_, err := s.Confirm()
		require.ErrorIs(t, err, ErrInvalidAmount)

		typeDigits(t, s, "0")
		_, err = s.Confirm()
		require.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestSession_AmountMustBeMultipleOfTen(t *testing.T) {
	tests := []struct {
		name  string
		reach func(t *testing.T, s *Session)
	}{
		{"withdraw", func(t *testing.T, s *Session) { choose(t, s, ItemWithdraw) }},
		{"deposit", func(t *testing.T, s *Session) { choose(t, s, ItemDeposit) }},
		{"transfer", func(t *testing.T, s *Session) {
			choose(t, s, ItemTransfer)
			typeDigits(t, s, "123456")
			_, err := s.Confirm()
			require.NoError(t, err)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newTestSession(t)
			login(t, s)
			tt.reach(t, s)
			before := s.Render().Screen

			typeDigits(t, s, "15")
			d, err := s.Confirm()
			require.ErrorIs(t, err, ErrAmountNotMultipleOfTen)
			assert.Equal(t, before, d.Screen)
			assert.Equal(t, DefaultInitialBalance, s.Balance())
			assert.Empty(t, s.History())
			assert.False(t, d.Awaiting)
		})
	}
}

func TestSession_Transfer(t *testing.T) {
	s, sched := newTestSession(t)
	login(t, s)
	choose(t, s, ItemTransfer)

	typeDigits(t, s, "12345")
	d, err := s.Confirm()
	require.ErrorIs(t, err, ErrInvalidAccountNumber)
	assert.Equal(t, ScreenTransferAccount, d.Screen)

	typeDigits(t, s, "6")
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, ScreenTransferAmount, d.Screen)
	assert.Equal(t, "123456", d.TransferTo)
	assert.Equal(t, 0, d.Digits)

	typeDigits(t, s, "2000")
	_, err = s.Confirm()
	require.ErrorIs(t, err, ErrInsufficientBalance)

	for i := 0; i < 4; i++ {
		_, err = s.Backspace()
		require.NoError(t, err)
	}
	typeDigits(t, s, "300")
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, int64(700), d.Balance)
	assert.Equal(t, "Transferred ₹300 to 123456. New balance: ₹700", d.Message.Text)

	sched.Advance(DefaultReturnDelay)
	assert.Equal(t, ScreenTransferAmount, s.Screen(), "transfer waits longer than withdraw")
	sched.Advance(DefaultTransferReturnDelay - DefaultReturnDelay)
	assert.Equal(t, ScreenMenu, s.Screen())
}

func TestSession_ChangePin(t *testing.T) {
	s, sched := newTestSession(t)
	login(t, s)
	d := choose(t, s, ItemChangePin)
	assert.Equal(t, 0, d.Step)
	assert.Equal(t, "Enter current PIN", d.Prompt)

	typeDigits(t, s, "9999")
	d, err := s.Confirm()
	require.ErrorIs(t, err, ErrPinMismatch)
	assert.Equal(t, 0, d.Step)
	assert.Equal(t, 0, d.Digits)

	typeDigits(t, s, DefaultPIN)
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 1, d.Step)
	assert.Equal(t, "Enter new PIN", d.Prompt)

	typeDigits(t, s, "56")
	_, err = s.Confirm()
	require.ErrorIs(t, err, ErrIncompletePin)
	typeDigits(t, s, "78")
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, 2, d.Step)

	typeDigits(t, s, "5679")
	d, err = s.Confirm()
	require.ErrorIs(t, err, ErrPinsDoNotMatch)
	assert.Equal(t, 2, d.Step)
	assert.Equal(t, 0, d.Digits)

	typeDigits(t, s, "5678")
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "PIN changed successfully!", d.Message.Text)
	sched.Advance(DefaultReturnDelay)
	assert.Equal(t, ScreenMenu, s.Screen())

	// после смены старый PIN не подходит, а новый подходит
	s.Reset()
	_, err = s.Start()
	require.NoError(t, err)
	typeDigits(t, s, DefaultPIN)
	_, err = s.Confirm()
	require.ErrorIs(t, err, ErrWrongPin)

	typeDigits(t, s, "5678")
	d, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, d.Screen)
}

func TestSession_CancelReturnsToMenu(t *testing.T) {
	reach := map[string]func(t *testing.T, s *Session){
		"balance":        func(t *testing.T, s *Session) { choose(t, s, ItemBalance) },
		"mini statement": func(t *testing.T, s *Session) { choose(t, s, ItemMiniStatement) },
		"withdraw": func(t *testing.T, s *Session) {
			choose(t, s, ItemWithdraw)
			typeDigits(t, s, "100")
		},
		"deposit": func(t *testing.T, s *Session) {
			choose(t, s, ItemDeposit)
			typeDigits(t, s, "100")
		},
		"transfer account": func(t *testing.T, s *Session) {
			choose(t, s, ItemTransfer)
			typeDigits(t, s, "1234")
		},
		"transfer amount": func(t *testing.T, s *Session) {
			choose(t, s, ItemTransfer)
			typeDigits(t, s, "123456789")
			_, err := s.Confirm()
			require.NoError(t, err)
			typeDigits(t, s, "50")
		},
		"change pin step 1": func(t *testing.T, s *Session) {
			choose(t, s, ItemChangePin)
			typeDigits(t, s, DefaultPIN)
			_, err := s.Confirm()
			require.NoError(t, err)
		},
		"menu": func(t *testing.T, s *Session) {},
	}

	for name, fn := range reach {
		t.Run(name, func(t *testing.T) {
			s, _ := newTestSession(t)
			login(t, s)
			fn(t, s)

			for i := 0; i < 2; i++ {
				d, err := s.Cancel()
				require.NoError(t, err)
				assert.Equal(t, ScreenMenu, d.Screen)
				assert.Equal(t, 0, d.Digits)
				assert.Equal(t, DefaultInitialBalance, d.Balance)
				assert.Empty(t, d.History)
			}
		})
	}
}

func TestSession_CancelFromPinEntryReturnsToWelcome(t *testing.T) {
	s, _ := newTestSession(t)
	_, err := s.Start()
	require.NoError(t, err)
	typeDigits(t, s, "0000")
	_, err = s.Confirm()
	require.ErrorIs(t, err, ErrWrongPin)

	d, err := s.Cancel()
	require.NoError(t, err)
	assert.Equal(t, ScreenWelcome, d.Screen)
	assert.Equal(t, 1, d.PinAttempts, "leaving pin entry does not forgive failed attempts")
}

func TestSession_EndToEnd(t *testing.T) {
	s, sched := newTestSession(t)
	assert.Equal(t, DefaultInitialBalance, s.Balance())

	login(t, s)
	assert.Equal(t, 0, s.PinAttempts())

	choose(t, s, ItemWithdraw)
	typeDigits(t, s, "200")
	_, err := s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, int64(800), s.Balance())
	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, model.KindWithdraw, history[0].Kind)
	assert.Equal(t, int64(200), history[0].Amount)
	sched.Advance(DefaultReturnDelay)
	require.Equal(t, ScreenMenu, s.Screen())

	choose(t, s, ItemDeposit)
	typeDigits(t, s, "50")
	_, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, int64(850), s.Balance())
	sched.Advance(DefaultReturnDelay)
	require.Equal(t, ScreenMenu, s.Screen())

	choose(t, s, ItemTransfer)
	typeDigits(t, s, "123456789012")
	_, err = s.Confirm()
	require.NoError(t, err)
	typeDigits(t, s, "100")
	_, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, int64(750), s.Balance())

	history = s.History()
	require.Len(t, history, 3)
	head := history[0]
	assert.Equal(t, model.KindTransfer, head.Kind)
	assert.Equal(t, int64(100), head.Amount)
	assert.Equal(t, "123456789012", head.To)
	assert.Equal(t, int64(750), head.BalanceAfter)
	assert.NotEmpty(t, head.ID)
	assert.Equal(t, fixedNow, head.CreatedAt)
}

func TestSession_AwaitingIgnoresKeypad(t *testing.T) {
	s, sched := newTestSession(t)
	login(t, s)
	choose(t, s, ItemWithdraw)
	typeDigits(t, s, "100")
	_, err := s.Confirm()
	require.NoError(t, err)

	d, err := s.EnterDigit('5')
	require.NoError(t, err)
	assert.Equal(t, 0, d.Digits)
	assert.False(t, d.AcceptsInput())

	_, err = s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, int64(900), s.Balance(), "second confirm must not withdraw again")
	assert.Len(t, s.History(), 1)

	sched.Advance(DefaultReturnDelay)
	assert.Equal(t, ScreenMenu, s.Screen())
}

func TestSession_ManualTransitionCancelsPendingReturn(t *testing.T) {
	var rendered int
	s, sched := newTestSession(t, WithRenderHook(func(Directive) { rendered++ }))
	login(t, s)
	choose(t, s, ItemDeposit)
	typeDigits(t, s, "100")
	_, err := s.Confirm()
	require.NoError(t, err)

	_, err = s.Cancel()
	require.NoError(t, err)
	choose(t, s, ItemBalance)
	assert.Equal(t, 0, sched.Pending())

	sched.Advance(time.Minute)
	assert.Equal(t, ScreenBalance, s.Screen())
	assert.Zero(t, rendered)
}

func TestSession_ResetCancelsBlockTimer(t *testing.T) {
	s, sched := newTestSession(t)
	_, err := s.Start()
	require.NoError(t, err)
	for i := 0; i < DefaultMaxPinAttempts; i++ {
		typeDigits(t, s, "0000")
		_, _ = s.Confirm()
	}
	require.True(t, s.Blocked())

	d := s.Reset()
	assert.Equal(t, ScreenWelcome, d.Screen)
	assert.False(t, s.Blocked())

	login(t, s)
	sched.Advance(DefaultBlockResetDelay)
	assert.Equal(t, ScreenMenu, s.Screen(), "stale block timer must not reset the new session")
}

func TestSession_ExitResetsAccount(t *testing.T) {
	s, _ := newTestSession(t, func(s *Session) { s.cfg.ReturnDelay = 0 })
	login(t, s)
	choose(t, s, ItemDeposit)
	typeDigits(t, s, "500")
	_, err := s.Confirm()
	require.NoError(t, err)
	require.Equal(t, int64(1500), s.Balance())

	choose(t, s, ItemExit)
	assert.Equal(t, ScreenWelcome, s.Screen())
	assert.Equal(t, DefaultInitialBalance, s.Balance())
	assert.Empty(t, s.History())
	assert.Equal(t, 0, s.PinAttempts())
}

func TestSession_ZeroDelayReturnsImmediately(t *testing.T) {
	s, sched := newTestSession(t, func(s *Session) { s.cfg.ReturnDelay = 0 })
	login(t, s)
	choose(t, s, ItemWithdraw)
	typeDigits(t, s, "100")

	d, err := s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, d.Screen)
	assert.False(t, d.Awaiting)
	assert.Equal(t, "Withdrawn ₹100. New balance: ₹900", d.Message.Text)
	assert.Equal(t, 0, sched.Pending())
}

func TestSession_MiniStatementShowsFiveNewest(t *testing.T) {
	s, _ := newTestSession(t, func(s *Session) { s.cfg.ReturnDelay = 0 })
	login(t, s)
	for i := 1; i <= 7; i++ {
		choose(t, s, ItemDeposit)
		typeDigits(t, s, string(rune('0'+i))+"0")
		_, err := s.Confirm()
		require.NoError(t, err)
	}

	d := choose(t, s, ItemMiniStatement)
	require.Len(t, d.History, DefaultStatementSize)
	assert.Equal(t, int64(70), d.History[0].Amount)
	assert.Equal(t, int64(30), d.History[4].Amount)
	assert.Len(t, s.History(), 7)

	d, err := s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, d.Screen)
}

func TestSession_SelectOutsideMenu(t *testing.T) {
	s, _ := newTestSession(t)

	_, err := s.Select(ItemBalance)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	login(t, s)
	_, err = s.Select(MenuItem(42))
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = s.Confirm()
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, ScreenMenu, s.Screen())
}

func TestSession_Observers(t *testing.T) {
	var events []Event
	s, sched := newTestSession(t, WithObserver(func(ev Event) { events = append(events, ev) }))

	login(t, s)
	choose(t, s, ItemWithdraw)
	typeDigits(t, s, "100")
	_, err := s.Confirm()
	require.NoError(t, err)
	sched.Advance(DefaultReturnDelay)
	s.Reset()

	kinds := make([]EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	assert.Equal(t, []EventKind{EventLogin, EventTransaction, EventReset}, kinds)
	assert.Equal(t, int64(100), events[1].Transaction.Amount)
	assert.Equal(t, fixedNow, events[1].At)
}

func TestSession_ObserverMayReadSession(t *testing.T) {
	s, _ := newTestSession(t)
	var balance int64
	s.observers = append(s.observers, func(Event) { balance = s.Balance() })

	login(t, s)
	assert.Equal(t, DefaultInitialBalance, balance)
}

func TestNewSession_InvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PIN = "12a4"
	_, err := NewSession(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pin must be exactly 4 digits")
}

func TestSession_TransferTargetClearedAfterTransfer(t *testing.T) {
	s, sched := newTestSession(t)
	login(t, s)

	choose(t, s, ItemTransfer)
	typeDigits(t, s, "123456")
	_, err := s.Confirm()
	require.NoError(t, err)
	typeDigits(t, s, "100")
	d, err := s.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "123456", d.TransferTo)

	sched.Advance(DefaultTransferReturnDelay)
	require.Equal(t, ScreenMenu, s.Screen())
	assert.Empty(t, s.Render().TransferTo)

	d = choose(t, s, ItemWithdraw)
	assert.Empty(t, d.TransferTo)
}

func TestSession_TransferTargetClearedOnCancel(t *testing.T) {
	s, _ := newTestSession(t)
	login(t, s)

	choose(t, s, ItemTransfer)
	typeDigits(t, s, "987654")
	d, err := s.Confirm()
	require.NoError(t, err)
	require.Equal(t, "987654", d.TransferTo)

	d, err = s.Cancel()
	require.NoError(t, err)
	assert.Equal(t, ScreenMenu, d.Screen)
	assert.Empty(t, d.TransferTo)

	d = choose(t, s, ItemDeposit)
	assert.Empty(t, d.TransferTo)
}

func TestNewSession_RejectsZeroBlockDelay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.BlockResetDelay = 0
	_, err := NewSession(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block reset delay must be positive")

	cfg = DefaultConfig()
	cfg.ReturnDelay = 0
	_, err = NewSession(cfg)
	assert.NoError(t, err)
}
