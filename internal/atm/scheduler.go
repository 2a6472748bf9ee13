package atm

import (
	"sort"
	"sync"
	"time"
)

// Timer - отложенный переход, который можно отменить
type Timer interface {
	Stop() bool
}

// Scheduler планирует отложенные переходы сессии
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler использует таймеры рантайма
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// ManualScheduler - детерминированные часы для тестов.
// Таймеры срабатывают только внутри Advance.
type ManualScheduler struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s   *ManualScheduler
	at  time.Duration
	seq int
	f   func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, f: f}
	s.pending = append(s.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	for i, p := range t.s.pending {
		if p == t {
			t.s.pending = append(t.s.pending[:i], t.s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Advance сдвигает часы на d и по порядку запускает все наступившие таймеры.
// Таймеры, запланированные во время Advance, тоже срабатывают, если успевают.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		sort.SliceStable(s.pending, func(i, j int) bool {
			if s.pending[i].at == s.pending[j].at {
				return s.pending[i].seq < s.pending[j].seq
			}
			return s.pending[i].at < s.pending[j].at
		})
		if len(s.pending) == 0 || s.pending[0].at > target {
			s.now = target
			s.mu.Unlock()
			return
		}
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.now = next.at
		s.mu.Unlock()

		next.f()
	}
}

// Pending возвращает число запланированных таймеров
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}
