package battle

import (
	"fmt"
	"sync"
	"time"

	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
)

// AfkMonitor periodically disqualifies human players that stopped acting.
// The owner of the pending action is never considered idle.
type AfkMonitor struct {
	battle   *Battle
	interval time.Duration
	timeout  time.Duration

	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}
	doneOnce sync.Once
}

func newAfkMonitor(b *Battle, interval, timeout time.Duration) *AfkMonitor {
	return &AfkMonitor{
		battle:   b,
		interval: interval,
		timeout:  timeout,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (m *AfkMonitor) start() {
	go m.run()
}

func (m *AfkMonitor) run() {
	defer m.markDone()
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			return
		case <-ticker.C:
			if !m.Check() {
				m.Stop()
				return
			}
		}
	}
}

// Stop cancels the periodic check. Safe to call more than once.
func (m *AfkMonitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
}

// Done is closed once the monitor goroutine has exited.
func (m *AfkMonitor) Done() <-chan struct{} { return m.done }

// Stopped reports whether Stop has been called.
func (m *AfkMonitor) Stopped() bool {
	select {
	case <-m.stop:
		return true
	default:
		return false
	}
}

func (m *AfkMonitor) markDone() {
	m.doneOnce.Do(func() { close(m.done) })
}

// Check runs one inspection cycle and disqualifies at most one idle
// player. It returns false once the battle no longer needs watching:
// gameplay ended, or no human players remain. Panics are logged and the
// cycle is skipped.
func (m *AfkMonitor) Check() (keepRunning bool) {
	b := m.battle
	b.mu.Lock()
	defer b.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			logging.Error("afk check failed", fmt.Errorf("%v", r), b.logFields())
			keepRunning = true
		}
	}()

	if !b.watchable() {
		return false
	}
	now := b.now()
	for _, p := range b.players {
		if p.Type != Human || (b.pending != nil && b.pending.PlayerName == p.Name) {
			continue
		}
		idle := now.Sub(p.LastActionTimestamp)
		if idle <= m.timeout {
			continue
		}
		fields := b.logFields()
		fields[constants.LogFieldPlayer] = p.Name
		fields[constants.LogFieldIdle] = idle.String()
		logging.Info("player idle for too long, disqualifying", fields)
		b.removePlayer(p.Name, fmt.Sprintf("%s has been disqualified for being AFK too long.", p.Name))
		break
	}
	return b.watchable()
}

func (b *Battle) watchable() bool {
	if b.state.IsGameOver() || len(b.players) == 0 {
		return false
	}
	for _, p := range b.players {
		if p.Type == Human {
			return true
		}
	}
	return false
}
