package battle

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func afkBattle(t *testing.T, clock *fakeClock) *Battle {
	t.Helper()
	data := twoPlayers(StateSelectingActions)
	for i := range data.Players {
		data.Players[i].LastActionTimestamp = clock.Now()
	}
	// A long interval keeps the ticker out of the way; tests call Check.
	return newTestBattle(t, data, Config{Now: clock.Now, AfkTimeout: 3 * time.Minute, AfkInterval: time.Hour})
}

func TestAfkMonitor_DisqualifiesIdlePlayer(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	b := afkBattle(t, clock)

	clock.Advance(2 * time.Minute)
	if err := b.ReceivePlayerAction(act("gary", SelectMove{MoveName: "Tackle"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !b.Monitor().Check() {
		t.Fatalf("monitor stopped too early")
	}
	if len(b.Snapshot().Players) != 2 {
		t.Fatalf("nobody should be idle yet")
	}

	clock.Advance(2 * time.Minute)
	if !b.Monitor().Check() {
		t.Fatalf("monitor should keep watching the remaining human")
	}
	snap := b.Snapshot()
	if len(snap.Players) != 1 || snap.Players[0].Name != "gary" {
		t.Fatalf("expected ash disqualified, got %+v", snap.Players)
	}
	if !hasMessage(snap.Events, "ash has been disqualified for being AFK too long.") {
		t.Fatalf("expected disqualification message")
	}
	if snap.BattleState != StateSelectingActions {
		t.Fatalf("disqualifying one player must not end the battle, got %s", snap.BattleState)
	}
}

func TestAfkMonitor_PendingOwnerIsNotIdle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	b := afkBattle(t, clock)
	if err := b.ReceivePlayerAction(act("ash", SelectMove{MoveName: "Tackle"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	clock.Advance(10 * time.Minute)
	b.Monitor().Check()
	snap := b.Snapshot()
	if len(snap.Players) != 1 || snap.Players[0].Name != "ash" {
		t.Fatalf("expected only gary removed, got %+v", snap.Players)
	}
	if snap.PendingPlayerAction == nil || snap.PendingPlayerAction.PlayerName != "ash" {
		t.Fatalf("pending action of the remaining player must survive")
	}
}

func TestAfkMonitor_OneDisqualificationPerCycle(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	b := afkBattle(t, clock)
	clock.Advance(5 * time.Minute)

	if !b.Monitor().Check() {
		t.Fatalf("one human is still present")
	}
	if n := len(b.Snapshot().Players); n != 1 {
		t.Fatalf("expected one player left after the first cycle, got %d", n)
	}
	if b.Monitor().Check() {
		t.Fatalf("expected the monitor to stop once nobody is left")
	}
	snap := b.Snapshot()
	if snap.BattleState != StateGameOver || len(snap.Players) != 0 {
		t.Fatalf("expected an empty finished battle, got %s with %d players", snap.BattleState, len(snap.Players))
	}
	if !hasMessage(snap.Events, "No players left in the battle. The battle is over.") {
		t.Fatalf("expected closing message")
	}
}

func TestAfkMonitor_IgnoresComputer(t *testing.T) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	data := BattleData{
		BattleState: StateSelectingActions,
		BattleType:  SinglePlayer,
		Players: []Player{
			{Name: "ash", Type: Human, Team: testTeam(), LastActionTimestamp: clock.Now()},
			{Name: "cpu", Type: Computer, Team: testTeam()},
		},
	}
	b := newTestBattle(t, data, Config{Selector: &fakeSelector{action: Nothing{}}, Now: clock.Now, AfkInterval: time.Hour})
	clock.Advance(time.Minute)
	b.Monitor().Check()
	if n := len(b.Snapshot().Players); n != 2 {
		t.Fatalf("computer must never be idle, got %d players", n)
	}
	clock.Advance(5 * time.Minute)
	if b.Monitor().Check() {
		t.Fatalf("expected monitor to stop without humans")
	}
}

func TestAfkMonitor_StopsAfterGameOver(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	b := afkBattle(t, clock)
	b.mu.Lock()
	b.endBattle()
	b.mu.Unlock()
	if !b.Monitor().Stopped() {
		t.Fatalf("expected GAME_OVER to stop the monitor")
	}
	if b.Monitor().Check() {
		t.Fatalf("finished battles are not watched")
	}
}

func TestAfkMonitor_TickerDisqualifies(t *testing.T) {
	data := twoPlayers(StateSelectingActions)
	b := newTestBattle(t, data, Config{AfkTimeout: time.Millisecond, AfkInterval: 5 * time.Millisecond})
	select {
	case <-b.Monitor().Done():
	case <-time.After(2 * time.Second):
		t.Fatalf("monitor did not finish")
	}
	snap := b.Snapshot()
	if snap.BattleState != StateGameOver || len(snap.Players) != 0 {
		t.Fatalf("expected both idle players removed, got %s with %d players", snap.BattleState, len(snap.Players))
	}
}

func TestBattle_CloseStopsMonitor(t *testing.T) {
	b, err := New(twoPlayers(StateSelectingActions), Config{Resolver: &fakeResolver{}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b.Close()
	select {
	case <-b.Monitor().Done():
	default:
		t.Fatalf("expected monitor goroutine to exit on close")
	}
}
