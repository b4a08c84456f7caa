package battle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
)

const (
	DefaultAfkTimeout  = 3 * time.Minute
	DefaultAfkInterval = time.Minute

	gameOverHandlerTimeout = 30 * time.Second
)

// Round is the set of actions resolved together. A nil side does nothing.
type Round struct {
	First  *PlayerActionEvent
	Second *PlayerActionEvent
}

// Actions returns the non-nil actions of the round in order.
func (r Round) Actions() []PlayerActionEvent {
	out := make([]PlayerActionEvent, 0, 2)
	if r.First != nil {
		out = append(out, *r.First)
	}
	if r.Second != nil {
		out = append(out, *r.Second)
	}
	return out
}

// RoundResolver applies the game mechanics of a round to the battle. It is
// called with the battle lock held and may use the mutators documented as
// resolver-facing.
type RoundResolver interface {
	ResolveRound(b *Battle, round Round) error
}

// ActionChecker is implemented by resolvers that can reject an action's
// content (unknown species, unknown moves) before it is buffered. It runs
// with the battle lock held.
type ActionChecker interface {
	CheckAction(b *Battle, a PlayerActionEvent) error
}

// ActionSelector picks the computer player's action. The view carries no
// events.
type ActionSelector interface {
	SelectAction(view BattleData) (PlayerActionEvent, error)
}

// GameOverHandler reacts to a declared winner. It runs on its own goroutine
// and must tolerate duplicate calls for the same battle.
type GameOverHandler interface {
	HandleGameOver(ctx context.Context, winner, loser Player, snapshot BattleData) error
}

// Config carries a battle's collaborators and timing.
type Config struct {
	Resolver RoundResolver
	Selector ActionSelector
	GameOver GameOverHandler

	AfkTimeout  time.Duration
	AfkInterval time.Duration
	// Now defaults to time.Now.
	Now func() time.Time
}

// Battle is one two-player match. ReceivePlayerAction, Snapshot, EventsSince,
// State and Close are safe for concurrent use. The remaining exported methods
// are resolver-facing: they assume the caller already runs inside
// ReceivePlayerAction, which holds the battle lock.
type Battle struct {
	mu sync.Mutex

	id          string
	battleType  BattleType
	subType     BattleSubType
	leagueLevel int
	state       BattleState

	players []*Player
	byName  map[string]*Player

	log              *EventLog
	pending          *PlayerActionEvent
	requiredToSwitch []string
	rematchRequested bool
	weather          Weather
	weatherTurns     int
	winnerName       string
	rewards          []int
	turnCount        int

	resolver RoundResolver
	checker  ActionChecker
	selector ActionSelector
	gameOver GameOverHandler
	now      func() time.Time

	afk      *AfkMonitor
	handlers sync.WaitGroup
}

// New builds a battle from data and starts its AFK monitor. Empty fields get
// defaults: a fresh ID, SELECTING_TEAM, MULTI_PLAYER, CHALLENGE and no weather.
func New(data BattleData, cfg Config) (*Battle, error) {
	if cfg.Resolver == nil {
		return nil, errors.New("battle: round resolver is required")
	}
	b := &Battle{
		id:               data.BattleID,
		battleType:       data.BattleType,
		subType:          data.BattleSubType,
		leagueLevel:      data.LeagueLevel,
		state:            data.BattleState,
		byName:           make(map[string]*Player, len(data.Players)),
		log:              NewEventLog(data.Events...),
		pending:          data.PendingPlayerAction.clone(),
		requiredToSwitch: append([]string(nil), data.RequiredToSwitch...),
		rematchRequested: data.RematchRequested,
		weather:          data.Weather,
		weatherTurns:     data.RemainingWeatherTurns,
		winnerName:       data.WinnerName,
		rewards:          append([]int(nil), data.Rewards...),
		turnCount:        data.TurnCount,
		resolver:         cfg.Resolver,
		selector:         cfg.Selector,
		gameOver:         cfg.GameOver,
		now:              cfg.Now,
	}
	if c, ok := cfg.Resolver.(ActionChecker); ok {
		b.checker = c
	}
	if b.id == "" {
		b.id = uuid.NewString()
	}
	if b.state == "" {
		b.state = StateSelectingTeam
	}
	if !b.state.valid() {
		return nil, fmt.Errorf("battle: unknown state %q", b.state)
	}
	if b.battleType == "" {
		b.battleType = MultiPlayer
	}
	if b.subType == "" {
		b.subType = SubTypeChallenge
	}
	if b.weather == "" {
		b.weather = WeatherNone
	}
	if b.now == nil {
		b.now = time.Now
	}
	if len(data.Players) > 2 {
		return nil, fmt.Errorf("battle: expected at most 2 players, got %d", len(data.Players))
	}
	for i := range data.Players {
		p := data.Players[i].clone()
		if p.Name == "" {
			return nil, errors.New("battle: player name is required")
		}
		if _, dup := b.byName[p.Name]; dup {
			return nil, fmt.Errorf("battle: duplicate player name %q", p.Name)
		}
		if p.Type == "" {
			p.Type = Human
		}
		b.players = append(b.players, &p)
		b.byName[p.Name] = &p
	}
	if b.battleType == SinglePlayer && b.selector == nil {
		return nil, errors.New("battle: single player battles need an action selector")
	}

	timeout, interval := cfg.AfkTimeout, cfg.AfkInterval
	if timeout <= 0 {
		timeout = DefaultAfkTimeout
	}
	if interval <= 0 {
		interval = DefaultAfkInterval
	}
	b.afk = newAfkMonitor(b, interval, timeout)
	if b.state.IsGameOver() || len(b.players) == 0 {
		b.afk.Stop()
		b.afk.markDone()
	} else {
		b.afk.start()
	}
	return b, nil
}

func (b *Battle) ID() string { return b.id }

func (b *Battle) State() BattleState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Monitor exposes the battle's AFK monitor.
func (b *Battle) Monitor() *AfkMonitor { return b.afk }

// Close stops the AFK monitor and waits for in-flight game-over handlers.
func (b *Battle) Close() {
	b.afk.Stop()
	<-b.afk.Done()
	b.handlers.Wait()
}

// Snapshot returns a deep copy of the battle state.
func (b *Battle) Snapshot() BattleData {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot(true)
}

// EventsLen returns the number of events in the log.
func (b *Battle) EventsLen() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.log.Len()
}

// EventsSince returns the events at positions >= pos and the log length.
func (b *Battle) EventsSince(pos int) (Events, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.log.Since(pos), b.log.Len()
}

func (b *Battle) snapshot(withEvents bool) BattleData {
	d := BattleData{
		BattleID:              b.id,
		BattleState:           b.state,
		BattleType:            b.battleType,
		BattleSubType:         b.subType,
		LeagueLevel:           b.leagueLevel,
		Players:               make([]Player, 0, len(b.players)),
		PendingPlayerAction:   b.pending.clone(),
		RequiredToSwitch:      append([]string{}, b.requiredToSwitch...),
		RematchRequested:      b.rematchRequested,
		Weather:               b.weather,
		RemainingWeatherTurns: b.weatherTurns,
		WinnerName:            b.winnerName,
		Rewards:               append([]int(nil), b.rewards...),
		TurnCount:             b.turnCount,
	}
	for _, p := range b.players {
		d.Players = append(d.Players, p.clone())
	}
	if withEvents {
		d.Events = b.log.All()
	} else {
		d.Events = Events{}
	}
	return d
}

// Resolver-facing accessors and mutators.

func (b *Battle) Type() BattleType       { return b.battleType }
func (b *Battle) SubType() BattleSubType { return b.subType }
func (b *Battle) CurrentState() BattleState {
	return b.state
}

// Players returns live player pointers in join order.
func (b *Battle) Players() []*Player {
	return append([]*Player(nil), b.players...)
}

// Player returns the named player or ErrUnknownPlayer.
func (b *Battle) Player(name string) (*Player, error) {
	if p, ok := b.byName[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
}

// Opponent returns the other player, or nil when they have left.
func (b *Battle) Opponent(p *Player) *Player {
	for _, o := range b.players {
		if o != p {
			return o
		}
	}
	return nil
}

// ComputerPlayer returns the computer-controlled player.
func (b *Battle) ComputerPlayer() (*Player, error) {
	for _, p := range b.players {
		if p.Type == Computer {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: no computer player in battle %s", ErrUnknownPlayer, b.id)
}

// AppendEvents adds events to the log.
func (b *Battle) AppendEvents(events ...BattleEvent) { b.log.Append(events...) }

// EventCount is the current log length.
func (b *Battle) EventCount() int { return b.log.Len() }

func (b *Battle) RequiredToSwitch() []string {
	return append([]string(nil), b.requiredToSwitch...)
}

func (b *Battle) IsRequiredToSwitch(name string) bool {
	for _, n := range b.requiredToSwitch {
		if n == name {
			return true
		}
	}
	return false
}

// RequireSwitch marks a player as owing a replacement Pokémon.
func (b *Battle) RequireSwitch(name string) {
	if !b.IsRequiredToSwitch(name) {
		b.requiredToSwitch = append(b.requiredToSwitch, name)
	}
}

// ClearRequiredSwitch removes name from the required-switch list.
func (b *Battle) ClearRequiredSwitch(name string) {
	out := b.requiredToSwitch[:0]
	for _, n := range b.requiredToSwitch {
		if n != name {
			out = append(out, n)
		}
	}
	b.requiredToSwitch = out
}

func (b *Battle) Weather() Weather          { return b.weather }
func (b *Battle) RemainingWeatherTurns() int { return b.weatherTurns }

func (b *Battle) TurnCount() int { return b.turnCount }

// NextTurn increments and returns the turn counter.
func (b *Battle) NextTurn() int {
	b.turnCount++
	return b.turnCount
}

// RequestRematch records a rematch request and moves the battle to
// GAME_OVER_AND_REMATCH_REQUESTED.
func (b *Battle) RequestRematch() error {
	if err := b.Transition(StateGameOverAndRematchRequested); err != nil {
		return err
	}
	b.rematchRequested = true
	return nil
}


func (b *Battle) logFields() logging.Fields {
	return logging.Fields{
		constants.LogFieldBattleID: b.id,
		constants.LogFieldState:    string(b.state),
	}
}
