package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/ericogr/pokebattle/internal/ai"
	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/dedupe"
	"github.com/ericogr/pokebattle/internal/dex"
	"github.com/ericogr/pokebattle/internal/engine"
	"github.com/ericogr/pokebattle/internal/logging"
	"github.com/ericogr/pokebattle/internal/storage"
)

var (
	ErrUnknownBattle  = errors.New("unknown battle")
	ErrInvalidPlayers = errors.New("invalid players")
)

const DefaultComputerName = "Computer"

// BattleRepo is the part of storage.Repository the hub needs.
type BattleRepo interface {
	SaveBattle(data battle.BattleData) error
	LoadBattle(battleID string) (*battle.BattleData, error)
	RecordResult(battleID, winner, loser string) (bool, error)
}

// HubOptions tune battle creation. Zero values fall back to defaults.
type HubOptions struct {
	TeamSize    int
	AfkTimeout  time.Duration
	AfkInterval time.Duration
	RecordsURL  string
	HTTPClient  *http.Client
	Rand        engine.Random
	Now         func() time.Time
}

// CreateBattleRequest describes a new battle. Single player battles take
// one human name and get a computer opponent.
type CreateBattleRequest struct {
	BattleType    battle.BattleType    `json:"battleType"`
	BattleSubType battle.BattleSubType `json:"battleSubType"`
	LeagueLevel   int                  `json:"leagueLevel"`
	Players       []string             `json:"players"`
	ComputerName  string               `json:"computerName"`
}

// SubmitResult is what a caller learns after submitting an action.
type SubmitResult struct {
	Events  battle.Events      `json:"events"`
	Next    int                `json:"next"`
	Pending bool               `json:"pending"`
	State   battle.BattleState `json:"battleState"`
}

type liveBattle struct {
	// mu orders submissions and their persistence.
	mu     sync.Mutex
	battle *battle.Battle
	// evicted is set once the battle left the registry; holders must look
	// it up again.
	evicted bool
}

// Hub owns the live battles of the process.
type Hub struct {
	repo     BattleRepo
	dex      *dex.Dex
	resolver battle.RoundResolver
	selector battle.ActionSelector
	gameOver battle.GameOverHandler
	opts     HubOptions

	mu      sync.RWMutex
	battles map[string]*liveBattle
	restore dedupe.Group[*liveBattle]
	closing sync.WaitGroup
}

func NewHub(repo BattleRepo, d *dex.Dex, opts HubOptions) *Hub {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Hub{
		repo:     repo,
		dex:      d,
		resolver: engine.New(d, engine.Options{TeamSize: opts.TeamSize, Rand: opts.Rand}),
		selector: ai.NewSelector(d),
		gameOver: NewRecorder(repo, opts.RecordsURL, opts.HTTPClient),
		opts:     opts,
		battles:  make(map[string]*liveBattle),
	}
}

func (h *Hub) config() battle.Config {
	return battle.Config{
		Resolver:    h.resolver,
		Selector:    h.selector,
		GameOver:    h.gameOver,
		AfkTimeout:  h.opts.AfkTimeout,
		AfkInterval: h.opts.AfkInterval,
		Now:         h.opts.Now,
	}
}

// CreateBattle builds, persists and registers a new battle.
func (h *Hub) CreateBattle(ctx context.Context, req CreateBattleRequest) (battle.BattleData, error) {
	if err := ctx.Err(); err != nil {
		return battle.BattleData{}, err
	}
	if req.BattleType == "" {
		req.BattleType = battle.MultiPlayer
	}
	now := h.opts.Now()
	var players []battle.Player
	for _, name := range req.Players {
		if name == "" {
			return battle.BattleData{}, fmt.Errorf("%w: empty player name", ErrInvalidPlayers)
		}
		players = append(players, battle.Player{Name: name, Type: battle.Human, LastActionTimestamp: now})
	}
	switch req.BattleType {
	case battle.SinglePlayer:
		if len(players) != 1 {
			return battle.BattleData{}, fmt.Errorf("%w: single player battles take one human, got %d", ErrInvalidPlayers, len(players))
		}
		cpu := req.ComputerName
		if cpu == "" {
			cpu = DefaultComputerName
		}
		players = append(players, battle.Player{Name: cpu, Type: battle.Computer})
	case battle.MultiPlayer:
		if len(players) != 2 {
			return battle.BattleData{}, fmt.Errorf("%w: multi player battles take two humans, got %d", ErrInvalidPlayers, len(players))
		}
	default:
		return battle.BattleData{}, fmt.Errorf("%w: unknown battle type %q", ErrInvalidPlayers, req.BattleType)
	}

	b, err := battle.New(battle.BattleData{
		BattleType:    req.BattleType,
		BattleSubType: req.BattleSubType,
		LeagueLevel:   req.LeagueLevel,
		Players:       players,
	}, h.config())
	if err != nil {
		return battle.BattleData{}, fmt.Errorf("%w: %w", ErrInvalidPlayers, err)
	}
	snap := b.Snapshot()
	if err := h.repo.SaveBattle(snap); err != nil {
		b.Close()
		return battle.BattleData{}, err
	}
	h.mu.Lock()
	h.battles[b.ID()] = &liveBattle{battle: b}
	h.mu.Unlock()

	logging.Info("battle created", logging.Fields{
		constants.LogFieldBattleID: b.ID(),
		constants.LogFieldCount:    len(players),
		constants.LogFieldState:    string(snap.BattleState),
	})
	return snap, nil
}

// Battle returns the live battle, restoring it from storage when needed.
func (h *Hub) Battle(ctx context.Context, id string) (*battle.Battle, error) {
	lb, err := h.live(ctx, id)
	if err != nil {
		return nil, err
	}
	return lb.battle, nil
}

func (h *Hub) live(ctx context.Context, id string) (*liveBattle, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	h.mu.RLock()
	lb, ok := h.battles[id]
	h.mu.RUnlock()
	if ok {
		return lb, nil
	}

	lb, _, err := h.restore.Do(id, func() (*liveBattle, error) {
		h.mu.RLock()
		existing, ok := h.battles[id]
		h.mu.RUnlock()
		if ok {
			return existing, nil
		}
		data, err := h.repo.LoadBattle(id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownBattle, id)
			}
			return nil, err
		}
		b, err := battle.New(*data, h.config())
		if err != nil {
			return nil, fmt.Errorf("restore battle %s: %w", id, err)
		}
		restored := &liveBattle{battle: b}
		h.mu.Lock()
		h.battles[id] = restored
		h.mu.Unlock()
		logging.Info("battle restored from storage", logging.Fields{
			constants.LogFieldBattleID: id,
			constants.LogFieldState:    string(data.BattleState),
		})
		return restored, nil
	})
	return lb, err
}

// lockLive returns the live battle with its lock held.
func (h *Hub) lockLive(ctx context.Context, id string) (*liveBattle, error) {
	for {
		lb, err := h.live(ctx, id)
		if err != nil {
			return nil, err
		}
		lb.mu.Lock()
		if !lb.evicted {
			return lb, nil
		}
		lb.mu.Unlock()
	}
}

// evict drops a finished, persisted battle from memory. Later lookups
// restore it from storage. Called with lb.mu held.
func (h *Hub) evict(id string, lb *liveBattle) {
	lb.evicted = true
	h.mu.Lock()
	if h.battles[id] == lb {
		delete(h.battles, id)
	}
	h.mu.Unlock()

	h.closing.Add(1)
	go func() {
		defer h.closing.Done()
		lb.battle.Close()
	}()
	logging.Debug("finished battle evicted", logging.Fields{constants.LogFieldBattleID: id})
}

// SubmitAction hands an action to the battle and persists the outcome.
// Rejected actions are not persisted. Battles that end are evicted once
// saved.
func (h *Hub) SubmitAction(ctx context.Context, id string, action battle.PlayerActionEvent) (SubmitResult, error) {
	lb, err := h.lockLive(ctx, id)
	if err != nil {
		return SubmitResult{}, err
	}
	defer lb.mu.Unlock()

	b := lb.battle
	start := b.EventsLen()
	if err := b.ReceivePlayerAction(action); err != nil {
		if errors.Is(err, battle.ErrInvalidAction) {
			return SubmitResult{}, err
		}
		// A failed round leaves the battle as it was; save in case the
		// resolver appended anything before failing.
		if saveErr := h.repo.SaveBattle(b.Snapshot()); saveErr != nil {
			logging.Error("failed to persist battle after resolution error", saveErr, logging.Fields{constants.LogFieldBattleID: id})
		}
		return SubmitResult{}, err
	}
	snap := b.Snapshot()
	if err := h.repo.SaveBattle(snap); err != nil {
		return SubmitResult{}, err
	}
	if snap.BattleState.IsGameOver() {
		h.evict(id, lb)
	}
	return SubmitResult{
		Events:  snap.Events[start:],
		Next:    len(snap.Events),
		Pending: snap.PendingPlayerAction != nil,
		State:   snap.BattleState,
	}, nil
}

// Snapshot returns the battle's full state.
func (h *Hub) Snapshot(ctx context.Context, id string) (battle.BattleData, error) {
	b, err := h.Battle(ctx, id)
	if err != nil {
		return battle.BattleData{}, err
	}
	return b.Snapshot(), nil
}

// Events returns the events at positions >= since and the next position.
func (h *Hub) Events(ctx context.Context, id string, since int) (battle.Events, int, error) {
	b, err := h.Battle(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	events, next := b.EventsSince(since)
	return events, next, nil
}

// Shutdown persists and closes every live battle.
func (h *Hub) Shutdown() {
	h.mu.Lock()
	live := h.battles
	h.battles = make(map[string]*liveBattle)
	h.mu.Unlock()

	for id, lb := range live {
		lb.mu.Lock()
		lb.evicted = true
		lb.battle.Close()
		if err := h.repo.SaveBattle(lb.battle.Snapshot()); err != nil {
			logging.Error("failed to persist battle on shutdown", err, logging.Fields{constants.LogFieldBattleID: id})
		}
		lb.mu.Unlock()
	}
	h.closing.Wait()
	logging.Info("battle hub stopped", logging.Fields{constants.LogFieldCount: len(live)})
}
