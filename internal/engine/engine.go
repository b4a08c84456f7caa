package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
)

var (
	ErrUnknownSpecies      = dex.ErrUnknownSpecies
	ErrUnknownMove         = dex.ErrUnknownMove
	ErrInvalidPokemonIndex = errors.New("invalid pokemon index")
	ErrInvalidTeam         = errors.New("invalid team")
)

const (
	// MaxTeamSize bounds SELECT_TEAM name lists.
	MaxTeamSize     = 6
	defaultTeamSize = 3
)

// Random is the source of chance in a round. *rand.Rand satisfies it.
type Random interface {
	Intn(n int) int
}

type globalRand struct{}

func (globalRand) Intn(n int) int { return rand.Intn(n) }

type lockedRand struct {
	mu sync.Mutex
	r  Random
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// Options tune a BattleRounds resolver.
type Options struct {
	// TeamSize is the size of randomly built computer teams.
	TeamSize int
	// Rand replaces the process-wide random source. It is serialized
	// internally.
	Rand Random
}

// BattleRounds resolves rounds for any number of battles.
type BattleRounds struct {
	dex      *dex.Dex
	rng      Random
	teamSize int
}

func New(d *dex.Dex, opts Options) *BattleRounds {
	r := &BattleRounds{dex: d, rng: globalRand{}, teamSize: opts.TeamSize}
	if opts.Rand != nil {
		r.rng = &lockedRand{r: opts.Rand}
	}
	if r.teamSize <= 0 {
		r.teamSize = defaultTeamSize
	}
	return r
}

// ResolveRound applies one round to b. Every failure is detected before the
// battle is modified.
func (r *BattleRounds) ResolveRound(b *battle.Battle, round battle.Round) error {
	rc := newRoundContext(r, b, round)
	switch state := b.CurrentState(); state {
	case battle.StateSelectingTeam:
		return rc.resolveTeamSelection()
	case battle.StateSelectingFirstPokemon:
		return rc.resolveFirstPokemon()
	case battle.StateSelectingActions:
		return rc.resolveActions()
	case battle.StateSelectingRequiredSwitch:
		return rc.resolveRequiredSwitch()
	case battle.StateGameOver:
		return rc.resolveRematch()
	case battle.StateGameOverAndRematchRequested:
		return nil
	default:
		return fmt.Errorf("engine: unhandled battle state %q", state)
	}
}
