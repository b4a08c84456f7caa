package engine

import (
	"fmt"
	"sort"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
	"github.com/ericogr/pokebattle/internal/keys"
)

// --- Planned action model ---------------------------------------------
type ActionKind string

const (
	ActionNone     ActionKind = ""
	ActionSwitch   ActionKind = "switch"
	ActionMove     ActionKind = "move"
	ActionNoPP     ActionKind = "no_pp"
	ActionStruggle ActionKind = "struggle"
)

type plannedAction struct {
	player   *battle.Player
	target   *battle.Player
	action   ActionKind
	move     dex.Move
	slot     int
	switchTo int
	// order is the position inside the round, used for ties.
	order int
}

// struggle is used once every move is out of PP.
var struggle = dex.Move{Name: "Struggle", Type: dex.Normal, Category: dex.Physical, Power: 50, PP: 1}

// buildPlans turns the round's actions into executable plans, ordered
// switches first, then by move priority, then by speed. Ties keep round
// order.
func (rc *roundContext) buildPlans() ([]plannedAction, error) {
	actions := rc.round.Actions()
	plans := make([]plannedAction, 0, len(actions))
	for i, a := range actions {
		p, err := rc.b.Player(a.PlayerName)
		if err != nil {
			return nil, err
		}
		plan := plannedAction{player: p, target: rc.b.Opponent(p), order: i}
		switch d := a.Details.(type) {
		case battle.SelectPokemon:
			if d.PokemonIndex < 0 || d.PokemonIndex >= len(p.Team) {
				return nil, fmt.Errorf("%w: %d for %s", ErrInvalidPokemonIndex, d.PokemonIndex, p.Name)
			}
			plan.action = ActionSwitch
			plan.switchTo = d.PokemonIndex
		case battle.SelectMove:
			mon := p.ActivePokemon()
			if mon == nil {
				return nil, fmt.Errorf("%w: %s has no active Pokemon", ErrInvalidPokemonIndex, p.Name)
			}
			if outOfPP(mon) {
				plan.action = ActionStruggle
				plan.move = struggle
				break
			}
			slot := moveIndex(mon, d.MoveName)
			if slot < 0 {
				return nil, fmt.Errorf("%w: %s does not know %s", ErrUnknownMove, mon.Name, d.MoveName)
			}
			m, err := rc.r.dex.Move(mon.Moves[slot].Name)
			if err != nil {
				return nil, err
			}
			plan.move = m
			plan.slot = slot
			plan.action = ActionMove
			if mon.Moves[slot].PP <= 0 {
				plan.action = ActionNoPP
			}
		case battle.Nothing, battle.RequestRematch, battle.QuitBattle, battle.SelectTeam:
			continue
		default:
			return nil, fmt.Errorf("engine: unsupported action %T", a.Details)
		}
		plans = append(plans, plan)
	}

	sort.SliceStable(plans, func(i, j int) bool {
		a, b := plans[i], plans[j]
		if (a.action == ActionSwitch) != (b.action == ActionSwitch) {
			return a.action == ActionSwitch
		}
		if a.move.Priority != b.move.Priority {
			return a.move.Priority > b.move.Priority
		}
		sa, sb := speedWithModifiers(a.player.ActivePokemon()), speedWithModifiers(b.player.ActivePokemon())
		if sa != sb {
			return sa > sb
		}
		return a.order < b.order
	})
	return plans, nil
}

func moveIndex(mon *battle.Pokemon, name string) int {
	k := keys.NameKey(name)
	for i := range mon.Moves {
		if keys.NameKey(mon.Moves[i].Name) == k {
			return i
		}
	}
	return -1
}

func outOfPP(mon *battle.Pokemon) bool {
	for _, m := range mon.Moves {
		if m.PP > 0 {
			return false
		}
	}
	return true
}
