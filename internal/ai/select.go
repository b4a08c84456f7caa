package ai

import (
	"errors"
	"fmt"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
)

var ErrNoComputerPlayer = errors.New("no computer player in battle")

// Selector picks the computer's action by scoring every legal option
// against the opponent's active Pokémon. It only reads the view.
type Selector struct {
	dex *dex.Dex
}

func NewSelector(d *dex.Dex) *Selector {
	return &Selector{dex: d}
}

// SelectAction returns a structurally valid action for the computer player.
func (s *Selector) SelectAction(view battle.BattleData) (battle.PlayerActionEvent, error) {
	var cpu *battle.Player
	for i := range view.Players {
		if view.Players[i].Type == battle.Computer {
			cpu = &view.Players[i]
			break
		}
	}
	if cpu == nil {
		return battle.PlayerActionEvent{}, ErrNoComputerPlayer
	}
	var foe *battle.Player
	if opp, ok := view.Opponent(cpu.Name); ok {
		foe = &opp
	}
	act := func(d battle.ActionDetails) (battle.PlayerActionEvent, error) {
		return battle.PlayerActionEvent{PlayerName: cpu.Name, Details: d}, nil
	}

	switch view.BattleState {
	case battle.StateSelectingTeam:
		return act(battle.Nothing{})
	case battle.StateGameOver:
		return act(battle.RequestRematch{})
	case battle.StateSelectingFirstPokemon:
		idx := s.bestSwitch(cpu, foe, -1)
		if idx < 0 {
			return battle.PlayerActionEvent{}, fmt.Errorf("computer %s has no healthy Pokemon", cpu.Name)
		}
		return act(battle.SelectPokemon{PokemonIndex: idx})
	case battle.StateSelectingRequiredSwitch:
		if !contains(view.RequiredToSwitch, cpu.Name) {
			return act(battle.Nothing{})
		}
		idx := s.bestSwitch(cpu, foe, cpu.ActivePokemonIndex)
		if idx < 0 {
			return battle.PlayerActionEvent{}, fmt.Errorf("computer %s has no healthy reserve", cpu.Name)
		}
		return act(battle.SelectPokemon{PokemonIndex: idx})
	case battle.StateSelectingActions:
		mon := cpu.ActivePokemon()
		if mon == nil || !mon.IsAlive() {
			return battle.PlayerActionEvent{}, fmt.Errorf("computer %s has no active Pokemon", cpu.Name)
		}
		return act(battle.SelectMove{MoveName: s.bestMove(view, cpu, foe)})
	default:
		return act(battle.Nothing{})
	}
}

// bestSwitch returns the healthy team member with the best type matchup,
// skipping exclude. Ties go to the lower index.
func (s *Selector) bestSwitch(cpu, foe *battle.Player, exclude int) int {
	best, bestScore := -1, -1.0
	var target *battle.Pokemon
	if foe != nil {
		target = foe.ActivePokemon()
	}
	for i := range cpu.Team {
		mon := &cpu.Team[i]
		if i == exclude || !mon.IsAlive() {
			continue
		}
		score := 1.0
		if target != nil && target.IsAlive() {
			score = s.offense(mon, target) / defenseRisk(mon, target)
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// offense is the best type multiplier mon can bring against target.
func (s *Selector) offense(mon, target *battle.Pokemon) float64 {
	best := 0.0
	for _, slot := range mon.Moves {
		m, err := s.dex.Move(slot.Name)
		if err != nil || m.Category == dex.Status {
			continue
		}
		if e := dex.Effectiveness(m.Type, target.Types); e > best {
			best = e
		}
	}
	if best == 0 {
		best = 0.1
	}
	return best
}

func defenseRisk(mon, target *battle.Pokemon) float64 {
	worst := 1.0
	for _, t := range target.Types {
		if e := dex.Effectiveness(t, mon.Types); e > worst {
			worst = e
		}
	}
	return worst
}

// bestMove scores every move with PP left and returns the highest. With
// no PP anywhere the first move is returned so the engine struggles.
func (s *Selector) bestMove(view battle.BattleData, cpu, foe *battle.Player) string {
	mon := cpu.ActivePokemon()
	bestName, bestScore := mon.Moves[0].Name, -1.0
	var target *battle.Pokemon
	if foe != nil {
		target = foe.ActivePokemon()
	}
	for _, slot := range mon.Moves {
		if slot.PP <= 0 {
			continue
		}
		m, err := s.dex.Move(slot.Name)
		if err != nil {
			continue
		}
		score := s.scoreMove(view, mon, cpu, foe, target, m)
		if score > bestScore {
			bestName, bestScore = slot.Name, score
		}
	}
	return bestName
}

func (s *Selector) scoreMove(view battle.BattleData, mon *battle.Pokemon, cpu, foe *battle.Player, target *battle.Pokemon, m dex.Move) float64 {
	if m.Category != dex.Status {
		if target == nil {
			return 0
		}
		score := float64(m.Power) * dex.Effectiveness(m.Type, target.Types)
		if dex.HasType(mon.Types, m.Type) {
			score *= 1.5
		}
		if m.ClearsHazards && (cpu.SpikeLayerCount > 0 || cpu.HasStealthRock || cpu.ToxicSpikeLayerCount > 0 || cpu.HasStickyWeb) {
			score += 40
		}
		return score
	}
	switch {
	case m.Weather != "":
		if view.Weather == m.Weather {
			return 0
		}
		return 55
	case m.Hazard != dex.HazardNone:
		if foe == nil || hazardMaxed(foe, m.Hazard) {
			return 0
		}
		return 60
	case m.Screen == dex.ScreenLightScreen:
		if cpu.RemainingLightScreenTurns > 0 {
			return 0
		}
		return 50
	case m.Screen == dex.ScreenReflect:
		if cpu.RemainingReflectTurns > 0 {
			return 0
		}
		return 50
	case m.InflictStatus != battle.StatusNone:
		if target == nil || target.Status != battle.StatusNone {
			return 0
		}
		return 65
	}
	return 0
}

func hazardMaxed(p *battle.Player, h dex.Hazard) bool {
	switch h {
	case dex.HazardSpikes:
		return p.SpikeLayerCount >= 3
	case dex.HazardToxicSpikes:
		return p.ToxicSpikeLayerCount >= 2
	case dex.HazardStealthRock:
		return p.HasStealthRock
	case dex.HazardStickyWeb:
		return p.HasStickyWeb
	}
	return true
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
