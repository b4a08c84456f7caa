package engine

import (
	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
)

// --- Modifier helpers --------------------------------------------------
func speedWithModifiers(mon *battle.Pokemon) int {
	if mon == nil {
		return 0
	}
	s := mon.Speed
	if mon.Status == battle.StatusParalyzed {
		s /= 2
	}
	return s
}

func attackWithModifiers(mon *battle.Pokemon, m dex.Move) int {
	if m.Category == dex.Special {
		return mon.SpecialAttack
	}
	a := mon.Attack
	if mon.Status == battle.StatusBurned {
		a /= 2
	}
	return a
}

func defenseWithModifiers(mon *battle.Pokemon, m dex.Move) int {
	d := mon.Defense
	if m.Category == dex.Special {
		d = mon.SpecialDefense
	}
	if d < 1 {
		d = 1
	}
	return d
}

// weatherModifier boosts or weakens fire and water moves. Suppressed
// weather has no effect.
func (rc *roundContext) weatherModifier(m dex.Move) float64 {
	if !rc.b.WeatherActive() {
		return 1
	}
	switch rc.b.Weather() {
	case battle.WeatherSun:
		if m.Type == dex.Fire {
			return 1.5
		}
		if m.Type == dex.Water {
			return 0.5
		}
	case battle.WeatherRain:
		if m.Type == dex.Water {
			return 1.5
		}
		if m.Type == dex.Fire {
			return 0.5
		}
	}
	return 1
}

// screenModifier halves damage behind the matching screen.
func screenModifier(target *battle.Player, m dex.Move) float64 {
	if m.Category == dex.Physical && target.RemainingReflectTurns > 0 {
		return 0.5
	}
	if m.Category == dex.Special && target.RemainingLightScreenTurns > 0 {
		return 0.5
	}
	return 1
}

func grounded(mon *battle.Pokemon) bool {
	if dex.HasType(mon.Types, dex.Flying) {
		return false
	}
	return mon.Ability == nil || mon.Ability.Name != "Levitate"
}
