package engine

import (
	"math"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
	"github.com/ericogr/pokebattle/internal/keys"
)

const (
	battleLevel   = 50
	minBindTurns  = 4
	bindTurnRange = 2
	screenTurns   = 5
	maxSpikes     = 3
	maxToxicSpike = 2
)

// execMove spends PP and applies the move to the opponent or the user's side.
func (rc *roundContext) execMove(plan *plannedAction) {
	user := plan.player
	mon := user.ActivePokemon()
	m := plan.move

	if mon.Status == battle.StatusParalyzed && rc.chance(25) {
		rc.add("%s is paralyzed! It can't move!", rc.ownerLabel(user))
		return
	}

	if plan.action == ActionMove {
		slot := &mon.Moves[plan.slot]
		slot.PP--
		rc.emit(battle.PPChange{
			PlayerName:   user.Name,
			PokemonIndex: user.ActivePokemonIndex,
			MoveName:     slot.Name,
			NewPP:        slot.PP,
		})
	}
	rc.add("%s used %s!", rc.ownerLabel(user), keys.DisplayName(m.Name))

	target := plan.target
	var foe *battle.Pokemon
	if target != nil {
		foe = target.ActivePokemon()
	}

	switch m.Category {
	case dex.Physical, dex.Special:
		if foe == nil || !foe.IsAlive() {
			rc.add("But there was no target...")
			return
		}
		rc.execDamage(plan, foe)
	case dex.Status:
		rc.execStatusMove(plan, foe)
	}
}

func (rc *roundContext) execDamage(plan *plannedAction, foe *battle.Pokemon) {
	user, target, m := plan.player, plan.target, plan.move
	mon := user.ActivePokemon()

	eff := dex.Effectiveness(m.Type, foe.Types)
	if eff == 0 {
		rc.add("It doesn't affect %s...", rc.ownerLabel(target))
		return
	}
	dmg := rc.calcDamage(mon, foe, target, m, eff)
	switch {
	case eff > 1:
		rc.add("It's super effective!")
	case eff < 1:
		rc.add("It's not very effective...")
	}
	rc.damage(target, dmg)

	if plan.action == ActionStruggle {
		rc.add("%s is damaged by recoil!", rc.ownerLabel(user))
		rc.damage(user, fraction(mon.MaxHP, 4))
	}
	if m.ClearsHazards && mon.IsAlive() {
		rc.clearHazards(user)
	}
	if !foe.IsAlive() {
		return
	}
	if m.Binding && foe.BindingMoveName == "" {
		foe.BindingMoveName = m.Name
		foe.BindingTurns = minBindTurns + rc.r.rng.Intn(bindTurnRange)
		rc.emit(battle.BindChange{PlayerName: target.Name, PokemonIndex: target.ActivePokemonIndex, BindingMoveName: m.Name})
		rc.add("%s was trapped by %s!", rc.ownerLabel(target), keys.DisplayName(m.Name))
	}
	if m.InflictStatus != battle.StatusNone && rc.chance(m.StatusChance) {
		rc.inflict(target, m.InflictStatus, false)
	}
}

// calcDamage follows the usual level based formula with STAB, type,
// weather, screen and a 85-100% roll.
func (rc *roundContext) calcDamage(mon, foe *battle.Pokemon, target *battle.Player, m dex.Move, eff float64) int {
	atk := float64(attackWithModifiers(mon, m))
	def := float64(defenseWithModifiers(foe, m))
	base := (float64(2*battleLevel/5+2)*float64(m.Power)*atk/def)/50 + 2

	mult := eff * rc.weatherModifier(m) * screenModifier(target, m)
	if dex.HasType(mon.Types, m.Type) {
		mult *= 1.5
	}
	roll := float64(85+rc.r.rng.Intn(16)) / 100
	dmg := int(math.Floor(base * mult * roll))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}

func (rc *roundContext) execStatusMove(plan *plannedAction, foe *battle.Pokemon) {
	user, target, m := plan.player, plan.target, plan.move
	switch {
	case m.Weather != "":
		rc.b.ApplyWeather(m.Weather)
	case m.Hazard != dex.HazardNone:
		if target == nil {
			rc.add("But it failed!")
			return
		}
		rc.layHazard(target, m.Hazard)
	case m.Screen != dex.ScreenNone:
		rc.raiseScreen(user, m.Screen)
	case m.InflictStatus != battle.StatusNone:
		if foe == nil || !foe.IsAlive() {
			rc.add("But it failed!")
			return
		}
		rc.inflict(target, m.InflictStatus, true)
	default:
		rc.add("But nothing happened!")
	}
}

// inflict applies a status unless the target already has one or is immune.
// announceFailure controls the message when nothing happens.
func (rc *roundContext) inflict(target *battle.Player, s battle.Status, announceFailure bool) {
	foe := target.ActivePokemon()
	if foe.Status != battle.StatusNone || immuneTo(foe, s) {
		if announceFailure {
			rc.add("But it failed!")
		}
		return
	}
	foe.Status = s
	rc.emit(battle.StatusChange{PlayerName: target.Name, PokemonIndex: target.ActivePokemonIndex, NewStatus: s})
	switch s {
	case battle.StatusBurned:
		rc.add("%s was burned!", rc.ownerLabel(target))
	case battle.StatusPoisoned:
		rc.add("%s was poisoned!", rc.ownerLabel(target))
	case battle.StatusParalyzed:
		rc.add("%s is paralyzed! It may be unable to move!", rc.ownerLabel(target))
	}
}

func immuneTo(mon *battle.Pokemon, s battle.Status) bool {
	switch s {
	case battle.StatusBurned:
		return dex.HasType(mon.Types, dex.Fire)
	case battle.StatusPoisoned:
		return dex.HasType(mon.Types, dex.Poison) || dex.HasType(mon.Types, dex.Steel)
	case battle.StatusParalyzed:
		return dex.HasType(mon.Types, dex.Electric)
	}
	return false
}
