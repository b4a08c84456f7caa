package engine

import (
	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
)

// layHazard sets an entry hazard on the target's side and reports the new
// hazard snapshot.
func (rc *roundContext) layHazard(target *battle.Player, h dex.Hazard) {
	switch h {
	case dex.HazardSpikes:
		if target.SpikeLayerCount >= maxSpikes {
			rc.add("But it failed!")
			return
		}
		target.SpikeLayerCount++
		rc.add("Spikes were scattered around %s's feet!", target.Name)
	case dex.HazardToxicSpikes:
		if target.ToxicSpikeLayerCount >= maxToxicSpike {
			rc.add("But it failed!")
			return
		}
		target.ToxicSpikeLayerCount++
		rc.add("Poison spikes were scattered around %s's feet!", target.Name)
	case dex.HazardStealthRock:
		if target.HasStealthRock {
			rc.add("But it failed!")
			return
		}
		target.HasStealthRock = true
		rc.add("Pointed stones float in the air around %s's team!", target.Name)
	case dex.HazardStickyWeb:
		if target.HasStickyWeb {
			rc.add("But it failed!")
			return
		}
		target.HasStickyWeb = true
		rc.add("A sticky web has been laid out beneath %s's team!", target.Name)
	default:
		return
	}
	rc.b.PushHazardsChangeEvent(target)
}

func (rc *roundContext) raiseScreen(user *battle.Player, s dex.Screen) {
	switch s {
	case dex.ScreenLightScreen:
		if user.RemainingLightScreenTurns > 0 {
			rc.add("But it failed!")
			return
		}
		user.RemainingLightScreenTurns = screenTurns
		rc.add("Light Screen made %s's team stronger against special moves!", user.Name)
	case dex.ScreenReflect:
		if user.RemainingReflectTurns > 0 {
			rc.add("But it failed!")
			return
		}
		user.RemainingReflectTurns = screenTurns
		rc.add("Reflect made %s's team stronger against physical moves!", user.Name)
	default:
		return
	}
	rc.b.PushHazardsChangeEvent(user)
}

// clearHazards removes entry hazards from the user's side. Screens stay.
func (rc *roundContext) clearHazards(user *battle.Player) {
	if user.SpikeLayerCount == 0 && user.ToxicSpikeLayerCount == 0 && !user.HasStealthRock && !user.HasStickyWeb {
		return
	}
	user.SpikeLayerCount = 0
	user.ToxicSpikeLayerCount = 0
	user.HasStealthRock = false
	user.HasStickyWeb = false
	rc.add("%s blew away the hazards!", rc.ownerLabel(user))
	rc.b.PushHazardsChangeEvent(user)
}

// applyEntryHazards hurts or poisons a Pokémon that was just switched in.
func (rc *roundContext) applyEntryHazards(p *battle.Player) {
	mon := p.ActivePokemon()
	if mon == nil || !mon.IsAlive() {
		return
	}
	if p.HasStealthRock {
		eff := dex.Effectiveness(dex.Rock, mon.Types)
		dmg := int(float64(mon.MaxHP) * eff / 8)
		if dmg > 0 {
			rc.add("Pointed stones dug into %s!", rc.ownerLabel(p))
			rc.damage(p, dmg)
		}
	}
	if !mon.IsAlive() || !grounded(mon) {
		return
	}
	if p.SpikeLayerCount > 0 {
		div := 8
		switch p.SpikeLayerCount {
		case 2:
			div = 6
		case 3:
			div = 4
		}
		rc.add("%s is hurt by the spikes!", rc.ownerLabel(p))
		rc.damage(p, fraction(mon.MaxHP, div))
		if !mon.IsAlive() {
			return
		}
	}
	if p.ToxicSpikeLayerCount > 0 {
		if dex.HasType(mon.Types, dex.Poison) {
			p.ToxicSpikeLayerCount = 0
			rc.add("%s absorbed the poison spikes!", rc.ownerLabel(p))
			rc.b.PushHazardsChangeEvent(p)
		} else {
			rc.inflict(p, battle.StatusPoisoned, false)
		}
	}
	if p.HasStickyWeb {
		rc.add("%s was caught in a sticky web!", rc.ownerLabel(p))
	}
}
