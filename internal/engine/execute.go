package engine

import (
	"fmt"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/keys"
)

// resolveActions runs a SELECTING_ACTIONS round.
func (rc *roundContext) resolveActions() error {
	plans, err := rc.buildPlans()
	if err != nil {
		return err
	}
	rc.executePlans(plans)
	if rc.gameOver() {
		return nil
	}
	rc.finalizeRound()
	return rc.nextState()
}

// resolveRequiredSwitch brings in replacements for fainted Pokémon.
func (rc *roundContext) resolveRequiredSwitch() error {
	type replacement struct {
		player *battle.Player
		index  int
	}
	var reps []replacement
	for _, a := range rc.round.Actions() {
		sp, ok := a.Details.(battle.SelectPokemon)
		if !ok {
			continue
		}
		p, err := rc.b.Player(a.PlayerName)
		if err != nil {
			return err
		}
		if !rc.b.IsRequiredToSwitch(p.Name) {
			continue
		}
		if sp.PokemonIndex < 0 || sp.PokemonIndex >= len(p.Team) {
			return fmt.Errorf("%w: %d for %s", ErrInvalidPokemonIndex, sp.PokemonIndex, p.Name)
		}
		reps = append(reps, replacement{player: p, index: sp.PokemonIndex})
	}
	for _, r := range reps {
		rc.b.ClearRequiredSwitch(r.player.Name)
		rc.deploy(r.player, r.index)
	}
	for _, r := range reps {
		if rc.gameOver() {
			return nil
		}
		rc.applyEntryHazards(r.player)
	}
	if rc.gameOver() {
		return nil
	}
	return rc.nextState()
}

// nextState returns to action selection unless someone owes a switch.
func (rc *roundContext) nextState() error {
	if len(rc.b.RequiredToSwitch()) > 0 {
		return rc.b.Transition(battle.StateSelectingRequiredSwitch)
	}
	return rc.b.Transition(battle.StateSelectingActions)
}

// executePlans runs the prepared plans in order. Plans of a Pokémon that
// fainted earlier in the round are skipped.
func (rc *roundContext) executePlans(plans []plannedAction) {
	for i := range plans {
		if rc.gameOver() {
			return
		}
		plan := &plans[i]
		switch plan.action {
		case ActionSwitch:
			rc.switchIn(plan.player, plan.switchTo)
		case ActionMove, ActionStruggle:
			mon := plan.player.ActivePokemon()
			if mon == nil || !mon.IsAlive() || rc.b.IsRequiredToSwitch(plan.player.Name) {
				continue
			}
			rc.execMove(plan)
		case ActionNoPP:
			mon := plan.player.ActivePokemon()
			if mon == nil || !mon.IsAlive() {
				continue
			}
			rc.add("%s has no PP left for %s!", rc.ownerLabel(plan.player), keys.DisplayName(plan.move.Name))
		}
	}
}

// switchIn withdraws the active Pokémon and sends out team[idx].
func (rc *roundContext) switchIn(p *battle.Player, idx int) {
	if mon := p.ActivePokemon(); mon != nil && mon.IsAlive() {
		rc.b.AppendEvents(battle.DisplayMessage{
			ReferencedPlayerName: p.Name,
			Message:              fmt.Sprintf("%s, come back!", keys.DisplayName(mon.Name)),
		})
	}
	rc.deploy(p, idx)
	rc.applyEntryHazards(p)
}
