package engine

import (
	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
	"github.com/ericogr/pokebattle/internal/keys"
)

// finalizeRound applies end of turn effects and advances the turn counter.
func (rc *roundContext) finalizeRound() {
	players := rc.b.Players()
	weather := rc.b.Weather()
	weatherActive := rc.b.WeatherActive()

	for _, p := range players {
		if rc.gameOver() {
			return
		}
		rc.residual(p, weather, weatherActive)
	}
	if rc.gameOver() {
		return
	}
	rc.b.AdvanceWeather()
	for _, p := range players {
		rc.tickScreens(p)
	}
	rc.b.NextTurn()
	rc.add("Turn %d", rc.b.TurnCount())
}

func (rc *roundContext) residual(p *battle.Player, w battle.Weather, weatherActive bool) {
	mon := p.ActivePokemon()
	if mon == nil || !mon.IsAlive() || rc.b.IsRequiredToSwitch(p.Name) {
		return
	}
	if weatherActive {
		switch w {
		case battle.WeatherSandstorm:
			if !dex.HasType(mon.Types, dex.Rock) && !dex.HasType(mon.Types, dex.Ground) && !dex.HasType(mon.Types, dex.Steel) {
				rc.add("%s is buffeted by the sandstorm!", rc.ownerLabel(p))
				rc.damage(p, fraction(mon.MaxHP, 16))
			}
		case battle.WeatherHail:
			if !dex.HasType(mon.Types, dex.Ice) {
				rc.add("%s is buffeted by the hail!", rc.ownerLabel(p))
				rc.damage(p, fraction(mon.MaxHP, 16))
			}
		}
	}
	if !mon.IsAlive() {
		return
	}
	switch mon.Status {
	case battle.StatusBurned:
		rc.add("%s is hurt by its burn!", rc.ownerLabel(p))
		rc.damage(p, fraction(mon.MaxHP, 16))
	case battle.StatusPoisoned:
		rc.add("%s is hurt by poison!", rc.ownerLabel(p))
		rc.damage(p, fraction(mon.MaxHP, 8))
	}
	if !mon.IsAlive() || mon.BindingMoveName == "" {
		return
	}
	rc.add("%s is hurt by %s!", rc.ownerLabel(p), keys.DisplayName(mon.BindingMoveName))
	rc.damage(p, fraction(mon.MaxHP, 8))
	if !mon.IsAlive() {
		return
	}
	mon.BindingTurns--
	if mon.BindingTurns <= 0 {
		rc.add("%s was freed from %s!", rc.ownerLabel(p), keys.DisplayName(mon.BindingMoveName))
		mon.BindingMoveName = ""
		mon.BindingTurns = 0
		rc.emit(battle.BindChange{PlayerName: p.Name, PokemonIndex: p.ActivePokemonIndex})
	}
}

// tickScreens counts screens down and reports the snapshot when one ends.
func (rc *roundContext) tickScreens(p *battle.Player) {
	ended := false
	if p.RemainingLightScreenTurns > 0 {
		p.RemainingLightScreenTurns--
		if p.RemainingLightScreenTurns == 0 {
			rc.add("%s's Light Screen wore off!", p.Name)
			ended = true
		}
	}
	if p.RemainingReflectTurns > 0 {
		p.RemainingReflectTurns--
		if p.RemainingReflectTurns == 0 {
			rc.add("%s's Reflect wore off!", p.Name)
			ended = true
		}
	}
	if ended {
		rc.b.PushHazardsChangeEvent(p)
	}
}
