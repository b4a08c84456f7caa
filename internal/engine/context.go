package engine

import (
	"fmt"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/keys"
)

// --- Round context and helpers ----------------------------------------
type roundContext struct {
	r     *BattleRounds
	b     *battle.Battle
	round battle.Round
}

func newRoundContext(r *BattleRounds, b *battle.Battle, round battle.Round) *roundContext {
	return &roundContext{r: r, b: b, round: round}
}

func (rc *roundContext) add(format string, args ...interface{}) {
	rc.b.AppendEvents(battle.DisplayMessage{Message: fmt.Sprintf(format, args...)})
}

func (rc *roundContext) emit(events ...battle.BattleEvent) { rc.b.AppendEvents(events...) }

func (rc *roundContext) chance(percent int) bool {
	if percent <= 0 {
		return false
	}
	if percent >= 100 {
		return true
	}
	return rc.r.rng.Intn(100) < percent
}

// actionOf returns the round action submitted by p, if any.
func (rc *roundContext) actionOf(p *battle.Player) (battle.PlayerActionEvent, bool) {
	for _, a := range rc.round.Actions() {
		if a.PlayerName == p.Name {
			return a, true
		}
	}
	return battle.PlayerActionEvent{}, false
}

func (rc *roundContext) gameOver() bool { return rc.b.CurrentState().IsGameOver() }

func displayName(p *battle.Pokemon) string {
	if p == nil {
		return ""
	}
	return keys.DisplayName(p.Name)
}

func (rc *roundContext) ownerLabel(p *battle.Player) string {
	return p.Name + "'s " + displayName(p.ActivePokemon())
}

// damage lowers the active Pokémon's HP and faints it at zero.
func (rc *roundContext) damage(p *battle.Player, amount int) {
	mon := p.ActivePokemon()
	if mon == nil || !mon.IsAlive() || amount <= 0 {
		return
	}
	if amount > mon.HP {
		amount = mon.HP
	}
	mon.HP -= amount
	rc.emit(battle.HealthChange{
		PlayerName:   p.Name,
		PokemonIndex: p.ActivePokemonIndex,
		NewHP:        mon.HP,
		Delta:        -amount,
	})
	if !mon.IsAlive() {
		rc.faint(p)
	}
}

func (rc *roundContext) heal(p *battle.Player, amount int) {
	mon := p.ActivePokemon()
	if mon == nil || !mon.IsAlive() || amount <= 0 || mon.HP == mon.MaxHP {
		return
	}
	if mon.HP+amount > mon.MaxHP {
		amount = mon.MaxHP - mon.HP
	}
	mon.HP += amount
	rc.emit(battle.HealthChange{
		PlayerName:   p.Name,
		PokemonIndex: p.ActivePokemonIndex,
		NewHP:        mon.HP,
		Delta:        amount,
	})
}

// faint records a fainted active Pokémon and either asks for a replacement
// or ends the battle.
func (rc *roundContext) faint(p *battle.Player) {
	mon := p.ActivePokemon()
	rc.add("%s fainted!", rc.ownerLabel(p))
	rc.emit(battle.Faint{PlayerName: p.Name, PokemonIndex: p.ActivePokemonIndex})
	if mon.BindingMoveName != "" {
		mon.BindingMoveName = ""
		mon.BindingTurns = 0
	}
	if p.HasHealthyReserve() {
		rc.b.RequireSwitch(p.Name)
		return
	}
	opp := rc.b.Opponent(p)
	if opp == nil {
		_ = rc.b.Transition(battle.StateGameOver)
		return
	}
	rc.b.DeclareWinner(opp, p)
}

func fraction(maxHP, div int) int {
	n := maxHP / div
	if n < 1 {
		n = 1
	}
	return n
}
