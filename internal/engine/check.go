package engine

import (
	"fmt"

	"github.com/ericogr/pokebattle/internal/battle"
)

var _ battle.ActionChecker = (*BattleRounds)(nil)

// CheckAction rejects action content a round could not apply.
func (r *BattleRounds) CheckAction(b *battle.Battle, a battle.PlayerActionEvent) error {
	switch d := a.Details.(type) {
	case battle.SelectTeam:
		if err := r.checkTeam(d.PokemonNames); err != nil {
			return err
		}
		if b.SubType() == battle.SubTypePractice {
			return r.checkTeam(d.EnemyPokemonNames)
		}
	case battle.SelectMove:
		p, err := b.Player(a.PlayerName)
		if err != nil {
			return err
		}
		mon := p.ActivePokemon()
		if mon == nil || outOfPP(mon) {
			return nil
		}
		if moveIndex(mon, d.MoveName) < 0 {
			return fmt.Errorf("%w: %s does not know %s", ErrUnknownMove, mon.Name, d.MoveName)
		}
	}
	return nil
}

func (r *BattleRounds) checkTeam(names []string) error {
	if len(names) > MaxTeamSize {
		return fmt.Errorf("%w: %d Pokemon selected, at most %d allowed", ErrInvalidTeam, len(names), MaxTeamSize)
	}
	for _, name := range names {
		if _, err := r.dex.Species(name); err != nil {
			return err
		}
	}
	return nil
}
