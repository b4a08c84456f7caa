package engine

import (
	"fmt"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/keys"
)

// resolveTeamSelection builds every team first and only then applies them,
// so an unknown species leaves the battle untouched.
func (rc *roundContext) resolveTeamSelection() error {
	players := rc.b.Players()
	teams := make(map[string][]battle.Pokemon, len(players))

	for _, a := range rc.round.Actions() {
		st, ok := a.Details.(battle.SelectTeam)
		if !ok {
			continue
		}
		p, err := rc.b.Player(a.PlayerName)
		if err != nil {
			return err
		}
		if len(st.PokemonNames) > MaxTeamSize {
			return fmt.Errorf("%w: %d Pokemon selected, at most %d allowed", ErrInvalidTeam, len(st.PokemonNames), MaxTeamSize)
		}
		team, err := rc.r.dex.BuildTeam(st.PokemonNames)
		if err != nil {
			return err
		}
		teams[p.Name] = team
		if rc.b.SubType() == battle.SubTypePractice && len(st.EnemyPokemonNames) > 0 {
			opp := rc.b.Opponent(p)
			if opp == nil {
				continue
			}
			if len(st.EnemyPokemonNames) > MaxTeamSize {
				return fmt.Errorf("%w: %d enemy Pokemon selected, at most %d allowed", ErrInvalidTeam, len(st.EnemyPokemonNames), MaxTeamSize)
			}
			enemy, err := rc.r.dex.BuildTeam(st.EnemyPokemonNames)
			if err != nil {
				return err
			}
			teams[opp.Name] = enemy
		}
	}
	for _, p := range players {
		if _, ok := teams[p.Name]; ok || len(p.Team) > 0 || p.Type != battle.Computer {
			continue
		}
		team, err := rc.r.dex.BuildTeam(rc.r.dex.RandomTeam(rc.r.rng.Intn, rc.r.teamSize))
		if err != nil {
			return err
		}
		teams[p.Name] = team
	}
	for _, p := range players {
		if _, ok := teams[p.Name]; !ok && len(p.Team) == 0 {
			return fmt.Errorf("%w: %s has no team", ErrInvalidTeam, p.Name)
		}
	}

	for _, p := range players {
		if team, ok := teams[p.Name]; ok {
			p.Team = team
			p.ActivePokemonIndex = 0
		}
		names := make([]string, 0, len(p.Team))
		for i := range p.Team {
			names = append(names, p.Team[i].Name)
		}
		rc.emit(battle.TeamSelected{PlayerName: p.Name, Team: names})
	}
	return rc.b.Transition(battle.StateSelectingFirstPokemon)
}

// resolveFirstPokemon sends out each player's lead. A side without a
// SELECT_POKEMON leads with its first healthy Pokémon.
func (rc *roundContext) resolveFirstPokemon() error {
	players := rc.b.Players()
	leads := make(map[string]int, len(players))
	for _, p := range players {
		idx := firstHealthy(p)
		if a, ok := rc.actionOf(p); ok {
			if sp, ok := a.Details.(battle.SelectPokemon); ok {
				if sp.PokemonIndex < 0 || sp.PokemonIndex >= len(p.Team) {
					return fmt.Errorf("%w: %d for %s", ErrInvalidPokemonIndex, sp.PokemonIndex, p.Name)
				}
				idx = sp.PokemonIndex
			}
		}
		if idx < 0 {
			return fmt.Errorf("%w: %s has no healthy Pokemon", ErrInvalidPokemonIndex, p.Name)
		}
		leads[p.Name] = idx
	}
	for _, p := range players {
		rc.deploy(p, leads[p.Name])
	}
	rc.b.NextTurn()
	rc.add("Turn %d", rc.b.TurnCount())
	return rc.b.Transition(battle.StateSelectingActions)
}

// resolveRematch moves the battle on once both players asked for a rematch.
func (rc *roundContext) resolveRematch() error {
	requests := 0
	for _, a := range rc.round.Actions() {
		if _, ok := a.Details.(battle.RequestRematch); ok {
			requests++
		}
	}
	if requests < 2 {
		return nil
	}
	rc.add("A rematch has been requested!")
	return rc.b.RequestRematch()
}

func firstHealthy(p *battle.Player) int {
	for i := range p.Team {
		if p.Team[i].IsAlive() {
			return i
		}
	}
	return -1
}

// deploy puts team[idx] on the field without entry hazards.
func (rc *roundContext) deploy(p *battle.Player, idx int) {
	p.ActivePokemonIndex = idx
	mon := &p.Team[idx]
	rc.emit(battle.Deploy{PlayerName: p.Name, PokemonIndex: idx, PokemonName: mon.Name})
	rc.b.AppendEvents(battle.DisplayMessage{
		ReferencedPlayerName: p.Name,
		Message:              fmt.Sprintf("%s sent out %s!", p.Name, keys.DisplayName(mon.Name)),
	})
}
