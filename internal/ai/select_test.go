package ai

import (
	"errors"
	"testing"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/dex"
)

func team(t *testing.T, names ...string) []battle.Pokemon {
	t.Helper()
	out, err := dex.Default().BuildTeam(names)
	if err != nil {
		t.Fatalf("build team: %v", err)
	}
	return out
}

func view(state battle.BattleState, human, cpu []battle.Pokemon) battle.BattleData {
	return battle.BattleData{
		BattleState: state,
		BattleType:  battle.SinglePlayer,
		Players: []battle.Player{
			{Name: "ash", Type: battle.Human, Team: human},
			{Name: "cpu", Type: battle.Computer, Team: cpu},
		},
		Weather: battle.WeatherNone,
	}
}

func TestSelectAction_PrefersSuperEffectiveMove(t *testing.T) {
	s := NewSelector(dex.Default())
	v := view(battle.StateSelectingActions, team(t, "Charizard"), team(t, "Blastoise"))
	// Charizard already has a status so Blastoise's status options score zero.
	v.Players[0].Team[0].Status = battle.StatusBurned
	a, err := s.SelectAction(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sm, ok := a.Details.(battle.SelectMove)
	if !ok || sm.MoveName != "Surf" {
		t.Fatalf("expected Surf, got %+v", a.Details)
	}
	if a.PlayerName != "cpu" {
		t.Fatalf("expected computer player name, got %s", a.PlayerName)
	}
}

func TestSelectAction_SkipsMovesWithoutPP(t *testing.T) {
	s := NewSelector(dex.Default())
	cpu := team(t, "Blastoise")
	for i := range cpu[0].Moves {
		if cpu[0].Moves[i].Name == "Surf" {
			cpu[0].Moves[i].PP = 0
		}
	}
	v := view(battle.StateSelectingActions, team(t, "Charizard"), cpu)
	a, err := s.SelectAction(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sm := a.Details.(battle.SelectMove); sm.MoveName == "Surf" {
		t.Fatalf("selected a move without PP")
	}
}

func TestSelectAction_RequiredSwitchPicksHealthyReserve(t *testing.T) {
	s := NewSelector(dex.Default())
	cpu := team(t, "Pikachu", "Snorlax", "Blastoise")
	cpu[0].HP = 0
	cpu[2].HP = 0
	v := view(battle.StateSelectingRequiredSwitch, team(t, "Golem"), cpu)
	v.RequiredToSwitch = []string{"cpu"}
	a, err := s.SelectAction(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sp, ok := a.Details.(battle.SelectPokemon)
	if !ok || sp.PokemonIndex != 1 {
		t.Fatalf("expected switch to index 1, got %+v", a.Details)
	}
}

func TestSelectAction_FirstPokemonUsesMatchup(t *testing.T) {
	s := NewSelector(dex.Default())
	v := view(battle.StateSelectingFirstPokemon, team(t, "Charizard"), team(t, "Venusaur", "Blastoise"))
	a, err := s.SelectAction(v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sp := a.Details.(battle.SelectPokemon); sp.PokemonIndex != 1 {
		t.Fatalf("expected Blastoise lead against Charizard, got %d", sp.PokemonIndex)
	}
}

func TestSelectAction_NoComputer(t *testing.T) {
	s := NewSelector(dex.Default())
	v := view(battle.StateSelectingActions, team(t, "Pikachu"), team(t, "Golem"))
	v.Players[1].Type = battle.Human
	if _, err := s.SelectAction(v); !errors.Is(err, ErrNoComputerPlayer) {
		t.Fatalf("expected ErrNoComputerPlayer, got %v", err)
	}
}
