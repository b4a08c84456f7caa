package battle

import (
	"errors"
	"testing"
	"time"

	"pgregory.net/rapid"
)

func newRapidBattle(t *rapid.T, data BattleData, res RoundResolver) *Battle {
	b, err := New(data, Config{Resolver: res, AfkInterval: time.Hour})
	if err != nil {
		t.Fatalf("new battle: %v", err)
	}
	return b
}

var rapidActions = []ActionDetails{
	SelectMove{MoveName: "Tackle"},
	SelectPokemon{PokemonIndex: 1},
	SelectPokemon{PokemonIndex: 0},
	SelectPokemon{PokemonIndex: 2},
	SelectTeam{PokemonNames: []string{"Pikachu"}},
	RequestRematch{},
	Nothing{},
}

func TestProperty_PendingAndRounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		res := &fakeResolver{}
		b := newRapidBattle(t, twoPlayers(StateSelectingActions), res)
		defer b.Close()

		accepted := 0
		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			player := rapid.SampledFrom([]string{"ash", "gary", "misty"}).Draw(t, "player")
			details := rapid.SampledFrom(rapidActions).Draw(t, "details")
			before := b.Snapshot()

			err := b.ReceivePlayerAction(act(player, details))
			after := b.Snapshot()
			if err != nil {
				if !errors.Is(err, ErrInvalidAction) {
					t.Fatalf("unexpected error: %v", err)
				}
				if len(after.Events) != len(before.Events) {
					t.Fatalf("rejected action appended events")
				}
				if (after.PendingPlayerAction == nil) != (before.PendingPlayerAction == nil) {
					t.Fatalf("rejected action changed the pending action")
				}
				continue
			}
			accepted++
			if res.count() != accepted/2 {
				t.Fatalf("expected %d rounds after %d accepted actions, got %d", accepted/2, accepted, res.count())
			}
			if (accepted%2 == 1) != (after.PendingPlayerAction != nil) {
				t.Fatalf("pending action out of step with accepted count %d", accepted)
			}
			if p := after.PendingPlayerAction; p != nil && p.PlayerName != player {
				t.Fatalf("pending action belongs to %s, expected %s", p.PlayerName, player)
			}
		}
	})
}

func TestProperty_WeatherCountdown(t *testing.T) {
	weathers := []Weather{WeatherSun, WeatherRain, WeatherSandstorm, WeatherHail}
	rapid.Check(t, func(t *rapid.T) {
		b := newRapidBattle(t, twoPlayers(StateSelectingActions), &fakeResolver{})
		defer b.Close()

		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			if rapid.Bool().Draw(t, "apply") {
				w := rapid.SampledFrom(weathers).Draw(t, "weather")
				b.ApplyWeather(w)
				if b.Weather() != w || b.RemainingWeatherTurns() != WeatherDuration {
					t.Fatalf("apply %s left %s with %d turns", w, b.Weather(), b.RemainingWeatherTurns())
				}
				continue
			}
			b.AdvanceWeather()
			turns := b.RemainingWeatherTurns()
			if turns < 0 || turns > WeatherDuration {
				t.Fatalf("weather turns out of range: %d", turns)
			}
			if (b.Weather() == WeatherNone) != (turns == 0) {
				t.Fatalf("weather %s with %d turns", b.Weather(), turns)
			}
		}
	})
}

func TestProperty_GameOverOnce(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := newRapidBattle(t, twoPlayers(StateSelectingActions), &fakeResolver{})
		defer b.Close()

		first := ""
		calls := rapid.IntRange(1, 5).Draw(t, "calls")
		for i := 0; i < calls; i++ {
			winner := rapid.SampledFrom([]string{"ash", "gary"}).Draw(t, "winner")
			loser := "gary"
			if winner == "gary" {
				loser = "ash"
			}
			if first == "" {
				first = winner
			}
			b.mu.Lock()
			b.DeclareWinner(b.byName[winner], b.byName[loser])
			b.mu.Unlock()
		}
		snap := b.Snapshot()
		if snap.WinnerName != first {
			t.Fatalf("winner changed from %s to %s", first, snap.WinnerName)
		}
		n := 0
		for _, e := range snap.Events {
			if _, ok := e.(GameOver); ok {
				n++
			}
		}
		if n != 1 {
			t.Fatalf("expected one game over event, got %d", n)
		}
	})
}
