package battle

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestBattleData_JSONRestoresBattle(t *testing.T) {
	stamp := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	data := twoPlayers(StateSelectingActions)
	data.BattleID = "b-1"
	data.Players[0].LastActionTimestamp = stamp
	data.Players[1].LastActionTimestamp = stamp
	data.Players[1].HasStealthRock = true
	data.Players[0].Team[0].Ability = &Ability{Name: "Cloud Nine", SuppressWeather: true}
	data.Weather = WeatherRain
	data.RemainingWeatherTurns = 3
	data.TurnCount = 4
	data.Events = Events{
		DisplayMessage{Message: "Turn 4"},
		HealthChange{PlayerName: "ash", PokemonIndex: 0, NewHP: 80, Delta: -20},
		WeatherChange{NewWeather: WeatherRain},
	}
	pending := act("gary", SelectPokemon{PokemonIndex: 1})
	data.PendingPlayerAction = &pending
	b := newTestBattle(t, data, Config{})

	raw, err := json.Marshal(b.Snapshot())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back BattleData
	if err := json.Unmarshal(raw, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	restored := newTestBattle(t, back, Config{})
	snap := restored.Snapshot()

	if snap.BattleID != "b-1" || snap.Weather != WeatherRain || snap.RemainingWeatherTurns != 3 || snap.TurnCount != 4 {
		t.Fatalf("scalar fields lost: %+v", snap)
	}
	if !snap.Players[1].HasStealthRock || !snap.Players[0].LastActionTimestamp.Equal(stamp) {
		t.Fatalf("player fields lost: %+v", snap.Players)
	}
	if a := snap.Players[0].Team[0].Ability; a == nil || !a.SuppressWeather {
		t.Fatalf("ability lost: %+v", a)
	}
	if len(snap.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(snap.Events))
	}
	if hc, ok := snap.Events[1].(HealthChange); !ok || hc.Delta != -20 {
		t.Fatalf("unexpected event %#v", snap.Events[1])
	}
	if snap.PendingPlayerAction == nil {
		t.Fatalf("pending action lost")
	}
	if sp, ok := snap.PendingPlayerAction.Details.(SelectPokemon); !ok || sp.PokemonIndex != 1 {
		t.Fatalf("unexpected pending details %#v", snap.PendingPlayerAction.Details)
	}

	// The restored battle keeps pairing where the original left off.
	if err := restored.ReceivePlayerAction(act("ash", SelectMove{MoveName: "Tackle"})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if restored.Snapshot().PendingPlayerAction != nil {
		t.Fatalf("expected the restored pending action to pair")
	}
}

func TestPlayerActionEvent_WireShape(t *testing.T) {
	raw, err := json.Marshal(act("ash", SelectPokemon{PokemonIndex: 0}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"type":"PLAYER_ACTION"`, `"playerName":"ash"`, `"type":"SELECT_POKEMON"`, `"pokemonIndex":0`} {
		if !strings.Contains(string(raw), want) {
			t.Fatalf("expected %s in %s", want, raw)
		}
	}

	var a PlayerActionEvent
	if err := json.Unmarshal([]byte(`{"playerName":"gary","details":{"type":"SELECT_MOVE","moveName":"Surf"}}`), &a); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if sm, ok := a.Details.(SelectMove); !ok || sm.MoveName != "Surf" || a.PlayerName != "gary" {
		t.Fatalf("unexpected action %+v", a)
	}
}

func TestPlayerActionEvent_RejectsBadDetails(t *testing.T) {
	cases := []string{
		`{"playerName":"ash","details":{"type":"DANCE"}}`,
		`{"playerName":"ash","details":{"type":"SELECT_POKEMON"}}`,
	}
	for _, c := range cases {
		var a PlayerActionEvent
		if err := json.Unmarshal([]byte(c), &a); err == nil {
			t.Fatalf("expected error for %s", c)
		}
	}
}

func TestEvents_UnknownTypeFails(t *testing.T) {
	var es Events
	if err := json.Unmarshal([]byte(`[{"type":"TELEPORT"}]`), &es); err == nil {
		t.Fatalf("expected error for unknown event type")
	}
}

func TestEventLog_SinceCopies(t *testing.T) {
	log := NewEventLog(DisplayMessage{Message: "a"})
	log.Append(DisplayMessage{Message: "b"})
	got := log.Since(-3)
	if len(got) != 2 {
		t.Fatalf("expected clamped suffix of 2, got %d", len(got))
	}
	got[0] = DisplayMessage{Message: "changed"}
	if m := log.All()[0].(DisplayMessage); m.Message != "a" {
		t.Fatalf("Since must return a copy")
	}
}
