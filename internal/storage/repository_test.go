package storage

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/config"
)

func newTestRepo(t *testing.T) Repository {
	t.Helper()
	db, err := OpenDB(config.DriverSQLite, filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return NewRepository(db)
}

func TestSaveAndLoadBattle(t *testing.T) {
	repo := newTestRepo(t)
	data := battle.BattleData{
		BattleID:    "b-1",
		BattleState: battle.StateSelectingTeam,
		BattleType:  battle.MultiPlayer,
		Players:     []battle.Player{{Name: "ash", Type: battle.Human}},
		Events:      battle.Events{battle.DisplayMessage{Message: "hello"}},
		Weather:     battle.WeatherNone,
	}
	if err := repo.SaveBattle(data); err != nil {
		t.Fatalf("save: %v", err)
	}
	data.BattleState = battle.StateSelectingFirstPokemon
	data.Events = append(data.Events, battle.BattleStateChange{NewState: battle.StateSelectingFirstPokemon})
	if err := repo.SaveBattle(data); err != nil {
		t.Fatalf("second save: %v", err)
	}

	got, err := repo.LoadBattle("b-1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.BattleState != battle.StateSelectingFirstPokemon || len(got.Events) != 2 {
		t.Fatalf("expected the latest snapshot, got %s with %d events", got.BattleState, len(got.Events))
	}
	if _, ok := got.Events[1].(battle.BattleStateChange); !ok {
		t.Fatalf("unexpected event %T", got.Events[1])
	}
}

func TestLoadBattle_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	if _, err := repo.LoadBattle("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRecordResult_OncePerBattle(t *testing.T) {
	repo := newTestRepo(t)
	ok, err := repo.RecordResult("b-1", "ash", "gary")
	if err != nil || !ok {
		t.Fatalf("expected first record, got %v %v", ok, err)
	}
	ok, err = repo.RecordResult("b-1", "ash", "gary")
	if err != nil || ok {
		t.Fatalf("expected duplicate to be ignored, got %v %v", ok, err)
	}
	if _, err := repo.RecordResult("b-2", "gary", "ash"); err != nil {
		t.Fatalf("record: %v", err)
	}
	if _, err := repo.RecordResult("b-3", "ash", "gary"); err != nil {
		t.Fatalf("record: %v", err)
	}

	ash, err := repo.GetStatsByUsername("ash")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if ash.Wins != 2 || ash.Losses != 1 || ash.GamesPlayed != 3 || ash.Points != 2*PointsPerWin {
		t.Fatalf("unexpected ash stats %+v", ash)
	}

	top, err := repo.GetTopPlayers(10)
	if err != nil {
		t.Fatalf("top: %v", err)
	}
	if len(top) != 2 || top[0].Username != "ash" || top[1].Username != "gary" {
		t.Fatalf("unexpected leaderboard %+v", top)
	}
}

func TestGetStatsByUsername_Unknown(t *testing.T) {
	repo := newTestRepo(t)
	u, err := repo.GetStatsByUsername("misty")
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if u.Username != "misty" || u.Wins != 0 {
		t.Fatalf("expected empty profile, got %+v", u)
	}
}

func TestOpenDB_UnknownDriver(t *testing.T) {
	if _, err := OpenDB("oracle", "x"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
