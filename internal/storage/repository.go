package storage

import (
	"errors"

	"github.com/ericogr/pokebattle/internal/battle"
)

var ErrNotFound = errors.New("not found")

type Repository interface {
	// SaveBattle stores the snapshot, replacing any earlier one for the same id.
	SaveBattle(data battle.BattleData) error
	// LoadBattle returns ErrNotFound when the id was never saved.
	LoadBattle(battleID string) (*battle.BattleData, error)
	// RecordResult stores the outcome and updates both profiles. It reports
	// false, without touching profiles, when the battle was already recorded.
	RecordResult(battleID, winner, loser string) (bool, error)
	GetTopPlayers(limit int) ([]User, error)
	// GetStatsByUsername returns an empty profile for unknown names.
	GetStatsByUsername(name string) (*User, error)
}
