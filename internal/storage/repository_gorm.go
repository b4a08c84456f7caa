package storage

import (
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ericogr/pokebattle/internal/battle"
)

type gormRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) SaveBattle(data battle.BattleData) error {
	blob, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode battle %s: %w", data.BattleID, err)
	}
	rec := BattleRecord{
		BattleID: data.BattleID,
		State:    string(data.BattleState),
		Type:     string(data.BattleType),
		SubType:  string(data.BattleSubType),
		Snapshot: blob,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "battle_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"state", "type", "sub_type", "snapshot", "updated_at"}),
	}).Create(&rec).Error
}

func (r *gormRepository) LoadBattle(battleID string) (*battle.BattleData, error) {
	var rec BattleRecord
	if err := r.db.Where("battle_id = ?", battleID).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("battle %s: %w", battleID, ErrNotFound)
		}
		return nil, err
	}
	var data battle.BattleData
	if err := json.Unmarshal(rec.Snapshot, &data); err != nil {
		return nil, fmt.Errorf("decode battle %s: %w", battleID, err)
	}
	return &data, nil
}

func (r *gormRepository) RecordResult(battleID, winner, loser string) (bool, error) {
	recorded := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&BattleResult{BattleID: battleID, Winner: winner, Loser: loser})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		recorded = true

		// Helper to create the profile if needed and add deltas.
		bump := func(name string, wins, losses, points int) error {
			if name == "" {
				return nil
			}
			u := User{Username: name}
			if err := tx.Where("username = ?", name).FirstOrCreate(&u).Error; err != nil {
				return err
			}
			return tx.Model(&User{}).Where("id = ?", u.ID).Updates(map[string]any{
				"games_played": gorm.Expr("games_played + ?", 1),
				"wins":         gorm.Expr("wins + ?", wins),
				"losses":       gorm.Expr("losses + ?", losses),
				"points":       gorm.Expr("points + ?", points),
			}).Error
		}
		if err := bump(winner, 1, 0, PointsPerWin); err != nil {
			return err
		}
		return bump(loser, 0, 1, 0)
	})
	if err != nil {
		return false, err
	}
	return recorded, nil
}

// GetTopPlayers returns top N players ordered by points desc, then wins desc.
func (r *gormRepository) GetTopPlayers(limit int) ([]User, error) {
	if limit <= 0 {
		limit = 10
	}
	var users []User
	if err := r.db.Model(&User{}).
		Order("points DESC").
		Order("wins DESC").
		Order("username ASC").
		Limit(limit).
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormRepository) GetStatsByUsername(name string) (*User, error) {
	var u User
	if err := r.db.Where("username = ?", name).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &User{Username: name}, nil
		}
		return nil, err
	}
	return &u, nil
}
