package storage

import "gorm.io/gorm"

// BattleRecord holds the latest snapshot of a battle as JSON.
type BattleRecord struct {
	gorm.Model
	BattleID string `gorm:"uniqueIndex;size:64"`
	State    string `gorm:"index"`
	Type     string
	SubType  string
	Snapshot []byte
}

// BattleResult is written once per finished battle.
type BattleResult struct {
	gorm.Model
	BattleID string `gorm:"uniqueIndex;size:64"`
	Winner   string
	Loser    string
}

// User is a player's profile for the leaderboard.
type User struct {
	gorm.Model  `json:"-"`
	Username    string `json:"username" gorm:"uniqueIndex;size:128"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Points      int    `json:"points"`
}

// PointsPerWin is added to the winner's profile.
const PointsPerWin = 3
