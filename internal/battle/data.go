package battle

// BattleData is the serializable state of a battle. A Battle built from a
// snapshot with New behaves like the battle the snapshot was taken from.
type BattleData struct {
	BattleID              string             `json:"battleId"`
	BattleState           BattleState        `json:"battleState"`
	BattleType            BattleType         `json:"battleType"`
	BattleSubType         BattleSubType      `json:"battleSubType"`
	LeagueLevel           int                `json:"leagueLevel,omitempty"`
	Players               []Player           `json:"players"`
	Events                Events             `json:"events"`
	PendingPlayerAction   *PlayerActionEvent `json:"pendingPlayerAction"`
	RequiredToSwitch      []string           `json:"requiredToSwitch"`
	RematchRequested      bool               `json:"rematchRequested"`
	Weather               Weather            `json:"weather"`
	RemainingWeatherTurns int                `json:"remainingWeatherTurns"`
	WinnerName            string             `json:"winnerName,omitempty"`
	Rewards               []int              `json:"rewards,omitempty"`
	TurnCount             int                `json:"turnCount"`
}

// Player returns a copy of the named player from the snapshot.
func (d BattleData) Player(name string) (Player, bool) {
	for _, p := range d.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// Opponent returns the first player whose name differs from name.
func (d BattleData) Opponent(name string) (Player, bool) {
	for _, p := range d.Players {
		if p.Name != name {
			return p, true
		}
	}
	return Player{}, false
}
