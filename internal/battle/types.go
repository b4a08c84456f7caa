package battle

// BattleState is the position of a battle in its state machine.
type BattleState string

const (
	StateSelectingTeam               BattleState = "SELECTING_TEAM"
	StateSelectingFirstPokemon       BattleState = "SELECTING_FIRST_POKEMON"
	StateSelectingActions            BattleState = "SELECTING_ACTIONS"
	StateSelectingRequiredSwitch     BattleState = "SELECTING_REQUIRED_SWITCH"
	StateGameOver                    BattleState = "GAME_OVER"
	StateGameOverAndRematchRequested BattleState = "GAME_OVER_AND_REMATCH_REQUESTED"
)

// IsGameOver reports whether gameplay has ended, with or without a pending rematch.
func (s BattleState) IsGameOver() bool {
	return s == StateGameOver || s == StateGameOverAndRematchRequested
}

func (s BattleState) valid() bool {
	switch s {
	case StateSelectingTeam, StateSelectingFirstPokemon, StateSelectingActions,
		StateSelectingRequiredSwitch, StateGameOver, StateGameOverAndRematchRequested:
		return true
	}
	return false
}

type BattleType string

const (
	SinglePlayer BattleType = "SINGLE_PLAYER"
	MultiPlayer  BattleType = "MULTI_PLAYER"
)

type BattleSubType string

const (
	SubTypeArena     BattleSubType = "ARENA"
	SubTypeLeague    BattleSubType = "LEAGUE"
	SubTypePractice  BattleSubType = "PRACTICE"
	SubTypeChallenge BattleSubType = "CHALLENGE"
)

type PlayerType string

const (
	Human    PlayerType = "HUMAN"
	Computer PlayerType = "COMPUTER"
)

// Weather is the field weather. WeatherNone means clear skies.
type Weather string

const (
	WeatherNone      Weather = "NONE"
	WeatherSun       Weather = "SUN"
	WeatherRain      Weather = "RAIN"
	WeatherSandstorm Weather = "SANDSTORM"
	WeatherHail      Weather = "HAIL"
)

// WeatherDuration is the number of turns a newly applied weather lasts.
const WeatherDuration = 5

var weatherDescriptions = map[Weather]string{
	WeatherNone:      "clear",
	WeatherSun:       "harsh sunlight",
	WeatherRain:      "rain",
	WeatherSandstorm: "sandstorm",
	WeatherHail:      "hail",
}

// Description returns the human readable weather name used in messages.
func (w Weather) Description() string {
	if d, ok := weatherDescriptions[w]; ok {
		return d
	}
	return string(w)
}

// Status is a persistent status condition on a Pokémon.
type Status string

const (
	StatusNone      Status = ""
	StatusBurned    Status = "BURNED"
	StatusPoisoned  Status = "POISONED"
	StatusParalyzed Status = "PARALYZED"
)

// SoundType distinguishes background music cues from one-shot effects.
type SoundType string

const (
	SoundMusic  SoundType = "MUSIC"
	SoundEffect SoundType = "EFFECT"
)
