package battle

import (
	"bytes"
	"encoding/json"
	"fmt"
)

type EventType string

const (
	EventDisplayMessage    EventType = "DISPLAY_MESSAGE"
	EventSoundEffect       EventType = "SOUND_EFFECT"
	EventWeatherChange     EventType = "WEATHER_CHANGE"
	EventHazardsChange     EventType = "HAZARDS_CHANGE"
	EventBattleStateChange EventType = "BATTLE_STATE_CHANGE"
	EventTeamSelected      EventType = "TEAM_SELECTED"
	EventDeploy            EventType = "DEPLOY"
	EventHealthChange      EventType = "HEALTH_CHANGE"
	EventPPChange          EventType = "PP_CHANGE"
	EventStatusChange      EventType = "STATUS_CHANGE"
	EventBindChange        EventType = "BIND_CHANGE"
	EventFaint             EventType = "FAINT"
	EventGameOver          EventType = "GAME_OVER"
)

// BattleEvent is one entry of the battle's event log. The set of
// implementations is closed; see the EventType constants.
type BattleEvent interface {
	EventType() EventType
	isBattleEvent()
}

// DisplayMessage is a text line. ForPlayerName restricts it to one viewer.
type DisplayMessage struct {
	Message              string `json:"message"`
	ReferencedPlayerName string `json:"referencedPlayerName,omitempty"`
	ForPlayerName        string `json:"forPlayerName,omitempty"`
}

type SoundEffectEvent struct {
	FileName      string    `json:"fileName,omitempty"`
	SoundType     SoundType `json:"soundType"`
	ForPlayerName string    `json:"forPlayerName,omitempty"`
	StopMusic     bool      `json:"stopMusic,omitempty"`
}

type WeatherChange struct {
	NewWeather Weather `json:"newWeather"`
}

// HazardsChange carries the full hazard state of one side after a change.
type HazardsChange struct {
	PlayerName           string `json:"playerName"`
	SpikeLayerCount      int    `json:"spikeLayerCount"`
	ToxicSpikeLayerCount int    `json:"toxicSpikeLayerCount"`
	HasStealthRock       bool   `json:"hasStealthRock"`
	HasStickyWeb         bool   `json:"hasStickyWeb"`
	HasLightScreen       bool   `json:"hasLightScreen"`
	HasReflect           bool   `json:"hasReflect"`
}

type BattleStateChange struct {
	NewState BattleState `json:"newState"`
}

type TeamSelected struct {
	PlayerName string   `json:"playerName"`
	Team       []string `json:"team"`
}

type Deploy struct {
	PlayerName   string `json:"playerName"`
	PokemonIndex int    `json:"pokemonIndex"`
	PokemonName  string `json:"pokemonName"`
}

type HealthChange struct {
	PlayerName   string `json:"playerName"`
	PokemonIndex int    `json:"pokemonIndex"`
	NewHP        int    `json:"newHp"`
	Delta        int    `json:"delta"`
}

type PPChange struct {
	PlayerName   string `json:"playerName"`
	PokemonIndex int    `json:"pokemonIndex"`
	MoveName     string `json:"moveName"`
	NewPP        int    `json:"newPp"`
}

type StatusChange struct {
	PlayerName   string `json:"playerName"`
	PokemonIndex int    `json:"pokemonIndex"`
	NewStatus    Status `json:"newStatus"`
}

// BindChange reports a binding move starting or, with an empty
// BindingMoveName, ending.
type BindChange struct {
	PlayerName      string `json:"playerName"`
	PokemonIndex    int    `json:"pokemonIndex"`
	BindingMoveName string `json:"bindingMoveName,omitempty"`
}

type Faint struct {
	PlayerName   string `json:"playerName"`
	PokemonIndex int    `json:"pokemonIndex"`
}

type GameOver struct {
	WinnerName string `json:"winnerName,omitempty"`
	LoserName  string `json:"loserName,omitempty"`
}

func (DisplayMessage) EventType() EventType    { return EventDisplayMessage }
func (SoundEffectEvent) EventType() EventType  { return EventSoundEffect }
func (WeatherChange) EventType() EventType     { return EventWeatherChange }
func (HazardsChange) EventType() EventType     { return EventHazardsChange }
func (BattleStateChange) EventType() EventType { return EventBattleStateChange }
func (TeamSelected) EventType() EventType      { return EventTeamSelected }
func (Deploy) EventType() EventType            { return EventDeploy }
func (HealthChange) EventType() EventType      { return EventHealthChange }
func (PPChange) EventType() EventType          { return EventPPChange }
func (StatusChange) EventType() EventType      { return EventStatusChange }
func (BindChange) EventType() EventType        { return EventBindChange }
func (Faint) EventType() EventType             { return EventFaint }
func (GameOver) EventType() EventType          { return EventGameOver }

func (DisplayMessage) isBattleEvent()    {}
func (SoundEffectEvent) isBattleEvent()  {}
func (WeatherChange) isBattleEvent()     {}
func (HazardsChange) isBattleEvent()     {}
func (BattleStateChange) isBattleEvent() {}
func (TeamSelected) isBattleEvent()      {}
func (Deploy) isBattleEvent()            {}
func (HealthChange) isBattleEvent()      {}
func (PPChange) isBattleEvent()          {}
func (StatusChange) isBattleEvent()      {}
func (BindChange) isBattleEvent()        {}
func (Faint) isBattleEvent()             {}
func (GameOver) isBattleEvent()          {}

// Messagef formats a DisplayMessage visible to everyone.
func Messagef(format string, args ...interface{}) DisplayMessage {
	return DisplayMessage{Message: fmt.Sprintf(format, args...)}
}

// Events is an ordered event list with a type-tagged JSON encoding.
type Events []BattleEvent

// MarshalEvent encodes one event as an object carrying a "type" field.
func MarshalEvent(e BattleEvent) ([]byte, error) {
	if e == nil {
		return nil, fmt.Errorf("battle: nil event")
	}
	body, err := json.Marshal(e)
	if err != nil {
		return nil, err
	}
	head, err := json.Marshal(e.EventType())
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"type":`)
	buf.Write(head)
	if len(body) > 2 {
		buf.WriteByte(',')
		buf.Write(body[1:])
	} else {
		buf.WriteByte('}')
	}
	return buf.Bytes(), nil
}

// UnmarshalEvent decodes an object produced by MarshalEvent.
func UnmarshalEvent(data []byte) (BattleEvent, error) {
	var head struct {
		Type EventType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, err
	}
	var e BattleEvent
	var err error
	switch head.Type {
	case EventDisplayMessage:
		e, err = decodeEvent[DisplayMessage](data)
	case EventSoundEffect:
		e, err = decodeEvent[SoundEffectEvent](data)
	case EventWeatherChange:
		e, err = decodeEvent[WeatherChange](data)
	case EventHazardsChange:
		e, err = decodeEvent[HazardsChange](data)
	case EventBattleStateChange:
		e, err = decodeEvent[BattleStateChange](data)
	case EventTeamSelected:
		e, err = decodeEvent[TeamSelected](data)
	case EventDeploy:
		e, err = decodeEvent[Deploy](data)
	case EventHealthChange:
		e, err = decodeEvent[HealthChange](data)
	case EventPPChange:
		e, err = decodeEvent[PPChange](data)
	case EventStatusChange:
		e, err = decodeEvent[StatusChange](data)
	case EventBindChange:
		e, err = decodeEvent[BindChange](data)
	case EventFaint:
		e, err = decodeEvent[Faint](data)
	case EventGameOver:
		e, err = decodeEvent[GameOver](data)
	default:
		return nil, fmt.Errorf("battle: unknown event type %q", head.Type)
	}
	return e, err
}

func decodeEvent[T BattleEvent](data []byte) (BattleEvent, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

func (es Events) MarshalJSON() ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(es))
	for _, e := range es {
		b, err := MarshalEvent(e)
		if err != nil {
			return nil, err
		}
		raws = append(raws, b)
	}
	return json.Marshal(raws)
}

func (es *Events) UnmarshalJSON(data []byte) error {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return err
	}
	out := make(Events, 0, len(raws))
	for i, raw := range raws {
		e, err := UnmarshalEvent(raw)
		if err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
		out = append(out, e)
	}
	*es = out
	return nil
}
