package battle

import (
	"encoding/json"
	"fmt"
)

type ActionType string

const (
	ActionSelectTeam     ActionType = "SELECT_TEAM"
	ActionSelectPokemon  ActionType = "SELECT_POKEMON"
	ActionSelectMove     ActionType = "SELECT_MOVE"
	ActionRequestRematch ActionType = "REQUEST_REMATCH"
	ActionQuitBattle     ActionType = "QUIT_BATTLE"
	ActionNothing        ActionType = "NOTHING"
)

// ActionDetails is the closed set of things a player can do in a turn.
// Implementations: SelectTeam, SelectPokemon, SelectMove, RequestRematch,
// QuitBattle and Nothing.
type ActionDetails interface {
	Type() ActionType
	isActionDetails()
}

type SelectTeam struct {
	PokemonNames []string
	// EnemyPokemonNames is only honoured in practice battles.
	EnemyPokemonNames []string
}

type SelectPokemon struct {
	PokemonIndex int
}

type SelectMove struct {
	MoveName string
}

type RequestRematch struct{}

type QuitBattle struct{}

// Nothing is a placeholder action that resolves as a no-op.
type Nothing struct{}

func (SelectTeam) Type() ActionType     { return ActionSelectTeam }
func (SelectPokemon) Type() ActionType  { return ActionSelectPokemon }
func (SelectMove) Type() ActionType     { return ActionSelectMove }
func (RequestRematch) Type() ActionType { return ActionRequestRematch }
func (QuitBattle) Type() ActionType     { return ActionQuitBattle }
func (Nothing) Type() ActionType        { return ActionNothing }

func (SelectTeam) isActionDetails()     {}
func (SelectPokemon) isActionDetails()  {}
func (SelectMove) isActionDetails()     {}
func (RequestRematch) isActionDetails() {}
func (QuitBattle) isActionDetails()     {}
func (Nothing) isActionDetails()        {}

// PlayerActionEvent is an action submitted by, or on behalf of, one player.
type PlayerActionEvent struct {
	PlayerName string
	Details    ActionDetails
}

// ActionType returns the details type, or "" when details are missing.
func (a PlayerActionEvent) ActionType() ActionType {
	if a.Details == nil {
		return ""
	}
	return a.Details.Type()
}

type actionDetailsWire struct {
	Type              ActionType `json:"type"`
	PokemonNames      []string   `json:"pokemonNames,omitempty"`
	EnemyPokemonNames []string   `json:"enemyPokemonNames,omitempty"`
	PokemonIndex      *int       `json:"pokemonIndex,omitempty"`
	MoveName          string     `json:"moveName,omitempty"`
}

type actionWire struct {
	Type       string             `json:"type,omitempty"`
	PlayerName string             `json:"playerName"`
	Details    *actionDetailsWire `json:"details"`
}

const playerActionType = "PLAYER_ACTION"

func (a PlayerActionEvent) MarshalJSON() ([]byte, error) {
	w := actionWire{Type: playerActionType, PlayerName: a.PlayerName}
	if a.Details != nil {
		d := &actionDetailsWire{Type: a.Details.Type()}
		switch v := a.Details.(type) {
		case SelectTeam:
			d.PokemonNames = v.PokemonNames
			d.EnemyPokemonNames = v.EnemyPokemonNames
		case SelectPokemon:
			idx := v.PokemonIndex
			d.PokemonIndex = &idx
		case SelectMove:
			d.MoveName = v.MoveName
		case RequestRematch, QuitBattle, Nothing:
		default:
			return nil, fmt.Errorf("battle: unsupported action details %T", a.Details)
		}
		w.Details = d
	}
	return json.Marshal(w)
}

func (a *PlayerActionEvent) UnmarshalJSON(data []byte) error {
	var w actionWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	a.PlayerName = w.PlayerName
	a.Details = nil
	if w.Details == nil {
		return nil
	}
	d, err := w.Details.decode()
	if err != nil {
		return err
	}
	a.Details = d
	return nil
}

func (d *actionDetailsWire) decode() (ActionDetails, error) {
	switch d.Type {
	case ActionSelectTeam:
		return SelectTeam{PokemonNames: d.PokemonNames, EnemyPokemonNames: d.EnemyPokemonNames}, nil
	case ActionSelectPokemon:
		if d.PokemonIndex == nil {
			return nil, fmt.Errorf("battle: %s requires pokemonIndex", d.Type)
		}
		return SelectPokemon{PokemonIndex: *d.PokemonIndex}, nil
	case ActionSelectMove:
		return SelectMove{MoveName: d.MoveName}, nil
	case ActionRequestRematch:
		return RequestRematch{}, nil
	case ActionQuitBattle:
		return QuitBattle{}, nil
	case ActionNothing:
		return Nothing{}, nil
	default:
		return nil, fmt.Errorf("battle: unknown action type %q", d.Type)
	}
}

func (a *PlayerActionEvent) clone() *PlayerActionEvent {
	if a == nil {
		return nil
	}
	out := *a
	if st, ok := a.Details.(SelectTeam); ok {
		st.PokemonNames = append([]string(nil), st.PokemonNames...)
		st.EnemyPokemonNames = append([]string(nil), st.EnemyPokemonNames...)
		out.Details = st
	}
	return &out
}
