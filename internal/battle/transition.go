package battle

import (
	"fmt"

	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
)

// Allowed edges besides "any non-terminal state -> GAME_OVER".
var transitions = map[BattleState][]BattleState{
	StateSelectingTeam:           {StateSelectingFirstPokemon},
	StateSelectingFirstPokemon:   {StateSelectingActions},
	StateSelectingActions:        {StateSelectingActions, StateSelectingRequiredSwitch},
	StateSelectingRequiredSwitch: {StateSelectingActions, StateSelectingRequiredSwitch},
	StateGameOver:                {StateGameOverAndRematchRequested},
}

// CanTransition reports whether from -> to is a legal edge.
func CanTransition(from, to BattleState) bool {
	if to == StateGameOver && !from.IsGameOver() {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the battle to a new state and records a
// BattleStateChange event. Self loops on the action states record nothing.
// Entering GAME_OVER stops the AFK monitor.
func (b *Battle) Transition(to BattleState) error {
	from := b.state
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
	}
	if from == to {
		return nil
	}
	b.state = to
	b.log.Append(BattleStateChange{NewState: to})
	logging.Debug("battle state changed", logging.Fields{
		constants.LogFieldBattleID: b.id,
		constants.LogFieldState:    string(to),
		"from":                     string(from),
	})
	if to == StateGameOver && b.afk != nil {
		b.afk.Stop()
	}
	return nil
}

// endBattle forces GAME_OVER unless gameplay already ended.
func (b *Battle) endBattle() {
	if b.state.IsGameOver() {
		return
	}
	_ = b.Transition(StateGameOver)
}
