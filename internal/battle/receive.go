package battle

import (
	"fmt"

	"github.com/ericogr/pokebattle/internal/constants"
	"github.com/ericogr/pokebattle/internal/logging"
)

// ReceivePlayerAction validates an action and either buffers it as the
// pending action or resolves it together with the other side. Rejected
// actions return an ErrInvalidAction error and leave the battle unchanged.
func (b *Battle) ReceivePlayerAction(a PlayerActionEvent) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	fields := b.logFields()
	fields[constants.LogFieldPlayer] = a.PlayerName
	fields[constants.LogFieldAction] = string(a.ActionType())
	logging.Info("received player action", fields)

	if err := b.validate(a); err != nil {
		return err
	}

	if _, quit := a.Details.(QuitBattle); quit {
		b.endBattle()
		b.removePlayer(a.PlayerName, fmt.Sprintf("%s quit the battle.", a.PlayerName))
		return nil
	}

	synthesized := false
	if b.battleType == SinglePlayer && b.pending == nil && !b.soleRequiredSwitcher(a.PlayerName) {
		ai, err := b.computerAction(a)
		if err != nil {
			return err
		}
		b.pending = &ai
		synthesized = true
	}

	if err := b.pair(a); err != nil {
		// A failed round keeps the other side's action buffered, unless it
		// was the computer's answer to this one.
		if synthesized {
			b.pending = nil
		}
		return err
	}
	if err := b.runComputerSwitches(); err != nil {
		return err
	}

	if p, ok := b.byName[a.PlayerName]; ok && p.Type == Human {
		p.LastActionTimestamp = b.now()
	}
	return nil
}

// soleRequiredSwitcher reports whether name is the only player owing a
// switch, in which case the action resolves alone.
func (b *Battle) soleRequiredSwitcher(name string) bool {
	return !b.state.IsGameOver() && len(b.requiredToSwitch) == 1 && b.requiredToSwitch[0] == name
}

// computerAction picks the computer's answer to a human action. Selector
// failures are logged and the computer does nothing this turn.
func (b *Battle) computerAction(human PlayerActionEvent) (PlayerActionEvent, error) {
	cpu, err := b.ComputerPlayer()
	if err != nil {
		return PlayerActionEvent{}, err
	}
	switch {
	case b.state == StateSelectingTeam:
		return PlayerActionEvent{PlayerName: cpu.Name, Details: Nothing{}}, nil
	case human.ActionType() == ActionRequestRematch:
		return PlayerActionEvent{PlayerName: cpu.Name, Details: RequestRematch{}}, nil
	}
	ai, err := b.selector.SelectAction(b.snapshot(false))
	if err != nil {
		fields := b.logFields()
		fields[constants.LogFieldPlayer] = cpu.Name
		logging.Error("action selector failed, computer does nothing", err, fields)
		return PlayerActionEvent{PlayerName: cpu.Name, Details: Nothing{}}, nil
	}
	ai.PlayerName = cpu.Name
	logging.Debug("computer selected action", logging.Fields{
		constants.LogFieldBattleID: b.id,
		constants.LogFieldAction:   string(ai.ActionType()),
	})
	return ai, nil
}

// pair buffers or resolves a validated action.
func (b *Battle) pair(a PlayerActionEvent) error {
	if b.IsRequiredToSwitch(a.PlayerName) && b.state != StateGameOver {
		if len(b.requiredToSwitch) == 1 {
			return b.resolve(Round{First: &a})
		}
		if b.pending == nil {
			b.pending = &a
			return nil
		}
		return b.resolvePending(a)
	}
	if b.pending == nil {
		b.pending = &a
		return nil
	}
	return b.resolvePending(a)
}

// resolvePending resolves the buffered action with a. The buffered action
// is restored when resolution fails.
func (b *Battle) resolvePending(a PlayerActionEvent) error {
	other := b.pending
	b.pending = nil
	if err := b.resolve(Round{First: other, Second: &a}); err != nil {
		b.pending = other
		return err
	}
	return nil
}

// runComputerSwitches lets the computer replace fainted Pokémon until the
// human has something to do. The loop is bounded by the computer's team size.
func (b *Battle) runComputerSwitches() error {
	if b.battleType != SinglePlayer {
		return nil
	}
	limit := 1
	if cpu, err := b.ComputerPlayer(); err == nil {
		limit += len(cpu.Team)
	}
	for i := 0; i < limit && b.computerMustSwitch(); i++ {
		name := b.requiredToSwitch[0]
		ai, err := b.selector.SelectAction(b.snapshot(false))
		if err != nil {
			logging.Error("action selector failed during required switch, using first reserve", err, b.logFields())
			idx := firstHealthyReserve(b.byName[name])
			if idx < 0 {
				return nil
			}
			ai = PlayerActionEvent{Details: SelectPokemon{PokemonIndex: idx}}
		}
		ai.PlayerName = name
		if err := b.resolve(Round{First: &ai}); err != nil {
			return err
		}
	}
	return nil
}

func firstHealthyReserve(p *Player) int {
	for i := range p.Team {
		if i != p.ActivePokemonIndex && p.Team[i].IsAlive() {
			return i
		}
	}
	return -1
}

func (b *Battle) computerMustSwitch() bool {
	if b.state.IsGameOver() || len(b.requiredToSwitch) != 1 {
		return false
	}
	p, ok := b.byName[b.requiredToSwitch[0]]
	return ok && p.Type == Computer
}

// resolve hands a round to the resolver and logs what it produced.
func (b *Battle) resolve(r Round) error {
	before := b.log.Len()
	if err := b.resolver.ResolveRound(b, r); err != nil {
		return fmt.Errorf("%w: %w", ErrResolutionFailed, err)
	}
	fields := b.logFields()
	fields[constants.LogFieldEvents] = b.log.Len() - before
	logging.Debug("round resolved", fields)
	return nil
}

// removePlayer drops a player with a closing message. When nobody is left
// the battle ends.
func (b *Battle) removePlayer(name, message string) {
	if _, ok := b.byName[name]; !ok {
		return
	}
	b.log.Append(DisplayMessage{Message: message})
	delete(b.byName, name)
	kept := b.players[:0]
	for _, p := range b.players {
		if p.Name != name {
			kept = append(kept, p)
		}
	}
	b.players = kept
	b.ClearRequiredSwitch(name)
	if b.pending != nil && b.pending.PlayerName == name {
		b.pending = nil
	}
	if len(b.players) == 0 {
		b.endBattle()
		b.log.Append(DisplayMessage{Message: "No players left in the battle. The battle is over."})
		b.afk.Stop()
	}
}
