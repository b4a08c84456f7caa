package battle

// validate rejects actions that are not legal in the current state. It never
// mutates the battle.
func (b *Battle) validate(a PlayerActionEvent) error {
	name := a.PlayerName
	if a.Details == nil {
		return invalid(name, "missing action details")
	}
	kind := a.Details.Type()

	if b.pending != nil && b.pending.PlayerName == name {
		return invalid(name, "already submitted their action")
	}
	p, ok := b.byName[name]
	if !ok {
		return invalid(name, "not a player in this battle")
	}
	if b.state == StateGameOver && kind != ActionRequestRematch {
		return invalid(name, "battle has already ended")
	}
	if kind == ActionRequestRematch && b.state != StateGameOver {
		return invalid(name, "battle has not ended yet")
	}
	if b.state == StateGameOverAndRematchRequested && kind != ActionQuitBattle {
		return invalid(name, "rematch has already been requested")
	}

	if b.state == StateSelectingTeam {
		switch d := a.Details.(type) {
		case SelectTeam:
			if len(d.PokemonNames) == 0 {
				return invalid(name, "must select Pokemon names")
			}
			if b.subType == SubTypePractice && len(d.EnemyPokemonNames) == 0 {
				return invalid(name, "must select enemy Pokemon names")
			}
		case QuitBattle:
		default:
			return invalid(name, "must select team")
		}
	} else if kind == ActionSelectTeam {
		return invalid(name, "team has already been selected")
	}

	mustSwitch := b.state == StateSelectingFirstPokemon ||
		(b.state == StateSelectingRequiredSwitch && b.IsRequiredToSwitch(name))
	if mustSwitch && kind != ActionSelectPokemon && kind != ActionQuitBattle {
		return invalid(name, "must select Pokemon")
	}

	active := p.ActivePokemon()
	if kind == ActionSelectMove && active != nil && !active.IsAlive() {
		return invalid(name, "Pokemon has fainted and cannot use moves")
	}
	if d, ok := a.Details.(SelectPokemon); ok {
		if b.state != StateSelectingFirstPokemon && p.ActivePokemonIndex == d.PokemonIndex {
			return invalid(name, "Pokemon is already active")
		}
		if d.PokemonIndex < 0 || d.PokemonIndex >= len(p.Team) {
			return invalid(name, "no Pokemon at that team position")
		}
		if !p.Team[d.PokemonIndex].IsAlive() {
			return invalid(name, "cannot select fainted Pokemon")
		}
		if b.state != StateSelectingFirstPokemon && active != nil && active.BindingMoveName != "" {
			return invalid(name, "Pokemon is bound and cannot switch")
		}
	}
	if b.checker != nil {
		if err := b.checker.CheckAction(b, a); err != nil {
			return &ActionError{PlayerName: name, Reason: err.Error(), Cause: err}
		}
	}
	return nil
}
