package battle

import "time"

// MoveSlot is one learned move with its remaining power points.
type MoveSlot struct {
	Name  string `json:"name"`
	PP    int    `json:"pp"`
	MaxPP int    `json:"maxPp"`
}

type Ability struct {
	Name            string `json:"name"`
	SuppressWeather bool   `json:"suppressWeather,omitempty"`
}

// Pokemon is a team member in battle. Stats are already scaled for battle use.
type Pokemon struct {
	Name           string     `json:"name"`
	Types          []string   `json:"types"`
	HP             int        `json:"hp"`
	MaxHP          int        `json:"maxHp"`
	Attack         int        `json:"attack"`
	Defense        int        `json:"defense"`
	SpecialAttack  int        `json:"specialAttack"`
	SpecialDefense int        `json:"specialDefense"`
	Speed          int        `json:"speed"`
	Moves          []MoveSlot `json:"moves"`
	Ability        *Ability   `json:"ability,omitempty"`
	Status         Status     `json:"status,omitempty"`
	// BindingMoveName is set while a binding move traps this Pokémon.
	BindingMoveName string `json:"bindingMoveName,omitempty"`
	BindingTurns    int    `json:"bindingTurns,omitempty"`
}

func (p *Pokemon) IsAlive() bool { return p.HP > 0 }

// SuppressesWeather reports whether the Pokémon's ability cancels weather effects.
func (p *Pokemon) SuppressesWeather() bool {
	return p.Ability != nil && p.Ability.SuppressWeather
}

func (p Pokemon) clone() Pokemon {
	out := p
	out.Types = append([]string(nil), p.Types...)
	out.Moves = append([]MoveSlot(nil), p.Moves...)
	if p.Ability != nil {
		a := *p.Ability
		out.Ability = &a
	}
	return out
}

// Player is one side of a battle together with its field hazards.
type Player struct {
	Name               string     `json:"name"`
	Type               PlayerType `json:"type"`
	Team               []Pokemon  `json:"team"`
	ActivePokemonIndex int        `json:"activePokemonIndex"`
	// LastActionTimestamp is refreshed for human players on each accepted action.
	LastActionTimestamp time.Time `json:"lastActionTimestamp"`

	SpikeLayerCount           int  `json:"spikeLayerCount"`
	ToxicSpikeLayerCount      int  `json:"toxicSpikeLayerCount"`
	HasStealthRock            bool `json:"hasStealthRock"`
	HasStickyWeb              bool `json:"hasStickyWeb"`
	RemainingLightScreenTurns int  `json:"remainingLightScreenTurns"`
	RemainingReflectTurns     int  `json:"remainingReflectTurns"`
}

// ActivePokemon returns the Pokémon currently on the field, or nil when the
// team has not been selected yet.
func (p *Player) ActivePokemon() *Pokemon {
	if p.ActivePokemonIndex < 0 || p.ActivePokemonIndex >= len(p.Team) {
		return nil
	}
	return &p.Team[p.ActivePokemonIndex]
}

// HasHealthyReserve reports whether a non-active team member can still fight.
func (p *Player) HasHealthyReserve() bool {
	for i := range p.Team {
		if i != p.ActivePokemonIndex && p.Team[i].IsAlive() {
			return true
		}
	}
	return false
}

func (p *Player) hazards() HazardsChange {
	return HazardsChange{
		PlayerName:           p.Name,
		SpikeLayerCount:      p.SpikeLayerCount,
		ToxicSpikeLayerCount: p.ToxicSpikeLayerCount,
		HasStealthRock:       p.HasStealthRock,
		HasStickyWeb:         p.HasStickyWeb,
		HasLightScreen:       p.RemainingLightScreenTurns > 0,
		HasReflect:           p.RemainingReflectTurns > 0,
	}
}

func (p Player) clone() Player {
	out := p
	out.Team = make([]Pokemon, len(p.Team))
	for i := range p.Team {
		out.Team[i] = p.Team[i].clone()
	}
	return out
}
