package dex

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ericogr/pokebattle/internal/battle"
	"github.com/ericogr/pokebattle/internal/keys"
)

var (
	ErrUnknownSpecies = errors.New("unknown species")
	ErrUnknownMove    = errors.New("unknown move")
	ErrUnknownAbility = errors.New("unknown ability")
)

type Category string

const (
	Physical Category = "PHYSICAL"
	Special  Category = "SPECIAL"
	Status   Category = "STATUS"
)

// Hazard names an entry hazard a move lays on the target's side.
type Hazard string

const (
	HazardNone        Hazard = ""
	HazardSpikes      Hazard = "SPIKES"
	HazardToxicSpikes Hazard = "TOXIC_SPIKES"
	HazardStealthRock Hazard = "STEALTH_ROCK"
	HazardStickyWeb   Hazard = "STICKY_WEB"
)

// Screen names a protective screen a move raises on the user's side.
type Screen string

const (
	ScreenNone        Screen = ""
	ScreenLightScreen Screen = "LIGHT_SCREEN"
	ScreenReflect     Screen = "REFLECT"
)

type Species struct {
	Name           string   `json:"name"`
	Types          []string `json:"types"`
	BaseHP         int      `json:"base_hp"`
	Attack         int      `json:"attack"`
	Defense        int      `json:"defense"`
	SpecialAttack  int      `json:"special_attack"`
	SpecialDefense int      `json:"special_defense"`
	Speed          int      `json:"speed"`
	Moves          []string `json:"moves"`
	Ability        string   `json:"ability,omitempty"`
}

type Move struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Category Category `json:"category"`
	Power    int      `json:"power,omitempty"`
	PP       int      `json:"pp"`
	Priority int      `json:"priority,omitempty"`

	Weather battle.Weather `json:"weather,omitempty"`
	Hazard  Hazard         `json:"hazard,omitempty"`
	Screen  Screen         `json:"screen,omitempty"`
	// Binding moves trap the target for a few turns.
	Binding bool `json:"binding,omitempty"`
	// InflictStatus is applied to the target when the move lands.
	InflictStatus battle.Status `json:"inflict_status,omitempty"`
	StatusChance  int           `json:"status_chance,omitempty"`
	// ClearsHazards removes every hazard from the user's side.
	ClearsHazards bool `json:"clears_hazards,omitempty"`
}

type Ability struct {
	Name            string `json:"name"`
	SuppressWeather bool   `json:"suppress_weather,omitempty"`
}

// Dex is an immutable catalogue of species, moves and abilities.
type Dex struct {
	species   map[string]Species
	moves     map[string]Move
	abilities map[string]Ability
	names     []string
}

// New validates and indexes the catalogue. Names must be unique after
// case folding, and every move and ability a species references must exist.
func New(species []Species, moves []Move, abilities []Ability) (*Dex, error) {
	d := &Dex{
		species:   make(map[string]Species, len(species)),
		moves:     make(map[string]Move, len(moves)),
		abilities: make(map[string]Ability, len(abilities)),
	}
	for _, a := range abilities {
		k := keys.NameKey(a.Name)
		if k == "" {
			return nil, errors.New("ability entry missing 'name'")
		}
		if _, dup := d.abilities[k]; dup {
			return nil, fmt.Errorf("duplicate ability name: %s", a.Name)
		}
		d.abilities[k] = a
	}
	for _, m := range moves {
		k := keys.NameKey(m.Name)
		if k == "" {
			return nil, errors.New("move entry missing 'name'")
		}
		if _, dup := d.moves[k]; dup {
			return nil, fmt.Errorf("duplicate move name: %s", m.Name)
		}
		if m.PP <= 0 {
			return nil, fmt.Errorf("move %s: pp must be positive", m.Name)
		}
		switch m.Category {
		case Physical, Special:
			if m.Power <= 0 {
				return nil, fmt.Errorf("move %s: damaging moves need power", m.Name)
			}
		case Status:
		default:
			return nil, fmt.Errorf("move %s: unknown category %q", m.Name, m.Category)
		}
		d.moves[k] = m
	}
	for _, s := range species {
		k := keys.NameKey(s.Name)
		if k == "" {
			return nil, errors.New("species entry missing 'name'")
		}
		if _, dup := d.species[k]; dup {
			return nil, fmt.Errorf("duplicate species name: %s", s.Name)
		}
		if s.BaseHP <= 0 {
			return nil, fmt.Errorf("species %s: base_hp must be positive", s.Name)
		}
		if len(s.Moves) == 0 {
			return nil, fmt.Errorf("species %s: needs at least one move", s.Name)
		}
		for _, mv := range s.Moves {
			if _, ok := d.moves[keys.NameKey(mv)]; !ok {
				return nil, fmt.Errorf("species %s: %w: %s", s.Name, ErrUnknownMove, mv)
			}
		}
		if s.Ability != "" {
			if _, ok := d.abilities[keys.NameKey(s.Ability)]; !ok {
				return nil, fmt.Errorf("species %s: %w: %s", s.Name, ErrUnknownAbility, s.Ability)
			}
		}
		d.species[k] = s
		d.names = append(d.names, s.Name)
	}
	sort.Strings(d.names)
	return d, nil
}

func (d *Dex) Species(name string) (Species, error) {
	s, ok := d.species[keys.NameKey(name)]
	if !ok {
		return Species{}, fmt.Errorf("%w: %s", ErrUnknownSpecies, name)
	}
	return s, nil
}

func (d *Dex) Move(name string) (Move, error) {
	m, ok := d.moves[keys.NameKey(name)]
	if !ok {
		return Move{}, fmt.Errorf("%w: %s", ErrUnknownMove, name)
	}
	return m, nil
}

func (d *Dex) Ability(name string) (Ability, bool) {
	a, ok := d.abilities[keys.NameKey(name)]
	return a, ok
}

// Names returns every species name in sorted order.
func (d *Dex) Names() []string {
	return append([]string(nil), d.names...)
}

// AllSpecies returns the species in name order.
func (d *Dex) AllSpecies() []Species {
	out := make([]Species, 0, len(d.names))
	for _, n := range d.names {
		out = append(out, d.species[keys.NameKey(n)])
	}
	return out
}

// BuildPokemon creates a battle-ready Pokémon with full HP and PP.
// HP is scaled so a team lasts a handful of turns.
func (d *Dex) BuildPokemon(name string) (battle.Pokemon, error) {
	s, err := d.Species(name)
	if err != nil {
		return battle.Pokemon{}, err
	}
	hp := s.BaseHP*2 + 110
	p := battle.Pokemon{
		Name:           s.Name,
		Types:          append([]string(nil), s.Types...),
		HP:             hp,
		MaxHP:          hp,
		Attack:         s.Attack*2 + 5,
		Defense:        s.Defense*2 + 5,
		SpecialAttack:  s.SpecialAttack*2 + 5,
		SpecialDefense: s.SpecialDefense*2 + 5,
		Speed:          s.Speed*2 + 5,
		Moves:          make([]battle.MoveSlot, 0, len(s.Moves)),
	}
	for _, mv := range s.Moves {
		m, err := d.Move(mv)
		if err != nil {
			return battle.Pokemon{}, err
		}
		p.Moves = append(p.Moves, battle.MoveSlot{Name: m.Name, PP: m.PP, MaxPP: m.PP})
	}
	if s.Ability != "" {
		if a, ok := d.Ability(s.Ability); ok {
			p.Ability = &battle.Ability{Name: a.Name, SuppressWeather: a.SuppressWeather}
		}
	}
	return p, nil
}

// BuildTeam builds one Pokémon per name, in order.
func (d *Dex) BuildTeam(names []string) ([]battle.Pokemon, error) {
	team := make([]battle.Pokemon, 0, len(names))
	for _, n := range names {
		p, err := d.BuildPokemon(n)
		if err != nil {
			return nil, err
		}
		team = append(team, p)
	}
	return team, nil
}

// RandomTeam picks n distinct species names using intn as the random
// source. It returns fewer when the dex is smaller than n.
func (d *Dex) RandomTeam(intn func(int) int, n int) []string {
	if n > len(d.names) {
		n = len(d.names)
	}
	if n <= 0 {
		return nil
	}
	pool := append([]string(nil), d.names...)
	for i := 0; i < n; i++ {
		j := i + intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:n]
}
