package dex

import "github.com/ericogr/pokebattle/internal/keys"

// Elemental types known to the damage chart.
const (
	Normal   = "Normal"
	Fire     = "Fire"
	Water    = "Water"
	Grass    = "Grass"
	Electric = "Electric"
	Ice      = "Ice"
	Ground   = "Ground"
	Rock     = "Rock"
	Flying   = "Flying"
	Poison   = "Poison"
	Bug      = "Bug"
	Steel    = "Steel"
	Psychic  = "Psychic"
	Fighting = "Fighting"
	Dragon   = "Dragon"
)

// chart[attacking][defending]; missing pairs are neutral.
var chart = map[string]map[string]float64{
	Normal:   {Rock: 0.5, Steel: 0.5},
	Fire:     {Fire: 0.5, Water: 0.5, Rock: 0.5, Dragon: 0.5, Grass: 2, Ice: 2, Bug: 2, Steel: 2},
	Water:    {Water: 0.5, Grass: 0.5, Dragon: 0.5, Fire: 2, Ground: 2, Rock: 2},
	Grass:    {Fire: 0.5, Grass: 0.5, Poison: 0.5, Flying: 0.5, Bug: 0.5, Dragon: 0.5, Steel: 0.5, Water: 2, Ground: 2, Rock: 2},
	Electric: {Electric: 0.5, Grass: 0.5, Dragon: 0.5, Ground: 0, Water: 2, Flying: 2},
	Ice:      {Fire: 0.5, Water: 0.5, Ice: 0.5, Steel: 0.5, Grass: 2, Ground: 2, Flying: 2, Dragon: 2},
	Ground:   {Grass: 0.5, Bug: 0.5, Flying: 0, Fire: 2, Electric: 2, Poison: 2, Rock: 2, Steel: 2},
	Rock:     {Fighting: 0.5, Ground: 0.5, Steel: 0.5, Fire: 2, Ice: 2, Flying: 2, Bug: 2},
	Flying:   {Electric: 0.5, Rock: 0.5, Steel: 0.5, Grass: 2, Fighting: 2, Bug: 2},
	Poison:   {Poison: 0.5, Ground: 0.5, Rock: 0.5, Steel: 0, Grass: 2},
	Bug:      {Fire: 0.5, Fighting: 0.5, Poison: 0.5, Flying: 0.5, Steel: 0.5, Grass: 2, Psychic: 2},
	Steel:    {Fire: 0.5, Water: 0.5, Electric: 0.5, Steel: 0.5, Ice: 2, Rock: 2},
	Psychic:  {Psychic: 0.5, Steel: 0.5, Fighting: 2, Poison: 2},
	Fighting: {Poison: 0.5, Flying: 0.5, Psychic: 0.5, Bug: 0.5, Normal: 2, Ice: 2, Rock: 2, Steel: 2},
	Dragon:   {Steel: 0.5, Dragon: 2},
}

// Effectiveness returns the damage multiplier of an attack type against a
// defender with the given types.
func Effectiveness(attack string, defender []string) float64 {
	row := chart[keys.DisplayName(attack)]
	mult := 1.0
	for _, t := range defender {
		if f, ok := row[keys.DisplayName(t)]; ok {
			mult *= f
		}
	}
	return mult
}

// HasType reports whether types contains t, ignoring case.
func HasType(types []string, t string) bool {
	k := keys.NameKey(t)
	for _, x := range types {
		if keys.NameKey(x) == k {
			return true
		}
	}
	return false
}
