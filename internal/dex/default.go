package dex

import "github.com/ericogr/pokebattle/internal/battle"

var defaultAbilities = []Ability{
	{Name: "Blaze"},
	{Name: "Torrent"},
	{Name: "Overgrow"},
	{Name: "Static"},
	{Name: "Sturdy"},
	{Name: "Levitate"},
	{Name: "Cloud Nine", SuppressWeather: true},
	{Name: "Air Lock", SuppressWeather: true},
	{Name: "Drizzle"},
}

var defaultMoves = []Move{
	{Name: "Tackle", Type: Normal, Category: Physical, Power: 40, PP: 35},
	{Name: "Quick Attack", Type: Normal, Category: Physical, Power: 40, PP: 30, Priority: 1},
	{Name: "Body Slam", Type: Normal, Category: Physical, Power: 85, PP: 15, InflictStatus: battle.StatusParalyzed, StatusChance: 30},
	{Name: "Flamethrower", Type: Fire, Category: Special, Power: 90, PP: 15, InflictStatus: battle.StatusBurned, StatusChance: 10},
	{Name: "Fire Spin", Type: Fire, Category: Special, Power: 35, PP: 15, Binding: true},
	{Name: "Surf", Type: Water, Category: Special, Power: 90, PP: 15},
	{Name: "Whirlpool", Type: Water, Category: Special, Power: 35, PP: 15, Binding: true},
	{Name: "Razor Leaf", Type: Grass, Category: Physical, Power: 55, PP: 25},
	{Name: "Giga Drain", Type: Grass, Category: Special, Power: 75, PP: 10},
	{Name: "Thunderbolt", Type: Electric, Category: Special, Power: 90, PP: 15, InflictStatus: battle.StatusParalyzed, StatusChance: 10},
	{Name: "Ice Beam", Type: Ice, Category: Special, Power: 90, PP: 10},
	{Name: "Earthquake", Type: Ground, Category: Physical, Power: 100, PP: 10},
	{Name: "Rock Slide", Type: Rock, Category: Physical, Power: 75, PP: 10},
	{Name: "Wing Attack", Type: Flying, Category: Physical, Power: 60, PP: 35},
	{Name: "Sludge Bomb", Type: Poison, Category: Special, Power: 90, PP: 10, InflictStatus: battle.StatusPoisoned, StatusChance: 30},
	{Name: "Psychic", Type: Psychic, Category: Special, Power: 90, PP: 10},
	{Name: "Dragon Claw", Type: Dragon, Category: Physical, Power: 80, PP: 15},
	{Name: "Wrap", Type: Normal, Category: Physical, Power: 15, PP: 20, Binding: true},
	{Name: "Rapid Spin", Type: Normal, Category: Physical, Power: 50, PP: 40, ClearsHazards: true},

	{Name: "Sunny Day", Type: Fire, Category: Status, PP: 5, Weather: battle.WeatherSun},
	{Name: "Rain Dance", Type: Water, Category: Status, PP: 5, Weather: battle.WeatherRain},
	{Name: "Sandstorm", Type: Rock, Category: Status, PP: 10, Weather: battle.WeatherSandstorm},
	{Name: "Hail", Type: Ice, Category: Status, PP: 10, Weather: battle.WeatherHail},
	{Name: "Spikes", Type: Ground, Category: Status, PP: 20, Hazard: HazardSpikes},
	{Name: "Toxic Spikes", Type: Poison, Category: Status, PP: 20, Hazard: HazardToxicSpikes},
	{Name: "Stealth Rock", Type: Rock, Category: Status, PP: 20, Hazard: HazardStealthRock},
	{Name: "Sticky Web", Type: Bug, Category: Status, PP: 20, Hazard: HazardStickyWeb},
	{Name: "Light Screen", Type: Psychic, Category: Status, PP: 30, Screen: ScreenLightScreen},
	{Name: "Reflect", Type: Psychic, Category: Status, PP: 20, Screen: ScreenReflect},
	{Name: "Thunder Wave", Type: Electric, Category: Status, PP: 20, InflictStatus: battle.StatusParalyzed},
	{Name: "Will-O-Wisp", Type: Fire, Category: Status, PP: 15, InflictStatus: battle.StatusBurned},
	{Name: "Toxic", Type: Poison, Category: Status, PP: 10, InflictStatus: battle.StatusPoisoned},
}

var defaultSpecies = []Species{
	{Name: "Charizard", Types: []string{Fire, Flying}, BaseHP: 78, Attack: 84, Defense: 78, SpecialAttack: 109, SpecialDefense: 85, Speed: 100,
		Moves: []string{"Flamethrower", "Wing Attack", "Sunny Day", "Fire Spin"}, Ability: "Blaze"},
	{Name: "Blastoise", Types: []string{Water}, BaseHP: 79, Attack: 83, Defense: 100, SpecialAttack: 85, SpecialDefense: 105, Speed: 78,
		Moves: []string{"Surf", "Ice Beam", "Rapid Spin", "Rain Dance"}, Ability: "Torrent"},
	{Name: "Venusaur", Types: []string{Grass, Poison}, BaseHP: 80, Attack: 82, Defense: 83, SpecialAttack: 100, SpecialDefense: 100, Speed: 80,
		Moves: []string{"Giga Drain", "Sludge Bomb", "Toxic", "Razor Leaf"}, Ability: "Overgrow"},
	{Name: "Pikachu", Types: []string{Electric}, BaseHP: 35, Attack: 55, Defense: 40, SpecialAttack: 50, SpecialDefense: 50, Speed: 90,
		Moves: []string{"Thunderbolt", "Quick Attack", "Thunder Wave", "Light Screen"}, Ability: "Static"},
	{Name: "Golem", Types: []string{Rock, Ground}, BaseHP: 80, Attack: 120, Defense: 130, SpecialAttack: 55, SpecialDefense: 65, Speed: 45,
		Moves: []string{"Earthquake", "Rock Slide", "Stealth Rock", "Sandstorm"}, Ability: "Sturdy"},
	{Name: "Gengar", Types: []string{Poison}, BaseHP: 60, Attack: 65, Defense: 60, SpecialAttack: 130, SpecialDefense: 75, Speed: 110,
		Moves: []string{"Sludge Bomb", "Psychic", "Will-O-Wisp", "Toxic Spikes"}, Ability: "Levitate"},
	{Name: "Golduck", Types: []string{Water}, BaseHP: 80, Attack: 82, Defense: 78, SpecialAttack: 95, SpecialDefense: 80, Speed: 85,
		Moves: []string{"Surf", "Psychic", "Ice Beam", "Whirlpool"}, Ability: "Cloud Nine"},
	{Name: "Rayquaza", Types: []string{Dragon, Flying}, BaseHP: 105, Attack: 150, Defense: 90, SpecialAttack: 150, SpecialDefense: 90, Speed: 95,
		Moves: []string{"Dragon Claw", "Earthquake", "Wing Attack", "Flamethrower"}, Ability: "Air Lock"},
	{Name: "Cloyster", Types: []string{Water, Ice}, BaseHP: 50, Attack: 95, Defense: 180, SpecialAttack: 85, SpecialDefense: 45, Speed: 70,
		Moves: []string{"Ice Beam", "Spikes", "Rapid Spin", "Hail"}, Ability: "Sturdy"},
	{Name: "Galvantula", Types: []string{Bug, Electric}, BaseHP: 70, Attack: 77, Defense: 60, SpecialAttack: 97, SpecialDefense: 60, Speed: 108,
		Moves: []string{"Thunderbolt", "Sticky Web", "Giga Drain", "Thunder Wave"}, Ability: "Static"},
	{Name: "Snorlax", Types: []string{Normal}, BaseHP: 160, Attack: 110, Defense: 65, SpecialAttack: 65, SpecialDefense: 110, Speed: 30,
		Moves: []string{"Body Slam", "Earthquake", "Tackle", "Reflect"}},
	{Name: "Arbok", Types: []string{Poison}, BaseHP: 60, Attack: 95, Defense: 69, SpecialAttack: 65, SpecialDefense: 79, Speed: 80,
		Moves: []string{"Wrap", "Sludge Bomb", "Toxic", "Earthquake"}},
}

// Default returns the built-in catalogue.
func Default() *Dex {
	d, err := New(defaultSpecies, defaultMoves, defaultAbilities)
	if err != nil {
		panic("dex: invalid built-in catalogue: " + err.Error())
	}
	return d
}
