package battle

import (
	"fmt"

	"github.com/ericogr/pokebattle/internal/keys"
)

// ApplyWeather sets the field weather for WeatherDuration turns, whatever
// was active before. Outside SELECTING_FIRST_POKEMON the first active
// Pokémon in player order whose ability suppresses weather is announced.
// Only that first suppressor is reported.
func (b *Battle) ApplyWeather(w Weather) {
	b.log.Append(
		DisplayMessage{Message: fmt.Sprintf("The weather changed to %s!", w.Description())},
		WeatherChange{NewWeather: w},
	)
	b.weather = w
	b.weatherTurns = WeatherDuration

	if b.state == StateSelectingFirstPokemon {
		return
	}
	if p, mon := b.weatherSuppressor(); mon != nil {
		b.log.Append(DisplayMessage{
			ReferencedPlayerName: p.Name,
			Message:              fmt.Sprintf("%s is suppressing the effects of the weather!", keys.DisplayName(mon.Name)),
		})
	}
}

// AdvanceWeather counts the active weather down by one round and clears it
// when it runs out. It reports whether the weather ended.
func (b *Battle) AdvanceWeather() bool {
	if b.weather == WeatherNone || b.weather == "" {
		return false
	}
	b.weatherTurns--
	if b.weatherTurns > 0 {
		return false
	}
	ended := b.weather
	b.weather = WeatherNone
	b.weatherTurns = 0
	b.log.Append(
		DisplayMessage{Message: fmt.Sprintf("The %s subsided.", ended.Description())},
		WeatherChange{NewWeather: WeatherNone},
	)
	return true
}

// WeatherActive reports whether weather is set and no Pokémon on the field
// suppresses it.
func (b *Battle) WeatherActive() bool {
	if b.weather == WeatherNone || b.weather == "" {
		return false
	}
	_, mon := b.weatherSuppressor()
	return mon == nil
}

func (b *Battle) weatherSuppressor() (*Player, *Pokemon) {
	for _, p := range b.players {
		if mon := p.ActivePokemon(); mon != nil && mon.IsAlive() && mon.SuppressesWeather() {
			return p, mon
		}
	}
	return nil, nil
}

// PushHazardsChangeEvent records the full hazard state of p's side.
func (b *Battle) PushHazardsChangeEvent(p *Player) {
	b.log.Append(p.hazards())
}
