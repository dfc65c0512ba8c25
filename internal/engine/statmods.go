package engine

import "github.com/yananas974/pokebattle/internal/game"

// EffectiveStats are a creature's stats after environmental modifiers.
type EffectiveStats struct {
	Attack  float64
	Defense float64
	Speed   float64
	HP      float64
}

// ApplyWeather computes the weather-modified stats for a creature. Types in
// the weather's bonus set get the offensive and speed stats multiplied by the
// weather multiplier; types in the malus set divide by it; anything else
// passes through. The time-of-day bonus is a flat fraction added on top of
// the weather factor. Defense and HP are never weather-modified.
//
// Pure function of its inputs; never mutates the creature.
func ApplyWeather(c *game.BattleCreature, w game.WeatherEffect) EffectiveStats {
	factor := 1.0
	switch {
	case w.IsBonus(c.Type):
		factor = w.Multiplier
	case w.IsMalus(c.Type):
		if w.Multiplier > 0 {
			factor = 1.0 / w.Multiplier
		}
	}
	factor += w.TimeBonus

	return EffectiveStats{
		Attack:  float64(c.BaseAttack) * factor,
		Defense: float64(c.BaseDefense),
		Speed:   float64(c.BaseSpeed) * factor,
		HP:      float64(c.CurrentHP),
	}
}
