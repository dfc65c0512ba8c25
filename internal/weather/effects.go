package weather

import (
	"strings"
	"time"

	"github.com/yananas974/pokebattle/internal/game"
)

// descriptorConditions maps the closed set of provider description tokens to
// the fixed condition enumeration. Matching is deterministic: exact token
// lookup on the lower-cased description, then an explicit default branch.
var descriptorConditions = map[string]game.WeatherCondition{
	"clear sky":        game.WeatherClearDay,
	"few clouds":       game.WeatherClouds,
	"scattered clouds": game.WeatherClouds,
	"broken clouds":    game.WeatherClouds,
	"overcast clouds":  game.WeatherClouds,
	"mist":             game.WeatherClouds,
	"fog":              game.WeatherClouds,
	"haze":             game.WeatherClouds,
	"light rain":       game.WeatherRain,
	"moderate rain":    game.WeatherRain,
	"heavy rain":       game.WeatherRain,
	"shower rain":      game.WeatherRain,
	"drizzle":          game.WeatherRain,
	"rain":             game.WeatherRain,
	"light snow":       game.WeatherSnow,
	"heavy snow":       game.WeatherSnow,
	"snow":             game.WeatherSnow,
	"sleet":            game.WeatherSnow,
	"thunderstorm":     game.WeatherThunderstorm,
}

// ConditionFor resolves a raw provider description to a condition. Unknown
// descriptions (and the clear-sky token) fall back to the clear day/night
// variant for the given local hour.
func ConditionFor(description string, hour int) game.WeatherCondition {
	cond, ok := descriptorConditions[strings.ToLower(strings.TrimSpace(description))]
	if !ok || cond == game.WeatherClearDay {
		return clearVariant(hour)
	}
	return cond
}

func clearVariant(hour int) game.WeatherCondition {
	if hour >= 6 && hour < 20 {
		return game.WeatherClearDay
	}
	return game.WeatherClearNight
}

// weatherMultiplier is the scalar applied to offensive/speed stats of types
// with an affinity for the active condition.
const weatherMultiplier = 1.25

// EffectFor builds the immutable per-battle weather snapshot for a
// condition, including the separately computed time-of-day bonus.
func EffectFor(cond game.WeatherCondition, now time.Time) game.WeatherEffect {
	eff := game.WeatherEffect{
		Condition:  cond,
		Multiplier: weatherMultiplier,
		TimeBonus:  TimeBonus(now),
	}
	switch cond {
	case game.WeatherClearDay:
		eff.BonusTypes = []game.ElementType{game.TypeFire, game.TypeGrass}
		eff.MalusTypes = []game.ElementType{game.TypeGhost}
		eff.Description = "Bright sunshine energizes fire and grass types."
	case game.WeatherClearNight:
		eff.BonusTypes = []game.ElementType{game.TypeDark, game.TypeGhost}
		eff.MalusTypes = []game.ElementType{game.TypeGrass}
		eff.Description = "A clear night emboldens dark and ghost types."
	case game.WeatherRain:
		eff.BonusTypes = []game.ElementType{game.TypeWater}
		eff.MalusTypes = []game.ElementType{game.TypeFire}
		eff.Description = "Steady rain strengthens water types and dampens flames."
	case game.WeatherSnow:
		eff.BonusTypes = []game.ElementType{game.TypeIce}
		eff.MalusTypes = []game.ElementType{game.TypeGrass}
		eff.Description = "Falling snow hardens ice types and freezes vegetation."
	case game.WeatherThunderstorm:
		eff.BonusTypes = []game.ElementType{game.TypeElectric}
		eff.MalusTypes = []game.ElementType{game.TypeFlying}
		eff.Description = "Crackling storms charge electric types and ground the airborne."
	case game.WeatherClouds:
		// Overcast skies favor no one.
		eff.Multiplier = 1.0
		eff.Description = "An overcast sky leaves the battle unaffected."
	}
	return eff
}

// TimeBonus is the flat fraction added on top of the weather multiplier:
// daytime battles get a slightly larger boost than night ones.
func TimeBonus(now time.Time) float64 {
	hour := now.Hour()
	if hour >= 6 && hour < 20 {
		return 0.10
	}
	return 0.05
}
