package engine

import "github.com/yananas974/pokebattle/internal/game"

// typeChart is the fixed 18x18 effectiveness table. Only non-neutral
// matchups are listed; every other pairing is 1.0.
var typeChart = map[game.ElementType]map[game.ElementType]float64{
	game.TypeNormal: {
		game.TypeRock: 0.5, game.TypeSteel: 0.5, game.TypeGhost: 0,
	},
	game.TypeFire: {
		game.TypeGrass: 2, game.TypeIce: 2, game.TypeBug: 2, game.TypeSteel: 2,
		game.TypeFire: 0.5, game.TypeWater: 0.5, game.TypeRock: 0.5, game.TypeDragon: 0.5,
	},
	game.TypeWater: {
		game.TypeFire: 2, game.TypeGround: 2, game.TypeRock: 2,
		game.TypeWater: 0.5, game.TypeGrass: 0.5, game.TypeDragon: 0.5,
	},
	game.TypeElectric: {
		game.TypeWater: 2, game.TypeFlying: 2,
		game.TypeElectric: 0.5, game.TypeGrass: 0.5, game.TypeDragon: 0.5,
		game.TypeGround: 0,
	},
	game.TypeGrass: {
		game.TypeWater: 2, game.TypeGround: 2, game.TypeRock: 2,
		game.TypeFire: 0.5, game.TypeGrass: 0.5, game.TypePoison: 0.5,
		game.TypeFlying: 0.5, game.TypeBug: 0.5, game.TypeDragon: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeIce: {
		game.TypeGrass: 2, game.TypeGround: 2, game.TypeFlying: 2, game.TypeDragon: 2,
		game.TypeFire: 0.5, game.TypeWater: 0.5, game.TypeIce: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeFighting: {
		game.TypeNormal: 2, game.TypeIce: 2, game.TypeRock: 2, game.TypeDark: 2, game.TypeSteel: 2,
		game.TypePoison: 0.5, game.TypeFlying: 0.5, game.TypePsychic: 0.5,
		game.TypeBug: 0.5, game.TypeFairy: 0.5,
		game.TypeGhost: 0,
	},
	game.TypePoison: {
		game.TypeGrass: 2, game.TypeFairy: 2,
		game.TypePoison: 0.5, game.TypeGround: 0.5, game.TypeRock: 0.5, game.TypeGhost: 0.5,
		game.TypeSteel: 0,
	},
	game.TypeGround: {
		game.TypeFire: 2, game.TypeElectric: 2, game.TypePoison: 2, game.TypeRock: 2, game.TypeSteel: 2,
		game.TypeGrass: 0.5, game.TypeBug: 0.5,
		game.TypeFlying: 0,
	},
	game.TypeFlying: {
		game.TypeGrass: 2, game.TypeFighting: 2, game.TypeBug: 2,
		game.TypeElectric: 0.5, game.TypeRock: 0.5, game.TypeSteel: 0.5,
	},
	game.TypePsychic: {
		game.TypeFighting: 2, game.TypePoison: 2,
		game.TypePsychic: 0.5, game.TypeSteel: 0.5,
		game.TypeDark: 0,
	},
	game.TypeBug: {
		game.TypeGrass: 2, game.TypePsychic: 2, game.TypeDark: 2,
		game.TypeFire: 0.5, game.TypeFighting: 0.5, game.TypePoison: 0.5,
		game.TypeFlying: 0.5, game.TypeGhost: 0.5, game.TypeSteel: 0.5, game.TypeFairy: 0.5,
	},
	game.TypeRock: {
		game.TypeFire: 2, game.TypeIce: 2, game.TypeFlying: 2, game.TypeBug: 2,
		game.TypeFighting: 0.5, game.TypeGround: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeGhost: {
		game.TypePsychic: 2, game.TypeGhost: 2,
		game.TypeDark: 0.5,
		game.TypeNormal: 0,
	},
	game.TypeDragon: {
		game.TypeDragon: 2,
		game.TypeSteel:  0.5,
		game.TypeFairy:  0,
	},
	game.TypeDark: {
		game.TypePsychic: 2, game.TypeGhost: 2,
		game.TypeFighting: 0.5, game.TypeDark: 0.5, game.TypeFairy: 0.5,
	},
	game.TypeSteel: {
		game.TypeIce: 2, game.TypeRock: 2, game.TypeFairy: 2,
		game.TypeFire: 0.5, game.TypeWater: 0.5, game.TypeElectric: 0.5, game.TypeSteel: 0.5,
	},
	game.TypeFairy: {
		game.TypeFighting: 2, game.TypeDragon: 2, game.TypeDark: 2,
		game.TypeFire: 0.5, game.TypePoison: 0.5, game.TypeSteel: 0.5,
	},
}

// Effectiveness returns the fixed type-chart multiplier for an attack of
// type atk against a defender of type def: one of 2.0, 1.0, 0.5 or 0.0.
func Effectiveness(atk, def game.ElementType) float64 {
	if row, ok := typeChart[atk]; ok {
		if mult, ok := row[def]; ok {
			return mult
		}
	}
	return 1.0
}

// STAB returns the same-type-attack-bonus multiplier: 1.5 when the move's
// type matches the attacker's own type, 1.0 otherwise.
func STAB(attacker *game.BattleCreature, move game.MoveInstance) float64 {
	if move.Type == attacker.Type {
		return 1.5
	}
	return 1.0
}
