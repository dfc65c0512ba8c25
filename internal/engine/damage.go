package engine

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/yananas974/pokebattle/internal/game"
)

// CriticalMultiplier is the fixed damage multiplier applied on a critical
// hit.
const CriticalMultiplier = 2.0

// DamageResult is the outcome of one damage calculation. The calculator
// never mutates creature state; applying damage is the resolver's job.
type DamageResult struct {
	Damage        int
	IsCritical    bool
	Effectiveness float64
	DidStab       bool
	LogLines      []string
}

// CalculateDamage runs the full damage pipeline for one move:
// weather-modified stats, base damage, critical roll, STAB and type
// effectiveness. attackBonus is a fraction (0.15 for +15%) applied to the
// effective attack; it carries the hack-challenge reward.
//
// Guarantees: damage is never negative, is exactly 0 when effectiveness is
// 0, and is at least 1 otherwise.
func CalculateDamage(attacker, defender *game.BattleCreature, move game.MoveInstance, weather game.WeatherEffect, attackBonus float64, rng *rand.Rand) DamageResult {
	res := DamageResult{
		Effectiveness: Effectiveness(move.Type, defender.Type),
	}
	res.LogLines = append(res.LogLines, fmt.Sprintf("%s used %s!", attacker.Name, move.Name))

	if move.Power == 0 {
		// Status move: no damage in this engine.
		res.LogLines = append(res.LogLines, fmt.Sprintf("%s braces itself.", attacker.Name))
		return res
	}

	if res.Effectiveness == 0 {
		// Immunity short-circuits everything else; no crit/STAB display.
		res.LogLines = append(res.LogLines, fmt.Sprintf("It has no effect on %s!", defender.Name))
		return res
	}

	atk := ApplyWeather(attacker, weather)
	def := ApplyWeather(defender, weather)
	effAttack := atk.Attack * (1.0 + attackBonus)

	base := effAttack - def.Defense
	if base < 1 {
		base = 1
	}

	crit := 1.0
	if move.CritRatio > 1 && rng.Float64() < 1.0/move.CritRatio {
		res.IsCritical = true
		crit = CriticalMultiplier
	}

	stab := STAB(attacker, move)
	res.DidStab = stab > 1.0

	dmg := int(math.Round(base * res.Effectiveness * stab * crit))
	if dmg < 1 {
		dmg = 1
	}
	res.Damage = dmg

	if res.IsCritical {
		res.LogLines = append(res.LogLines, "A critical hit!")
	}
	switch {
	case res.Effectiveness >= 2:
		res.LogLines = append(res.LogLines, "It's super effective!")
	case res.Effectiveness < 1:
		res.LogLines = append(res.LogLines, "It's not very effective...")
	}
	res.LogLines = append(res.LogLines, fmt.Sprintf("%s takes %d damage.", defender.Name, dmg))
	return res
}
