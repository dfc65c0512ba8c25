package engine

import (
	"errors"
	"fmt"
	"hash/fnv"
	"math/rand"

	"github.com/yananas974/pokebattle/internal/game"
)

var ErrInvalidMoveIndex = errors.New("invalid move index")

type plannedAction struct {
	side     game.Side
	actor    *game.BattleCreature
	target   *game.BattleCreature
	move     game.MoveInstance
	atkBonus float64
}

// ResolveTurn applies both sides' moves for one turn: the combatant with the
// higher weather-modified speed acts first, ties break deterministically on
// a hash of the battle id and turn number. After each action the target is
// checked for a faint; a fainted second actor does not act. playerBonus
// carries the hack-challenge attack reward for the player's action this
// resolution only.
//
// The move indices are validated before any state is touched; an invalid
// index returns ErrInvalidMoveIndex and leaves the battle unchanged.
func ResolveTurn(b *game.Battle, playerMove, enemyMove int, playerBonus float64, rng *rand.Rand) error {
	if playerMove < 0 || playerMove >= len(b.Player.Moves) {
		return ErrInvalidMoveIndex
	}
	if enemyMove < 0 || enemyMove >= len(b.Enemy.Moves) {
		return ErrInvalidMoveIndex
	}

	b.Phase = game.PhaseResolving

	plans := []plannedAction{
		{side: game.SidePlayer, actor: &b.Player, target: &b.Enemy, move: b.Player.Moves[playerMove], atkBonus: playerBonus},
		{side: game.SideEnemy, actor: &b.Enemy, target: &b.Player, move: b.Enemy.Moves[enemyMove]},
	}
	if !playerActsFirst(b) {
		plans[0], plans[1] = plans[1], plans[0]
	}

	for _, plan := range plans {
		if plan.actor.Fainted() {
			continue
		}
		res := CalculateDamage(plan.actor, plan.target, plan.move, b.Weather, plan.atkBonus, rng)
		plan.target.ApplyDamage(res.Damage)
		b.AppendLog(res.LogLines...)

		if plan.target.Fainted() {
			b.AppendLog(fmt.Sprintf("%s fainted!", plan.target.Name))
			finish(b, plan.side)
			return nil
		}
	}

	b.Turn++
	b.Phase = game.PhaseAwaitingAction
	return nil
}

// Forfeit forces the terminal state with the forfeiting side losing.
func Forfeit(b *game.Battle, side game.Side) {
	winner := game.SideEnemy
	if side == game.SideEnemy {
		winner = game.SidePlayer
	}
	b.AppendLog(fmt.Sprintf("The %s side forfeits the battle.", side))
	finish(b, winner)
}

func finish(b *game.Battle, winner game.Side) {
	b.Winner = winner
	b.Phase = game.PhaseFinished
	name := b.Player.Name
	if winner == game.SideEnemy {
		name = b.Enemy.Name
	}
	b.AppendLog(fmt.Sprintf("%s wins the battle!", name))
}

// playerActsFirst orders the turn by effective speed. A tie falls back to a
// hash of the battle id plus the turn number so replays of the same battle
// order identically.
func playerActsFirst(b *game.Battle) bool {
	ps := ApplyWeather(&b.Player, b.Weather).Speed
	es := ApplyWeather(&b.Enemy, b.Weather).Speed
	if ps != es {
		return ps > es
	}
	return tieBreak(b.ID, b.Turn)
}

func tieBreak(battleID string, turn int) bool {
	h := fnv.New64a()
	h.Write([]byte(fmt.Sprintf("%s:%d", battleID, turn)))
	return h.Sum64()%2 == 0
}

// Seed derives the deterministic RNG seed for a battle from its id.
func Seed(battleID string) int64 {
	h := fnv.New64a()
	h.Write([]byte(battleID))
	return int64(h.Sum64())
}
