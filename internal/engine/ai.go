package engine

import "github.com/yananas974/pokebattle/internal/game"

// ChooseEnemyMove is the scripted opponent policy: pick the first move with
// nonzero power, falling back to the first move. It is a pure function of
// the frozen move list, so the same roster ordering always produces the
// same choice.
func ChooseEnemyMove(c *game.BattleCreature) int {
	for i, m := range c.Moves {
		if m.Power > 0 {
			return i
		}
	}
	return 0
}
