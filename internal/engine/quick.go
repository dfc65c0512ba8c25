package engine

import "github.com/yananas974/pokebattle/internal/game"

// QuickBattleResult is the outcome of the non-interactive team variant.
type QuickBattleResult struct {
	Winner      game.Side `json:"winner"`
	PlayerScore float64   `json:"player_score"`
	EnemyScore  float64   `json:"enemy_score"`
}

// ResolveQuickBattle compares two full rosters without playing turns: each
// side scores its total HP plus ten times its average level, the higher
// score wins and equal scores draw.
func ResolveQuickBattle(player, enemy []game.BattleCreature) QuickBattleResult {
	res := QuickBattleResult{
		PlayerScore: teamScore(player),
		EnemyScore:  teamScore(enemy),
	}
	switch {
	case res.PlayerScore > res.EnemyScore:
		res.Winner = game.SidePlayer
	case res.EnemyScore > res.PlayerScore:
		res.Winner = game.SideEnemy
	default:
		res.Winner = game.SideDraw
	}
	return res
}

func teamScore(team []game.BattleCreature) float64 {
	if len(team) == 0 {
		return 0
	}
	totalHP := 0
	totalLevel := 0
	for _, c := range team {
		totalHP += c.CurrentHP
		totalLevel += c.Level
	}
	avgLevel := float64(totalLevel) / float64(len(team))
	return float64(totalHP) + avgLevel*10
}
