package storage

import "github.com/yananas974/pokebattle/internal/game"

// Repository is the persistence boundary for rosters and player profiles.
// Live battles never touch it; they live in the session store.
type Repository interface {
	GetCreatures() ([]game.Creature, error)
	GetCreatureByID(id uint) (*game.Creature, error)

	CreateTeam(t *game.Team) error
	GetTeamByID(id uint) (*game.Team, error)
	GetTeamsByOwner(email string) ([]game.Team, error)

	UpsertUser(email, name string) error
	RecordBattleResult(email string, won, forfeited bool) error
	GetTopPlayers(limit int) ([]game.User, error)
}
