package storage

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yananas974/pokebattle/internal/game"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) GetCreatures() ([]game.Creature, error) {
	var creatures []game.Creature
	if err := r.db.Preload("Moves").Order("name").Find(&creatures).Error; err != nil {
		return nil, err
	}
	return creatures, nil
}

func (r *sqliteRepository) GetCreatureByID(id uint) (*game.Creature, error) {
	var c game.Creature
	if err := r.db.Preload("Moves").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *sqliteRepository) CreateTeam(t *game.Team) error {
	return r.db.Create(t).Error
}

func (r *sqliteRepository) GetTeamByID(id uint) (*game.Team, error) {
	var t game.Team
	if err := r.db.Preload("Members.Creature.Moves").First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *sqliteRepository) GetTeamsByOwner(email string) ([]game.Team, error) {
	var teams []game.Team
	if err := r.db.Preload("Members.Creature.Moves").Where("owner_email = ?", email).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *sqliteRepository) UpsertUser(email, name string) error {
	u := game.User{Email: email, Name: name}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"name"}),
	}).Create(&u).Error
}

func (r *sqliteRepository) RecordBattleResult(email string, won, forfeited bool) error {
	var u game.User
	if err := r.db.Where("email = ?", email).First(&u).Error; err != nil {
		return err
	}
	u.BattlesPlayed++
	switch {
	case won:
		u.Wins++
	case forfeited:
		u.Forfeits++
		u.Losses++
	default:
		u.Losses++
	}
	return r.db.Save(&u).Error
}

func (r *sqliteRepository) GetTopPlayers(limit int) ([]game.User, error) {
	var users []game.User
	if err := r.db.Order("wins desc, battles_played asc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
