package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yananas974/pokebattle/internal/game"
	"github.com/yananas974/pokebattle/internal/logging"
)

// OpenAndMigrate opens the SQLite database, keeps the schema updated via
// AutoMigrate and seeds the creature templates from the configuration on
// first run.
func OpenAndMigrate(dataSourceName string, creatures []game.Creature) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&game.Move{}, &game.Creature{}, &game.Team{}, &game.TeamMember{}, &game.User{}); err != nil {
		return nil, err
	}
	seedCreatures(db, creatures)
	return db, nil
}

// seedCreatures inserts the configured creature templates (and their moves)
// when the table is empty. The config file stays the source of truth for
// stats; reseeding requires wiping the database.
func seedCreatures(db *gorm.DB, creatures []game.Creature) {
	var count int64
	db.Model(&game.Creature{}).Count(&count)
	if count > 0 {
		return
	}
	if err := db.Create(&creatures).Error; err != nil {
		logging.Error("failed to seed creature templates", err, nil)
		return
	}
	logging.Info("seeded creature templates", logging.Fields{"count": len(creatures)})
}
