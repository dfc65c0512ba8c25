package api

import (
	"github.com/yananas974/pokebattle/internal/session"
	"github.com/yananas974/pokebattle/internal/storage"
	"github.com/yananas974/pokebattle/internal/weather"
)

// BattleHandler groups all battle- and roster-related HTTP handlers.
type BattleHandler struct {
	repo    storage.Repository
	store   *session.Store
	weather weather.Provider
}

// NewBattleHandler wires the repository, the live session store and the
// weather provider into one handler set.
func NewBattleHandler(repo storage.Repository, store *session.Store, provider weather.Provider) *BattleHandler {
	return &BattleHandler{repo: repo, store: store, weather: provider}
}
