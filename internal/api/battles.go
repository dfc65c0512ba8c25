package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yananas974/pokebattle/internal/constants"
	"github.com/yananas974/pokebattle/internal/engine"
	"github.com/yananas974/pokebattle/internal/game"
	"github.com/yananas974/pokebattle/internal/session"
)

type CreateBattleRequest struct {
	TeamID      uint    `json:"team_id"`
	EnemyTeamID uint    `json:"enemy_team_id"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
}

// CreateBattle snapshots both rosters, resolves the weather for the given
// location and opens a new battle session.
func (h *BattleHandler) CreateBattle(c *gin.Context) {
	var req CreateBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	owner := sessionEmail(c)

	player, ok := h.loadActiveCreature(c, req.TeamID, owner)
	if !ok {
		return
	}
	enemy, ok := h.loadActiveCreature(c, req.EnemyTeamID, "")
	if !ok {
		return
	}

	weather := h.weather.Resolve(c.Request.Context(), req.Lat, req.Lon, time.Now())
	view := h.store.InitBattle(owner, player, enemy, weather)
	c.JSON(http.StatusCreated, view)
}

// loadActiveCreature fetches a team and freezes its first slot into a
// battle snapshot. When requireOwner is non-empty the team must belong to
// that user.
func (h *BattleHandler) loadActiveCreature(c *gin.Context, teamID uint, requireOwner string) (game.BattleCreature, bool) {
	team, err := h.repo.GetTeamByID(teamID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTeamNotFound})
		return game.BattleCreature{}, false
	}
	if requireOwner != "" && team.OwnerEmail != requireOwner {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrTeamNotYours})
		return game.BattleCreature{}, false
	}
	if len(team.Members) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTeamEmpty})
		return game.BattleCreature{}, false
	}
	m := team.Members[0]
	return game.NewBattleCreature(m.Creature, m.Level), true
}

// GetBattle returns the caller's view of a live battle.
func (h *BattleHandler) GetBattle(c *gin.Context) {
	view, err := h.store.GetState(c.Param("battleID"), sessionEmail(c))
	if err != nil {
		battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type ActionRequest struct {
	Turn      int `json:"turn"`
	MoveIndex int `json:"move_index"`
}

// SubmitAction submits the player's move for the given turn.
func (h *BattleHandler) SubmitAction(c *gin.Context) {
	var req ActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	view, err := h.store.SubmitAction(c.Param("battleID"), sessionEmail(c), req.Turn, req.MoveIndex)
	if err != nil {
		battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

type AnswerRequest struct {
	Answer string `json:"answer"`
}

// SubmitAnswer submits a hack-challenge answer.
func (h *BattleHandler) SubmitAnswer(c *gin.Context) {
	var req AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	res, err := h.store.SubmitChallengeAnswer(c.Param("battleID"), sessionEmail(c), req.Answer)
	if err != nil {
		battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// ForfeitBattle concedes the battle immediately.
func (h *BattleHandler) ForfeitBattle(c *gin.Context) {
	ok, err := h.store.Forfeit(c.Param("battleID"), sessionEmail(c))
	if err != nil {
		battleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"forfeited": ok})
}

type QuickBattleRequest struct {
	TeamID      uint `json:"team_id"`
	EnemyTeamID uint `json:"enemy_team_id"`
}

// QuickBattle resolves the non-interactive team variant: total HP plus ten
// times the average level, higher score wins.
func (h *BattleHandler) QuickBattle(c *gin.Context) {
	var req QuickBattleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	owner := sessionEmail(c)
	player, ok := h.loadTeamSnapshot(c, req.TeamID, owner)
	if !ok {
		return
	}
	enemy, ok := h.loadTeamSnapshot(c, req.EnemyTeamID, "")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, engine.ResolveQuickBattle(player, enemy))
}

func (h *BattleHandler) loadTeamSnapshot(c *gin.Context, teamID uint, requireOwner string) ([]game.BattleCreature, bool) {
	team, err := h.repo.GetTeamByID(teamID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrTeamNotFound})
		return nil, false
	}
	if requireOwner != "" && team.OwnerEmail != requireOwner {
		c.JSON(http.StatusForbidden, gin.H{constants.JSONKeyError: constants.ErrTeamNotYours})
		return nil, false
	}
	if len(team.Members) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrTeamEmpty})
		return nil, false
	}
	out := make([]game.BattleCreature, 0, len(team.Members))
	for _, m := range team.Members {
		out = append(out, game.NewBattleCreature(m.Creature, m.Level))
	}
	return out, true
}

// battleError maps session-layer sentinel errors onto HTTP responses.
// State conflicts get 409 so clients can tell "wrong phase" apart from
// plain validation failures.
func battleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrBattleNotFound):
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
	case errors.Is(err, session.ErrBattleFinished):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrBattleFinished})
	case errors.Is(err, session.ErrChallengePending):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrChallengePending})
	case errors.Is(err, session.ErrNoChallenge):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrNoChallenge})
	case errors.Is(err, session.ErrTurnConflict):
		c.JSON(http.StatusConflict, gin.H{constants.JSONKeyError: constants.ErrTurnConflict})
	case errors.Is(err, session.ErrInvalidMove):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidMove})
	case errors.Is(err, session.ErrEmptyAnswer):
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrEmptyAnswer})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchData})
	}
}
