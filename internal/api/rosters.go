package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yananas974/pokebattle/internal/constants"
	"github.com/yananas974/pokebattle/internal/game"
	"github.com/yananas974/pokebattle/internal/logging"
)

const maxTeamSize = 6

// ListCreatures returns the full creature roster with moves preloaded.
func (h *BattleHandler) ListCreatures(c *gin.Context) {
	creatures, err := h.repo.GetCreatures()
	if err != nil {
		logging.Error("failed to list creatures", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchData})
		return
	}
	c.JSON(http.StatusOK, creatures)
}

type CreateTeamRequest struct {
	Name    string `json:"name"`
	Members []struct {
		CreatureID uint `json:"creature_id"`
		Level      int  `json:"level"`
	} `json:"members"`
}

// CreateTeam validates and persists a roster for the authenticated user.
func (h *BattleHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}
	if req.Name == "" || len(req.Members) == 0 || len(req.Members) > maxTeamSize {
		c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: constants.ErrInvalidRequest})
		return
	}

	team := &game.Team{Name: req.Name, OwnerEmail: sessionEmail(c)}
	for i, m := range req.Members {
		if m.Level < 1 || m.Level > 100 {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Level must be between 1 and 100"})
			return
		}
		if _, err := h.repo.GetCreatureByID(m.CreatureID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{constants.JSONKeyError: "Unknown creature id " + strconv.Itoa(int(m.CreatureID))})
			return
		}
		team.Members = append(team.Members, game.TeamMember{
			CreatureID: m.CreatureID,
			Level:      m.Level,
			Slot:       i,
		})
	}

	if err := h.repo.CreateTeam(team); err != nil {
		logging.Error("failed to create team", err, logging.Fields{"owner": team.OwnerEmail})
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedSaveTeam})
		return
	}
	c.JSON(http.StatusCreated, team)
}

// ListTeams returns the authenticated user's teams.
func (h *BattleHandler) ListTeams(c *gin.Context) {
	teams, err := h.repo.GetTeamsByOwner(sessionEmail(c))
	if err != nil {
		logging.Error("failed to list teams", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchData})
		return
	}
	c.JSON(http.StatusOK, teams)
}

// ListLeaderboard returns the top players ordered by wins.
func (h *BattleHandler) ListLeaderboard(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	players, err := h.repo.GetTopPlayers(limit)
	if err != nil {
		logging.Error("failed to fetch leaderboard", err, nil)
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchData})
		return
	}
	c.JSON(http.StatusOK, players)
}
