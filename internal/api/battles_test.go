package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yananas974/pokebattle/internal/challenge"
	"github.com/yananas974/pokebattle/internal/constants"
	"github.com/yananas974/pokebattle/internal/game"
	"github.com/yananas974/pokebattle/internal/session"
	"github.com/yananas974/pokebattle/internal/weather"
)

const testEmail = "player@example.com"

type mockRepo struct {
	creatures map[uint]game.Creature
	teams     map[uint]*game.Team
	created   *game.Team
}

func newMockRepo() *mockRepo {
	tackle := game.Move{Name: "Tackle", Type: game.TypeNormal, Power: 40, Accuracy: 100, PP: 35, Category: game.CategoryPhysical, CritRatio: 16}
	creature := game.Creature{Name: "Flamander", Type: game.TypeFire, BaseHP: 80, BaseAttack: 84, BaseDefense: 78, BaseSpeed: 100, Moves: []game.Move{tackle}}
	creature.ID = 1
	return &mockRepo{
		creatures: map[uint]game.Creature{1: creature},
		teams: map[uint]*game.Team{
			10: {Name: "Mine", OwnerEmail: testEmail, Members: []game.TeamMember{{CreatureID: 1, Creature: creature, Level: 50}}},
			20: {Name: "Theirs", OwnerEmail: "rival@example.com", Members: []game.TeamMember{{CreatureID: 1, Creature: creature, Level: 50}}},
			30: {Name: "Empty", OwnerEmail: testEmail},
		},
	}
}

func (m *mockRepo) GetCreatures() ([]game.Creature, error) {
	out := make([]game.Creature, 0, len(m.creatures))
	for _, c := range m.creatures {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockRepo) GetCreatureByID(id uint) (*game.Creature, error) {
	if c, ok := m.creatures[id]; ok {
		return &c, nil
	}
	return nil, errors.New("not found")
}

func (m *mockRepo) CreateTeam(t *game.Team) error {
	m.created = t
	return nil
}

func (m *mockRepo) GetTeamByID(id uint) (*game.Team, error) {
	if t, ok := m.teams[id]; ok {
		return t, nil
	}
	return nil, errors.New("not found")
}

func (m *mockRepo) GetTeamsByOwner(email string) ([]game.Team, error) {
	out := []game.Team{}
	for _, t := range m.teams {
		if t.OwnerEmail == email {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (m *mockRepo) UpsertUser(email, name string) error                { return nil }
func (m *mockRepo) RecordBattleResult(email string, won, f bool) error { return nil }
func (m *mockRepo) GetTopPlayers(limit int) ([]game.User, error)       { return nil, nil }

// testRouter wires the handler set behind a stub auth middleware.
func testRouter(repo *mockRepo, trigger float64) (*gin.Engine, *session.Store) {
	gin.SetMode(gin.TestMode)
	tuning := challenge.DefaultTuning
	tuning.TriggerProbability = trigger
	store := session.NewStore([]string{"firewall"}, tuning, 5*time.Minute, nil)
	h := NewBattleHandler(repo, store, weather.Static{Condition: game.WeatherClouds})

	r := gin.New()
	auth := func(c *gin.Context) {
		c.Set("userEmail", testEmail)
		c.Next()
	}
	grp := r.Group(constants.RouteAPIPrefix, auth)
	grp.POST(constants.RouteBattles, h.CreateBattle)
	grp.GET(constants.RouteBattleByID, h.GetBattle)
	grp.POST(constants.RouteBattleAction, h.SubmitAction)
	grp.POST(constants.RouteBattleAnswer, h.SubmitAnswer)
	grp.POST(constants.RouteBattleForfeit, h.ForfeitBattle)
	grp.POST(constants.RouteBattleQuick, h.QuickBattle)
	grp.POST(constants.RouteTeams, h.CreateTeam)
	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBattle(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"team_id": 10, "enemy_team_id": 20})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view game.BattleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.NotEmpty(t, view.BattleID)
	assert.Equal(t, 1, view.Turn)
	assert.Equal(t, "Flamander", view.Player.Name)
}

func TestCreateBattle_ForeignTeamForbidden(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"team_id": 20, "enemy_team_id": 10})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateBattle_EmptyTeamRejected(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"team_id": 30, "enemy_team_id": 20})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetBattle_NotFound(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodGet, "/api/battles/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubmitAction_FullTurnOverHTTP(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"team_id": 10, "enemy_team_id": 20})
	require.Equal(t, http.StatusCreated, w.Code)
	var view game.BattleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	w = doJSON(t, r, http.MethodPost, "/api/battles/"+view.BattleID+"/action", gin.H{"turn": 1, "move_index": 0})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.Equal(t, 2, view.Turn)

	// Replaying the same turn conflicts.
	w = doJSON(t, r, http.MethodPost, "/api/battles/"+view.BattleID+"/action", gin.H{"turn": 1, "move_index": 0})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSubmitAnswer_WithoutChallenge(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"team_id": 10, "enemy_team_id": 20})
	require.Equal(t, http.StatusCreated, w.Code)
	var view game.BattleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	w = doJSON(t, r, http.MethodPost, "/api/battles/"+view.BattleID+"/answer", gin.H{"answer": "firewall"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestForfeitBattle(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodPost, "/api/battles", gin.H{"team_id": 10, "enemy_team_id": 20})
	require.Equal(t, http.StatusCreated, w.Code)
	var view game.BattleView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))

	w = doJSON(t, r, http.MethodPost, "/api/battles/"+view.BattleID+"/forfeit", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/battles/"+view.BattleID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
	assert.True(t, view.Finished)
	assert.Equal(t, game.SideEnemy, view.Winner)
}

func TestQuickBattle(t *testing.T) {
	r, _ := testRouter(newMockRepo(), 0)

	w := doJSON(t, r, http.MethodPost, "/api/quick-battles", gin.H{"team_id": 10, "enemy_team_id": 20})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var res struct {
		Winner string `json:"winner"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(t, "draw", res.Winner)
}

func TestCreateTeam(t *testing.T) {
	repo := newMockRepo()
	r, _ := testRouter(repo, 0)

	w := doJSON(t, r, http.MethodPost, "/api/teams", gin.H{
		"name":    "Squad",
		"members": []gin.H{{"creature_id": 1, "level": 50}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, repo.created)
	assert.Equal(t, testEmail, repo.created.OwnerEmail)

	w = doJSON(t, r, http.MethodPost, "/api/teams", gin.H{
		"name":    "Bad",
		"members": []gin.H{{"creature_id": 99, "level": 50}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/teams", gin.H{
		"name":    "OverLeveled",
		"members": []gin.H{{"creature_id": 1, "level": 999}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
