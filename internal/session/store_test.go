package session

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yananas974/pokebattle/internal/challenge"
	"github.com/yananas974/pokebattle/internal/game"
)

const testOwner = "player@example.com"

var testWords = []string{"firewall", "protocol", "kernel"}

type mockStats struct {
	mu        sync.Mutex
	calls     int
	lastWon   bool
	forfeited bool
}

func (m *mockStats) RecordBattleResult(email string, won, forfeited bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastWon = won
	m.forfeited = forfeited
	return nil
}

func testCreature(name string, hp, atk, def, spd int) game.BattleCreature {
	return game.BattleCreature{
		Name:        name,
		Type:        game.TypeNormal,
		Level:       50,
		BaseHP:      hp,
		BaseAttack:  atk,
		BaseDefense: def,
		BaseSpeed:   spd,
		CurrentHP:   hp,
		MaxHP:       hp,
		Moves: []game.MoveInstance{
			{Name: "Tackle", Type: game.TypeNormal, Power: 40, CritRatio: 16},
			{Name: "Slam", Type: game.TypeNormal, Power: 80, CritRatio: 16},
		},
	}
}

func neutralWeather() game.WeatherEffect {
	return game.WeatherEffect{
		Condition:   game.WeatherClouds,
		Multiplier:  1.0,
		Description: "An overcast sky leaves the battle unaffected.",
	}
}

// newTestStore returns a store with a controllable clock and no random
// interruptions unless asked for.
func newTestStore(trigger float64, stats StatsRecorder) (*Store, *time.Time) {
	tuning := challenge.DefaultTuning
	tuning.TriggerProbability = trigger
	s := NewStore(testWords, tuning, 5*time.Minute, stats)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := &now
	s.now = func() time.Time { return *clock }
	return s, clock
}

func startBattle(t *testing.T, s *Store) string {
	t.Helper()
	view := s.InitBattle(testOwner, testCreature("Hero", 500, 60, 10, 50), testCreature("Rival", 500, 60, 10, 40), neutralWeather())
	require.NotEmpty(t, view.BattleID)
	require.Equal(t, 1, view.Turn)
	require.Equal(t, "player", view.WhoseTurn)
	return view.BattleID
}

func TestGetState_OwnerOnly(t *testing.T) {
	s, _ := newTestStore(0, nil)
	id := startBattle(t, s)

	view, err := s.GetState(id, testOwner)
	require.NoError(t, err)
	assert.Equal(t, id, view.BattleID)
	assert.False(t, view.Finished)

	_, err = s.GetState(id, "someone-else@example.com")
	assert.ErrorIs(t, err, ErrBattleNotFound)

	_, err = s.GetState("missing-id", testOwner)
	assert.ErrorIs(t, err, ErrBattleNotFound)
}

func TestSubmitAction_ResolvesTurn(t *testing.T) {
	s, _ := newTestStore(0, nil)
	id := startBattle(t, s)

	view, err := s.SubmitAction(id, testOwner, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Turn)
	assert.Less(t, view.Enemy.CurrentHP, view.Enemy.MaxHP)
	assert.Less(t, view.Player.CurrentHP, view.Player.MaxHP)
}

func TestSubmitAction_StaleTurnRejected(t *testing.T) {
	s, _ := newTestStore(0, nil)
	id := startBattle(t, s)

	_, err := s.SubmitAction(id, testOwner, 1, 0)
	require.NoError(t, err)

	// Re-sending turn 1 must never double-apply.
	_, err = s.SubmitAction(id, testOwner, 1, 0)
	assert.ErrorIs(t, err, ErrTurnConflict)
}

func TestSubmitAction_ConcurrentDuplicates(t *testing.T) {
	s, _ := newTestStore(0, nil)
	id := startBattle(t, s)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = s.SubmitAction(id, testOwner, 1, 0)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrTurnConflict)
		}
	}
	assert.Equal(t, 1, succeeded, "exactly one duplicate submission may win")

	view, err := s.GetState(id, testOwner)
	require.NoError(t, err)
	assert.Equal(t, 2, view.Turn)
}

func TestSubmitAction_InvalidMoveIndex(t *testing.T) {
	s, _ := newTestStore(0, nil)
	id := startBattle(t, s)

	_, err := s.SubmitAction(id, testOwner, 1, 9)
	assert.ErrorIs(t, err, ErrInvalidMove)
	_, err = s.SubmitAction(id, testOwner, 1, -1)
	assert.ErrorIs(t, err, ErrInvalidMove)
}

func TestSubmitAction_TriggersChallenge(t *testing.T) {
	s, _ := newTestStore(1.0, nil)
	id := startBattle(t, s)

	view, err := s.SubmitAction(id, testOwner, 1, 1)
	require.NoError(t, err)
	require.NotNil(t, view.Challenge)
	assert.Equal(t, "challenge", view.WhoseTurn)
	assert.Equal(t, 1, view.Turn, "turn must not advance while interrupted")
	assert.NotEmpty(t, view.Challenge.Ciphertext)
	assert.Positive(t, view.Challenge.SecondsRemaining)

	// A second action while interrupted is refused.
	_, err = s.SubmitAction(id, testOwner, 1, 0)
	assert.ErrorIs(t, err, ErrChallengePending)
}

func TestSubmitChallengeAnswer_Correct(t *testing.T) {
	s, _ := newTestStore(1.0, nil)
	id := startBattle(t, s)

	_, err := s.SubmitAction(id, testOwner, 1, 1)
	require.NoError(t, err)

	res, err := s.SubmitChallengeAnswer(id, testOwner, plaintextOf(s, id))
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Positive(t, res.Score)
	assert.Equal(t, 2, res.State.Turn, "held action resumes and the turn resolves")
	assert.Nil(t, res.State.Challenge)
	assert.Less(t, res.State.Enemy.CurrentHP, res.State.Enemy.MaxHP)
}

func TestSubmitChallengeAnswer_Wrong(t *testing.T) {
	s, _ := newTestStore(1.0, nil)
	id := startBattle(t, s)

	_, err := s.SubmitAction(id, testOwner, 1, 1)
	require.NoError(t, err)

	res, err := s.SubmitChallengeAnswer(id, testOwner, "definitely-wrong")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "Wrong answer")
	require.NotNil(t, res.State.Challenge, "a wrong answer keeps the challenge active")

	// Retrying with the right word still works.
	res, err = s.SubmitChallengeAnswer(id, testOwner, plaintextOf(s, id))
	require.NoError(t, err)
	assert.True(t, res.Success)
}

func TestSubmitChallengeAnswer_LateCorrectAnswerIsExpired(t *testing.T) {
	s, clock := newTestStore(1.0, nil)
	id := startBattle(t, s)

	_, err := s.SubmitAction(id, testOwner, 1, 1)
	require.NoError(t, err)

	answer := plaintextOf(s, id)
	limit := challengeOf(s, id).TimeLimit
	hpBefore := 500

	*clock = clock.Add(time.Duration(limit+1) * time.Second)
	res, err := s.SubmitChallengeAnswer(id, testOwner, answer)
	require.NoError(t, err)
	assert.False(t, res.Success, "a correct answer after the deadline counts as expired")
	assert.Contains(t, res.Message, "Too late")
	assert.Less(t, res.State.Player.CurrentHP, hpBefore, "expiry penalty must land")
}

func TestSubmitChallengeAnswer_Validation(t *testing.T) {
	s, _ := newTestStore(0, nil)
	id := startBattle(t, s)

	_, err := s.SubmitChallengeAnswer(id, testOwner, "   ")
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	_, err = s.SubmitChallengeAnswer(id, testOwner, "firewall")
	assert.ErrorIs(t, err, ErrNoChallenge)
}

func TestForfeit(t *testing.T) {
	stats := &mockStats{}
	s, _ := newTestStore(0, stats)
	id := startBattle(t, s)

	ok, err := s.Forfeit(id, testOwner)
	require.NoError(t, err)
	assert.True(t, ok)

	view, err := s.GetState(id, testOwner)
	require.NoError(t, err)
	assert.True(t, view.Finished)
	assert.Equal(t, game.SideEnemy, view.Winner)

	// Terminal state: no further operations.
	_, err = s.SubmitAction(id, testOwner, view.Turn, 0)
	assert.ErrorIs(t, err, ErrBattleFinished)
	_, err = s.Forfeit(id, testOwner)
	assert.ErrorIs(t, err, ErrBattleFinished)

	stats.mu.Lock()
	defer stats.mu.Unlock()
	assert.Equal(t, 1, stats.calls)
	assert.False(t, stats.lastWon)
	assert.True(t, stats.forfeited)
}

func TestEvictFinished(t *testing.T) {
	s, clock := newTestStore(0, nil)
	id := startBattle(t, s)
	keep := startBattle(t, s)

	_, err := s.Forfeit(id, testOwner)
	require.NoError(t, err)

	assert.Equal(t, 0, s.EvictFinished(*clock), "fresh finishes stay resident")

	*clock = clock.Add(6 * time.Minute)
	assert.Equal(t, 1, s.EvictFinished(*clock))
	assert.Equal(t, 1, s.Len())

	_, err = s.GetState(id, testOwner)
	assert.ErrorIs(t, err, ErrBattleNotFound)
	_, err = s.GetState(keep, testOwner)
	assert.NoError(t, err)
}

func TestExpireOverdueChallenges(t *testing.T) {
	s, clock := newTestStore(1.0, nil)
	id := startBattle(t, s)

	_, err := s.SubmitAction(id, testOwner, 1, 0)
	require.NoError(t, err)
	limit := challengeOf(s, id).TimeLimit

	// Inside deadline+grace: nothing happens.
	s.ExpireOverdueChallenges(clock.Add(time.Duration(limit) * time.Second))
	view, err := s.GetState(id, testOwner)
	require.NoError(t, err)
	require.NotNil(t, view.Challenge)

	*clock = clock.Add(time.Duration(limit+6) * time.Second)
	s.ExpireOverdueChallenges(*clock)

	view, err = s.GetState(id, testOwner)
	require.NoError(t, err)
	assert.Nil(t, view.Challenge)
	assert.Equal(t, 2, view.Turn, "pending action proceeds without a bonus after expiry")
	assert.Less(t, view.Player.CurrentHP, view.Player.MaxHP)
}

// plaintextOf reaches into the store for the active challenge solution.
func plaintextOf(s *Store, battleID string) string {
	return challengeOf(s, battleID).Plaintext
}

func challengeOf(s *Store, battleID string) *game.HackChallenge {
	s.mu.RLock()
	e := s.entries[battleID]
	s.mu.RUnlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.battle.Challenge
}
