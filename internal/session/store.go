package session

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yananas974/pokebattle/internal/challenge"
	"github.com/yananas974/pokebattle/internal/engine"
	"github.com/yananas974/pokebattle/internal/game"
	"github.com/yananas974/pokebattle/internal/logging"
)

var (
	// ErrBattleNotFound covers unknown, evicted and foreign battles alike so
	// existence is never leaked to non-owners.
	ErrBattleNotFound   = errors.New("battle not found")
	ErrBattleFinished   = errors.New("battle already finished")
	ErrChallengePending = errors.New("a hack challenge is pending; submit an answer first")
	ErrNoChallenge      = errors.New("no active challenge for this battle")
	ErrTurnConflict     = errors.New("turn already resolved")
	ErrInvalidMove      = errors.New("invalid move index")
	ErrEmptyAnswer      = errors.New("answer must not be empty")
)

// StatsRecorder receives the outcome of finished battles. A nil recorder
// disables stat tracking.
type StatsRecorder interface {
	RecordBattleResult(email string, won, forfeited bool) error
}

// Store holds every live battle keyed by battle id. The map itself is
// guarded by a read-write mutex; each battle entry carries its own lock so
// operations against one battle serialize without blocking the others.
type Store struct {
	mu      sync.RWMutex
	entries map[string]*entry

	wordPool  []string
	tuning    challenge.Tuning
	retention time.Duration
	stats     StatsRecorder
	now       func() time.Time
}

type entry struct {
	mu     sync.Mutex
	battle *game.Battle
	rng    *rand.Rand
}

// NewStore creates an empty session store. retention bounds how long
// finished battles stay resident before eviction.
func NewStore(wordPool []string, tuning challenge.Tuning, retention time.Duration, stats StatsRecorder) *Store {
	return &Store{
		entries:   make(map[string]*entry),
		wordPool:  wordPool,
		tuning:    tuning,
		retention: retention,
		stats:     stats,
		now:       time.Now,
	}
}

// InitBattle freezes the two roster snapshots and the weather into a new
// battle session and returns its initial view.
func (s *Store) InitBattle(owner string, player, enemy game.BattleCreature, w game.WeatherEffect) *game.BattleView {
	now := s.now()
	id := uuid.NewString()
	b := &game.Battle{
		ID:               id,
		OwnerEmail:       owner,
		Player:           player,
		Enemy:            enemy,
		Turn:             1,
		Phase:            game.PhaseAwaitingAction,
		Weather:          w,
		PendingMoveIndex: -1,
		CreatedAt:        now,
	}
	b.AppendLog(
		player.Name+" (Lv."+itoa(player.Level)+") faces "+enemy.Name+" (Lv."+itoa(enemy.Level)+")!",
		w.Description,
	)
	e := &entry{battle: b, rng: rand.New(rand.NewSource(engine.Seed(id)))}

	s.mu.Lock()
	s.entries[id] = e
	s.mu.Unlock()

	logging.Info("battle created", logging.Fields{"battle_id": id, "owner": owner, "weather": string(w.Condition)})
	return b.Snapshot(now)
}

// GetState returns a detached view of the battle. Non-owners get not-found.
func (s *Store) GetState(battleID, owner string) (*game.BattleView, error) {
	e, err := s.lookup(battleID, owner)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.battle.Snapshot(s.now()), nil
}

// SubmitAction processes the owner's move for the given turn number. The
// turn number guards against double submissions: a second submission for an
// already-resolved turn is rejected, never double-applied. A random trigger
// may interrupt the action with a hack challenge; the action is then held
// pending until the challenge resolves.
func (s *Store) SubmitAction(battleID, owner string, turn, moveIndex int) (*game.BattleView, error) {
	e, err := s.lookup(battleID, owner)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.battle
	switch {
	case b.Finished():
		return nil, ErrBattleFinished
	case b.Phase == game.PhaseInterrupted:
		return nil, ErrChallengePending
	case turn != b.Turn:
		return nil, ErrTurnConflict
	}
	if moveIndex < 0 || moveIndex >= len(b.Player.Moves) {
		return nil, ErrInvalidMove
	}

	if b.Challenge == nil && e.rng.Float64() < s.tuning.TriggerProbability {
		b.Challenge = challenge.Generate(s.wordPool, e.rng, s.now())
		b.Phase = game.PhaseInterrupted
		b.PendingMoveIndex = moveIndex
		b.AppendLog("A hack attempt scrambles the arena systems! Decrypt the code to keep your edge.")
		return b.Snapshot(s.now()), nil
	}

	if err := s.resolve(e, moveIndex, 0); err != nil {
		return nil, err
	}
	return b.Snapshot(s.now()), nil
}

// AnswerResult is the outcome of a challenge-answer submission.
type AnswerResult struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Score   int              `json:"score,omitempty"`
	State   *game.BattleView `json:"state"`
}

// SubmitChallengeAnswer evaluates an answer against the active challenge.
// Answers arriving after the deadline are treated as expired, not solved,
// even when the string matches.
func (s *Store) SubmitChallengeAnswer(battleID, owner, answer string) (*AnswerResult, error) {
	if trimmed(answer) == "" {
		return nil, ErrEmptyAnswer
	}
	e, err := s.lookup(battleID, owner)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.battle
	if b.Finished() {
		return nil, ErrBattleFinished
	}
	if b.Phase != game.PhaseInterrupted || b.Challenge == nil {
		return nil, ErrNoChallenge
	}

	now := s.now()
	ch := b.Challenge
	if challenge.Expired(ch, now) {
		s.expireChallenge(e)
		return &AnswerResult{
			Success: false,
			Message: "Too late! The challenge expired. " + ch.Explanation,
			State:   b.Snapshot(now),
		}, nil
	}

	if !challenge.Matches(ch, answer) {
		remaining := int(ch.Deadline().Sub(now).Seconds())
		return &AnswerResult{
			Success: false,
			Message: "Wrong answer. " + itoa(remaining) + "s remaining.",
			State:   b.Snapshot(now),
		}, nil
	}

	score := challenge.Score(ch, now)
	b.AppendLog("Challenge solved! " + ch.Explanation)
	b.Challenge = nil
	b.Phase = game.PhaseAwaitingAction
	if err := s.resolve(e, b.PendingMoveIndex, s.tuning.AttackBonusPercent/100.0); err != nil {
		return nil, err
	}
	return &AnswerResult{
		Success: true,
		Message: "Correct! Your pending strike is empowered.",
		Score:   score,
		State:   b.Snapshot(now),
	}, nil
}

// Forfeit forces the battle into its terminal state with the owner losing.
func (s *Store) Forfeit(battleID, owner string) (bool, error) {
	e, err := s.lookup(battleID, owner)
	if err != nil {
		return false, err
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	b := e.battle
	if b.Finished() {
		return false, ErrBattleFinished
	}
	engine.Forfeit(b, game.SidePlayer)
	b.Challenge = nil
	b.FinishedAt = s.now()
	s.recordStats(b, true)
	return true, nil
}

// resolve runs one full turn: the pending/submitted player move against the
// scripted opponent's choice. Caller holds the entry lock.
func (s *Store) resolve(e *entry, playerMove int, playerBonus float64) error {
	b := e.battle
	enemyMove := engine.ChooseEnemyMove(&b.Enemy)
	if err := engine.ResolveTurn(b, playerMove, enemyMove, playerBonus, e.rng); err != nil {
		if errors.Is(err, engine.ErrInvalidMoveIndex) {
			return ErrInvalidMove
		}
		return err
	}
	b.PendingMoveIndex = -1
	if b.Finished() {
		b.FinishedAt = s.now()
		s.recordStats(b, false)
	}
	return nil
}

// expireChallenge applies the expiry penalty and lets the held action
// proceed without a bonus. Caller holds the entry lock.
func (s *Store) expireChallenge(e *entry) {
	b := e.battle
	penalty := b.Player.CurrentHP * int(s.tuning.ExpiryPenaltyPercent) / 100
	if penalty < 1 {
		penalty = 1
	}
	b.Player.ApplyDamage(penalty)
	b.AppendLog("The hack succeeds! " + b.Player.Name + " loses " + itoa(penalty) + " HP in the confusion.")
	b.Challenge = nil
	b.Phase = game.PhaseAwaitingAction
	if b.Player.Fainted() {
		engine.Forfeit(b, game.SidePlayer)
		b.FinishedAt = s.now()
		s.recordStats(b, false)
		return
	}
	if err := s.resolve(e, b.PendingMoveIndex, 0); err != nil {
		logging.Error("failed to resolve pending action after challenge expiry", err, logging.Fields{"battle_id": b.ID})
	}
}

func (s *Store) recordStats(b *game.Battle, forfeited bool) {
	if s.stats == nil {
		return
	}
	won := b.Winner == game.SidePlayer
	if err := s.stats.RecordBattleResult(b.OwnerEmail, won, forfeited); err != nil {
		logging.Error("failed to record battle result", err, logging.Fields{"battle_id": b.ID})
	}
}

func (s *Store) lookup(battleID, owner string) (*entry, error) {
	s.mu.RLock()
	e, ok := s.entries[battleID]
	s.mu.RUnlock()
	if !ok || e.battle.OwnerEmail != owner {
		return nil, ErrBattleNotFound
	}
	return e, nil
}

// Len reports the number of resident battle sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}
