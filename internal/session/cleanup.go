package session

import (
	"strconv"
	"strings"
	"time"

	"github.com/yananas974/pokebattle/internal/challenge"
	"github.com/yananas974/pokebattle/internal/game"
	"github.com/yananas974/pokebattle/internal/logging"
)

// SweepInterval is how often the background sweeper checks for overdue
// challenges and evictable battles.
const SweepInterval = 1 * time.Second

// EvictFinished removes battles that finished more than the retention
// window ago and returns how many were dropped. Sessions are process-local;
// eviction only bounds memory, nothing is persisted.
func (s *Store) EvictFinished(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, e := range s.entries {
		e.mu.Lock()
		expired := e.battle.Finished() && !e.battle.FinishedAt.IsZero() && now.Sub(e.battle.FinishedAt) > s.retention
		e.mu.Unlock()
		if expired {
			delete(s.entries, id)
			evicted++
		}
	}
	if evicted > 0 {
		logging.Info("evicted finished battles", logging.Fields{"count": evicted})
	}
	return evicted
}

// ExpireOverdueChallenges purges challenges whose grace period has passed:
// the expiry penalty lands and the held action proceeds without a bonus,
// exactly as if a late answer had arrived.
func (s *Store) ExpireOverdueChallenges(now time.Time) {
	s.mu.RLock()
	candidates := make([]*entry, 0)
	for _, e := range s.entries {
		candidates = append(candidates, e)
	}
	s.mu.RUnlock()

	for _, e := range candidates {
		e.mu.Lock()
		b := e.battle
		if b.Phase == game.PhaseInterrupted && b.Challenge != nil && challenge.PastGrace(b.Challenge, s.tuning.GracePeriod, now) {
			logging.Info("challenge grace period elapsed", logging.Fields{"battle_id": b.ID, "challenge_id": b.Challenge.ID})
			s.expireChallenge(e)
		}
		e.mu.Unlock()
	}
}

// StartSweeper runs periodic eviction and challenge cleanup until stop is
// closed.
func (s *Store) StartSweeper(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				now := s.now()
				s.ExpireOverdueChallenges(now)
				s.EvictFinished(now)
			case <-stop:
				return
			}
		}
	}()
}

func itoa(n int) string { return strconv.Itoa(n) }

func trimmed(s string) string { return strings.TrimSpace(s) }
