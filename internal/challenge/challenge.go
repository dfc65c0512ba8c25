package challenge

import (
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yananas974/pokebattle/internal/game"
)

// Tuning groups the challenge knobs that were magic numbers in earlier
// iterations. Values are overridable from the config file.
type Tuning struct {
	// TriggerProbability is the per-turn chance that a submitted action is
	// interrupted by a hack challenge.
	TriggerProbability float64
	// AttackBonusPercent is the attack reward, as a percentage, applied to
	// the pending action when the challenge is solved in time.
	AttackBonusPercent float64
	// ExpiryPenaltyPercent is the share of the acting creature's current HP
	// lost when the challenge expires unsolved.
	ExpiryPenaltyPercent float64
	// GracePeriod is how long an expired challenge record is retained to
	// tolerate last-moment answers in flight.
	GracePeriod time.Duration
}

// DefaultTuning mirrors the long-standing gameplay values.
var DefaultTuning = Tuning{
	TriggerProbability:   0.20,
	AttackBonusPercent:   15,
	ExpiryPenaltyPercent: 10,
	GracePeriod:          5 * time.Second,
}

// Difficulty weights: easy 40%, medium 30%, hard 20%, very-hard 10%.
var difficultyWeights = []struct {
	difficulty game.ChallengeDifficulty
	weight     int
}{
	{game.DifficultyEasy, 40},
	{game.DifficultyMedium, 30},
	{game.DifficultyHard, 20},
	{game.DifficultyVeryHard, 10},
}

// timeLimits holds the fixed per-tier time limit in seconds.
var timeLimits = map[game.ChallengeDifficulty]int{
	game.DifficultyEasy:     30,
	game.DifficultyMedium:   45,
	game.DifficultyHard:     60,
	game.DifficultyVeryHard: 90,
}

// TimeLimit returns the fixed time limit in seconds for a difficulty tier.
func TimeLimit(d game.ChallengeDifficulty) int { return timeLimits[d] }

// Generate builds a fresh hack challenge from the word pool: a random word,
// a weighted-random difficulty tier and a cipher appropriate to that tier.
func Generate(pool []string, rng *rand.Rand, now time.Time) *game.HackChallenge {
	word := strings.ToLower(pool[rng.Intn(len(pool))])
	difficulty := rollDifficulty(rng)
	ciphertext, algorithm, explanation := encipher(word, difficulty, rng)
	return &game.HackChallenge{
		ID:          uuid.NewString(),
		Ciphertext:  ciphertext,
		Plaintext:   word,
		Algorithm:   algorithm,
		Difficulty:  difficulty,
		Explanation: explanation,
		TimeLimit:   timeLimits[difficulty],
		CreatedAt:   now,
	}
}

func rollDifficulty(rng *rand.Rand) game.ChallengeDifficulty {
	total := 0
	for _, w := range difficultyWeights {
		total += w.weight
	}
	roll := rng.Intn(total)
	for _, w := range difficultyWeights {
		if roll < w.weight {
			return w.difficulty
		}
		roll -= w.weight
	}
	return game.DifficultyEasy
}

// Matches reports whether answer solves the challenge: case-insensitive
// exact match against the plaintext after trimming.
func Matches(ch *game.HackChallenge, answer string) bool {
	return strings.EqualFold(strings.TrimSpace(answer), ch.Plaintext)
}

// Expired reports whether the time limit has passed at the given instant.
// An answer arriving after the deadline is Expired even when the string
// matches.
func Expired(ch *game.HackChallenge, now time.Time) bool {
	return now.After(ch.Deadline())
}

// PastGrace reports whether the record is due for purging.
func PastGrace(ch *game.HackChallenge, grace time.Duration, now time.Time) bool {
	return now.After(ch.Deadline().Add(grace))
}

// Score rewards solve speed: a per-tier base scaled up by the fraction of
// the time limit left at submission.
func Score(ch *game.HackChallenge, now time.Time) int {
	base := map[game.ChallengeDifficulty]int{
		game.DifficultyEasy:     100,
		game.DifficultyMedium:   200,
		game.DifficultyHard:     400,
		game.DifficultyVeryHard: 800,
	}[ch.Difficulty]
	limit := float64(ch.TimeLimit)
	remaining := ch.Deadline().Sub(now).Seconds()
	if remaining < 0 {
		remaining = 0
	}
	return base + int(float64(base)*remaining/limit)
}
