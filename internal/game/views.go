package game

import "time"

// CreatureView is the caller-facing projection of one combatant.
type CreatureView struct {
	Name        string         `json:"name"`
	Type        ElementType    `json:"type"`
	Level       int            `json:"level"`
	CurrentHP   int            `json:"current_hp"`
	MaxHP       int            `json:"max_hp"`
	SpriteFront string         `json:"sprite_front"`
	SpriteBack  string         `json:"sprite_back"`
	Moves       []MoveInstance `json:"moves"`
}

// ChallengeView exposes an active hack-challenge without leaking its
// solution.
type ChallengeView struct {
	ID               string              `json:"id"`
	Ciphertext       string              `json:"ciphertext"`
	Algorithm        string              `json:"algorithm"`
	Difficulty       ChallengeDifficulty `json:"difficulty"`
	TimeLimitSeconds int                 `json:"time_limit_seconds"`
	SecondsRemaining int                 `json:"seconds_remaining"`
}

// BattleView is the copy returned to callers. Handing out views instead of
// the stored aggregate keeps in-flight state safe from external mutation.
type BattleView struct {
	BattleID  string         `json:"battle_id"`
	Turn      int            `json:"turn"`
	WhoseTurn string         `json:"whose_turn"`
	Player    CreatureView   `json:"player"`
	Enemy     CreatureView   `json:"enemy"`
	Weather   WeatherEffect  `json:"weather"`
	Log       []string       `json:"log"`
	Winner    Side           `json:"winner,omitempty"`
	Finished  bool           `json:"finished"`
	Challenge *ChallengeView `json:"challenge,omitempty"`
}

// Snapshot builds a detached view of the battle at the given instant.
func (b *Battle) Snapshot(now time.Time) *BattleView {
	v := &BattleView{
		BattleID: b.ID,
		Turn:     b.Turn,
		Player:   creatureView(b.Player),
		Enemy:    creatureView(b.Enemy),
		Weather:  b.Weather,
		Log:      append([]string(nil), b.Log...),
		Winner:   b.Winner,
		Finished: b.Finished(),
	}
	switch b.Phase {
	case PhaseInterrupted:
		v.WhoseTurn = "challenge"
	case PhaseFinished:
		v.WhoseTurn = ""
	default:
		v.WhoseTurn = string(SidePlayer)
	}
	if b.Challenge != nil && b.Phase == PhaseInterrupted {
		remaining := int(b.Challenge.Deadline().Sub(now).Seconds())
		if remaining < 0 {
			remaining = 0
		}
		v.Challenge = &ChallengeView{
			ID:               b.Challenge.ID,
			Ciphertext:       b.Challenge.Ciphertext,
			Algorithm:        b.Challenge.Algorithm,
			Difficulty:       b.Challenge.Difficulty,
			TimeLimitSeconds: b.Challenge.TimeLimit,
			SecondsRemaining: remaining,
		}
	}
	return v
}

func creatureView(c BattleCreature) CreatureView {
	return CreatureView{
		Name:        c.Name,
		Type:        c.Type,
		Level:       c.Level,
		CurrentHP:   c.CurrentHP,
		MaxHP:       c.MaxHP,
		SpriteFront: c.SpriteFront,
		SpriteBack:  c.SpriteBack,
		Moves:       append([]MoveInstance(nil), c.Moves...),
	}
}
