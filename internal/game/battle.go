package game

import "time"

// Side tags the two rosters of a battle.
type Side string

const (
	SideNone   Side = ""
	SidePlayer Side = "player"
	SideEnemy  Side = "enemy"
	SideDraw   Side = "draw"
)

// Phase is the battle state-machine position.
type Phase string

const (
	PhaseAwaitingAction Phase = "awaiting_action"
	PhaseResolving      Phase = "resolving"
	PhaseInterrupted    Phase = "interrupted"
	PhaseFinished       Phase = "finished"
)

// WeatherCondition is the closed enumeration of supported conditions.
type WeatherCondition string

const (
	WeatherClearDay     WeatherCondition = "clear-day"
	WeatherClearNight   WeatherCondition = "clear-night"
	WeatherRain         WeatherCondition = "rain"
	WeatherSnow         WeatherCondition = "snow"
	WeatherClouds       WeatherCondition = "clouds"
	WeatherThunderstorm WeatherCondition = "thunderstorm"
)

// MoveInstance is a frozen copy of a move taken at battle start. It is
// immutable for the session's lifetime.
type MoveInstance struct {
	Name      string       `json:"name"`
	Type      ElementType  `json:"type"`
	Power     int          `json:"power"`
	Accuracy  int          `json:"accuracy"`
	PP        int          `json:"pp"`
	Category  MoveCategory `json:"category"`
	CritRatio float64      `json:"crit_ratio"`
}

// BattleCreature is one combatant's in-battle snapshot. It is created once
// at battle start from a roster snapshot and never re-fetched mid-battle.
type BattleCreature struct {
	CreatureID  uint           `json:"creature_id"`
	Name        string         `json:"name"`
	Type        ElementType    `json:"type"`
	Level       int            `json:"level"`
	BaseHP      int            `json:"base_hp"`
	BaseAttack  int            `json:"base_attack"`
	BaseDefense int            `json:"base_defense"`
	BaseSpeed   int            `json:"base_speed"`
	CurrentHP   int            `json:"current_hp"`
	MaxHP       int            `json:"max_hp"`
	SpriteFront string         `json:"sprite_front"`
	SpriteBack  string         `json:"sprite_back"`
	Moves       []MoveInstance `json:"moves"`
}

// NewBattleCreature freezes a roster member into an in-battle snapshot.
// At most four moves are carried into battle.
func NewBattleCreature(c Creature, level int) BattleCreature {
	moves := make([]MoveInstance, 0, 4)
	for _, m := range c.Moves {
		if len(moves) == 4 {
			break
		}
		moves = append(moves, MoveInstance{
			Name:      m.Name,
			Type:      m.Type,
			Power:     m.Power,
			Accuracy:  m.Accuracy,
			PP:        m.PP,
			Category:  m.Category,
			CritRatio: m.CritRatio,
		})
	}
	return BattleCreature{
		CreatureID:  c.ID,
		Name:        c.Name,
		Type:        c.Type,
		Level:       level,
		BaseHP:      c.BaseHP,
		BaseAttack:  c.BaseAttack,
		BaseDefense: c.BaseDefense,
		BaseSpeed:   c.BaseSpeed,
		CurrentHP:   c.BaseHP,
		MaxHP:       c.BaseHP,
		SpriteFront: c.SpriteFront,
		SpriteBack:  c.SpriteBack,
		Moves:       moves,
	}
}

// ApplyDamage reduces current HP keeping the 0 <= current_hp <= max_hp
// invariant.
func (c *BattleCreature) ApplyDamage(dmg int) {
	if dmg < 0 {
		dmg = 0
	}
	c.CurrentHP -= dmg
	if c.CurrentHP < 0 {
		c.CurrentHP = 0
	}
}

// Fainted reports whether the creature is out of the fight.
func (c *BattleCreature) Fainted() bool { return c.CurrentHP <= 0 }

// WeatherEffect is the per-battle environmental snapshot. Constructed once
// at battle start and immutable thereafter.
type WeatherEffect struct {
	Condition   WeatherCondition `json:"condition"`
	BonusTypes  []ElementType    `json:"bonus_types"`
	MalusTypes  []ElementType    `json:"malus_types"`
	Multiplier  float64          `json:"multiplier"`
	Description string           `json:"description"`
	// TimeBonus is a flat fraction (e.g. 0.10 for +10%) added on top of the
	// weather multiplier for affected stats. Computed from the local hour.
	TimeBonus float64 `json:"time_bonus"`
}

// IsBonus reports whether t benefits from this weather.
func (w WeatherEffect) IsBonus(t ElementType) bool {
	for _, b := range w.BonusTypes {
		if b == t {
			return true
		}
	}
	return false
}

// IsMalus reports whether t is hindered by this weather.
func (w WeatherEffect) IsMalus(t ElementType) bool {
	for _, m := range w.MalusTypes {
		if m == t {
			return true
		}
	}
	return false
}

// ChallengeDifficulty is the hack-challenge difficulty tier.
type ChallengeDifficulty string

const (
	DifficultyEasy     ChallengeDifficulty = "easy"
	DifficultyMedium   ChallengeDifficulty = "medium"
	DifficultyHard     ChallengeDifficulty = "hard"
	DifficultyVeryHard ChallengeDifficulty = "very_hard"
)

// HackChallenge is a timed cipher puzzle that preempts a turn. At most one
// challenge may be active per battle at a time.
type HackChallenge struct {
	ID          string              `json:"id"`
	Ciphertext  string              `json:"ciphertext"`
	Plaintext   string              `json:"-"`
	Algorithm   string              `json:"algorithm"`
	Difficulty  ChallengeDifficulty `json:"difficulty"`
	Explanation string              `json:"-"`
	TimeLimit   int                 `json:"time_limit_seconds"`
	CreatedAt   time.Time           `json:"created_at"`
}

// Deadline is the wall-clock instant after which the challenge is expired.
func (h *HackChallenge) Deadline() time.Time {
	return h.CreatedAt.Add(time.Duration(h.TimeLimit) * time.Second)
}

// Battle is the aggregate root for one live battle session. It is owned by
// the session store and mutated only through its operations.
type Battle struct {
	ID         string
	OwnerEmail string
	Player     BattleCreature
	Enemy      BattleCreature
	Turn       int
	Phase      Phase
	Weather    WeatherEffect
	Log        []string
	Winner     Side
	Challenge  *HackChallenge
	// PendingMoveIndex holds the action submitted just before an
	// interruption fired; it resumes once the challenge resolves.
	PendingMoveIndex int
	CreatedAt        time.Time
	FinishedAt       time.Time
}

// Finished reports whether the battle reached its terminal state.
func (b *Battle) Finished() bool { return b.Phase == PhaseFinished }

// AppendLog appends lines to the battle log. The log is append-only and is
// never rewritten.
func (b *Battle) AppendLog(lines ...string) {
	b.Log = append(b.Log, lines...)
}
