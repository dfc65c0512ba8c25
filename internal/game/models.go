package game

import "gorm.io/gorm"

// ElementType is a string alias for a creature or move elemental type.
// Using a dedicated type instead of plain string makes code safer and
// self-documenting.
type ElementType string

const (
	TypeNormal   ElementType = "normal"
	TypeFire     ElementType = "fire"
	TypeWater    ElementType = "water"
	TypeElectric ElementType = "electric"
	TypeGrass    ElementType = "grass"
	TypeIce      ElementType = "ice"
	TypeFighting ElementType = "fighting"
	TypePoison   ElementType = "poison"
	TypeGround   ElementType = "ground"
	TypeFlying   ElementType = "flying"
	TypePsychic  ElementType = "psychic"
	TypeBug      ElementType = "bug"
	TypeRock     ElementType = "rock"
	TypeGhost    ElementType = "ghost"
	TypeDragon   ElementType = "dragon"
	TypeDark     ElementType = "dark"
	TypeSteel    ElementType = "steel"
	TypeFairy    ElementType = "fairy"
)

// MoveCategory classifies a move as physical, special or status.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "physical"
	CategorySpecial  MoveCategory = "special"
	CategoryStatus   MoveCategory = "status"
)

// Move is a persisted move definition. Power 0 marks a status move.
type Move struct {
	gorm.Model
	Name     string       `json:"name" gorm:"uniqueIndex"`
	Type     ElementType  `json:"type"`
	Power    int          `json:"power"`
	Accuracy int          `json:"accuracy"`
	PP       int          `json:"pp"`
	Category MoveCategory `json:"category"`
	// CritRatio is the denominator of the critical-hit probability
	// (ratio 6.25 means a hit lands critically about 16% of the time).
	CritRatio float64 `json:"crit_ratio"`
}

// Creature is a persisted creature template. Battle code never touches these
// rows directly; a frozen snapshot is taken at battle start.
type Creature struct {
	gorm.Model
	Name        string      `json:"name" gorm:"uniqueIndex"`
	Type        ElementType `json:"type"`
	BaseHP      int         `json:"base_hp"`
	BaseAttack  int         `json:"base_attack"`
	BaseDefense int         `json:"base_defense"`
	BaseSpeed   int         `json:"base_speed"`
	SpriteFront string      `json:"sprite_front"`
	SpriteBack  string      `json:"sprite_back"`
	Moves       []Move      `json:"moves" gorm:"many2many:creature_moves;"`
}

// TableName keeps the persisted table named after its role as a template set.
func (Creature) TableName() string { return "creature_templates" }

// Team is a user-owned roster of creatures.
type Team struct {
	gorm.Model
	OwnerEmail string       `json:"-" gorm:"index"`
	Name       string       `json:"name" gorm:"size:32"`
	Members    []TeamMember `json:"members"`
}

// TeamMember is one slot of a team: a creature template at a given level.
type TeamMember struct {
	gorm.Model
	TeamID     uint     `json:"-"`
	CreatureID uint     `json:"creature_id"`
	Creature   Creature `json:"creature"`
	Level      int      `json:"level"`
	Slot       int      `json:"slot"`
}

// User stores unique player identity and aggregate battle stats.
type User struct {
	gorm.Model
	Email         string `json:"email" gorm:"uniqueIndex"`
	Name          string `json:"name"`
	BattlesPlayed int    `json:"battles_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Forfeits      int    `json:"forfeits"`
}

func (User) TableName() string { return "player_profiles" }
