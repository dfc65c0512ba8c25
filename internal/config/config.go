package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yananas974/pokebattle/internal/challenge"
	"github.com/yananas974/pokebattle/internal/game"
)

type moveEntry struct {
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Power     int     `json:"power"`
	Accuracy  int     `json:"accuracy"`
	PP        int     `json:"pp"`
	Category  string  `json:"category"`
	CritRatio float64 `json:"crit_ratio"`
}

type creatureEntry struct {
	Name        string      `json:"name"`
	Type        string      `json:"type"`
	HP          int         `json:"hp"`
	Attack      int         `json:"attack"`
	Defense     int         `json:"defense"`
	Speed       int         `json:"speed"`
	SpriteFront string      `json:"sprite_front"`
	SpriteBack  string      `json:"sprite_back"`
	Moves       []moveEntry `json:"moves"`
}

type rawConfig struct {
	CreatureList []creatureEntry `json:"creature_list"`
	WordPool     []string        `json:"word_pool"`
	Server       *struct {
		Address string `json:"address"`
	} `json:"server"`
	Challenge *struct {
		TriggerProbability   *float64 `json:"trigger_probability"`
		AttackBonusPercent   *float64 `json:"attack_bonus_percent"`
		ExpiryPenaltyPercent *float64 `json:"expiry_penalty_percent"`
		GraceSeconds         *int     `json:"grace_seconds"`
	} `json:"challenge"`
	RetentionMinutes int `json:"retention_minutes"`
}

// LoadedConfig carries the parsed configuration: creatures to seed, the
// challenge word pool and tuning, and server settings.
type LoadedConfig struct {
	Creatures         []game.Creature
	WordPool          []string
	ServerAddress     string
	ChallengeTuning   challenge.Tuning
	FinishedBattleTTL time.Duration
}

var validTypes = map[string]struct{}{
	"normal": {}, "fire": {}, "water": {}, "electric": {}, "grass": {},
	"ice": {}, "fighting": {}, "poison": {}, "ground": {}, "flying": {},
	"psychic": {}, "bug": {}, "rock": {}, "ghost": {}, "dragon": {},
	"dark": {}, "steel": {}, "fairy": {},
}

// LoadConfig reads the configuration file at path. It requires the keys
// `creature_list` and `word_pool` (snake_case) and validates the entries.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if len(rc.CreatureList) == 0 {
		return nil, fmt.Errorf("config file %s: creature_list is empty", path)
	}
	if len(rc.WordPool) == 0 {
		return nil, fmt.Errorf("config file %s: word_pool is empty", path)
	}

	nameSet := make(map[string]struct{}, len(rc.CreatureList))
	out := make([]game.Creature, 0, len(rc.CreatureList))
	for _, ce := range rc.CreatureList {
		if ce.Name == "" {
			return nil, fmt.Errorf("config file %s: creature entry missing 'name'", path)
		}
		ln := strings.ToLower(strings.TrimSpace(ce.Name))
		if _, exists := nameSet[ln]; exists {
			return nil, fmt.Errorf("config file %s: duplicate creature name '%s'", path, ce.Name)
		}
		nameSet[ln] = struct{}{}
		if _, ok := validTypes[strings.ToLower(ce.Type)]; !ok {
			return nil, fmt.Errorf("config file %s: creature '%s' has unknown type '%s'", path, ce.Name, ce.Type)
		}
		if len(ce.Moves) == 0 || len(ce.Moves) > 4 {
			return nil, fmt.Errorf("config file %s: creature '%s' must have 1-4 moves", path, ce.Name)
		}
		moves := make([]game.Move, 0, len(ce.Moves))
		for _, me := range ce.Moves {
			if me.Name == "" {
				return nil, fmt.Errorf("config file %s: creature '%s' has a move without a name", path, ce.Name)
			}
			if _, ok := validTypes[strings.ToLower(me.Type)]; !ok {
				return nil, fmt.Errorf("config file %s: move '%s' has unknown type '%s'", path, me.Name, me.Type)
			}
			if me.Accuracy < 0 || me.Accuracy > 100 {
				return nil, fmt.Errorf("config file %s: move '%s' accuracy must be 0-100", path, me.Name)
			}
			category := game.MoveCategory(strings.ToLower(me.Category))
			switch category {
			case game.CategoryPhysical, game.CategorySpecial, game.CategoryStatus:
			default:
				return nil, fmt.Errorf("config file %s: move '%s' has unknown category '%s'", path, me.Name, me.Category)
			}
			moves = append(moves, game.Move{
				Name:      me.Name,
				Type:      game.ElementType(strings.ToLower(me.Type)),
				Power:     me.Power,
				Accuracy:  me.Accuracy,
				PP:        me.PP,
				Category:  category,
				CritRatio: me.CritRatio,
			})
		}
		out = append(out, game.Creature{
			Name:        ce.Name,
			Type:        game.ElementType(strings.ToLower(ce.Type)),
			BaseHP:      ce.HP,
			BaseAttack:  ce.Attack,
			BaseDefense: ce.Defense,
			BaseSpeed:   ce.Speed,
			SpriteFront: ce.SpriteFront,
			SpriteBack:  ce.SpriteBack,
			Moves:       moves,
		})
	}

	tuning := challenge.DefaultTuning
	if rc.Challenge != nil {
		if rc.Challenge.TriggerProbability != nil {
			tuning.TriggerProbability = *rc.Challenge.TriggerProbability
		}
		if rc.Challenge.AttackBonusPercent != nil {
			tuning.AttackBonusPercent = *rc.Challenge.AttackBonusPercent
		}
		if rc.Challenge.ExpiryPenaltyPercent != nil {
			tuning.ExpiryPenaltyPercent = *rc.Challenge.ExpiryPenaltyPercent
		}
		if rc.Challenge.GraceSeconds != nil {
			tuning.GracePeriod = time.Duration(*rc.Challenge.GraceSeconds) * time.Second
		}
	}
	if tuning.TriggerProbability < 0 || tuning.TriggerProbability > 1 {
		return nil, fmt.Errorf("config file %s: challenge.trigger_probability must be within [0,1]", path)
	}

	addr := ":8080"
	if rc.Server != nil && rc.Server.Address != "" {
		addr = rc.Server.Address
	}

	ttl := 5 * time.Minute
	if rc.RetentionMinutes > 0 {
		ttl = time.Duration(rc.RetentionMinutes) * time.Minute
	}

	pool := make([]string, 0, len(rc.WordPool))
	for _, w := range rc.WordPool {
		w = strings.TrimSpace(w)
		if w != "" {
			pool = append(pool, w)
		}
	}

	return &LoadedConfig{
		Creatures:         out,
		WordPool:          pool,
		ServerAddress:     addr,
		ChallengeTuning:   tuning,
		FinishedBattleTTL: ttl,
	}, nil
}
