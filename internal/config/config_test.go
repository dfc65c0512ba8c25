package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pokebattle_config.json")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

const validConfig = `{
  "creature_list": [
    {
      "name": "Flamander",
      "type": "fire",
      "hp": 78, "attack": 84, "defense": 78, "speed": 100,
      "moves": [
        {"name": "Ember", "type": "fire", "power": 40, "accuracy": 100, "pp": 25, "category": "special", "crit_ratio": 16}
      ]
    }
  ],
  "word_pool": ["firewall", "protocol"],
  "server": {"address": ":9090"},
  "challenge": {"trigger_probability": 0.5, "grace_seconds": 10},
  "retention_minutes": 2
}`

func TestLoadConfig_Valid(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cfg.Creatures) != 1 || cfg.Creatures[0].Name != "Flamander" {
		t.Fatalf("creature list not parsed: %+v", cfg.Creatures)
	}
	if cfg.Creatures[0].Type != "fire" {
		t.Fatalf("type must be normalized to lower case, got %q", cfg.Creatures[0].Type)
	}
	if cfg.ServerAddress != ":9090" {
		t.Fatalf("server address override not applied, got %q", cfg.ServerAddress)
	}
	if cfg.ChallengeTuning.TriggerProbability != 0.5 {
		t.Fatalf("trigger probability override not applied, got %v", cfg.ChallengeTuning.TriggerProbability)
	}
	if cfg.ChallengeTuning.GracePeriod != 10*time.Second {
		t.Fatalf("grace override not applied, got %v", cfg.ChallengeTuning.GracePeriod)
	}
	if cfg.ChallengeTuning.AttackBonusPercent != 15 {
		t.Fatalf("unset knobs must keep their defaults, got %v", cfg.ChallengeTuning.AttackBonusPercent)
	}
	if cfg.FinishedBattleTTL != 2*time.Minute {
		t.Fatalf("retention override not applied, got %v", cfg.FinishedBattleTTL)
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	minimal := `{
  "creature_list": [
    {"name": "A", "type": "normal", "hp": 10, "attack": 10, "defense": 10, "speed": 10,
     "moves": [{"name": "Tackle", "type": "normal", "power": 40, "accuracy": 100, "pp": 35, "category": "physical"}]}
  ],
  "word_pool": ["kernel"]
}`
	cfg, err := LoadConfig(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":8080" {
		t.Fatalf("expected default address :8080, got %q", cfg.ServerAddress)
	}
	if cfg.FinishedBattleTTL != 5*time.Minute {
		t.Fatalf("expected default retention 5m, got %v", cfg.FinishedBattleTTL)
	}
	if cfg.ChallengeTuning.TriggerProbability != 0.20 {
		t.Fatalf("expected default trigger probability 0.20, got %v", cfg.ChallengeTuning.TriggerProbability)
	}
}

func TestLoadConfig_Rejections(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "missing word pool",
			body: strings.Replace(validConfig, `"word_pool": ["firewall", "protocol"],`, `"word_pool": [],`, 1),
			want: "word_pool",
		},
		{
			name: "unknown creature type",
			body: strings.Replace(validConfig, `"type": "fire",
      "hp"`, `"type": "plasma",
      "hp"`, 1),
			want: "unknown type",
		},
		{
			name: "bad trigger probability",
			body: strings.Replace(validConfig, `"trigger_probability": 0.5`, `"trigger_probability": 1.5`, 1),
			want: "trigger_probability",
		},
		{
			name: "duplicate creature names",
			body: `{
  "creature_list": [
    {"name": "A", "type": "normal", "hp": 10, "attack": 10, "defense": 10, "speed": 10,
     "moves": [{"name": "Tackle", "type": "normal", "power": 40, "accuracy": 100, "pp": 35, "category": "physical"}]},
    {"name": "a", "type": "normal", "hp": 10, "attack": 10, "defense": 10, "speed": 10,
     "moves": [{"name": "Tackle", "type": "normal", "power": 40, "accuracy": 100, "pp": 35, "category": "physical"}]}
  ],
  "word_pool": ["kernel"]
}`,
			want: "duplicate creature name",
		},
		{
			name: "bad move category",
			body: strings.Replace(validConfig, `"category": "special"`, `"category": "magic"`, 1),
			want: "unknown category",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, c.body))
			if err == nil {
				t.Fatalf("expected an error")
			}
			if !strings.Contains(err.Error(), c.want) {
				t.Fatalf("error %q does not mention %q", err, c.want)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}
