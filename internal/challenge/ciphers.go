package challenge

import (
	"encoding/hex"
	"math/rand"
	"strings"

	"github.com/yananas974/pokebattle/internal/game"
)

// Cipher algorithm tags exposed to clients so the UI can hint at the
// decoding approach.
const (
	AlgoReverse    = "reverse"
	AlgoAlternate  = "alternating_case"
	AlgoRot13      = "rot13"
	AlgoHex        = "hex"
	AlgoNoise      = "noise"
	AlgoHexRot13   = "hex_rot13"
	AlgoNoiseOfRev = "noise_reverse"
)

// encipher encodes word for the given tier and returns the ciphertext, the
// algorithm tag and a human-readable explanation revealed after the
// challenge resolves.
func encipher(word string, difficulty game.ChallengeDifficulty, rng *rand.Rand) (ciphertext, algorithm, explanation string) {
	switch difficulty {
	case game.DifficultyEasy:
		if rng.Intn(2) == 0 {
			return reverse(word), AlgoReverse, "The word was simply written backwards."
		}
		return alternateCase(word), AlgoAlternate, "The word was written with alternating letter case."
	case game.DifficultyMedium:
		if rng.Intn(2) == 0 {
			return rot13(word), AlgoRot13, "Each letter was shifted 13 places in the alphabet (ROT13)."
		}
		return hex.EncodeToString([]byte(word)), AlgoHex, "The word was hex-encoded byte by byte."
	case game.DifficultyHard:
		return interleaveNoise(word, rng), AlgoNoise, "Random digits were inserted between the letters; strip them out."
	default: // very hard: composed ciphers
		if rng.Intn(2) == 0 {
			return hex.EncodeToString([]byte(rot13(word))), AlgoHexRot13, "The word was ROT13-shifted, then hex-encoded."
		}
		return interleaveNoise(reverse(word), rng), AlgoNoiseOfRev, "The word was reversed, then padded with random digits."
	}
}

func reverse(s string) string {
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

func alternateCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if i%2 == 0 {
			b.WriteString(strings.ToUpper(string(r)))
		} else {
			b.WriteString(strings.ToLower(string(r)))
		}
	}
	return b.String()
}

func rot13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		}
		return r
	}, s)
}

func interleaveNoise(s string, rng *rand.Rand) string {
	const digits = "0123456789"
	var b strings.Builder
	for _, r := range s {
		b.WriteRune(r)
		b.WriteByte(digits[rng.Intn(len(digits))])
	}
	return b.String()
}
