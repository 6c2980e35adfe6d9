// internal/daily/daily.go
//
// Deterministic "puzzle of the day" selection.
// Responsibilities:
//   - Map a date to a stable answer index: HMAC-SHA256(salt, YYYY-MM-DD) mod n.
//   - Pick the day's word from an answer list.
//
// The same date, salt and list always give the same word, so the CLI can
// replay a given day's puzzle through the decision tree.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/robalobadob/wordle/apps/go-solver/internal/words"
)

// DefaultSalt is used when no salt is configured.
const DefaultSalt = "wordle-solver"

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// WordIndex returns a deterministic index for a date using HMAC(salt, YYYY-MM-DD) % answersLen.
func WordIndex(date time.Time, salt string, answersLen int) int {
	if answersLen <= 0 {
		return 0
	}
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	// first 8 bytes as uint64 for the modulus
	n := binary.BigEndian.Uint64(sum[:8])
	return int(n % uint64(answersLen))
}

// Puzzle is one day's answer.
type Puzzle struct {
	Date   string `json:"date"`
	Index  int    `json:"index"`
	Answer string `json:"answer"`
}

// For picks the puzzle for date from list.
func For(date time.Time, salt string, list *words.List) Puzzle {
	if salt == "" {
		salt = DefaultSalt
	}
	all := list.Words()
	i := WordIndex(date, salt, len(all))
	p := Puzzle{Date: DateKey(date), Index: i}
	if len(all) > 0 {
		p.Answer = all[i]
	}
	return p
}
