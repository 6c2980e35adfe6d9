// internal/words/words.go
//
// Answer word lists for replaying the decision tree.
//
// Responsibilities:
//   - Load answer lists from a file or fall back to the embedded default.
//   - Normalise entries (trim, lower-case, 5 alphabetic letters only, no duplicates).
//   - Provide lookups used by the trial runner and the simulated game.
//
// Sources (Resolve):
//   1. A path (config WORDS_ANSWERS_FILE or the --answers flag) → read that file.
//   2. Empty path → embedded assets/answers.txt.
//
// Constraints:
//   • Words must be 5 alphabetic letters (a–z); other lines are skipped.
//   • An empty list is an error.

package words

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/assets"
)

// ErrEmpty is returned when a source holds no usable words.
var ErrEmpty = errors.New("words: answers list is empty")

// List is an ordered, de-duplicated set of answer words.
type List struct {
	words []string
}

// New normalises words into a List.
func New(words []string) (*List, error) {
	l := &List{}
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.TrimSpace(strings.ToLower(w))
		if len(w) != 5 || !isAlpha(w) {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		l.words = append(l.words, w)
	}
	if len(l.words) == 0 {
		return nil, ErrEmpty
	}
	return l, nil
}

// Load reads one word per line from path.
func Load(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	l, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Read reads one word per line from r.
func Read(r io.Reader) (*List, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return New(out)
}

// Default returns the embedded answer list.
func Default() (*List, error) {
	ans, err := assets.AnswersList()
	if err != nil {
		return nil, err
	}
	return New(ans)
}

// Resolve loads path, or the embedded default when path is empty.
func Resolve(path string) (*List, error) {
	if path == "" {
		return Default()
	}
	return Load(path)
}

// Words returns the answers in load order.
func (l *List) Words() []string { return append([]string(nil), l.words...) }

// Len is the number of answers.
func (l *List) Len() int { return len(l.words) }

// isAlpha reports whether s is all lowercase ASCII letters.
func isAlpha(s string) bool {
	for _, r := range s {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
