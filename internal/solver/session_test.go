package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
	"github.com/robalobadob/wordle/apps/go-solver/internal/walker"
)

const smallJSON = `{"root":["place",{
	"BBGBG":["shame",{"GBGBG":["snare",{"GBGGG":["stare",{}]}],"GGGBG":["share",{}]}],
	"GGGBG":["plane",{"GGGBG":["plate",{}]}],
	"YBBBG":["spine",{}]
}]}`

func newSession(t *testing.T) *Session {
	t.Helper()
	tr, err := tree.Parse([]byte(smallJSON), tree.FormatJSON)
	require.NoError(t, err)
	return New(walker.New(tr), false)
}

func TestSession_PlayToWin(t *testing.T) {
	s := newSession(t)

	o := s.Start()
	assert.Equal(t, StatusOptimal, o.Status)
	assert.Equal(t, "place", o.Guess)
	assert.Equal(t, 1, o.Round)
	assert.Equal(t, []feedback.Code{}, o.Path)

	o = s.Submit("bbgbg")
	assert.Equal(t, StatusOptimal, o.Status)
	assert.Equal(t, "shame", o.Guess)
	assert.Equal(t, 2, o.Round)

	o = s.Submit("GBGBG")
	assert.Equal(t, "snare", o.Guess)

	o = s.Submit("GBGGG")
	assert.Equal(t, StatusWinningNext, o.Status)
	assert.Equal(t, "stare", o.Guess)
	assert.Equal(t, msgWinningNext, o.Message)
	assert.Equal(t, 4, o.Round)

	o = s.Submit("GGGGG")
	assert.Equal(t, StatusWon, o.Status)
	assert.Empty(t, o.Guess)
	assert.True(t, s.Won())

	o = s.Submit("BBBBB")
	assert.Equal(t, StatusWon, o.Status, "input after a win is ignored")
	assert.Equal(t, StatusWon, s.Start().Status)
}

func TestSession_InvalidFeedbackLeavesStateAlone(t *testing.T) {
	s := newSession(t)
	s.Start()

	for _, raw := range []string{"", "GGG", "GGXGG", "GGGGGG"} {
		o := s.Submit(raw)
		assert.Equal(t, StatusInvalidFeedback, o.Status, raw)
		assert.Equal(t, msgInvalid, o.Message)
	}
	assert.Empty(t, s.Walker().Path())
	assert.Equal(t, "shame", s.Submit("BBGBG").Guess)
}

func TestSession_NoGuessThenRecover(t *testing.T) {
	s := newSession(t)
	s.Start()

	o := s.Submit("YYYYY")
	assert.Equal(t, StatusNoGuess, o.Status)
	assert.Empty(t, o.Guess)
	assert.Equal(t, msgNoGuess, o.Message)

	o = s.Submit("GGGBG")
	assert.Equal(t, StatusOptimal, o.Status)
	assert.Equal(t, "plane", o.Guess)
	assert.Equal(t, 2, o.Round)
}

func TestSession_Reset(t *testing.T) {
	s := newSession(t)
	s.Start()
	s.Submit("YBBBG")
	s.Submit("GGGGG")
	require.True(t, s.Won())

	o := s.Reset()
	assert.False(t, s.Won())
	assert.Equal(t, StatusOptimal, o.Status)
	assert.Equal(t, "place", o.Guess)
	assert.Equal(t, 1, o.Round)
}

func TestSession_WinMarkerCountsAsWon(t *testing.T) {
	tr, err := tree.Parse([]byte(`{"root": ["WORD1", {"GGGGG": ["", {}], "BBBBB": ["WORD2", {"GGGGG": ["", {}]}]}]}`), tree.FormatJSON)
	require.NoError(t, err)
	s := New(walker.New(tr), false)

	assert.Equal(t, StatusOptimal, s.Start().Status)
	o := s.Submit("BBBBB")
	assert.Equal(t, StatusWinningNext, o.Status)
	assert.Equal(t, "WORD2", o.Guess)
}

func TestSession_RestoredWon(t *testing.T) {
	tr, err := tree.Parse([]byte(smallJSON), tree.FormatJSON)
	require.NoError(t, err)
	s := New(walker.New(tr), true)
	assert.Equal(t, StatusWon, s.Start().Status)
}

// Every guess the tree can reach is reported as winning_next exactly when
// its subtree is terminal, and never as no_guess.
func TestSession_StatusMatchesSubtree(t *testing.T) {
	tr, err := tree.Parse([]byte(smallJSON), tree.FormatJSON)
	require.NoError(t, err)

	var walk func(path []feedback.Code, n *tree.Node)
	walk = func(path []feedback.Code, n *tree.Node) {
		s := New(walker.New(tr), false)
		o := s.Start()
		for _, c := range path {
			o = s.Submit(string(c))
		}
		want := StatusOptimal
		if n.Terminal() {
			want = StatusWinningNext
		}
		assert.Equal(t, want, o.Status, "%v", path)
		for _, c := range n.Codes() {
			b, _ := n.Branch(c)
			walk(append(append([]feedback.Code(nil), path...), c), b.Next)
		}
	}
	walk(nil, tr.Root.Next)
}
