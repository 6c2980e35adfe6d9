package words

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Normalises(t *testing.T) {
	l, err := New([]string{" Crane ", "slate", "CRANE", "toolong", "ab1de", "", "trace"})
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate", "trace"}, l.Words())
	assert.Equal(t, 3, l.Len())
}

func TestNew_Empty(t *testing.T) {
	_, err := New([]string{"xx", "12345"})
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestRead(t *testing.T) {
	l, err := Read(strings.NewReader("crane\n\nslate\r\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"crane", "slate"}, l.Words())
}

func TestDefault(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)
	assert.Equal(t, 25, l.Len())
	assert.Contains(t, l.Words(), "stare")
}

func TestResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "answers.txt")
	require.NoError(t, os.WriteFile(path, []byte("plate\nplane\n"), 0o644))

	l, err := Resolve(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"plate", "plane"}, l.Words())

	l, err = Resolve("")
	require.NoError(t, err)
	assert.Equal(t, 25, l.Len())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
