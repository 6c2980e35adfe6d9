// internal/tree/tree.go
//
// Decision tree data model.
// Defines:
//   - Tree:   the whole solution tree; Root is the opening guess.
//   - Branch: a guess word paired with the subtree reached once its feedback is known.
//   - Node:   feedback code → Branch mapping for one round.
//
// Serialized shape (JSON or YAML):
//
//	{"root": ["place", {"BBGBG": ["shame", {...}], "GGGBG": ["plane", {}]}]}
//
// The "root" sentinel only exists in the document. In memory the opening
// branch is the Root field, so no feedback code can ever collide with it.
//
// A Branch with an empty guess is a win marker ("GGGGG": ["", {}]): the
// previous guess was the answer and there is nothing left to play.
//
// Trees are immutable once decoded and safe to share between goroutines.

package tree

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/go-solver/internal/feedback"
)

// RootKey is the document key holding the opening guess.
const RootKey = "root"

// ErrInvalidTree wraps every decoding and validation failure.
var ErrInvalidTree = errors.New("invalid decision tree")

// Tree is a decoded decision tree.
type Tree struct {
	Root Branch
}

// Branch pairs a guess with the node that follows it.
type Branch struct {
	Guess string
	Next  *Node
}

// WinMarker reports whether the branch carries no guess.
func (b Branch) WinMarker() bool { return b.Guess == "" }

// Node maps feedback codes to the next branch.
type Node struct {
	branches map[feedback.Code]Branch
}

// Branch returns the entry for code, if any.
func (n *Node) Branch(code feedback.Code) (Branch, bool) {
	if n == nil {
		return Branch{}, false
	}
	b, ok := n.branches[code]
	return b, ok
}

// Len is the number of feedback-keyed entries, win markers included.
func (n *Node) Len() int {
	if n == nil {
		return 0
	}
	return len(n.branches)
}

// Terminal reports whether no entry of n carries a further guess.
func (n *Node) Terminal() bool {
	if n == nil {
		return true
	}
	for _, b := range n.branches {
		if !b.WinMarker() {
			return false
		}
	}
	return true
}

// Codes returns the node's feedback codes in lexical order.
func (n *Node) Codes() []feedback.Code {
	if n == nil {
		return nil
	}
	out := make([]feedback.Code, 0, len(n.branches))
	for c := range n.branches {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// NewNode builds a node from a code → branch map. Used by tests and tools
// that assemble trees programmatically.
func NewNode(branches map[feedback.Code]Branch) *Node {
	n := &Node{branches: make(map[feedback.Code]Branch, len(branches))}
	for c, b := range branches {
		if b.Next == nil {
			b.Next = &Node{}
		}
		n.branches[c] = b
	}
	return n
}

// ----------------------------- encoding ------------------------------------

// UnmarshalJSON decodes the {"root": [guess, {...}]} document shape.
func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	return t.fromRaw(raw)
}

// UnmarshalYAML decodes the same shape from YAML.
func (t *Tree) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	return t.fromRaw(raw)
}

// MarshalJSON writes the document shape; map keys come out sorted.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.raw())
}

// MarshalYAML writes the document shape.
func (t *Tree) MarshalYAML() (any, error) {
	return t.raw(), nil
}

func (t *Tree) fromRaw(raw any) error {
	top, ok := raw.(map[string]any)
	if !ok {
		return fmt.Errorf("%w: document must be an object", ErrInvalidTree)
	}
	entry, ok := top[RootKey]
	if !ok {
		return fmt.Errorf("%w: missing %q entry", ErrInvalidTree, RootKey)
	}
	if len(top) != 1 {
		return fmt.Errorf("%w: top level must only hold %q", ErrInvalidTree, RootKey)
	}
	b, err := branchFromRaw(entry, RootKey)
	if err != nil {
		return err
	}
	t.Root = b
	return nil
}

func branchFromRaw(raw any, path string) (Branch, error) {
	pair, ok := raw.([]any)
	if !ok || len(pair) != 2 {
		return Branch{}, fmt.Errorf("%w: %s: entry must be [guess, subtree]", ErrInvalidTree, path)
	}
	guess, ok := pair[0].(string)
	if !ok {
		return Branch{}, fmt.Errorf("%w: %s: guess must be a string", ErrInvalidTree, path)
	}
	next, err := nodeFromRaw(pair[1], path)
	if err != nil {
		return Branch{}, err
	}
	return Branch{Guess: guess, Next: next}, nil
}

func nodeFromRaw(raw any, path string) (*Node, error) {
	if raw == nil {
		return &Node{}, nil
	}
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s: subtree must be an object", ErrInvalidTree, path)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	n := &Node{branches: make(map[feedback.Code]Branch, len(m))}
	for _, k := range keys {
		if !feedback.IsValid(k) {
			return nil, fmt.Errorf("%w: %s: %q is not a feedback code", ErrInvalidTree, path, k)
		}
		b, err := branchFromRaw(m[k], path+"/"+k)
		if err != nil {
			return nil, err
		}
		n.branches[feedback.Code(k)] = b
	}
	return n, nil
}

func (t *Tree) raw() map[string]any {
	return map[string]any{RootKey: branchRaw(t.Root)}
}

func branchRaw(b Branch) []any {
	return []any{b.Guess, nodeRaw(b.Next)}
}

func nodeRaw(n *Node) map[string]any {
	out := make(map[string]any, n.Len())
	if n == nil {
		return out
	}
	for c, b := range n.branches {
		out[string(c)] = branchRaw(b)
	}
	return out
}
