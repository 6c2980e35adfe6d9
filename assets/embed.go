// Package assets embeds the default decision tree and answer list so the
// solver runs without any files configured.
package assets

import (
	"bufio"
	"bytes"
	"embed"
	"strings"

	"github.com/robalobadob/wordle/apps/go-solver/internal/tree"
)

//go:embed decision_tree.json answers.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// AnswersList returns the embedded answer words, lower-cased.
func AnswersList() ([]string, error) {
	return readLines("answers.txt")
}

// DecisionTree decodes the embedded decision tree.
func DecisionTree() (*tree.Tree, error) {
	data, err := FS.ReadFile("decision_tree.json")
	if err != nil {
		return nil, err
	}
	return tree.Decode(bytes.NewReader(data), tree.FormatJSON)
}

// ResolveTree loads the tree at path, or the embedded tree when path is empty.
func ResolveTree(path string) (*tree.Tree, error) {
	if path == "" {
		return DecisionTree()
	}
	return tree.Load(path)
}
