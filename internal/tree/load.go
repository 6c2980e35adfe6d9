// internal/tree/load.go
//
// Loading decision trees from files, byte slices and readers.
// The format follows the file extension: .json (default) or .yaml/.yml.

package tree

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/blake2b"
	"gopkg.in/yaml.v3"
)

// Format names a serialization of the tree document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat accepts "json", "yaml" or "yml".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("unknown tree format %q", s)
}

// Load reads and decodes the tree stored at path.
func Load(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tree %s: %w", path, err)
	}
	t, err := Parse(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("load tree %s: %w", path, err)
	}
	return t, nil
}

// Parse decodes a tree document held in memory.
func Parse(data []byte, format Format) (*Tree, error) {
	return Decode(bytes.NewReader(data), format)
}

// Decode reads one tree document from r.
func Decode(r io.Reader, format Format) (*Tree, error) {
	t := &Tree{}
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(t); err != nil {
			return nil, fmt.Errorf("decode yaml tree: %w", err)
		}
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(t); err != nil {
			return nil, fmt.Errorf("decode json tree: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown tree format %q", format)
	}
	return t, nil
}

// Encode writes t to w in the given format.
func Encode(w io.Writer, t *Tree, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(t); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON, "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", " ")
		return enc.Encode(t)
	}
	return fmt.Errorf("unknown tree format %q", format)
}

// Fingerprint is a short, stable digest of the tree's canonical JSON form.
// Two trees share a fingerprint iff they hold the same guesses and branches.
func Fingerprint(t *Tree) string {
	data, err := json.Marshal(t)
	if err != nil {
		return ""
	}
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:8])
}
