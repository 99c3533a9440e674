// File path: internal/classify/classify.go

// Package classify annotates references as Mutawatir or Ahad using a small
// curated table.
package classify

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed mutawatir.yaml
var defaultTable []byte

// Grade is the transmission classification of a hadith.
type Grade string

const (
	Mutawatir Grade = "Mutawatir"
	Ahad      Grade = "Ahad"
)

// Entry is one curated Mutawatir hadith.
type Entry struct {
	References []string `yaml:"references"`
	Notes      string   `yaml:"notes"`
}

// Classification is the result of classifying one reference.
type Classification struct {
	Grade Grade  `json:"grade"`
	Notes string `json:"notes,omitempty"`
}

// String renders the classification line shown to users.
func (c Classification) String() string {
	if c.Grade == Mutawatir && c.Notes != "" {
		return fmt.Sprintf("%s (%s)", c.Grade, c.Notes)
	}
	return string(c.Grade)
}

// Classifier is read-only after construction and safe for concurrent use.
type Classifier struct {
	entries []Entry
}

type table struct {
	Entries []Entry `yaml:"entries"`
}

// New returns a classifier over the given entries. Blank references are
// dropped; lookups are case-insensitive.
func New(entries []Entry) *Classifier {
	c := &Classifier{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		refs := make([]string, 0, len(e.References))
		for _, ref := range e.References {
			if trimmed := strings.ToLower(strings.TrimSpace(ref)); trimmed != "" {
				refs = append(refs, trimmed)
			}
		}
		if len(refs) == 0 {
			continue
		}
		c.entries = append(c.entries, Entry{References: refs, Notes: strings.TrimSpace(e.Notes)})
	}
	return c
}

// Parse decodes a YAML table of the shape {entries: [{references, notes}]}.
func Parse(data []byte) (*Classifier, error) {
	var t table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse mutawatir table: %w", err)
	}
	return New(t.Entries), nil
}

// Load reads the table at path, or the embedded table when path is empty.
func Load(path string) (*Classifier, error) {
	if strings.TrimSpace(path) == "" {
		return Parse(defaultTable)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mutawatir table: %w", err)
	}
	return Parse(data)
}

// Len returns the number of curated entries.
func (c *Classifier) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Classify scans the table in order; the first entry with a reference
// contained in ref wins. A reference only counts when it is not directly
// followed or preceded by a letter or digit, so "Sahih Muslim 3" does not
// match "Sahih Muslim 35". Anything else is Ahad.
func (c *Classifier) Classify(ref string) Classification {
	if c == nil {
		return Classification{Grade: Ahad}
	}
	lowered := strings.ToLower(ref)
	for _, e := range c.entries {
		for _, alt := range e.References {
			if containsReference(lowered, alt) {
				return Classification{Grade: Mutawatir, Notes: e.Notes}
			}
		}
	}
	return Classification{Grade: Ahad}
}

func containsReference(s, ref string) bool {
	for from := 0; from <= len(s)-len(ref); {
		i := strings.Index(s[from:], ref)
		if i < 0 {
			return false
		}
		start := from + i
		end := start + len(ref)
		before, _ := utf8.DecodeLastRuneInString(s[:start])
		after, _ := utf8.DecodeRuneInString(s[end:])
		if !isWordRune(before) && !isWordRune(after) {
			return true
		}
		from = start + 1
	}
	return false
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}
