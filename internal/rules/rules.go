package rules

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/triage/internal/domain"
)

// Purpose selects a keyword set in the table.
type Purpose string

const (
	PurposeHigh      Purpose = "high"
	PurposeMedium    Purpose = "medium"
	PurposeUrgent    Purpose = "urgent"
	PurposeDelay     Purpose = "delay"
	PurposeAttention Purpose = "attention"
	PurposeLow       Purpose = "low"
	PurposeVIP       Purpose = "vip"
)

var purposes = []Purpose{
	PurposeHigh, PurposeMedium, PurposeUrgent, PurposeDelay,
	PurposeAttention, PurposeLow, PurposeVIP,
}

//go:embed default.yaml
var defaultYAML []byte

// Table is the shared rule table. It is read-only after loading.
type Table struct {
	Version    int                        `yaml:"version"`
	Keywords   map[Purpose][]string       `yaml:"keywords"`
	Tones      map[domain.Tone]string     `yaml:"tones"`
	Categories map[domain.Category]string `yaml:"categories"`
}

// Default returns the table compiled into the binary.
func Default() *Table {
	t, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded rule table: %v", err))
	}
	return t
}

// Load reads a rule table from path, or returns the embedded table when path
// is empty.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("rules %s: %w", path, err)
	}
	return t, nil
}

func Parse(data []byte) (*Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	if err := t.validate(); err != nil {
		return nil, err
	}
	for p, words := range t.Keywords {
		lowered := make([]string, 0, len(words))
		for _, w := range words {
			if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
				lowered = append(lowered, w)
			}
		}
		t.Keywords[p] = lowered
	}
	return &t, nil
}

func (t *Table) validate() error {
	if t.Version < 1 {
		return fmt.Errorf("rules: unsupported version %d", t.Version)
	}
	for _, p := range purposes {
		if len(t.Keywords[p]) == 0 {
			return fmt.Errorf("rules: keyword set %q is empty", p)
		}
	}
	for _, tone := range domain.Tones {
		if strings.TrimSpace(t.Tones[tone]) == "" {
			return fmt.Errorf("rules: missing instructions for tone %q", tone)
		}
	}
	for _, c := range domain.Categories {
		if strings.TrimSpace(t.Categories[c]) == "" {
			return fmt.Errorf("rules: missing description for category %q", c)
		}
	}
	return nil
}

// Match returns the keywords of purpose p found in text, in table order.
// Matching is substring based, so "down" also matches "download".
func (t *Table) Match(p Purpose, text string) []string {
	lower := strings.ToLower(text)
	var hits []string
	for _, kw := range t.Keywords[p] {
		if strings.Contains(lower, kw) {
			hits = append(hits, kw)
		}
	}
	return hits
}

// Contains reports whether any keyword of purpose p occurs in text.
func (t *Table) Contains(p Purpose, text string) bool {
	lower := strings.ToLower(text)
	for _, kw := range t.Keywords[p] {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// ToneInstruction returns the prompt instructions for tone, falling back to
// the professional instructions.
func (t *Table) ToneInstruction(tone domain.Tone) string {
	if s, ok := t.Tones[tone]; ok {
		return s
	}
	return t.Tones[domain.ToneProfessional]
}

func (t *Table) CategoryDescription(c domain.Category) string {
	return t.Categories[c]
}
