/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package markers

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// Category groups markers for display.
type Category string

// Category values used by the built-in table.
const (
	CategoryBloodChemistry Category = "Blood Chemistry"
	CategoryLipidPanel     Category = "Lipid Panel"
	CategoryBloodCounts    Category = "Blood Counts"
	CategoryThyroid        Category = "Thyroid Function"
	CategoryLiver          Category = "Liver Function"
	CategoryKidney         Category = "Kidney Function"
	CategoryVitamins       Category = "Vitamins & Minerals"
	CategoryInflammatory   Category = "Inflammatory Markers"
	CategoryCardiac        Category = "Cardiac Markers"
)

// MarkerDefinition describes a known marker: the names it appears under, its
// unit spellings and the bounds of its normal range. A nil bound is open.
type MarkerDefinition struct {
	Name               string   `yaml:"name" json:"name"`
	Category           Category `yaml:"category" json:"category,omitempty"`
	Aliases            []string `yaml:"aliases" json:"aliases"`
	Unit               string   `yaml:"unit" json:"unit"`
	UnitAliases        []string `yaml:"unit_aliases" json:"unitAliases"`
	Low                *float64 `yaml:"low" json:"low,omitempty"`
	High               *float64 `yaml:"high" json:"high,omitempty"`
	RecommendationLow  string   `yaml:"recommendation_low" json:"recommendationLow,omitempty"`
	RecommendationHigh string   `yaml:"recommendation_high" json:"recommendationHigh,omitempty"`
}

// Classify returns the status of value against the definition bounds.
func (d *MarkerDefinition) Classify(value float64) Status {
	if d.Low != nil && value < *d.Low {
		return StatusLow
	}

	if d.High != nil && value > *d.High {
		return StatusHigh
	}

	return StatusNormal
}

// NormalRange renders the bounds as "low-high", ">=low" or "<=high".
func (d *MarkerDefinition) NormalRange() string {
	switch {
	case d.Low != nil && d.High != nil:
		return formatValue(*d.Low) + "-" + formatValue(*d.High)
	case d.Low != nil:
		return ">=" + formatValue(*d.Low)
	case d.High != nil:
		return "<=" + formatValue(*d.High)
	default:
		return ""
	}
}

// Recommendation returns the guidance text for a status. Normal readings carry
// no recommendation; flagged readings fall back to a generic text.
func (d *MarkerDefinition) Recommendation(status Status, value float64, unit string) string {
	var text string

	switch status {
	case StatusLow:
		text = d.RecommendationLow
	case StatusHigh:
		text = d.RecommendationHigh
	default:
		return ""
	}

	if text != "" {
		return text
	}

	return fmt.Sprintf("Your %s level is %s (%s %s). Please consult with your healthcare provider "+
		"for personalized recommendations and to determine if further testing or treatment is needed.",
		d.Name, status, formatValue(value), unit)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type aliasEntry struct {
	pattern string
	def     int
}

// Table is an immutable, validated set of marker definitions. It is safe for
// concurrent use.
type Table struct {
	defs    []MarkerDefinition
	byName  map[string]int
	aliases []aliasEntry
	units   [][]string
}

// NewTable validates the definitions and builds the alias index. The
// definitions are copied, so later changes by the caller have no effect.
func NewTable(defs []MarkerDefinition) (*Table, error) {
	if len(defs) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		defs:   make([]MarkerDefinition, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
		units:  make([][]string, 0, len(defs)),
	}
	aliasOwner := make(map[string]int)

	for _, def := range defs {
		def = cloneDefinition(def)
		def.Name = strings.TrimSpace(def.Name)
		def.Unit = strings.TrimSpace(def.Unit)

		if def.Name == "" {
			return nil, ErrMissingName
		}

		key := normalizeAlias(def.Name)
		if _, exists := t.byName[key]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateMarker, def.Name)
		}

		if def.Unit == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingUnit, def.Name)
		}

		if def.Low == nil && def.High == nil {
			return nil, fmt.Errorf("%w: %s", ErrNoBounds, def.Name)
		}

		if def.Low != nil && def.High != nil && *def.Low > *def.High {
			return nil, fmt.Errorf("%w: %s (%v > %v)", ErrInvalidRange, def.Name, *def.Low, *def.High)
		}

		idx := len(t.defs)
		t.defs = append(t.defs, def)
		t.byName[key] = idx

		for _, alias := range append([]string{def.Name}, def.Aliases...) {
			pattern := normalizeAlias(alias)
			if pattern == "" {
				continue
			}

			if owner, exists := aliasOwner[pattern]; exists {
				if owner == idx {
					continue
				}

				return nil, fmt.Errorf("%w: %q (%s, %s)", ErrDuplicateAlias, alias, t.defs[owner].Name, def.Name)
			}

			aliasOwner[pattern] = idx
			t.aliases = append(t.aliases, aliasEntry{pattern: pattern, def: idx})
		}

		t.units = append(t.units, unitCandidates(def))
	}

	// Longest alias first; ties broken by marker then alias so scan order is
	// independent of the input order.
	sort.SliceStable(t.aliases, func(i, j int) bool {
		a, b := t.aliases[i], t.aliases[j]
		if len(a.pattern) != len(b.pattern) {
			return len(a.pattern) > len(b.pattern)
		}

		if a.def != b.def {
			return t.defs[a.def].Name < t.defs[b.def].Name
		}

		return a.pattern < b.pattern
	})

	return t, nil
}

// Definitions returns a copy of the definitions in table order.
func (t *Table) Definitions() []MarkerDefinition {
	out := make([]MarkerDefinition, len(t.defs))
	for i, def := range t.defs {
		out[i] = cloneDefinition(def)
	}

	return out
}

// Lookup finds a definition by canonical name, case-insensitively.
func (t *Table) Lookup(name string) (MarkerDefinition, bool) {
	idx, ok := t.byName[normalizeAlias(name)]
	if !ok {
		return MarkerDefinition{}, false
	}

	return cloneDefinition(t.defs[idx]), true
}

// Len returns the number of definitions.
func (t *Table) Len() int {
	return len(t.defs)
}

type definitionFile struct {
	Markers []MarkerDefinition `yaml:"markers"`
}

// LoadTable reads a YAML definition file and validates it.
func LoadTable(r io.Reader) (*Table, error) {
	var file definitionFile

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyTable
		}

		return nil, fmt.Errorf("failed to decode marker definitions: %w", err)
	}

	if file.Markers == nil {
		return nil, errDefinitionsMissing
	}

	return NewTable(file.Markers)
}

//go:embed markers.yaml
var builtinDefinitions []byte

var (
	defaultOnce  sync.Once
	defaultTable *Table
)

// DefaultTable returns the built-in marker table. It panics if the embedded
// definitions are invalid, which a test guards against.
func DefaultTable() *Table {
	defaultOnce.Do(func() {
		table, err := LoadTable(bytes.NewReader(builtinDefinitions))
		if err != nil {
			panic(fmt.Sprintf("built-in marker definitions are invalid: %v", err))
		}

		defaultTable = table
	})

	return defaultTable
}

func cloneDefinition(def MarkerDefinition) MarkerDefinition {
	out := def
	out.Aliases = append([]string(nil), def.Aliases...)
	out.UnitAliases = append([]string(nil), def.UnitAliases...)

	if def.Low != nil {
		low := *def.Low
		out.Low = &low
	}

	if def.High != nil {
		high := *def.High
		out.High = &high
	}

	return out
}

// unitCandidates returns the accepted unit spellings, longest first.
func unitCandidates(def MarkerDefinition) []string {
	seen := make(map[string]bool)

	var out []string

	for _, u := range append([]string{def.Unit}, def.UnitAliases...) {
		u = strings.TrimSpace(u)
		if u == "" || seen[u] {
			continue
		}

		seen[u] = true
		out = append(out, u)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})

	return out
}

// normalizeAlias collapses whitespace and upper-cases ASCII letters, matching
// the transformation applied to input text.
func normalizeAlias(alias string) string {
	return upperASCII(strings.TrimSpace(collapseWhitespace(alias)))
}
