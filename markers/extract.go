/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package markers

import (
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultLookahead is how far past the end of a marker name a reading may start.
const DefaultLookahead = 80

// Extractor finds marker readings in free text. It holds no per-call state and
// is safe for concurrent use.
type Extractor struct {
	table     *Table
	lookahead int
}

// NewExtractor returns an extractor over the given table.
func NewExtractor(table *Table) *Extractor {
	return &Extractor{table: table, lookahead: DefaultLookahead}
}

// Table returns the definition table used by the extractor.
func (e *Extractor) Table() *Table {
	return e.table
}

// Extract runs the built-in table over text.
func Extract(text string) *ExtractionResult {
	return NewExtractor(DefaultTable()).Extract(text)
}

type span struct {
	start int
	end   int
}

type occurrence struct {
	span
	entry int
}

type match struct {
	start  int
	marker ExtractedMarker
}

// Extract locates every marker reading in text. Text without recognizable
// readings yields an empty result, never an error.
func (e *Extractor) Extract(text string) *ExtractionResult {
	result := &ExtractionResult{
		SourceText: text,
		TextLength: utf8.RuneCountInString(text),
		Markers:    []ExtractedMarker{},
	}

	work := collapseWhitespace(text)
	upper := upperASCII(work)

	occurrences := e.findOccurrences(upper)
	starts := make([]int, 0, len(occurrences))

	for _, occ := range occurrences {
		starts = append(starts, occ.start)
	}

	sort.Ints(starts)

	// consumed marks every byte of work already claimed by a match.
	consumed := make([]bool, len(work))

	var matches []match

	// occurrences are already grouped longest alias first
	for _, occ := range occurrences {
		if isConsumed(consumed, occ.span) {
			continue
		}

		limit := occ.end + e.lookahead
		if next := nextStart(starts, occ.end); next < limit {
			limit = next
		}

		if limit > len(work) {
			limit = len(work)
		}

		def := &e.table.defs[e.table.aliases[occ.entry].def]
		units := e.table.units[e.table.aliases[occ.entry].def]

		r, ok := findReading(work, upper, occ.end, limit, units)
		if !ok {
			continue
		}

		matched := span{start: occ.start, end: r.end}
		if isConsumed(consumed, matched) {
			continue
		}

		for k := matched.start; k < matched.end; k++ {
			consumed[k] = true
		}

		unit := r.unit
		if unit == "" {
			unit = def.Unit
		}

		status := def.Classify(r.value)
		matches = append(matches, match{
			start: occ.start,
			marker: ExtractedMarker{
				Name:           def.Name,
				Value:          r.value,
				Unit:           unit,
				NormalRange:    def.NormalRange(),
				Status:         status,
				Recommendation: def.Recommendation(status, r.value, unit),
			},
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].start < matches[j].start
	})

	for _, m := range matches {
		result.Markers = append(result.Markers, m.marker)
	}

	result.MarkersFound = len(result.Markers)

	return result
}

// findOccurrences returns every word-bounded alias occurrence, ordered by
// alias priority and then by position.
func (e *Extractor) findOccurrences(upper string) []occurrence {
	var out []occurrence

	for i, entry := range e.table.aliases {
		offset := 0

		for offset < len(upper) {
			idx := strings.Index(upper[offset:], entry.pattern)
			if idx < 0 {
				break
			}

			start := offset + idx
			end := start + len(entry.pattern)

			if isBoundary(upper, start-1) && isBoundary(upper, end) {
				out = append(out, occurrence{span: span{start: start, end: end}, entry: i})
			}

			offset = start + 1
		}
	}

	return out
}

type reading struct {
	value float64
	unit  string
	end   int
}

// findReading scans work[from:limit] for the first numeric literal and an
// optional unit directly after it. A literal that is negative, uses thousands
// separators or scientific notation makes the occurrence unmatched.
func findReading(work, upper string, from, limit int, units []string) (reading, bool) {
	i := from
	for i < limit {
		c := upper[i]

		if isLetter(c) {
			// skip whole tokens so digits inside names like A1C are ignored
			for i < len(upper) && isWordByte(upper[i]) {
				i++
			}

			continue
		}

		if !isDigit(c) {
			i++
			continue
		}

		start := i
		if hasLeadingPoint(work, from, i) {
			start = i - 1
		}

		if isNegativeSign(work, start) {
			return reading{}, false
		}

		j := i
		for j < len(work) && isDigit(work[j]) {
			j++
		}

		if start == i && j+1 < len(work) && work[j] == '.' && isDigit(work[j+1]) {
			j++
			for j < len(work) && isDigit(work[j]) {
				j++
			}
		}

		if hasThousandsSeparator(work, j) || hasExponent(work, j) {
			return reading{}, false
		}

		value, err := strconv.ParseFloat(work[start:j], 64)
		if err != nil {
			return reading{}, false
		}

		r := reading{value: value, end: j}
		if unit, end, ok := matchUnit(work, j, units); ok {
			r.unit = unit
			r.end = end
		}

		return r, true
	}

	return reading{}, false
}

func matchUnit(work string, pos int, units []string) (string, int, bool) {
	k := pos
	if k < len(work) && work[k] == ' ' {
		k++
	}

	for _, u := range units {
		if !strings.HasPrefix(work[k:], u) {
			continue
		}

		end := k + len(u)
		if end < len(work) && isWordByte(work[end]) && isWordByte(work[end-1]) {
			continue
		}

		return u, end, true
	}

	return "", 0, false
}

// isNegativeSign reports whether the literal at i carries a leading minus. A
// hyphen glued to a preceding digit or letter is a range or separator; any
// other hyphen touching the literal, including the last of a "--" run, is a
// sign.
func isNegativeSign(work string, i int) bool {
	if i == 0 || work[i-1] != '-' {
		return false
	}

	if i-1 == 0 {
		return true
	}

	return !isWordByte(work[i-2])
}

// hasLeadingPoint reports whether the digit at i is the start of a fraction
// written without its integer part, as in ".5".
func hasLeadingPoint(work string, from, i int) bool {
	if i-1 < from || work[i-1] != '.' {
		return false
	}

	return i-2 < 0 || !isDigit(work[i-2])
}

func hasThousandsSeparator(work string, j int) bool {
	if j+3 >= len(work) || work[j] != ',' {
		return false
	}

	for k := j + 1; k <= j+3; k++ {
		if !isDigit(work[k]) {
			return false
		}
	}

	return j+4 == len(work) || !isDigit(work[j+4])
}

func hasExponent(work string, j int) bool {
	if j >= len(work) || (work[j] != 'e' && work[j] != 'E') {
		return false
	}

	k := j + 1
	if k < len(work) && (work[k] == '+' || work[k] == '-') {
		k++
	}

	return k < len(work) && isDigit(work[k])
}

func isConsumed(consumed []bool, s span) bool {
	for k := s.start; k < s.end; k++ {
		if consumed[k] {
			return true
		}
	}

	return false
}

// nextStart returns the first occurrence start at or after pos.
func nextStart(starts []int, pos int) int {
	idx := sort.SearchInts(starts, pos)
	if idx == len(starts) {
		return int(^uint(0) >> 1)
	}

	return starts[idx]
}

func isBoundary(s string, i int) bool {
	return i < 0 || i >= len(s) || !isWordByte(s[i])
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isWordByte(c byte) bool {
	return isLetter(c) || isDigit(c)
}

// collapseWhitespace folds each whitespace run into one space, or one newline
// when the run spans lines.
func collapseWhitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inRun := false
	newline := false

	flush := func() {
		if !inRun {
			return
		}

		if newline {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}

		inRun = false
		newline = false
	}

	for _, r := range s {
		if unicode.IsSpace(r) {
			inRun = true
			if r == '\n' || r == '\r' {
				newline = true
			}

			continue
		}

		flush()
		b.WriteRune(r)
	}

	flush()

	return b.String()
}

// upperASCII upper-cases ASCII letters only, so byte offsets are preserved.
func upperASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}

	return string(b)
}
