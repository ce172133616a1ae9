// Package players fills in missing player names on video records.
//
// The pass is a data-cleaning heuristic meant to be rerun as a human adds
// confirmed names to the dataset: every player name already present in
// either player column becomes a candidate, and any record whose title
// contains a candidate as a literal substring gets its empty slots filled.
// Names assigned during a pass never become candidates within that same
// pass, so repeated runs converge only through external curation.
package players

import (
	"sort"
	"strings"

	"smashstats/storage"
)

// Snapshot is the immutable set of known player names for one inference
// pass. It is computed once from the entire dataset and never updated while
// the pass runs, so record order cannot influence the outcome.
type Snapshot struct {
	names  []string
	member map[string]bool
}

// NormalizeQuotes collapses literal doubled double-quotes to single ones.
// Curated spreadsheets escape quotes that way, and titles must be matched
// exactly as stored after this normalization.
func NormalizeQuotes(s string) string {
	return strings.ReplaceAll(s, `""`, `"`)
}

// normalizeName prepares a player column value for matching.
func normalizeName(s string) string {
	return strings.TrimSpace(NormalizeQuotes(s))
}

// NewSnapshot collects every distinct non-empty player name currently
// present in either player column of the dataset.
func NewSnapshot(records []*storage.VideoRecord) *Snapshot {
	member := make(map[string]bool)
	for _, rec := range records {
		if name := normalizeName(rec.Player1); name != "" {
			member[name] = true
		}
		if name := normalizeName(rec.Player2); name != "" {
			member[name] = true
		}
	}

	names := make([]string, 0, len(member))
	for name := range member {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Snapshot{names: names, member: member}
}

// Len returns the number of known player names.
func (s *Snapshot) Len() int { return len(s.names) }

// Names returns the known player names in lexicographic order.
func (s *Snapshot) Names() []string { return s.names }

// matchesIn returns the known names occurring as literal substrings of the
// title, in lexicographic order. Sorting fixes the assignment tie-break:
// when several candidates compete for a slot the lexicographically smallest
// wins, which keeps repeated passes reproducible.
func (s *Snapshot) matchesIn(title string) []string {
	var matches []string
	for _, name := range s.names {
		if strings.Contains(title, name) {
			matches = append(matches, name)
		}
	}
	return matches
}

// Infer fills the empty player slots of one record from the snapshot and
// reports whether the record changed.
//
// The record's player columns are quote-normalized and trimmed in place
// first. Filled slots are never overwritten, a record with both slots
// filled is never touched, and the two slots never receive the same name.
// No matches is a normal no-op, not an error.
func Infer(rec *storage.VideoRecord, snap *Snapshot) bool {
	rec.Title = NormalizeQuotes(rec.Title)
	rec.Player1 = normalizeName(rec.Player1)
	rec.Player2 = normalizeName(rec.Player2)

	if rec.Player1 != "" && rec.Player2 != "" {
		return false
	}

	matches := snap.matchesIn(rec.Title)
	if len(matches) == 0 {
		return false
	}

	switch {
	case rec.Player1 == "" && rec.Player2 == "":
		rec.Player1 = matches[0]
		if len(matches) > 1 {
			rec.Player2 = matches[1]
		}
		return true

	case rec.Player1 == "":
		if name, ok := firstExcluding(matches, rec.Player2); ok {
			rec.Player1 = name
			return true
		}

	default: // Player2 == ""
		if name, ok := firstExcluding(matches, rec.Player1); ok {
			rec.Player2 = name
			return true
		}
	}

	return false
}

// firstExcluding returns the first match that differs from the name already
// occupying the other slot.
func firstExcluding(matches []string, taken string) (string, bool) {
	for _, m := range matches {
		if m != taken {
			return m, true
		}
	}
	return "", false
}

// Run performs one full inference pass over the dataset and returns the
// number of records it changed. The snapshot is taken before any record is
// touched, so inferred names do not feed back into the same pass.
func Run(ds *storage.Dataset) int {
	snap := NewSnapshot(ds.Records)

	changed := 0
	for _, rec := range ds.Records {
		if Infer(rec, snap) {
			changed++
		}
	}
	return changed
}
