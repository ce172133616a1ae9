// Package characters extracts character names from video titles.
//
// Titles carry the characters in parentheses, e.g. "Alice (Roy) vs Bob
// (Meta Knight, Marth)". Tokens are matched against a curated alias map and
// normalized to canonical names; anything the map does not know is dropped.
package characters

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"smashstats/storage"
)

// AliasMap maps a lowercase raw token to a canonical character name.
type AliasMap map[string]string

// LoadAliasMap reads an alias map file: a JSON object mapping raw names (any
// case) to canonical names. Keys are lowercased before use so matching is
// case-insensitive.
func LoadAliasMap(path string) (AliasMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read alias map %s: %w", path, err)
	}

	raw := make(map[string]string)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse alias map %s: %w", path, err)
	}

	aliases := make(AliasMap, len(raw))
	for k, v := range raw {
		aliases[strings.ToLower(k)] = v
	}
	return aliases, nil
}

var (
	parensRe = regexp.MustCompile(`\((.*?)\)`)
	splitRe  = regexp.MustCompile(`[,/]`)
)

// Extract returns the sorted, comma-joined set of canonical character names
// found in a title, or the empty string when nothing matches.
//
// Every parenthesized substring is split on commas and slashes; each token
// is trimmed, lowercased and looked up in the alias map. Unmatched tokens
// are dropped. The function is pure: the same title and map always produce
// the same result.
func Extract(title string, aliases AliasMap) string {
	found := make(map[string]bool)

	for _, group := range parensRe.FindAllStringSubmatch(title, -1) {
		for _, token := range splitRe.Split(group[1], -1) {
			token = strings.ToLower(strings.TrimSpace(token))
			if canonical, ok := aliases[token]; ok {
				found[canonical] = true
			}
		}
	}

	if len(found) == 0 {
		return ""
	}

	names := make([]string, 0, len(found))
	for name := range found {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// Tag derives the Characters column for every record in the dataset and
// marks the dataset as tagged. Re-tagging an already tagged dataset with the
// same alias map yields identical records.
func Tag(ds *storage.Dataset, aliases AliasMap) {
	for _, rec := range ds.Records {
		rec.Characters = Extract(rec.Title, aliases)
	}
	ds.Tagged = true
}
