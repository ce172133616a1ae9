// Package stats aggregates video counters per player and per character and
// produces ranked statistics tables.
package stats

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"smashstats/storage"
)

// Accum holds the accumulated counters for one entity.
type Accum struct {
	Views    int64
	Likes    int64
	Comments int64
	// Matches is the number of records the entity appears in.
	Matches int64
}

// Aggregate walks the dataset once and accumulates totals per player and per
// character.
//
// Players are keyed by their lowercased name so curation case differences
// merge into one entity; each non-empty player slot counts one match per
// record. Characters are keyed verbatim; each listed character counts one
// match per record. Empty character entries are never aggregated.
func Aggregate(records []*storage.VideoRecord) (players, characters map[string]*Accum) {
	players = make(map[string]*Accum)
	characters = make(map[string]*Accum)

	add := func(m map[string]*Accum, key string, rec *storage.VideoRecord) {
		a := m[key]
		if a == nil {
			a = &Accum{}
			m[key] = a
		}
		a.Views += rec.Views
		a.Likes += rec.Likes
		a.Comments += rec.Comments
		a.Matches++
	}

	for _, rec := range records {
		if p := strings.ToLower(strings.TrimSpace(rec.Player1)); p != "" {
			add(players, p, rec)
		}
		if p := strings.ToLower(strings.TrimSpace(rec.Player2)); p != "" {
			add(players, p, rec)
		}
		for _, ch := range strings.Split(rec.Characters, ", ") {
			if ch = strings.TrimSpace(ch); ch != "" {
				add(characters, ch, rec)
			}
		}
	}

	return players, characters
}

// Table is one ranked statistics table, ready to be written as TSV.
type Table struct {
	// Filename is the table's file name within the statistics directory.
	Filename string
	// Header is the column header row.
	Header []string
	// Rows is the ranked data, highest first.
	Rows [][]string
}

// row pairs formatted cells with the numeric keys used for ranking.
type row struct {
	cells     []string
	primary   float64
	secondary float64
}

// rank sorts rows by primary metric descending, ties by secondary metric
// descending. Remaining ties fall back to the first cell (the entity label)
// ascending so output order is fully deterministic.
func rank(rows []row) [][]string {
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].primary != rows[j].primary {
			return rows[i].primary > rows[j].primary
		}
		if rows[i].secondary != rows[j].secondary {
			return rows[i].secondary > rows[j].secondary
		}
		return rows[i].cells[0] < rows[j].cells[0]
	})

	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = r.cells
	}
	return out
}

var titleCaser = cases.Title(language.Und)

// playerLabel renders a player's aggregation key for display.
func playerLabel(name string) string {
	return titleCaser.String(name)
}

// formatCount renders an integer counter column.
func formatCount(n int64) string {
	return strconv.FormatInt(n, 10)
}

// totalViewsTable builds the total-views table for one entity kind.
// Every entity qualifies; ties on total views break on match count.
func totalViewsTable(entities map[string]*Accum, entityHeader, filename string, label func(string) string) *Table {
	rows := make([]row, 0, len(entities))
	for name, a := range entities {
		rows = append(rows, row{
			cells:     []string{label(name), formatCount(a.Views), formatCount(a.Matches)},
			primary:   float64(a.Views),
			secondary: float64(a.Matches),
		})
	}
	return &Table{
		Filename: filename,
		Header:   []string{entityHeader, "Total Views", "Total Matches"},
		Rows:     rank(rows),
	}
}

// averageViewsTable builds the average-views table. Entities below the
// minimum match count are omitted; the guard also keeps the division safe.
func averageViewsTable(entities map[string]*Accum, minMatches int64, entityHeader, filename string, label func(string) string) *Table {
	var rows []row
	for name, a := range entities {
		if a.Matches < minMatches || a.Matches == 0 {
			continue
		}
		avg := float64(a.Views) / float64(a.Matches)
		rows = append(rows, row{
			cells:     []string{label(name), fmt.Sprintf("%.2f", avg), formatCount(a.Matches)},
			primary:   avg,
			secondary: float64(a.Matches),
		})
	}
	return &Table{
		Filename: filename,
		Header:   []string{entityHeader, "Average Views", "Total Matches"},
		Rows:     rank(rows),
	}
}

// ratioTable builds a per-view ratio table (likes or comments per view).
// Entities whose total views do not exceed minViews are omitted (strict
// comparison), which also guards the division. Ties on the ratio break on
// the raw numerator.
func ratioTable(entities map[string]*Accum, numerator func(*Accum) int64, minViews int64, entityHeader, metricHeader, numeratorHeader, filename string, label func(string) string) *Table {
	var rows []row
	for name, a := range entities {
		if a.Views <= minViews {
			continue
		}
		num := numerator(a)
		ratio := float64(num) / float64(a.Views)
		rows = append(rows, row{
			cells: []string{
				label(name),
				fmt.Sprintf("%.4f", ratio),
				formatCount(num),
				formatCount(a.Views),
			},
			primary:   ratio,
			secondary: float64(num),
		})
	}
	return &Table{
		Filename: filename,
		Header:   []string{entityHeader, metricHeader, numeratorHeader, "Total Views"},
		Rows:     rank(rows),
	}
}

// PlayerTables builds the four ranked player tables. minMatches gates the
// average-views table and minViews gates the ratio tables.
func PlayerTables(players map[string]*Accum, minMatches, minViews int64) []*Table {
	likes := func(a *Accum) int64 { return a.Likes }
	comments := func(a *Accum) int64 { return a.Comments }
	return []*Table{
		totalViewsTable(players, "Player", "total_views_per_player.tsv", playerLabel),
		averageViewsTable(players, minMatches, "Player", "average_views_per_player.tsv", playerLabel),
		ratioTable(players, likes, minViews, "Player", "Likes Per View", "Total Likes", "likes_per_view_per_player.tsv", playerLabel),
		ratioTable(players, comments, minViews, "Player", "Comments Per View", "Total Comments", "comments_per_view_per_player.tsv", playerLabel),
	}
}

// CharacterTables builds the four ranked character tables. Characters have
// no minimum thresholds beyond the zero-denominator guard.
func CharacterTables(characters map[string]*Accum) []*Table {
	verbatim := func(name string) string { return name }
	likes := func(a *Accum) int64 { return a.Likes }
	comments := func(a *Accum) int64 { return a.Comments }
	return []*Table{
		totalViewsTable(characters, "Character", "total_views_per_character.tsv", verbatim),
		averageViewsTable(characters, 0, "Character", "average_views_per_character.tsv", verbatim),
		ratioTable(characters, likes, 0, "Character", "Likes Per View", "Total Likes", "likes_per_view_per_character.tsv", verbatim),
		ratioTable(characters, comments, 0, "Character", "Comments Per View", "Total Comments", "comments_per_view_per_character.tsv", verbatim),
	}
}

// WriteTables writes each table as a TSV file under dir, creating the
// directory if needed.
func WriteTables(dir string, tables []*Table) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create stats dir %s: %w", dir, err)
	}

	for _, table := range tables {
		if err := writeTable(filepath.Join(dir, table.Filename), table); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(path string, table *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := w.WriteString(strings.Join(table.Header, "\t") + "\n"); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	for _, cells := range table.Rows {
		if _, err := w.WriteString(strings.Join(cells, "\t") + "\n"); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
