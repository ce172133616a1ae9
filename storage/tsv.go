package storage

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Column layout of the dataset file. The Characters column is renamed once
// the tagger has derived it, so the header records which generation this is.
const (
	headerRaw    = "Playlist title\tPlaylist ID\tVideo title\tVideo ID\tPlayer 1\tPlayer 2\tCharacters\tViews\tLikes\tComments"
	headerTagged = "Playlist title\tPlaylist ID\tVideo title\tVideo ID\tPlayer 1\tPlayer 2\tCharacters (Extracted)\tViews\tLikes\tComments"

	numColumns = 10
)

// Header returns the header row for a dataset, depending on whether the
// Characters column has been derived yet.
func Header(tagged bool) string {
	if tagged {
		return headerTagged
	}
	return headerRaw
}

// Load reads a dataset file. Malformed data rows are skipped and reported,
// not treated as fatal; only a missing file or an unrecognized header row
// fails the load.
func Load(path string) (*Dataset, []SkipReport, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, &StorageError{Op: "load", Path: path, Err: ErrNotFound}
		}
		return nil, nil, &StorageError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, &StorageError{Op: "load", Path: path, Err: err}
		}
		return nil, nil, &StorageError{Op: "load", Path: path, Err: ErrBadHeader}
	}

	ds := &Dataset{}
	switch strings.TrimRight(scanner.Text(), "\r") {
	case headerRaw:
		ds.Tagged = false
	case headerTagged:
		ds.Tagged = true
	default:
		return nil, nil, &StorageError{Op: "load", Path: path, Err: ErrBadHeader}
	}

	var skipped []SkipReport
	line := 1
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}

		rec, reason := parseRow(text)
		if rec == nil {
			skipped = append(skipped, SkipReport{Line: line, Reason: reason})
			continue
		}
		ds.Records = append(ds.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, &StorageError{Op: "load", Path: path, Err: err}
	}

	return ds, skipped, nil
}

// parseRow converts one data line into a record. It returns a nil record and
// a reason when the row is malformed.
func parseRow(text string) (*VideoRecord, string) {
	fields := strings.Split(text, "\t")
	if len(fields) != numColumns {
		return nil, fmt.Sprintf("expected %d columns, got %d", numColumns, len(fields))
	}

	views, err := parseCount(fields[7])
	if err != nil {
		return nil, fmt.Sprintf("bad views %q", fields[7])
	}
	likes, err := parseCount(fields[8])
	if err != nil {
		return nil, fmt.Sprintf("bad likes %q", fields[8])
	}
	comments, err := parseCount(fields[9])
	if err != nil {
		return nil, fmt.Sprintf("bad comments %q", fields[9])
	}

	return &VideoRecord{
		PlaylistTitle: fields[0],
		PlaylistID:    fields[1],
		Title:         fields[2],
		VideoID:       fields[3],
		Player1:       fields[4],
		Player2:       fields[5],
		Characters:    fields[6],
		Views:         views,
		Likes:         likes,
		Comments:      comments,
	}, ""
}

// parseCount parses a non-negative counter column.
func parseCount(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative count %d", n)
	}
	return n, nil
}

// Save writes a complete dataset generation atomically: the rows go to a
// uniquely named temp file in the target directory, which is then renamed
// over the destination.
func Save(path string, ds *Dataset) error {
	if ds == nil {
		return &StorageError{Op: "save", Path: path, Err: ErrInvalidInput}
	}

	dir := filepath.Dir(path)
	tmp := filepath.Join(dir, fmt.Sprintf("%s.%s.tmp", filepath.Base(path), uuid.NewString()))

	f, err := os.Create(tmp)
	if err != nil {
		return &StorageError{Op: "save", Path: path, Err: err}
	}

	w := bufio.NewWriter(f)
	writeErr := func() error {
		if _, err := w.WriteString(Header(ds.Tagged) + "\n"); err != nil {
			return err
		}
		for _, rec := range ds.Records {
			if _, err := w.WriteString(formatRow(rec) + "\n"); err != nil {
				return err
			}
		}
		return w.Flush()
	}()

	if closeErr := f.Close(); writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		os.Remove(tmp)
		return &StorageError{Op: "save", Path: path, Err: writeErr}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return &StorageError{Op: "save", Path: path, Err: err}
	}
	return nil
}

// formatRow renders one record as a TSV line. Tabs and newlines embedded in
// text fields are replaced with spaces; there is no further quoting.
func formatRow(rec *VideoRecord) string {
	fields := []string{
		Sanitize(rec.PlaylistTitle),
		Sanitize(rec.PlaylistID),
		Sanitize(rec.Title),
		Sanitize(rec.VideoID),
		Sanitize(rec.Player1),
		Sanitize(rec.Player2),
		Sanitize(rec.Characters),
		strconv.FormatInt(rec.Views, 10),
		strconv.FormatInt(rec.Likes, 10),
		strconv.FormatInt(rec.Comments, 10),
	}
	return strings.Join(fields, "\t")
}

// Sanitize makes a text value safe to embed in a TSV field.
func Sanitize(s string) string {
	r := strings.NewReplacer("\t", " ", "\n", " ", "\r", " ")
	return r.Replace(s)
}
