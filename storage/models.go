package storage

// VideoRecord is one row of the video statistics dataset.
// It is created by the fetcher with empty player and character fields;
// the tagger fills Characters and the inferrer fills Player1/Player2.
// A record is identified by its VideoID.
type VideoRecord struct {
	// PlaylistTitle is the human-readable title of the source playlist.
	PlaylistTitle string
	// PlaylistID is the YouTube playlist ID the video was found in.
	PlaylistID string
	// Title is the video title as returned by the API.
	Title string
	// VideoID is the YouTube video ID (e.g., "dQw4w9WgXcQ").
	VideoID string
	// Player1 and Player2 are the competitors, empty until curated or inferred.
	Player1 string
	Player2 string
	// Characters is the sorted, comma-joined list of canonical character
	// names extracted from the title. Empty until the tagger runs.
	Characters string
	// Views, Likes and Comments are the raw counters from the statistics API.
	Views    int64
	Likes    int64
	Comments int64
}

// Dataset is a complete generation of the statistics file.
// Tagged records whether the Characters column has been derived; it selects
// the header written on save ("Characters" vs "Characters (Extracted)").
type Dataset struct {
	Records []*VideoRecord
	Tagged  bool
}

// SkipReport describes a data row that was skipped while loading a dataset.
// Malformed rows are reported rather than silently dropped or treated as
// fatal, so callers can surface or count them.
type SkipReport struct {
	// Line is the 1-based line number in the source file.
	Line int
	// Reason describes why the row was skipped.
	Reason string
}
