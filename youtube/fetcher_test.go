package youtube

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

// fakeAPI serves canned playlists with paginated ID listing and batched
// statistics lookups.
type fakeAPI struct {
	playlists map[string][]VideoStats
	pageSize  int

	idCalls    int
	statsCalls []int // batch sizes seen by VideoStats
	failStats  map[string]error
}

func (f *fakeAPI) PlaylistVideoIDs(ctx context.Context, playlistID, pageToken string, maxResults int64) ([]string, string, error) {
	f.idCalls++
	videos, ok := f.playlists[playlistID]
	if !ok {
		return nil, "", ErrPlaylistNotFound
	}

	start := 0
	if pageToken != "" {
		fmt.Sscanf(pageToken, "page-%d", &start)
	}
	pageSize := f.pageSize
	if pageSize == 0 {
		pageSize = int(maxResults)
	}

	end := start + pageSize
	next := ""
	if end >= len(videos) {
		end = len(videos)
	} else {
		next = fmt.Sprintf("page-%d", end)
	}

	ids := make([]string, 0, end-start)
	for _, v := range videos[start:end] {
		ids = append(ids, v.ID)
	}
	return ids, next, nil
}

func (f *fakeAPI) VideoStats(ctx context.Context, ids []string) ([]VideoStats, error) {
	f.statsCalls = append(f.statsCalls, len(ids))

	byID := make(map[string]VideoStats)
	for _, videos := range f.playlists {
		for _, v := range videos {
			byID[v.ID] = v
		}
	}
	for id, err := range f.failStats {
		for _, want := range ids {
			if id == want {
				return nil, err
			}
		}
	}

	var stats []VideoStats
	for _, id := range ids {
		if v, ok := byID[id]; ok {
			stats = append(stats, v)
		}
	}
	return stats, nil
}

func makeVideos(prefix string, n int) []VideoStats {
	videos := make([]VideoStats, n)
	for i := range videos {
		videos[i] = VideoStats{
			ID:    fmt.Sprintf("%s-%03d", prefix, i),
			Title: fmt.Sprintf("%s match %d", prefix, i),
			Views: int64(100 * (i + 1)),
			Likes: int64(i + 1),
		}
	}
	return videos
}

func TestFetch_PaginatesAndBatches(t *testing.T) {
	api := &fakeAPI{
		playlists: map[string][]VideoStats{"PL1": makeVideos("a", 120)},
		pageSize:  50,
	}
	f := NewFetcher(api)

	ds, failed := f.Fetch(context.Background(), map[string]string{"PL1": "List One"})

	if len(failed) != 0 {
		t.Fatalf("Fetch() reported %d failures, want 0", len(failed))
	}
	if len(ds.Records) != 120 {
		t.Fatalf("Fetch() produced %d records, want 120", len(ds.Records))
	}
	// 120 ids at 50 per page is 3 pages, then 3 statistics batches.
	if api.idCalls != 3 {
		t.Errorf("PlaylistVideoIDs called %d times, want 3", api.idCalls)
	}
	if len(api.statsCalls) != 3 || api.statsCalls[0] != 50 || api.statsCalls[2] != 20 {
		t.Errorf("VideoStats batch sizes = %v, want [50 50 20]", api.statsCalls)
	}

	first := ds.Records[0]
	if first.PlaylistID != "PL1" || first.PlaylistTitle != "List One" {
		t.Errorf("record playlist fields = %q/%q, want PL1/List One", first.PlaylistID, first.PlaylistTitle)
	}
	if first.Player1 != "" || first.Player2 != "" || first.Characters != "" {
		t.Error("fetched records must leave player and character fields empty")
	}
}

func TestFetch_SortsPlaylistsByID(t *testing.T) {
	api := &fakeAPI{
		playlists: map[string][]VideoStats{
			"PLb": makeVideos("b", 1),
			"PLa": makeVideos("a", 1),
			"PLc": makeVideos("c", 1),
		},
	}
	f := NewFetcher(api)

	ds, _ := f.Fetch(context.Background(), map[string]string{
		"PLb": "B", "PLa": "A", "PLc": "C",
	})

	got := []string{ds.Records[0].PlaylistID, ds.Records[1].PlaylistID, ds.Records[2].PlaylistID}
	want := []string{"PLa", "PLb", "PLc"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("playlist order = %v, want %v", got, want)
		}
	}
}

func TestFetch_ContinuesPastFailedPlaylist(t *testing.T) {
	api := &fakeAPI{
		playlists: map[string][]VideoStats{
			"PL1": makeVideos("a", 2),
			"PL3": makeVideos("c", 3),
		},
	}
	f := NewFetcher(api)

	ds, failed := f.Fetch(context.Background(), map[string]string{
		"PL1": "One",
		"PL2": "Missing",
		"PL3": "Three",
	})

	if len(ds.Records) != 5 {
		t.Errorf("Fetch() produced %d records, want 5", len(ds.Records))
	}
	if len(failed) != 1 {
		t.Fatalf("Fetch() reported %d failures, want 1", len(failed))
	}
	if failed[0].PlaylistID != "PL2" {
		t.Errorf("failed playlist = %s, want PL2", failed[0].PlaylistID)
	}
	if !errors.Is(failed[0], ErrPlaylistNotFound) {
		t.Errorf("failure = %v, want ErrPlaylistNotFound", failed[0])
	}
}

func TestFetch_StatsErrorSkipsPlaylist(t *testing.T) {
	statsErr := errors.New("boom")
	api := &fakeAPI{
		playlists: map[string][]VideoStats{
			"PL1": makeVideos("a", 2),
			"PL2": makeVideos("b", 2),
		},
		failStats: map[string]error{"b-000": statsErr},
	}
	f := NewFetcher(api)

	ds, failed := f.Fetch(context.Background(), map[string]string{"PL1": "One", "PL2": "Two"})

	if len(ds.Records) != 2 {
		t.Errorf("Fetch() produced %d records, want 2", len(ds.Records))
	}
	if len(failed) != 1 || !errors.Is(failed[0], statsErr) {
		t.Errorf("failures = %v, want one wrapping %v", failed, statsErr)
	}
}

func TestFetch_SkipsVideosAbsentFromStats(t *testing.T) {
	// One of the listed IDs is never returned by the statistics call, the
	// way private or deleted videos behave.
	api := &fakeAPI{playlists: map[string][]VideoStats{"PL1": makeVideos("a", 3)}}
	f := NewFetcher(&ghostAPI{fakeAPI: api, known: map[string]bool{"a-000": true, "a-002": true}})

	ds, failed := f.Fetch(context.Background(), map[string]string{"PL1": "One"})

	if len(failed) != 0 {
		t.Fatalf("Fetch() reported %d failures, want 0", len(failed))
	}
	if len(ds.Records) != 2 {
		t.Errorf("Fetch() produced %d records, want 2", len(ds.Records))
	}
}

// ghostAPI lists all IDs but only resolves statistics for known ones.
type ghostAPI struct {
	*fakeAPI
	known map[string]bool
}

func (g *ghostAPI) VideoStats(ctx context.Context, ids []string) ([]VideoStats, error) {
	kept := make([]string, 0, len(ids))
	for _, id := range ids {
		if g.known[id] {
			kept = append(kept, id)
		}
	}
	return g.fakeAPI.VideoStats(ctx, kept)
}
