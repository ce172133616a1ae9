package youtube

import (
	"context"
	"log"
	"sort"

	"smashstats/storage"
)

// DefaultBatchSize is the maximum number of video IDs per statistics call
// allowed by the Data API.
const DefaultBatchSize = 50

// Fetcher walks playlists and collects one VideoRecord per reachable video.
type Fetcher struct {
	// API performs the playlist listing and statistics calls.
	API PlaylistAPI
	// BatchSize is the number of video IDs per statistics request.
	// Zero means DefaultBatchSize. Values above 50 are capped.
	BatchSize int
}

// NewFetcher creates a fetcher on top of the given API.
func NewFetcher(api PlaylistAPI) *Fetcher {
	return &Fetcher{API: api, BatchSize: DefaultBatchSize}
}

// Fetch retrieves statistics for every video in every playlist.
//
// Playlists are processed in sorted-ID order so runs are comparable.
// A failing playlist is logged and skipped; the remaining playlists still
// run. The returned slice collects one FetchError per skipped playlist.
// Record order within a playlist follows the API response order.
func (f *Fetcher) Fetch(ctx context.Context, playlists map[string]string) (*storage.Dataset, []*FetchError) {
	ids := make([]string, 0, len(playlists))
	for id := range playlists {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	ds := &storage.Dataset{}
	var failed []*FetchError

	for _, playlistID := range ids {
		title := playlists[playlistID]
		log.Printf("youtube: processing playlist %s - %s", playlistID, title)

		records, err := f.fetchPlaylist(ctx, playlistID, title)
		if err != nil {
			log.Printf("youtube: error processing playlist %s: %v", playlistID, err)
			failed = append(failed, &FetchError{PlaylistID: playlistID, Err: err})
			continue
		}

		log.Printf("youtube: playlist %s: %d videos", playlistID, len(records))
		ds.Records = append(ds.Records, records...)
	}

	return ds, failed
}

// fetchPlaylist lists all video IDs of one playlist and resolves their
// statistics in batches.
func (f *Fetcher) fetchPlaylist(ctx context.Context, playlistID, playlistTitle string) ([]*storage.VideoRecord, error) {
	batchSize := f.BatchSize
	if batchSize <= 0 || batchSize > DefaultBatchSize {
		batchSize = DefaultBatchSize
	}

	var videoIDs []string
	pageToken := ""
	for {
		ids, next, err := f.API.PlaylistVideoIDs(ctx, playlistID, pageToken, int64(batchSize))
		if err != nil {
			return nil, err
		}
		videoIDs = append(videoIDs, ids...)
		if next == "" {
			break
		}
		pageToken = next
	}

	var records []*storage.VideoRecord
	for start := 0; start < len(videoIDs); start += batchSize {
		end := start + batchSize
		if end > len(videoIDs) {
			end = len(videoIDs)
		}

		stats, err := f.API.VideoStats(ctx, videoIDs[start:end])
		if err != nil {
			return nil, err
		}

		for _, vs := range stats {
			records = append(records, &storage.VideoRecord{
				PlaylistTitle: playlistTitle,
				PlaylistID:    playlistID,
				Title:         vs.Title,
				VideoID:       vs.ID,
				Views:         vs.Views,
				Likes:         vs.Likes,
				Comments:      vs.Comments,
			})
		}
	}

	return records, nil
}
