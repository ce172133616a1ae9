// Package youtube retrieves per-video statistics from YouTube playlists.
package youtube

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for playlist operations.
var (
	ErrPlaylistNotFound = errors.New("youtube: playlist not found")
	ErrQuotaExceeded    = errors.New("youtube: quota exceeded")
	ErrNetworkTimeout   = errors.New("youtube: network timeout")
)

// PlaylistAPI defines the two operations the fetcher needs from the YouTube
// Data API: listing the video IDs of a playlist page by page, and fetching
// statistics for a batch of video IDs.
type PlaylistAPI interface {
	// PlaylistVideoIDs fetches one page of video IDs from a playlist.
	// It returns the IDs, plus the token for the next page; an empty token
	// means pagination is complete.
	PlaylistVideoIDs(ctx context.Context, playlistID, pageToken string, maxResults int64) ([]string, string, error)

	// VideoStats fetches title and counters for a batch of video IDs
	// (at most 50 per call). Results preserve API response order. IDs the
	// API does not return (private or deleted videos) are simply absent.
	VideoStats(ctx context.Context, ids []string) ([]VideoStats, error)
}

// VideoStats holds the per-video metadata returned by the statistics API.
// Counter fields the API omits are reported as zero.
type VideoStats struct {
	// ID is the YouTube video ID.
	ID string
	// Title is the video title.
	Title string
	// Views, Likes and Comments are the raw counters.
	Views    int64
	Likes    int64
	Comments int64
}

// FetchError wraps an error encountered while processing one playlist.
// Playlist failures do not abort the run; they are collected and reported.
type FetchError struct {
	// PlaylistID is the playlist that failed.
	PlaylistID string
	// Err is the underlying error.
	Err error
}

// Error returns a string representation of the fetch error.
func (e *FetchError) Error() string {
	return fmt.Sprintf("youtube: playlist %s: %v", e.PlaylistID, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is() and errors.As().
func (e *FetchError) Unwrap() error { return e.Err }
