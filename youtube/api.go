package youtube

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/time/rate"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// APIClient implements PlaylistAPI using YouTube Data API v3.
// Every request first waits on a token-bucket limiter so that the fixed
// inter-request delay demanded by the API quota is enforced for page
// requests and statistics batches alike.
type APIClient struct {
	service *youtube.Service
	limiter *rate.Limiter
}

// NewAPIClient creates a YouTube Data API v3 client.
// requestsPerSecond bounds the request rate (1.0 means one request per
// second, the conservative default for key-only access).
func NewAPIClient(ctx context.Context, apiKey string, requestsPerSecond float64) (*APIClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("api key required")
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 1.0
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}

	return &APIClient{
		service: service,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// PlaylistVideoIDs fetches one page of video IDs from a playlist.
func (c *APIClient) PlaylistVideoIDs(ctx context.Context, playlistID, pageToken string, maxResults int64) ([]string, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", err
	}

	call := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(maxResults).
		PageToken(pageToken).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, "", wrapCallError(ctx, err)
	}

	ids := make([]string, 0, len(resp.Items))
	for _, item := range resp.Items {
		if item.ContentDetails != nil {
			ids = append(ids, item.ContentDetails.VideoId)
		}
	}

	return ids, resp.NextPageToken, nil
}

// VideoStats fetches title and counters for a batch of video IDs.
func (c *APIClient) VideoStats(ctx context.Context, ids []string) ([]VideoStats, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	call := c.service.Videos.List([]string{"snippet", "statistics"}).
		Id(ids...).
		Context(ctx)

	resp, err := call.Do()
	if err != nil {
		return nil, wrapCallError(ctx, err)
	}

	stats := make([]VideoStats, 0, len(resp.Items))
	for _, item := range resp.Items {
		vs := VideoStats{ID: item.Id}
		if item.Snippet != nil {
			vs.Title = item.Snippet.Title
		}
		// Absent counters (disabled likes, hidden comments) read as zero.
		if item.Statistics != nil {
			vs.Views = int64(item.Statistics.ViewCount)
			vs.Likes = int64(item.Statistics.LikeCount)
			vs.Comments = int64(item.Statistics.CommentCount)
		}
		stats = append(stats, vs)
	}

	return stats, nil
}

// wrapCallError maps a failed API call onto the package error vocabulary.
// An expired context takes precedence over whatever the transport reported:
// a deadline surfaces as ErrNetworkTimeout, a caller cancellation as the
// context error itself so errors.Is(err, context.Canceled) keeps working.
func wrapCallError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %w", ErrNetworkTimeout, ctxErr)
		}
		return ctxErr
	}
	return classifyAPIError(err)
}

// classifyAPIError maps Data API failures onto the package sentinel errors
// where possible, so callers can use errors.Is().
func classifyAPIError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.Code == 404:
			return fmt.Errorf("%w: %v", ErrPlaylistNotFound, err)
		case apiErr.Code == 403 && hasReason(apiErr, "quotaExceeded", "rateLimitExceeded"):
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
	}
	// The client sometimes surfaces quota failures as plain errors.
	if strings.Contains(err.Error(), "quotaExceeded") {
		return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
	}
	return err
}

// hasReason reports whether the API error carries one of the given reasons.
func hasReason(apiErr *googleapi.Error, reasons ...string) bool {
	for _, item := range apiErr.Errors {
		for _, r := range reasons {
			if item.Reason == r {
				return true
			}
		}
	}
	return false
}
