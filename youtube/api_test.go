package youtube

import (
	"context"
	"errors"
	"testing"
	"time"

	"google.golang.org/api/googleapi"
)

func TestWrapCallError_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wrapCallError(ctx, errors.New("transport closed"))

	if !errors.Is(err, context.Canceled) {
		t.Errorf("wrapCallError() = %v, want context.Canceled", err)
	}
	if errors.Is(err, ErrNetworkTimeout) {
		t.Error("cancellation must not be reported as a network timeout")
	}
}

func TestWrapCallError_ExpiredDeadline(t *testing.T) {
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	err := wrapCallError(ctx, errors.New("transport closed"))

	if !errors.Is(err, ErrNetworkTimeout) {
		t.Errorf("wrapCallError() = %v, want ErrNetworkTimeout", err)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("wrapCallError() = %v, want context.DeadlineExceeded preserved", err)
	}
}

func TestWrapCallError_LiveContextClassifies(t *testing.T) {
	apiErr := &googleapi.Error{Code: 404, Message: "playlist not found"}

	err := wrapCallError(context.Background(), apiErr)

	if !errors.Is(err, ErrPlaylistNotFound) {
		t.Errorf("wrapCallError() = %v, want ErrPlaylistNotFound", err)
	}
}

func TestClassifyAPIError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			"404 means missing playlist",
			&googleapi.Error{Code: 404},
			ErrPlaylistNotFound,
		},
		{
			"403 with quota reason",
			&googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "quotaExceeded"}}},
			ErrQuotaExceeded,
		},
		{
			"403 with rate limit reason",
			&googleapi.Error{Code: 403, Errors: []googleapi.ErrorItem{{Reason: "rateLimitExceeded"}}},
			ErrQuotaExceeded,
		},
		{
			"plain quota error string",
			errors.New("googleapi: got HTTP response: quotaExceeded"),
			ErrQuotaExceeded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classifyAPIError(tt.err); !errors.Is(got, tt.want) {
				t.Errorf("classifyAPIError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestClassifyAPIError_UnknownPassesThrough(t *testing.T) {
	plain := errors.New("connection reset")
	if got := classifyAPIError(plain); !errors.Is(got, plain) {
		t.Errorf("classifyAPIError() = %v, want the original error", got)
	}
}
