package smashstats

import (
	"smashstats/storage"
	"smashstats/youtube"
)

// Error handling types exported for library users.
//
// All error types support the standard error handling patterns:
//
// Using errors.Is() for sentinel errors:
//
//	if errors.Is(err, smashstats.ErrQuotaExceeded) {
//		fmt.Println("out of API quota for today")
//	}
//
// Using errors.As() for wrapped errors:
//
//	var storErr *smashstats.StorageError
//	if errors.As(err, &storErr) {
//		fmt.Printf("failed to %s %s: %v\n", storErr.Op, storErr.Path, storErr.Err)
//	}

// Type aliases for convenient error handling.
type (
	// FetchError wraps errors from one playlist during fetching.
	FetchError = youtube.FetchError
	// StorageError wraps errors during dataset load and save.
	StorageError = storage.StorageError
)

// Sentinel errors exported from sub-packages.
var (
	// ErrPlaylistNotFound indicates the playlist does not exist or is private.
	ErrPlaylistNotFound = youtube.ErrPlaylistNotFound
	// ErrQuotaExceeded indicates the API key's daily quota is spent.
	ErrQuotaExceeded = youtube.ErrQuotaExceeded
	// ErrNetworkTimeout indicates a network timeout occurred.
	ErrNetworkTimeout = youtube.ErrNetworkTimeout

	// Storage errors
	// ErrNotFound indicates a dataset file does not exist.
	ErrNotFound = storage.ErrNotFound
	// ErrBadHeader indicates a dataset file has an unrecognized header.
	ErrBadHeader = storage.ErrBadHeader
	// ErrInvalidInput indicates invalid input was provided.
	ErrInvalidInput = storage.ErrInvalidInput
)
