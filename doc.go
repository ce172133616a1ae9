// Package smashstats turns YouTube playlist crawls into ranked statistics
// and bar charts for a competitive-gaming video dataset.
//
// The pipeline is a chain of batch stages connected by flat TSV files:
//
//   - FetchStats: walk configured playlists and collect per-video view,
//     like and comment counts
//   - TagCharacters: extract character names from video titles via a
//     curated alias map
//   - InferPlayers: fill in missing player columns by matching already
//     known player names against titles
//   - ComputeStats: aggregate totals, averages and per-view ratios per
//     player and per character into ranked tables
//   - RenderCharts: draw one horizontal bar chart PDF per ranked table
//
// Quick Start
//
// Run the whole post-fetch pipeline:
//
//	cfg, err := config.Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := smashstats.TagCharacters(cfg); err != nil {
//		log.Fatal(err)
//	}
//	if err := smashstats.InferPlayers(cfg); err != nil {
//		log.Fatal(err)
//	}
//	if err := smashstats.ComputeStats(cfg); err != nil {
//		log.Fatal(err)
//	}
//	if err := smashstats.RenderCharts(cfg); err != nil {
//		log.Fatal(err)
//	}
//
// The player inference stage is meant to be rerun: it only learns names a
// human curator has already written into the dataset's player columns, so
// each curation round followed by another InferPlayers pass annotates more
// records.
//
// Configuration
//
// Settings load from multiple sources (highest priority first):
//
//   1. Environment variables (SMASHSTATS_ prefix; API_KEY also honored)
//   2. Config file (smashstats.json or ~/.config/smashstats/smashstats.json)
//   3. Default values
//
// A .env file in the working directory is loaded into the environment
// before resolution.
//
// Error Handling
//
// All operations return errors that implement standard Go error handling.
//
// Checking for sentinel errors:
//
//	if errors.Is(err, smashstats.ErrPlaylistNotFound) {
//		fmt.Println("playlist gone")
//	}
//
// Extracting wrapped error details:
//
//	var fetchErr *smashstats.FetchError
//	if errors.As(err, &fetchErr) {
//		fmt.Printf("playlist %s failed: %v\n", fetchErr.PlaylistID, fetchErr.Err)
//	}
//
// For more control, use the sub-packages directly:
//
//   - youtube: playlist walking and the Data API client
//   - characters: alias map and title tagging
//   - players: the player-name inference pass
//   - stats: aggregation and ranked tables
//   - chart: bar chart rendering
//   - storage: the TSV dataset format
package smashstats
