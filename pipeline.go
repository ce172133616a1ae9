package smashstats

import (
	"context"
	"fmt"
	"log"

	"smashstats/characters"
	"smashstats/chart"
	"smashstats/config"
	"smashstats/players"
	"smashstats/stats"
	"smashstats/storage"
	"smashstats/youtube"
)

// FetchStats walks every configured playlist and writes the raw statistics
// dataset. Failing playlists are logged and skipped; the dataset is written
// even when some playlists failed, matching the run-again-later workflow.
func FetchStats(ctx context.Context, cfg *config.Config) error {
	playlists, err := config.LoadPlaylists(cfg.PlaylistsPath)
	if err != nil {
		return err
	}
	if len(playlists) == 0 {
		return fmt.Errorf("no playlists configured in %s", cfg.PlaylistsPath)
	}

	client, err := youtube.NewAPIClient(ctx, cfg.APIKey, cfg.RateLimit)
	if err != nil {
		return err
	}

	fetcher := youtube.NewFetcher(client)
	fetcher.BatchSize = cfg.BatchSize

	ds, failed := fetcher.Fetch(ctx, playlists)
	if len(failed) > 0 {
		log.Printf("fetch: %d of %d playlists failed", len(failed), len(playlists))
	}

	if err := storage.Save(cfg.RawStatsPath, ds); err != nil {
		return err
	}
	log.Printf("fetch: wrote %d records to %s", len(ds.Records), cfg.RawStatsPath)
	return nil
}

// TagCharacters derives the character column for every record of the raw
// dataset and writes the annotated dataset.
func TagCharacters(cfg *config.Config) error {
	aliases, err := characters.LoadAliasMap(cfg.AliasesPath)
	if err != nil {
		return err
	}

	ds, skipped, err := storage.Load(cfg.RawStatsPath)
	if err != nil {
		return err
	}
	logSkipped(cfg.RawStatsPath, skipped)

	characters.Tag(ds, aliases)

	if err := storage.Save(cfg.TaggedStatsPath, ds); err != nil {
		return err
	}
	log.Printf("characters: tagged %d records into %s", len(ds.Records), cfg.TaggedStatsPath)
	return nil
}

// InferPlayers runs one player-name inference pass over the annotated
// dataset, in place. It is designed to be rerun after each round of manual
// curation of the player columns.
func InferPlayers(cfg *config.Config) error {
	ds, skipped, err := storage.Load(cfg.TaggedStatsPath)
	if err != nil {
		return err
	}
	logSkipped(cfg.TaggedStatsPath, skipped)

	changed := players.Run(ds)

	if err := storage.Save(cfg.TaggedStatsPath, ds); err != nil {
		return err
	}
	log.Printf("players: updated %d of %d records in %s", changed, len(ds.Records), cfg.TaggedStatsPath)
	return nil
}

// ComputeStats aggregates the annotated dataset and writes the ranked
// player and character tables.
func ComputeStats(cfg *config.Config) error {
	ds, skipped, err := storage.Load(cfg.TaggedStatsPath)
	if err != nil {
		return err
	}
	logSkipped(cfg.TaggedStatsPath, skipped)

	if !ds.Tagged {
		return fmt.Errorf("dataset %s has no extracted characters column; run the tagger first", cfg.TaggedStatsPath)
	}

	playerTotals, characterTotals := stats.Aggregate(ds.Records)

	tables := stats.PlayerTables(playerTotals, cfg.MinPlayerMatches, cfg.MinPlayerViews)
	tables = append(tables, stats.CharacterTables(characterTotals)...)

	if err := stats.WriteTables(cfg.StatsDir, tables); err != nil {
		return err
	}
	log.Printf("stats: wrote %d tables to %s (%d players, %d characters)",
		len(tables), cfg.StatsDir, len(playerTotals), len(characterTotals))
	return nil
}

// RenderCharts draws every configured chart from the ranked tables.
func RenderCharts(cfg *config.Config) error {
	return chart.RenderAll(cfg.StatsDir, cfg.GraphsDir, chart.DefaultConfigs())
}

// RunPipeline runs every stage after fetching, in order: character tagging,
// player inference, aggregation and chart rendering. The first failing
// stage stops the run.
func RunPipeline(cfg *config.Config) error {
	if err := TagCharacters(cfg); err != nil {
		return err
	}
	if err := InferPlayers(cfg); err != nil {
		return err
	}
	if err := ComputeStats(cfg); err != nil {
		return err
	}
	return RenderCharts(cfg)
}

func logSkipped(path string, skipped []storage.SkipReport) {
	for _, s := range skipped {
		log.Printf("storage: %s line %d skipped: %s", path, s.Line, s.Reason)
	}
}
