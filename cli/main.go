package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"smashstats"
	"smashstats/config"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "fetch":
		cmdFetch(args)
	case "characters":
		cmdCharacters(args)
	case "players":
		cmdPlayers(args)
	case "stats":
		cmdStats(args)
	case "charts":
		cmdCharts(args)
	case "run":
		cmdRun(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `smashstats - playlist statistics pipeline for competitive gaming VODs

Usage:
  smashstats fetch [flags]       Fetch per-video statistics from playlists
  smashstats characters [flags]  Extract character names from video titles
  smashstats players [flags]     Infer player names from curated columns
  smashstats stats [flags]       Compute ranked player/character tables
  smashstats charts [flags]      Render bar charts from the ranked tables
  smashstats run [flags]         Run every stage after fetch, in order
  smashstats help                Show this help message

The stages run in order: fetch, characters, players, stats, charts.
The players stage is meant to be rerun after each round of manual name
curation in the dataset file.

Configuration comes from smashstats.json, a .env file, and SMASHSTATS_*
environment variables (the YouTube API key may also be set as API_KEY).

For help on a specific command: smashstats <command> -h
`)
}

// loadConfig loads configuration or exits with an error message.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

func cmdFetch(args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	playlists := fs.String("playlists", "", "Playlists JSON file (overrides config)")
	out := fs.String("out", "", "Output TSV file (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: smashstats fetch [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()
	if *playlists != "" {
		cfg.PlaylistsPath = *playlists
	}
	if *out != "" {
		cfg.RawStatsPath = *out
	}
	if cfg.APIKey == "" {
		fail(fmt.Errorf("no API key configured (set SMASHSTATS_API_KEY or API_KEY)"))
	}

	if err := smashstats.FetchStats(context.Background(), cfg); err != nil {
		fail(err)
	}
}

func cmdCharacters(args []string) {
	fs := flag.NewFlagSet("characters", flag.ExitOnError)
	in := fs.String("in", "", "Input TSV file (overrides config)")
	out := fs.String("out", "", "Output TSV file (overrides config)")
	aliases := fs.String("aliases", "", "Character alias JSON file (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: smashstats characters [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()
	if *in != "" {
		cfg.RawStatsPath = *in
	}
	if *out != "" {
		cfg.TaggedStatsPath = *out
	}
	if *aliases != "" {
		cfg.AliasesPath = *aliases
	}

	if err := smashstats.TagCharacters(cfg); err != nil {
		fail(err)
	}
}

func cmdPlayers(args []string) {
	fs := flag.NewFlagSet("players", flag.ExitOnError)
	file := fs.String("file", "", "Dataset TSV file updated in place (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: smashstats players [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()
	if *file != "" {
		cfg.TaggedStatsPath = *file
	}

	if err := smashstats.InferPlayers(cfg); err != nil {
		fail(err)
	}
}

func cmdStats(args []string) {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	in := fs.String("in", "", "Annotated dataset TSV file (overrides config)")
	dir := fs.String("dir", "", "Output directory for ranked tables (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: smashstats stats [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()
	if *in != "" {
		cfg.TaggedStatsPath = *in
	}
	if *dir != "" {
		cfg.StatsDir = *dir
	}

	if err := smashstats.ComputeStats(cfg); err != nil {
		fail(err)
	}
}

func cmdCharts(args []string) {
	fs := flag.NewFlagSet("charts", flag.ExitOnError)
	statsDir := fs.String("stats", "", "Directory holding the ranked tables (overrides config)")
	out := fs.String("out", "", "Output directory for chart PDFs (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: smashstats charts [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()
	if *statsDir != "" {
		cfg.StatsDir = *statsDir
	}
	if *out != "" {
		cfg.GraphsDir = *out
	}

	if err := smashstats.RenderCharts(cfg); err != nil {
		fail(err)
	}
}

func cmdRun(args []string) {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	in := fs.String("in", "", "Raw dataset TSV file (overrides config)")
	aliases := fs.String("aliases", "", "Character alias JSON file (overrides config)")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: smashstats run [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	cfg := loadConfig()
	if *in != "" {
		cfg.RawStatsPath = *in
	}
	if *aliases != "" {
		cfg.AliasesPath = *aliases
	}

	if err := smashstats.RunPipeline(cfg); err != nil {
		fail(err)
	}
}
