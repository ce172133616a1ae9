// Package chart renders ranked statistics tables as horizontal bar charts.
//
// Each chart reads one TSV table, ranks its rows by the configured metric
// and writes a single-page PDF: one bar per entity, rank 1 at the top, the
// entity name annotated after the bar and the metric value inside the bar
// for the ten highest ranks. Styling follows the dataset's dark theme.
package chart

import (
	"bufio"
	"fmt"
	"image/color"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
)

// MaxBars caps the number of bars per chart.
const MaxBars = 100

// Dark theme palette.
var (
	backgroundColor = color.RGBA{R: 0x1A, G: 0x1A, B: 0x2E, A: 0xFF}
	barColor        = color.RGBA{R: 0x68, G: 0xD9, B: 0xD3, A: 0xCC}
	textColor       = color.White
	gridColor       = color.RGBA{R: 0xD3, G: 0xD3, B: 0xD3, A: 0x80}
)

// Config describes one chart: which table to read, which columns to plot
// and where the PDF goes.
type Config struct {
	// Table is the TSV filename within the statistics directory.
	Table string
	// Output is the PDF filename within the graphs directory.
	Output string
	// MetricColumn is the column plotted on the X axis.
	MetricColumn string
	// LabelColumn is the column used to annotate each bar.
	LabelColumn string
	// Title is displayed at the top of the chart.
	Title string
}

// DefaultConfigs returns the full chart set: one chart per ranked table,
// plus total-likes and total-comments charts that reuse the auxiliary
// columns of the ratio tables.
func DefaultConfigs() []Config {
	return []Config{
		{"total_views_per_player.tsv", "total_views_per_player.pdf", "Total Views", "Player", "Total Views Per Player"},
		{"average_views_per_player.tsv", "average_views_per_player.pdf", "Average Views", "Player", "Average Views Per Player"},
		{"likes_per_view_per_player.tsv", "likes_per_view_per_player.pdf", "Likes Per View", "Player", "Likes Per View Per Player"},
		{"comments_per_view_per_player.tsv", "comments_per_view_per_player.pdf", "Comments Per View", "Player", "Comments Per View Per Player"},
		{"total_views_per_character.tsv", "total_views_per_character.pdf", "Total Views", "Character", "Total Views Per Character"},
		{"average_views_per_character.tsv", "average_views_per_character.pdf", "Average Views", "Character", "Average Views Per Character"},
		{"likes_per_view_per_character.tsv", "likes_per_view_per_character.pdf", "Likes Per View", "Character", "Likes Per View Per Character"},
		{"comments_per_view_per_character.tsv", "comments_per_view_per_character.pdf", "Comments Per View", "Character", "Comments Per View Per Character"},
		{"likes_per_view_per_player.tsv", "total_likes_per_player.pdf", "Total Likes", "Player", "Total Likes Per Player"},
		{"likes_per_view_per_character.tsv", "total_likes_per_character.pdf", "Total Likes", "Character", "Total Likes Per Character"},
		{"comments_per_view_per_player.tsv", "total_comments_per_player.pdf", "Total Comments", "Player", "Total Comments Per Player"},
		{"comments_per_view_per_character.tsv", "total_comments_per_character.pdf", "Total Comments", "Character", "Total Comments Per Character"},
	}
}

// bar is one ranked entry of a chart.
type bar struct {
	label string
	value float64
}

// readBars loads a table and extracts the ranked (label, metric) pairs,
// re-sorted by metric descending and capped at MaxBars.
func readBars(path string, cfg Config) ([]bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open table %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read table %s: %w", path, err)
		}
		return nil, fmt.Errorf("table %s: empty file", path)
	}

	header := strings.Split(strings.TrimRight(scanner.Text(), "\r"), "\t")
	metricCol := indexOf(header, cfg.MetricColumn)
	labelCol := indexOf(header, cfg.LabelColumn)
	if metricCol < 0 || labelCol < 0 {
		return nil, fmt.Errorf("table %s: missing column %q or %q", path, cfg.MetricColumn, cfg.LabelColumn)
	}

	var bars []bar
	for scanner.Scan() {
		fields := strings.Split(strings.TrimRight(scanner.Text(), "\r"), "\t")
		if metricCol >= len(fields) || labelCol >= len(fields) {
			continue
		}
		value, err := strconv.ParseFloat(fields[metricCol], 64)
		if err != nil {
			continue
		}
		bars = append(bars, bar{label: fields[labelCol], value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}

	// Tables arrive ranked already; re-sorting keeps the chart honest when
	// fed a hand-edited file.
	sort.SliceStable(bars, func(i, j int) bool { return bars[i].value > bars[j].value })
	if len(bars) > MaxBars {
		bars = bars[:MaxBars]
	}
	return bars, nil
}

func indexOf(header []string, name string) int {
	for i, h := range header {
		if h == name {
			return i
		}
	}
	return -1
}

// Render reads one table and writes one chart PDF.
// An empty table produces a titled chart with no bars rather than an error.
func Render(tablePath, pdfPath string, cfg Config) error {
	bars, err := readBars(tablePath, cfg)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = cfg.Title
	p.BackgroundColor = backgroundColor
	p.Title.TextStyle.Color = textColor
	p.X.Label.Text = cfg.MetricColumn
	styleAxis(&p.X)
	styleAxis(&p.Y)
	p.X.Tick.Marker = formattedTicks{plot.DefaultTicks{}}

	if len(bars) > 0 {
		if err := addBars(p, bars); err != nil {
			return err
		}
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Vertical.Width = vg.Points(0.5)
	grid.Horizontal.Width = 0
	p.Add(grid)

	height := vg.Length(len(bars))*vg.Centimeter + 2*vg.Centimeter
	if len(bars) == 0 {
		height = 4 * vg.Centimeter
	}
	width := 8.27 * vg.Inch // A4 width

	if err := p.Save(width, height, pdfPath); err != nil {
		return fmt.Errorf("save chart %s: %w", pdfPath, err)
	}
	return nil
}

// addBars plots the ranked bars plus their annotations. Plot rows run
// bottom-up, so the ranked slice is reversed to place rank 1 on top.
func addBars(p *plot.Plot, bars []bar) error {
	n := len(bars)
	values := make(plotter.Values, n)
	ranks := make([]string, n)
	maxValue := bars[0].value
	for i, b := range bars {
		pos := n - 1 - i // reverse: rank 1 ends up at the top
		values[pos] = b.value
		ranks[pos] = strconv.Itoa(i + 1)
	}

	bc, err := plotter.NewBarChart(values, vg.Points(12))
	if err != nil {
		return fmt.Errorf("build bars: %w", err)
	}
	bc.Horizontal = true
	bc.Color = barColor
	bc.LineStyle.Width = 0
	p.Add(bc)
	p.NominalY(ranks...)

	// Entity names trail each bar.
	names := plotter.XYLabels{}
	for i, b := range bars {
		pos := n - 1 - i
		names.XYs = append(names.XYs, plotter.XY{X: b.value + maxValue*0.01, Y: float64(pos)})
		names.Labels = append(names.Labels, b.label)
	}
	nameLabels, err := plotter.NewLabels(names)
	if err != nil {
		return fmt.Errorf("build name labels: %w", err)
	}
	for i := range nameLabels.TextStyle {
		nameLabels.TextStyle[i].Color = textColor
		nameLabels.TextStyle[i].Font.Size = vg.Points(8)
		nameLabels.TextStyle[i].XAlign = text.XLeft
		nameLabels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(nameLabels)

	// Metric values sit inside the ten highest bars.
	inline := plotter.XYLabels{}
	for i, b := range bars {
		if i >= 10 {
			break
		}
		pos := n - 1 - i
		inline.XYs = append(inline.XYs, plotter.XY{X: b.value / 2, Y: float64(pos)})
		inline.Labels = append(inline.Labels, formatValue(b.value))
	}
	valueLabels, err := plotter.NewLabels(inline)
	if err != nil {
		return fmt.Errorf("build value labels: %w", err)
	}
	for i := range valueLabels.TextStyle {
		valueLabels.TextStyle[i].Color = textColor
		valueLabels.TextStyle[i].Font.Size = vg.Points(8)
		valueLabels.TextStyle[i].XAlign = text.XCenter
		valueLabels.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(valueLabels)

	return nil
}

// styleAxis applies the dark theme to one axis.
func styleAxis(a *plot.Axis) {
	a.LineStyle.Color = textColor
	a.LineStyle.Width = vg.Points(0.5)
	a.Label.TextStyle.Color = textColor
	a.Tick.LineStyle.Color = textColor
	a.Tick.LineStyle.Width = vg.Points(0.5)
	a.Tick.Label.Color = textColor
	a.Tick.Label.Font.Size = vg.Points(8)
}

// formatValue renders a metric value the way the tables do: ratios below one
// keep four decimals, whole numbers drop the fraction, everything else keeps
// two decimals.
func formatValue(v float64) string {
	switch {
	case math.Abs(v) < 1:
		return strconv.FormatFloat(v, 'f', 4, 64)
	case v == math.Trunc(v):
		return strconv.FormatInt(int64(v), 10)
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// formattedTicks reformats the default tick labels with formatValue.
type formattedTicks struct {
	base plot.Ticker
}

func (t formattedTicks) Ticks(min, max float64) []plot.Tick {
	ticks := t.base.Ticks(min, max)
	for i, tk := range ticks {
		if tk.Label != "" {
			ticks[i].Label = formatValue(tk.Value)
		}
	}
	return ticks
}

// RenderAll renders every configured chart, creating the graphs directory if
// needed. A chart whose table is missing is logged and skipped; the rest
// still render.
func RenderAll(statsDir, graphsDir string, configs []Config) error {
	if err := os.MkdirAll(graphsDir, 0o755); err != nil {
		return fmt.Errorf("create graphs dir %s: %w", graphsDir, err)
	}

	for _, cfg := range configs {
		tablePath := filepath.Join(statsDir, cfg.Table)
		pdfPath := filepath.Join(graphsDir, cfg.Output)
		if err := Render(tablePath, pdfPath, cfg); err != nil {
			log.Printf("chart: skipping %s: %v", cfg.Output, err)
			continue
		}
		log.Printf("chart: wrote %s", pdfPath)
	}
	return nil
}
