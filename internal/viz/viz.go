// Package viz renders the run's visual artifacts: class-distribution bar
// charts and confusion-matrix heatmaps, written as PNG files into the
// output directory.
package viz

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"imbalance-bench/internal/evaluation"
)

// PlotSink writes charts under a base directory. Filenames are derived from
// chart titles; rendering the same title twice overwrites the earlier file.
type PlotSink struct {
	dir string
}

// New creates the output directory and a sink writing into it.
func New(dir string) (*PlotSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create plot directory: %w", err)
	}
	return &PlotSink{dir: dir}, nil
}

// BarChart renders the class counts as a vertical bar chart.
func (s *PlotSink) BarChart(classes []string, counts []int, title string) error {
	values := make(plotter.Values, len(counts))
	for i, c := range counts {
		values[i] = float64(c)
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "count"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return fmt.Errorf("bar chart %q: %w", title, err)
	}
	p.Add(bars)
	p.NominalX(classes...)
	p.X.Tick.Label.Rotation = 0.5
	p.X.Tick.Label.XAlign = -0.8

	return s.save(p, title)
}

// ConfusionMatrix renders predicted-versus-actual counts as a heatmap.
func (s *PlotSink) ConfusionMatrix(actual, predicted []string, title string) error {
	if len(actual) != len(predicted) {
		return fmt.Errorf("confusion matrix %q: %d actual vs %d predicted labels",
			title, len(actual), len(predicted))
	}
	classes, counts := evaluation.ConfusionMatrix(actual, predicted)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "predicted"
	p.Y.Label.Text = "actual"

	heat := plotter.NewHeatMap(&confusionGrid{counts: counts}, moreland.SmoothBlueRed().Palette(255))
	p.Add(heat)

	ticks := make([]plot.Tick, len(classes))
	for i, c := range classes {
		ticks[i] = plot.Tick{Value: float64(i), Label: c}
	}
	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.Y.Tick.Marker = plot.ConstantTicks(ticks)

	return s.save(p, title)
}

func (s *PlotSink) save(p *plot.Plot, title string) error {
	path := filepath.Join(s.dir, fileName(title))
	if err := p.Save(6*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %q: %w", title, err)
	}
	log.Debug().Str("path", path).Msg("plot written")
	return nil
}

// fileName flattens a chart title into a safe file name.
func fileName(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteByte('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	for strings.Contains(name, "__") {
		name = strings.ReplaceAll(name, "__", "_")
	}
	return name + ".png"
}

// confusionGrid adapts a count matrix to the plotter grid interface. Row 0
// is drawn at the bottom, so the actual-class axis reads upward.
type confusionGrid struct {
	counts [][]int
}

func (g *confusionGrid) Dims() (int, int) {
	if len(g.counts) == 0 {
		return 0, 0
	}
	return len(g.counts[0]), len(g.counts)
}

func (g *confusionGrid) Z(c, r int) float64 { return float64(g.counts[r][c]) }
func (g *confusionGrid) X(c int) float64    { return float64(c) }
func (g *confusionGrid) Y(r int) float64    { return float64(r) }
