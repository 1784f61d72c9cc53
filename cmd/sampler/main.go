package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"imbalance-bench/internal/cfg"
	"imbalance-bench/internal/classifier"
	"imbalance-bench/internal/dataset"
	"imbalance-bench/internal/experiment"
	"imbalance-bench/internal/features"
	"imbalance-bench/internal/metrics"
	"imbalance-bench/internal/report"
	"imbalance-bench/internal/resample"
	"imbalance-bench/internal/runlog"
	"imbalance-bench/internal/storage"
	"imbalance-bench/internal/viz"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load() // optional .env

	c, err := cfg.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}

	release, err := runlog.Setup(c.LogPath, c.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("log setup failed")
	}

	m := metrics.New()
	startedAt := time.Now()

	runErr := run(c, m, startedAt)
	if runErr != nil {
		m.ErrorsTotal.Inc()
		log.Error().Err(runErr).Msg("run failed")
	} else {
		log.Info().Dur("elapsed", time.Since(startedAt)).Msg("run complete")
	}
	exportMetrics(m, c.OutputPath)

	// the run log must be released on every exit path, error or not
	if err := release(); err != nil {
		fmt.Println("log release failed:", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}

func run(c cfg.Settings, m *metrics.Metrics, startedAt time.Time) error {
	tbl, err := dataset.Load(c.DataPath, c.FileStem)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	logDistribution(tbl, dataset.LabelAttackCategory)
	logDistribution(tbl, dataset.LabelTarget)

	start := time.Now()
	x, err := features.Preprocess(tbl, c.CategoricalColumns, c.ScaleColumns)
	if err != nil {
		return fmt.Errorf("preprocess: %w", err)
	}
	log.Info().
		Int("rows", len(x)).
		Dur("elapsed", time.Since(start)).
		Msg("features preprocessed")

	fine, err := tbl.Column(dataset.LabelAttackCategory)
	if err != nil {
		return fmt.Errorf("read labels: %w", err)
	}
	coarse, err := tbl.Column(dataset.LabelTarget)
	if err != nil {
		return fmt.Errorf("read labels: %w", err)
	}

	sink, err := viz.New(filepath.Join(c.OutputPath, "plots"))
	if err != nil {
		return fmt.Errorf("plot sink: %w", err)
	}

	exp := &experiment.Experiment{
		X: x,
		Labels: []experiment.LabelVariant{
			{Name: dataset.LabelAttackCategory, Values: fine},
			{Name: dataset.LabelTarget, Values: coarse},
		},
		Strategies:    strategies(c),
		NewClassifier: classifier.NewForestFactory(c.Estimators),
		Folds:         c.Folds,
		Seed:          c.Seed,
		Sink:          sink,
		Observer:      m,
	}

	if err := exp.Run(); err != nil {
		return err
	}

	reporter := report.NewReporter(exp.Ledger(), c.OutputPath)
	if err := reporter.GenerateReport(); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	if c.Debug {
		reporter.PrintSummary()
	}

	if c.StorePath != "" {
		if err := saveRun(c, exp.Ledger(), startedAt); err != nil {
			log.Warn().Err(err).Msg("run history save failed, continuing without persistence")
		}
	}

	return nil
}

// strategies builds the battery in evaluation order, identity baseline
// first. Every strategy runs on the harness seed except SMOTE, which keeps
// its own dedicated seed.
func strategies(c cfg.Settings) []resample.Resampler {
	return []resample.Resampler{
		resample.Original{},
		resample.NewRandomOverSampler(c.Seed),
		resample.NewSMOTE(c.Neighbors, c.SMOTESeed),
		resample.NewADASYN(c.Neighbors, c.Seed),
		resample.NewBorderlineSMOTE(c.Neighbors, c.DangerNeighbors, resample.Borderline1, c.Seed),
		resample.NewBorderlineSMOTE(c.Neighbors, c.DangerNeighbors, resample.Borderline2, c.Seed),
		resample.NewSVMSMOTE(c.Neighbors, c.DangerNeighbors, c.Seed),
		resample.NewSMOTENC(c.CategoricalPositions, c.Neighbors, c.Seed),
	}
}

func logDistribution(tbl *dataset.Table, column string) {
	counts, err := tbl.ValueCounts(column)
	if err != nil {
		log.Warn().Err(err).Str("column", column).Msg("distribution unavailable")
		return
	}
	ev := log.Info().Str("column", column)
	for _, vc := range counts {
		ev = ev.Int(vc.Value, vc.Count)
	}
	ev.Msg("class distribution")
}

func saveRun(c cfg.Settings, ledger *experiment.Ledger, startedAt time.Time) error {
	store, err := storage.New(c.StorePath)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.SaveRun(storage.Run{
		ID:         startedAt.Format("20060102150405"),
		StartedAt:  startedAt,
		FinishedAt: time.Now(),
		DataStem:   c.FileStem,
		Results:    ledger.All(),
	})
}

func exportMetrics(m *metrics.Metrics, outputPath string) {
	path := filepath.Join(outputPath, "metrics.prom")
	if err := m.WriteTextfile(path); err != nil {
		log.Warn().Err(err).Msg("metrics export failed")
	}
}
