// Package report renders the score ledger of a finished run into
// human and machine readable files.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"

	"imbalance-bench/internal/experiment"
)

// Reporter generates run reports from a score ledger
type Reporter struct {
	ledger     *experiment.Ledger
	outputPath string
}

// NewReporter creates a new reporter
func NewReporter(ledger *experiment.Ledger, outputPath string) *Reporter {
	return &Reporter{
		ledger:     ledger,
		outputPath: outputPath,
	}
}

// GenerateReport generates all report formats
func (r *Reporter) GenerateReport() error {
	if err := os.MkdirAll(r.outputPath, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := r.generateSummary(); err != nil {
		return err
	}

	if err := r.generateScoreLog(); err != nil {
		return err
	}

	if err := r.generateJSONReport(); err != nil {
		return err
	}

	return nil
}

// generateSummary generates a human-readable summary
func (r *Reporter) generateSummary() error {
	summaryPath := filepath.Join(r.outputPath, "summary.txt")
	file, err := os.Create(summaryPath)
	if err != nil {
		return fmt.Errorf("failed to create summary file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "RESAMPLING EVALUATION SUMMARY\n")
	fmt.Fprintf(file, "=============================\n\n")
	fmt.Fprintf(file, "Experiments: %d\n\n", r.ledger.Len())

	best := r.bestByLabel()

	fmt.Fprintf(file, "ACCURACY BY STRATEGY\n")
	fmt.Fprintf(file, "--------------------\n")
	for _, res := range r.ledger.All() {
		marker := ""
		if b, ok := best[res.Key.Label]; ok && b.Key == res.Key {
			marker = "  *best for label*"
		}
		fmt.Fprintf(file, "%-28s %-16s %.2f%% (+/- %.2f%%)  rows=%d%s\n",
			res.Key.Strategy, res.Key.Label,
			res.MeanAccuracy*100, res.StdAccuracy*100,
			res.ResampledRows, marker)
	}

	log.Info().Str("file", summaryPath).Msg("Summary report generated")
	return nil
}

// generateScoreLog generates a CSV log of per-fold scores
func (r *Reporter) generateScoreLog() error {
	csvPath := filepath.Join(r.outputPath, "scores.csv")
	file, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("failed to create score log: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Strategy", "Label", "Fold", "Accuracy", "Mean Accuracy", "Std Accuracy", "Resampled Rows"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, res := range r.ledger.All() {
		for fold, score := range res.FoldScores {
			record := []string{
				res.Key.Strategy,
				res.Key.Label,
				fmt.Sprintf("%d", fold),
				fmt.Sprintf("%.6f", score),
				fmt.Sprintf("%.6f", res.MeanAccuracy),
				fmt.Sprintf("%.6f", res.StdAccuracy),
				fmt.Sprintf("%d", res.ResampledRows),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
	}

	log.Info().Str("file", csvPath).Msg("Score log generated")
	return nil
}

// generateJSONReport generates a JSON report with all data
func (r *Reporter) generateJSONReport() error {
	jsonPath := filepath.Join(r.outputPath, "results.json")

	report := map[string]interface{}{
		"experiments":  r.ledger.All(),
		"generated_at": time.Now(),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if err := os.WriteFile(jsonPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON report: %w", err)
	}

	log.Info().Str("file", jsonPath).Msg("JSON report generated")
	return nil
}

// bestByLabel picks the highest mean accuracy per label variant.
func (r *Reporter) bestByLabel() map[string]experiment.Result {
	best := make(map[string]experiment.Result)
	for _, res := range r.ledger.All() {
		if b, ok := best[res.Key.Label]; !ok || res.MeanAccuracy > b.MeanAccuracy {
			best[res.Key.Label] = res
		}
	}
	return best
}

// PrintSummary prints a summary to console
func (r *Reporter) PrintSummary() {
	fmt.Println("\n=== RESAMPLING RESULTS ===")
	for _, res := range r.ledger.All() {
		fmt.Printf("%-28s %-16s %.2f%% (+/- %.2f%%)\n",
			res.Key.Strategy, res.Key.Label,
			res.MeanAccuracy*100, res.StdAccuracy*100)
	}
	fmt.Println("==========================")
}
