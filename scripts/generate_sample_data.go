package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"imbalance-bench/internal/dataset"
)

// attackProfile shapes the synthetic feature distribution of one class.
type attackProfile struct {
	category string
	target   string
	rows     int
	protocol []string
	service  []string
	flag     []string
	center   float64
	spread   float64
}

func main() {
	var (
		dataPath = flag.String("data", "data", "Data directory path")
		stem     = flag.String("stem", "kdd", "Output file stem")
		scale    = flag.Float64("scale", 1.0, "Multiplier on per-class row counts")
		seed     = flag.Int64("seed", 42, "Random seed")
	)
	flag.Parse()

	fmt.Printf("Generating sample intrusion data...\n")
	fmt.Printf("  Stem: %s\n", *stem)
	fmt.Printf("  Scale: %.2f\n", *scale)
	fmt.Printf("  Data Path: %s\n", *dataPath)

	if err := os.MkdirAll(*dataPath, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Heavily imbalanced on purpose, echoing the KDD class skew
	profiles := []attackProfile{
		{"normal", "0", 2000, []string{"tcp", "udp"}, []string{"http", "smtp", "domain_u"}, []string{"SF"}, 1.0, 0.5},
		{"dos", "1", 1600, []string{"tcp", "icmp"}, []string{"http", "ecr_i"}, []string{"S0", "SF"}, 8.0, 2.0},
		{"probe", "1", 180, []string{"tcp", "icmp"}, []string{"private", "eco_i"}, []string{"REJ", "SF"}, 4.0, 1.5},
		{"r2l", "1", 50, []string{"tcp"}, []string{"ftp", "telnet"}, []string{"SF"}, 2.0, 1.0},
		{"u2r", "1", 20, []string{"tcp"}, []string{"telnet"}, []string{"SF"}, 3.0, 1.2},
	}

	rng := rand.New(rand.NewSource(*seed))
	featureRows, targetRows := generateRows(profiles, *scale, rng)

	featureHeader := append([]string{"duration", "protocol_type", "service", "flag"}, dataset.ScaleColumns[1:]...)
	if err := writeCSV(filepath.Join(*dataPath, *stem+"_processed.csv"), featureHeader, featureRows); err != nil {
		log.Fatalf("Failed to write feature file: %v", err)
	}
	targetHeader := []string{dataset.LabelAttackCategory, dataset.LabelTarget}
	if err := writeCSV(filepath.Join(*dataPath, *stem+"_target.csv"), targetHeader, targetRows); err != nil {
		log.Fatalf("Failed to write target file: %v", err)
	}

	fmt.Printf("✓ Generated %d rows across %d classes\n", len(featureRows), len(profiles))
}

func generateRows(profiles []attackProfile, scale float64, rng *rand.Rand) (features, targets [][]string) {
	numericCount := len(dataset.ScaleColumns)

	for _, p := range profiles {
		rows := int(float64(p.rows) * scale)
		if rows < 1 {
			rows = 1
		}
		for i := 0; i < rows; i++ {
			row := make([]string, 0, 4+numericCount-1)

			// duration leads, then the symbolic columns, matching the
			// processed file layout the harness expects
			duration := p.center + rng.NormFloat64()*p.spread
			if duration < 0 {
				duration = 0
			}
			row = append(row,
				strconv.FormatFloat(duration, 'f', 4, 64),
				pick(p.protocol, rng),
				pick(p.service, rng),
				pick(p.flag, rng),
			)

			for j := 1; j < numericCount; j++ {
				// Per-class center drifts across columns so no two
				// columns are perfectly correlated
				v := p.center*float64(j%5+1)/3 + rng.NormFloat64()*p.spread
				if v < 0 {
					v = 0
				}
				row = append(row, strconv.FormatFloat(v, 'f', 4, 64))
			}

			features = append(features, row)
			targets = append(targets, []string{p.category, p.target})
		}
	}
	return features, targets
}

func pick(values []string, rng *rand.Rand) string {
	return values[rng.Intn(len(values))]
}

func writeCSV(path string, header []string, rows [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(header); err != nil {
		return err
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()

	fmt.Printf("  Wrote %s (%d rows)\n", path, len(rows))
	return w.Error()
}
