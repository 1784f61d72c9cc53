package features

import (
	"fmt"
	"strconv"

	"imbalance-bench/internal/dataset"

	"github.com/rs/zerolog/log"
)

// Preprocess label-encodes the categorical columns of the working table in
// place and power-transforms the numeric columns, returning the feature
// matrix over both sets of columns in table column order. Keeping table
// order means a categorical column occupies the same matrix position it has
// in the source file. Column names are a hard contract: a missing column
// fails the run.
func Preprocess(tbl *dataset.Table, categorical, numeric []string) ([][]float64, error) {
	isCategorical := make(map[string]bool, len(categorical))
	for _, name := range categorical {
		isCategorical[name] = true

		col, err := tbl.Column(name)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		enc := NewLabelEncoder()
		codes, err := enc.FitTransform(col)
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		encoded := make([]string, len(codes))
		for i, c := range codes {
			encoded[i] = strconv.Itoa(c)
		}
		if err := tbl.SetColumn(name, encoded); err != nil {
			return nil, fmt.Errorf("encode %s: %w", name, err)
		}
		log.Debug().Str("column", name).Int("classes", len(enc.Classes())).Msg("column encoded")
	}

	scaled := make(map[string][]float64, len(numeric))
	for _, name := range numeric {
		col, err := tbl.FloatColumn(name)
		if err != nil {
			return nil, fmt.Errorf("scale %s: %w", name, err)
		}
		pt := NewPowerTransformer()
		vals, err := pt.FitTransform(col)
		if err != nil {
			return nil, fmt.Errorf("scale %s: %w", name, err)
		}
		scaled[name] = vals
		log.Debug().Str("column", name).Float64("lambda", pt.Lambda()).Msg("column scaled")
	}

	var order []string
	for _, name := range tbl.Columns() {
		if isCategorical[name] || scaled[name] != nil {
			order = append(order, name)
		}
	}
	if len(order) != len(categorical)+len(numeric) {
		return nil, fmt.Errorf("feature columns overlap or repeat: %d selected, %d named",
			len(order), len(categorical)+len(numeric))
	}

	x := make([][]float64, tbl.Rows())
	for i := range x {
		x[i] = make([]float64, len(order))
	}
	for j, name := range order {
		if vals, ok := scaled[name]; ok {
			for i := range vals {
				x[i][j] = vals[i]
			}
			continue
		}
		codes, err := tbl.FloatColumn(name)
		if err != nil {
			return nil, fmt.Errorf("collect %s: %w", name, err)
		}
		for i := range codes {
			x[i][j] = codes[i]
		}
	}

	log.Info().Int("rows", len(x)).Int("columns", len(order)).Msg("features prepared")
	return x, nil
}
