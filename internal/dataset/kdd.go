package dataset

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
)

// Column names of the KDD Cup 1999 intrusion-detection dataset as produced by
// the upstream preprocessing step: a feature file <stem>_processed.csv and a
// target file <stem>_target.csv sharing row order.
const (
	// LabelAttackCategory is the fine-grained multi-class target column.
	LabelAttackCategory = "attack_category"
	// LabelTarget is the coarse binary target column.
	LabelTarget = "target"
)

// CategoricalColumns are the symbolic feature columns that get label-encoded
// before modelling.
var CategoricalColumns = []string{"protocol_type", "service", "flag"}

// ScaleColumns are the continuous feature columns that get power-transformed.
// Their order defines the column order of the feature matrix.
var ScaleColumns = []string{
	"duration", "src_bytes", "dst_bytes", "land", "wrong_fragment", "urgent", "hot",
	"num_failed_logins", "logged_in", "num_compromised", "root_shell", "su_attempted",
	"num_root", "num_file_creations", "num_shells", "num_access_files", "is_guest_login",
	"count", "srv_count", "serror_rate", "rerror_rate", "diff_srv_rate", "srv_diff_host_rate",
	"dst_host_count", "dst_host_srv_count", "dst_host_diff_srv_rate",
	"dst_host_same_src_port_rate", "dst_host_srv_diff_host_rate",
}

// Load reads the processed-feature and target CSV artifacts addressed by a
// base path and file stem and joins them into the full working table.
func Load(path, stem string) (*Table, error) {
	features, err := ReadCSV(filepath.Join(path, stem+"_processed.csv"))
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}
	targets, err := ReadCSV(filepath.Join(path, stem+"_target.csv"))
	if err != nil {
		return nil, fmt.Errorf("load targets: %w", err)
	}
	full, err := Concat(features, targets)
	if err != nil {
		return nil, fmt.Errorf("join features and targets: %w", err)
	}

	log.Info().
		Int("rows", full.Rows()).
		Int("feature_columns", len(features.Columns())).
		Int("target_columns", len(targets.Columns())).
		Msg("dataset loaded")

	return full, nil
}
