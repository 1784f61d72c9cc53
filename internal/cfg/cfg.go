package cfg

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"imbalance-bench/internal/dataset"
)

type Settings struct {
	DataPath   string
	FileStem   string
	OutputPath string
	StorePath  string
	LogPath    string
	Debug      bool

	Seed            int64
	SMOTESeed       int64
	Folds           int
	Estimators      int
	Neighbors       int
	DangerNeighbors int

	CategoricalColumns   []string
	ScaleColumns         []string
	CategoricalPositions []int
}

// ConfigFile is the YAML layout. Zero-valued numeric fields are treated as
// unset and fall back to their defaults, so a literal `seed: 0` cannot be
// expressed through YAML; use the SEED environment override for that.
type ConfigFile struct {
	Data struct {
		Path               string   `yaml:"path"`
		FileStem           string   `yaml:"fileStem"`
		CategoricalColumns []string `yaml:"categoricalColumns"`
		ScaleColumns       []string `yaml:"scaleColumns"`
	} `yaml:"data"`

	Sampling struct {
		Seed                 int64 `yaml:"seed"`
		SMOTESeed            int64 `yaml:"smoteSeed"`
		Neighbors            int   `yaml:"neighbors"`
		DangerNeighbors      int   `yaml:"dangerNeighbors"`
		CategoricalPositions []int `yaml:"categoricalPositions"`
	} `yaml:"sampling"`

	Evaluation struct {
		Folds      int `yaml:"folds"`
		Estimators int `yaml:"estimators"`
	} `yaml:"evaluation"`

	System struct {
		OutputPath string `yaml:"outputPath"`
		StorePath  string `yaml:"storePath"`
		LogPath    string `yaml:"logPath"`
		Debug      bool   `yaml:"debug"`
	} `yaml:"system"`
}

func Load() (Settings, error) {
	// Try to load from YAML file first
	if configPath := os.Getenv("CONFIG_FILE"); configPath != "" {
		return loadFromYAML(configPath)
	}

	// Fallback to environment variables
	return loadFromEnv()
}

func loadFromYAML(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(data, &config); err != nil {
		return Settings{}, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if they exist
	settings := Settings{
		DataPath:             getEnvOrDefault("DATA_PATH", config.Data.Path),
		FileStem:             getEnvOrDefault("FILE_STEM", valueOrDefault(config.Data.FileStem, "kdd")),
		OutputPath:           getEnvOrDefault("OUTPUT_PATH", valueOrDefault(config.System.OutputPath, "output")),
		StorePath:            getEnvOrDefault("STORE_PATH", config.System.StorePath),
		LogPath:              getEnvOrDefault("LOG_PATH", valueOrDefault(config.System.LogPath, "logs")),
		Debug:                getBoolFromEnvOrConfig("DEBUG", config.System.Debug),
		Seed:                 getInt64FromEnvOrConfig("SEED", config.Sampling.Seed, 20),
		SMOTESeed:            getInt64FromEnvOrConfig("SMOTE_SEED", config.Sampling.SMOTESeed, 0),
		Folds:                getIntFromEnvOrConfig("FOLDS", config.Evaluation.Folds, 10),
		Estimators:           getIntFromEnvOrConfig("ESTIMATORS", config.Evaluation.Estimators, 100),
		Neighbors:            getIntFromEnvOrConfig("NEIGHBORS", config.Sampling.Neighbors, 5),
		DangerNeighbors:      getIntFromEnvOrConfig("DANGER_NEIGHBORS", config.Sampling.DangerNeighbors, 10),
		CategoricalColumns:   sliceOrDefault(config.Data.CategoricalColumns, dataset.CategoricalColumns),
		ScaleColumns:         sliceOrDefault(config.Data.ScaleColumns, dataset.ScaleColumns),
		CategoricalPositions: intSliceOrDefault(config.Sampling.CategoricalPositions, []int{1, 2, 3}),
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func loadFromEnv() (Settings, error) {
	dataPath, err := getEnvRequired("DATA_PATH")
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{
		DataPath:             dataPath,
		FileStem:             getEnvOrDefault("FILE_STEM", "kdd"),
		OutputPath:           getEnvOrDefault("OUTPUT_PATH", "output"),
		StorePath:            os.Getenv("STORE_PATH"), // optional
		LogPath:              getEnvOrDefault("LOG_PATH", "logs"),
		Debug:                getBoolOrDefault("DEBUG", false),
		Seed:                 getInt64OrDefault("SEED", 20),
		SMOTESeed:            getInt64OrDefault("SMOTE_SEED", 0),
		Folds:                getIntOrDefault("FOLDS", 10),
		Estimators:           getIntOrDefault("ESTIMATORS", 100),
		Neighbors:            getIntOrDefault("NEIGHBORS", 5),
		DangerNeighbors:      getIntOrDefault("DANGER_NEIGHBORS", 10),
		CategoricalColumns:   splitOrDefault(os.Getenv("CATEGORICAL_COLUMNS"), dataset.CategoricalColumns),
		ScaleColumns:         splitOrDefault(os.Getenv("SCALE_COLUMNS"), dataset.ScaleColumns),
		CategoricalPositions: intSplitOrDefault(os.Getenv("CATEGORICAL_POSITIONS"), []int{1, 2, 3}),
	}

	if err := validateSettings(&settings); err != nil {
		return Settings{}, fmt.Errorf("configuration validation failed: %w", err)
	}

	return settings, nil
}

func getEnvRequired(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is missing", key)
	}
	return v, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func valueOrDefault(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

func getIntOrDefault(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getInt64OrDefault(key string, defaultValue int64) int64 {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.ParseInt(v, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitOrDefault(v string, def []string) []string {
	if v == "" {
		return def
	}
	return strings.Split(v, ",")
}

func intSplitOrDefault(v string, def []int) []int {
	if v == "" {
		return def
	}
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		i, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return def
		}
		out = append(out, i)
	}
	return out
}

func sliceOrDefault(v, def []string) []string {
	if len(v) > 0 {
		return v
	}
	return def
}

func intSliceOrDefault(v, def []int) []int {
	if len(v) > 0 {
		return v
	}
	return def
}

func getIntFromEnvOrConfig(key string, configValue, def int) int {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.Atoi(env); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return def
}

func getInt64FromEnvOrConfig(key string, configValue, def int64) int64 {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.ParseInt(env, 10, 64); err == nil {
			return val
		}
	}
	if configValue != 0 {
		return configValue
	}
	return def
}

func getBoolFromEnvOrConfig(key string, configValue bool) bool {
	if env := os.Getenv(key); env != "" {
		if val, err := strconv.ParseBool(env); err == nil {
			return val
		}
	}
	return configValue
}

// validateSettings performs validation of configuration values
func validateSettings(settings *Settings) error {
	if settings.DataPath == "" {
		return fmt.Errorf("data path is required")
	}
	if settings.FileStem == "" {
		return fmt.Errorf("file stem cannot be empty")
	}
	if settings.OutputPath == "" {
		return fmt.Errorf("output path cannot be empty")
	}

	if settings.Folds < 2 || settings.Folds > 100 {
		return fmt.Errorf("folds must be between 2 and 100, got %d", settings.Folds)
	}
	if settings.Estimators <= 0 || settings.Estimators > 10000 {
		return fmt.Errorf("estimators must be between 1 and 10000, got %d", settings.Estimators)
	}
	if settings.Neighbors <= 0 || settings.Neighbors > 100 {
		return fmt.Errorf("neighbors must be between 1 and 100, got %d", settings.Neighbors)
	}
	if settings.DangerNeighbors <= 0 || settings.DangerNeighbors > 100 {
		return fmt.Errorf("danger neighbors must be between 1 and 100, got %d", settings.DangerNeighbors)
	}

	if len(settings.CategoricalColumns) == 0 {
		return fmt.Errorf("at least one categorical column must be specified")
	}
	if len(settings.ScaleColumns) == 0 {
		return fmt.Errorf("at least one scale column must be specified")
	}

	if len(settings.CategoricalPositions) == 0 {
		return fmt.Errorf("at least one categorical position must be specified")
	}
	seen := make(map[int]bool)
	for _, p := range settings.CategoricalPositions {
		if p < 0 {
			return fmt.Errorf("categorical positions must be non-negative, got %d", p)
		}
		if seen[p] {
			return fmt.Errorf("duplicate categorical position %d", p)
		}
		seen[p] = true
	}

	return nil
}
