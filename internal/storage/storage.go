// Package storage provides persistent run history for the evaluation
// harness. It uses BoltDB as the underlying storage engine to keep the
// score ledger of every completed run, so past runs can be compared
// without re-running the experiments.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"imbalance-bench/internal/experiment"
)

const runsBucket = "runs" // Bucket name for storing run records

// Run is a persisted record of one completed evaluation run.
type Run struct {
	ID         string              `json:"id"`
	StartedAt  time.Time           `json:"startedAt"`
	FinishedAt time.Time           `json:"finishedAt"`
	DataStem   string              `json:"dataStem"`
	Results    []experiment.Result `json:"results"`
}

// Store provides persistent storage for run history using BoltDB.
type Store struct {
	db *bbolt.DB
}

// New creates a new storage instance with the specified data path.
// It initializes the BoltDB database and creates the runs bucket.
func New(dataPath string) (*Store, error) {
	dbPath := filepath.Join(dataPath, "run-history.db")

	db, err := bbolt.Open(dbPath, 0o600, &bbolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(runsBucket)); err != nil {
			return fmt.Errorf("create runs bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// Close closes the database connection gracefully.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun stores a run record. The record key is "startedAt_id" so a
// cursor scan returns runs in chronological order.
func (s *Store) SaveRun(run Run) error {
	if run.ID == "" {
		return fmt.Errorf("run id must not be empty")
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(runsBucket))

		data, err := json.Marshal(run)
		if err != nil {
			return fmt.Errorf("marshal run: %w", err)
		}

		return b.Put(runKey(run), data)
	})
}

// GetRun retrieves a single run by id. The second return value reports
// whether the run was found.
func (s *Store) GetRun(id string) (Run, bool, error) {
	var (
		run   Run
		found bool
	)
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(runsBucket)).Cursor()
		suffix := []byte("_" + id)
		for k, v := c.First(); k != nil; k, v = c.Next() {
			if !bytes.HasSuffix(k, suffix) {
				continue
			}
			if err := json.Unmarshal(v, &run); err != nil {
				return fmt.Errorf("unmarshal run: %w", err)
			}
			found = true
			return nil
		}
		return nil
	})
	return run, found, err
}

// ListRuns retrieves runs that started within a time range, ordered by
// start time. The range is inclusive of both ends.
func (s *Store) ListRuns(start, end time.Time) ([]Run, error) {
	var runs []Run

	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket([]byte(runsBucket)).Cursor()

		startKey := []byte(fmt.Sprintf("%020d", start.UnixNano()))
		endKey := []byte(fmt.Sprintf("%020d", end.UnixNano()+1))

		for k, v := c.Seek(startKey); k != nil && bytes.Compare(k, endKey) < 0; k, v = c.Next() {
			var run Run
			if err := json.Unmarshal(v, &run); err != nil {
				continue // Skip malformed records
			}
			runs = append(runs, run)
		}

		return nil
	})

	return runs, err
}

func runKey(run Run) []byte {
	return []byte(fmt.Sprintf("%020d_%s", run.StartedAt.UnixNano(), run.ID))
}
