package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/matzehuels/pinmap/pkg/errors"
	"github.com/matzehuels/pinmap/pkg/layout"
)

// FileStore keeps plans as JSON files in one directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates the directory if needed. An empty baseDir uses
// ~/.config/pinmap/plans.
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "pinmap", "plans")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, fmt.Errorf("create plan dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) planPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

func (s *FileStore) Save(ctx context.Context, plan *layout.Plan) (string, error) {
	rec, err := newRecord(plan)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal plan: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.WriteFile(s.planPath(rec.ID), data, 0o600); err != nil {
		return "", fmt.Errorf("write plan file: %w", err)
	}
	return rec.ID, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (*layout.Plan, error) {
	if err := errors.ValidatePlanID(id); err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(s.planPath(id))
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, fmt.Errorf("read plan file: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse plan %s", id)
	}
	return rec.load()
}

func (s *FileStore) Close() error { return nil }

// Path returns the plan directory.
func (s *FileStore) Path() string { return s.baseDir }

var _ Store = (*FileStore)(nil)
