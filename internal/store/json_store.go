package store

import (
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

// JSONStore keeps all keys in one JSON object on disk. Every write rewrites
// the file through a temp file and rename.
type JSONStore struct {
	filePath string
	logger   *slog.Logger
	mu       sync.RWMutex
	values   map[string]string
	closed   bool
}

// NewJSONStore opens the store at filePath. A file that is not a JSON object
// of strings is moved aside to filePath + ".corrupt" and the store starts
// empty.
func NewJSONStore(filePath string, logger *slog.Logger) (*JSONStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &JSONStore{
		filePath: filePath,
		logger:   logger,
		values:   make(map[string]string),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *JSONStore) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return "", false, ErrClosed
	}
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *JSONStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	prev, had := s.values[key]
	s.values[key] = value
	if err := s.persistLocked(); err != nil {
		if had {
			s.values[key] = prev
		} else {
			delete(s.values, key)
		}
		return err
	}
	return nil
}

func (s *JSONStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	prev, ok := s.values[key]
	if !ok {
		return nil
	}
	delete(s.values, key)
	if err := s.persistLocked(); err != nil {
		s.values[key] = prev
		return err
	}
	return nil
}

func (s *JSONStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *JSONStore) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	var values map[string]string
	if err := json.Unmarshal(data, &values); err != nil {
		aside := s.filePath + ".corrupt"
		s.logger.Warn("unreadable store file, starting empty",
			"path", s.filePath, "moved_to", aside, "error", err)
		if rerr := os.Rename(s.filePath, aside); rerr != nil {
			s.logger.Error("move unreadable store file", "path", s.filePath, "error", rerr)
		}
		return nil
	}
	if values != nil {
		s.values = values
	}
	return nil
}

func (s *JSONStore) persistLocked() error {
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s.values, "", "  ")
	if err != nil {
		return err
	}

	tmpPath := s.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, s.filePath)
}
