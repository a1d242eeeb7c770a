package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dukerupert/zonetasks/internal/model"
)

const (
	filePrefix = "zonetasks-"
	fileSuffix = ".json.enc"
	stampFmt   = "2006-01-02T150405.000Z"
)

var ErrDisabled = errors.New("backup not configured: directory or passphrase missing")

// Config holds backup manager configuration.
type Config struct {
	Dir        string
	Passphrase string
	// RetentionDays removes exports older than this many days after each
	// export. Zero keeps everything.
	RetentionDays int
}

// State represents the backup manager state.
type State string

const (
	StateIdle     State = "idle"
	StateRunning  State = "running"
	StateDisabled State = "disabled"
	StateError    State = "error"
)

type Status struct {
	State      State      `json:"state"`
	LastBackup *time.Time `json:"last_backup,omitempty"`
	LastFile   string     `json:"last_file,omitempty"`
	Error      string     `json:"error,omitempty"`
	InProgress bool       `json:"in_progress"`
}

// StatusCallback is called whenever the backup state changes.
type StatusCallback func(Status)

// File describes one export on disk.
type File struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// Manager writes encrypted exports of the game state to a local directory.
type Manager struct {
	mu       sync.Mutex
	cfg      Config
	status   Status
	callback StatusCallback
	now      func() time.Time
	logger   *slog.Logger
}

func NewManager(cfg Config, callback StatusCallback, logger *slog.Logger) *Manager {
	m := &Manager{
		cfg:      cfg,
		callback: callback,
		now:      time.Now,
		logger:   logger,
		status:   Status{State: StateDisabled},
	}
	if m.Enabled() {
		m.status.State = StateIdle
	}
	return m
}

func (m *Manager) Enabled() bool {
	return m.cfg.Dir != "" && m.cfg.Passphrase != ""
}

func (m *Manager) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func (m *Manager) setStatus(s Status) {
	m.mu.Lock()
	m.status = s
	m.mu.Unlock()
	if m.callback != nil {
		m.callback(s)
	}
}

// Export encrypts state with a fresh salt and writes it to the backup
// directory, then applies retention. It returns the path written.
func (m *Manager) Export(ctx context.Context, state model.State) (string, error) {
	if !m.Enabled() {
		return "", ErrDisabled
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	m.setStatus(Status{State: StateRunning, InProgress: true})
	path, err := m.write(state)
	if err != nil {
		m.setStatus(Status{State: StateError, Error: err.Error()})
		return "", err
	}

	now := m.now().UTC()
	m.setStatus(Status{State: StateIdle, LastBackup: &now, LastFile: filepath.Base(path)})
	m.logger.Info("state exported", "file", path, "zones", len(state.Zones), "history", len(state.History))

	if removed, err := m.Cleanup(); err != nil {
		m.logger.Warn("backup cleanup failed", "error", err)
	} else if removed > 0 {
		m.logger.Info("old backups removed", "count", removed)
	}
	return path, nil
}

func (m *Manager) write(state model.State) (string, error) {
	plaintext, err := json.Marshal(state)
	if err != nil {
		return "", fmt.Errorf("encode state: %w", err)
	}
	salt, err := GenerateSalt()
	if err != nil {
		return "", err
	}
	sealed, err := Encrypt(plaintext, m.cfg.Passphrase, salt)
	if err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}

	if err := os.MkdirAll(m.cfg.Dir, 0o700); err != nil {
		return "", fmt.Errorf("create backup dir: %w", err)
	}
	name := filePrefix + m.now().UTC().Format(stampFmt) + fileSuffix
	path := filepath.Join(m.cfg.Dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, sealed, 0o600); err != nil {
		return "", fmt.Errorf("write encrypted file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("rename encrypted file: %w", err)
	}
	return path, nil
}

// List returns the exports in the backup directory, newest first.
func (m *Manager) List() ([]File, error) {
	if m.cfg.Dir == "" {
		return nil, ErrDisabled
	}
	entries, err := os.ReadDir(m.cfg.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []File{}, nil
		}
		return nil, fmt.Errorf("read backup dir: %w", err)
	}

	files := []File{}
	for _, e := range entries {
		created, ok := parseName(e.Name())
		if e.IsDir() || !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{Name: e.Name(), CreatedAt: created, SizeBytes: info.Size()})
	}
	slices.SortFunc(files, func(a, b File) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return files, nil
}

// Cleanup deletes exports older than the retention period and reports how
// many were removed.
func (m *Manager) Cleanup() (int, error) {
	if m.cfg.RetentionDays <= 0 {
		return 0, nil
	}
	files, err := m.List()
	if err != nil {
		return 0, err
	}

	before := m.now().UTC().AddDate(0, 0, -m.cfg.RetentionDays)
	removed := 0
	var errs []error
	for _, f := range files {
		if !f.CreatedAt.Before(before) {
			continue
		}
		if err := os.Remove(filepath.Join(m.cfg.Dir, f.Name)); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

// Restore decrypts an export and returns the normalized state it holds.
func Restore(path, passphrase string) (model.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.State{}, fmt.Errorf("read encrypted file: %w", err)
	}
	plaintext, err := Decrypt(data, passphrase)
	if err != nil {
		return model.State{}, err
	}
	var state model.State
	if err := json.Unmarshal(plaintext, &state); err != nil {
		return model.State{}, fmt.Errorf("decode state: %w", err)
	}
	state.Normalize()
	return state, nil
}

func parseName(name string) (time.Time, bool) {
	if !strings.HasPrefix(name, filePrefix) || !strings.HasSuffix(name, fileSuffix) {
		return time.Time{}, false
	}
	stamp := strings.TrimSuffix(strings.TrimPrefix(name, filePrefix), fileSuffix)
	t, err := time.Parse(stampFmt, stamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
