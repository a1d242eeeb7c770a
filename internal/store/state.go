package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dukerupert/zonetasks/internal/model"
)

// zonesDocument is the value stored under KeyZones. Saves written before
// versioning carry only "zones".
type zonesDocument struct {
	Version int          `json:"version"`
	Zones   []model.Zone `json:"zones"`
}

// LoadState reads the persisted state. A key that is missing, unreadable or
// unparsable is treated as absent, so the caller always gets a usable state.
func LoadState(kv KV, logger *slog.Logger) model.State {
	state := model.NewState()

	if raw, ok := read(kv, KeyZones, logger); ok {
		var doc zonesDocument
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			logger.Warn("unable to parse zones, starting empty", "key", KeyZones, "error", err)
		} else {
			state.Zones = doc.Zones
		}
	}

	if raw, ok := read(kv, KeyHistory, logger); ok {
		var history []model.ScoreEntry
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			logger.Warn("unable to parse score history, starting empty", "key", KeyHistory, "error", err)
		} else {
			state.History = history
		}
	}

	if raw, ok := read(kv, KeyPlayer, logger); ok {
		var name string
		if err := json.Unmarshal([]byte(raw), &name); err != nil {
			// Older saves kept the bare string.
			name = raw
		}
		state.PlayerName = strings.TrimSpace(name)
	}

	state.Normalize()
	return state
}

func read(kv KV, key string, logger *slog.Logger) (string, bool) {
	raw, ok, err := kv.Get(key)
	if err != nil {
		logger.Warn("unable to read state", "key", key, "error", err)
		return "", false
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return "", false
	}
	return raw, true
}

// SaveState rewrites every key of the state. All keys are attempted; the
// returned error joins the failures.
func SaveState(kv KV, s model.State) error {
	var errs []error
	if err := SaveZones(kv, s.Zones); err != nil {
		errs = append(errs, err)
	}
	if err := SaveHistory(kv, s.History); err != nil {
		errs = append(errs, err)
	}
	if err := SavePlayer(kv, s.PlayerName); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func SaveZones(kv KV, zones []model.Zone) error {
	if zones == nil {
		zones = []model.Zone{}
	}
	return setJSON(kv, KeyZones, zonesDocument{Version: model.StateVersion, Zones: zones})
}

func SaveHistory(kv KV, history []model.ScoreEntry) error {
	if history == nil {
		history = []model.ScoreEntry{}
	}
	return setJSON(kv, KeyHistory, history)
}

func SavePlayer(kv KV, name string) error {
	return setJSON(kv, KeyPlayer, name)
}

func setJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	if err := kv.Set(key, string(data)); err != nil {
		return fmt.Errorf("save %q: %w", key, err)
	}
	return nil
}
