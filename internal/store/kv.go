package store

import "errors"

// Logical keys of the persisted state. Values are JSON documents.
const (
	KeyZones   = "zoneTaskManager"
	KeyHistory = "zoneTaskManager.history"
	KeyPlayer  = "zoneTaskManager.player"
	// KeyLegacyTasks holds the flat task list written by the single-list
	// variant. It is imported once and then deleted.
	KeyLegacyTasks = "tasks"
)

var ErrClosed = errors.New("store is closed")

// KV is a synchronous, local key-value store.
type KV interface {
	// Get returns ok == false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
	Delete(key string) error
	Close() error
}
