package engine

import (
	"github.com/eci-voterfind/voterfind/internal/store"
)

// Backend is anything that can serve both halves of the store's external
// interface: posting-list lookups and score-mode row fetches.
type Backend interface {
	store.IndexStore
	store.RowStore
}

// BackendConfig selects which concrete store backend the engine talks to,
// in priority order, with an always-available fallback.
type BackendConfig struct {
	// PreferredOrder names backends by priority, highest first. Recognized
	// names: "bbolt" (a synced on-disk snapshot) and "memory" (an empty,
	// always-available in-process store, useful for a server with no
	// snapshot configured yet).
	PreferredOrder []string
	BoltPath       string
}

// DefaultBackendConfig prefers a bbolt snapshot and falls back to memory.
func DefaultBackendConfig() *BackendConfig {
	return &BackendConfig{
		PreferredOrder: []string{"bbolt", "memory"},
		BoltPath:       "voterfind.db",
	}
}

// BackendFactory detects which backends are actually available and
// resolves the best one per PreferredOrder. It holds no process-global
// state beyond what it constructs itself.
type BackendFactory struct {
	config    *BackendConfig
	backends  map[string]Backend
	available map[string]bool
	best      Backend
	bestName  string
}

// NewBackendFactory probes every backend named in cfg.PreferredOrder and
// resolves the highest-priority one that is actually available. The
// memory backend is always available, so this never fails outright.
func NewBackendFactory(cfg *BackendConfig) *BackendFactory {
	if cfg == nil {
		cfg = DefaultBackendConfig()
	}
	f := &BackendFactory{
		config:    cfg,
		backends:  make(map[string]Backend),
		available: make(map[string]bool),
	}
	f.detectBackends()
	f.selectBest()
	return f
}

func (f *BackendFactory) detectBackends() {
	if bolt, err := store.OpenBoltStoreReadOnly(f.config.BoltPath); err == nil {
		f.backends["bbolt"] = bolt
		f.available["bbolt"] = true
	} else {
		f.available["bbolt"] = false
	}

	mem := store.NewMemStore()
	f.backends["memory"] = mem
	f.available["memory"] = true
}

func (f *BackendFactory) selectBest() {
	for _, name := range f.config.PreferredOrder {
		if f.available[name] {
			f.best = f.backends[name]
			f.bestName = name
			return
		}
	}
}

// Best returns the resolved highest-priority available backend.
func (f *BackendFactory) Best() Backend { return f.best }

// BestName names which backend Best resolved to.
func (f *BackendFactory) BestName() string { return f.bestName }

// Backend returns a specific named backend regardless of selection order,
// or nil if that backend was never detected.
func (f *BackendFactory) Backend(name string) Backend { return f.backends[name] }
