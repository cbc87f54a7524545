// Package ranges holds the per-matchup action charts read by the deck builder.
package ranges

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/preflop/internal/model"
)

// StorageKey is the key-value entry holding the user-edited ranges.
const StorageKey = "preflop-builder-ranges"

//go:embed defaults.json
var embeddedDefaults []byte

// Range maps hands to their recommended action for one matchup.
type Range map[model.Hand]model.Action

// Lookup returns the assignment for h, keeping "no entry" apart from fold.
func (r Range) Lookup(h model.Hand) model.Assignment {
	a, ok := r[h]
	if !ok {
		return model.Unassigned
	}
	return model.Assigned(a)
}

// Set maps matchup keys ("BU_vs_SB") to ranges.
type Set map[string]Range

// Keys returns the matchup keys in sorted order.
func (s Set) Keys() []string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, r := range s {
		cp := make(Range, len(r))
		for h, a := range r {
			cp[h] = a
		}
		out[k] = cp
	}
	return out
}

// Equal reports whether both sets hold the same keys, hands and actions.
func (s Set) Equal(other Set) bool {
	if len(s) != len(other) {
		return false
	}
	for k, r := range s {
		o, ok := other[k]
		if !ok || len(o) != len(r) {
			return false
		}
		for h, a := range r {
			if o[h] != a {
				return false
			}
		}
	}
	return true
}

// Status describes where lookups get their data from.
type Status string

// Range data sources.
const (
	StatusNone    Status = "none"
	StatusDefault Status = "default"
	StatusCustom  Status = "custom"
)

// KV is the persisted key-value store the table saves user ranges to.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Table resolves ranges from user-edited data first and defaults second.
type Table struct {
	mu       sync.RWMutex
	user     Set
	defaults Set
	kv       KV
	logger   *log.Logger
}

// NewTable builds a table over copies of the given sets. kv may be nil for an
// in-memory table.
func NewTable(defaults, user Set, kv KV, logger *log.Logger) *Table {
	if defaults == nil {
		defaults = Set{}
	}
	if user == nil {
		user = Set{}
	}
	if logger == nil {
		logger = discardLogger()
	}
	return &Table{user: user.Clone(), defaults: defaults.Clone(), kv: kv, logger: logger}
}

// Open loads defaults (embedded when path is empty) and the persisted user
// ranges. Unreadable user data is logged and treated as empty.
func Open(ctx context.Context, kv KV, defaultsPath string, logger *log.Logger) (*Table, error) {
	defaults, err := LoadDefaults(defaultsPath)
	if err != nil {
		return nil, err
	}
	t := NewTable(defaults, nil, kv, logger)
	if err := t.load(ctx); err != nil {
		t.logger.Warn("discarding saved ranges", "err", err)
	}
	return t, nil
}

// Range returns the range for key. A user entry wins even when empty.
func (t *Table) Range(key string) (Range, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if r, ok := t.user[key]; ok {
		return r, true
	}
	r, ok := t.defaults[key]
	return r, ok
}

// Lookup resolves a single hand in a matchup.
func (t *Table) Lookup(hero, villain model.Position, h model.Hand) model.Assignment {
	r, ok := t.Range(model.MatchupKey(hero, villain))
	if !ok {
		return model.Unassigned
	}
	return r.Lookup(h)
}

// Effective returns the merged view used for lookups: defaults overlaid by
// user entries.
func (t *Table) Effective() Set {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := t.defaults.Clone()
	for k, r := range t.user.Clone() {
		out[k] = r
	}
	return out
}

// User returns a copy of the user-edited ranges.
func (t *Table) User() Set {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.user.Clone()
}

// Status reports whether lookups see no data, the defaults or custom data.
func (t *Table) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	hasUser := len(t.user) > 0
	hasDefaults := len(t.defaults) > 0
	switch {
	case !hasUser && !hasDefaults:
		return StatusNone
	case hasUser && !t.user.Equal(t.defaults):
		return StatusCustom
	default:
		return StatusDefault
	}
}

// DefaultCount returns the number of default matchups.
func (t *Table) DefaultCount() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.defaults)
}

// Assign stores an action for one hand. The matchup starts from its
// effective range so untouched hands keep their default actions.
func (t *Table) Assign(ctx context.Context, key string, h model.Hand, a model.Action) error {
	if _, _, err := model.ParseMatchupKey(key); err != nil {
		return err
	}
	if !a.Valid() {
		return fmt.Errorf("invalid action %q", a)
	}
	t.mu.Lock()
	t.ensureUserRange(key)
	t.user[key][h] = a
	t.mu.Unlock()
	return t.save(ctx)
}

// Unassign removes the entry for one hand so it becomes unplayable.
func (t *Table) Unassign(ctx context.Context, key string, h model.Hand) error {
	if _, _, err := model.ParseMatchupKey(key); err != nil {
		return err
	}
	t.mu.Lock()
	t.ensureUserRange(key)
	delete(t.user[key], h)
	t.mu.Unlock()
	return t.save(ctx)
}

func (t *Table) ensureUserRange(key string) {
	if _, ok := t.user[key]; ok {
		return
	}
	r := make(Range)
	for h, a := range t.defaults[key] {
		r[h] = a
	}
	t.user[key] = r
}

// Replace swaps the user ranges for an imported set.
func (t *Table) Replace(ctx context.Context, set Set) error {
	t.mu.Lock()
	t.user = set.Clone()
	t.mu.Unlock()
	return t.save(ctx)
}

// Reset clears the user ranges so every lookup falls back to defaults.
func (t *Table) Reset(ctx context.Context) error {
	t.mu.Lock()
	t.user = Set{}
	t.mu.Unlock()
	return t.save(ctx)
}

func (t *Table) load(ctx context.Context) error {
	if t.kv == nil {
		return nil
	}
	data, ok, err := t.kv.Get(ctx, StorageKey)
	if err != nil || !ok {
		return err
	}
	var raw map[string]map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode saved ranges: %w", err)
	}
	set, err := fromRaw(raw)
	if err != nil {
		return err
	}
	t.mu.Lock()
	t.user = set
	t.mu.Unlock()
	return nil
}

func (t *Table) save(ctx context.Context) error {
	if t.kv == nil {
		return nil
	}
	t.mu.RLock()
	data, err := json.Marshal(t.user)
	t.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode ranges: %w", err)
	}
	if err := t.kv.Set(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save ranges: %w", err)
	}
	return nil
}
