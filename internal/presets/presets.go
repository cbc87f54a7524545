// Package presets keeps named practice configurations and the last used one.
package presets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
)

// Storage keys.
const (
	PresetsKey    = "preflopBuilder_practiceSessions"
	LastConfigKey = "preflopBuilder_lastPracticeConfig"
)

// MaxPresets caps the number of saved presets.
const MaxPresets = 6

var (
	ErrFull      = errors.New("preset limit reached")
	ErrEmptyName = errors.New("preset name is empty")
	ErrNotFound  = errors.New("preset not found")
)

// KV is the persistence the presets need.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Preset is a named practice configuration.
type Preset struct {
	ID     string
	Name   string
	Config model.PracticeConfig
}

type storedConfig struct {
	HeroPosition      model.Position  `json:"heroPosition"`
	VillainPosition   model.Position  `json:"villainPosition"`
	GameType          model.GameType  `json:"gameType"`
	HandStart         model.HandStart `json:"handStart"`
	SelectedHands     []model.Hand    `json:"selectedHands"`
	OnlyPlayableHands bool            `json:"onlyPlayableHands"`
}

type storedPreset struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Config storedConfig `json:"config"`
}

// Defaults returns the presets offered before the user saves any.
func Defaults() []Preset {
	base := func(hero model.Position, start model.HandStart) model.PracticeConfig {
		return model.PracticeConfig{
			HeroPosition:      hero,
			VillainPosition:   model.AnyPosition,
			GameType:          model.FullMode,
			HandStart:         start,
			SelectedHands:     allHands(),
			OnlyPlayableHands: true,
		}
	}
	return []Preset{
		{ID: "default-1", Name: "Quick Start", Config: base(model.AnyPosition, model.StartBoth)},
		{ID: "default-2", Name: "Button Play", Config: base(model.BU, model.StartBoth)},
		{ID: "default-3", Name: "Blinds Defense", Config: base(model.BB, model.StartLateVsEarly)},
	}
}

// Store reads and writes presets through a KV.
type Store struct {
	kv     KV
	logger *log.Logger
}

// New returns a Store. A nil logger discards output.
func New(kv KV, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{kv: kv, logger: logger}
}

// List returns the saved presets, seeding the defaults on first use.
func (s *Store) List(ctx context.Context) ([]Preset, error) {
	raw, ok, err := s.kv.Get(ctx, PresetsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		defaults := Defaults()
		if err := s.save(ctx, defaults); err != nil {
			return nil, err
		}
		return defaults, nil
	}
	var stored []storedPreset
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("discarding unreadable presets", "err", err)
		return Defaults(), nil
	}
	out := make([]Preset, 0, len(stored))
	for _, p := range stored {
		out = append(out, Preset{ID: p.ID, Name: p.Name, Config: fromStored(p.Config)})
	}
	return out, nil
}

// Find returns the preset whose ID or name matches ref. Names match
// case-insensitively.
func (s *Store) Find(ctx context.Context, ref string) (Preset, error) {
	list, err := s.List(ctx)
	if err != nil {
		return Preset{}, err
	}
	for _, p := range list {
		if p.ID == ref || strings.EqualFold(p.Name, strings.TrimSpace(ref)) {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Add saves a new preset with a fresh id.
func (s *Store) Add(ctx context.Context, name string, cfg model.PracticeConfig) (Preset, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Preset{}, ErrEmptyName
	}
	list, err := s.List(ctx)
	if err != nil {
		return Preset{}, err
	}
	if len(list) >= MaxPresets {
		return Preset{}, ErrFull
	}
	p := Preset{ID: "session-" + uuid.NewString(), Name: name, Config: cfg.Clone()}
	list = append(list, p)
	if err := s.save(ctx, list); err != nil {
		return Preset{}, err
	}
	return p, nil
}

// Remove deletes the preset whose ID or name matches ref.
func (s *Store) Remove(ctx context.Context, ref string) error {
	target, err := s.Find(ctx, ref)
	if err != nil {
		return err
	}
	list, err := s.List(ctx)
	if err != nil {
		return err
	}
	kept := list[:0]
	for _, p := range list {
		if p.ID != target.ID {
			kept = append(kept, p)
		}
	}
	return s.save(ctx, kept)
}

// SaveLast remembers cfg as the most recently started configuration.
func (s *Store) SaveLast(ctx context.Context, cfg model.PracticeConfig) error {
	data, err := json.Marshal(toStored(cfg))
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, LastConfigKey, data)
}

// LoadLast returns the most recently started configuration, if any.
func (s *Store) LoadLast(ctx context.Context) (model.PracticeConfig, bool, error) {
	raw, ok, err := s.kv.Get(ctx, LastConfigKey)
	if err != nil || !ok {
		return model.PracticeConfig{}, false, err
	}
	var stored storedConfig
	if err := json.Unmarshal(raw, &stored); err != nil {
		s.logger.Warn("discarding unreadable last config", "err", err)
		return model.PracticeConfig{}, false, nil
	}
	return fromStored(stored), true, nil
}

func (s *Store) save(ctx context.Context, list []Preset) error {
	stored := make([]storedPreset, 0, len(list))
	for _, p := range list {
		stored = append(stored, storedPreset{ID: p.ID, Name: p.Name, Config: toStored(p.Config)})
	}
	data, err := json.Marshal(stored)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, PresetsKey, data)
}

// toStored writes a null hand list when every hand is selected.
func toStored(cfg model.PracticeConfig) storedConfig {
	out := storedConfig{
		HeroPosition:      cfg.HeroPosition,
		VillainPosition:   cfg.VillainPosition,
		GameType:          cfg.GameType,
		HandStart:         cfg.HandStart,
		OnlyPlayableHands: cfg.OnlyPlayableHands,
	}
	if selected := hand.Sorted(cfg.SelectedHands); len(selected) < hand.Count {
		out.SelectedHands = selected
	}
	return out
}

func fromStored(c storedConfig) model.PracticeConfig {
	cfg := model.PracticeConfig{
		HeroPosition:      orAny(c.HeroPosition),
		VillainPosition:   orAny(c.VillainPosition),
		GameType:          c.GameType,
		HandStart:         c.HandStart,
		OnlyPlayableHands: c.OnlyPlayableHands,
	}
	if cfg.GameType == "" {
		cfg.GameType = model.FullMode
	}
	if cfg.HandStart == "" {
		cfg.HandStart = model.StartBoth
	}
	if c.SelectedHands == nil {
		cfg.SelectedHands = allHands()
		return cfg
	}
	cfg.SelectedHands = make(map[model.Hand]bool, len(c.SelectedHands))
	for _, h := range c.SelectedHands {
		if hand.Valid(h) {
			cfg.SelectedHands[h] = true
		}
	}
	return cfg
}

func orAny(p model.Position) model.Position {
	if p == "" {
		return model.AnyPosition
	}
	return p
}

func allHands() map[model.Hand]bool {
	out := make(map[model.Hand]bool, hand.Count)
	for _, h := range hand.All() {
		out[h] = true
	}
	return out
}
