package presets

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/preflop/internal/model"
)

type memKV map[string][]byte

func (m memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Set(_ context.Context, key string, value []byte) error {
	m[key] = append([]byte(nil), value...)
	return nil
}

func TestListSeedsDefaults(t *testing.T) {
	kv := memKV{}
	s := New(kv, nil)
	list, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].Name != "Quick Start" || list[2].Config.HeroPosition != model.BB {
		t.Fatalf("unexpected defaults %+v", list)
	}
	if list[2].Config.HandStart != model.StartLateVsEarly || len(list[1].Config.SelectedHands) != 169 {
		t.Fatalf("unexpected default config %+v", list[2].Config)
	}
	if !strings.Contains(string(kv[PresetsKey]), `"selectedHands":null`) {
		t.Fatalf("expected defaults persisted with all hands, got %s", kv[PresetsKey])
	}
}

func TestAddCapAndRemove(t *testing.T) {
	ctx := context.Background()
	s := New(memKV{}, nil)
	cfg := model.PracticeConfig{
		HeroPosition:    model.CO,
		VillainPosition: model.AnyPosition,
		GameType:        model.FoldNoFold,
		HandStart:       model.StartBoth,
		SelectedHands:   map[model.Hand]bool{"AKs": true, "QQ": true},
	}
	var added Preset
	for i := 0; i < 3; i++ {
		p, err := s.Add(ctx, " CO drill ", cfg)
		if err != nil {
			t.Fatalf("add %d: %v", i, err)
		}
		added = p
	}
	if _, err := s.Add(ctx, "one more", cfg); !errors.Is(err, ErrFull) {
		t.Fatalf("expected ErrFull, got %v", err)
	}
	if _, err := s.Add(ctx, "  ", cfg); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got %v", err)
	}

	got, err := s.Find(ctx, added.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.Name != "CO drill" || len(got.Config.SelectedHands) != 2 || !got.Config.SelectedHands["QQ"] {
		t.Fatalf("unexpected preset %+v", got)
	}

	if err := s.Remove(ctx, "button play"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	list, _ := s.List(ctx)
	if len(list) != 5 {
		t.Fatalf("expected 5 presets, got %d", len(list))
	}
	if err := s.Remove(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLastConfigRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(memKV{}, nil)
	if _, ok, err := s.LoadLast(ctx); ok || err != nil {
		t.Fatalf("expected no last config, got ok=%v err=%v", ok, err)
	}
	cfg := model.PracticeConfig{
		HeroPosition:      model.SB,
		VillainPosition:   model.BB,
		GameType:          model.FullMode,
		HandStart:         model.StartEarlyVsLate,
		SelectedHands:     map[model.Hand]bool{},
		OnlyPlayableHands: true,
	}
	if err := s.SaveLast(ctx, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.LoadLast(ctx)
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.HeroPosition != model.SB || got.VillainPosition != model.BB || !got.OnlyPlayableHands {
		t.Fatalf("unexpected config %+v", got)
	}
	if len(got.SelectedHands) != 0 {
		t.Fatalf("expected empty selection to survive, got %d hands", len(got.SelectedHands))
	}
}

func TestUnreadableLastConfigIgnored(t *testing.T) {
	kv := memKV{LastConfigKey: []byte("{broken")}
	if _, ok, err := New(kv, nil).LoadLast(context.Background()); ok || err != nil {
		t.Fatalf("expected broken config to be ignored, got ok=%v err=%v", ok, err)
	}
}
