// Package practice runs the deal/grade loop of a practice session.
package practice

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
)

var (
	// ErrEmptyDeck is returned when a session is started without items.
	ErrEmptyDeck = errors.New("practice deck is empty")
	// ErrNotAccepting is returned for answers outside a dealt hand.
	ErrNotAccepting = errors.New("no hand is waiting for an answer")
)

// State is the session lifecycle phase.
type State int

// Lifecycle phases.
const (
	Idle State = iota
	Ready
	Dealing
)

func (s State) String() string {
	switch s {
	case Dealing:
		return "dealing"
	case Ready:
		return "ready"
	}
	return "idle"
}

// Observer is notified after every graded hand.
type Observer interface {
	HandGraded(rec model.HandRecord)
}

// Recorder persists a finished session.
type Recorder interface {
	Save(ctx context.Context, result Result)
}

// Result is what a session hands to the recorder when it ends.
type Result struct {
	Config    model.PracticeConfig
	Stats     model.SessionStats
	Breakdown model.Breakdown
	EndedAt   time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithObserver attaches a grading observer such as the coach.
func WithObserver(o Observer) Option {
	return func(s *Session) {
		s.observer = o
	}
}

// WithRecorder attaches the recorder End hands results to.
func WithRecorder(r Recorder) Option {
	return func(s *Session) {
		s.recorder = r
	}
}

// WithLogger sets the diagnostics logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// Session owns the deck, counters and hand log of one practice run. All
// methods are safe for concurrent use.
type Session struct {
	mu        sync.Mutex
	cfg       model.PracticeConfig
	deck      []model.PracticeItem
	cursor    int
	current   model.PracticeItem
	hasItem   bool
	accepting bool
	state     State
	dealtAt   time.Time
	stats     model.SessionStats
	records   []model.HandRecord
	breakdown model.Breakdown
	last      Result

	now      func() time.Time
	observer Observer
	recorder Recorder
	logger   *log.Logger
}

// New returns an idle session for cfg.
func New(cfg model.PracticeConfig, opts ...Option) *Session {
	s := &Session{cfg: cfg.Clone(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard)
	}
	return s
}

// Start resets every field and begins a session over deck.
func (s *Session) Start(deck []model.PracticeItem) error {
	if len(deck) == 0 {
		return ErrEmptyDeck
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deck = append([]model.PracticeItem(nil), deck...)
	s.cursor = 0
	s.current = model.PracticeItem{}
	s.hasItem = false
	s.accepting = false
	s.records = nil
	s.breakdown = model.Breakdown{
		ByPosition: make(map[model.Position]model.Bucket),
		ByCategory: make(map[model.Category]model.Bucket),
	}
	s.stats = model.SessionStats{StartedAt: s.now()}
	s.state = Ready
	s.logger.Debug("session started", "items", len(deck))
	return nil
}

// DealNext sets the current item to the deck entry under the cursor,
// wrapping past the end.
func (s *Session) DealNext() (model.PracticeItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.deck) == 0 || s.state == Idle {
		return model.PracticeItem{}, ErrEmptyDeck
	}
	s.cursor %= len(s.deck)
	s.current = s.deck[s.cursor]
	s.hasItem = true
	s.accepting = true
	s.state = Dealing
	s.dealtAt = s.now()
	return s.current, nil
}

// Submit grades an answer for the current item.
func (s *Session) Submit(a model.Action) (model.HandRecord, error) {
	return s.grade(a, false)
}

// Skip records the current item as skipped, which always counts as wrong.
func (s *Session) Skip() (model.HandRecord, error) {
	return s.grade(model.Skipped, true)
}

func (s *Session) grade(a model.Action, skipped bool) (model.HandRecord, error) {
	s.mu.Lock()
	if !s.accepting || !s.hasItem {
		s.mu.Unlock()
		return model.HandRecord{}, ErrNotAccepting
	}
	s.accepting = false

	correct := !skipped && Grade(s.current.CorrectAction, a, s.cfg.GameType)
	s.stats.HandsPlayed++
	if correct {
		s.stats.CorrectDecisions++
		s.stats.CurrentStreak++
		if s.stats.CurrentStreak > s.stats.BestStreak {
			s.stats.BestStreak = s.stats.CurrentStreak
		}
	} else {
		s.stats.CurrentStreak = 0
	}

	rec := model.HandRecord{
		PracticeItem: s.current,
		UserAction:   a,
		IsCorrect:    correct,
		WasSkipped:   skipped,
		HandNumber:   s.stats.HandsPlayed,
		DecisionTime: s.now().Sub(s.dealtAt),
	}
	s.records = append(s.records, rec)
	s.count(rec)
	s.cursor = (s.cursor + 1) % len(s.deck)
	s.state = Ready
	observer := s.observer
	s.mu.Unlock()

	if observer != nil {
		observer.HandGraded(rec)
	}
	return rec, nil
}

func (s *Session) count(rec model.HandRecord) {
	category := hand.Classify(rec.Hand)
	pos := s.breakdown.ByPosition[rec.Hero]
	cat := s.breakdown.ByCategory[category]
	if rec.IsCorrect {
		pos.Correct++
		cat.Correct++
	} else {
		pos.Wrong++
		cat.Wrong++
	}
	s.breakdown.ByPosition[rec.Hero] = pos
	s.breakdown.ByCategory[category] = cat
}

// End stops the session, hands the result to the recorder and returns it.
// The hand log stays readable until the next Start. Ending an idle session
// returns the previous result and records nothing.
func (s *Session) End(ctx context.Context) Result {
	s.mu.Lock()
	if s.state == Idle {
		res := s.last
		s.mu.Unlock()
		return res
	}
	res := s.resultLocked()
	s.accepting = false
	s.hasItem = false
	s.state = Idle
	s.last = res
	recorder := s.recorder
	s.mu.Unlock()

	if recorder != nil {
		recorder.Save(ctx, res)
	}
	return res
}

// Snapshot returns the result End would produce without ending the session
// or recording anything.
func (s *Session) Snapshot() Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Idle {
		return s.last
	}
	return s.resultLocked()
}

func (s *Session) resultLocked() Result {
	return Result{
		Config:    s.cfg.Clone(),
		Stats:     s.stats,
		Breakdown: cloneBreakdown(s.breakdown),
		EndedAt:   s.now(),
	}
}

// Current returns the dealt item, if any.
func (s *Session) Current() (model.PracticeItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.hasItem
}

// Accepting reports whether an answer would be graded.
func (s *Session) Accepting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepting
}

// State returns the lifecycle phase.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Stats returns a copy of the running counters.
func (s *Session) Stats() model.SessionStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Records returns a copy of the hand log.
func (s *Session) Records() []model.HandRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.HandRecord(nil), s.records...)
}

// Config returns the configuration snapshot.
func (s *Session) Config() model.PracticeConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// DeckSize returns the number of items in the deck.
func (s *Session) DeckSize() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deck)
}

func cloneBreakdown(b model.Breakdown) model.Breakdown {
	out := model.Breakdown{
		ByPosition: make(map[model.Position]model.Bucket, len(b.ByPosition)),
		ByCategory: make(map[model.Category]model.Bucket, len(b.ByCategory)),
	}
	for k, v := range b.ByPosition {
		out.ByPosition[k] = v
	}
	for k, v := range b.ByCategory {
		out.ByCategory[k] = v
	}
	return out
}
