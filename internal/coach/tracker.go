package coach

import (
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/verte-zerg/preflop/internal/hand"
	"github.com/verte-zerg/preflop/internal/model"
)

// Kind is the tone of a feedback message.
type Kind string

// Feedback tones.
const (
	Neutral Kind = "neutral"
	Success Kind = "success"
	Warning Kind = "warning"
)

const (
	minSamples   = 3
	strongRate   = 0.7
	struggleRate = 0.5
)

var (
	positionSuccess = []string{
		"Nice! You're crushing {position} spots. Keep it up!",
		"Strong play from {position}! You really know this position.",
		"{position} is your playground today. Great read!",
		"You rarely miss from {position}. Solid fundamentals!",
	}
	positionStruggle = []string{
		"You're finding {position} tricky today. Consider tightening up.",
		"{position} seems challenging. Review the ranges for this spot.",
		"Struggling from {position}? Focus on the core opens here.",
		"Take a breath. {position} spots take practice to master.",
	}
	categorySuccess = []string{
		"You're nailing {category}! These hands are second nature to you.",
		"Great instincts with {category}. You know when to play them.",
		"{category} = easy money for you today!",
		"Solid reads on {category}. Your range knowledge is paying off.",
	}
	categoryStruggle = []string{
		"Watch your {category} plays. Consider your position more carefully.",
		"{category} is costing you today. Remember: context matters!",
		"You're overplaying {category}. Tighten up in early positions.",
		"{category} tripping you up? Focus on when these hands are profitable.",
	}
	neutralMessages = []string{
		"Keep grinding! Every hand is practice.",
		"Focus on the process, not just results.",
		"Good awareness. Stay in the zone!",
		"You're building solid habits. Keep going!",
	}
)

// Feedback is the message shown after a graded hand.
type Feedback struct {
	Message   string
	Kind      Kind
	StatLabel string
	StatValue int
}

// Tracker counts answers per position and category for one session and
// turns them into feedback. It satisfies practice.Observer.
type Tracker struct {
	mu        sync.Mutex
	breakdown model.Breakdown
	rnd       *rand.Rand
	last      Feedback
	hasLast   bool
}

// NewTracker returns an empty tracker. rnd picks templates; nil seeds from
// the clock.
func NewTracker(rnd *rand.Rand) *Tracker {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t := &Tracker{rnd: rnd}
	t.Reset()
	return t
}

// Reset clears all counts.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.breakdown = model.Breakdown{
		ByPosition: make(map[model.Position]model.Bucket),
		ByCategory: make(map[model.Category]model.Bucket),
	}
	t.last = Feedback{}
	t.hasLast = false
}

// HandGraded records a graded hand and prepares feedback for it.
func (t *Tracker) HandGraded(rec model.HandRecord) {
	category := hand.Classify(rec.Hand)
	t.Record(rec.Hero, category, rec.IsCorrect)
	fb := t.FeedbackFor(rec.Hero, category, rec.IsCorrect)
	t.mu.Lock()
	t.last = fb
	t.hasLast = true
	t.mu.Unlock()
}

// Last returns the feedback for the most recent graded hand.
func (t *Tracker) Last() (Feedback, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.last, t.hasLast
}

// Record adds one answer to the counts.
func (t *Tracker) Record(pos model.Position, c model.Category, correct bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p := t.breakdown.ByPosition[pos]
	k := t.breakdown.ByCategory[c]
	if correct {
		p.Correct++
		k.Correct++
	} else {
		p.Wrong++
		k.Wrong++
	}
	t.breakdown.ByPosition[pos] = p
	t.breakdown.ByCategory[c] = k
}

// FeedbackFor picks a message from the current counts: position feedback
// first, then category feedback, then a neutral line.
func (t *Tracker) FeedbackFor(pos model.Position, c model.Category, correct bool) Feedback {
	t.mu.Lock()
	defer t.mu.Unlock()

	if b := t.breakdown.ByPosition[pos]; b.Total() >= minSamples {
		rate := float64(b.Correct) / float64(b.Total())
		label := string(pos)
		switch {
		case rate >= strongRate && correct:
			return t.feedback(positionSuccess, "{position}", label, Success, b)
		case rate < struggleRate && !correct:
			return t.feedback(positionStruggle, "{position}", label, Warning, b)
		}
	}
	if b := t.breakdown.ByCategory[c]; b.Total() >= minSamples {
		rate := float64(b.Correct) / float64(b.Total())
		label := c.Plural()
		switch {
		case rate >= strongRate && correct:
			return t.feedback(categorySuccess, "{category}", label, Success, b)
		case rate < struggleRate && !correct:
			return t.feedback(categoryStruggle, "{category}", label, Warning, b)
		}
	}
	return Feedback{Message: t.pick(neutralMessages), Kind: Neutral}
}

func (t *Tracker) feedback(templates []string, placeholder, label string, kind Kind, b model.Bucket) Feedback {
	msg := strings.ReplaceAll(t.pick(templates), placeholder, label)
	return Feedback{
		Message:   msg,
		Kind:      kind,
		StatLabel: label,
		StatValue: model.AccuracyPct(b.Correct, b.Total()),
	}
}

func (t *Tracker) pick(templates []string) string {
	return templates[t.rnd.Intn(len(templates))]
}

// Breakdown returns a copy of the counts.
func (t *Tracker) Breakdown() model.Breakdown {
	t.mu.Lock()
	defer t.mu.Unlock()
	var out model.Breakdown
	out.Merge(t.breakdown)
	return out
}
