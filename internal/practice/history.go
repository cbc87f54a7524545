package practice

import "github.com/verte-zerg/preflop/internal/model"

// Defaults for the history strip.
const (
	DefaultHistoryWidth = 5
	DefaultMaxHands     = 100
)

// SlotKind describes how a history slot renders.
type SlotKind int

// Slot kinds.
const (
	SlotHidden SlotKind = iota
	SlotCompleted
	SlotCurrent
	SlotFuture
)

// Slot is one cell of the history window.
type Slot struct {
	Kind       SlotKind
	HandNumber int
	Record     model.HandRecord
}

// History is a paged window of fixed width over the hand log.
type History struct {
	width     int
	maxHands  int
	viewStart int
}

// NewHistory returns a tracker with the given width and per-session hand
// cap. Non-positive values fall back to the defaults.
func NewHistory(width, maxHands int) *History {
	if width <= 0 {
		width = DefaultHistoryWidth
	}
	if maxHands <= 0 {
		maxHands = DefaultMaxHands
	}
	return &History{width: width, maxHands: maxHands}
}

// Width returns the number of slots.
func (h *History) Width() int {
	return h.width
}

// ViewStart returns the 0-based index of the first visible hand.
func (h *History) ViewStart() int {
	return h.viewStart
}

// Reset moves the window back to the first hand.
func (h *History) Reset() {
	h.viewStart = 0
}

// HandCompleted follows the newest hands when the window was already
// showing the trailing edge.
func (h *History) HandCompleted(handNumber int) {
	if handNumber > h.width && h.viewStart == max(0, handNumber-1-h.width) {
		h.viewStart = handNumber - (h.width - 1)
	}
}

// Slots renders the window over records. current is the hand number of the
// pending hand.
func (h *History) Slots(records []model.HandRecord, current int) []Slot {
	slots := make([]Slot, h.width)
	for i := range slots {
		n := h.viewStart + i + 1
		slots[i].HandNumber = n
		switch {
		case n <= len(records):
			slots[i].Kind = SlotCompleted
			slots[i].Record = records[n-1]
		case n == current:
			slots[i].Kind = SlotCurrent
		case n <= h.maxHands:
			slots[i].Kind = SlotFuture
		default:
			slots[i].Kind = SlotHidden
		}
	}
	return slots
}

func (h *History) maxStart(handsPlayed int) int {
	return max(0, min(h.maxHands-h.width, handsPlayed-(h.width-1)))
}

// CanPrevious reports whether an earlier page exists.
func (h *History) CanPrevious() bool {
	return h.viewStart > 0
}

// CanNext reports whether a later page exists.
func (h *History) CanNext(handsPlayed int) bool {
	return h.viewStart < h.maxStart(handsPlayed)
}

// Previous pages back one window.
func (h *History) Previous() {
	if h.viewStart > 0 {
		h.viewStart = max(0, h.viewStart-h.width)
	}
}

// Next pages forward one window, clamped to the last useful start.
func (h *History) Next(handsPlayed int) {
	limit := h.maxStart(handsPlayed)
	if h.viewStart < limit {
		h.viewStart = min(limit, h.viewStart+h.width)
	}
}
