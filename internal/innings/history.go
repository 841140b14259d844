package innings

import "github.com/DhavalSuthar-24/crease/internal/models"

// HistoryStack is a bounded LIFO of immutable match snapshots used for undo.
// When full, the oldest snapshot is discarded.
type HistoryStack struct {
	snapshots []models.MatchState
	depth     int
}

// NewHistoryStack creates a stack holding at most depth snapshots.
func NewHistoryStack(depth int) *HistoryStack {
	if depth <= 0 {
		depth = DefaultHistoryDepth
	}
	return &HistoryStack{depth: depth}
}

// Push stores a deep copy of s.
func (h *HistoryStack) Push(s models.MatchState) {
	if len(h.snapshots) == h.depth {
		copy(h.snapshots, h.snapshots[1:])
		h.snapshots = h.snapshots[:len(h.snapshots)-1]
	}
	h.snapshots = append(h.snapshots, s.Clone())
}

// Pop removes and returns the most recent snapshot.
func (h *HistoryStack) Pop() (models.MatchState, bool) {
	if len(h.snapshots) == 0 {
		return models.MatchState{}, false
	}
	last := h.snapshots[len(h.snapshots)-1]
	h.snapshots[len(h.snapshots)-1] = models.MatchState{}
	h.snapshots = h.snapshots[:len(h.snapshots)-1]
	return last, true
}

// Len is the number of snapshots available to undo.
func (h *HistoryStack) Len() int { return len(h.snapshots) }

// Depth is the configured bound.
func (h *HistoryStack) Depth() int { return h.depth }

// Clear drops every snapshot.
func (h *HistoryStack) Clear() { h.snapshots = nil }
