// Package argtrail reconstructs how one participant's position evolved
// across debates. Records arrive from many sources with their own clocks,
// so ordering leans on the record timestamps alone and never reorders
// statements made at the same instant.
package argtrail

import (
	"sort"

	"debate-archive/pkg/domain"
	"debate-archive/pkg/events"
)

// Tracker derives per-participant argument trails from argument records
type Tracker struct {
	hook events.Hook
}

// NewTracker creates a new argument tracker
func NewTracker() *Tracker {
	return &Tracker{}
}

// SetEventHook routes tracking events to the given hook
func (t *Tracker) SetEventHook(hook events.Hook) {
	t.hook = hook
}

// Trail filters records down to one participant, orders them ascending by
// timestamp, and projects each to its debate reference and argument text.
// Matching is by exact participant id, alias resolution happens upstream.
// Records with equal timestamps keep their relative input order, and the
// input slice is never reordered.
func (t *Tracker) Trail(records []domain.ArgumentRecord, participantId string) []domain.TrailEntry {
	matched := make([]domain.ArgumentRecord, 0, len(records))
	for _, record := range records {
		if record.ParticipantId == participantId {
			matched = append(matched, record)
		}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.Before(matched[j].Timestamp)
	})

	trail := make([]domain.TrailEntry, 0, len(matched))
	for _, record := range matched {
		trail = append(trail, domain.TrailEntry{
			DebateId: record.DebateId,
			Argument: record.Argument,
		})
	}

	t.hook.Emit("argtrail", "trail_built", map[string]any{
		"participant_id": participantId,
		"records":        len(records),
		"entries":        len(trail),
	})

	return trail
}
