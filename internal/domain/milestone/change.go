package milestone

import "time"

// Change is a requested edit of a milestone. Nil fields are left as is.
type Change struct {
	Status      *Status
	Progress    *int
	Description *string
}

// Apply is the only place milestone progress and status are mutated.
// Progress is clamped to [0,100]. Moving to in_progress stamps StartedAt
// once. Moving to completed forces progress to 100 and stamps CompletedAt.
// UpdatedAt is always stamped.
func Apply(m *Milestone, ch Change, now time.Time) error {
	if ch.Status != nil && !ch.Status.Valid() {
		return ErrInvalidStatus
	}

	if ch.Progress != nil {
		m.Progress = clamp(*ch.Progress)
	}
	if ch.Description != nil {
		m.Description = *ch.Description
	}
	if ch.Status != nil {
		m.Status = *ch.Status
		switch m.Status {
		case StatusInProgress:
			if m.StartedAt == nil {
				m.StartedAt = &now
			}
		case StatusCompleted:
			m.Progress = 100
			m.CompletedAt = &now
		}
	}
	m.UpdatedAt = now
	return nil
}

func clamp(progress int) int {
	return min(100, max(0, progress))
}
