package milestone_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rpggio/gigboard/internal/domain/milestone"
)

func statusPtr(s milestone.Status) *milestone.Status { return &s }
func intPtr(v int) *int { return &v }

func TestApply_InProgressStampsStartedOnce(t *testing.T) {
	m := &milestone.Milestone{Status: milestone.StatusPending}
	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(time.Hour)

	require.NoError(t, milestone.Apply(m, milestone.Change{Status: statusPtr(milestone.StatusInProgress)}, first))
	require.Equal(t, first, *m.StartedAt)

	require.NoError(t, milestone.Apply(m, milestone.Change{Status: statusPtr(milestone.StatusInProgress)}, second))
	require.Equal(t, first, *m.StartedAt)
	require.Equal(t, second, m.UpdatedAt)
}

func TestApply_CompletedForcesFullProgress(t *testing.T) {
	now := time.Now().UTC()
	m := &milestone.Milestone{Status: milestone.StatusInProgress, Progress: 40}

	err := milestone.Apply(m, milestone.Change{
		Status:   statusPtr(milestone.StatusCompleted),
		Progress: intPtr(60),
	}, now)
	require.NoError(t, err)
	require.Equal(t, 100, m.Progress)
	require.NotNil(t, m.CompletedAt)
}

func TestApply_ClampsProgress(t *testing.T) {
	now := time.Now().UTC()
	m := &milestone.Milestone{}

	require.NoError(t, milestone.Apply(m, milestone.Change{Progress: intPtr(150)}, now))
	require.Equal(t, 100, m.Progress)

	require.NoError(t, milestone.Apply(m, milestone.Change{Progress: intPtr(-20)}, now))
	require.Equal(t, 0, m.Progress)
}

func TestApply_RejectsUnknownStatus(t *testing.T) {
	m := &milestone.Milestone{Status: milestone.StatusPending}
	err := milestone.Apply(m, milestone.Change{Status: statusPtr("blocked")}, time.Now())
	require.ErrorIs(t, err, milestone.ErrInvalidStatus)
	require.Equal(t, milestone.StatusPending, m.Status)
}
