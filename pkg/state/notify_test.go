package state

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestQueueExpiresOldToasts(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	q := NewQueue()
	q.now = func() time.Time { return now }

	q.Success("saved")
	now = now.Add(3 * time.Second)
	q.Error("failed")

	active := q.Active(4 * time.Second)
	require.Len(t, active, 2)

	now = now.Add(2 * time.Second)
	active = q.Active(4 * time.Second)
	require.Len(t, active, 1)
	require.Equal(t, "failed", active[0].Text)
	require.Equal(t, LevelError, active[0].Level)
}

func TestQueueIsBounded(t *testing.T) {
	q := NewQueue()
	q.now = func() time.Time { return time.Now() }

	for i := 0; i < maxQueued*2; i++ {
		q.Error(fmt.Sprintf("toast %d", i))
	}

	active := q.Active(DefaultToastTTL)
	require.Len(t, active, maxQueued)
	require.Equal(t, fmt.Sprintf("toast %d", maxQueued*2-1), active[len(active)-1].Text)
}

func TestActiveReturnsOldestFirst(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	q := NewQueue()
	q.now = func() time.Time { return now }

	q.Success("one")
	now = now.Add(time.Second)
	q.Success("two")

	active := q.Active(DefaultToastTTL)
	require.Equal(t, "one", active[0].Text)
	require.Equal(t, "two", active[1].Text)
}
