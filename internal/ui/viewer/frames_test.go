package viewer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCallbackQueue_FlushRunsInOrder(t *testing.T) {
	q := &callbackQueue{}
	var got []int
	q.Schedule(func() { got = append(got, 1) })
	q.Schedule(func() { got = append(got, 2) })
	q.Schedule(func() { got = append(got, 3) })

	require.True(t, q.Pending())
	q.Flush()

	require.Equal(t, []int{1, 2, 3}, got)
	require.False(t, q.Pending())
}

func TestCallbackQueue_FlushKeepsReentrantCallbacks(t *testing.T) {
	q := &callbackQueue{}
	var got []string
	q.Schedule(func() {
		got = append(got, "first")
		q.Schedule(func() { got = append(got, "second") })
	})

	q.Flush()
	require.Equal(t, []string{"first"}, got, "expected callbacks scheduled mid-flush to wait for the next flush")
	require.True(t, q.Pending())

	q.Flush()
	require.Equal(t, []string{"first", "second"}, got)
	require.False(t, q.Pending())
}

func TestCallbackQueue_RunOne(t *testing.T) {
	q := &callbackQueue{}
	var got []int
	q.Schedule(func() { got = append(got, 1) })
	q.Schedule(func() { got = append(got, 2) })

	require.True(t, q.RunOne())
	require.Equal(t, []int{1}, got, "expected RunOne to pop the oldest callback")
	require.True(t, q.Pending())

	require.True(t, q.RunOne())
	require.False(t, q.RunOne(), "expected RunOne on an empty queue to report false")
	require.Equal(t, []int{1, 2}, got)
}

func TestCallbackQueue_RunOneSelfScheduling(t *testing.T) {
	q := &callbackQueue{}
	runs := 0
	var step func()
	step = func() {
		runs++
		if runs < 4 {
			q.Schedule(step)
		}
	}
	q.Schedule(step)

	for q.RunOne() {
	}
	require.Equal(t, 4, runs)
}
