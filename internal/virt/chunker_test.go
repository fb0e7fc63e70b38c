package virt

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// trampoline runs yielded continuations in order, like a zero-delay
// deferred callback on a host event loop.
type trampoline struct {
	queue []func()
}

func (tr *trampoline) yield(fn func()) {
	tr.queue = append(tr.queue, fn)
}

func (tr *trampoline) drain() {
	for len(tr.queue) > 0 {
		fn := tr.queue[0]
		tr.queue = tr.queue[1:]
		fn()
	}
}

func TestProcessChunked_EmptyInput(t *testing.T) {
	progress := 0
	complete := 0

	ProcessChunked(0, 100, nil, func(int) { progress++ }, func() { complete++ }, nil)

	require.Zero(t, progress, "empty input must not report progress")
	require.Equal(t, 1, complete, "empty input completes immediately")
}

func TestProcessChunked_SingleChunk(t *testing.T) {
	var progress []int
	complete := 0
	var chunks [][2]int

	ProcessChunked(50, 100,
		func(start, end int) { chunks = append(chunks, [2]int{start, end}) },
		func(done int) { progress = append(progress, done) },
		func() { complete++ }, nil)

	require.Equal(t, [][2]int{{0, 50}}, chunks)
	require.Equal(t, []int{50}, progress)
	require.Equal(t, 1, complete)
}

func TestProcessChunked_YieldsBetweenChunks(t *testing.T) {
	tr := &trampoline{}
	var progress []int
	complete := 0

	ProcessChunked(250, 100, nil,
		func(done int) { progress = append(progress, done) },
		func() { complete++ }, tr.yield)

	// Only the first chunk ran synchronously; the rest wait on the host.
	require.Equal(t, []int{100}, progress)
	require.Zero(t, complete)

	tr.drain()

	require.Equal(t, []int{100, 200, 250}, progress)
	require.Equal(t, 1, complete)
}

func TestProcessChunked_ChunksCoverInputExactly(t *testing.T) {
	tr := &trampoline{}
	var chunks [][2]int

	ProcessChunked(2345, 1000,
		func(start, end int) { chunks = append(chunks, [2]int{start, end}) },
		nil, nil, tr.yield)
	tr.drain()

	require.Equal(t, [][2]int{{0, 1000}, {1000, 2000}, {2000, 2345}}, chunks)
}

// ===========================================================================
// Property-Based Tests (using pgregory.net/rapid)
// ===========================================================================

// onProgress fires exactly ceil(total/chunkSize) times with strictly
// increasing cumulative counts, the last always equal to total.
func TestProperty_ProgressLaw(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		total := rapid.IntRange(1, 10000).Draw(rt, "total")
		chunkSize := rapid.IntRange(1, 3000).Draw(rt, "chunkSize")

		tr := &trampoline{}
		var progress []int
		complete := 0

		ProcessChunked(total, chunkSize, nil,
			func(done int) { progress = append(progress, done) },
			func() { complete++ }, tr.yield)
		tr.drain()

		wantCalls := (total + chunkSize - 1) / chunkSize
		require.Len(t, progress, wantCalls, "ceil(total/chunkSize) progress calls")
		for i := 1; i < len(progress); i++ {
			require.Greater(t, progress[i], progress[i-1], "progress must strictly increase")
		}
		require.Equal(t, total, progress[len(progress)-1], "final progress equals total")
		require.Equal(t, 1, complete)
	})
}
