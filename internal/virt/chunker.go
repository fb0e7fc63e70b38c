package virt

// DefaultChunkSize is how many rows a single initialization chunk covers.
const DefaultChunkSize = 1000

// YieldFunc defers fn to the host's scheduler with zero delay, letting the
// event loop breathe between chunks. Tests pass a trampoline that runs fn
// inline.
type YieldFunc func(fn func())

// ProcessChunked walks the half-open index interval [0, total) in chunks so
// a very large collection never blocks the interface with one long
// synchronous pass.
//
// process receives each chunk as a [start, end) interval. onProgress fires
// after every chunk with the cumulative count: exactly ceil(total/chunkSize)
// calls, strictly increasing, the last always equal to total. onComplete
// fires once at the end; an empty input completes immediately with no
// progress calls. Control yields to the host between chunks.
func ProcessChunked(total, chunkSize int, process func(start, end int), onProgress func(done int), onComplete func(), yield YieldFunc) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	if yield == nil {
		yield = func(fn func()) { fn() }
	}
	if total <= 0 {
		if onComplete != nil {
			onComplete()
		}
		return
	}

	var step func(done int)
	step = func(done int) {
		end := min(done+chunkSize, total)
		if process != nil {
			process(done, end)
		}
		if onProgress != nil {
			onProgress(end)
		}
		if end >= total {
			if onComplete != nil {
				onComplete()
			}
			return
		}
		yield(func() { step(end) })
	}
	step(0)
}
