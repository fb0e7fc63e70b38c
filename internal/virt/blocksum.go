package virt

// DefaultBlockSize is the index stride between cumulative-height
// checkpoints. 1000 keeps a 100k-item table at ~100 entries while bounding
// per-query work to a single block.
const DefaultBlockSize = 1000

// BuildBlockSums walks the first totalItems rows once and records the
// running cumulative height at every blockSize-th index, plus a final
// partial-block entry when totalItems is not a multiple of blockSize.
//
// The table is a disposable accelerator, not a live structure: callers
// rebuild it on demand (typically once per scroll-to-index call) and must
// never reuse a table across estimate changes or collection swaps, since it
// snapshots the ledger state at build time.
func BuildBlockSums(ledger *Ledger, totalItems, blockSize int) []float64 {
	if ledger == nil || totalItems <= 0 {
		return nil
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	sums := make([]float64, 0, (totalItems+blockSize-1)/blockSize)
	running := 0.0
	for i := 0; i < totalItems; i++ {
		running += ledger.Height(i)
		if (i+1)%blockSize == 0 {
			sums = append(sums, running)
		}
	}
	if totalItems%blockSize != 0 {
		sums = append(sums, running)
	}
	return sums
}

// OffsetForIndex returns the cumulative height of the rows before index,
// which is the scroll offset that puts the row at the top of the content.
//
// With a block-sum table the work is bounded to one block: the completed
// blocks before the row come from the table and only the remainder is
// summed. Without a table it degrades to an O(index) walk, which is fine
// for occasional single queries.
func OffsetForIndex(ledger *Ledger, index int, sums []float64, blockSize int) float64 {
	if ledger == nil || index <= 0 {
		return 0
	}
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}

	start := 0
	offset := 0.0
	if block := index / blockSize; block > 0 && len(sums) >= block {
		offset = sums[block-1]
		start = block * blockSize
	}
	for i := start; i < index; i++ {
		offset += ledger.Height(i)
	}
	return offset
}
