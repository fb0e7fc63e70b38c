package tracing

// Span attribute keys for viewer tracing.
// These constants define the semantic conventions for span attributes
// across the virtualization engine and storage layers.
const (
	// Scroll attributes
	AttrScrollOffset = "scroll.offset"
	AttrScrollTarget = "scroll.target"
	AttrScrollAlign  = "scroll.align"

	// Viewport attributes
	AttrViewportHeight = "viewport.height"
	AttrRangeStart     = "range.start"
	AttrRangeEnd       = "range.end"

	// Collection attributes
	AttrTotalItems = "collection.total_items"
	AttrRecordSeq  = "record.seq"
	AttrAvgHeight  = "collection.avg_height"

	// Chunked load attributes
	AttrChunkSize   = "chunk.size"
	AttrChunkIndex  = "chunk.index"
	AttrChunkCount  = "chunk.count"
	AttrLoadedItems = "chunk.loaded_items"

	// Storage attributes
	AttrDBPath   = "db.path"
	AttrRowCount = "db.row_count"

	// Error attributes
	AttrErrorMessage = "error.message"
	AttrErrorType    = "error.type"
)

// Span names for the operations the viewer traces.
const (
	SpanScrollToIndex  = "virt.scroll_to_index"
	SpanBlockSumsBuild = "virt.block_sums.build"
	SpanChunkedInit    = "virt.chunked_init"
	SpanBottomInit     = "virt.bottom_init"
	SpanRecordFetch    = "repo.records.fetch"
	SpanRecordCount    = "repo.records.count"
)

// Event names for span events.
const (
	EventRangeComputed  = "range.computed"
	EventTargetClamped  = "scroll.target_clamped"
	EventChunkProcessed = "chunk.processed"
	EventSettleReapply  = "bottom_init.reapply"
	EventCacheHit       = "render_cache.hit"
	EventCacheMiss      = "render_cache.miss"
)
