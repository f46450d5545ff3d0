package gvnpre

// Stats mirrors the original's gvnpre_statistics counters (SUPPLEMENTED
// FEATURES #1 in SPEC_FULL.md): populated by Run and logged at the
// end of a run, not consulted by the algorithm itself.
type Stats struct {
	FullyRedundant     int
	PartiallyRedundant int
	AnticIterations    int
	InsertIterations   int
	InfiniteLoops      int
}
