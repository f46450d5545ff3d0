package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// LoopClassifier flags, for each outermost real loop, whether it
// contains an endless (unterminated) loop — one from which no path
// reaches the end block (§4.C, component C). Used only when
// Options.NoInfLoops is on; the Antic_in solver consults it to stop
// antic_in from growing without bound inside such a loop.
type LoopClassifier struct {
	infinite map[*ir.Loop]bool
}

// Infinite reports whether l's outermost enclosing loop was flagged as
// containing an endless loop. l may be nil (not in any loop), which is
// never infinite.
func (c *LoopClassifier) Infinite(l *ir.Loop) bool {
	if l == nil {
		return false
	}
	return c.infinite[ir.OutermostLoop(l)]
}

// classifyLoops runs the topological bottom-up walk from the end block
// described in §4.C: a block is "reachable" if some successor is
// already known reachable, or if it sits outside any real loop (the
// loop-tree root is not a real loop and is vacuously reachable-safe).
// Blocks are walked in post-order (successors before predecessors), and
// the walk is repeated until no block changes, so reachability that
// flows around a loop's back edge is picked up on a later round.
func classifyLoops(f *ir.Func) *LoopClassifier {
	c := &LoopClassifier{infinite: make(map[*ir.Loop]bool)}

	reachable := make(map[*ir.BasicBlock]bool)
	reachable[f.End] = true

	order := ir.PostOrderBlocks(f) // successors visited before predecessors
	changed := true
	for changed {
		changed = false
		for _, b := range order {
			if reachable[b] {
				continue
			}
			if b.Loop == nil {
				// Not in a real loop: the loop-tree root is always reachable.
				reachable[b] = true
				changed = true
				continue
			}
			for _, s := range b.Succs {
				if reachable[s] {
					reachable[b] = true
					changed = true
					break
				}
			}
		}
	}

	for _, b := range f.Blocks {
		if b.Loop == nil || reachable[b] {
			continue
		}
		// b is inside a real loop and no successor walk ever reached the
		// end block from it: its outermost loop is endless.
		c.infinite[ir.OutermostLoop(b.Loop)] = true
	}

	return c
}
