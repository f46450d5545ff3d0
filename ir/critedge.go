package ir

import "fmt"

// SplitCriticalEdges inserts an empty block on every edge that runs from a
// multi-successor block to a multi-predecessor block (ground: wzh99
// ir/ssa.go splitEdge). GVN-PRE requires this as a precondition (§5, §6);
// the IR collaborator establishes it before the pass ever runs, it is not
// something the pass does for itself.
func SplitCriticalEdges(f *Func) {
	split := 0
	newName := func() string {
		split++
		return fmt.Sprintf("split%d", split)
	}
	// Snapshot blocks: the loop below mutates f.Blocks.
	blocks := make([]*BasicBlock, len(f.Blocks))
	copy(blocks, f.Blocks)

	for _, b := range blocks {
		if len(b.Succs) <= 1 {
			continue
		}
		for i, succ := range b.Succs {
			if len(succ.Preds) <= 1 {
				continue
			}
			inserted := f.NewBlock(newName())
			// inserted takes b's slot among succ's predecessors...
			for j, p := range succ.Preds {
				if p == b {
					succ.Preds[j] = inserted
				}
			}
			inserted.Preds = append(inserted.Preds, b)
			inserted.Succs = append(inserted.Succs, succ)
			b.Succs[i] = inserted
		}
	}
}

// HasCriticalEdge reports whether f still has an unsplit critical edge,
// for use in precondition assertions.
func HasCriticalEdge(f *Func) bool {
	for _, b := range f.Blocks {
		if len(b.Succs) <= 1 {
			continue
		}
		for _, succ := range b.Succs {
			if len(succ.Preds) > 1 {
				return true
			}
		}
	}
	return false
}
