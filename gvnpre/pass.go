package gvnpre

import (
	"github.com/Schaback/libfirm-2/ir"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// Run is the pass's single entry point (§6: "the core exposes one entry
// point: run(graph)"), component I, the Driver. Preconditions are
// established via ir.AssureProperties before any component runs;
// postcondition is that f's invariants (dominator tree, loop tree, no
// critical edges) are re-established by the time Run returns, since
// AssureProperties recomputes them and nothing afterward invalidates
// them (the Insertion engine only adds phis and hoisted copies, never
// new blocks or edges).
//
// Per §7, Run never returns an error for ordinary non-convergence — the
// iteration caps exist precisely so a non-converged run still proceeds
// to elimination with whatever was found. An error return means a
// precondition was violated or an unsupported feature flag was set.
func Run(f *ir.Func, opts Options) (*Stats, error) {
	if err := opts.validate(); err != nil {
		return nil, errors.Wrap(err, "gvnpre: invalid options")
	}
	if err := ir.AssureProperties(f); err != nil {
		return nil, errors.Wrap(err, "gvnpre: precondition violation in %v", f.Name)
	}

	tlog.Printw("gvnpre run start", "func", f.Name)

	f.LastIndexBeforePass = f.LastIndex()

	vt := NewValueTable(opts)
	vt.setLastIndexBeforePass(f.LastIndexBeforePass)
	infos := newBlockInfoStore(f)

	buildExpGen(f, vt, infos, opts)
	propagateAvailOut(f, infos)

	classifier := classifyLoops(f)
	infiniteLoops := 0
	if opts.NoInfLoops {
		for _, b := range f.Blocks {
			if b.Loop != nil && b.Loop.Header == b && classifier.Infinite(b.Loop) {
				infiniteLoops++
			}
		}
	}

	anticIters := runAnticSolver(f, vt, infos, classifier, opts)
	insertIters := runInsertionEngine(f, vt, infos, opts)

	pairs := collectElimPairs(f, vt, infos)
	fully, partially := drainElimPairs(f, pairs)
	pruneKeepAlives(f, nil) // no memory phis tracked: Loads is rejected at entry, and Div/Mod carry no memory input in this IR

	stats := &Stats{
		FullyRedundant:     fully,
		PartiallyRedundant: partially,
		AnticIterations:    anticIters,
		InsertIterations:   insertIters,
		InfiniteLoops:      infiniteLoops,
	}

	tlog.Printw("gvnpre run done", "func", f.Name,
		"fully", stats.FullyRedundant, "partially", stats.PartiallyRedundant,
		"antic_iters", stats.AnticIterations, "insert_iters", stats.InsertIterations,
		"infinite_loops", stats.InfiniteLoops)

	return stats, nil
}
