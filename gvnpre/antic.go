package gvnpre

import (
	"github.com/Schaback/libfirm-2/ir"
	"tlog.app/go/tlog"
)

// runAnticSolver is the Antic_In Solver of §4.F, component F: a backward
// fixed-point over successors with phi translation, bounded by
// Options.MaxAnticIter. Returns the number of iterations actually run,
// for Stats.
func runAnticSolver(f *ir.Func, vt *ValueTable, infos *BlockInfoStore, classifier *LoopClassifier, opts Options) int {
	blocks := ir.ReversePostOrderBlocks(f)

	iter := 0
	for ; iter < opts.MaxAnticIter; iter++ {
		changed := false
		first := iter == 0

		for _, b := range blocks {
			if b == f.End {
				continue
			}
			info := infos.Get(b)
			before := info.AnticIn.Size()

			if first {
				seedInfinite := opts.NoInfLoops && classifier.Infinite(b.Loop)
				if !seedInfinite {
					info.ExpGen.Each(func(v Value, rep *ir.Node) {
						info.AnticIn.Insert(v, rep)
					})
				}
			}

			switch len(b.Succs) {
			case 0:
				// End block has no successors; nothing flows backward into it.
			case 1:
				anticThroughSuccessor(b, b.Succs[0], info, vt, infos, classifier, opts, iter)
			default:
				anticIntersectSuccessors(b, info, vt, infos, opts)
			}

			after := info.AnticIn.Size()
			if after != before {
				changed = true
			}
		}

		tlog.Printw("gvnpre antic iteration", "iter", iter, "changed", changed)
		if !changed {
			iter++
			break
		}
	}
	return iter
}

// anticThroughSuccessor handles the single-successor case of §4.F step
// 2: translate every (value, expr) of the successor's antic_in back into
// b, and fold in whatever stays clean.
func anticThroughSuccessor(b, succ *ir.BasicBlock, info *BlockInfo, vt *ValueTable, infos *BlockInfoStore, classifier *LoopClassifier, opts Options, iter int) {
	if len(succ.Preds) < 2 {
		// No phis to translate across; the successor's antic_in applies to
		// b unchanged, same as the intersection case degenerating to one
		// successor.
		succInfo := infos.Get(succ)
		succInfo.AnticIn.Each(func(v Value, rep *ir.Node) {
			if isCleanInBlock(rep, info.AnticIn, vt, opts) {
				info.AnticIn.Insert(v, rep)
			}
		})
		return
	}

	pos := succ.PredIndex(b)
	succInfo := infos.Get(succ)
	leaders := leadersFromAvailOut(succInfo.AnticIn)

	if opts.NoInfLoops && opts.NoInfLoops2 && iter < 2 &&
		succ.Loop != nil && succ.Loop.Header == succ && ir.InLoop(b, succ.Loop) &&
		classifier.Infinite(succ.Loop) {
		// Skip propagation across this back-edge of an endless loop for
		// the first two iterations, per the NO_INF_LOOPS2 policy knob (§4.F).
		return
	}

	succInfo.AnticIn.Each(func(value Value, expr *ir.Node) {
		translated := translateCached(info, vt, expr, succ, pos, leaders)
		transValue := vt.IdentifyOrRemember(translated)

		rep := expr
		if transValue != value {
			rep = translated
		}

		if isCleanInBlock(expr, info.AnticIn, vt, opts) {
			info.AnticIn.Replace(transValue, rep)
		}
		info.Trans[expr] = rep
	})
}

// anticIntersectSuccessors handles the multiple-successor case of §4.F
// step 2: a value survives into b's antic_in only if every successor's
// antic_in carries it.
func anticIntersectSuccessors(b *ir.BasicBlock, info *BlockInfo, vt *ValueTable, infos *BlockInfoStore, opts Options) {
	first := infos.Get(b.Succs[0])
	rest := b.Succs[1:]

	first.AnticIn.Each(func(v Value, expr *ir.Node) {
		for _, s := range rest {
			if !infos.Get(s).AnticIn.Has(v) {
				return
			}
		}
		if isCleanInBlock(expr, info.AnticIn, vt, opts) {
			info.AnticIn.Replace(v, expr)
		}
	})
}
