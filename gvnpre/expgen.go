package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// isNice reports whether n is a candidate for PRE at all (§4.B "Nice
// value"). Phis are nice; projections are not by default (only under
// Loads, which this repository rejects at Run's entry, see options.go);
// pinned operations are not nice; non-data-mode operations are not nice
// except Div/Mod, which follow DivMods.
func isNice(n *ir.Node, opts Options) bool {
	if ir.IsPhi(n) {
		return true
	}
	if ir.IsProj(n) {
		return opts.Loads
	}
	if ir.IsPinned(n, opts.DivMods) {
		return false
	}
	if !ir.ModeIsData(n.Mode) {
		return ir.IsDiv(n) || ir.IsMod(n)
	}
	return true
}

// isCleanInBlock reports whether n can safely participate in phi
// translation (§4.B "Clean in block"): phis are always clean; otherwise
// n must be nice, and every non-phi input defined in the same block must
// itself be nice and already present (as a value) in partial, the
// exp_gen set being built incrementally for n's block.
func isCleanInBlock(n *ir.Node, partial *ValueSet, vt *ValueTable, opts Options) bool {
	if ir.IsPhi(n) {
		return true
	}
	if !isNice(n, opts) {
		return false
	}
	for _, in := range n.Inputs {
		if ir.IsPhi(in) {
			continue
		}
		if in.Block != n.Block {
			continue
		}
		if !isNice(in, opts) {
			return false
		}
		if !partial.Has(vt.Identify(in)) {
			return false
		}
	}
	return true
}

// buildExpGen performs the blockwise top-down topological walk that
// populates every block's exp_gen and initial avail_out (§4.B,
// component D). Must run before the Avail_Out Propagator, which
// requires every block's avail_out to already hold its own generated
// values.
func buildExpGen(f *ir.Func, vt *ValueTable, infos *BlockInfoStore, opts Options) {
	ir.BlockwiseTopoWalk(f, func(b *ir.BasicBlock) {
		info := infos.Get(b)
		for _, n := range b.Nodes {
			v := vt.Remember(n)

			if !isNice(n, opts) {
				continue
			}
			if ir.IsConstLike(n) {
				// Constants are globally available implicitly (§4.B step 3);
				// they never occupy an avail_out/exp_gen slot of their own.
				continue
			}

			info.AvailOut.Insert(v, n)
			if isCleanInBlock(n, info.ExpGen, vt, opts) {
				info.ExpGen.Insert(v, n)
			}
		}
	})
}
