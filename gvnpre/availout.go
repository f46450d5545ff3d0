package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// propagateAvailOut is the dominator-tree top-down walk of §4.D,
// component E. For every block other than the start block, it replaces
// into the current block's avail_out every (value, expr) already present
// in the immediate dominator's avail_out — so the leader used downstream
// is the one from the dominating context, not a local recomputation. The
// start block keeps whatever buildExpGen put there; the end block is
// skipped (nothing downstream consumes its avail_out for hoisting).
func propagateAvailOut(f *ir.Func, infos *BlockInfoStore) {
	ir.DomTreeWalk(f, func(b *ir.BasicBlock) {
		if b == f.Start || b == f.End {
			return
		}
		if b.ImmDom == nil {
			return
		}
		dom := infos.Get(b.ImmDom)
		cur := infos.Get(b)
		dom.AvailOut.Each(func(v Value, rep *ir.Node) {
			cur.AvailOut.Replace(v, rep)
		})
	}, nil)
}
