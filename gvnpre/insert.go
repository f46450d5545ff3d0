package gvnpre

import (
	"github.com/Schaback/libfirm-2/ir"
	"tlog.app/go/tlog"
)

// withinConstRangeInclusive127 is is_partially_redundant's
// constant-range check: true for an integer constant within [-127, 127]
// inclusive (§4.G, RESOLVED AMBIGUITIES in SPEC_FULL.md). In
// isPartiallyRedundant it is reached only after an earlier branch has
// already accepted every translated constant as available, so there it
// never changes the outcome (see DESIGN.md's Open Question list).
func withinConstRangeInclusive127(n *ir.Node) bool {
	v, ok := ir.IntValue(n)
	return ok && v >= -127 && v <= 127
}

// withinConstRangeExclusive128 implements is_hoisting_greedy's separate,
// deliberately distinct constant range check: strictly between -128 and
// 128 (exclusive on both ends), per the original's own tarval_cmp uses
// of ir_relation_less rather than less_equal.
func withinConstRangeExclusive128(n *ir.Node) bool {
	v, ok := ir.IntValue(n)
	return ok && v > -128 && v < 128
}

// insertionState is the per-Run state the Insertion engine threads
// through its outer iterations. Per-block predecessor scratch lives on
// BlockInfo itself (§3's "avail"/"found"); isPartiallyRedundant
// reallocates it to the block's current predecessor count before each
// decision.
type insertionState struct {
	vt    *ValueTable
	infos *BlockInfoStore
	opts  Options
}

// runInsertionEngine is the dominator-tree pre-order walk of §4.G,
// component G, bounded by Options.MaxInsertIter. Returns the iteration
// count actually run, for Stats.
func runInsertionEngine(f *ir.Func, vt *ValueTable, infos *BlockInfoStore, opts Options) int {
	st := &insertionState{vt: vt, infos: infos, opts: opts}

	iter := 0
	for ; iter < opts.MaxInsertIter; iter++ {
		changed := false
		ir.DomTreeWalk(f, func(b *ir.BasicBlock) {
			if st.insertBlock(f, b) {
				changed = true
			}
		}, nil)
		tlog.Printw("gvnpre insert iteration", "iter", iter, "changed", changed)
		if !changed {
			iter++
			break
		}
	}
	return iter
}

// insertBlock runs §4.G's per-block steps 1-4 and reports whether any
// change occurred.
func (st *insertionState) insertBlock(f *ir.Func, b *ir.BasicBlock) bool {
	info := st.infos.Get(b)
	info.NewSet = NewValueSet()

	if b == f.Start || len(b.Preds) < 2 {
		return false
	}

	idom := b.ImmDom
	idomInfo := st.infos.Get(idom)
	updateNewSet(info, idomInfo)

	changed := false

	var values []Value
	var exprs []*ir.Node
	info.AnticIn.Each(func(v Value, rep *ir.Node) {
		values = append(values, v)
		exprs = append(exprs, rep)
	})

	for i, value := range values {
		expr := exprs[i]

		if info.AnticDone.Has(value) {
			continue
		}
		if ir.IsPhi(expr) {
			continue
		}

		if idomInfo.AvailOut.Has(value) {
			info.AnticDone.Insert(value, expr)
			continue
		}

		if st.isHoistingGreedy(expr, b, info) {
			tlog.Printw("gvnpre greedy, declining hoist", "block", b.Name, "expr", expr.String())
			continue
		}

		if !st.isPartiallyRedundant(b, expr, value, info) {
			continue
		}

		st.synthesizeAndPhi(f, b, info, value, expr)
		info.AnticDone.Insert(value, expr)
		changed = true
	}

	return changed
}

// updateNewSet implements §4.G step 3: inherit new_set from idom, and
// replace the inherited entries into avail_out so the dominator's
// freshly hoisted values become the leaders this block sees.
func updateNewSet(info, idomInfo *BlockInfo) {
	idomInfo.NewSet.Each(func(v Value, rep *ir.Node) {
		info.NewSet.Insert(v, rep)
		info.AvailOut.Replace(v, rep)
	})
}

// isPartiallyRedundant implements §4.G's is_partially_redundant,
// recording per-predecessor scratch (found/avail) on info.scratch as it
// goes, indexed by predecessor position, for synthesizeAndPhi to reuse.
func (st *insertionState) isPartiallyRedundant(b *ir.BasicBlock, expr *ir.Node, value Value, info *BlockInfo) bool {
	info.scratch = make([]predScratch, len(b.Preds))

	var firstAvail *ir.Node
	fullyRedundant := true
	partiallyRedundant := false
	leaders := leadersFromAvailOut(info.AnticIn)

	for pos, pred := range b.Preds {
		predInfo := st.infos.Get(pred)
		transExpr := translateCached(predInfo, st.vt, expr, b, pos, leaders)
		transValue := st.vt.IdentifyOrRemember(transExpr)

		var availExpr *ir.Node
		if ir.IsConst(transExpr) {
			availExpr = transExpr
		} else {
			availExpr = predInfo.AvailOut.Lookup(transValue)
		}

		if availExpr == nil && ir.IsConst(transExpr) && withinConstRangeInclusive127(transExpr) {
			availExpr = transExpr
		}

		if availExpr == nil {
			info.scratch[pos] = predScratch{found: false, avail: transExpr}
			fullyRedundant = false
		} else {
			info.scratch[pos] = predScratch{found: true, avail: availExpr}
			partiallyRedundant = true
			if firstAvail == nil {
				firstAvail = availExpr
			} else if firstAvail != availExpr {
				fullyRedundant = false
			}
		}
	}

	return partiallyRedundant && !fullyRedundant
}

// isHoistingGreedy implements §4.G's is_hoisting_greedy: for every
// predecessor path, every operand of expr other than a phi local to b
// must be a small constant or already available on that predecessor.
func (st *insertionState) isHoistingGreedy(expr *ir.Node, b *ir.BasicBlock, info *BlockInfo) bool {
	for _, pred := range b.Preds {
		predInfo := st.infos.Get(pred)
		for _, operand := range expr.Inputs {
			if ir.IsPhi(operand) && operand.Block == b {
				continue
			}

			value := st.vt.Identify(operand)
			leader := info.AnticIn.Lookup(value)
			if leader == nil {
				leader = operand
			}
			trans, ok := predInfo.Trans[leader]
			if !ok {
				trans = operand
			}
			transValue := st.vt.IdentifyOrRemember(trans)

			if ir.IsConst(transValue) {
				// An existing constant (created before this run) is always
				// fine; only a brand-new one needs its magnitude checked,
				// per the original's get_irn_idx(...) < last_idx split.
				if transValue.Index < st.vt.lastIndexBeforePass() {
					continue
				}
				if withinConstRangeExclusive128(trans) {
					continue
				}
				return true
			}
			if ir.IsConstLike(transValue) {
				continue
			}

			if predInfo.AvailOut.Lookup(transValue) == nil {
				return true
			}
			if st.opts.MinCut && !info.AnticDone.Has(value) {
				return true
			}
		}
	}
	return false
}

// synthesizeAndPhi implements §4.G's per-predecessor synthesis and phi
// creation: for each predecessor lacking the value, build a hoisted copy
// physically in that predecessor; for each predecessor that already had
// it, reuse the recorded representative; then merge with a new phi
// (skipped for tuple-moded expressions, whose users phi the individual
// projections instead).
func (st *insertionState) synthesizeAndPhi(f *ir.Func, b *ir.BasicBlock, info *BlockInfo, value Value, expr *ir.Node) {
	phiIns := make([]*ir.Node, len(b.Preds))
	leaders := leadersFromAvailOut(info.AnticIn)

	for pos, pred := range b.Preds {
		sc := info.scratch[pos]
		predInfo := st.infos.Get(pred)

		if !sc.found {
			newExpr := st.synthesizeCopy(f, pred, predInfo, expr, leaders)
			newValue := st.vt.IdentifyOrRemember(newExpr)
			predInfo.AvailOut.Insert(newValue, newExpr)
			phiIns[pos] = newExpr
		} else {
			phiIns[pos] = sc.avail
		}
	}

	if expr.Mode == ir.ModeTuple {
		return
	}

	phi := ir.NewPhi(f, b, expr.Mode, phiIns...)
	info.AvailOut.Replace(value, phi)
	info.NewSet.Insert(value, phi)
}

// synthesizeCopy builds expr's hoisted copy physically in pred, by
// translating every operand from anti-leader world into leader world
// (§4.G): each operand is resolved to its antic_in leader, then to the
// predecessor's translation cache entry (or itself), then — unless it's
// a local-block phi or a constant, both used as-is — to the leader
// actually available in pred's avail_out.
func (st *insertionState) synthesizeCopy(f *ir.Func, pred *ir.BasicBlock, predInfo *BlockInfo, expr *ir.Node, leaders map[Value]*ir.Node) *ir.Node {
	inputs := make([]*ir.Node, len(expr.Inputs))

	for i, operand := range expr.Inputs {
		value := st.vt.Identify(operand)
		leader := leaders[value]
		if leader == nil {
			leader = operand
		}
		trans, ok := predInfo.Trans[leader]
		if !ok {
			trans = operand
		}

		if ir.IsPhi(operand) && operand.Block == expr.Block {
			inputs[i] = trans
			continue
		}

		transValue := st.vt.IdentifyOrRemember(trans)
		if ir.IsConstLike(transValue) {
			inputs[i] = trans
			continue
		}

		avail := predInfo.AvailOut.Lookup(transValue)
		if avail == nil {
			panic(ir.NewIRError("gvnpre: predecessor operand has to be available during hoisting"))
		}
		inputs[i] = avail
	}

	targetBlock := pred
	if ir.IsProj(expr) {
		targetBlock = inputs[0].Block
	}

	newExpr := ir.NewNodeLike(f, targetBlock, expr, inputs)
	ir.Schedule(newExpr, targetBlock)
	return newExpr
}
