package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// translate implements the phi-translation contract of §4.E:
// phi_translate(e, succ, pos, leaders) -> e', where value(e') is what e
// would evaluate to if placed at the bottom of predBlock, the pos'th
// predecessor of succ. For each operand it first substitutes the
// leader L_i found via leaders, then consults info.Trans(pred_block)[L_i]
// (the predecessor's own translation cache): if some earlier step of
// this same Antic_in pass already translated L_i across this same
// predecessor, that cascaded result is used instead of L_i itself —
// this is what lets a compound expression like (x+y)+1 pick up the
// already-translated x+y rather than the untranslated leader (§8
// scenario 4; gvn_pre.c's phi_translate: "pred_trans =
// get_translated(pred_block, leader); ... new_pred = pred_trans").
func translate(vt *ValueTable, e *ir.Node, succ *ir.BasicBlock, pos int, predBlock *ir.BasicBlock, info *BlockInfo, leaders map[Value]*ir.Node) *ir.Node {
	if ir.IsPhi(e) {
		if e.Block == succ {
			return e.Inputs[pos]
		}
		// A phi in some other block is unaffected by a merge at succ.
		return e
	}

	newInputs := make([]*ir.Node, len(e.Inputs))
	changed := false
	for i, p := range e.Inputs {
		v := vt.Identify(p)
		leader := leaders[v]
		if leader == nil {
			leader = p
		}
		if info != nil {
			if cached, ok := info.Trans[leader]; ok {
				leader = cached
			}
		}
		newInputs[i] = leader
		if leader != p {
			changed = true
		}
	}
	if !changed {
		return e
	}

	translated := ir.NewNodeLike(predBlock.Func, predBlock, e, newInputs)
	return translated
}

// translateCached wraps translate with the per-predecessor-block
// translation cache info.Trans (§3 "trans"), keyed by the original
// expression, exactly as the Antic_in solver and Insertion engine are
// both directed to use it ("use the cached trans(B)[expr] if present;
// else compute and cache", §4.F step 2).
func translateCached(info *BlockInfo, vt *ValueTable, e *ir.Node, succ *ir.BasicBlock, pos int, leaders map[Value]*ir.Node) *ir.Node {
	if cached, ok := info.Trans[e]; ok {
		return cached
	}
	result := translate(vt, e, succ, pos, info.Block, info, leaders)
	info.Trans[e] = result
	return result
}

// leadersFromAvailOut builds the leaders map §4.E's contract takes as an
// argument, drawn from a value set's own (value -> representative)
// pairs. Both the Antic_in solver (leaders = antic_in(S)) and the
// Insertion engine (leaders = antic_in(B) for synthesizing copies) build
// this the same way.
func leadersFromAvailOut(vs *ValueSet) map[Value]*ir.Node {
	m := make(map[Value]*ir.Node, vs.Size())
	vs.Each(func(v Value, rep *ir.Node) { m[v] = rep })
	return m
}
