package ir

// ComputeDominators builds the dominator tree of f using the
// Lengauer-Tarjan algorithm (ground: wzh99 ir/ssa.go computeDominators,
// generalized from that file's AST-bound BasicBlock to this package's
// generic one). O(N log N); not asymptotically optimal, but more
// tractable to audit than the optimal near-linear variant, which is the
// tradeoff the teacher's own comment calls out.
func ComputeDominators(f *Func) {
	type dfNode struct {
		bb       *BasicBlock
		dfNum    int
		parent   *dfNode
		ancestor *dfNode
		semi     *dfNode
		best     *dfNode
		sameDom  *dfNode
		bucket   map[*dfNode]bool
	}
	var nodes []*dfNode
	bbToNode := make(map[*BasicBlock]*dfNode)

	var dfs func(parent, cur *BasicBlock)
	dfs = func(parent, cur *BasicBlock) {
		if bbToNode[cur] != nil {
			return
		}
		node := &dfNode{
			bb:     cur,
			dfNum:  len(nodes),
			parent: bbToNode[parent],
			bucket: make(map[*dfNode]bool),
		}
		nodes = append(nodes, node)
		bbToNode[cur] = node
		for _, s := range cur.Succs {
			dfs(cur, s)
		}
	}
	dfs(nil, f.Start)
	if len(nodes) <= 1 {
		f.Start.NumberDomTree()
		return
	}

	var ancestorWithLowestSemi func(node *dfNode) *dfNode
	ancestorWithLowestSemi = func(node *dfNode) *dfNode {
		anc := node.ancestor
		if anc.ancestor != nil {
			best := ancestorWithLowestSemi(anc)
			node.ancestor = anc.ancestor
			if best.semi.dfNum < node.best.semi.dfNum {
				node.best = best
			}
		}
		return node.best
	}

	for i := len(nodes) - 1; i > 0; i-- {
		node := nodes[i]
		parent := node.parent
		semi := parent
		for _, v := range node.bb.Preds {
			pred, ok := bbToNode[v]
			if !ok {
				continue // unreachable predecessor: precondition forbids this, ignore defensively
			}
			var newSemi *dfNode
			if pred.dfNum <= node.dfNum {
				newSemi = pred
			} else {
				newSemi = ancestorWithLowestSemi(pred).semi
			}
			if newSemi.dfNum < semi.dfNum {
				semi = newSemi
			}
		}
		node.semi = semi
		semi.bucket[node] = true
		node.ancestor = parent
		node.best = node
		for v := range parent.bucket {
			anc := ancestorWithLowestSemi(v)
			if anc.semi == v.semi {
				v.bb.SetImmDom(parent.bb)
			} else {
				v.sameDom = anc
			}
		}
		parent.bucket = make(map[*dfNode]bool)
	}

	for i, n := range nodes {
		if i == 0 {
			continue
		}
		if n.sameDom != nil {
			n.bb.SetImmDom(n.sameDom.bb.ImmDom)
		}
	}

	f.Start.NumberDomTree()
}
