package ir

// PostOrderBlocks returns f's reachable blocks in post-order starting
// from f.Start (ground: wzh99 ir/bb.go postOrder/reversePostOrder).
func PostOrderBlocks(f *Func) []*BasicBlock {
	visited := make(map[*BasicBlock]bool, len(f.Blocks))
	order := make([]*BasicBlock, 0, len(f.Blocks))
	var visit func(*BasicBlock)
	visit = func(b *BasicBlock) {
		if visited[b] {
			return
		}
		visited[b] = true
		for _, s := range b.Succs {
			visit(s)
		}
		order = append(order, b)
	}
	visit(f.Start)
	return order
}

// ReversePostOrderBlocks returns f's reachable blocks top-down
// topological: every block appears after all of its non-back-edge
// predecessors. This is the order §4.B's Exp_Gen Builder and §4.D's
// Avail_Out Propagator both require.
func ReversePostOrderBlocks(f *Func) []*BasicBlock {
	post := PostOrderBlocks(f)
	rev := make([]*BasicBlock, len(post))
	for i, b := range post {
		rev[len(post)-1-i] = b
	}
	return rev
}

// BlockwiseTopoWalk calls visit once per reachable block, blockwise
// top-down topological (§4.B). Node order within a block is the order
// nodes were appended to BasicBlock.Nodes, which builders are required to
// keep def-before-use.
func BlockwiseTopoWalk(f *Func, visit func(*BasicBlock)) {
	for _, b := range ReversePostOrderBlocks(f) {
		visit(b)
	}
}

// DomTreeWalk visits f's dominator tree rooted at f.Start, pre-order then
// post-order (ground: wzh99 ir/bb.go AcceptAsTreeNode, used unmodified
// via BasicBlock; this just anchors the walk at the function's entry).
func DomTreeWalk(f *Func, pre, post func(*BasicBlock)) {
	if pre == nil {
		pre = func(*BasicBlock) {}
	}
	if post == nil {
		post = func(*BasicBlock) {}
	}
	f.Start.AcceptAsTreeNode(pre, post)
}

// AllNodes yields every node reachable through f's blocks, blockwise
// top-down topological, then in schedule order within each block — the
// exact iteration order single-node walkers such as the Eliminator
// (component H) need.
func AllNodes(f *Func) []*Node {
	var nodes []*Node
	BlockwiseTopoWalk(f, func(b *BasicBlock) {
		nodes = append(nodes, b.Nodes...)
	})
	return nodes
}
