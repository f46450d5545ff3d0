package ir

import "fmt"

// BasicBlock is the CFG vertex. Unlike wzh99's BasicBlock, which threads a
// doubly-linked list of IInstr, a block here just holds its Nodes in a
// valid def-before-use schedule (sea-of-nodes blocks are not otherwise
// ordered) plus the CFG/dominator-tree bookkeeping PRE depends on.
// Predecessors and successors are kept as ordered slices, not sets,
// because phi input position and dominator-tree predecessor position
// (§4.E's "pos") must stay stable and addressable.
type BasicBlock struct {
	Name string
	Func *Func

	Nodes []*Node

	Preds, Succs []*BasicBlock

	ImmDom   *BasicBlock
	Children []*BasicBlock
	Loop     *Loop
	serial   [2]int // pre-order [in, out] stamps; see Dominates
}

func NewBasicBlock(name string, fn *Func) *BasicBlock {
	return &BasicBlock{Name: name, Func: fn}
}

// ConnectTo records a CFG edge from b to to. Order of calls determines
// the predecessor position recorded on the `to` side, which is what phi
// input position and phi translation's `pos` parameter key off of.
func (b *BasicBlock) ConnectTo(to *BasicBlock) {
	b.Succs = append(b.Succs, to)
	to.Preds = append(to.Preds, b)
}

// PredIndex returns the position of pred in b.Preds, matching the phi
// input slot that corresponds to control flow arriving from pred.
func (b *BasicBlock) PredIndex(pred *BasicBlock) int {
	for i, p := range b.Preds {
		if p == pred {
			return i
		}
	}
	panic(NewIRError(fmt.Sprintf("%s is not a predecessor of %s", pred.Name, b.Name)))
}

func (b *BasicBlock) SetImmDom(d *BasicBlock) {
	b.ImmDom = d
	d.Children = append(d.Children, b)
}

// Dominates reports whether b dominates b2, in O(1) using the pre-order
// in/out stamps computed by NumberDomTree.
func (b *BasicBlock) Dominates(b2 *BasicBlock) bool {
	return b.serial[0] <= b2.serial[0] && b2.serial[1] <= b.serial[1]
}

// AcceptAsTreeNode visits the dominator subtree rooted at b, calling pre
// on entry and post on exit of each node (ground: wzh99 ir/bb.go).
func (b *BasicBlock) AcceptAsTreeNode(pre, post func(*BasicBlock)) {
	pre(b)
	for _, child := range b.Children {
		child.AcceptAsTreeNode(pre, post)
	}
	post(b)
}

// NumberDomTree stamps every block in the dominator tree rooted at b with
// pre-order in/out serials, enabling O(1) Dominates queries.
func (b *BasicBlock) NumberDomTree() {
	serial := 0
	b.AcceptAsTreeNode(func(block *BasicBlock) {
		block.serial[0] = serial
		serial++
	}, func(block *BasicBlock) {
		block.serial[1] = serial
		serial++
	})
}
