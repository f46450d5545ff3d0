package ir

// Func is a single procedure: a CFG of BasicBlocks, already in SSA form
// (phis already placed — building SSA form is out of this repository's
// scope, see DESIGN.md). Start has no predecessors; End has no
// successors and no code of its own.
type Func struct {
	Name   string
	Start  *BasicBlock
	End    *BasicBlock
	Blocks []*BasicBlock

	NumParams int

	nextIndex int

	// LastIndexBeforePass is stamped by gvnpre.Run immediately before
	// the pass starts; any node with a larger Index was created during
	// insertion, which is how the eliminator tells a "fully redundant"
	// exchange (leader predates the pass) from a "partially redundant"
	// one (leader was hoisted by this run).
	LastIndexBeforePass int

	// KeepAlive holds nodes (typically memory phis) kept reachable only
	// for liveness bookkeeping, mirroring libFirm's End-node keep-alive
	// edges. RemoveKeepAlive is how the eliminator severs one once the
	// node it guarded has been replaced.
	KeepAlive []*Node
}

// RemoveKeepAlive drops n from f.KeepAlive, a no-op if n isn't present.
func (f *Func) RemoveKeepAlive(n *Node) {
	for i, k := range f.KeepAlive {
		if k == n {
			f.KeepAlive = append(f.KeepAlive[:i], f.KeepAlive[i+1:]...)
			return
		}
	}
}

func NewFunc(name string) *Func {
	start := NewBasicBlock("start", nil)
	end := NewBasicBlock("end", nil)
	fn := &Func{Name: name, Start: start, End: end, Blocks: []*BasicBlock{start, end}}
	start.Func = fn
	end.Func = fn
	return fn
}

func (f *Func) allocIndex() int {
	f.nextIndex++
	return f.nextIndex
}

// LastIndex returns the highest node index allocated so far.
func (f *Func) LastIndex() int { return f.nextIndex }

// NewBlock creates a block owned by f and registers it, without wiring any
// CFG edges — callers connect it with BasicBlock.ConnectTo.
func (f *Func) NewBlock(name string) *BasicBlock {
	b := NewBasicBlock(name, f)
	f.Blocks = append(f.Blocks, b)
	return b
}
