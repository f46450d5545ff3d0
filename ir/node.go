package ir

import "fmt"

// ConstAttr is the opcode-specific attribute payload of an OpConst node.
type ConstAttr struct {
	Value interface{} // int64, float64 or bool
}

// ProjAttr selects one component out of a tuple-mode node (Load, Call).
type ProjAttr struct {
	Index int
}

// ParamAttr identifies which function parameter a Param node reads.
type ParamAttr struct {
	Index int
}

// CallAttr names the callee of a Call node. Calls are never considered
// the same value as one another (see IsMemOp), so this attribute is only
// used for printing.
type CallAttr struct {
	Callee string
}

// IRError signals a structural misuse of the IR API: wrong arity, a type
// mismatch between an operand and the opcode that consumes it, or any
// other invariant a caller could have avoided by checking before
// calling. These are programmer errors, not runtime conditions, so
// every site that can raise one (NewNode's arity check below, the
// builder constructors, gvnpre's block-info store and insertion engine)
// panics with it instead of returning an error.
type IRError struct {
	Msg string
}

func NewIRError(msg string) *IRError { return &IRError{Msg: msg} }

func (e *IRError) Error() string { return e.Msg }

// Node is the IR's only value-producing vertex type: opcode, mode, block,
// an ordered input list and an opaque attribute payload, exactly the
// shape the value-numbering core inspects through the §6 interfaces. Node
// is immutable in structure once constructed, except that Exchange
// rewrites input slots and Schedule sets the block; NewNodeLike builds a
// fresh twin rather than mutating one in place.
type Node struct {
	Op     Op
	Mode   Mode
	Block  *BasicBlock // nominal placement; not part of value identity
	Inputs []*Node
	Attr   interface{}
	Index  int // unique, monotonically assigned at construction time
}

func (n *Node) Arity() int { return len(n.Inputs) }

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d", n.Op, n.Index)
}

// --- opcode classifiers (the is_* family from §6) ---

func IsPhi(n *Node) bool   { return n.Op == OpPhi }
func IsConst(n *Node) bool { return n.Op == OpConst }
func IsProj(n *Node) bool  { return n.Op == OpProj }
func IsLoad(n *Node) bool  { return n.Op == OpLoad }
func IsStore(n *Node) bool { return n.Op == OpStore }
func IsCall(n *Node) bool  { return n.Op == OpCall }
func IsDiv(n *Node) bool   { return n.Op == OpDiv }
func IsMod(n *Node) bool   { return n.Op == OpMod }

// IsMemOp reports whether n reads or writes the memory/effect chain.
// Memops compare unequal to everything (§3). The value table has no
// Load exception: it treats every memop as unique, and gvnpre.Run
// rejects Options.Loads.
func IsMemOp(n *Node) bool { return n.Op == OpLoad || n.Op == OpStore || n.Op == OpCall }

// IsConstLike reports whether n is available without being computed
// anywhere (constants are globally available implicitly, §4.B step 3).
func IsConstLike(n *Node) bool { return n.Op == OpConst }

// IsPinned reports whether n must stay where it was placed: it may not be
// hoisted or used as a value representative for a different block.
// Load/Store/Call are always pinned. Div/Mod are pinned unless the
// DivMods feature is enabled (§9); every other opcode is movable.
func IsPinned(n *Node, divModsEnabled bool) bool {
	switch n.Op {
	case OpLoad, OpStore, OpCall:
		return true
	case OpDiv, OpMod:
		return !divModsEnabled
	default:
		return false
	}
}

// AttrEqual compares the opcode-specific attribute payloads of two nodes
// that have already been found equal in opcode, mode and arity.
func AttrEqual(a, b *Node) bool {
	switch a.Op {
	case OpConst:
		av, bv := a.Attr.(ConstAttr), b.Attr.(ConstAttr)
		return av.Value == bv.Value
	case OpProj:
		return a.Attr.(ProjAttr).Index == b.Attr.(ProjAttr).Index
	case OpParam:
		return a.Attr.(ParamAttr).Index == b.Attr.(ParamAttr).Index
	default:
		return true
	}
}

// NewNode allocates a node, checks its arity against the opcode (mirroring
// the panic-on-misuse constructors in wzh99's instr.go), places it at the
// tail of block's schedule and assigns it the function's next monotonic
// index.
func NewNode(fn *Func, block *BasicBlock, op Op, mode Mode, attr interface{}, inputs ...*Node) *Node {
	if want := op.Arity(); want >= 0 && want != len(inputs) {
		panic(NewIRError(fmt.Sprintf("%s expects %d operands, got %d", op, want, len(inputs))))
	}
	n := &Node{
		Op:     op,
		Mode:   mode,
		Block:  block,
		Inputs: inputs,
		Attr:   attr,
		Index:  fn.allocIndex(),
	}
	if block != nil {
		block.Nodes = append(block.Nodes, n)
	}
	return n
}

// NewNodeLike constructs a structural twin of template with different
// inputs, placed nominally in block. Used by the value table (to build
// leader-normalized twins) and by phi translation (to build translated
// representatives); in both cases the result may never be scheduled into
// the block it nominally carries — see §4.E.
func NewNodeLike(fn *Func, block *BasicBlock, template *Node, inputs []*Node) *Node {
	return &Node{
		Op:     template.Op,
		Mode:   template.Mode,
		Block:  block,
		Inputs: inputs,
		Attr:   template.Attr,
		Index:  fn.allocIndex(),
	}
}

// Schedule appends an already-constructed node (typically built via
// NewNodeLike as a bare value representative) to block's instruction
// list, giving it a real home in the graph. Used by the insertion engine
// once a hoisted copy has been decided on.
func Schedule(n *Node, block *BasicBlock) {
	n.Block = block
	block.Nodes = append(block.Nodes, n)
}
