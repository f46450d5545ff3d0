package ir

// const.go is the trimmed remnant of wzh99's ir/sccp.go: constant
// classification and the handful of constant-folding helpers the
// collaborator's own builders need when they want to pre-fold an
// obviously constant expression. Conditional-constant propagation
// itself is out of scope here; GVN-PRE consumes whatever constants
// already exist in the graph, it does not discover new ones.

// ConstInt builds an OpConst node carrying an int64 payload.
func ConstInt(fn *Func, block *BasicBlock, v int64) *Node {
	return NewNode(fn, block, OpConst, ModeI64, ConstAttr{Value: v})
}

// ConstI32 builds an OpConst node carrying an int32-ranged payload, still
// stored as int64 so every integer constant shares one Go type.
func ConstI32(fn *Func, block *BasicBlock, v int32) *Node {
	return NewNode(fn, block, OpConst, ModeI32, ConstAttr{Value: int64(v)})
}

// ConstBool builds an OpConst node carrying a bool payload.
func ConstBool(fn *Func, block *BasicBlock, v bool) *Node {
	return NewNode(fn, block, OpConst, ModeI1, ConstAttr{Value: v})
}

// ConstFloat builds an OpConst node carrying a float64 payload.
func ConstFloat(fn *Func, block *BasicBlock, v float64) *Node {
	return NewNode(fn, block, OpConst, ModeF64, ConstAttr{Value: v})
}

// IntValue extracts n's integer payload, returning ok=false if n is not
// a constant or its payload is not an int64. Used by the insertion
// engine's constant-range checks (§4.G) and by FoldBinary.
func IntValue(n *Node) (int64, bool) {
	if n.Op != OpConst {
		return 0, false
	}
	v, ok := n.Attr.(ConstAttr).Value.(int64)
	return v, ok
}

// FoldBinary attempts to constant-fold a binary arithmetic or compare op
// applied to two int64 constants, returning ok=false if either operand
// is not a foldable integer constant or op has no integer semantics.
// This is the one piece of sccp.go's folding table this repository keeps:
// enough for builders and tests to construct small constant-folded graphs
// without duplicating the switch everywhere they need one.
func FoldBinary(fn *Func, block *BasicBlock, op Op, a, b *Node) (*Node, bool) {
	av, aok := IntValue(a)
	bv, bok := IntValue(b)
	if !aok || !bok {
		return nil, false
	}
	switch op {
	case OpAdd:
		return ConstInt(fn, block, av+bv), true
	case OpSub:
		return ConstInt(fn, block, av-bv), true
	case OpMul:
		return ConstInt(fn, block, av*bv), true
	case OpAnd:
		return ConstInt(fn, block, av&bv), true
	case OpOr:
		return ConstInt(fn, block, av|bv), true
	case OpXor:
		return ConstInt(fn, block, av^bv), true
	case OpEq:
		return ConstBool(fn, block, av == bv), true
	case OpNe:
		return ConstBool(fn, block, av != bv), true
	case OpLt:
		return ConstBool(fn, block, av < bv), true
	case OpLe:
		return ConstBool(fn, block, av <= bv), true
	case OpGt:
		return ConstBool(fn, block, av > bv), true
	case OpGe:
		return ConstBool(fn, block, av >= bv), true
	default:
		return nil, false
	}
}
