package ir

import "fmt"

// builder.go is the programmatic graph-construction surface tests and the
// cmd/gvnpre demo build functions with, in the spirit of wzh99's own
// instr.go constructors: one call per opcode family, panicking via
// IRError on anything a caller could have checked beforehand (unequal
// pred/phi-input counts, mode mismatches).

// NewBinary builds a binary arithmetic or compare node, checking that
// both operands share a mode (ground: wzh99 ir/instr.go NewBinary's own
// operand-compatibility check).
func NewBinary(fn *Func, block *BasicBlock, op Op, a, b *Node) *Node {
	if a.Mode != b.Mode {
		panic(NewIRError(fmt.Sprintf("%s operands have mismatched modes %s/%s", op, a.Mode, b.Mode)))
	}
	mode := a.Mode
	if _, ok := compareOps[op]; ok {
		mode = ModeI1
	}
	return NewNode(fn, block, op, mode, nil, a, b)
}

// NewUnary builds a Neg or Not node.
func NewUnary(fn *Func, block *BasicBlock, op Op, a *Node) *Node {
	if op != OpNeg && op != OpNot {
		panic(NewIRError(fmt.Sprintf("%s is not a unary opcode", op)))
	}
	return NewNode(fn, block, op, a.Mode, nil, a)
}

// NewParam builds a Param node reading the idx'th argument, placed in
// fn.Start.
func NewParam(fn *Func, mode Mode, idx int) *Node {
	return NewNode(fn, fn.Start, OpParam, mode, ParamAttr{Index: idx})
}

// NewPhi builds a Phi node in block with one input per entry in
// block.Preds, in the matching order. len(inputs) must equal
// len(block.Preds); phis are built after a block's predecessors are
// wired, matching the teacher's insertPhi ordering.
func NewPhi(fn *Func, block *BasicBlock, mode Mode, inputs ...*Node) *Node {
	if len(inputs) != len(block.Preds) {
		panic(NewIRError(fmt.Sprintf("phi in %s expects %d inputs (one per predecessor), got %d",
			block.Name, len(block.Preds), len(inputs))))
	}
	return NewNode(fn, block, OpPhi, mode, nil, inputs...)
}

// NewLoad builds a Load node reading through mem from addr, tuple-moded
// (value + outgoing memory state are split out with Proj).
func NewLoad(fn *Func, block *BasicBlock, mem, addr *Node) *Node {
	return NewNode(fn, block, OpLoad, ModeTuple, nil, mem, addr)
}

// NewStore builds a Store node writing val through mem to addr, and
// yields the new memory state (mode Mem, not a tuple: Store has nothing
// else to project out).
func NewStore(fn *Func, block *BasicBlock, mem, addr, val *Node) *Node {
	return NewNode(fn, block, OpStore, ModeMem, nil, mem, addr, val)
}

// NewCall builds a Call node invoking callee with args, threaded through
// mem; tuple-moded like Load.
func NewCall(fn *Func, block *BasicBlock, callee string, mem *Node, args ...*Node) *Node {
	inputs := append([]*Node{mem}, args...)
	return NewNode(fn, block, OpCall, ModeTuple, CallAttr{Callee: callee}, inputs...)
}

// NewProj builds a Proj node selecting component idx out of a
// tuple-moded producer.
func NewProj(fn *Func, block *BasicBlock, from *Node, idx int, mode Mode) *Node {
	if from.Mode != ModeTuple {
		panic(NewIRError(fmt.Sprintf("Proj source %s is not tuple-moded", from)))
	}
	return NewNode(fn, block, OpProj, mode, ProjAttr{Index: idx}, from)
}

// Finish runs the analyses every GVN-PRE precondition (§5) depends on:
// critical-edge splitting, then dominators, then the loop tree. Call
// this once a function's blocks and nodes are fully built, before
// handing it to gvnpre.Run.
func Finish(f *Func) {
	SplitCriticalEdges(f)
	ComputeDominators(f)
	ComputeLoops(f)
}

// AssureProperties is Finish plus a reachability check, returning an
// error instead of panicking. gvnpre.Run calls this at its own boundary
// so a caller handing it a malformed function gets a wrapped error back
// rather than a panic escaping the package — everywhere else in this
// package, a broken precondition is the caller's bug and panics.
func AssureProperties(f *Func) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if irErr, ok := r.(*IRError); ok {
				err = irErr
				return
			}
			panic(r)
		}
	}()
	if f.Start == nil || f.End == nil {
		return NewIRError(fmt.Sprintf("function %s has no start/end block", f.Name))
	}
	reachable := make(map[*BasicBlock]bool)
	for _, b := range PostOrderBlocks(f) {
		reachable[b] = true
	}
	if !reachable[f.End] {
		return NewIRError(fmt.Sprintf("function %s's end block is unreachable", f.Name))
	}
	Finish(f)
	return nil
}
