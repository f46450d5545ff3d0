package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// selfLoop builds Start -> H -> H (back edge) and H -> End.
func selfLoop() (f *Func, h *BasicBlock) {
	f = NewFunc("selfloop")
	h = f.NewBlock("H")
	f.Start.ConnectTo(h)
	h.ConnectTo(h)
	h.ConnectTo(f.End)
	return f, h
}

func TestComputeLoopsSelfLoop(t *testing.T) {
	f, h := selfLoop()
	ComputeDominators(f)
	ComputeLoops(f)

	require.NotNil(t, h.Loop)
	require.Equal(t, h, h.Loop.Header)
	require.Equal(t, 0, h.Loop.Depth)
	require.True(t, h.Loop.Blocks[h])
}

func TestComputeLoopsNesting(t *testing.T) {
	f := NewFunc("nested")
	outer := f.NewBlock("outer")
	inner := f.NewBlock("inner")

	f.Start.ConnectTo(outer)
	outer.ConnectTo(inner)
	inner.ConnectTo(inner) // inner self-loop
	inner.ConnectTo(outer) // back edge to outer
	outer.ConnectTo(f.End)

	ComputeDominators(f)
	ComputeLoops(f)

	require.NotNil(t, inner.Loop)
	require.NotNil(t, outer.Loop)
	require.Equal(t, outer.Loop, inner.Loop.Outer)
	require.Equal(t, 1, inner.Loop.Depth)
	require.Equal(t, 0, outer.Loop.Depth)
}

func TestNoLoopOutsideCycle(t *testing.T) {
	f, l1, l2, l3 := diamond()
	ComputeDominators(f)
	ComputeLoops(f)

	require.Nil(t, l1.Loop)
	require.Nil(t, l2.Loop)
	require.Nil(t, l3.Loop)
}
