package ir

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewBinaryModeMismatchPanics(t *testing.T) {
	f := NewFunc("f")
	a := NewParam(f, ModeI64, 0)
	b := NewParam(f, ModeI32, 1)
	require.Panics(t, func() { NewBinary(f, f.Start, OpAdd, a, b) })
}

func TestNewBinaryCompareYieldsBoolMode(t *testing.T) {
	f := NewFunc("f")
	a := NewParam(f, ModeI64, 0)
	b := NewParam(f, ModeI64, 1)
	cmp := NewBinary(f, f.Start, OpLt, a, b)
	require.Equal(t, ModeI1, cmp.Mode)
}

func TestNewPhiArityMismatchPanics(t *testing.T) {
	f, l1, l2, l3 := diamond()
	a := NewParam(f, ModeI64, 0)
	require.Panics(t, func() { NewPhi(f, l3, ModeI64, a) })
	_ = l1
	_ = l2
}

func TestFinishEstablishesProperties(t *testing.T) {
	f := NewFunc("crit")
	a := f.NewBlock("A")
	b := f.NewBlock("B")
	c := f.NewBlock("C")
	f.Start.ConnectTo(a)
	a.ConnectTo(b)
	a.ConnectTo(c)
	b.ConnectTo(c)
	c.ConnectTo(f.End)

	Finish(f)

	require.False(t, HasCriticalEdge(f))
	require.NotNil(t, c.ImmDom)
}

func TestAssureProperties(t *testing.T) {
	f, _, _, _ := diamond()
	require.NoError(t, AssureProperties(f))
}

func TestAssurePropertiesUnreachableEnd(t *testing.T) {
	f := NewFunc("dangling")
	orphan := f.NewBlock("orphan")
	_ = orphan // never connected to Start or End
	err := AssureProperties(f)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "unreachable"))
}
