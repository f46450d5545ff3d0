package gvnpre

import (
	"testing"

	"github.com/Schaback/libfirm-2/ir"
	"github.com/stretchr/testify/require"
)

func TestValueSetInsertIsNoOpIfPresent(t *testing.T) {
	f := ir.NewFunc("f")
	a := ir.NewParam(f, ir.ModeI64, 0)
	b := ir.NewParam(f, ir.ModeI64, 1)

	s := NewValueSet()
	s.Insert(a, a)
	s.Insert(a, b) // must not overwrite

	require.Equal(t, a, s.Lookup(a))
	require.Equal(t, 1, s.Size())
}

func TestValueSetReplaceOverwritesRepresentative(t *testing.T) {
	f := ir.NewFunc("f")
	a := ir.NewParam(f, ir.ModeI64, 0)
	b := ir.NewParam(f, ir.ModeI64, 1)

	s := NewValueSet()
	s.Insert(a, a)
	s.Replace(a, b)

	require.Equal(t, b, s.Lookup(a))
	require.Equal(t, 1, s.Size())
}

func TestValueSetPreservesInsertionOrder(t *testing.T) {
	f := ir.NewFunc("f")
	a := ir.NewParam(f, ir.ModeI64, 0)
	b := ir.NewParam(f, ir.ModeI64, 1)
	c := ir.NewParam(f, ir.ModeI64, 2)

	s := NewValueSet()
	s.Insert(b, b)
	s.Insert(a, a)
	s.Replace(b, c) // replace must not move b to the end

	var order []Value
	s.Each(func(v Value, rep *ir.Node) { order = append(order, v) })
	require.Equal(t, []Value{b, a}, order)
}

func TestValueSetRemove(t *testing.T) {
	f := ir.NewFunc("f")
	a := ir.NewParam(f, ir.ModeI64, 0)

	s := NewValueSet()
	s.Insert(a, a)
	s.Remove(a)

	require.False(t, s.Has(a))
	require.Equal(t, 0, s.Size())
	require.Nil(t, s.Lookup(a))
}

func TestValueSetClone(t *testing.T) {
	f := ir.NewFunc("f")
	a := ir.NewParam(f, ir.ModeI64, 0)

	s := NewValueSet()
	s.Insert(a, a)

	c := s.Clone()
	c.Remove(a)

	require.True(t, s.Has(a))
	require.False(t, c.Has(a))
}
