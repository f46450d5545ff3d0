package gvnpre

import "tlog.app/go/errors"

// Options carries every feature flag and iteration cap the original
// compile-time switches became once turned into pass-struct fields (§9).
// All flags default off except where noted; MaxAnticIter/MaxInsertIter
// default to the values hard-coded in the source (10 and 3).
type Options struct {
	// Loads enables phi-translating memory operations and extended
	// availability for pinned Load nodes. Off by default: the IR
	// collaborator in this repository does not implement the extra
	// machinery (memory-projection special cases, keep-alive tracking for
	// non-eliminated loads) the feature needs; turning it on without that
	// support is a feature-flag misuse, rejected at Run's entry.
	Loads bool

	// DivMods makes Div/Mod nice values, eligible for PRE like any other
	// arithmetic op. Off by default per spec.md's Non-goals.
	DivMods bool

	// OldDivMods names the original's older, more conservative Div/Mod
	// availability rule. No code in this repository reads it: setting it
	// changes nothing.
	OldDivMods bool

	// HoistHigh would run the optional post-pass that pushes a
	// successfully hoisted expression further up the dominator tree while
	// its operands still die there. Spec.md calls it optional and not
	// required for correctness; this repository does not implement the
	// post-pass, so setting it is rejected at Run's entry the same way
	// BetterGreed is (see DESIGN.md's Open Question list).
	HoistHigh bool

	// CommonDom would govern HoistHigh's search starting point: from the
	// join block (true, searching for a common dominator) or from the
	// immediate predecessor (false). Unconsumed while HoistHigh is
	// rejected; kept so configuration parsing is forward-compatible if
	// Hoist-High is ever implemented. Default true, matching the
	// original's default-on policy bit.
	CommonDom bool

	// MinCut makes the greediness check refuse to hoist ahead of an
	// operand value insertion hasn't processed yet in the join block.
	// It does not look at how many users a phi has. Experimental, off by
	// default.
	MinCut bool

	// BetterGreed is exposed only so configuration parsing is
	// forward-compatible; the original marks this pathway "NIY" and this
	// repository does not implement it either. Setting it is rejected at
	// Run's entry as feature-flag misuse.
	BetterGreed bool

	// NoInfLoops has the Antic_in solver skip seeding inside loops the
	// Loop Classifier flags as endless (the classifier itself always
	// runs; this flag decides whether its result is used). Off by default.
	NoInfLoops bool

	// NoInfLoops2 additionally skips antic_in propagation across
	// back-edges of endless loops during the first two iterations. Only
	// meaningful when NoInfLoops is also set.
	NoInfLoops2 bool

	// MaxAnticIter bounds the Antic_in solver's outer loop (§4.F).
	MaxAnticIter int

	// MaxInsertIter bounds the Insertion engine's outer loop (§4.G).
	MaxInsertIter int
}

// DefaultOptions returns the pass's default configuration: every
// feature flag off, CommonDom on (matching the original's default-on
// policy bit, meaningful only once HoistHigh is enabled), and the
// original's iteration caps.
func DefaultOptions() Options {
	return Options{
		CommonDom:     true,
		MaxAnticIter:  10,
		MaxInsertIter: 3,
	}
}

// validate rejects feature-flag combinations this repository does not
// support, per §7's "feature-flag misuse: fatal; reject at pass entry".
func (o Options) validate() error {
	if o.BetterGreed {
		return errors.New("BetterGreed is not implemented (marked unfinished upstream); do not enable it")
	}
	if o.Loads {
		return errors.New("Loads requires memory-projection phi-translation support the IR collaborator does not provide")
	}
	if o.HoistHigh {
		return errors.New("HoistHigh's post-pass is not implemented; do not enable it")
	}
	if o.MaxAnticIter <= 0 {
		return errors.New("MaxAnticIter must be positive, got %d", o.MaxAnticIter)
	}
	if o.MaxInsertIter <= 0 {
		return errors.New("MaxInsertIter must be positive, got %d", o.MaxInsertIter)
	}
	return nil
}
