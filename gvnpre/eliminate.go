package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// elimReason records why an elim pair was enqueued, purely for Stats.
type elimReason int

const (
	reasonFully elimReason = iota
	reasonPartially
)

// elimPair is a deferred replacement {old, new, reason} (§3, §4.H).
// Replacements are deferred because performing them eagerly would alter
// the hash identity of nodes still being inspected by the same walk.
type elimPair struct {
	old, new *ir.Node
	reason   elimReason
}

// collectElimPairs walks every non-block node (AllNodes already only
// yields Nodes, never BasicBlocks, so "is_Block" filtering is implicit
// here) and enqueues a pair wherever the node's own avail_out leader
// differs from itself.
func collectElimPairs(f *ir.Func, vt *ValueTable, infos *BlockInfoStore) []elimPair {
	var pairs []elimPair
	for _, n := range ir.AllNodes(f) {
		value := vt.Identify(n)
		info := infos.Get(n.Block)
		leader := info.AvailOut.Lookup(value)
		if leader == nil || leader == n {
			continue
		}
		reason := reasonFully
		if leader.Index > f.LastIndexBeforePass {
			reason = reasonPartially
		}
		pairs = append(pairs, elimPair{old: n, new: leader, reason: reason})
	}
	return pairs
}

// drainElimPairs performs every deferred exchange, first collapsing any
// degenerate phi PRE tends to create — Phi(self, self, ..., x, self,
// ...) — down to x (§4.H), then redirecting every use of old to new.
func drainElimPairs(f *ir.Func, pairs []elimPair) (fully, partially int) {
	for _, p := range pairs {
		newNode := p.new

		if ir.IsPhi(newNode) {
			if collapsed, ok := degenerateCollapseTarget(newNode, p.old); ok {
				ir.Exchange(f, newNode, collapsed)
				newNode = collapsed
			}
		}

		ir.Exchange(f, p.old, newNode)

		if p.reason == reasonFully {
			fully++
		} else {
			partially++
		}
	}
	return fully, partially
}

// degenerateCollapseTarget reports whether phi's inputs are all either
// old or a single other node res; if so, res is the collapse target.
func degenerateCollapseTarget(phi, old *ir.Node) (*ir.Node, bool) {
	var res *ir.Node
	for _, pred := range phi.Inputs {
		if pred == old {
			continue
		}
		if res != nil && res != pred {
			return nil, false
		}
		res = pred
	}
	if res == nil {
		return nil, false
	}
	return res, true
}

// pruneKeepAlives severs keep-alive edges collected during insertion for
// memory phis that elimination has now made unreachable any other way
// (SUPPLEMENTED FEATURES #4 in SPEC_FULL.md). Run passes an empty list:
// Options.Loads is rejected at Run's entry, and with DivMods the Div/Mod
// nodes of this IR carry no memory input, so no memory phi ever becomes
// eligible for PRE and nothing collects one.
func pruneKeepAlives(f *ir.Func, keeps []*ir.Node) {
	for _, k := range keeps {
		f.RemoveKeepAlive(k)
	}
}
