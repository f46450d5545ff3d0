package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// identityKey is the structural hash key the value table hash-consing
// set is keyed by: opcode, mode, arity, leader-normalized input values
// and an attribute fingerprint (§9: "explicit structural hash of
// (opcode, mode, input-leader-ids, attribute fingerprint)"). Phis and
// memory operations never share a key with anything: phis never enter
// the identity set at all (Remember returns each phi as its own value),
// and every memop gets its own private key built from its own *ir.Node
// pointer rather than its structural shape.
type identityKey struct {
	op     ir.Op
	mode   ir.Mode
	inputs [8]Value // fixed-size to stay comparable/hashable; overflow falls back below
	arity  int
	attr   interface{}
	uniq   *ir.Node // set for memops: makes the key unique to this node
}

// ValueTable is the value-numbering core (§4.A): canonical value IDs for
// expressions, one leader per value.
type ValueTable struct {
	identities map[identityKey][]Value // hash bucket; linear scan resolves rare collisions beyond the fixed key
	values     map[*ir.Node]Value      // node -> its remembered value
	opts       Options

	lastIdx int // stamped by Run; see lastIndexBeforePass
}

func NewValueTable(opts Options) *ValueTable {
	return &ValueTable{
		identities: make(map[identityKey][]Value),
		values:     make(map[*ir.Node]Value),
		opts:       opts,
	}
}

// Identify returns the existing value for n if one has been remembered;
// otherwise computes and remembers it. Never creates a new canonical
// node itself — it delegates to Remember, which may (§4.A).
func (t *ValueTable) Identify(n *ir.Node) Value {
	if v, ok := t.values[n]; ok {
		return v
	}
	return t.Remember(n)
}

// Remember builds a normalized twin of n by recursively replacing each
// non-phi input with its leader, then inserts the twin (or n itself if
// no input changed) into the identity set, records node -> value and
// returns the value (§4.A).
func (t *ValueTable) Remember(n *ir.Node) Value {
	if ir.IsPhi(n) {
		// Phis always yield a fresh value; they kill incoming value
		// identity to break the cycle their own inputs may route back
		// through (§3, §9).
		v := n
		t.values[n] = v
		return v
	}

	normalized := n
	changed := false
	leaders := make([]*ir.Node, len(n.Inputs))
	for i, in := range n.Inputs {
		if ir.IsPhi(in) {
			leaders[i] = in
			continue
		}
		lv := t.Identify(in)
		leaders[i] = lv
		if lv != in {
			changed = true
		}
	}
	if changed {
		normalized = ir.NewNodeLike(blockFunc(n), n.Block, n, leaders)
	}

	v := t.identifyOrInsert(normalized)
	t.values[n] = v
	if normalized != n {
		t.values[normalized] = v
	}
	return v
}

// IdentifyOrRemember is the shortcut named in §4.A: lookup, else remember.
func (t *ValueTable) IdentifyOrRemember(n *ir.Node) Value {
	if v, ok := t.values[n]; ok {
		return v
	}
	return t.Remember(n)
}

// identifyOrInsert resolves normalized against the identity set using
// the custom comparator, inserting it as a fresh leader if no equal
// node is present yet.
func (t *ValueTable) identifyOrInsert(normalized *ir.Node) Value {
	if ir.IsMemOp(normalized) {
		// Memory-side-effectful operations compare unequal to everything
		// by default (§3); each gets its own bucket keyed uniquely.
		key := identityKey{uniq: normalized}
		t.identities[key] = []Value{normalized}
		return normalized
	}

	key := t.keyOf(normalized)
	for _, cand := range t.identities[key] {
		if identityEqual(cand, normalized) {
			return cand
		}
	}
	t.identities[key] = append(t.identities[key], normalized)
	return normalized
}

func (t *ValueTable) keyOf(n *ir.Node) identityKey {
	k := identityKey{op: n.Op, mode: n.Mode, arity: len(n.Inputs), attr: attrFingerprint(n)}
	for i, in := range n.Inputs {
		if i >= len(k.inputs) {
			break // beyond the fixed width, identityEqual's full scan still disambiguates
		}
		k.inputs[i] = in
	}
	return k
}

// identityEqual is the custom comparator from §3: same opcode, mode,
// arity; inputs pairwise identical (as values, already normalized by
// Remember); attributes equal. Phis and memops are routed around this
// function entirely by their callers above.
func identityEqual(a, b *ir.Node) bool {
	if a.Op != b.Op || a.Mode != b.Mode || len(a.Inputs) != len(b.Inputs) {
		return false
	}
	for i := range a.Inputs {
		if a.Inputs[i] != b.Inputs[i] {
			return false
		}
	}
	return ir.AttrEqual(a, b)
}

func attrFingerprint(n *ir.Node) interface{} {
	switch n.Op {
	case ir.OpConst:
		return n.Attr.(ir.ConstAttr).Value
	case ir.OpProj:
		return n.Attr.(ir.ProjAttr).Index
	case ir.OpParam:
		return n.Attr.(ir.ParamAttr).Index
	default:
		return nil
	}
}

// blockFunc recovers the owning Func from a node's block, needed because
// NewNodeLike requires a Func to allocate its twin's index from.
func blockFunc(n *ir.Node) *ir.Func {
	return n.Block.Func
}

// setLastIndexBeforePass records the node index watermark the
// greediness check and eliminator use to tell a constant/leader that
// predates this run from one this run just created.
func (t *ValueTable) setLastIndexBeforePass(idx int) { t.lastIdx = idx }

func (t *ValueTable) lastIndexBeforePass() int { return t.lastIdx }
