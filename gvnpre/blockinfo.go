package gvnpre

import "github.com/Schaback/libfirm-2/ir"

// predScratch holds the per-predecessor scratch fields the Insertion
// engine's partial-redundancy analysis fills in for a single value
// decision (§3: "avail", "found").
type predScratch struct {
	found bool
	avail *ir.Node
}

// BlockInfo is the per-block state the pass threads through every
// component from the Exp_Gen Builder onward (§3). One is allocated per
// block on entry and freed at pass end by Run.
type BlockInfo struct {
	Block *ir.BasicBlock

	ExpGen     *ValueSet
	AvailOut   *ValueSet
	AnticIn    *ValueSet
	AnticDone  *ValueSet
	NewSet     *ValueSet
	Trans      map[*ir.Node]*ir.Node // phi-translation cache: this block's (single) successor -> translated

	scratch []predScratch // indexed by predecessor position in Block.Preds during one insertion decision at this join block
}

func newBlockInfo(b *ir.BasicBlock) *BlockInfo {
	return &BlockInfo{
		Block:     b,
		ExpGen:    NewValueSet(),
		AvailOut:  NewValueSet(),
		AnticIn:   NewValueSet(),
		AnticDone: NewValueSet(),
		NewSet:    NewValueSet(),
		Trans:     make(map[*ir.Node]*ir.Node),
	}
}

// BlockInfoStore owns one BlockInfo per block in the function (§2,
// component B), allocated once on entry to Run and freed (by simply
// dropping the reference) at the end.
type BlockInfoStore struct {
	infos map[*ir.BasicBlock]*BlockInfo
}

func newBlockInfoStore(f *ir.Func) *BlockInfoStore {
	s := &BlockInfoStore{infos: make(map[*ir.BasicBlock]*BlockInfo, len(f.Blocks))}
	for _, b := range f.Blocks {
		s.infos[b] = newBlockInfo(b)
	}
	return s
}

func (s *BlockInfoStore) Get(b *ir.BasicBlock) *BlockInfo {
	info := s.infos[b]
	if info == nil {
		panic(ir.NewIRError("gvnpre: no block info for block outside the function being processed"))
	}
	return info
}
