package ir

import (
	"fmt"
	"io"
	"strings"
)

// Printer writes a textual dump of a Func, block by block, in the same
// panic-wrapped-write style as wzh99's ir/printer.go: writes accumulate
// into a strings.Builder and a failure to format is a programmer error,
// not a runtime condition worth threading error returns for.
type Printer struct {
	w   io.Writer
	sb  strings.Builder
	err error
}

func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) write(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(&p.sb, format, args...); err != nil {
		panic(NewIRError("printer: " + err.Error()))
	}
}

// PrintFunc renders f and flushes the result to the printer's writer.
func (p *Printer) PrintFunc(f *Func) {
	p.write("func %s {\n", f.Name)
	for _, b := range ReversePostOrderBlocks(f) {
		p.printBlock(b)
	}
	p.flush()
}

func (p *Printer) printBlock(b *BasicBlock) {
	preds := make([]string, len(b.Preds))
	for i, pr := range b.Preds {
		preds[i] = pr.Name
	}
	loopTag := ""
	if b.Loop != nil {
		loopTag = fmt.Sprintf(" loop<%s depth=%d>", b.Loop.Header.Name, LoopDepth(b))
	}
	p.write("  %s: preds=[%s]%s\n", b.Name, strings.Join(preds, ", "), loopTag)
	for _, n := range b.Nodes {
		p.printNode(n)
	}
}

func (p *Printer) printNode(n *Node) {
	ins := make([]string, len(n.Inputs))
	for i, in := range n.Inputs {
		ins[i] = in.String()
	}
	attr := ""
	switch n.Op {
	case OpConst:
		attr = fmt.Sprintf(" %v", n.Attr.(ConstAttr).Value)
	case OpParam:
		attr = fmt.Sprintf(" #%d", n.Attr.(ParamAttr).Index)
	case OpProj:
		attr = fmt.Sprintf(" idx=%d", n.Attr.(ProjAttr).Index)
	case OpCall:
		attr = fmt.Sprintf(" %s", n.Attr.(CallAttr).Callee)
	}
	p.write("    %s = %s %s(%s)%s\n", n, n.Mode, n.Op, strings.Join(ins, ", "), attr)
}

func (p *Printer) flush() {
	if _, err := io.WriteString(p.w, p.sb.String()); err != nil {
		panic(NewIRError("printer: " + err.Error()))
	}
	p.sb.Reset()
}

// Sprint is a convenience wrapper returning f's dump as a string, used by
// tests and the cmd/gvnpre demo to show before/after side by side.
func Sprint(f *Func) string {
	var sb strings.Builder
	NewPrinter(&sb).PrintFunc(f)
	return sb.String()
}
