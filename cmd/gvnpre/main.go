package main

import (
	"fmt"
	"os"

	"github.com/Schaback/libfirm-2/gvnpre"
	"github.com/Schaback/libfirm-2/ir"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
)

func main() {
	demoCmd := &cli.Command{
		Name:        "demo",
		Description: "build a small partially-redundant join and run gvnpre on it",
		Action:      demoAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "gvnpre",
		Description: "inspection entry point for the GVN-PRE pass",
		Commands: []*cli.Command{
			demoCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

// demoAct builds spec.md §8's scenario 2 (partially redundant): L1
// computes x+y, L2 does nothing, L3 joins both and recomputes x+y. A
// correct run hoists a copy into L2 and replaces L3's recomputation with
// a phi.
func demoAct(c *cli.Command) (err error) {
	f := ir.NewFunc("demo")
	x := ir.NewParam(f, ir.ModeI64, 0)
	y := ir.NewParam(f, ir.ModeI64, 1)

	l1 := f.NewBlock("L1")
	l2 := f.NewBlock("L2")
	l3 := f.NewBlock("L3")

	f.Start.ConnectTo(l1)
	f.Start.ConnectTo(l2)
	l1.ConnectTo(l3)
	l2.ConnectTo(l3)
	l3.ConnectTo(f.End)

	t1 := ir.NewBinary(f, l1, ir.OpAdd, x, y)
	t3 := ir.NewBinary(f, l3, ir.OpAdd, x, y)
	_ = t1

	fmt.Println("--- before ---")
	fmt.Print(ir.Sprint(f))

	stats, err := gvnpre.Run(f, gvnpre.DefaultOptions())
	if err != nil {
		return errors.Wrap(err, "gvnpre run")
	}

	fmt.Println("--- after ---")
	fmt.Print(ir.Sprint(f))
	fmt.Printf("stats: %+v\n", stats)
	_ = t3

	return nil
}
