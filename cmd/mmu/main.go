// Command mmu runs the virtual-memory pager simulator described in
// spec.md §6: it replays a process/VMA/instruction trace against a fixed
// number of physical frames and one of six replacement policies.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/oscore/simkit/pkg/mmu"
	"github.com/oscore/simkit/pkg/rng"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type opts struct {
	numFrames int
	pagerSpec string
	outputs   string
	logLevel  string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "mmu -f<FRAMES> -a<ALGO> [-o<OPFS>] <tracefile> <rfile>",
		Short: "Virtual-memory page-replacement simulator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, args[0], args[1])
		},
	}

	root.Flags().IntVarP(&o.numFrames, "frames", "f", 1, "number of physical frames")
	root.Flags().StringVarP(&o.pagerSpec, "algo", "a", "f", "pager: f|r|c|e|a|w")
	root.Flags().StringVarP(&o.outputs, "output", "o", "", "output flags: O (per-op trace), P (page tables), F (frame table), S (summary)")
	root.Flags().StringVar(&o.logLevel, "log-level", "warn", "diagnostic log level: debug|info|warn|error")

	if err := root.Execute(); err != nil {
		logrus.New().Error(err)
		os.Exit(1)
	}
}

func run(o opts, tracePath, rfilePath string) error {
	if len(o.pagerSpec) == 0 {
		return fmt.Errorf("%w: empty -a spec", mmu.ErrUnknownPager)
	}

	rfile, err := os.Open(rfilePath)
	if err != nil {
		return fmt.Errorf("mmu: %w", err)
	}
	defer rfile.Close()

	src, err := rng.Load(rfile)
	if err != nil {
		return err
	}

	pager, _, err := mmu.NewPager(o.pagerSpec[0], src)
	if err != nil {
		return err
	}

	traceFile, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("mmu: %w", err)
	}
	defer traceFile.Close()

	processes, instructions, err := mmu.LoadTrace(traceFile)
	if err != nil {
		return err
	}

	engine := mmu.NewEngine(pager, processes, o.numFrames)
	if strings.ContainsRune(o.outputs, 'O') {
		engine.Trace = os.Stdout
	}
	if level, err := logrus.ParseLevel(o.logLevel); err == nil {
		engine.Log.SetLevel(level)
	}
	instCount := engine.Run(instructions)

	if strings.ContainsRune(o.outputs, 'P') {
		for _, p := range processes {
			fmt.Fprintln(os.Stdout, mmu.PageTableDump(p))
		}
	}
	if strings.ContainsRune(o.outputs, 'F') {
		fmt.Fprintln(os.Stdout, mmu.FrameTableDump(engine.Frames()))
	}
	if strings.ContainsRune(o.outputs, 'S') {
		for _, stat := range engine.Stats() {
			fmt.Fprintln(os.Stdout, stat.Summary())
		}
		fmt.Fprintln(os.Stdout, mmu.TotalCostLine(instCount, engine.ContextSwitches(), engine.ProcessExits(), engine.Cost()))
	}

	return nil
}
