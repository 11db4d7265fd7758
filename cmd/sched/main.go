// Command sched runs the CPU scheduling simulator described in spec.md §6:
// it replays a process trace against one of six scheduling policies and
// prints the fixed-width per-process and summary report.
package main

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/oscore/simkit/pkg/cpu"
	"github.com/oscore/simkit/pkg/rng"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type opts struct {
	verbose   bool
	schedSpec string
	logLevel  string
}

var schedSpecPattern = regexp.MustCompile(`^([FLSRPE])(\d+)?(?::(\d+))?$`)

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "sched -s<SPEC> <tracefile> <rfile>",
		Short: "Discrete-event CPU scheduling simulator",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), o, args[0], args[1])
		},
	}

	root.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "enable per-transition trace")
	root.Flags().StringVarP(&o.schedSpec, "sched", "s", "F",
		"scheduler: F|L|S|R<q>|P<q>[:<maxprio>]|E<q>[:<maxprio>]")
	root.Flags().StringVar(&o.logLevel, "log-level", "warn", "diagnostic log level: debug|info|warn|error")

	if err := root.Execute(); err != nil {
		logrus.New().Error(err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts, tracePath, rfilePath string) error {
	symbol, quantum, maxPrio, err := parseSchedSpec(o.schedSpec)
	if err != nil {
		return err
	}

	policy, _, err := cpu.NewPolicy(symbol, quantum, maxPrio)
	if err != nil {
		return err
	}
	if symbol == 'R' {
		maxPrio = 4
	}

	traceFile, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("sched: %w", err)
	}
	defer traceFile.Close()

	processes, err := cpu.LoadTrace(traceFile)
	if err != nil {
		return err
	}

	rfile, err := os.Open(rfilePath)
	if err != nil {
		return fmt.Errorf("sched: %w", err)
	}
	defer rfile.Close()

	src, err := rng.Load(rfile)
	if err != nil {
		return err
	}

	engine := cpu.NewEngine(policy, src)
	if o.verbose {
		engine.Verbose = os.Stdout
	}
	if level, err := logrus.ParseLevel(o.logLevel); err == nil {
		engine.Log.SetLevel(level)
	}
	engine.LoadProcesses(processes, maxPrio)

	finalTime := engine.Run(ctx)

	for _, p := range processes {
		fmt.Fprintln(os.Stdout, p.Summary())
	}
	fmt.Fprintln(os.Stdout, engine.Result(finalTime).Summary())

	return nil
}

// parseSchedSpec splits a -s argument like "F", "R2", or "P4:8" into its
// policy symbol, quantum and max priority, per spec.md §6's grammar.
func parseSchedSpec(spec string) (symbol byte, quantum, maxPrio int, err error) {
	m := schedSpecPattern.FindStringSubmatch(spec)
	if m == nil {
		return 0, 0, 0, fmt.Errorf("%w: %q", cpu.ErrUnknownPolicy, spec)
	}
	symbol = m[1][0]
	quantum = 10000
	maxPrio = 4
	if m[2] != "" {
		quantum, _ = strconv.Atoi(m[2])
	}
	if m[3] != "" {
		maxPrio, _ = strconv.Atoi(m[3])
	}
	return symbol, quantum, maxPrio, nil
}
