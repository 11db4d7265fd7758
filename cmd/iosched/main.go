// Command iosched runs the disk head-scheduling simulator described in
// spec.md §6: it replays an arrival/track trace against one of five seek
// policies and prints the fixed-width per-request and summary report.
package main

import (
	"fmt"
	"os"

	"github.com/oscore/simkit/pkg/disk"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type opts struct {
	schedSpec string
	logLevel  string
}

func main() {
	var o opts

	root := &cobra.Command{
		Use:   "iosched -s<SPEC> <tracefile>",
		Short: "Disk head-scheduling simulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(o, args[0])
		},
	}

	root.Flags().StringVarP(&o.schedSpec, "sched", "s", "N", "scheduler: N|S|L|C|F")
	root.Flags().StringVar(&o.logLevel, "log-level", "warn", "diagnostic log level: debug|info|warn|error")

	if err := root.Execute(); err != nil {
		logrus.New().Error(err)
		os.Exit(1)
	}
}

func run(o opts, tracePath string) error {
	if len(o.schedSpec) != 1 {
		return fmt.Errorf("%w: %q", disk.ErrUnknownPolicy, o.schedSpec)
	}
	policy, _, err := disk.NewPolicy(o.schedSpec[0])
	if err != nil {
		return err
	}

	traceFile, err := os.Open(tracePath)
	if err != nil {
		return fmt.Errorf("iosched: %w", err)
	}
	defer traceFile.Close()

	requests, err := disk.LoadTrace(traceFile)
	if err != nil {
		return err
	}

	engine := disk.NewEngine(policy, requests)
	if level, err := logrus.ParseLevel(o.logLevel); err == nil {
		engine.Log.SetLevel(level)
	}
	finalTime := engine.Run()

	for _, info := range engine.Infos() {
		fmt.Fprintln(os.Stdout, info.Summary())
	}
	fmt.Fprintln(os.Stdout, engine.Result(finalTime).Summary())

	return nil
}
