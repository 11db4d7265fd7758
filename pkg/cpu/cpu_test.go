package cpu_test

import (
	"context"
	"strings"
	"testing"

	"github.com/oscore/simkit/pkg/cpu"
	"github.com/oscore/simkit/pkg/rng"
	"github.com/stretchr/testify/require"
)

func mustRNG(t *testing.T, rfile string) *rng.Source {
	t.Helper()
	src, err := rng.Load(strings.NewReader(rfile))
	require.NoError(t, err)
	return src
}

// A single process whose first CPU burst consumes its entire requirement
// terminates without ever blocking for I/O: cpu_util should be 100% of
// final_time and io_util should be zero.
func TestFCFSSingleProcessNoIO(t *testing.T) {
	src := mustRNG(t, "1\n4\n") // 1+(4%4)=1 (static prio), 1+(4%10)=5 (cpu burst)
	processes, err := cpu.LoadTrace(strings.NewReader("0 5 10 5\n"))
	require.NoError(t, err)

	policy := cpu.NewFCFS()
	engine := cpu.NewEngine(policy, src)
	engine.LoadProcesses(processes, 4)

	finalTime := engine.Run(context.Background())
	require.Equal(t, 5, finalTime)

	result := engine.Result(finalTime)
	require.Equal(t, 100.0, result.CPUUtil)
	require.Equal(t, 0.0, result.IOUtil)
	require.Equal(t, 5.0, result.AvgTurnaround)
	require.Equal(t, 0.0, result.AvgWaiting)
	require.Equal(t, 20.0, result.Throughput)

	require.Equal(t, 5, processes[0].FinishingTime)
	require.Equal(t, 5, processes[0].TurnaroundTime)
}

// RR(2) with two identical processes that alternate: both draw a CPU burst
// of 2 (1+(1%2), equal to the quantum) and an I/O burst of 1 every time (since
// max_io_burst=1 forces every draw to reduce mod 1). p0 arrived first and
// finishes first.
func TestRoundRobinTwoProcessesAlternate(t *testing.T) {
	src := mustRNG(t, "1\n1\n") // every draw of burst b yields 1+(1%b)
	processes, err := cpu.LoadTrace(strings.NewReader("0 4 2 1\n0 4 2 1\n"))
	require.NoError(t, err)

	policy := cpu.NewRR(2)
	engine := cpu.NewEngine(policy, src)
	engine.LoadProcesses(processes, 4)

	finalTime := engine.Run(context.Background())
	require.Equal(t, 8, finalTime)

	require.Equal(t, 6, processes[0].FinishingTime)
	require.Equal(t, 8, processes[1].FinishingTime)
}

func TestPolicyFactory(t *testing.T) {
	for _, tc := range []struct {
		symbol byte
		name   string
	}{
		{'F', "FCFS"},
		{'L', "LCFS"},
		{'S', "SRTF"},
	} {
		p, name, err := cpu.NewPolicy(tc.symbol, 2, 4)
		require.NoError(t, err)
		require.NotNil(t, p)
		require.Equal(t, tc.name, name)
	}

	_, _, err := cpu.NewPolicy('Z', 2, 4)
	require.ErrorIs(t, err, cpu.ErrUnknownPolicy)
}

func TestPreemptsFlagSetForPREPRIONotFCFS(t *testing.T) {
	policy := cpu.NewPREPRIO(4, 4)
	require.True(t, policy.Preempts())

	fcfs := cpu.NewFCFS()
	require.False(t, fcfs.Preempts())
}
