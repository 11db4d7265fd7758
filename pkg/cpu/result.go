package cpu

import (
	"fmt"

	"github.com/oscore/simkit/pkg/util"
)

// Result is the aggregate summary computed once the event queue drains.
type Result struct {
	FinalTime     int
	CPUUtil       float64
	IOUtil        float64
	AvgTurnaround float64
	AvgWaiting    float64
	Throughput    float64
}

// Summary renders "SUM: %d %.2f %.2f %.2f %.2f %.3f".
func (r Result) Summary() string {
	return fmt.Sprintf("SUM: %d %.2f %.2f %.2f %.2f %.3f",
		r.FinalTime, r.CPUUtil, r.IOUtil, r.AvgTurnaround, r.AvgWaiting, r.Throughput)
}

// computeResult derives the aggregate metrics from the finished processes
// and the engine's I/O-utilisation accounting.
func computeResult(processes []*Process, finalTime, totalIOTime int) Result {
	var totalCPUBusy, totalTurnaround, totalCPUWaiting int
	for _, p := range processes {
		totalCPUBusy += p.TotalCPUTime
		totalTurnaround += p.TurnaroundTime
		totalCPUWaiting += p.CPUWaitingTime
	}
	n := float64(len(processes))
	ft := float64(finalTime)
	return Result{
		FinalTime:     finalTime,
		CPUUtil:       100.0 * util.SafeDiv(float64(totalCPUBusy), ft),
		IOUtil:        100.0 * util.SafeDiv(float64(totalIOTime), ft),
		AvgTurnaround: util.SafeDiv(float64(totalTurnaround), n),
		AvgWaiting:    util.SafeDiv(float64(totalCPUWaiting), n),
		Throughput:    100.0 * util.SafeDiv(n, ft),
	}
}
