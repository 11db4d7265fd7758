package disk

import (
	"fmt"

	"github.com/oscore/simkit/pkg/util"
)

// Result is the aggregate summary computed once all requests complete,
// matching spec.md §6's SUM line.
type Result struct {
	FinalTime     int
	TotalMovement int
	IOUtil        float64
	AvgTurnaround float64
	AvgWaitTime   float64
	MaxWaitTime   int
}

// Summary renders "SUM: %d %d %.4f %.2f %.2f %d" from spec.md §6.
func (r Result) Summary() string {
	return fmt.Sprintf("SUM: %d %d %.4f %.2f %.2f %d",
		r.FinalTime, r.TotalMovement, r.IOUtil, r.AvgTurnaround, r.AvgWaitTime, r.MaxWaitTime)
}

func computeResult(finalTime, totalMovement, timeIOBusy, totalTurnaround, totalWaitTime, maxWaitTime, numRequests int) Result {
	n := float64(numRequests)
	return Result{
		FinalTime:     finalTime,
		TotalMovement: totalMovement,
		IOUtil:        util.SafeDiv(float64(timeIOBusy), float64(finalTime)),
		AvgTurnaround: util.SafeDiv(float64(totalTurnaround), n),
		AvgWaitTime:   util.SafeDiv(float64(totalWaitTime), n),
		MaxWaitTime:   maxWaitTime,
	}
}
