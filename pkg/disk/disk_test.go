package disk_test

import (
	"testing"

	"github.com/oscore/simkit/pkg/disk"
	"github.com/stretchr/testify/require"
)

// Two requests arriving simultaneously at the head's starting position,
// serviced FIFO: track 5 first (movement 5, completion t=5), then track 3
// (movement 2, completion t=7).
func TestFIFOTwoSimultaneousArrivals(t *testing.T) {
	requests := []*disk.Request{
		{ID: 0, ArrivalTime: 0, Track: 5},
		{ID: 1, ArrivalTime: 0, Track: 3},
	}
	engine := disk.NewEngine(disk.NewFIFO(), requests)
	finalTime := engine.Run()
	require.Equal(t, 7, finalTime)

	result := engine.Result(finalTime)
	require.Equal(t, 7, result.TotalMovement)
	require.Equal(t, 1.0, result.IOUtil)
	require.Equal(t, 5, result.MaxWaitTime)

	infos := engine.Infos()
	require.Equal(t, 0, infos[0].StartTime)
	require.Equal(t, 5, infos[0].EndTime)
	require.Equal(t, 5, infos[1].StartTime)
	require.Equal(t, 7, infos[1].EndTime)
}

// SSTF picks the closer request first: track 3, then track 5.
func TestSSTFPicksShorterSeekFirst(t *testing.T) {
	requests := []*disk.Request{
		{ID: 0, ArrivalTime: 0, Track: 5},
		{ID: 1, ArrivalTime: 0, Track: 3},
	}
	engine := disk.NewEngine(disk.NewSSTF(), requests)
	finalTime := engine.Run()
	require.Equal(t, 5, finalTime)

	result := engine.Result(finalTime)
	require.Equal(t, 5, result.TotalMovement)

	infos := engine.Infos()
	require.Equal(t, 3, infos[1].EndTime)
	require.Equal(t, 5, infos[0].EndTime)
}

// A request whose target equals the initial head position completes
// immediately: zero movement, start_time == arrival_time == end_time.
func TestRequestAtHeadCompletesImmediately(t *testing.T) {
	requests := []*disk.Request{{ID: 0, ArrivalTime: 0, Track: 0}}
	engine := disk.NewEngine(disk.NewFIFO(), requests)
	finalTime := engine.Run()
	require.Equal(t, 0, finalTime)

	info := engine.Infos()[0]
	require.Equal(t, 0, info.StartTime)
	require.Equal(t, 0, info.EndTime)
}
