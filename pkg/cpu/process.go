package cpu

import (
	"fmt"

	"github.com/oscore/simkit/pkg/rng"
)

// State is one of the four lifecycle states a Process passes through.
type State int

const (
	Created State = iota
	Ready
	Running
	Blocked
)

func (s State) String() string {
	switch s {
	case Created:
		return "CREATED"
	case Ready:
		return "READY"
	case Running:
		return "RUNNING"
	case Blocked:
		return "BLOCKED"
	default:
		return "UNKNOWN"
	}
}

// Process holds everything the engine and policies need to track a single
// process through its lifetime. Fields mirror the original Process struct
// field-for-field.
type Process struct {
	PID             int
	ArrivalTime     int
	TotalCPUTime    int
	MaxCPUBurst     int
	MaxIOBurst      int
	CPUBurst        int
	IOBurst         int
	StateTS         int
	RemainingCPU    int
	StaticPrio      int
	DynamicPrio     int
	FinishingTime   int
	TurnaroundTime  int
	TotalIOTime     int
	CPUWaitingTime  int
}

// NewProcess builds a Process with RemainingCPU initialized to the total
// requirement and StateTS initialized to the arrival instant, as the
// original constructor does.
func NewProcess(pid, arrival, total, maxCPUBurst, maxIOBurst int) *Process {
	return &Process{
		PID:          pid,
		ArrivalTime:  arrival,
		TotalCPUTime: total,
		RemainingCPU: total,
		MaxCPUBurst:  maxCPUBurst,
		MaxIOBurst:   maxIOBurst,
		StateTS:      arrival,
	}
}

// DrawCPUBurst draws a new CPU burst in [1, MaxCPUBurst] from the shared
// RNG. The draw happens unconditionally even if it will later be clamped
// to the process's remaining time — there is no special case for a draw
// that turns out to exceed what's left.
func (p *Process) DrawCPUBurst(src *rng.Source) {
	p.CPUBurst = src.Draw(p.MaxCPUBurst)
}

// DrawIOBurst draws a new I/O burst in [1, MaxIOBurst] from the shared RNG.
func (p *Process) DrawIOBurst(src *rng.Source) {
	p.IOBurst = src.Draw(p.MaxIOBurst)
}

// Summary renders the fixed-width per-process output line.
func (p *Process) Summary() string {
	return fmt.Sprintf("%04d: %4d %4d %4d %4d %1d | %5d %5d %5d %5d",
		p.PID, p.ArrivalTime, p.TotalCPUTime, p.MaxCPUBurst, p.MaxIOBurst, p.StaticPrio,
		p.FinishingTime, p.TurnaroundTime, p.TotalIOTime, p.CPUWaitingTime)
}
