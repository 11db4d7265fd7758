package cpu

import (
	"context"
	"fmt"
	"io"

	"github.com/oscore/simkit/pkg/rng"
	"github.com/sirupsen/logrus"
)

// Engine drives the discrete-event simulation loop: pop the earliest
// event, run the policy's transition logic, enqueue whatever follows.
// All mutable simulation state — current time, the running process, I/O
// accounting, the event queue and the policy's run queues — is owned by
// one Engine value, constructed once per run.
type Engine struct {
	Policy  Policy
	RNG     *rng.Source
	Verbose io.Writer // non-nil enables the -v per-transition trace
	Log     *logrus.Logger

	now        int
	queue      *EventQueue
	running    *Process
	processes  []*Process
	callSched  bool

	numPerformingIO int
	ioStart         int
	totalIOTime     int
}

// NewEngine constructs an Engine ready to run once processes have been
// loaded and their arrival events enqueued (see LoadProcesses).
func NewEngine(policy Policy, src *rng.Source) *Engine {
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Engine{
		Policy: policy,
		RNG:    src,
		Log:    log,
		queue:  NewEventQueue(),
	}
}

// LoadProcesses assigns static priorities (drawn from the shared RNG, one
// draw per process in pid order) and enqueues each process's arrival event.
// maxPrio bounds the static priority draw.
func (e *Engine) LoadProcesses(processes []*Process, maxPrio int) {
	e.processes = processes
	for _, p := range processes {
		p.StaticPrio = e.RNG.Draw(maxPrio)
		e.queue.Insert(&Event{Time: p.ArrivalTime, Proc: p, Old: Created, New: Ready})
	}
}

// Run drains the event queue until empty, returning the final simulated
// time (the timestamp of the last processed event), matching
// Simulation()'s return value in the original.
func (e *Engine) Run(ctx context.Context) int {
	for {
		select {
		case <-ctx.Done():
			return e.now
		default:
		}

		event := e.queue.PopEarliest()
		if event == nil {
			return e.now
		}
		e.processOne(event)
	}
}

func (e *Engine) processOne(event *Event) {
	p := event.Proc
	e.now = event.Time
	timeInPrev := e.now - p.StateTS
	p.StateTS = e.now

	if e.Verbose != nil {
		fmt.Fprintf(e.Verbose, "%d %d %d: %s -> %s", e.now, p.PID, timeInPrev, event.Old, event.New)
	}

	switch event.Transition() {
	case ToReady:
		e.handleToReady(event, p, timeInPrev)
	case ToPreempt:
		e.handleToPreempt(p, timeInPrev)
	case ToRun:
		e.handleToRun(p, timeInPrev)
	case ToBlock:
		e.handleToBlock(p, timeInPrev)
	}

	if e.callSched && e.queue.PeekTime() != e.now {
		e.callSched = false
		e.dispatchIfIdle()
	}
}

func (e *Engine) handleToReady(event *Event, p *Process, timeInPrev int) {
	if event.Old == Blocked {
		e.numPerformingIO--
		if e.numPerformingIO == 0 {
			e.totalIOTime += e.now - e.ioStart
		}
	}

	if e.Verbose != nil {
		fmt.Fprintf(e.Verbose, " cb=%d rem=%d prio=%d\n", p.CPUBurst, p.RemainingCPU, p.DynamicPrio)
	}

	p.DynamicPrio = p.StaticPrio - 1

	if e.Policy.Preempts() && e.running != nil && p.DynamicPrio > e.running.DynamicPrio {
		if e.queue.RemoveFutureEventFor(e.running, e.now) {
			e.Log.WithFields(logrus.Fields{
				"time": e.now, "process": p.PID, "running": e.running.PID,
			}).Debug("preempting running process for higher dynamic priority arrival")
			e.queue.Insert(&Event{Time: e.now, Proc: e.running, Old: Running, New: Ready})
		}
	}

	e.Policy.AddProcess(p)
	e.callSched = true
}

func (e *Engine) handleToPreempt(p *Process, timeInPrev int) {
	p.RemainingCPU -= timeInPrev
	p.CPUBurst -= timeInPrev

	if e.Verbose != nil {
		fmt.Fprintf(e.Verbose, " cb=%d rem=%d prio=%d\n", p.CPUBurst, p.RemainingCPU, p.DynamicPrio)
	}

	p.DynamicPrio--
	e.Policy.AddProcess(p)
	e.running = nil
	e.callSched = true
}

func (e *Engine) handleToRun(p *Process, timeInPrev int) {
	if e.Verbose != nil {
		fmt.Fprintf(e.Verbose, " cb=%d rem=%d prio=%d\n", p.CPUBurst, p.RemainingCPU, p.DynamicPrio)
	}

	if p.CPUBurst <= e.Policy.Quantum() {
		e.queue.Insert(&Event{Time: e.now + p.CPUBurst, Proc: p, Old: Running, New: Blocked})
	} else {
		e.queue.Insert(&Event{Time: e.now + e.Policy.Quantum(), Proc: p, Old: Running, New: Ready})
	}
	p.CPUWaitingTime += timeInPrev
}

func (e *Engine) handleToBlock(p *Process, timeInPrev int) {
	p.RemainingCPU -= timeInPrev
	p.CPUBurst -= timeInPrev

	if p.RemainingCPU == 0 {
		p.FinishingTime = e.now
		p.TurnaroundTime = p.FinishingTime - p.ArrivalTime
		e.Log.WithFields(logrus.Fields{
			"process": p.PID, "finish": p.FinishingTime, "turnaround": p.TurnaroundTime,
		}).Debug("process terminated")
		if e.Verbose != nil {
			fmt.Fprint(e.Verbose, " Done\n")
		}
	} else {
		p.DrawIOBurst(e.RNG)
		e.numPerformingIO++
		if e.numPerformingIO == 1 {
			e.ioStart = e.now
		}

		if e.Verbose != nil {
			fmt.Fprintf(e.Verbose, " ib=%d rem=%d\n", p.IOBurst, p.RemainingCPU)
		}

		p.TotalIOTime += p.IOBurst
		e.queue.Insert(&Event{Time: e.now + p.IOBurst, Proc: p, Old: Blocked, New: Ready})
	}

	e.running = nil
	e.callSched = true
}

// dispatchIfIdle pulls the next process from the policy and posts its
// READY->RUNNING event, drawing a fresh CPU burst (capped at the process's
// remaining time) if it doesn't have one queued up already.
func (e *Engine) dispatchIfIdle() {
	if e.running != nil {
		return
	}
	e.running = e.Policy.NextProcess()
	if e.running == nil {
		return
	}
	if e.running.CPUBurst == 0 {
		e.running.DrawCPUBurst(e.RNG)
		if e.running.CPUBurst > e.running.RemainingCPU {
			e.running.CPUBurst = e.running.RemainingCPU
		}
	}
	e.queue.Insert(&Event{Time: e.now, Proc: e.running, Old: Ready, New: Running})
}

// Result computes the final aggregate metrics; call once Run has returned.
func (e *Engine) Result(finalTime int) Result {
	return computeResult(e.processes, finalTime, e.totalIOTime)
}
