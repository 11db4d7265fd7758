package cpu

import "fmt"

// Policy is the uniform scheduling capability set: admit a pending
// process and select the next one to run, plus whether this policy ever
// preempts a running process on admission.
type Policy interface {
	AddProcess(p *Process)
	NextProcess() *Process
	Preempts() bool
	Quantum() int
}

// --- FCFS ---------------------------------------------------------------

type fcfs struct{ q procQueue }

func NewFCFS() Policy                 { return &fcfs{} }
func (s *fcfs) AddProcess(p *Process) { s.q.PushBack(p) }
func (s *fcfs) NextProcess() *Process { return s.q.PopFront() }
func (s *fcfs) Preempts() bool        { return false }
func (s *fcfs) Quantum() int          { return infiniteQuantum }

// --- LCFS -----------------------------------------------------------------

type lcfs struct{ q procQueue }

func NewLCFS() Policy                 { return &lcfs{} }
func (s *lcfs) AddProcess(p *Process) { s.q.PushFront(p) }
func (s *lcfs) NextProcess() *Process { return s.q.PopFront() }
func (s *lcfs) Preempts() bool        { return false }
func (s *lcfs) Quantum() int          { return infiniteQuantum }

// --- SRTF -------------------------------------------------------------

type srtf struct{ q procQueue }

func NewSRTF() Policy { return &srtf{} }
func (s *srtf) AddProcess(p *Process) {
	s.q.InsertSorted(p, func(p *Process) int { return p.RemainingCPU })
}
func (s *srtf) NextProcess() *Process { return s.q.PopFront() }
func (s *srtf) Preempts() bool        { return false }
func (s *srtf) Quantum() int          { return infiniteQuantum }

// --- RR -----------------------------------------------------------------

type rr struct {
	q       procQueue
	quantum int
}

// NewRR builds a round-robin policy with the given quantum. RR shares its
// admission code with PRIO (reset dynamic_prio to static_prio-1) but ignores
// priority when selecting.
func NewRR(quantum int) Policy { return &rr{quantum: quantum} }
func (s *rr) AddProcess(p *Process) {
	p.DynamicPrio = p.StaticPrio - 1
	s.q.PushBack(p)
}
func (s *rr) NextProcess() *Process { return s.q.PopFront() }
func (s *rr) Preempts() bool        { return false }
func (s *rr) Quantum() int          { return s.quantum }

// --- PRIO / PREPRIO -------------------------------------------------------

// prioQueues holds the dual active/expired priority-indexed FIFO arrays
// shared by PRIO and PREPRIO.
type prioQueues struct {
	active, expired []procQueue
	maxPrio         int
}

func newPrioQueues(maxPrio int) prioQueues {
	return prioQueues{
		active:  make([]procQueue, maxPrio),
		expired: make([]procQueue, maxPrio),
		maxPrio: maxPrio,
	}
}

func (pq *prioQueues) add(p *Process) {
	if p.DynamicPrio < 0 {
		p.DynamicPrio = p.StaticPrio - 1
		pq.expired[p.DynamicPrio].PushBack(p)
	} else {
		pq.active[p.DynamicPrio].PushBack(p)
	}
}

// next scans active top-down; on exhaustion, swaps active/expired and scans
// once more. Returns nil if both are empty.
func (pq *prioQueues) next() *Process {
	for level := pq.maxPrio - 1; level >= 0; level-- {
		if !pq.active[level].Empty() {
			return pq.active[level].PopFront()
		}
	}
	pq.active, pq.expired = pq.expired, pq.active
	for level := pq.maxPrio - 1; level >= 0; level-- {
		if !pq.active[level].Empty() {
			return pq.active[level].PopFront()
		}
	}
	return nil
}

type prio struct {
	prioQueues
	quantum int
}

func NewPRIO(quantum, maxPrio int) Policy {
	return &prio{prioQueues: newPrioQueues(maxPrio), quantum: quantum}
}
func (s *prio) AddProcess(p *Process) { s.add(p) }
func (s *prio) NextProcess() *Process { return s.next() }
func (s *prio) Preempts() bool        { return false }
func (s *prio) Quantum() int          { return s.quantum }

type preprio struct {
	prioQueues
	quantum int
}

func NewPREPRIO(quantum, maxPrio int) Policy {
	return &preprio{prioQueues: newPrioQueues(maxPrio), quantum: quantum}
}
func (s *preprio) AddProcess(p *Process) { s.add(p) }
func (s *preprio) NextProcess() *Process { return s.next() }
func (s *preprio) Preempts() bool        { return true }
func (s *preprio) Quantum() int          { return s.quantum }

// infiniteQuantum matches the original's quantum=10000 sentinel for
// non-preemptive-by-quantum policies.
const infiniteQuantum = 10000

// NewPolicy builds a Policy from the CLI scheduler spec's symbol, following
// the -s{F|L|S|R<q>|P<q>[:<maxprio>]|E<q>[:<maxprio>]} grammar. For RR,
// maxPrio is ignored here, since RR ignores priority when selecting; the
// sched command forces it to 4 for the static-priority draw.
func NewPolicy(symbol byte, quantum, maxPrio int) (Policy, string, error) {
	switch symbol {
	case 'F':
		return NewFCFS(), "FCFS", nil
	case 'L':
		return NewLCFS(), "LCFS", nil
	case 'S':
		return NewSRTF(), "SRTF", nil
	case 'R':
		return NewRR(quantum), fmt.Sprintf("RR %d", quantum), nil
	case 'P':
		return NewPRIO(quantum, maxPrio), fmt.Sprintf("PRIO %d", quantum), nil
	case 'E':
		return NewPREPRIO(quantum, maxPrio), fmt.Sprintf("PREPRIO %d", quantum), nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownPolicy, symbol)
	}
}
