package mmu

import (
	"fmt"
	"math"

	"github.com/oscore/simkit/pkg/rng"
)

// Pager is the uniform page-replacement capability set from spec.md §4.4:
// pick the next frame to evict (mutating REFERENCED bits / age counters
// along the way as the algorithm requires) and report whether this pager
// wants its age register reset to zero at install time.
type Pager interface {
	SelectVictimFrame(frames []*FTE, processes []*Process, instCount uint64) *FTE
	ResetAge() bool
}

func tenantPTE(processes []*Process, frame *FTE) *PTE {
	return &processes[frame.ProcessID].PageTable[frame.VPage]
}

// --- FIFO (-af) -----------------------------------------------------------

type fifoPager struct{ hand int }

func NewFIFOPager() Pager { return &fifoPager{} }

func (p *fifoPager) SelectVictimFrame(frames []*FTE, _ []*Process, _ uint64) *FTE {
	frame := frames[p.hand]
	p.hand = (p.hand + 1) % len(frames)
	return frame
}
func (p *fifoPager) ResetAge() bool { return false }

// --- Random (-ar) -----------------------------------------------------------

type randomPager struct{ src *rng.Source }

func NewRandomPager(src *rng.Source) Pager { return &randomPager{src: src} }

func (p *randomPager) SelectVictimFrame(frames []*FTE, _ []*Process, _ uint64) *FTE {
	return frames[p.src.Index(len(frames))]
}
func (p *randomPager) ResetAge() bool { return false }

// --- Clock (-ac) ------------------------------------------------------------

type clockPager struct{ hand int }

func NewClockPager() Pager { return &clockPager{} }

func (p *clockPager) SelectVictimFrame(frames []*FTE, processes []*Process, _ uint64) *FTE {
	n := len(frames)
	frame := frames[p.hand]
	for tenantPTE(processes, frame).Referenced {
		tenantPTE(processes, frame).Referenced = false
		p.hand = (p.hand + 1) % n
		frame = frames[p.hand]
	}
	p.hand = (p.hand + 1) % n
	return frame
}
func (p *clockPager) ResetAge() bool { return false }

// --- Enhanced Second Chance / NRU (-ae) --------------------------------------

type nruPager struct {
	hand          int
	lastResetTime uint64
}

func NewNRUPager() Pager { return &nruPager{} }

// SelectVictimFrame classifies each frame as 2*REFERENCED+MODIFIED on a
// full scan. Every 50 instructions the scan also clears REFERENCED bits as
// it goes (a "reset pass"); on a reset pass the first class-0 frame does
// NOT short-circuit the scan — lastResetTime is only advanced on an actual
// reset, never on the early-return path, per spec.md §9.
func (p *nruPager) SelectVictimFrame(frames []*FTE, processes []*Process, instCount uint64) *FTE {
	n := len(frames)
	var classes [4]int
	for i := range classes {
		classes[i] = -1
	}

	reset := instCount-p.lastResetTime >= 50
	if reset {
		p.lastResetTime = instCount
	}
	lowestClass := 4

	frame := frames[p.hand]
	for i := 0; i < n; i++ {
		pte := tenantPTE(processes, frame)
		class := 0
		if pte.Referenced {
			class += 2
		}
		if pte.Modified {
			class++
		}
		if !reset && class == 0 {
			p.hand = (p.hand + 1) % n
			return frame
		}
		if classes[class] == -1 {
			if class < lowestClass {
				lowestClass = class
			}
			classes[class] = p.hand
		}
		if reset {
			pte.Referenced = false
		}
		p.hand = (p.hand + 1) % n
		frame = frames[p.hand]
	}
	victimIdx := classes[lowestClass]
	p.hand = (victimIdx + 1) % n
	return frames[victimIdx]
}
func (p *nruPager) ResetAge() bool { return false }

// --- Aging (-aa) --------------------------------------------------------

type agingPager struct{ hand int }

func NewAgingPager() Pager { return &agingPager{} }

func (p *agingPager) SelectVictimFrame(frames []*FTE, processes []*Process, _ uint64) *FTE {
	n := len(frames)
	victimIdx := p.hand
	var lowest uint32 = math.MaxUint32

	frame := frames[p.hand]
	for i := 0; i < n; i++ {
		frame.Age >>= 1
		pte := tenantPTE(processes, frame)
		if pte.Referenced {
			frame.Age |= 0x80000000
			pte.Referenced = false
		}
		if frame.Age < lowest {
			victimIdx = p.hand
			lowest = frame.Age
		}
		p.hand = (p.hand + 1) % n
		frame = frames[p.hand]
	}
	p.hand = (victimIdx + 1) % n
	return frames[victimIdx]
}
func (p *agingPager) ResetAge() bool { return true }

// --- Working Set (-aw) --------------------------------------------------

type workingSetPager struct{ hand int }

func NewWorkingSetPager() Pager { return &workingSetPager{} }

func (p *workingSetPager) SelectVictimFrame(frames []*FTE, processes []*Process, instCount uint64) *FTE {
	n := len(frames)
	frame := frames[p.hand]
	victimIdx := p.hand
	smallestTime := math.MaxInt

	for i := 0; i < n; i++ {
		pte := tenantPTE(processes, frame)
		if pte.Referenced {
			frame.TimeOfLastUse = int(instCount)
			pte.Referenced = false
		} else if int(instCount)-frame.TimeOfLastUse >= 50 {
			p.hand = (p.hand + 1) % n
			return frame
		} else if frame.TimeOfLastUse < smallestTime {
			smallestTime = frame.TimeOfLastUse
			victimIdx = p.hand
		}
		p.hand = (p.hand + 1) % n
		frame = frames[p.hand]
	}
	p.hand = (victimIdx + 1) % n
	return frames[victimIdx]
}
func (p *workingSetPager) ResetAge() bool { return false }

// NewPager builds a Pager from the CLI -a symbol, mirroring spec.md §6's
// -a{f|r|c|e|a|w} grammar. Random is the only pager that consumes the
// shared RNG (spec.md §4.1/§4.4).
func NewPager(symbol byte, src *rng.Source) (Pager, string, error) {
	switch symbol {
	case 'f':
		return NewFIFOPager(), "FIFO", nil
	case 'r':
		return NewRandomPager(src), "Random", nil
	case 'c':
		return NewClockPager(), "Clock", nil
	case 'e':
		return NewNRUPager(), "NRU", nil
	case 'a':
		return NewAgingPager(), "Aging", nil
	case 'w':
		return NewWorkingSetPager(), "WorkingSet", nil
	default:
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownPager, symbol)
	}
}
