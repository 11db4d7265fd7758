package mmu

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

// Cost constants from spec.md §4.4's accounting table.
const (
	costInstruction  = 1
	costContextSwitch = 130
	costProcessExit   = 1230
	costMap           = 350
	costUnmap         = 410
	costIn            = 3200
	costOut           = 2750
	costFin           = 2350
	costFout          = 2800
	costZero          = 150
	costSegv          = 440
	costSegprot       = 410
)

// Engine replays an instruction stream against a fixed number of physical
// frames and one Pager, mirroring mmu.cpp's simulation() loop.
type Engine struct {
	Pager     Pager
	Trace     io.Writer // per-operation trace; nil suppresses it
	Log       *logrus.Logger
	processes []*Process
	stats     []*ProcessStats
	frames    []*FTE
	freeList  []int

	current     *Process
	currentStat *ProcessStats

	instCount    uint64
	ctxSwitches  int
	processExits int
	cost         uint64
}

// NewEngine builds an engine with numFrames physical frames and the given
// process set (index i is process i, matching the trace format's implicit
// pid-by-position convention).
func NewEngine(pager Pager, processes []*Process, numFrames int) *Engine {
	frames := make([]*FTE, numFrames)
	free := make([]int, numFrames)
	for i := range frames {
		frames[i] = &FTE{FrameNum: i, ProcessID: -1, VPage: -1}
		free[i] = numFrames - 1 - i
	}
	stats := make([]*ProcessStats, len(processes))
	for i, p := range processes {
		stats[i] = &ProcessStats{PID: p.PID}
	}
	log := logrus.New()
	log.SetLevel(logrus.WarnLevel)
	return &Engine{
		Pager:     pager,
		Log:       log,
		processes: processes,
		stats:     stats,
		frames:    frames,
		freeList:  free,
	}
}

// Run executes the instruction stream to completion and returns the final
// instruction count (spec.md §6's reported line count for TOTALCOST).
func (e *Engine) Run(instructions []Instruction) uint64 {
	for _, inst := range instructions {
		if e.Trace != nil {
			fmt.Fprintf(e.Trace, "%d: ==> %c %d\n", e.instCount, inst.Op, inst.Value)
		}

		switch inst.Op {
		case 'c':
			e.current = e.processes[inst.Value]
			e.currentStat = e.stats[inst.Value]
			e.ctxSwitches++
			e.cost += costContextSwitch
		case 'e':
			e.exitProcess()
			e.processExits++
			e.cost += costProcessExit
		case 'r', 'w':
			e.access(inst.Value, inst.Op == 'w')
		}

		e.cost += costInstruction
		e.instCount++
	}
	return e.instCount
}

// access resolves a read or write to vpage, faulting in a frame if the PTE
// isn't valid and bailing out to SEGV/SEGPROT without charging the
// instruction further when the reference is illegal.
func (e *Engine) access(vpage int, isWrite bool) {
	pte := &e.current.PageTable[vpage]

	if !pte.Valid {
		if !pte.VMASearched {
			pte.VMASearched = true
			pte.InVMA = e.current.inVMA(vpage)
		}
		if !pte.InVMA {
			if e.Trace != nil {
				fmt.Fprintln(e.Trace, " SEGV")
			}
			e.Log.WithFields(logrus.Fields{"process": e.current.PID, "vpage": vpage}).Debug("segv: vpage outside every vma")
			e.currentStat.Segv++
			e.cost += costSegv
			return
		}
		e.getFrame(pte, vpage)
		pte.Valid = true
	}

	pte.Referenced = true

	if isWrite {
		if pte.WriteProtect {
			if e.Trace != nil {
				fmt.Fprintln(e.Trace, " SEGPROT")
			}
			e.currentStat.Segprot++
			e.cost += costSegprot
			return
		}
		pte.Modified = true
	}
}

// getFrame obtains a physical frame for vpage, stealing one from another
// tenant via the installed Pager if the free list is empty, and installs
// the new mapping: FIN/IN/ZERO first (per the faulting PTE's own
// file-mapped/paged-out bits, left over from its own last unmap), then
// MAP. The evicted tenant's refill source is irrelevant here — it's
// decided afresh whenever that tenant's page faults again.
func (e *Engine) getFrame(pte *PTE, vpage int) {
	var frame *FTE
	if n := len(e.freeList); n > 0 {
		idx := e.freeList[n-1]
		e.freeList = e.freeList[:n-1]
		frame = e.frames[idx]
	} else {
		frame = e.Pager.SelectVictimFrame(e.frames, e.processes, e.instCount)
		e.unmapFrame(frame)
	}

	switch {
	case pte.FileMapped:
		if e.Trace != nil {
			fmt.Fprintln(e.Trace, " FIN")
		}
		e.currentStat.Fins++
		e.cost += costFin
	case pte.PagedOut:
		if e.Trace != nil {
			fmt.Fprintln(e.Trace, " IN")
		}
		e.currentStat.Ins++
		e.cost += costIn
	default:
		if e.Trace != nil {
			fmt.Fprintln(e.Trace, " ZERO")
		}
		e.currentStat.Zeros++
		e.cost += costZero
	}

	frame.ProcessID = e.current.PID
	frame.VPage = vpage
	frame.TimeOfLastUse = int(e.instCount)
	if e.Pager.ResetAge() {
		frame.Age = 0
	}
	pte.FrameNum = frame.FrameNum

	if e.Trace != nil {
		fmt.Fprintf(e.Trace, " MAP %d\n", frame.FrameNum)
	}
	e.currentStat.Maps++
	e.cost += costMap
}

// unmapFrame evicts frame's current tenant, spilling its contents to disk
// if dirty (an anonymous page written OUT gains PAGEDOUT), and clears the
// departing PTE's residency bits. FILE_MAPPED and PAGEDOUT are never
// cleared here, so the next fault against this (process, vpage) knows how
// to refill it.
func (e *Engine) unmapFrame(frame *FTE) {
	tenant := e.processes[frame.ProcessID]
	tenantStat := e.stats[frame.ProcessID]
	pte := &tenant.PageTable[frame.VPage]

	if e.Trace != nil {
		fmt.Fprintf(e.Trace, " UNMAP %d:%d\n", frame.ProcessID, frame.VPage)
	}
	tenantStat.Unmaps++
	e.cost += costUnmap

	if pte.Modified {
		if pte.FileMapped {
			if e.Trace != nil {
				fmt.Fprintln(e.Trace, " FOUT")
			}
			tenantStat.Fouts++
			e.cost += costFout
		} else {
			if e.Trace != nil {
				fmt.Fprintln(e.Trace, " OUT")
			}
			pte.PagedOut = true
			tenantStat.Outs++
			e.cost += costOut
		}
		pte.Modified = false
	}

	pte.Valid = false
	pte.Referenced = false
	pte.FrameNum = 0
}

// exitProcess tears down every valid page belonging to the current
// process, freeing its frames and resetting its page table.
func (e *Engine) exitProcess() {
	if e.Trace != nil {
		fmt.Fprintf(e.Trace, "EXIT current process %d\n", e.current.PID)
	}
	stat := e.currentStat
	for vpage := range e.current.PageTable {
		pte := &e.current.PageTable[vpage]
		if !pte.Valid {
			*pte = PTE{}
			continue
		}
		if e.Trace != nil {
			fmt.Fprintf(e.Trace, " UNMAP %d:%d\n", e.current.PID, vpage)
		}
		stat.Unmaps++
		e.cost += costUnmap
		if pte.Modified && pte.FileMapped {
			if e.Trace != nil {
				fmt.Fprintln(e.Trace, " FOUT")
			}
			stat.Fouts++
			e.cost += costFout
		}
		frame := e.frames[pte.FrameNum]
		frame.ProcessID = -1
		frame.VPage = -1
		e.freeList = append(e.freeList, frame.FrameNum)
		*pte = PTE{}
	}
	e.current = nil
	e.currentStat = nil
}

func (e *Engine) Processes() []*Process        { return e.processes }
func (e *Engine) Stats() []*ProcessStats       { return e.stats }
func (e *Engine) Frames() []*FTE               { return e.frames }
func (e *Engine) ContextSwitches() int         { return e.ctxSwitches }
func (e *Engine) ProcessExits() int            { return e.processExits }
func (e *Engine) Cost() uint64                 { return e.cost }
