package mmu_test

import (
	"testing"

	"github.com/oscore/simkit/pkg/mmu"
	"github.com/stretchr/testify/require"
)

func oneProcess(vmas ...mmu.VMA) []*mmu.Process {
	p := mmu.NewProcess(0)
	p.AddressSpace = append(p.AddressSpace, vmas...)
	return []*mmu.Process{p}
}

// With only 2 frames, the third distinct page faulted forces FIFO to evict
// the oldest resident page (vpage 0, loaded into frame 0) before it can be
// reused for the new one. Every fault here is a clean ZERO (anonymous,
// never paged out), so MAP/ZERO both fire three times and UNMAP once.
func TestFIFOEvictsOldestFrameOnThirdFault(t *testing.T) {
	processes := oneProcess(mmu.VMA{Start: 0, End: 9})
	instructions := []mmu.Instruction{
		{Op: 'c', Value: 0},
		{Op: 'r', Value: 0},
		{Op: 'r', Value: 1},
		{Op: 'r', Value: 2},
	}

	engine := mmu.NewEngine(mmu.NewFIFOPager(), processes, 2)
	instCount := engine.Run(instructions)

	require.Equal(t, uint64(4), instCount)
	require.Equal(t, 1, engine.ContextSwitches())
	require.Equal(t, uint64(2044), engine.Cost())

	stat := engine.Stats()[0]
	require.Equal(t, 1, stat.Unmaps)
	require.Equal(t, 3, stat.Maps)
	require.Equal(t, 3, stat.Zeros)
	require.Equal(t, 0, stat.Ins)
	require.Equal(t, 0, stat.Outs)

	// vpage 2 ends up resident in frame 0, the one FIFO evicted vpage 0 from.
	pte2 := processes[0].PageTable[2]
	require.True(t, pte2.Valid)
	require.Equal(t, 0, pte2.FrameNum)

	pte0 := processes[0].PageTable[0]
	require.False(t, pte0.Valid)
}

// A read of a page outside every VMA is a SEGV, never reaches the pager,
// and costs nothing beyond the segv charge and the instruction itself.
func TestAccessOutsideVMAIsSegv(t *testing.T) {
	processes := oneProcess(mmu.VMA{Start: 0, End: 3})
	instructions := []mmu.Instruction{
		{Op: 'c', Value: 0},
		{Op: 'r', Value: 50},
	}

	engine := mmu.NewEngine(mmu.NewFIFOPager(), processes, 2)
	engine.Run(instructions)

	stat := engine.Stats()[0]
	require.Equal(t, 1, stat.Segv)
	require.Equal(t, 0, stat.Maps)
	require.False(t, processes[0].PageTable[50].Valid)
}

// A write to a write-protected VMA maps the page normally (the fault
// itself is legal) but the write is rejected as SEGPROT and MODIFIED is
// never set. REFERENCED is still set unconditionally, since the original
// sets it before the write/write-protect check.
func TestWriteToProtectedVMAIsSegprot(t *testing.T) {
	processes := oneProcess(mmu.VMA{Start: 0, End: 3, WriteProtected: true})
	instructions := []mmu.Instruction{
		{Op: 'c', Value: 0},
		{Op: 'w', Value: 0},
	}

	engine := mmu.NewEngine(mmu.NewFIFOPager(), processes, 2)
	engine.Run(instructions)

	stat := engine.Stats()[0]
	require.Equal(t, 1, stat.Maps)
	require.Equal(t, 1, stat.Segprot)

	pte := processes[0].PageTable[0]
	require.True(t, pte.Valid)
	require.False(t, pte.Modified)
	require.True(t, pte.Referenced)
}

// Exiting a process unmaps every valid page and returns its frames to the
// free list without ever emitting OUT for a dirty anonymous page (only
// FOUT for dirty file-backed pages survives process exit).
func TestExitReturnsFramesToFreeListWithoutOut(t *testing.T) {
	processes := oneProcess(mmu.VMA{Start: 0, End: 9})
	instructions := []mmu.Instruction{
		{Op: 'c', Value: 0},
		{Op: 'w', Value: 0},
		{Op: 'e', Value: 0},
	}

	engine := mmu.NewEngine(mmu.NewFIFOPager(), processes, 1)
	engine.Run(instructions)

	stat := engine.Stats()[0]
	require.Equal(t, 1, stat.Maps)
	require.Equal(t, 1, stat.Unmaps)
	require.Equal(t, 0, stat.Outs)
	require.Equal(t, 1, engine.ProcessExits())

	require.False(t, processes[0].PageTable[0].Valid)
	require.Equal(t, -1, engine.Frames()[0].ProcessID)
}

func TestNewPagerRejectsUnknownSymbol(t *testing.T) {
	_, _, err := mmu.NewPager('z', nil)
	require.ErrorIs(t, err, mmu.ErrUnknownPager)
}
