package mmu

import (
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/oscore/simkit/pkg/trace"
)

// LoadTrace parses the nested process/VMA preamble followed by an
// unbounded instruction stream, per the original's read-then-simulate
// structure: a process count, then per process a VMA count and that many
// "start end write_protected file_mapped" lines, then "op vpage" lines to
// end of file.
func LoadTrace(r io.Reader) ([]*Process, []Instruction, error) {
	next, stop := iter.Pull(trace.Lines(r))
	defer stop()

	numProcesses, err := nextInt(next)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: process count: %v", ErrMalformedTrace, err)
	}

	processes := make([]*Process, numProcesses)
	for i := 0; i < numProcesses; i++ {
		numVMAs, err := nextInt(next)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: process %d vma count: %v", ErrMalformedTrace, i, err)
		}
		p := NewProcess(i)
		for j := 0; j < numVMAs; j++ {
			vma, err := nextVMA(next)
			if err != nil {
				return nil, nil, fmt.Errorf("%w: process %d vma %d: %v", ErrMalformedTrace, i, j, err)
			}
			p.AddressSpace = append(p.AddressSpace, vma)
		}
		processes[i] = p
	}

	var instructions []Instruction
	for {
		line, ok := next()
		if !ok {
			break
		}
		inst, err := parseInstruction(line)
		if err != nil {
			return nil, nil, err
		}
		instructions = append(instructions, inst)
	}

	return processes, instructions, nil
}

func nextInt(next func() (string, bool)) (int, error) {
	line, ok := next()
	if !ok {
		return 0, fmt.Errorf("unexpected end of trace")
	}
	return strconv.Atoi(strings.TrimSpace(line))
}

func nextVMA(next func() (string, bool)) (VMA, error) {
	line, ok := next()
	if !ok {
		return VMA{}, fmt.Errorf("unexpected end of trace")
	}
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return VMA{}, fmt.Errorf("want 4 fields, got %d", len(fields))
	}
	vals := make([]int, 4)
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return VMA{}, err
		}
		vals[i] = v
	}
	return VMA{Start: vals[0], End: vals[1], WriteProtected: vals[2] != 0, FileMapped: vals[3] != 0}, nil
}

func parseInstruction(line string) (Instruction, error) {
	fields := strings.Fields(line)
	if len(fields) != 2 || len(fields[0]) != 1 {
		return Instruction{}, fmt.Errorf("%w: instruction %q", ErrMalformedTrace, line)
	}
	value, err := strconv.Atoi(fields[1])
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: instruction %q: %v", ErrMalformedTrace, line, err)
	}
	return Instruction{Op: fields[0][0], Value: value}, nil
}
