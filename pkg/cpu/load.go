package cpu

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oscore/simkit/pkg/trace"
)

// LoadTrace parses a CPU trace file: one process per line,
// "arrival total_cpu max_cpu_burst max_io_burst". Process IDs are assigned
// in file order starting at 0.
func LoadTrace(r io.Reader) ([]*Process, error) {
	var processes []*Process
	pid := 0
	for line := range trace.Lines(r) {
		fields := strings.Fields(line)
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedTrace, pid, line)
		}
		vals := make([]int, 4)
		for i, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedTrace, pid, line)
			}
			vals[i] = v
		}
		processes = append(processes, NewProcess(pid, vals[0], vals[1], vals[2], vals[3]))
		pid++
	}
	return processes, nil
}
