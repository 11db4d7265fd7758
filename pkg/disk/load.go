package disk

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oscore/simkit/pkg/trace"
)

// LoadTrace parses a disk trace file: one request per line,
// "arrival_time target_track"; '#'-prefixed and blank lines are skipped by
// the shared trace reader. Request IDs are assigned in file order starting
// at 0.
func LoadTrace(r io.Reader) ([]*Request, error) {
	var requests []*Request
	id := 0
	for line := range trace.Lines(r) {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedTrace, id, line)
		}
		arrival, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedTrace, id, line)
		}
		track, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %q", ErrMalformedTrace, id, line)
		}
		requests = append(requests, &Request{ID: id, ArrivalTime: arrival, Track: track})
		id++
	}
	return requests, nil
}
