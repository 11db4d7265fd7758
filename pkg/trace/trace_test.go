package trace_test

import (
	"strings"
	"testing"

	"github.com/oscore/simkit/pkg/trace"
	"github.com/stretchr/testify/require"
)

func TestLinesSkipsCommentsAndBlanks(t *testing.T) {
	input := "# header\n\n0 100 10 5\n#another comment\n1 50 5 5\n"
	var got []string
	for line := range trace.Lines(strings.NewReader(input)) {
		got = append(got, line)
	}
	require.Equal(t, []string{"0 100 10 5", "1 50 5 5"}, got)
}

func TestLinesStopsEarlyWhenNotYielded(t *testing.T) {
	input := "a\nb\nc\n"
	var got []string
	for line := range trace.Lines(strings.NewReader(input)) {
		got = append(got, line)
		if line == "b" {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)
}
