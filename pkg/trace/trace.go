// Package trace provides the comment-skipping line reader shared by all
// three simulators: each trace file is plain text, one record per line,
// with blank lines and lines beginning with '#' ignored.
package trace

import (
	"bufio"
	"io"
	"iter"
)

// Lines returns an iterator over the significant (non-blank, non-comment)
// lines of r, in order. It mirrors the original C++ readers'
//
//	do { getline(...); } while (line[0] == '#')
//
// idiom, including tolerating a genuinely blank line as "skip, don't count".
func Lines(r io.Reader) iter.Seq[string] {
	return func(yield func(string) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
		for sc.Scan() {
			line := sc.Text()
			if line == "" {
				continue
			}
			if line[0] == '#' {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}
}
