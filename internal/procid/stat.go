package procid

import (
	"bytes"
	"errors"

	"github.com/majorcontext/btrace/internal/safe"
)

// statBufSize comfortably holds fields 1..22 of a stat record: two ints,
// the 16-byte comm with its parentheses, and twenty more numeric fields.
// ps uses the same size.
const statBufSize = 1024

// starttime is field 22 of /proc/<pid>/stat (see proc(5)).
const starttimeField = 22

var (
	errNoComm      = errors.New("no ')' in stat record")
	errShortRecord = errors.New("stat record ends before starttime field")
)

// parseStartTimeTicks extracts the starttime field (ticks since boot) from
// the raw contents of a stat record.
//
// Field 2 is the executable name, parenthesized but unescaped, so it may
// itself contain ')': scanning for the first ')' misparses a process named
// e.g. "a)b". Like ps, scan for the last ')' and treat it as the end of the
// name, then walk the remaining space-separated fields.
func parseStartTimeTicks(buf []byte) (uint64, error) {
	end := bytes.LastIndexByte(buf, ')')
	if end == -1 {
		return 0, errNoComm
	}
	rest := buf[end+1:]
	if len(rest) == 0 || rest[0] != ' ' {
		return 0, errShortRecord
	}
	rest = rest[1:] // now at field 3

	for field := 3; field < starttimeField; field++ {
		sp := bytes.IndexByte(rest, ' ')
		if sp == -1 {
			return 0, errShortRecord
		}
		rest = rest[sp+1:]
	}
	// The field must be complete within the buffer: require its trailing
	// delimiter so a read truncated mid-number is an error, not a bogus
	// smaller value.
	if bytes.IndexByte(rest, ' ') == -1 {
		return 0, errShortRecord
	}
	return safe.ParseUint(rest), nil
}
