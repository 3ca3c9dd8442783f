// Package safe holds the primitives the record-emission path is allowed to
// use. Exec interposition runs at awkward moments (possibly between a fork
// and the exec that follows it), so everything between entry and delegation
// sticks to byte-level helpers with caller-provided buffers instead of the
// fmt/strconv stacks.
package safe

// AppendUint appends the decimal rendering of v to dst and returns the
// extended slice. No leading zeros.
func AppendUint(dst []byte, v uint64) []byte {
	var tmp [20]byte
	i := len(tmp)
	for {
		i--
		tmp[i] = '0' + byte(v%10)
		v /= 10
		if v == 0 {
			break
		}
	}
	return append(dst, tmp[i:]...)
}

// ParseUint parses the leading run of ASCII digits in b. Characters after
// the first non-digit are ignored; a slice with no leading digit yields 0.
func ParseUint(b []byte) uint64 {
	var v uint64
	for _, c := range b {
		if c < '0' || c > '9' {
			break
		}
		v = v*10 + uint64(c-'0')
	}
	return v
}
