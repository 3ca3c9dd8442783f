package procid

import (
	"fmt"

	"golang.org/x/sys/unix"
)

const (
	linkBufStart = 256
	linkBufMax   = 1 << 20
)

// ReadLink resolves a symbolic link into a string. readlink(2) truncates
// silently, and a result that exactly fills the buffer is ambiguous (the
// target may be longer or may be an exact fit), so the buffer is doubled
// and the call retried until the result is strictly shorter than the
// buffer. A target still ambiguous at 1 MiB is an error, as is any other
// readlink failure.
func ReadLink(path string) (string, error) {
	return readLink(path, linkBufStart, linkBufMax)
}

func readLink(path string, start, max int) (string, error) {
	for size := start; size <= max; size *= 2 {
		buf := make([]byte, size)
		var n int
		var err error
		for {
			n, err = unix.Readlink(path, buf)
			if err != unix.EINTR {
				break
			}
		}
		if err != nil {
			return "", fmt.Errorf("readlink %s: %w", path, err)
		}
		if n < size {
			return string(buf[:n]), nil
		}
	}
	return "", fmt.Errorf("readlink %s: target longer than %d bytes", path, max)
}
