package procid

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/majorcontext/btrace/internal/safe"
)

// clockTicksPerSecond converts the btime seconds in /proc/stat to the unit
// starttime uses. The starttime and btime-derived values in procfs are
// defined in USER_HZ, which is 100 on Linux regardless of the kernel's
// internal tick rate.
const clockTicksPerSecond = 100

// BootTimeTicks reads the system boot time from <procRoot>/stat ("btime",
// seconds since the epoch) and returns it in clock ticks. Every identity
// this package produces is anchored to this value, so a missing or zero
// btime is an error.
func BootTimeTicks(procRoot string) (uint64, error) {
	path := procRoot + "/stat"
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", path, err)
	}
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		if !bytes.HasPrefix(line, []byte("btime ")) {
			continue
		}
		secs := safe.ParseUint(line[len("btime "):])
		if secs == 0 {
			return 0, fmt.Errorf("invalid btime in %s", path)
		}
		return secs * clockTicksPerSecond, nil
	}
	return 0, fmt.Errorf("btime missing from %s", path)
}

// Resolver resolves pids into identities against one procfs root.
// BootTicks is computed once per process (it cannot change while the
// system is up) and shared by every resolution.
type Resolver struct {
	ProcRoot  string
	BootTicks uint64
}

// Resolve reads <ProcRoot>/<pid>/stat and returns the identity of that
// process generation. Failure means the identity guarantee cannot be upheld
// for this pid; callers treat it as fatal.
func (r *Resolver) Resolve(pid int) (Identity, error) {
	var pathBuf [64]byte
	p := append(pathBuf[:0], r.ProcRoot...)
	p = append(p, '/')
	p = safe.AppendUint(p, uint64(pid))
	p = append(p, "/stat"...)
	path := string(p)

	f, err := os.Open(path)
	if err != nil {
		return Identity{}, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var buf [statBufSize]byte
	n, err := f.Read(buf[:])
	if err != nil && err != io.EOF {
		return Identity{}, fmt.Errorf("reading %s: %w", path, err)
	}

	ticks, err := parseStartTimeTicks(buf[:n])
	if err != nil {
		return Identity{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return Identity{
		PID:       uint32(pid),
		StartTime: r.BootTicks + ticks,
	}, nil
}
