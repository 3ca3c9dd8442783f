// Package procid turns pids into generation-safe process identities by
// parsing procfs, and resolves the symlinks procfs uses for paths like the
// working directory.
//
// A pid alone is not an identity: the kernel recycles them. The pair
// (pid, absolute start time in clock ticks) is stable, since a recycled pid
// gets a later start time, so that pair is what log records carry.
package procid

// Identity names one process generation.
type Identity struct {
	PID uint32
	// StartTime is measured in clock ticks since the epoch: the boot time
	// converted to ticks plus the process's starttime field (ticks since
	// boot) from its stat record.
	StartTime uint64
}

// Equal reports whether two identities name the same process generation.
// Equal pids with different start times are different generations.
func (id Identity) Equal(other Identity) bool {
	return id.PID == other.PID && id.StartTime == other.StartTime
}
