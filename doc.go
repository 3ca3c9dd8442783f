// Package btrace records process-image-replacement calls to a shared,
// append-only trace log before delegating to the real operation, so that
// process lineage (who execed what, from where, under which parent) can be
// reconstructed afterwards, typically for build-command capture or
// execution auditing.
//
// # Usage
//
// Route execs through the package instead of calling the syscall directly:
//
//	err := btrace.Execvp("make", []string{"make", "all"})
//	// control only returns on failure
//
// The log destination comes from $BTRACE_LOG. When it is unset (or
// unreasonably long), logging is disabled and every call behaves exactly
// like the underlying operation, at the cost of a single string check.
//
// # Log format
//
// One record per call, eight lines: the tag "exec", parent pid, parent
// start time in clock ticks, self pid, self start time, the working
// directory, the invoked path followed by the space-joined argument list,
// and a blank terminator line. String fields are quoted when they contain
// spaces or newlines, with backslash-escaped backslashes and quotes.
// Records from unrelated processes never interleave: each is written under
// a blocking whole-file lock.
//
// # Failure model
//
// A missing $BTRACE_LOG is the only soft failure. Once logging is enabled,
// any inability to produce a complete record (log I/O, identity
// resolution, working-directory resolution) terminates the process with a
// diagnostic on stderr: consumers treat the log as a complete audit trail,
// and a silently dropped record would corrupt it.
//
// Linux only: identities come from procfs.
package btrace
