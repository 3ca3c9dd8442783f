package safe

import (
	"io"
	"os"
)

// Overridable for tests.
var (
	stderr io.Writer = os.Stderr
	exit             = os.Exit
)

// Fail is the fatal-fault channel. It concatenates parts into a single
// "btrace: "-prefixed line, writes it to stderr in one call, and terminates
// the process. Integrity failures (unreadable proc files, log I/O errors)
// go through here; a missing record is worse for the audit trail than a
// dead process, so there is no recovery path.
func Fail(parts ...string) {
	n := len("btrace: ") + 1
	for _, p := range parts {
		n += len(p)
	}
	buf := make([]byte, 0, n)
	buf = append(buf, "btrace: "...)
	for _, p := range parts {
		buf = append(buf, p...)
	}
	buf = append(buf, '\n')
	stderr.Write(buf)
	exit(1)
}
