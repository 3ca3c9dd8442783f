package btrace

import (
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// defaultPath is the search path when $PATH is unset, matching os/exec.
const defaultPath = "/usr/local/bin:/bin:/usr/bin"

// sysExecve is the true explicit-path operation: execve(2). It returns only
// on failure, with the syscall error untouched.
func sysExecve(path string, argv, envp []string) error {
	return unix.Exec(path, argv, envp)
}

// sysExecvpe is the true search-form operation: execve(2) against each
// candidate directory of $PATH, with execvp(3)'s error discipline. A name
// containing a slash is used as-is. ENOENT and ENOTDIR mean "keep looking";
// EACCES is remembered and reported only if nothing later succeeds; any
// other failure (E2BIG, ENOEXEC, ...) aborts the search so the caller sees
// the real reason.
func sysExecvpe(file string, argv, envp []string) error {
	if strings.ContainsRune(file, '/') {
		return unix.Exec(file, argv, envp)
	}
	path := os.Getenv("PATH")
	if path == "" {
		path = defaultPath
	}
	var deferred error
	for _, dir := range strings.Split(path, ":") {
		if dir == "" {
			// A zero-length prefix is the historical spelling of the
			// current directory.
			dir = "."
		}
		err := unix.Exec(dir+"/"+file, argv, envp)
		switch err {
		case unix.EACCES:
			deferred = err
		case unix.ENOENT, unix.ENOTDIR:
		default:
			return err
		}
	}
	if deferred != nil {
		return deferred
	}
	return unix.ENOENT
}
