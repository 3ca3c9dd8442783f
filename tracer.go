package btrace

import (
	"os"
	"sync"

	"github.com/majorcontext/btrace/internal/procid"
	"github.com/majorcontext/btrace/internal/record"
	"github.com/majorcontext/btrace/internal/safe"
)

// LogEnvVar names the environment variable holding the shared log path.
const LogEnvVar = "BTRACE_LOG"

// maxLogPathLen bounds the accepted $BTRACE_LOG value. Longer values are
// treated the same as an unset one: logging stays off for this process.
const maxLogPathLen = 1024

// ExecFunc is a true underlying process-image-replacement operation. On
// success the call never returns; on failure it returns the operation's
// error unmodified.
type ExecFunc func(path string, argv, envp []string) error

// Config configures a Tracer. The zero value is the production setup: log
// destination from $BTRACE_LOG, identities from /proc, delegation to
// execve(2) directly (explicit-path form) or through a $PATH search
// (search form).
type Config struct {
	// LogPath overrides the $BTRACE_LOG lookup when non-empty.
	LogPath string
	// ProcRoot overrides the procfs mount point, for tests.
	ProcRoot string
	// Execve and Execvpe replace the true operations, for tests.
	Execve  ExecFunc
	Execvpe ExecFunc
}

// Tracer is the per-process context: the resolved true operations, the log
// destination, and the boot-time reference. It is immutable once built;
// entry points only read it, so no synchronization guards it.
type Tracer struct {
	execve   ExecFunc
	execvpe  ExecFunc
	logPath  string
	resolver procid.Resolver

	getpid  func() int
	getppid func() int
}

// New builds a tracer. Inability to establish the boot-time reference or
// the true operations is fatal: without them no later record could be
// trusted and no call could be delegated.
func New(cfg Config) *Tracer {
	procRoot := cfg.ProcRoot
	if procRoot == "" {
		procRoot = "/proc"
	}
	execve := cfg.Execve
	if execve == nil {
		execve = sysExecve
	}
	execvpe := cfg.Execvpe
	if execvpe == nil {
		execvpe = sysExecvpe
	}

	logPath := cfg.LogPath
	if logPath == "" {
		if v := os.Getenv(LogEnvVar); v != "" && len(v) < maxLogPathLen {
			logPath = v
		}
	}

	boot, err := procid.BootTimeTicks(procRoot)
	if err != nil {
		safe.Fail("determining boot time: ", err.Error())
	}

	return &Tracer{
		execve:   execve,
		execvpe:  execvpe,
		logPath:  logPath,
		resolver: procid.Resolver{ProcRoot: procRoot, BootTicks: boot},
		getpid:   os.Getpid,
		getppid:  os.Getppid,
	}
}

var defaultTracer = sync.OnceValue(func() *Tracer {
	return New(Config{})
})

// Default returns the process-wide tracer, built exactly once on first use
// and read-only afterwards.
func Default() *Tracer {
	return defaultTracer()
}

// Enabled reports whether calls through this tracer are being logged.
func (t *Tracer) Enabled() bool {
	return t.logPath != ""
}

// logExecution appends one record for an imminent image replacement. path
// and argv are recorded exactly as the caller passed them; for the search
// form that means the unsearched name. Every failure past the
// enabled-check is fatal (see the package comment).
func (t *Tracer) logExecution(path string, argv []string) {
	if t.logPath == "" {
		return
	}

	parent, err := t.resolver.Resolve(t.getppid())
	if err != nil {
		safe.Fail("resolving parent identity: ", err.Error())
	}
	self, err := t.resolver.Resolve(t.getpid())
	if err != nil {
		safe.Fail("resolving identity: ", err.Error())
	}
	cwd, err := procid.ReadLink(t.resolver.ProcRoot + "/self/cwd")
	if err != nil {
		safe.Fail("resolving working directory: ", err.Error())
	}

	w, err := record.Open(t.logPath)
	if err != nil {
		safe.Fail(err.Error())
	}
	rec := record.Exec{
		Parent:     parent,
		Self:       self,
		WorkingDir: cwd,
		Path:       path,
		Argv:       argv,
	}
	if err := rec.Encode(w); err != nil {
		safe.Fail(err.Error())
	}
	if err := w.Close(); err != nil {
		safe.Fail(err.Error())
	}
}

// Execve logs and replaces the process image with the program at path,
// using the given argument and environment vectors. Explicit-path form: no
// search is performed.
func (t *Tracer) Execve(path string, argv, envp []string) error {
	t.logExecution(path, argv)
	return t.execve(path, argv, envp)
}

// Execv is Execve with the caller's environment.
func (t *Tracer) Execv(path string, argv []string) error {
	return t.Execve(path, argv, os.Environ())
}

// Execvpe logs and replaces the process image with file, located according
// to the ambient search-path policy, using the given environment.
func (t *Tracer) Execvpe(file string, argv, envp []string) error {
	t.logExecution(file, argv)
	return t.execvpe(file, argv, envp)
}

// Execvp is Execvpe with the caller's environment.
func (t *Tracer) Execvp(file string, argv []string) error {
	return t.Execvpe(file, argv, os.Environ())
}

// Execl is the variadic spelling of Execv: arg0 and args form the argument
// vector. With no extra args the vector is just arg0.
func (t *Tracer) Execl(path, arg0 string, args ...string) error {
	return t.Execve(path, argvFrom(arg0, args), os.Environ())
}

// Execlp is the variadic spelling of Execvp.
func (t *Tracer) Execlp(file, arg0 string, args ...string) error {
	return t.Execvpe(file, argvFrom(arg0, args), os.Environ())
}

// Execle is the variadic spelling of Execve. Go cannot place the
// environment vector after a variadic list the way C does, so it comes
// before the arguments; the vectors delivered to the true operation are
// identical either way.
func (t *Tracer) Execle(path string, envp []string, arg0 string, args ...string) error {
	return t.Execve(path, argvFrom(arg0, args), envp)
}

// argvFrom materializes a variadic argument list into a vector.
func argvFrom(arg0 string, rest []string) []string {
	argv := make([]string, 0, len(rest)+1)
	argv = append(argv, arg0)
	return append(argv, rest...)
}

// Package-level entry points on the Default tracer.

// Execv calls Default().Execv.
func Execv(path string, argv []string) error { return Default().Execv(path, argv) }

// Execve calls Default().Execve.
func Execve(path string, argv, envp []string) error { return Default().Execve(path, argv, envp) }

// Execvp calls Default().Execvp.
func Execvp(file string, argv []string) error { return Default().Execvp(file, argv) }

// Execvpe calls Default().Execvpe.
func Execvpe(file string, argv, envp []string) error { return Default().Execvpe(file, argv, envp) }

// Execl calls Default().Execl.
func Execl(path, arg0 string, args ...string) error { return Default().Execl(path, arg0, args...) }

// Execlp calls Default().Execlp.
func Execlp(file, arg0 string, args ...string) error { return Default().Execlp(file, arg0, args...) }

// Execle calls Default().Execle.
func Execle(path string, envp []string, arg0 string, args ...string) error {
	return Default().Execle(path, envp, arg0, args...)
}
