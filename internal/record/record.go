package record

import "github.com/majorcontext/btrace/internal/procid"

// KindExec tags an exec record. Consumers key on the tag line and the blank
// terminator line, not on field counts, so further kinds can be added
// without breaking them.
const KindExec = "exec"

// Exec is one logged process-image replacement.
type Exec struct {
	Parent     procid.Identity
	Self       procid.Identity
	WorkingDir string
	Path       string // the path or file exactly as the caller passed it
	Argv       []string
}

// Encode writes the record in wire form:
//
//	exec
//	<parent pid>
//	<parent start ticks>
//	<self pid>
//	<self start ticks>
//	<escaped cwd>
//	<escaped path> <escaped argv[0]> <escaped argv[1]> ...
//	<blank line>
//
// The caller owns the session: locking comes from Open, durability from
// Close.
func (r *Exec) Encode(w *Writer) error {
	if err := w.WriteString(KindExec + "\n"); err != nil {
		return err
	}
	for _, id := range []procid.Identity{r.Parent, r.Self} {
		if err := w.WriteUint(uint64(id.PID)); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
		if err := w.WriteUint(id.StartTime); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	if err := w.WriteEscaped(r.WorkingDir); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	if err := w.WriteEscaped(r.Path); err != nil {
		return err
	}
	for _, arg := range r.Argv {
		if err := w.WriteByte(' '); err != nil {
			return err
		}
		if err := w.WriteEscaped(arg); err != nil {
			return err
		}
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.WriteByte('\n')
}
