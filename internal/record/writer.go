package record

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"

	"github.com/majorcontext/btrace/internal/safe"
)

// writerBufSize is the in-memory buffer for one record session. Records are
// usually smaller than this, so a whole record normally reaches the file in
// a single write.
const writerBufSize = 1024

// Writer is an append session on the shared log: one open file, one
// whole-file exclusive lock, one record, then Close. Sessions are never
// shared or reused; concurrent callers, including unrelated processes,
// serialize on the file lock, which is the only mutual exclusion in the
// system.
type Writer struct {
	f   *os.File
	buf [writerBufSize]byte
	n   int
}

// Open opens (creating if absent) the log for append and blocks until the
// exclusive advisory lock is granted, retrying if the wait is interrupted.
// The descriptor is close-on-exec: the session must not leak into the
// image about to replace this process.
func Open(path string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening trace log: %w", err)
	}
	for {
		err = unix.Flock(int(f.Fd()), unix.LOCK_EX)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("locking trace log: %w", err)
	}
	return &Writer{f: f}, nil
}

// Flush writes out the buffered bytes. A short write with no error cannot
// normally happen on a regular file; treat it as one anyway rather than
// leave a torn record.
func (w *Writer) Flush() error {
	if w.n == 0 {
		return nil
	}
	n, err := w.f.Write(w.buf[:w.n])
	if err != nil {
		return fmt.Errorf("writing trace log: %w", err)
	}
	if n != w.n {
		return fmt.Errorf("writing trace log: %w", io.ErrShortWrite)
	}
	w.n = 0
	return nil
}

// WriteByte buffers one byte, flushing first if the buffer is full.
func (w *Writer) WriteByte(ch byte) error {
	if w.n == len(w.buf) {
		if err := w.Flush(); err != nil {
			return err
		}
	}
	w.buf[w.n] = ch
	w.n++
	return nil
}

// WriteString buffers the bytes of s.
func (w *Writer) WriteString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := w.WriteByte(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// WriteUint buffers the decimal rendering of v.
func (w *Writer) WriteUint(v uint64) error {
	var tmp [20]byte
	for _, ch := range safe.AppendUint(tmp[:0], v) {
		if err := w.WriteByte(ch); err != nil {
			return err
		}
	}
	return nil
}

// WriteEscaped buffers s in escaped form.
func (w *Writer) WriteEscaped(s string) error {
	var tmp [256]byte
	for _, ch := range AppendEscaped(tmp[:0], s) {
		if err := w.WriteByte(ch); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the remaining bytes, releases the lock, and closes the
// file. The record is only guaranteed on disk and visible as a unit once
// Close returns nil.
func (w *Writer) Close() error {
	if err := w.Flush(); err != nil {
		w.f.Close()
		return err
	}
	if err := unix.Flock(int(w.f.Fd()), unix.LOCK_UN); err != nil {
		w.f.Close()
		return fmt.Errorf("unlocking trace log: %w", err)
	}
	if err := w.f.Close(); err != nil {
		return fmt.Errorf("closing trace log: %w", err)
	}
	return nil
}
