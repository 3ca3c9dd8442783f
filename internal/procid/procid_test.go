package procid

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// statLine builds a stat record: pid, parenthesized comm, 19 filler fields,
// starttime as field 22, and a few trailing fields.
func statLine(pid int, comm string, starttime uint64) string {
	filler := strings.TrimSuffix(strings.Repeat("0 ", 19), " ")
	return fmt.Sprintf("%d (%s) %s %d 223416320 0 0\n", pid, comm, filler, starttime)
}

// writeProc lays out a minimal fake procfs in a temp dir.
func writeProc(t *testing.T, bootSecs uint64, pids map[int]string) string {
	t.Helper()
	root := t.TempDir()
	stat := fmt.Sprintf("cpu  1 2 3 4\nbtime %d\nprocesses 100\n", bootSecs)
	require.NoError(t, os.WriteFile(filepath.Join(root, "stat"), []byte(stat), 0o644))
	for pid, line := range pids {
		dir := filepath.Join(root, fmt.Sprint(pid))
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, "stat"), []byte(line), 0o644))
	}
	return root
}

func TestIdentityEqual(t *testing.T) {
	a := Identity{PID: 100, StartTime: 50}
	b := Identity{PID: 100, StartTime: 50}
	reused := Identity{PID: 100, StartTime: 9000} // same pid, later generation
	other := Identity{PID: 101, StartTime: 50}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(reused), "pid reuse must yield a distinct identity")
	assert.False(t, a.Equal(other))
}

func TestParseStartTimeTicks(t *testing.T) {
	tests := []struct {
		name    string
		comm    string
		want    uint64
		wantErr bool
	}{
		{name: "plain comm", comm: "bash", want: 50},
		{name: "comm with spaces", comm: "tmux: server", want: 50},
		{name: "comm with closing paren", comm: "a)b", want: 50},
		{name: "comm that is all parens", comm: "((()))", want: 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseStartTimeTicks([]byte(statLine(42, tt.comm, tt.want)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStartTimeTicksMalformed(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"no comm", "1234 comm 0 1 2"},
		{"record ends early", "1234 (sh) S 1 2"},
		{"field truncated by buffer", "1234 (sh) " + strings.TrimSuffix(strings.Repeat("0 ", 19), " ") + " 50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseStartTimeTicks([]byte(tt.in))
			assert.Error(t, err)
		})
	}
}

func TestBootTimeTicks(t *testing.T) {
	root := writeProc(t, 1700000000, nil)
	ticks, err := BootTimeTicks(root)
	require.NoError(t, err)
	assert.Equal(t, uint64(1700000000*100), ticks)
}

func TestBootTimeTicksMissing(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stat"), []byte("cpu 1 2 3\n"), 0o644))
	_, err := BootTimeTicks(root)
	assert.Error(t, err)
}

func TestBootTimeTicksZero(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "stat"), []byte("btime 0\n"), 0o644))
	_, err := BootTimeTicks(root)
	assert.Error(t, err)
}

func TestResolverResolve(t *testing.T) {
	root := writeProc(t, 10, map[int]string{
		100: statLine(100, "make", 50),
		1:   statLine(1, "init", 0),
	})
	boot, err := BootTimeTicks(root)
	require.NoError(t, err)
	r := &Resolver{ProcRoot: root, BootTicks: boot}

	self, err := r.Resolve(100)
	require.NoError(t, err)
	assert.Equal(t, Identity{PID: 100, StartTime: 1000 + 50}, self)

	parent, err := r.Resolve(1)
	require.NoError(t, err)
	assert.Equal(t, Identity{PID: 1, StartTime: 1000}, parent)
}

func TestResolverResolveGone(t *testing.T) {
	root := writeProc(t, 10, nil)
	r := &Resolver{ProcRoot: root, BootTicks: 1000}
	_, err := r.Resolve(4242)
	assert.Error(t, err)
}

func TestReadLinkGrowth(t *testing.T) {
	dir := t.TempDir()
	for _, n := range []int{10, 255, 256, 300, 700} {
		// Symlink targets need not exist; an absolute path of exactly n
		// bytes exercises the size boundaries directly.
		target := "/" + strings.Repeat("x", n-1)
		link := filepath.Join(dir, fmt.Sprintf("link%d", n))
		require.NoError(t, os.Symlink(target, link))

		got, err := readLink(link, 256, 1<<20)
		require.NoError(t, err, "target length %d", len(target))
		assert.Equal(t, target, got, "target length %d", len(target))
	}
}

func TestReadLinkTooLong(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, strings.Repeat("y", 64))
	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	// Bound below the target length: the resolver must report an error
	// rather than hand back a truncated path.
	_, err := readLink(link, 4, 16)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longer than")
}

func TestReadLinkNotALink(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err := ReadLink(file)
	assert.Error(t, err)
}
