//go:build linux

package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLogger(t *testing.T) *zap.Logger {
	t.Helper()
	return zap.NewNop()
}

func drain(t *testing.T, sub *Subscriber, timeout time.Duration) [][]byte {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var lines [][]byte
	for {
		rec, ok, err := sub.Next(ctx)
		require.NoError(t, err)
		if !ok {
			return lines
		}
		lines = append(lines, rec)
	}
}

// Scenario 1: trivial echo.
func TestSpawnEcho(t *testing.T) {
	h, err := Spawn(testLogger(t), []string{"echo", "foo"})
	require.NoError(t, err)

	sub := h.Subscribe()
	lines := drain(t, sub, 5*time.Second)
	require.Len(t, lines, 1)
	assert.Equal(t, "foo", string(lines[0]))

	st, ok := h.Status()
	require.True(t, ok)
	assert.Equal(t, ExitStatus{Kind: StatusExitedCode, Value: 0}, st)
}

// A subscriber created after the process has already exited still observes
// every historical record, then ends (spec.md §4.5: restartable, late join).
func TestSubscribeAfterExit(t *testing.T) {
	h, err := Spawn(testLogger(t), []string{"echo", "foo"})
	require.NoError(t, err)

	for {
		if _, ok := h.Status(); ok {
			break
		}
		time.Sleep(time.Millisecond)
	}

	sub := h.Subscribe()
	lines := drain(t, sub, 5*time.Second)
	require.Len(t, lines, 1)
	assert.Equal(t, "foo", string(lines[0]))
}

// Scenario 2: interleaved output with pauses.
func TestInterleavedOutputWithPauses(t *testing.T) {
	h, err := Spawn(testLogger(t), []string{
		"sh", "-c",
		"echo hello; sleep 1; echo beautiful; echo world; sleep 2",
	})
	require.NoError(t, err)

	sub := h.Subscribe()
	lines := drain(t, sub, 10*time.Second)
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"hello", "beautiful", "world"}, toStrings(lines))

	st, ok := h.Status()
	require.True(t, ok)
	assert.Equal(t, ExitStatus{Kind: StatusExitedCode, Value: 0}, st)
}

// Scenario 3: graceful stop with a trapped signal. The shell traps SIGTERM,
// prints a line, and exits 23; the subscriber must observe that line even
// though it arrives after stop() was called, and a second stop() must
// observe the same final status.
func TestGracefulStopWithTrappedSignal(t *testing.T) {
	h, err := Spawn(testLogger(t), []string{
		"sh", "-c",
		`trap 'echo "exited cleanly"; exit 23' TERM; echo started; while true; do sleep 0.1; done`,
	})
	require.NoError(t, err)

	sub := h.Subscribe()
	rec, ok, err := sub.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "started", string(rec))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	st, err := h.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExitStatus{Kind: StatusExitedCode, Value: 23}, st)

	rec, ok, err = sub.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "exited cleanly", string(rec))

	st2, err := h.Stop(ctx)
	require.NoError(t, err)
	assert.Equal(t, st, st2)
}

// Scenario 4: forceful stop against a child that ignores SIGTERM.
func TestForcefulStop(t *testing.T) {
	h, err := Spawn(testLogger(t), []string{
		"sh", "-c",
		`trap '' TERM; echo started; while true; do sleep 0.1; done`,
	})
	require.NoError(t, err)

	sub := h.Subscribe()
	_, ok, err := sub.Next(context.Background())
	require.NoError(t, err)
	require.True(t, ok)

	start := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	st, err := h.Stop(ctx)
	require.NoError(t, err)
	elapsed := time.Since(start)

	assert.Equal(t, StatusExitedSignal, st.Kind)
	assert.GreaterOrEqual(t, elapsed, gracePeriod)
}

// Scenario 5: unknown binary. Spawn itself fails; no supervisor starts.
func TestSpawnUnknownBinary(t *testing.T) {
	h, err := Spawn(testLogger(t), []string{"this_command_does_not_exist_xyz"})
	assert.Error(t, err)
	assert.Nil(t, h)
}

func TestSpawnEmptyArgv(t *testing.T) {
	h, err := Spawn(testLogger(t), nil)
	assert.Error(t, err)
	assert.Nil(t, h)
}

// A second concurrent stop() while one is already in flight must observe
// ErrStopInProgress (spec.md §4.6/§7: aborted).
func TestConcurrentStopAborts(t *testing.T) {
	h, err := Spawn(testLogger(t), []string{
		"sh", "-c", `trap '' TERM; while true; do sleep 0.1; done`,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	go func() { _, _ = h.Stop(ctx) }()
	time.Sleep(50 * time.Millisecond)

	_, err = h.Stop(ctx)
	assert.ErrorIs(t, err, ErrStopInProgress)
}

func toStrings(recs [][]byte) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = string(r)
	}
	return out
}
