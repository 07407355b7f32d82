//go:build linux

package worker

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"sync"
	"syscall"

	"go.uber.org/zap"
)

// Handle is the Process Handle (C6): the public facade returned by Spawn.
// It never touches the child directly; every operation reads or mutates
// the shared state that the Supervisor owns.
type Handle struct {
	state *state
	// Pid is the OS process id, exposed for logging only; the external
	// process identity clients use is the registry-minted UUID, not this.
	Pid int
}

// Status returns the current exit status non-blockingly; ok is false while
// the process is still running.
func (h *Handle) Status() (ExitStatus, bool) { return h.state.status() }

// Subscribe returns a fresh independent log Subscriber.
func (h *Handle) Subscribe() *Subscriber { return h.state.subscribe() }

// Stop requests termination and waits for the process to exit, per the
// behaviour in spec.md §4.6: a no-op success against an already-exited
// process, and ErrStopInProgress for any caller that loses the race to
// consume the stop signal.
func (h *Handle) Stop(ctx context.Context) (ExitStatus, error) {
	return h.state.stopAndWait(ctx)
}

// Spawn constructs Shared State, starts the child with stdout and stderr
// piped, launches the Supervisor in the background, and returns a Handle.
// Stdin is intentionally left unwired: capturing stdin is an explicit
// Non-goal (spec.md §1), so the child's stdin is the null device, exec.Cmd's
// default when Stdin is nil.
func Spawn(log *zap.Logger, argv []string) (*Handle, error) {
	if len(argv) == 0 {
		return nil, fmt.Errorf("worker: empty argument vector")
	}

	cmd := exec.Command(argv[0], argv[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("worker: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("worker: stderr pipe: %w", err)
	}

	// Isolate the child into its own process group so the Terminator can
	// signal any children it forks, and arrange for the kernel to SIGKILL
	// it if procd itself dies first.
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setpgid:   true,
		Pdeathsig: syscall.SIGKILL,
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("worker: spawn: %w", err)
	}

	st := newState()
	sup := &supervisor{log: log.Named("supervisor"), state: st, cmd: cmd}
	go sup.run(stdout, stderr)

	return &Handle{state: st, Pid: cmd.Process.Pid}, nil
}

// supervisor is the Supervisor (C4): the single background coordinator that
// drives the two Line Readers, the Stop Primitive, and the child's final
// wait, to completion, per the state machine in spec.md §4.4.
type supervisor struct {
	log   *zap.Logger
	state *state
	cmd   *exec.Cmd
}

// run implements the Live/Signalling/Draining/ClosingReaders/Done state
// machine of spec.md §4.4, collapsed into a single select loop over three
// independent completion signals (readers, stop, reap) rather than the
// nested two-phase description - the state table is the contract, not the
// control-flow shape.
func (sup *supervisor) run(stdout, stderr io.ReadCloser) {
	readersDone := make(chan struct{})
	go func() {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			runReader(stdout, sup.state, sup.log, "stdout")
		}()
		go func() {
			defer wg.Done()
			runReader(stderr, sup.state, sup.log, "stderr")
		}()
		wg.Wait()
		close(readersDone)
	}()

	// cmd.Wait closes the child's stdout/stderr pipes the moment it sees
	// the child exit; calling it while a Line Reader still has buffered,
	// unread output in flight truncates that reader's final record(s),
	// breaking spec.md §4.1's "final call fires progress" guarantee and
	// §4.4's ordering guarantee. So reaping must wait for both readers to
	// have already hit EOF, matching the teacher's supervise()
	// (processmgr/process.go), which drains its pipes before calling
	// cmd.Wait() too.
	reaped := make(chan struct{})
	var waitErr error
	go func() {
		<-readersDone
		waitErr = sup.cmd.Wait()
		close(reaped)
	}()

	pid := sup.cmd.Process.Pid
	terminatorStarted := false

	// Local, nilable copies for the select loop: the loop disables a case
	// once it fires by nilling its own copy, leaving readersDone and
	// reaped themselves intact so the goroutines above (and a late-firing
	// terminate, below) can still read them correctly.
	readersSel, reapedSel, stopSel := readersDone, reaped, sup.state.stop.c()

	readersOK, reapedOK := false, false
	for !(readersOK && reapedOK) {
		select {
		case <-readersSel:
			readersSel = nil
			readersOK = true

		case <-reapedSel:
			reapedSel = nil
			reapedOK = true

		case <-stopSel:
			// Readers are deliberately left running here: output a trapped
			// signal handler prints on its way out must still be captured
			// (spec.md §4.4 Phase 2), so only the child is signalled.
			if !terminatorStarted {
				terminatorStarted = true
				go terminate(pid, reaped, sup.log)
			}
			stopSel = nil
		}
	}

	sup.state.setExitStatus(sup.exitStatus(waitErr))
}

// exitStatus translates the result of cmd.Wait() into spec.md's
// {running|code|signal} union. When Wait itself fails at the kernel level
// - the open question in spec.md §9 - ProcessState is nil and there is no
// WaitStatus to decode; this implementation resolves that question by
// synthesising exited-signal(-1) rather than leaving exit_status unset
// forever, so that subscribers and stop() callers are never left waiting
// on a status that can never arrive.
func (sup *supervisor) exitStatus(waitErr error) ExitStatus {
	ps := sup.cmd.ProcessState
	if ps == nil {
		sup.log.Error("wait failed; exit status unknown", zap.Error(waitErr))
		return ExitStatus{Kind: StatusExitedSignal, Value: -1}
	}

	ws, ok := ps.Sys().(syscall.WaitStatus)
	if !ok {
		return ExitStatus{Kind: StatusExitedCode, Value: ps.ExitCode()}
	}
	if ws.Signaled() {
		return ExitStatus{Kind: StatusExitedSignal, Value: int(ws.Signal())}
	}
	return ExitStatus{Kind: StatusExitedCode, Value: ws.ExitStatus()}
}
