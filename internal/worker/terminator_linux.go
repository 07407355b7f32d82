//go:build linux

package worker

import (
	"syscall"
	"time"

	"go.uber.org/zap"
)

// gracePeriod is SIGTERM_TIMEOUT from spec.md §4.3: the fixed interval
// between SIGTERM and SIGKILL.
const gracePeriod = 5 * time.Second

// terminate is the Child Terminator (C3). It signals the whole process
// group (negative pid) rather than just the child, matching the
// Setpgid:true the Supervisor sets at spawn time, so that a child which
// forks its own children cannot outlive it. reaped is closed by the
// Supervisor once the child has been waited on; terminate returns as soon
// as that happens, without waiting out the rest of the grace timer.
func terminate(pid int, reaped <-chan struct{}, log *zap.Logger) {
	log.Info("sending SIGTERM", zap.Int("pid", pid))
	if err := syscall.Kill(-pid, syscall.SIGTERM); err != nil {
		log.Warn("SIGTERM failed", zap.Error(err), zap.Int("pid", pid))
	}

	timer := time.NewTimer(gracePeriod)
	defer timer.Stop()

	select {
	case <-reaped:
		return
	case <-timer.C:
		log.Warn("grace period expired; sending SIGKILL", zap.Int("pid", pid))
		if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil {
			log.Error("SIGKILL failed", zap.Error(err), zap.Int("pid", pid))
		}
	}
}
