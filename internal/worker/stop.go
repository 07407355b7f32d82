package worker

import "sync/atomic"

// stopSignal is the Stop Primitive (C2): a one-shot, cross-goroutine signal
// with the three states spec.md §4.2 names - armed, fired, consumed. fire
// is the only mutating operation and is safe under concurrent callers;
// exactly one caller observes a true return. The receive side (c) is fused:
// once closed, every future select against it reports ready immediately,
// matching the supervisor's need to check it repeatedly across both phases
// without ever blocking on an already-fired signal.
type stopSignal struct {
	fired atomic.Bool
	ch    chan struct{}
}

func newStopSignal() *stopSignal {
	return &stopSignal{ch: make(chan struct{})}
}

// fire attempts the armed->fired transition. Returns true if this call
// performed the transition, false if the signal was already fired.
func (s *stopSignal) fire() bool {
	if s.fired.CompareAndSwap(false, true) {
		close(s.ch)
		return true
	}
	return false
}

func (s *stopSignal) c() <-chan struct{} { return s.ch }
