package worker

import "sync"

// progress is the edge-triggered broadcast described in spec.md §3/§9: a
// waiter registers interest by capturing the current channel, re-checks
// state, then awaits that channel. notify closes the current channel and
// swaps in a fresh one, so every waiter registered before the swap wakes
// exactly once and no wakeup is ever lost between the check and the await.
//
// This is the condition-variable-with-memory-barrier pattern; it is built
// directly on channels rather than sync.Cond because its waiters
// (Subscriber.Next and Handle.Stop) need to select on it alongside their
// context's cancellation.
type progress struct {
	mu sync.Mutex
	ch chan struct{}
}

func newProgress() *progress {
	return &progress{ch: make(chan struct{})}
}

// register returns a token that closes on the next call to notify made
// after register returns. Callers must call register *before* re-reading
// the state notify protects, per the register-check-await protocol.
func (p *progress) register() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ch
}

func (p *progress) notify() {
	p.mu.Lock()
	ch := p.ch
	p.ch = make(chan struct{})
	p.mu.Unlock()
	close(ch)
}
