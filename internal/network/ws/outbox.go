package ws

import "sync"

// outbox buffers encoded frames between the non-blocking Send path and the
// per-connection writer goroutine. It is unbounded: the channel contract
// says Send never blocks, so backpressure surfaces as memory growth on a
// stalled peer, and the write deadline cuts such a peer off.
type outbox struct {
	mu     sync.Mutex
	cond   *sync.Cond
	frames [][]byte
	closed bool
}

func newOutbox() *outbox {
	o := &outbox{}
	o.cond = sync.NewCond(&o.mu)
	return o
}

func (o *outbox) push(frame []byte) {
	o.mu.Lock()
	if !o.closed {
		o.frames = append(o.frames, frame)
		o.cond.Signal()
	}
	o.mu.Unlock()
}

// next blocks until a frame is available or the outbox is closed.
func (o *outbox) next() ([]byte, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for len(o.frames) == 0 && !o.closed {
		o.cond.Wait()
	}
	if len(o.frames) == 0 {
		return nil, false
	}
	f := o.frames[0]
	o.frames = o.frames[1:]
	return f, true
}

func (o *outbox) close() {
	o.mu.Lock()
	o.closed = true
	o.cond.Broadcast()
	o.mu.Unlock()
}
