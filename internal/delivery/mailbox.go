// Package delivery provides the asynchronous receiver used by network
// sessions: a bounded per-session queue drained by the transport.
package delivery

import (
	"sync"

	"github.com/dtroode/twooter-server/internal/model"
)

var _ model.Receiver = (*Mailbox)(nil)

// DefaultSize is the queue capacity used when none is configured.
const DefaultSize = 1024

// Mailbox is a bounded FIFO of twoots for one session.
//
// Deliver never blocks. When the queue is full the mailbox closes itself with
// model.ErrSlowConsumer; twoots already queued can still be drained.
type Mailbox struct {
	mu     sync.Mutex
	queue  chan model.Twoot
	closed bool
	err    error
	done   chan struct{}
}

// NewMailbox creates a mailbox holding up to size twoots.
func NewMailbox(size int) *Mailbox {
	if size <= 0 {
		size = DefaultSize
	}

	return &Mailbox{
		queue: make(chan model.Twoot, size),
		done:  make(chan struct{}),
	}
}

// Deliver enqueues twoot.
func (m *Mailbox) Deliver(twoot model.Twoot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return model.ErrReceiverClosed
	}

	select {
	case m.queue <- twoot:
		return nil
	default:
		m.closeLocked(model.ErrSlowConsumer)
		return model.ErrSlowConsumer
	}
}

// Close stops accepting twoots. Queued twoots remain readable from C.
func (m *Mailbox) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closeLocked(nil)

	return nil
}

// C returns the queue. It is closed once the mailbox is closed and drained.
func (m *Mailbox) C() <-chan model.Twoot {
	return m.queue
}

// Done is closed when the mailbox stops accepting twoots.
func (m *Mailbox) Done() <-chan struct{} {
	return m.done
}

// Err returns model.ErrSlowConsumer if the mailbox closed on overflow.
func (m *Mailbox) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.err
}

func (m *Mailbox) closeLocked(err error) {
	if m.closed {
		return
	}

	m.closed = true
	m.err = err
	close(m.queue)
	close(m.done)
}
