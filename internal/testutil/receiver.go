package testutil

import (
	"sync"

	"github.com/dtroode/twooter-server/internal/model"
)

// Receiver records every delivered twoot. SetFail makes Deliver fail.
type Receiver struct {
	mu       sync.Mutex
	received []model.Twoot
	fail     error
}

// NewReceiver creates an empty recording receiver.
func NewReceiver() *Receiver {
	return &Receiver{}
}

func (r *Receiver) Deliver(twoot model.Twoot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		return r.fail
	}
	r.received = append(r.received, twoot)

	return nil
}

// Received returns a copy of the delivered twoots in delivery order.
func (r *Receiver) Received() []model.Twoot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.Twoot, len(r.received))
	copy(out, r.received)

	return out
}

// SetFail changes the error returned by subsequent deliveries.
func (r *Receiver) SetFail(err error) {
	r.mu.Lock()
	r.fail = err
	r.mu.Unlock()
}
