// SPDX-License-Identifier: Apache-2.0

package session

import (
	"sync/atomic"

	"github.com/DeanCording/node-red-contrib-google-action/internal/gaction"
)

// Channel is the transport-owned, single-use delivery mechanism for one
// reply. The transport guarantees that exactly one terminal disposition
// (a response body or an error status) is accepted.
type Channel interface {
	// Reply delivers the response body.
	Reply(resp *gaction.AppResponse) error

	// Abort terminates the call with an error status.
	Abort(status int, reason string) error
}

// Disposition wraps a Channel with first-writer-wins semantics: the
// first Reply or Abort settles the slot, later writers observe false
// and must treat the attempt as a no-op. This is what makes the race
// between a late answer and a firing timeout safe.
type Disposition struct {
	settled atomic.Bool
	ch      Channel
}

// NewDisposition wraps the given channel.
func NewDisposition(ch Channel) *Disposition {
	return &Disposition{ch: ch}
}

// Reply delivers the response if the slot is still open. It reports
// whether this caller won the slot.
func (d *Disposition) Reply(resp *gaction.AppResponse) (bool, error) {
	if !d.settled.CompareAndSwap(false, true) {
		return false, nil
	}
	return true, d.ch.Reply(resp)
}

// Abort terminates the call with an error status if the slot is still
// open. It reports whether this caller won the slot.
func (d *Disposition) Abort(status int, reason string) (bool, error) {
	if !d.settled.CompareAndSwap(false, true) {
		return false, nil
	}
	return true, d.ch.Abort(status, reason)
}

// Settled reports whether the slot has been dispositioned.
func (d *Disposition) Settled() bool {
	return d.settled.Load()
}
