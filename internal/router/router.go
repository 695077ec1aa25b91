// SPDX-License-Identifier: Apache-2.0

// Package router ties the turn normalizer, session table and response
// synthesizer together: it correlates each inbound dialog turn with its
// response channel, hands the turn to consumer logic, and delivers the
// synthesized answer exactly once per turn — falling back to a spoken
// apology when the consumer stalls or fails.
package router

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DeanCording/node-red-contrib-google-action/internal/config"
	"github.com/DeanCording/node-red-contrib-google-action/internal/dialog"
	"github.com/DeanCording/node-red-contrib-google-action/internal/log"
	"github.com/DeanCording/node-red-contrib-google-action/internal/metrics"
	"github.com/DeanCording/node-red-contrib-google-action/internal/session"
	"github.com/DeanCording/node-red-contrib-google-action/internal/synth"
)

// Consumer receives each normalized turn. It must resolve every turn
// exactly once — synchronously or later — by calling the router's
// Deliver (or by returning an error, which counts as a failure
// resolution). A consumer that never resolves is caught by the answer
// timeout.
type Consumer interface {
	HandleTurn(ctx context.Context, turn dialog.Turn) error
}

// ConsumerFunc adapts a function to the Consumer interface.
type ConsumerFunc func(ctx context.Context, turn dialog.Turn) error

// HandleTurn calls f.
func (f ConsumerFunc) HandleTurn(ctx context.Context, turn dialog.Turn) error {
	return f(ctx, turn)
}

// Options tunes the router. Zero values fall back to the defaults in
// the config package.
type Options struct {
	// AnswerTimeout bounds the wait for a consumer answer per turn.
	AnswerTimeout time.Duration

	// TimeoutUtterance is spoken when no answer arrived in time.
	TimeoutUtterance string

	// FailureUtterance is spoken when the consumer failed or produced
	// conflicting content.
	FailureUtterance string
}

// Router is the per-server conversation session router. Construct one
// per transport instance with New; instances share no state.
type Router struct {
	consumer Consumer
	opts     Options
	sessions *session.Table

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New creates a Router forwarding turns to the given consumer.
func New(consumer Consumer, opts Options) *Router {
	if opts.AnswerTimeout <= 0 {
		opts.AnswerTimeout = config.DefaultAnswerTimeout
	}
	if opts.TimeoutUtterance == "" {
		opts.TimeoutUtterance = config.DefaultTimeoutUtterance
	}
	if opts.FailureUtterance == "" {
		opts.FailureUtterance = config.DefaultFailureUtterance
	}
	return &Router{
		consumer: consumer,
		opts:     opts,
		sessions: session.NewTable(),
		timers:   make(map[string]*time.Timer),
	}
}

// HandleTurn processes one inbound webhook payload: it normalizes the
// payload, binds the conversation to the given response channel and
// forwards the turn to the consumer. The returned error is non-nil only
// for malformed payloads, which the transport must reject itself — the
// channel is not touched in that case.
func (r *Router) HandleTurn(ctx context.Context, raw []byte, ch session.Channel) error {
	turn, err := dialog.Normalize(raw)
	if err != nil {
		metrics.MalformedTurnsTotal.Inc()
		logger := log.WithComponentFromContext(ctx, "router")
		logger.Warn().
			Err(err).
			Msg("rejecting malformed inbound payload")
		return err
	}

	ctx = log.ContextWithConversationID(ctx, turn.ConversationID)
	logger := log.WithComponentFromContext(ctx, "router")

	d := session.NewDisposition(ch)
	prev := r.sessions.OpenOrReplace(turn.ConversationID, d)
	if prev != nil && !prev.Settled() {
		// Platform retry, or the consumer is still working on the
		// previous turn. The displaced channel stays with the transport.
		metrics.ChannelsReplacedTotal.Inc()
		logger.Warn().
			Str(log.FieldIntent, string(turn.Intent)).
			Msg("pending response channel replaced before use")
	}
	metrics.TurnsTotal.WithLabelValues(string(turn.Intent)).Inc()
	metrics.ActiveSessions.Set(float64(r.sessions.Len()))

	r.armTimer(turn.ConversationID, d, turn.DialogState)

	logger.Debug().
		Str(log.FieldIntent, string(turn.Intent)).
		Bool("new_conversation", turn.NewConversation).
		Msg("forwarding turn to consumer")

	go r.dispatch(ctx, turn)
	return nil
}

// Deliver synthesizes the answer and delivers it through the channel
// recorded for the conversation. A missing session or an already
// dispositioned turn is discarded with a warning, not an error. A
// structurally invalid answer yields ErrConflictingContent after a
// closing fallback utterance has been substituted.
func (r *Router) Deliver(ctx context.Context, conversationID string, answer dialog.Answer) error {
	ctx = log.ContextWithConversationID(ctx, conversationID)
	logger := log.WithComponentFromContext(ctx, "router")

	d, ok := r.sessions.Lookup(conversationID)
	if !ok {
		metrics.IncDelivery(metrics.OutcomeUnknown)
		logger.Warn().
			Err(ErrUnknownConversation).
			Msg("no live session for answer, delivery skipped")
		return nil
	}

	resp, err := synth.Synthesize(answer)
	if err != nil {
		// Usage error by the consumer: substitute a closing fallback so
		// the user-facing dialog still terminates cleanly.
		metrics.IncFallback(metrics.ReasonConflict)
		logger.Warn().
			Err(err).
			Msg("answer rejected, substituting fallback utterance")
		if won, _ := d.Reply(synth.Fallback(r.opts.FailureUtterance, answer.DialogState)); won {
			r.cancelTimer(conversationID)
			r.evict(conversationID, d)
		}
		return err
	}

	won, cherr := d.Reply(resp)
	if !won {
		metrics.IncDelivery(metrics.OutcomeLate)
		logger.Warn().Msg("late answer discarded, turn already dispositioned")
		return nil
	}
	r.cancelTimer(conversationID)
	if cherr != nil {
		logger.Error().Err(cherr).Msg("response channel failed to accept answer")
	}

	if answer.Close {
		r.evict(conversationID, d)
		metrics.IncDelivery(metrics.OutcomeClosed)
		logger.Debug().Msg("answer delivered, conversation closed")
	} else {
		metrics.IncDelivery(metrics.OutcomeOpen)
		logger.Debug().Msg("answer delivered, conversation continues")
	}
	return nil
}

// Fail resolves a turn whose consumer raised an unexpected failure: a
// closing fallback utterance is delivered and the session evicted, so
// the dialog terminates instead of hanging.
func (r *Router) Fail(ctx context.Context, conversationID string, cause error) {
	ctx = log.ContextWithConversationID(ctx, conversationID)
	logger := log.WithComponentFromContext(ctx, "router")

	d, ok := r.sessions.Lookup(conversationID)
	if !ok {
		logger.Warn().
			Err(ErrUnknownConversation).
			AnErr(log.FieldReason, cause).
			Msg("no live session for failure, nothing to deliver")
		return
	}

	logger.Error().
		Err(fmt.Errorf("%w: %v", ErrConsumerFailure, cause)).
		Msg("consumer failed, delivering fallback utterance")

	won, _ := d.Reply(synth.Fallback(r.opts.FailureUtterance, ""))
	if !won {
		logger.Debug().Msg("turn already dispositioned, failure fallback discarded")
		return
	}
	metrics.IncFallback(metrics.ReasonFailure)
	r.cancelTimer(conversationID)
	r.evict(conversationID, d)
}

// Shutdown clears all sessions and cancels outstanding timers. Pending
// channels are left untouched; closing them is the transport's job.
func (r *Router) Shutdown() {
	r.mu.Lock()
	for id, t := range r.timers {
		t.Stop()
		delete(r.timers, id)
	}
	r.mu.Unlock()

	r.sessions.Clear()
	metrics.ActiveSessions.Set(0)
	logger := log.WithComponent("router")
	logger.Info().Msg("session table cleared")
}

func (r *Router) dispatch(ctx context.Context, turn dialog.Turn) {
	defer func() {
		if rec := recover(); rec != nil {
			r.Fail(ctx, turn.ConversationID, fmt.Errorf("consumer panic: %v", rec))
		}
	}()
	if err := r.consumer.HandleTurn(ctx, turn); err != nil {
		r.Fail(ctx, turn.ConversationID, err)
	}
}

// armTimer starts the bounded answer wait for one turn. An existing
// timer for the conversation is replaced; the callback verifies it is
// still the current timer before acting, so a stopped-but-fired timer
// degrades to a no-op.
func (r *Router) armTimer(id string, d *session.Disposition, dialogState string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if old, ok := r.timers[id]; ok {
		old.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(r.opts.AnswerTimeout, func() {
		r.onTimeout(id, t, d, dialogState)
	})
	r.timers[id] = t
}

func (r *Router) cancelTimer(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.timers[id]; ok {
		t.Stop()
		delete(r.timers, id)
	}
}

func (r *Router) onTimeout(id string, t *time.Timer, d *session.Disposition, dialogState string) {
	r.mu.Lock()
	if r.timers[id] != t {
		r.mu.Unlock()
		return
	}
	delete(r.timers, id)
	r.mu.Unlock()

	won, _ := d.Reply(synth.Fallback(r.opts.TimeoutUtterance, dialogState))
	if !won {
		// The answer raced the timer and got there first.
		return
	}
	metrics.IncFallback(metrics.ReasonTimeout)
	r.evict(id, d)
	logger := log.WithComponent("router")
	logger.Warn().
		Err(ErrAnswerTimeout).
		Str(log.FieldConversationID, id).
		Dur("wait_window", r.opts.AnswerTimeout).
		Msg("no answer within wait window, fallback delivered")
}

func (r *Router) evict(id string, d *session.Disposition) {
	r.sessions.Evict(id, d)
	metrics.ActiveSessions.Set(float64(r.sessions.Len()))
}
