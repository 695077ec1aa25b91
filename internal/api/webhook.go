// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/DeanCording/node-red-contrib-google-action/internal/dialog"
	"github.com/DeanCording/node-red-contrib-google-action/internal/gaction"
	"github.com/DeanCording/node-red-contrib-google-action/internal/log"
)

// replyResult is the single disposition of one webhook request.
type replyResult struct {
	resp   *gaction.AppResponse
	status int
	reason string
}

// httpChannel bridges a webhook request to the session router. The
// result channel is buffered so a disposition arriving after the
// handler gave up never blocks the router.
type httpChannel struct {
	result chan replyResult
}

func newHTTPChannel() *httpChannel {
	return &httpChannel{result: make(chan replyResult, 1)}
}

func (c *httpChannel) Reply(resp *gaction.AppResponse) error {
	c.result <- replyResult{resp: resp}
	return nil
}

func (c *httpChannel) Abort(status int, reason string) error {
	c.result <- replyResult{status: status, reason: reason}
	return nil
}

// handleWebhook ingests one conversation turn. The response is written
// only after the router dispositioned the turn, which the answer
// timeout guarantees happens within a bounded window.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := log.WithComponentFromContext(ctx, "api")

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes))
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			logger.Warn().Int64("limit", tooBig.Limit).Msg("webhook payload too large")
			writeError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		logger.Warn().Err(err).Msg("failed to read webhook payload")
		writeError(w, http.StatusBadRequest, "unreadable payload")
		return
	}

	ch := newHTTPChannel()
	if err := s.turns.HandleTurn(ctx, body, ch); err != nil {
		if errors.Is(err, dialog.ErrMalformedPayload) {
			writeError(w, http.StatusBadRequest, "malformed conversation payload")
			return
		}
		writeError(w, http.StatusInternalServerError, "turn not accepted")
		return
	}

	select {
	case res := <-ch.result:
		if res.resp != nil {
			writeJSON(w, http.StatusOK, res.resp)
			return
		}
		writeError(w, res.status, res.reason)
	case <-ctx.Done():
		// Client went away. The router still settles the channel via its
		// answer timeout; the buffered result is simply dropped.
		logger.Debug().Msg("webhook client disconnected before disposition")
	}
}
