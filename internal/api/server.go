// SPDX-License-Identifier: Apache-2.0

// Package api exposes the conversation webhook over HTTP. Each inbound
// POST is bound to a response channel and handed to the session router;
// the handler then blocks until the turn is dispositioned, so the
// webhook reply always carries exactly one response per request.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/DeanCording/node-red-contrib-google-action/internal/config"
	"github.com/DeanCording/node-red-contrib-google-action/internal/log"
	"github.com/DeanCording/node-red-contrib-google-action/internal/session"
)

// TurnRouter accepts one raw webhook payload together with the channel
// that must receive its response.
type TurnRouter interface {
	HandleTurn(ctx context.Context, raw []byte, ch session.Channel) error
}

// Server is the webhook HTTP server.
type Server struct {
	cfg   config.Config
	turns TurnRouter
}

// New creates a Server routing webhook turns to the given router.
func New(cfg config.Config, turns TurnRouter) *Server {
	return &Server{cfg: cfg, turns: turns}
}

// Handler builds the HTTP routing table with the canonical middleware
// stack applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(recoverer)
	r.Use(requestID)
	r.Use(accessLog)
	if s.cfg.RateLimit > 0 {
		r.Use(httprate.Limit(
			s.cfg.RateLimit,
			time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{
					"error": "rate limit exceeded",
				})
			}),
		))
	}

	r.Post("/", s.handleWebhook)
	r.Get("/healthz", s.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully. Pending
// webhook requests get their disposition from the router's answer
// timeout before the drain window expires.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger := log.WithComponent("api")
	logger.Info().Str("listen", s.cfg.Listen).Msg("webhook server starting")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		drainCtx, cancel := context.WithTimeout(context.Background(), s.cfg.AnswerTimeout+5*time.Second)
		defer cancel()
		logger.Info().Msg("webhook server draining")
		return srv.Shutdown(drainCtx)
	})
	return g.Wait()
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
