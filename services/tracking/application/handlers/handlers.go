// Package handlers exposes the tracking commands over HTTP.
//
// A command outcome is written in one of three ways: the success value as JSON,
// a domain variant through errhttp.WriteDomainError, or a fault (lookup
// failure, cancelled request) through errhttp.WriteError.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/sessions"

	"github.com/ghuser/hourglass/pkg/domainerr"
	"github.com/ghuser/hourglass/pkg/errhttp"
	"github.com/ghuser/hourglass/pkg/httpx"
	"github.com/ghuser/hourglass/pkg/logger"
	"github.com/ghuser/hourglass/pkg/result"
	"github.com/ghuser/hourglass/pkg/telemetry"
	appsvcs "github.com/ghuser/hourglass/services/tracking/application/services"
)

// Handlers serves the tracking endpoints.
type Handlers struct {
	svc     *appsvcs.Services
	store   sessions.Store
	log     logger.Logger
	metrics *telemetry.CommandMetrics
}

// New returns Handlers. store and metrics may be nil: without a store login
// only issues bearer tokens.
func New(svc *appsvcs.Services, store sessions.Store, log logger.Logger, metrics *telemetry.CommandMetrics) *Handlers {
	if log == nil {
		log = logger.Nop()
	}
	return &Handlers{svc: svc, store: store, log: log, metrics: metrics}
}

// respond writes the outcome of command. On success it writes status with
// view(v), or 204 when view is nil.
func respond[V any, E domainerr.Error](
	h *Handlers,
	w http.ResponseWriter,
	r *http.Request,
	command string,
	start time.Time,
	res result.Result[V, E],
	fault error,
	status int,
	view func(V) any,
) {
	if fault != nil {
		h.fault(w, r, command, start, fault)
		return
	}
	ctx := r.Context()
	result.Match(res,
		func(v V) result.Unit {
			h.record(ctx, command, telemetry.OutcomeSuccess, "", start)
			if view == nil {
				httpx.NoContent(w)
			} else {
				httpx.JSON(w, status, view(v))
			}
			return result.Unit{}
		},
		func(e E) result.Unit {
			kind := domainerr.KindOf(e)
			h.record(ctx, command, telemetry.OutcomeRejected, string(kind), start)
			if kind == domainerr.KindUnknown {
				h.log.ErrorContext(ctx, "command failed", "command", command, "error", e)
				telemetry.CaptureFault(ctx, e)
			} else {
				h.log.DebugContext(ctx, "command rejected", "command", command, "kind", kind, "error", e)
			}
			errhttp.WriteDomainError(w, e)
			return result.Unit{}
		},
	)
}

func (h *Handlers) fault(w http.ResponseWriter, r *http.Request, command string, start time.Time, err error) {
	ctx := r.Context()
	h.record(ctx, command, telemetry.OutcomeFault, "", start)
	if errors.Is(err, context.Canceled) {
		h.log.WarnContext(ctx, "request cancelled", "command", command)
	} else {
		h.log.ErrorContext(ctx, "command fault", "command", command, "error", err)
		telemetry.CaptureFault(ctx, err)
	}
	errhttp.WriteError(w, err)
}

// readFault writes a failed query. Reads are not counted as commands.
func (h *Handlers) readFault(w http.ResponseWriter, r *http.Request, what string, err error) {
	ctx := r.Context()
	if !errors.Is(err, context.Canceled) {
		h.log.ErrorContext(ctx, "read failed", "read", what, "error", err)
		telemetry.CaptureFault(ctx, err)
	}
	errhttp.WriteError(w, err)
}

func (h *Handlers) record(ctx context.Context, command, outcome, kind string, start time.Time) {
	if h.metrics == nil {
		return
	}
	h.metrics.Record(ctx, command, outcome, kind, time.Since(start))
}
