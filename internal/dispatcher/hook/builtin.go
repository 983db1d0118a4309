package hook

import (
	"log/slog"

	"github.com/dshills/marksearch/internal/dispatcher/execctx"
	"github.com/dshills/marksearch/internal/dispatcher/handler"
	"github.com/dshills/marksearch/internal/input"
)

// Standard hook priorities.
const (
	PriorityAudit      = 1000 // first before, last after
	PriorityCountLimit = 900
	PriorityCore       = 500 // mark bookkeeping
)

// AuditHook logs every dispatched command at Debug and failures at Error.
type AuditHook struct {
	logger *slog.Logger
}

// NewAuditHook creates an audit hook with the given logger.
func NewAuditHook(logger *slog.Logger) *AuditHook {
	return &AuditHook{logger: logger}
}

// Name implements Hook.
func (h *AuditHook) Name() string { return "audit" }

// Priority implements Hook.
func (h *AuditHook) Priority() int { return PriorityAudit }

// PreDispatch logs the action being dispatched.
func (h *AuditHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.logger != nil {
		h.logger.Debug("dispatch start",
			"action", action.Name.String(),
			"count", action.Times(),
			"rewrites", ctx.Rewrites,
			"prompt", ctx.InPrompt,
		)
	}
	return true
}

// PostDispatch logs the dispatch result.
func (h *AuditHook) PostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	if h.logger == nil {
		return
	}
	if result.IsError() {
		h.logger.Error("dispatch failed",
			"action", action.Name.String(),
			"error", result.Error,
		)
		return
	}
	h.logger.Debug("dispatch complete",
		"action", action.Name.String(),
		"status", result.Status.String(),
	)
}

// CountLimitHook clamps repeat counts, so a prefix like C-u 99999 cannot
// replay a movement unbounded.
type CountLimitHook struct {
	maxCount int
}

// NewCountLimitHook creates a count limit hook.
func NewCountLimitHook(maxCount int) *CountLimitHook {
	return &CountLimitHook{maxCount: maxCount}
}

// Name implements Hook.
func (h *CountLimitHook) Name() string { return "count-limit" }

// Priority implements Hook.
func (h *CountLimitHook) Priority() int { return PriorityCountLimit }

// PreDispatch limits the repeat count.
func (h *CountLimitHook) PreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	if h.maxCount <= 0 {
		return true
	}
	if action.Count > h.maxCount {
		action.Count = h.maxCount
	}
	if ctx.Count > h.maxCount {
		ctx.Count = h.maxCount
	}
	return true
}
