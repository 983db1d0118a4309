package handler_test

import (
	"errors"
	"testing"

	"github.com/dshills/marksearch/internal/dispatcher/handler"
)

func TestResultStatus(t *testing.T) {
	tests := []struct {
		status   handler.ResultStatus
		expected string
	}{
		{handler.StatusOK, "ok"},
		{handler.StatusNoOp, "no-op"},
		{handler.StatusError, "error"},
		{handler.StatusCancelled, "cancelled"},
		{handler.StatusConsumed, "consumed"},
		{handler.ResultStatus(99), "unknown"},
	}

	for _, tc := range tests {
		if tc.status.String() != tc.expected {
			t.Errorf("ResultStatus(%d).String() = %q, want %q", tc.status, tc.status.String(), tc.expected)
		}
	}
}

func TestConstructors(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		result  handler.Result
		status  handler.ResultStatus
		message string
		err     bool
	}{
		{"success", handler.Success(), handler.StatusOK, "", false},
		{"success message", handler.SuccessWithMessage("done"), handler.StatusOK, "done", false},
		{"noop", handler.NoOp(), handler.StatusNoOp, "", false},
		{"noop message", handler.NoOpWithMessage("nothing"), handler.StatusNoOp, "nothing", false},
		{"error", handler.Error(errBoom), handler.StatusError, "", true},
		{"errorf", handler.Errorf("wrapped: %w", errBoom), handler.StatusError, "", true},
		{"cancelled message", handler.CancelledWithMessage("hook"), handler.StatusCancelled, "hook", false},
		{"consumed", handler.Consumed(nil), handler.StatusConsumed, "", false},
		{"consumed error", handler.Consumed(errBoom), handler.StatusError, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.result.Status != tt.status {
				t.Errorf("expected %v, got %v", tt.status, tt.result.Status)
			}
			if tt.result.Message != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, tt.result.Message)
			}
			if got := tt.result.Err() != nil; got != tt.err {
				t.Errorf("Err() != nil is %v, want %v", got, tt.err)
			}
			if tt.err && !errors.Is(tt.result.Err(), errBoom) {
				t.Errorf("expected error to wrap %v, got %v", errBoom, tt.result.Err())
			}
		})
	}
}

func TestErrIgnoresNonErrorStatus(t *testing.T) {
	r := handler.Result{Status: handler.StatusOK, Error: errors.New("stale")}
	if r.Err() != nil {
		t.Error("Err() should be nil unless the status is StatusError")
	}
}

func TestWithMessage(t *testing.T) {
	r := handler.NoOp().WithMessage("no mark")
	if r.Message != "no mark" || r.Status != handler.StatusNoOp {
		t.Errorf("unexpected result %+v", r)
	}
}
