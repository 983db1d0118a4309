package isearch

import (
	"log/slog"

	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
)

// Highlight names.
const (
	FoundHighlight = "isearch.found"
	FocusHighlight = "isearch.focus"
	ExtraHighlight = "isearch.extra"
)

// DefaultStatusKey is the status slot used for match counts.
const DefaultStatusKey = "marksearch"

// Options configures sessions.
type Options struct {
	// IndirectCancelCommits makes a cancel caused by a replayed movement
	// command remember the query like a commit does.
	IndirectCancelCommits bool

	// RestoreOnEmptyQuery returns the selection to the cursor recorded at
	// open when the query is erased.
	RestoreOnEmptyQuery bool

	StatusKey string

	FoundStyle host.Style
	FocusStyle host.Style
	ExtraStyle host.Style

	// Movement commands typed into the prompt close the session and are
	// replayed against the view.
	Movement map[input.Command]bool

	Logger *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		IndirectCancelCommits: true,
		RestoreOnEmptyQuery:   true,
		StatusKey:             DefaultStatusKey,
		FoundStyle:            host.Style{Scope: FoundHighlight, Outline: true},
		FocusStyle:            host.Style{Scope: FocusHighlight},
		ExtraStyle:            host.Style{Scope: ExtraHighlight},
		Movement: map[input.Command]bool{
			input.CmdMove:   true,
			input.CmdMoveTo: true,
		},
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
