package marksel

import (
	"log/slog"

	"github.com/dshills/marksearch/internal/input"
)

// Policy classifies commands for interception.
type Policy struct {
	// Movement commands are coerced to extend while the mark is active.
	Movement map[input.Command]bool

	// Structural commands keep the mark across the edit they cause.
	Structural map[input.Command]bool

	// CollapseAfter commands collapse the selection and clear the mark once
	// they complete.
	CollapseAfter map[input.Command]bool
}

// NewPolicy builds a policy from command names.
func NewPolicy(movement, structural, collapseAfter []string) Policy {
	return Policy{
		Movement:      commandSet(movement),
		Structural:    commandSet(structural),
		CollapseAfter: commandSet(collapseAfter),
	}
}

// DefaultPolicy returns the emacs-like classification.
func DefaultPolicy() Policy {
	return NewPolicy(
		[]string{string(input.CmdMove), string(input.CmdMoveTo)},
		[]string{
			string(input.CmdSwapLineUp), string(input.CmdSwapLineDown),
			string(input.CmdIndent), string(input.CmdUnindent),
		},
		[]string{string(input.CmdCopy)},
	)
}

func commandSet(names []string) map[input.Command]bool {
	set := make(map[input.Command]bool, len(names))
	for _, n := range names {
		set[input.Command(n)] = true
	}
	return set
}

// Options configures MarkSel instances.
type Options struct {
	Policy   Policy
	RingSize int
	Logger   *slog.Logger
}

// DefaultOptions returns the default options.
func DefaultOptions() Options {
	return Options{
		Policy:   DefaultPolicy(),
		RingSize: DefaultRingSize,
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}
