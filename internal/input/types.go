package input

import (
	"fmt"
	"sort"
	"strings"
)

// Command identifies a command by name.
type Command string

// Host commands the core inspects or executes through the host.
const (
	CmdMove         Command = "move"
	CmdMoveTo       Command = "move_to"
	CmdInsert       Command = "insert"
	CmdDeleteLeft   Command = "left_delete"
	CmdCopy         Command = "copy"
	CmdIndent       Command = "indent"
	CmdUnindent     Command = "unindent"
	CmdSwapLineUp   Command = "swap_line_up"
	CmdSwapLineDown Command = "swap_line_down"
)

// Commands exposed by the core for key bindings.
const (
	CmdSetMark                Command = "set_mark"
	CmdClearSelection         Command = "clear_selection"
	CmdReverseSelection       Command = "reverse_selection"
	CmdExpandSelectionToLines Command = "expand_selection_to_lines"
	CmdIncrementalSearch      Command = "incremental_search"
	CmdIncrementalSearchAgain Command = "incremental_search_again"
	CmdCycleMarkPrev          Command = "cycle_mark_prev"
	CmdCycleMarkNext          Command = "cycle_mark_next"
)

// String returns the command name.
func (c Command) String() string {
	return string(c)
}

// Unit is the granularity of a Move command.
type Unit string

// Movement units.
const (
	ByCharacters Unit = "characters"
	ByWords      Unit = "words"
	ByLines      Unit = "lines"
	ByPages      Unit = "pages"
)

// Destination is the target of a MoveTo command.
type Destination string

// MoveTo destinations.
const (
	ToLineStart Destination = "bol"
	ToLineEnd   Destination = "eol"
	ToBufStart  Destination = "bof"
	ToBufEnd    Destination = "eof"
)

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourcePlugin indicates the action originated from a plugin.
	SourcePlugin
	// SourceAPI indicates the action originated from an API call.
	SourceAPI
	// SourceReplay indicates the action was replayed after closing a prompt.
	SourceReplay
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourcePlugin:
		return "plugin"
	case SourceAPI:
		return "api"
	case SourceReplay:
		return "replay"
	default:
		return "unknown"
	}
}

// ActionArgs holds arguments for an action.
type ActionArgs struct {
	// By is the unit for Move.
	By Unit

	// To is the destination for MoveTo.
	To Destination

	// Forward is the direction for Move and for search commands.
	Forward bool

	// Extend asks the host to extend the selection instead of moving the cursor.
	Extend bool

	// Text for insert operations.
	Text string

	// Extra holds additional key-value pairs for extensibility.
	Extra map[string]any
}

// Get retrieves a value from Extra.
func (a ActionArgs) Get(key string) (any, bool) {
	if a.Extra == nil {
		return nil, false
	}
	v, ok := a.Extra[key]
	return v, ok
}

// GetString retrieves a string value from Extra.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from Extra.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// Action represents a command to be executed.
type Action struct {
	// Name is the command identifier.
	Name Command

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource

	// Count is the repeat count. Zero and one both mean once.
	Count int
}

// NewAction creates an action with no arguments.
func NewAction(name Command) Action {
	return Action{Name: name}
}

// Move creates a Move action.
func Move(by Unit, forward bool) Action {
	return Action{Name: CmdMove, Args: ActionArgs{By: by, Forward: forward}}
}

// MoveTo creates a MoveTo action.
func MoveTo(to Destination) Action {
	return Action{Name: CmdMoveTo, Args: ActionArgs{To: to}}
}

// Insert creates an Insert action.
func Insert(text string) Action {
	return Action{Name: CmdInsert, Args: ActionArgs{Text: text}}
}

// WithExtend returns a copy of the action with Extend set.
func (a Action) WithExtend(extend bool) Action {
	a.Args.Extend = extend
	return a
}

// WithSource returns a copy of the action with the given source.
func (a Action) WithSource(src ActionSource) Action {
	a.Source = src
	return a
}

// Times returns the effective repeat count.
func (a Action) Times() int {
	if a.Count < 1 {
		return 1
	}
	return a.Count
}

// Key returns a canonical string for the action's name and arguments.
// Two actions with equal keys behave identically.
func (a Action) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s{by=%s to=%s fwd=%t ext=%t text=%q n=%d",
		a.Name, a.Args.By, a.Args.To, a.Args.Forward, a.Args.Extend, a.Args.Text, a.Times())
	if len(a.Args.Extra) > 0 {
		keys := make([]string, 0, len(a.Args.Extra))
		for k := range a.Args.Extra {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, " %s=%v", k, a.Args.Extra[k])
		}
	}
	b.WriteByte('}')
	return b.String()
}

// String returns a short representation of the action.
func (a Action) String() string {
	return a.Key()
}
