package keymap

import (
	"maps"
	"slices"

	"github.com/dshills/marksearch/internal/input"
)

var namedActions = map[string]input.Action{
	// Mark and selection.
	"set_mark":                  input.NewAction(input.CmdSetMark),
	"clear_selection":           input.NewAction(input.CmdClearSelection),
	"reverse_selection":         input.NewAction(input.CmdReverseSelection),
	"expand_selection_to_lines": input.NewAction(input.CmdExpandSelectionToLines),
	"cycle_mark_prev":           input.NewAction(input.CmdCycleMarkPrev),
	"cycle_mark_next":           input.NewAction(input.CmdCycleMarkNext),

	// Search.
	"incremental_search":                search(input.CmdIncrementalSearch, true),
	"incremental_search_backward":       search(input.CmdIncrementalSearch, false),
	"incremental_search_again":          search(input.CmdIncrementalSearchAgain, true),
	"incremental_search_again_backward": search(input.CmdIncrementalSearchAgain, false),

	// Movement.
	"forward_char":        input.Move(input.ByCharacters, true),
	"backward_char":       input.Move(input.ByCharacters, false),
	"forward_word":        input.Move(input.ByWords, true),
	"backward_word":       input.Move(input.ByWords, false),
	"next_line":           input.Move(input.ByLines, true),
	"previous_line":       input.Move(input.ByLines, false),
	"scroll_up":           input.Move(input.ByPages, true),
	"scroll_down":         input.Move(input.ByPages, false),
	"beginning_of_line":   input.MoveTo(input.ToLineStart),
	"end_of_line":         input.MoveTo(input.ToLineEnd),
	"beginning_of_buffer": input.MoveTo(input.ToBufStart),
	"end_of_buffer":       input.MoveTo(input.ToBufEnd),

	// Editing.
	"copy":            input.NewAction(input.CmdCopy),
	"indent":          input.NewAction(input.CmdIndent),
	"unindent":        input.NewAction(input.CmdUnindent),
	"swap_line_up":    input.NewAction(input.CmdSwapLineUp),
	"swap_line_down":  input.NewAction(input.CmdSwapLineDown),
	"delete_backward": input.NewAction(input.CmdDeleteLeft),
	"newline":         input.Insert("\n"),
}

func search(cmd input.Command, forward bool) input.Action {
	return input.Action{Name: cmd, Args: input.ActionArgs{Forward: forward}}
}

// ActionByName returns the action registered under name.
func ActionByName(name string) (input.Action, bool) {
	a, ok := namedActions[name]
	return a, ok
}

// ActionNames returns all action names in sorted order.
func ActionNames() []string {
	return slices.Sorted(maps.Keys(namedActions))
}
