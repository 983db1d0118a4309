package keymap

// DefaultPriority is the priority of the built-in keymap.
const DefaultPriority = 0

// LoadDefaults loads the default keymap into the registry.
func LoadDefaults(r *Registry) error {
	return r.Register(Default())
}

// Default returns the emacs bindings for transient mark mode and
// incremental search.
func Default() *Keymap {
	return &Keymap{
		Name:     "default",
		Priority: DefaultPriority,
		Source:   "default",
		Bindings: []Binding{
			// Mark
			{Keys: "C-SPC", Action: "set_mark", Description: "Set the mark at the cursor", Category: CategoryMark},
			{Keys: "C-g", Action: "clear_selection", Description: "Deactivate the mark", Category: CategoryMark},
			{Keys: "C-x C-x", Action: "reverse_selection", Description: "Exchange cursor and mark", Category: CategoryMark},
			{Keys: "C-x C-l", Action: "expand_selection_to_lines", Description: "Extend the region to whole lines", Category: CategoryMark},
			{Keys: "C-u C-SPC", Action: "cycle_mark_prev", Description: "Jump to the previous mark", Category: CategoryMark},
			{Keys: "C-x C-SPC", Action: "cycle_mark_next", Description: "Jump to the next mark", Category: CategoryMark},

			// Search
			{Keys: "C-s", Action: "incremental_search_again", Description: "Search forward, or repeat", Category: CategorySearch},
			{Keys: "C-r", Action: "incremental_search_again_backward", Description: "Search backward, or repeat", Category: CategorySearch},
			{Keys: "C-M-s", Action: "incremental_search", Description: "Start a fresh forward search", Category: CategorySearch},
			{Keys: "C-M-r", Action: "incremental_search_backward", Description: "Start a fresh backward search", Category: CategorySearch},

			// Movement
			{Keys: "C-f", Action: "forward_char", Description: "Move forward a character", Category: CategoryMovement},
			{Keys: "C-b", Action: "backward_char", Description: "Move backward a character", Category: CategoryMovement},
			{Keys: "<right>", Action: "forward_char", Description: "Move forward a character", Category: CategoryMovement},
			{Keys: "<left>", Action: "backward_char", Description: "Move backward a character", Category: CategoryMovement},
			{Keys: "M-f", Action: "forward_word", Description: "Move forward a word", Category: CategoryMovement},
			{Keys: "M-b", Action: "backward_word", Description: "Move backward a word", Category: CategoryMovement},
			{Keys: "C-<right>", Action: "forward_word", Description: "Move forward a word", Category: CategoryMovement},
			{Keys: "C-<left>", Action: "backward_word", Description: "Move backward a word", Category: CategoryMovement},
			{Keys: "C-n", Action: "next_line", Description: "Move to the next line", Category: CategoryMovement},
			{Keys: "C-p", Action: "previous_line", Description: "Move to the previous line", Category: CategoryMovement},
			{Keys: "<down>", Action: "next_line", Description: "Move to the next line", Category: CategoryMovement},
			{Keys: "<up>", Action: "previous_line", Description: "Move to the previous line", Category: CategoryMovement},
			{Keys: "C-v", Action: "scroll_up", Description: "Move down a page", Category: CategoryMovement},
			{Keys: "M-v", Action: "scroll_down", Description: "Move up a page", Category: CategoryMovement},
			{Keys: "<next>", Action: "scroll_up", Description: "Move down a page", Category: CategoryMovement},
			{Keys: "<prior>", Action: "scroll_down", Description: "Move up a page", Category: CategoryMovement},
			{Keys: "C-a", Action: "beginning_of_line", Description: "Move to line start", Category: CategoryMovement},
			{Keys: "C-e", Action: "end_of_line", Description: "Move to line end", Category: CategoryMovement},
			{Keys: "<home>", Action: "beginning_of_line", Description: "Move to line start", Category: CategoryMovement},
			{Keys: "<end>", Action: "end_of_line", Description: "Move to line end", Category: CategoryMovement},
			{Keys: "M-<", Action: "beginning_of_buffer", Description: "Move to buffer start", Category: CategoryMovement},
			{Keys: "M->", Action: "end_of_buffer", Description: "Move to buffer end", Category: CategoryMovement},

			// Editing
			{Keys: "M-w", Action: "copy", Description: "Copy the region", Category: CategoryEditing},
			{Keys: "TAB", Action: "indent", Description: "Indent the region", Category: CategoryEditing},
			{Keys: "<backtab>", Action: "unindent", Description: "Unindent the region", Category: CategoryEditing},
			{Keys: "M-<up>", Action: "swap_line_up", Description: "Move lines up", Category: CategoryEditing},
			{Keys: "M-<down>", Action: "swap_line_down", Description: "Move lines down", Category: CategoryEditing},
			{Keys: "DEL", Action: "delete_backward", Description: "Delete the previous character", Category: CategoryEditing},
			{Keys: "RET", Action: "newline", Description: "Insert a newline", Category: CategoryEditing},
		},
	}
}
