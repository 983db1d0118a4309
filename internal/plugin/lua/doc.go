// Package lua exposes the mark and search commands to Lua scripts.
//
// Scripts run in a gopher-lua state with only the base, table, string
// and math libraries. The global table ms acts on a Target, normally the
// editor's active window:
//
//	ms.set_mark()
//	ms.run("forward_word", 2)
//	if ms.is_mark_active() then ms.reverse_selection() end
//	ms.isearch(false)          -- backward
//	ms.bind("C-c m", "set_mark")
//
// Errors returned by the editor are raised as Lua errors and surface from
// DoString.
package lua
