package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/marksearch/internal/input"
	"github.com/dshills/marksearch/internal/input/keymap"
)

// ModuleName is the global table scripts use.
const ModuleName = "ms"

// Target is the editor state a script acts on, usually the active window.
type Target interface {
	// Run dispatches an action.
	Run(action input.Action) error

	// Mark returns the mark offset of the active view, if one is set.
	Mark() (int, bool)

	// MarkActive reports whether the selection is anchored at the mark.
	MarkActive() bool

	// Bind adds a key binding to the script keymap.
	Bind(keys, action string) error
}

// Module implements the ms API module.
type Module struct {
	target Target
}

// NewModule creates a module acting on target.
func NewModule(target Target) *Module {
	return &Module{target: target}
}

// Register installs the module into s.
func (m *Module) Register(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"set_mark":          m.named("set_mark"),
		"clear_selection":   m.named("clear_selection"),
		"reverse_selection": m.named("reverse_selection"),
		"expand_to_lines":   m.named("expand_selection_to_lines"),
		"isearch":           m.search(input.CmdIncrementalSearch),
		"isearch_again":     m.search(input.CmdIncrementalSearchAgain),
		"cycle_mark":        m.cycleMark,
		"mark":              m.mark,
		"is_mark_active":    m.isMarkActive,
		"run":               m.run,
		"bind":              m.bind,
		"actions":           m.actions,
	})
}

func (m *Module) dispatch(L *lua.LState, a input.Action) {
	if err := m.target.Run(a.WithSource(input.SourcePlugin)); err != nil {
		L.RaiseError("%s: %v", a.Name, err)
	}
}

// named returns a function running the action registered under name.
func (m *Module) named(name string) lua.LGFunction {
	a, _ := keymap.ActionByName(name)
	return func(L *lua.LState) int {
		m.dispatch(L, a)
		return 0
	}
}

// search returns isearch(forward) or isearch_again(forward).
// forward defaults to true.
func (m *Module) search(cmd input.Command) lua.LGFunction {
	return func(L *lua.LState) int {
		forward := L.OptBool(1, true)
		m.dispatch(L, input.Action{Name: cmd, Args: input.ActionArgs{Forward: forward}})
		return 0
	}
}

// cycle_mark(prev) jumps to the previous mark, or the next when prev is false.
func (m *Module) cycleMark(L *lua.LState) int {
	cmd := input.CmdCycleMarkNext
	if L.OptBool(1, true) {
		cmd = input.CmdCycleMarkPrev
	}
	m.dispatch(L, input.NewAction(cmd))
	return 0
}

// mark() -> offset or nil
func (m *Module) mark(L *lua.LState) int {
	if off, ok := m.target.Mark(); ok {
		L.Push(lua.LNumber(off))
	} else {
		L.Push(lua.LNil)
	}
	return 1
}

// is_mark_active() -> bool
func (m *Module) isMarkActive(L *lua.LState) int {
	L.Push(lua.LBool(m.target.MarkActive()))
	return 1
}

// run(name [, count]) runs any named action.
func (m *Module) run(L *lua.LState) int {
	name := L.CheckString(1)
	a, ok := keymap.ActionByName(name)
	if !ok {
		L.ArgError(1, "unknown action "+name)
		return 0
	}
	a.Count = L.OptInt(2, 1)
	m.dispatch(L, a)
	return 0
}

// bind(keys, action)
func (m *Module) bind(L *lua.LState) int {
	keys := L.CheckString(1)
	action := L.CheckString(2)
	if err := m.target.Bind(keys, action); err != nil {
		L.RaiseError("bind %s: %v", keys, err)
	}
	return 0
}

// actions() -> list of action names
func (m *Module) actions(L *lua.LState) int {
	t := L.NewTable()
	for _, name := range keymap.ActionNames() {
		t.Append(lua.LString(name))
	}
	L.Push(t)
	return 1
}
