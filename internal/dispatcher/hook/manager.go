package hook

import (
	"slices"
	"sort"
	"sync"

	"github.com/dshills/marksearch/internal/dispatcher/execctx"
	"github.com/dshills/marksearch/internal/dispatcher/handler"
	"github.com/dshills/marksearch/internal/host"
	"github.com/dshills/marksearch/internal/input"
)

// Manager manages dispatch and notification hooks with priority-based
// ordering.
type Manager struct {
	mu        sync.RWMutex
	preHooks  []PreDispatchHook
	postHooks []PostDispatchHook
	modified  []ModifiedHook
	selection []SelectionHook
}

// NewManager creates a new hook manager.
func NewManager() *Manager {
	return &Manager{}
}

// register replaces a hook with the same name or appends h, keeping the
// list sorted with less.
func register[T Hook](list []T, h T, less func(a, b T) bool) []T {
	replaced := false
	for i, existing := range list {
		if existing.Name() == h.Name() {
			list[i] = h
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, h)
	}
	sort.SliceStable(list, func(i, j int) bool { return less(list[i], list[j]) })
	return list
}

// unregister removes the hook named name.
func unregister[T Hook](list []T, name string) ([]T, bool) {
	for i, h := range list {
		if h.Name() == name {
			return slices.Delete(list, i, i+1), true
		}
	}
	return list, false
}

func higherFirst[T Hook](a, b T) bool { return a.Priority() > b.Priority() }

func lowerFirst[T Hook](a, b T) bool { return a.Priority() < b.Priority() }

// RegisterPre adds a pre-dispatch hook.
// Hooks are sorted by priority (higher runs first).
func (m *Manager) RegisterPre(h PreDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preHooks = register(m.preHooks, h, higherFirst[PreDispatchHook])
}

// RegisterPost adds a post-dispatch hook.
// Hooks are sorted by priority (higher runs last for post-hooks).
func (m *Manager) RegisterPost(h PostDispatchHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postHooks = register(m.postHooks, h, lowerFirst[PostDispatchHook])
}

// RegisterModified adds a buffer modification hook (higher runs first).
func (m *Manager) RegisterModified(h ModifiedHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modified = register(m.modified, h, higherFirst[ModifiedHook])
}

// RegisterSelection adds a selection change hook (higher runs first).
func (m *Manager) RegisterSelection(h SelectionHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.selection = register(m.selection, h, higherFirst[SelectionHook])
}

// Register adds h to every list whose interface it implements.
func (m *Manager) Register(h Hook) {
	if pre, ok := h.(PreDispatchHook); ok {
		m.RegisterPre(pre)
	}
	if post, ok := h.(PostDispatchHook); ok {
		m.RegisterPost(post)
	}
	if mod, ok := h.(ModifiedHook); ok {
		m.RegisterModified(mod)
	}
	if sel, ok := h.(SelectionHook); ok {
		m.RegisterSelection(sel)
	}
}

// UnregisterPre removes a pre-dispatch hook by name.
func (m *Manager) UnregisterPre(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.preHooks, ok = unregister(m.preHooks, name)
	return ok
}

// UnregisterPost removes a post-dispatch hook by name.
func (m *Manager) UnregisterPost(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	var ok bool
	m.postHooks, ok = unregister(m.postHooks, name)
	return ok
}

// Unregister removes a hook by name from every list.
func (m *Manager) Unregister(name string) bool {
	pre := m.UnregisterPre(name)
	post := m.UnregisterPost(name)

	m.mu.Lock()
	defer m.mu.Unlock()
	var mod, sel bool
	m.modified, mod = unregister(m.modified, name)
	m.selection, sel = unregister(m.selection, name)
	return pre || post || mod || sel
}

// RunPreDispatch runs all pre-dispatch hooks in priority order.
// Returns false if any hook cancels the action.
func (m *Manager) RunPreDispatch(action *input.Action, ctx *execctx.ExecutionContext) bool {
	m.mu.RLock()
	hooks := slices.Clone(m.preHooks)
	m.mu.RUnlock()

	for _, h := range hooks {
		if !h.PreDispatch(action, ctx) {
			return false
		}
	}
	return true
}

// RunPostDispatch runs all post-dispatch hooks from lowest to highest priority.
// This ordering allows higher priority hooks to see the final/modified results.
func (m *Manager) RunPostDispatch(action *input.Action, ctx *execctx.ExecutionContext, result *handler.Result) {
	m.mu.RLock()
	hooks := slices.Clone(m.postHooks)
	m.mu.RUnlock()

	for _, h := range hooks {
		h.PostDispatch(action, ctx, result)
	}
}

// RunModified runs all modification hooks in priority order.
func (m *Manager) RunModified(v host.View) {
	m.mu.RLock()
	hooks := slices.Clone(m.modified)
	m.mu.RUnlock()

	for _, h := range hooks {
		h.OnModified(v)
	}
}

// RunSelectionModified runs all selection hooks in priority order.
func (m *Manager) RunSelectionModified(v host.View) {
	m.mu.RLock()
	hooks := slices.Clone(m.selection)
	m.mu.RUnlock()

	for _, h := range hooks {
		h.OnSelectionModified(v)
	}
}

// PreHookCount returns the number of registered pre-dispatch hooks.
func (m *Manager) PreHookCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.preHooks)
}

// PostHookCount returns the number of registered post-dispatch hooks.
func (m *Manager) PostHookCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.postHooks)
}

// PreHookNames returns the names of all pre-dispatch hooks in order.
func (m *Manager) PreHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return names(m.preHooks)
}

// PostHookNames returns the names of all post-dispatch hooks in order.
func (m *Manager) PostHookNames() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return names(m.postHooks)
}

func names[T Hook](list []T) []string {
	out := make([]string, len(list))
	for i, h := range list {
		out[i] = h.Name()
	}
	return out
}

// Clear removes all hooks.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preHooks = nil
	m.postHooks = nil
	m.modified = nil
	m.selection = nil
}
