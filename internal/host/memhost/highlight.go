package memhost

import (
	"cmp"
	"sort"

	"github.com/rdleal/intervalst/interval"

	"github.com/dshills/marksearch/internal/engine/cursor"
	"github.com/dshills/marksearch/internal/host"
)

type decoration struct {
	name  string
	start int
	end   int
}

type highlight struct {
	spans []cursor.Span
	style host.Style
}

// highlightStore keeps named highlights and an interval tree over all of
// their spans for offset lookups.
type highlightStore struct {
	byName map[string]highlight
	tree   *interval.MultiValueSearchTree[decoration, int]
}

func newHighlightStore() *highlightStore {
	s := &highlightStore{byName: make(map[string]highlight)}
	s.rebuild()
	return s
}

func (s *highlightStore) add(name string, spans []cursor.Span, style host.Style) {
	cp := make([]cursor.Span, len(spans))
	copy(cp, spans)
	s.byName[name] = highlight{spans: cp, style: style}
	s.rebuild()
}

func (s *highlightStore) remove(name string) {
	if _, ok := s.byName[name]; !ok {
		return
	}
	delete(s.byName, name)
	s.rebuild()
}

func (s *highlightStore) get(name string) ([]cursor.Span, host.Style, bool) {
	h, ok := s.byName[name]
	if !ok {
		return nil, host.Style{}, false
	}
	cp := make([]cursor.Span, len(h.spans))
	copy(cp, h.spans)
	return cp, h.style, true
}

func (s *highlightStore) at(offset int) []string {
	all, _ := s.tree.AllIntersections(offset, offset+1)
	seen := make(map[string]bool)
	var names []string
	for _, d := range all {
		if offset < d.start || offset >= d.end || seen[d.name] {
			continue
		}
		seen[d.name] = true
		names = append(names, d.name)
	}
	sort.Strings(names)
	return names
}

// rebuild recreates the tree. Zero-length spans are not drawn.
func (s *highlightStore) rebuild() {
	s.tree = interval.NewMultiValueSearchTree[decoration](func(a, b int) int {
		return cmp.Compare(a, b)
	})
	for name, h := range s.byName {
		for _, sp := range h.spans {
			if sp.IsEmpty() {
				continue
			}
			s.tree.Insert(sp.Begin(), sp.End(), decoration{name: name, start: sp.Begin(), end: sp.End()})
		}
	}
}
