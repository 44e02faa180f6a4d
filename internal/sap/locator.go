package sap

import (
	"strings"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// FindElements returns the identifiers of every widget whose id contains
// fragment as a substring, in depth-first parent-before-child order.
// Path-shaped fragments get the canonical window/user-area defaults
// prepended first (see model.NormalizeID).
//
// The search runs over a freshly captured tree snapshot; when the engine
// cannot serialize one, it falls back to live recursive descent over the
// session's child collections.
func (s *Session) FindElements(fragment string) ([]string, error) {
	fragment = model.NormalizeID(fragment)

	data, err := s.handle.ObjectTree()
	if err != nil {
		return s.findLive(fragment)
	}
	root, err := model.ParseTree(data)
	if err != nil {
		return nil, err
	}
	return model.SearchTree(*root, fragment), nil
}

// findLive walks the live widget tree. A child collection that fails to
// enumerate yields no further children from that node; traversal continues
// elsewhere, so one malformed subtree cannot abort the whole search.
func (s *Session) findLive(fragment string) ([]string, error) {
	windows, err := s.handle.Children()
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, w := range windows {
		searchLive(w, fragment, &ids)
	}
	return ids, nil
}

func searchLive(c scripting.Component, fragment string, ids *[]string) {
	if id, err := c.ID(); err == nil && strings.Contains(id, fragment) {
		*ids = append(*ids, id)
	}
	children, err := c.Children()
	if err != nil {
		return
	}
	for _, child := range children {
		searchLive(child, fragment, ids)
	}
}

// FindElement resolves a fragment expected to identify a single widget and
// returns its live handle. Zero matches is a NotFoundError. More than one
// match is an AmbiguousMatchError unless allowMultiple is set, in which case
// the first match (in traversal order) is used.
func (s *Session) FindElement(fragment string, allowMultiple bool) (scripting.Component, error) {
	ids, err := s.FindElements(fragment)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, &NotFoundError{Fragment: fragment}
	}
	if len(ids) > 1 && !allowMultiple {
		return nil, &AmbiguousMatchError{Fragment: fragment, Matches: ids}
	}
	return s.handle.FindByID(ids[0])
}

// Tree returns the session's widget tree snapshot.
func (s *Session) Tree() (*model.Widget, error) {
	data, err := s.handle.ObjectTree()
	if err != nil {
		return nil, err
	}
	return model.ParseTree(data)
}
