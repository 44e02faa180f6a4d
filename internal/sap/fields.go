package sap

import (
	"fmt"
	"strings"
)

// UpdateFields splits idents and values on whitespace and applies them
// pairwise; see UpdateFieldList.
func (s *Session) UpdateFields(idents, values string) error {
	return s.UpdateFieldList(strings.Fields(idents), strings.Fields(values))
}

// UpdateFieldList sets each identified input field to the corresponding
// value, in input order. Every ident must resolve to exactly one widget.
// Mismatched lengths fail with an ArityMismatchError before any widget is
// touched; a failure partway through leaves earlier fields already updated.
func (s *Session) UpdateFieldList(idents, values []string) error {
	if len(idents) != len(values) {
		return &ArityMismatchError{Fields: len(idents), Values: len(values)}
	}
	for i, ident := range idents {
		element, err := s.FindElement(ident, false)
		if err != nil {
			return fmt.Errorf("field %q: %w", ident, err)
		}
		if err := element.SetText(values[i]); err != nil {
			return fmt.Errorf("field %q: %w", ident, err)
		}
	}
	return nil
}
