package model

import "strings"

// FilterByType returns the flat widgets whose Type is in types. An empty
// types list keeps everything.
func FilterByType(widgets []FlatWidget, types []string) []FlatWidget {
	if len(types) == 0 {
		return widgets
	}
	typeSet := make(map[string]bool, len(types))
	for _, t := range types {
		typeSet[t] = true
	}
	var result []FlatWidget
	for _, w := range widgets {
		if typeSet[w.Type] {
			result = append(result, w)
		}
	}
	return result
}

// FilterByText returns the flat widgets whose Id or Text contains text
// (case-insensitive). An empty text keeps everything.
func FilterByText(widgets []FlatWidget, text string) []FlatWidget {
	if text == "" {
		return widgets
	}
	textLower := strings.ToLower(text)
	var result []FlatWidget
	for _, w := range widgets {
		if strings.Contains(strings.ToLower(w.ID), textLower) ||
			strings.Contains(strings.ToLower(w.Text), textLower) {
			result = append(result, w)
		}
	}
	return result
}
