package model

import "strings"

// SearchTree returns the identifiers of every node in the snapshot whose Id
// contains fragment as a substring. Matching is case-sensitive and
// unanchored. Traversal is depth-first, parent before children, children in
// original order, so the result order is deterministic.
func SearchTree(root Widget, fragment string) []string {
	var ids []string
	searchRecursive(root, fragment, &ids)
	return ids
}

func searchRecursive(node Widget, fragment string, ids *[]string) {
	if strings.Contains(node.Properties.ID, fragment) {
		*ids = append(*ids, node.Properties.ID)
	}
	for _, child := range node.Children {
		searchRecursive(child, fragment, ids)
	}
}

// topLevelAreas are the segments that may legally follow a window segment.
var topLevelAreas = []string{"usr", "tbar", "mbar", "titl", "sbar"}

// NormalizeID prepends canonical defaults to a path-shaped fragment so
// callers can omit the leading window and user-area segments:
//
//	"usr/txtNAME"    -> "wnd[0]/usr/txtNAME"
//	"tbar[0]/okcd"   -> "wnd[0]/tbar[0]/okcd"
//	"txtNAME/shell"  -> "wnd[0]/usr/txtNAME/shell"
//
// Bare fragments without a slash (e.g. "okcd") are returned unchanged: they
// are substring probes, and forcing a prefix onto them would wrongly exclude
// widgets outside the user area.
func NormalizeID(fragment string) string {
	if !strings.Contains(fragment, "/") {
		return fragment
	}
	if strings.HasPrefix(fragment, "wnd[") {
		return fragment
	}
	first := fragment[:strings.Index(fragment, "/")]
	for _, area := range topLevelAreas {
		if first == area || strings.HasPrefix(first, area+"[") {
			return "wnd[0]/" + fragment
		}
	}
	return "wnd[0]/usr/" + fragment
}
