package model

import "strings"

// TableData is the extracted 2-D textual content of a table widget: rows of
// cell text. Rows may be ragged when a fixed-grid row scan stopped early.
type TableData [][]string

// DropEmptyRows removes rows from which no cell could be extracted. Applied
// to every table kind before the result is returned.
func DropEmptyRows(rows TableData) TableData {
	result := make(TableData, 0, len(rows))
	for _, row := range rows {
		if len(row) > 0 {
			result = append(result, row)
		}
	}
	return result
}

// TableKind is the closed set of table widget kinds the extractor handles.
type TableKind int

const (
	// KindUnsupported is any widget that is not a recognized table.
	KindUnsupported TableKind = iota
	// KindTableControl is the fixed grid: all rows and columns are
	// addressable directly, but the column count must be probed.
	KindTableControl
	// KindGridView is the virtualized grid: only a visible window of cells
	// is materialized, so extraction must scroll as it reads.
	KindGridView
)

func (k TableKind) String() string {
	switch k {
	case KindTableControl:
		return "table-control"
	case KindGridView:
		return "grid-view"
	default:
		return "unsupported"
	}
}

// Widget class tags relevant to table classification.
const (
	TypeTableControl = "GuiTableControl"
	TypeShell        = "GuiShell"
)

// gridViewMarker identifies grid views hosted in a shell container. Shells
// carry no discrete type tag for their content, so the display text is the
// only signal; this is a deliberate heuristic, not hidden polymorphism.
const gridViewMarker = "GridViewCtrl"

// ClassifyTable maps a widget's type tag and display text to a TableKind.
func ClassifyTable(typeTag, text string) TableKind {
	switch typeTag {
	case TypeTableControl:
		return KindTableControl
	case TypeShell:
		if strings.Contains(text, gridViewMarker) {
			return KindGridView
		}
	}
	return KindUnsupported
}
