package sap

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// Table extracts the 2-D textual content of the table widget identified by
// ident (first match wins when the fragment is not unique). The widget kind
// is classified from its type tag, falling back to the display-text marker
// for shell-hosted grids. Rows from which nothing could be read are dropped.
func (s *Session) Table(ident string) (model.TableData, error) {
	element, err := s.FindElement(ident, true)
	if err != nil {
		return nil, err
	}

	typeTag, err := element.Type()
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", ident, err)
	}
	var text string
	if typeTag == model.TypeShell {
		// Shells carry no discrete tag for their content; the display
		// text is the only classification signal.
		if text, err = element.Text(); err != nil {
			return nil, fmt.Errorf("table %q: %w", ident, err)
		}
	}

	var rows model.TableData
	switch model.ClassifyTable(typeTag, text) {
	case model.KindTableControl:
		control, ok := element.(scripting.TableControl)
		if !ok {
			return nil, &UnsupportedTypeError{TypeTag: typeTag, Text: text}
		}
		rows, err = extractTableControl(control)
	case model.KindGridView:
		grid, ok := element.(scripting.GridView)
		if !ok {
			return nil, &UnsupportedTypeError{TypeTag: typeTag, Text: text}
		}
		rows, err = extractGridView(grid)
	default:
		return nil, &UnsupportedTypeError{TypeTag: typeTag, Text: text}
	}
	if err != nil {
		return nil, fmt.Errorf("table %q: %w", ident, err)
	}

	return model.DropEmptyRows(rows), nil
}

// extractTableControl reads a fixed grid. The control does not expose a
// column count, so each row is scanned by probing cell access from column 0
// until a probe fails; failed probes are cheap dispatch errors with no UI
// side effect. A cell that fails to read ends that row's scan, so rows may
// be ragged.
func extractTableControl(control scripting.TableControl) (model.TableData, error) {
	rowCount, err := control.RowCount()
	if err != nil {
		return nil, err
	}

	rows := make(model.TableData, 0, rowCount)
	for row := 0; row < rowCount; row++ {
		var content []string
		for column := 0; ; column++ {
			cell, err := control.GetCell(row, column)
			if err != nil {
				break
			}
			text, err := cell.Text()
			if err != nil {
				break
			}
			content = append(content, text)
		}
		rows = append(rows, content)
	}
	return rows, nil
}

// gridScrollStride is how often the visible window is repositioned while
// reading a virtualized grid: at every 3rd row index and every 3rd
// column-order position, matching the grid's materialization window.
const gridScrollStride = 3

// extractGridView reads a virtualized grid. Only a window of cells is
// materialized at a time, so the extractor advances firstVisibleRow and
// firstVisibleColumn as it goes. Columns follow the widget's own reported
// order. Per-cell failures (including column repositioning) are swallowed:
// the cell is omitted, not replaced with a placeholder.
func extractGridView(grid scripting.GridView) (model.TableData, error) {
	rowCount, err := grid.RowCount()
	if err != nil {
		return nil, err
	}
	columns, err := grid.ColumnOrder()
	if err != nil {
		return nil, err
	}

	rows := make(model.TableData, 0, rowCount)
	for row := 0; row < rowCount; row++ {
		if row%gridScrollStride == 0 {
			if err := grid.SetFirstVisibleRow(row); err != nil {
				return nil, fmt.Errorf("reposition to row %d: %w", row, err)
			}
		}
		var content []string
		for j, column := range columns {
			if j%gridScrollStride == 0 {
				if err := grid.SetFirstVisibleColumn(column); err != nil {
					continue
				}
			}
			value, err := grid.CellValue(row, column)
			if err != nil {
				continue
			}
			content = append(content, value)
		}
		rows = append(rows, content)
	}
	return rows, nil
}
