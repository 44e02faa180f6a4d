//go:build windows

package ole

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// Component wraps a COM widget object.
type Component struct {
	disp *ole.IDispatch
}

// newComponent wraps a dispatch and upgrades it to the richest interface its
// type tag supports, so callers can assert scripting.Window, TableControl or
// GridView. The tag read is best-effort: a plain Component is returned when
// it fails.
func newComponent(disp *ole.IDispatch) scripting.Component {
	base := &Component{disp: disp}
	typeTag, err := base.Type()
	if err != nil {
		return base
	}
	switch typeTag {
	case "GuiFrameWindow", "GuiMainWindow", "GuiModalWindow":
		return &window{Component: base}
	case "GuiTableControl":
		return &tableControl{Component: base}
	case "GuiShell":
		return &gridView{Component: base}
	default:
		return base
	}
}

func (c *Component) ID() (string, error)   { return getString(c.disp, "Id") }
func (c *Component) Type() (string, error) { return getString(c.disp, "Type") }
func (c *Component) Text() (string, error) { return getString(c.disp, "Text") }

func (c *Component) SetText(text string) error {
	v, err := oleutil.PutProperty(c.disp, "Text", text)
	if err != nil {
		return fmt.Errorf("set text: %w", err)
	}
	v.Clear()
	return nil
}

func (c *Component) Children() ([]scripting.Component, error) {
	collVar, err := oleutil.GetProperty(c.disp, "Children")
	if err != nil {
		return nil, fmt.Errorf("children: %w", err)
	}
	defer collVar.Clear()
	coll := collVar.ToIDispatch()
	if coll == nil {
		return nil, fmt.Errorf("children: nil collection")
	}

	var children []scripting.Component
	err = eachItem(coll, func(item *ole.IDispatch) error {
		item.AddRef()
		children = append(children, newComponent(item))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return children, nil
}

// window adds frame-window operations.
type window struct {
	*Component
}

func (w *window) SendVKey(key int) error {
	v, err := oleutil.CallMethod(w.disp, "SendVKey", key)
	if err != nil {
		return fmt.Errorf("send vkey %d: %w", key, err)
	}
	v.Clear()
	return nil
}

func (w *window) Close() error {
	v, err := oleutil.CallMethod(w.disp, "Close")
	if err != nil {
		return fmt.Errorf("close window: %w", err)
	}
	v.Clear()
	return nil
}

// tableControl adds fixed-grid operations.
type tableControl struct {
	*Component
}

func (t *tableControl) RowCount() (int, error) {
	return getInt(t.disp, "RowCount")
}

func (t *tableControl) GetCell(row, column int) (scripting.Component, error) {
	disp, err := callDispatch(t.disp, "GetCell", row, column)
	if err != nil {
		return nil, err
	}
	return newComponent(disp), nil
}

// gridView adds virtualized-grid operations. Shells that do not host a grid
// view return dispatch errors from these, which the extractor classifies
// away before calling them.
type gridView struct {
	*Component
}

func (g *gridView) RowCount() (int, error) {
	return getInt(g.disp, "RowCount")
}

func (g *gridView) ColumnOrder() ([]string, error) {
	collVar, err := oleutil.GetProperty(g.disp, "ColumnOrder")
	if err != nil {
		return nil, fmt.Errorf("column order: %w", err)
	}
	defer collVar.Clear()
	coll := collVar.ToIDispatch()
	if coll == nil {
		return nil, fmt.Errorf("column order: nil collection")
	}

	var columns []string
	count, err := getInt(coll, "Count")
	if err != nil {
		return nil, err
	}
	for i := 0; i < count; i++ {
		v, err := oleutil.CallMethod(coll, "Item", i)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i, err)
		}
		columns = append(columns, v.ToString())
		v.Clear()
	}
	return columns, nil
}

func (g *gridView) SetFirstVisibleRow(row int) error {
	v, err := oleutil.PutProperty(g.disp, "FirstVisibleRow", row)
	if err != nil {
		return fmt.Errorf("set first visible row %d: %w", row, err)
	}
	v.Clear()
	return nil
}

func (g *gridView) SetFirstVisibleColumn(column string) error {
	v, err := oleutil.PutProperty(g.disp, "FirstVisibleColumn", column)
	if err != nil {
		return fmt.Errorf("set first visible column %q: %w", column, err)
	}
	v.Clear()
	return nil
}

func (g *gridView) CellValue(row int, column string) (string, error) {
	v, err := oleutil.CallMethod(g.disp, "GetCellValue", row, column)
	if err != nil {
		return "", fmt.Errorf("cell (%d, %q): %w", row, column, err)
	}
	defer v.Clear()
	return v.ToString(), nil
}
