package sap

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/scripting/scriptingtest"
)

// tableSession builds a session whose user area holds one widget.
func tableSession(widget *scriptingtest.Widget) *scriptingtest.Session {
	fake := scriptingtest.NewSession("/app/con[0]/ses[0]")
	fake.Root.Kids = []*scriptingtest.Widget{
		{
			WidgetID: "wnd[0]/usr",
			TypeTag:  "GuiUserArea",
			Kids:     []*scriptingtest.Widget{widget},
		},
	}
	return fake
}

func TestTable_FixedGrid(t *testing.T) {
	control := &scriptingtest.Widget{
		WidgetID: "wnd[0]/usr/tblORDERS",
		TypeTag:  "GuiTableControl",
		Cells: [][]string{
			{"10", "Widget A", "5"},
			{"20", "Widget B", "3"},
		},
	}
	sess := NewSession(tableSession(control))

	rows, err := sess.Table("tblORDERS")
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	want := model.TableData{
		{"10", "Widget A", "5"},
		{"20", "Widget B", "3"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Table = %v, want %v", rows, want)
	}
}

func TestTable_FixedGridRaggedAndEmptyRows(t *testing.T) {
	// Row 1 has no readable cells and is dropped; row 2 is shorter than
	// row 0 because the probe stops at the first unreadable cell.
	control := &scriptingtest.Widget{
		WidgetID: "wnd[0]/usr/tblORDERS",
		TypeTag:  "GuiTableControl",
		Cells: [][]string{
			{"10", "Widget A"},
			{},
			{"30"},
		},
	}
	sess := NewSession(tableSession(control))

	rows, err := sess.Table("tblORDERS")
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	want := model.TableData{
		{"10", "Widget A"},
		{"30"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Table = %v, want %v", rows, want)
	}
}

// gridWidget builds a virtualized grid with rows*columns cell values.
func gridWidget(rows int, columns []string) *scriptingtest.Widget {
	values := make(map[string]string, rows*len(columns))
	for r := 0; r < rows; r++ {
		for _, c := range columns {
			values[fmt.Sprintf("%d/%s", r, c)] = fmt.Sprintf("r%d-%s", r, c)
		}
	}
	return &scriptingtest.Widget{
		WidgetID:    "wnd[0]/usr/cntlGRID/shellcont/shell",
		TypeTag:     "GuiShell",
		TextVal:     "GridViewCtrl",
		GridRows:    rows,
		GridColumns: columns,
		GridValues:  values,
	}
}

func TestTable_GridView(t *testing.T) {
	columns := []string{"VBELN", "ERDAT", "NETWR", "WAERK"}
	grid := gridWidget(7, columns)
	sess := NewSession(tableSession(grid))

	rows, err := sess.Table("shell")
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}
	for r, row := range rows {
		if len(row) != 4 {
			t.Fatalf("row %d has %d cells: %v", r, len(row), row)
		}
		for j, c := range columns {
			want := fmt.Sprintf("r%d-%s", r, c)
			if row[j] != want {
				t.Errorf("cell (%d,%s) = %q, want %q", r, c, row[j], want)
			}
		}
	}

	// The visible window is repositioned at every 3rd row index.
	if !reflect.DeepEqual(grid.RowMoves, []int{0, 3, 6}) {
		t.Errorf("row repositions = %v, want [0 3 6]", grid.RowMoves)
	}
	// Each row's scan repositions at every 3rd column-order position.
	wantCols := make([]string, 0, 14)
	for r := 0; r < 7; r++ {
		wantCols = append(wantCols, "VBELN", "WAERK")
	}
	if !reflect.DeepEqual(grid.ColMoves, wantCols) {
		t.Errorf("column repositions = %v, want %v", grid.ColMoves, wantCols)
	}
}

func TestTable_GridViewRowRepositionFatal(t *testing.T) {
	grid := gridWidget(4, []string{"A", "B"})
	grid.RowMoveErr = scriptingtest.ErrInjected
	sess := NewSession(tableSession(grid))

	_, err := sess.Table("shell")
	if !errors.Is(err, scriptingtest.ErrInjected) {
		t.Fatalf("expected injected failure, got %v", err)
	}
}

func TestTable_GridViewSkipsUnreadableCells(t *testing.T) {
	grid := gridWidget(2, []string{"A", "B"})
	delete(grid.GridValues, "0/B")
	sess := NewSession(tableSession(grid))

	rows, err := sess.Table("shell")
	if err != nil {
		t.Fatalf("Table failed: %v", err)
	}
	want := model.TableData{
		{"r0-A"},
		{"r1-A", "r1-B"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Table = %v, want %v", rows, want)
	}
}

func TestTable_UnsupportedWidget(t *testing.T) {
	field := &scriptingtest.Widget{
		WidgetID: "wnd[0]/usr/txtNAME",
		TypeTag:  "GuiTextField",
	}
	sess := NewSession(tableSession(field))

	_, err := sess.Table("txtNAME")
	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if unsupported.TypeTag != "GuiTextField" {
		t.Errorf("unexpected type tag %q", unsupported.TypeTag)
	}
}

func TestTable_ShellWithoutGridMarker(t *testing.T) {
	shell := &scriptingtest.Widget{
		WidgetID: "wnd[0]/usr/cntlEDITOR/shellcont/shell",
		TypeTag:  "GuiShell",
		TextVal:  "TextEditCtrl",
	}
	sess := NewSession(tableSession(shell))

	_, err := sess.Table("shell")
	var unsupported *UnsupportedTypeError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected UnsupportedTypeError, got %v", err)
	}
	if unsupported.Text != "TextEditCtrl" {
		t.Errorf("unexpected text %q", unsupported.Text)
	}
}

func TestTable_NotFound(t *testing.T) {
	sess := NewSession(scriptingtest.NewSession("/app/con[0]/ses[0]"))

	_, err := sess.Table("tblMISSING")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
