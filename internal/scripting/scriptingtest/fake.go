// Package scriptingtest provides a deterministic in-memory implementation of
// the scripting boundary for tests: widgets with injectable failures, and
// connections whose new sessions appear only after a configurable number of
// child polls, so the session-discovery race can be exercised without a live
// frontend.
package scriptingtest

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// ErrInjected is the base error returned by injected failures.
var ErrInjected = errors.New("scriptingtest: injected failure")

// Engine is a fake scripting engine.
type Engine struct {
	Conns       []*Connection
	OpenErr     error
	OpenedCount int
	Closed      bool
}

func (e *Engine) Connections() ([]scripting.Connection, error) {
	conns := make([]scripting.Connection, len(e.Conns))
	for i, c := range e.Conns {
		conns[i] = c
	}
	return conns, nil
}

func (e *Engine) OpenConnection(description string) (scripting.Connection, error) {
	if e.OpenErr != nil {
		return nil, e.OpenErr
	}
	e.OpenedCount++
	conn := &Connection{Desc: description}
	conn.Sessions = []*Session{NewSession(fmt.Sprintf("/app/con[%d]/ses[0]", len(e.Conns)))}
	e.Conns = append(e.Conns, conn)
	return conn, nil
}

func (e *Engine) Close() error {
	e.Closed = true
	return nil
}

// Connection is a fake connection. Pending sessions become visible to
// Children only after PendingPolls further calls, which is how the
// before/after session race is simulated.
type Connection struct {
	Desc         string
	Sessions     []*Session
	Pending      []*Session
	PendingPolls int
	ChildrenErr  error
	pollCount    int
}

func (c *Connection) Description() (string, error) {
	return c.Desc, nil
}

func (c *Connection) Children() ([]scripting.Session, error) {
	if c.ChildrenErr != nil {
		return nil, c.ChildrenErr
	}
	if len(c.Pending) > 0 {
		c.pollCount++
		if c.pollCount > c.PendingPolls {
			c.Sessions = append(c.Sessions, c.Pending...)
			c.Pending = nil
		}
	}
	sessions := make([]scripting.Session, len(c.Sessions))
	for i, s := range c.Sessions {
		sessions[i] = s
	}
	return sessions, nil
}

func (c *Connection) FindByID(id string) (scripting.Session, error) {
	for _, s := range c.Sessions {
		if s.SessionID == id {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: no session %q", ErrInjected, id)
}

// Session is a fake session over a widget tree.
type Session struct {
	SessionID     string
	Root          *Widget // the wnd[0] subtree
	ExtraWindows  []*Widget
	TreeErr       error // forces the live-traversal fallback
	CreateErr     error
	CreateCalls   int
	OnCreate      func() // scheduled by tests, e.g. to arm Pending sessions
}

// NewSession returns a session with an empty main window.
func NewSession(id string) *Session {
	return &Session{
		SessionID: id,
		Root:      &Widget{WidgetID: "wnd[0]", TypeTag: "GuiMainWindow"},
	}
}

func (s *Session) ID() (string, error) {
	return s.SessionID, nil
}

func (s *Session) CreateSession() error {
	s.CreateCalls++
	if s.CreateErr != nil {
		return s.CreateErr
	}
	if s.OnCreate != nil {
		s.OnCreate()
	}
	return nil
}

func (s *Session) windows() []*Widget {
	return append([]*Widget{s.Root}, s.ExtraWindows...)
}

func (s *Session) FindByID(id string) (scripting.Component, error) {
	for _, w := range s.windows() {
		if found := w.lookup(id); found != nil {
			return found.wrap(), nil
		}
	}
	return nil, fmt.Errorf("%w: no widget %q", ErrInjected, id)
}

func (s *Session) Children() ([]scripting.Component, error) {
	windows := s.windows()
	children := make([]scripting.Component, len(windows))
	for i, w := range windows {
		children[i] = w.wrap()
	}
	return children, nil
}

func (s *Session) ObjectTree() ([]byte, error) {
	if s.TreeErr != nil {
		return nil, s.TreeErr
	}
	return json.Marshal(s.Root.toTree())
}

// Widget is a fake widget node. The zero value is a usable empty widget.
type Widget struct {
	WidgetID string
	TypeTag  string
	TextVal  string
	Kids     []*Widget

	TextErr     error
	SetTextErr  error
	ChildrenErr error

	// Recorded interactions
	SetTexts []string
	Keys     []int
	Closed   bool

	// Fixed-grid behavior: Cells[row] lists the readable cell texts for
	// that row; GetCell fails past the end (the probe boundary).
	Cells [][]string

	// Virtualized-grid behavior
	GridRows        int
	GridColumns     []string
	GridValues      map[string]string // key "row/column"
	visibleRow      int
	visibleColIndex int
	RowMoves        []int
	ColMoves        []string
	RowMoveErr      error
}

// treeNode mirrors the serialized snapshot format.
type treeNode struct {
	Properties struct {
		ID   string `json:"Id"`
		Text string `json:"Text,omitempty"`
		Type string `json:"Type,omitempty"`
	} `json:"properties"`
	Children []treeNode `json:"children,omitempty"`
}

func (w *Widget) toTree() treeNode {
	var node treeNode
	node.Properties.ID = w.WidgetID
	node.Properties.Text = w.TextVal
	node.Properties.Type = w.TypeTag
	for _, kid := range w.Kids {
		node.Children = append(node.Children, kid.toTree())
	}
	return node
}

func (w *Widget) lookup(id string) *Widget {
	if w.WidgetID == id {
		return w
	}
	for _, kid := range w.Kids {
		if found := kid.lookup(id); found != nil {
			return found
		}
	}
	return nil
}

// wrap upgrades the widget to the richest interface its type tag supports,
// matching the real backend's behavior.
func (w *Widget) wrap() scripting.Component {
	switch {
	case strings.HasPrefix(w.TypeTag, "GuiMainWindow"), strings.HasPrefix(w.TypeTag, "GuiFrameWindow"), strings.HasPrefix(w.TypeTag, "GuiModalWindow"):
		return &fakeWindow{w}
	case w.TypeTag == "GuiTableControl":
		return &fakeTable{w}
	case w.TypeTag == "GuiShell":
		return &fakeGrid{w}
	default:
		return &fakeComponent{w: w}
	}
}

type fakeComponent struct{ w *Widget }

func (c *fakeComponent) ID() (string, error)   { return c.w.WidgetID, nil }
func (c *fakeComponent) Type() (string, error) { return c.w.TypeTag, nil }

func (c *fakeComponent) Text() (string, error) {
	if c.w.TextErr != nil {
		return "", c.w.TextErr
	}
	return c.w.TextVal, nil
}

func (c *fakeComponent) SetText(text string) error {
	if c.w.SetTextErr != nil {
		return c.w.SetTextErr
	}
	c.w.TextVal = text
	c.w.SetTexts = append(c.w.SetTexts, text)
	return nil
}

func (c *fakeComponent) Children() ([]scripting.Component, error) {
	if c.w.ChildrenErr != nil {
		return nil, c.w.ChildrenErr
	}
	children := make([]scripting.Component, len(c.w.Kids))
	for i, kid := range c.w.Kids {
		children[i] = kid.wrap()
	}
	return children, nil
}

type fakeWindow struct{ w *Widget }

func (f *fakeWindow) ID() (string, error)                      { return (&fakeComponent{f.w}).ID() }
func (f *fakeWindow) Type() (string, error)                    { return (&fakeComponent{f.w}).Type() }
func (f *fakeWindow) Text() (string, error)                    { return (&fakeComponent{f.w}).Text() }
func (f *fakeWindow) SetText(text string) error                { return (&fakeComponent{f.w}).SetText(text) }
func (f *fakeWindow) Children() ([]scripting.Component, error) { return (&fakeComponent{f.w}).Children() }

func (f *fakeWindow) SendVKey(key int) error {
	f.w.Keys = append(f.w.Keys, key)
	return nil
}

func (f *fakeWindow) Close() error {
	f.w.Closed = true
	return nil
}

type fakeTable struct{ w *Widget }

func (f *fakeTable) ID() (string, error)                      { return (&fakeComponent{f.w}).ID() }
func (f *fakeTable) Type() (string, error)                    { return (&fakeComponent{f.w}).Type() }
func (f *fakeTable) Text() (string, error)                    { return (&fakeComponent{f.w}).Text() }
func (f *fakeTable) SetText(text string) error                { return (&fakeComponent{f.w}).SetText(text) }
func (f *fakeTable) Children() ([]scripting.Component, error) { return (&fakeComponent{f.w}).Children() }

func (f *fakeTable) RowCount() (int, error) {
	return len(f.w.Cells), nil
}

func (f *fakeTable) GetCell(row, column int) (scripting.Component, error) {
	if row < 0 || row >= len(f.w.Cells) {
		return nil, fmt.Errorf("%w: row %d out of range", ErrInjected, row)
	}
	if column < 0 || column >= len(f.w.Cells[row]) {
		return nil, fmt.Errorf("%w: no cell (%d, %d)", ErrInjected, row, column)
	}
	return &fakeComponent{w: &Widget{
		WidgetID: fmt.Sprintf("%s/cell[%d,%d]", f.w.WidgetID, row, column),
		TypeTag:  "GuiTextField",
		TextVal:  f.w.Cells[row][column],
	}}, nil
}

// gridWindowSize is the number of rows and columns the fake grid
// materializes at a time. Matching the extractor's repositioning stride
// means reads only succeed when the extractor scrolls correctly.
const gridWindowSize = 3

type fakeGrid struct{ w *Widget }

func (f *fakeGrid) ID() (string, error)                      { return (&fakeComponent{f.w}).ID() }
func (f *fakeGrid) Type() (string, error)                    { return (&fakeComponent{f.w}).Type() }
func (f *fakeGrid) Text() (string, error)                    { return (&fakeComponent{f.w}).Text() }
func (f *fakeGrid) SetText(text string) error                { return (&fakeComponent{f.w}).SetText(text) }
func (f *fakeGrid) Children() ([]scripting.Component, error) { return (&fakeComponent{f.w}).Children() }

func (f *fakeGrid) RowCount() (int, error) {
	return f.w.GridRows, nil
}

func (f *fakeGrid) ColumnOrder() ([]string, error) {
	return f.w.GridColumns, nil
}

func (f *fakeGrid) SetFirstVisibleRow(row int) error {
	if f.w.RowMoveErr != nil {
		return f.w.RowMoveErr
	}
	f.w.visibleRow = row
	f.w.RowMoves = append(f.w.RowMoves, row)
	return nil
}

func (f *fakeGrid) SetFirstVisibleColumn(column string) error {
	for i, c := range f.w.GridColumns {
		if c == column {
			f.w.visibleColIndex = i
			f.w.ColMoves = append(f.w.ColMoves, column)
			return nil
		}
	}
	return fmt.Errorf("%w: unknown column %q", ErrInjected, column)
}

func (f *fakeGrid) CellValue(row int, column string) (string, error) {
	if row < f.w.visibleRow || row >= f.w.visibleRow+gridWindowSize {
		return "", fmt.Errorf("%w: row %d not materialized", ErrInjected, row)
	}
	colIndex := -1
	for i, c := range f.w.GridColumns {
		if c == column {
			colIndex = i
			break
		}
	}
	if colIndex < 0 {
		return "", fmt.Errorf("%w: unknown column %q", ErrInjected, column)
	}
	if colIndex < f.w.visibleColIndex || colIndex >= f.w.visibleColIndex+gridWindowSize {
		return "", fmt.Errorf("%w: column %q not materialized", ErrInjected, column)
	}
	value, ok := f.w.GridValues[fmt.Sprintf("%d/%s", row, column)]
	if !ok {
		return "", fmt.Errorf("%w: no value at (%d, %q)", ErrInjected, row, column)
	}
	return value, nil
}
