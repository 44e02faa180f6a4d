// Package scripting defines the boundary to the external application's
// scripting object model. Everything here is a thin, synchronous wrapper
// around live vendor objects: calls block until the application answers, and
// every handle is invalidated when its owning session or connection closes.
package scripting

// Engine is the scripting engine of a running frontend instance. It owns the
// open connections.
type Engine interface {
	// Connections returns the currently open connections in engine order.
	Connections() ([]Connection, error)

	// OpenConnection opens a new connection to the server matching the
	// given description string.
	OpenConnection(description string) (Connection, error)

	// Close releases the engine handle and any underlying resources. The
	// frontend process itself keeps running.
	Close() error
}

// Connection is a logical link to one server, grouping one or more sessions.
type Connection interface {
	// Description returns the server description the connection was opened
	// with. Used for exact-match reuse.
	Description() (string, error)

	// Children returns the connection's sessions in engine order.
	Children() ([]Session, error)

	// FindByID resolves a session by its hierarchical identifier.
	FindByID(id string) (Session, error)
}

// Session is one interactive window instance within a connection.
type Session interface {
	// ID returns the session's hierarchical identifier.
	ID() (string, error)

	// CreateSession asks the engine to spawn an additional session on the
	// owning connection. Completion is not signalled; callers poll the
	// connection's children for a new identifier.
	CreateSession() error

	// FindByID resolves a widget within the session by its full
	// hierarchical identifier.
	FindByID(id string) (Component, error)

	// Children returns the session's top-level windows, for live traversal
	// when no serialized tree is available.
	Children() ([]Component, error)

	// ObjectTree returns a serialized snapshot of the session's widget
	// tree, rooted at the main window.
	ObjectTree() ([]byte, error)
}

// Component is a single addressable widget.
type Component interface {
	// ID returns the full hierarchical identifier, e.g. "wnd[0]/usr/txtNAME".
	ID() (string, error)

	// Type returns the widget class tag, e.g. "GuiTextField".
	Type() (string, error)

	// Text returns the widget's current display or content value.
	Text() (string, error)

	// SetText replaces the widget's textual content.
	SetText(text string) error

	// Children returns the widget's child components in original order.
	Children() ([]Component, error)
}

// Window is a component that is a top-level frame window. Obtained by type
// assertion from a Component resolved at a "wnd[N]" identifier.
type Window interface {
	Component

	// SendVKey dispatches a virtual key code to the window. Key 0 is
	// Enter/confirm.
	SendVKey(key int) error

	// Close closes the window. Closing a session's main window ends the
	// session.
	Close() error
}

// TableControl is the fixed-grid table widget. All rows and columns are
// directly addressable; the column count is not exposed and must be probed.
type TableControl interface {
	Component

	// RowCount returns the total number of rows.
	RowCount() (int, error)

	// GetCell returns the cell widget at the given row and column index.
	// Probing past the last column fails.
	GetCell(row, column int) (Component, error)
}

// GridView is the virtualized grid widget. Only a window of rows and columns
// is materialized at a time; reads outside it fail until the visible window
// is repositioned.
type GridView interface {
	Component

	// RowCount returns the total number of rows, including rows not
	// currently materialized.
	RowCount() (int, error)

	// ColumnOrder returns the column identifiers in the widget's own
	// reported display order.
	ColumnOrder() ([]string, error)

	// SetFirstVisibleRow scrolls the visible window so the given row index
	// is the first materialized row.
	SetFirstVisibleRow(row int) error

	// SetFirstVisibleColumn scrolls the visible window so the given column
	// is the first materialized column.
	SetFirstVisibleColumn(column string) error

	// CellValue returns the cell text at the given row and column. Fails
	// when the cell is outside the materialized window.
	CellValue(row int, column string) (string, error)
}
