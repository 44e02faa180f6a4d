//go:build windows

package ole

import (
	"fmt"

	"github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// Engine wraps the COM scripting engine object.
type Engine struct {
	rot    *ole.IDispatch // SapROTWr wrapper, kept alive for the engine's lifetime
	engine *ole.IDispatch
}

// NewEngine attaches to the scripting engine of the running frontend via the
// running object table.
func NewEngine() (*Engine, error) {
	if err := ole.CoInitialize(0); err != nil {
		// S_FALSE means the thread was already initialized; anything else
		// is fatal.
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != 1 {
			return nil, fmt.Errorf("initialize COM: %w", err)
		}
	}

	unknown, err := oleutil.CreateObject("SapROTWr.SapROTWrapper")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scripting.ErrEngineNotFound, err)
	}
	rot, err := unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scripting.ErrEngineNotFound, err)
	}

	entryVar, err := oleutil.CallMethod(rot, "GetROTEntry", "SAPGUI")
	if err != nil {
		rot.Release()
		return nil, fmt.Errorf("%w: %v", scripting.ErrEngineNotFound, err)
	}
	entry := entryVar.ToIDispatch()
	if entry == nil {
		entryVar.Clear()
		rot.Release()
		return nil, scripting.ErrEngineNotFound
	}

	engineVar, err := oleutil.CallMethod(entry, "GetScriptingEngine")
	entryVar.Clear()
	if err != nil {
		rot.Release()
		return nil, fmt.Errorf("%w: %v", scripting.ErrScriptingEngineNotFound, err)
	}
	engine := engineVar.ToIDispatch()
	if engine == nil {
		engineVar.Clear()
		rot.Release()
		return nil, scripting.ErrScriptingEngineNotFound
	}

	return &Engine{rot: rot, engine: engine}, nil
}

func (e *Engine) Connections() ([]scripting.Connection, error) {
	collVar, err := oleutil.GetProperty(e.engine, "Connections")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scripting.ErrConnectionFailed, err)
	}
	defer collVar.Clear()
	coll := collVar.ToIDispatch()
	if coll == nil {
		return nil, scripting.ErrConnectionFailed
	}

	var conns []scripting.Connection
	err = eachItem(coll, func(item *ole.IDispatch) error {
		item.AddRef()
		conns = append(conns, &Connection{disp: item})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", scripting.ErrConnectionFailed, err)
	}
	return conns, nil
}

func (e *Engine) OpenConnection(description string) (scripting.Connection, error) {
	disp, err := callDispatch(e.engine, "OpenConnection", description, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", scripting.ErrConnectionFailed, description, err)
	}
	return &Connection{disp: disp}, nil
}

func (e *Engine) Close() error {
	if e.engine != nil {
		e.engine.Release()
		e.engine = nil
	}
	if e.rot != nil {
		e.rot.Release()
		e.rot = nil
	}
	ole.CoUninitialize()
	return nil
}

// Connection wraps a COM connection object.
type Connection struct {
	disp *ole.IDispatch
}

func (c *Connection) Description() (string, error) {
	return getString(c.disp, "Description")
}

func (c *Connection) Children() ([]scripting.Session, error) {
	collVar, err := oleutil.GetProperty(c.disp, "Children")
	if err != nil {
		return nil, fmt.Errorf("connection children: %w", err)
	}
	defer collVar.Clear()
	coll := collVar.ToIDispatch()
	if coll == nil {
		return nil, fmt.Errorf("connection children: nil collection")
	}

	var sessions []scripting.Session
	err = eachItem(coll, func(item *ole.IDispatch) error {
		item.AddRef()
		sessions = append(sessions, &Session{disp: item})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (c *Connection) FindByID(id string) (scripting.Session, error) {
	disp, err := callDispatch(c.disp, "FindById", id)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", scripting.ErrSessionAttachFailed, id, err)
	}
	return &Session{disp: disp}, nil
}

// Session wraps a COM session object.
type Session struct {
	disp *ole.IDispatch
}

func (s *Session) ID() (string, error) {
	return getString(s.disp, "Id")
}

func (s *Session) CreateSession() error {
	v, err := oleutil.CallMethod(s.disp, "CreateSession")
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	v.Clear()
	return nil
}

func (s *Session) FindByID(id string) (scripting.Component, error) {
	disp, err := callDispatch(s.disp, "FindById", id)
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", id, err)
	}
	return newComponent(disp), nil
}

func (s *Session) Children() ([]scripting.Component, error) {
	collVar, err := oleutil.GetProperty(s.disp, "Children")
	if err != nil {
		return nil, fmt.Errorf("session children: %w", err)
	}
	defer collVar.Clear()
	coll := collVar.ToIDispatch()
	if coll == nil {
		return nil, fmt.Errorf("session children: nil collection")
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

func (s *Session) ObjectTree() ([]byte, error) {
	v, err := oleutil.CallMethod(s.disp, "GetObjectTree", "")
	if err != nil {
		return nil, fmt.Errorf("object tree: %w", err)
	}
	defer v.Clear()
	return []byte(v.ToString()), nil
}
