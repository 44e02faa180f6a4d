// Package sap is the automation client for the frontend's scripting object
// model: it launches or attaches to the frontend, acquires connections and
// sessions, locates widgets by identifier fragments, fills input fields, and
// extracts table contents. All calls are synchronous and single-threaded;
// the live application is the only shared state.
package sap

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// DefaultPath is the standard install location of the frontend launcher.
const DefaultPath = `C:\Program Files (x86)\SAP\FrontEnd\SAPgui\saplogon.exe`

// Default bounds for the session-discovery poll.
const (
	DefaultSessionTimeout = 20 * time.Second
	DefaultPollInterval   = 100 * time.Millisecond
)

// Client owns the engine handle and the current connection. It is the single
// entry point for acquiring sessions; one Client drives one frontend
// instance from one goroutine.
type Client struct {
	// SessionTimeout bounds the poll for a newly created session.
	SessionTimeout time.Duration
	// PollInterval is the delay between session-discovery polls.
	PollInterval time.Duration

	engine   scripting.Engine
	conn     scripting.Connection
	connDesc string
	reused   bool
	launched bool
}

// New launches the frontend executable (unless a matching process is already
// running) and attaches to its scripting engine. An empty path selects
// DefaultPath.
func New(path string) (*Client, error) {
	if path == "" {
		path = DefaultPath
	}

	c := &Client{
		SessionTimeout: DefaultSessionTimeout,
		PollInterval:   DefaultPollInterval,
	}

	running, err := processRunning(filepath.Base(path))
	if err != nil {
		// Process listing is advisory; fall through to launching.
		running = false
	}
	if !running {
		launch := exec.Command(path)
		if err := launch.Start(); err != nil {
			return nil, fmt.Errorf("launch %s: %w", path, err)
		}
		// The launcher keeps running after we detach; don't wait on it,
		// just stop it from becoming a zombie if it ever exits.
		go launch.Wait()
		c.launched = true
	}

	engine, err := scripting.Attach()
	if err != nil {
		return nil, err
	}
	c.engine = engine
	return c, nil
}

// NewClient wraps an already attached engine. Used by the command layer and
// tests, where launching is handled elsewhere.
func NewClient(engine scripting.Engine) *Client {
	return &Client{
		SessionTimeout: DefaultSessionTimeout,
		PollInterval:   DefaultPollInterval,
		engine:         engine,
	}
}

// processRunning reports whether any running process has the given
// executable name.
func processRunning(name string) (bool, error) {
	procs, err := process.Processes()
	if err != nil {
		return false, err
	}
	for _, p := range procs {
		pname, err := p.Name()
		if err != nil {
			continue
		}
		if strings.EqualFold(pname, name) {
			return true, nil
		}
	}
	return false, nil
}

// ConnectionReused reports whether the last NewSession call attached to an
// existing connection instead of opening a new one.
func (c *Client) ConnectionReused() bool { return c.reused }

// NewSession returns a session on a connection to the given server.
//
// When no matching connection is held, one is opened or reused (reuse is by
// exact description match) and, for a freshly opened connection, its master
// session is returned directly. On a connection that was already open, an
// additional session is requested and discovered by diffing session
// identifiers: the set of ids is snapshotted before the create call, then
// the connection's children are re-read until an id outside that set
// appears or SessionTimeout elapses. The engine offers no creation callback,
// so this poll is the protocol; whichever new id is seen first wins.
func (c *Client) NewSession(server string) (*Session, error) {
	if c.conn == nil || c.connDesc != server {
		reused, err := c.openConnection(server)
		if err != nil {
			return nil, err
		}
		c.reused = reused
		if !reused {
			master, err := c.masterSession()
			if err != nil {
				return nil, err
			}
			return NewSession(master), nil
		}
	}

	master, err := c.masterSession()
	if err != nil {
		return nil, err
	}

	before, err := c.sessionIDs()
	if err != nil {
		return nil, err
	}

	if err := master.CreateSession(); err != nil {
		return nil, fmt.Errorf("create session on %q: %w", server, err)
	}

	newID, err := c.waitForNewSession(before)
	if err != nil {
		return nil, fmt.Errorf("%w on %q", err, server)
	}

	handle, err := c.conn.FindByID(newID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", scripting.ErrSessionAttachFailed, newID, err)
	}
	return NewSession(handle), nil
}

// openConnection attaches to an existing connection whose description
// exactly matches server, or opens a new one. Returns whether an existing
// connection was reused.
func (c *Client) openConnection(server string) (bool, error) {
	conns, err := c.engine.Connections()
	if err != nil {
		return false, err
	}

	for _, conn := range conns {
		desc, err := conn.Description()
		if err != nil {
			continue
		}
		if desc == server {
			c.conn = conn
			c.connDesc = server
			return true, nil
		}
	}

	conn, err := c.engine.OpenConnection(server)
	if err != nil {
		return false, err
	}
	c.conn = conn
	c.connDesc = server
	return false, nil
}

// masterSession returns the connection's first session, which is the one
// session creation is requested on.
func (c *Client) masterSession() (scripting.Session, error) {
	children, err := c.conn.Children()
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: connection %q has no sessions", scripting.ErrSessionAttachFailed, c.connDesc)
	}
	return children[0], nil
}

// sessionIDs snapshots the identifiers of the connection's sessions.
func (c *Client) sessionIDs() (map[string]bool, error) {
	children, err := c.conn.Children()
	if err != nil {
		return nil, err
	}
	ids := make(map[string]bool, len(children))
	for _, child := range children {
		id, err := child.ID()
		if err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, nil
}

// waitForNewSession polls the connection's session identifiers until one
// appears that was not in before, or the deadline passes. Child order is
// preserved, so the first-encountered new identifier is returned.
func (c *Client) waitForNewSession(before map[string]bool) (string, error) {
	deadline := time.Now().Add(c.SessionTimeout)
	for {
		children, err := c.conn.Children()
		if err != nil {
			return "", err
		}
		for _, child := range children {
			id, err := child.ID()
			if err != nil {
				continue
			}
			if !before[id] {
				return id, nil
			}
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("%w after %s", ErrSessionTimeout, c.SessionTimeout)
		}
		time.Sleep(c.PollInterval)
	}
}

// Close releases the engine handle. The frontend process and any open
// sessions are left as they are; sessions are closed individually via
// Session.Close or Session.Logout. Safe to call after a partial acquisition.
func (c *Client) Close() error {
	c.conn = nil
	c.connDesc = ""
	if c.engine == nil {
		return nil
	}
	err := c.engine.Close()
	c.engine = nil
	return err
}
