package sap

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/scripting"
)

// Widget identifier conventions of the frontend.
const (
	// CommandFieldID is where transaction codes are entered.
	CommandFieldID = "wnd[0]/tbar[0]/okcd"
	// CloseCommand force-closes the current transaction.
	CloseCommand = "/n"
	// LogoutCommand terminates the client session.
	LogoutCommand = "/nex"
	// MainWindowID is the session's top-level window.
	MainWindowID = "wnd[0]"
)

// VKeyEnter is the virtual key code for Enter/confirm.
const VKeyEnter = 0

// Session drives one interactive window of the frontend. All methods are
// synchronous; handles become invalid once the session closes.
type Session struct {
	handle scripting.Session
}

// NewSession wraps a session handle.
func NewSession(handle scripting.Session) *Session {
	return &Session{handle: handle}
}

// ID returns the session's hierarchical identifier.
func (s *Session) ID() (string, error) {
	return s.handle.ID()
}

// OpenTransaction opens the given transaction code. Any transaction already
// open is force-closed first; closing when nothing is open is a harmless
// no-op in the frontend, which makes the sequence idempotent. Failures are
// wrapped in a TransactionError naming the code.
func (s *Session) OpenTransaction(code string) error {
	if err := s.CloseTransaction(); err != nil {
		return &TransactionError{Code: code, Err: err}
	}
	if err := s.setCommand(code); err != nil {
		return &TransactionError{Code: code, Err: err}
	}
	if err := s.SendKey(VKeyEnter); err != nil {
		return &TransactionError{Code: code, Err: err}
	}
	return nil
}

// CloseTransaction closes the currently open transaction, if any.
func (s *Session) CloseTransaction() error {
	if err := s.setCommand(CloseCommand); err != nil {
		return fmt.Errorf("close transaction: %w", err)
	}
	if err := s.SendKey(VKeyEnter); err != nil {
		return fmt.Errorf("close transaction: %w", err)
	}
	return nil
}

// setCommand writes text into the command field.
func (s *Session) setCommand(command string) error {
	field, err := s.handle.FindByID(CommandFieldID)
	if err != nil {
		return fmt.Errorf("command field %s: %w", CommandFieldID, err)
	}
	if err := field.SetText(command); err != nil {
		return fmt.Errorf("command field %s: %w", CommandFieldID, err)
	}
	return nil
}

// SendKey dispatches one or more virtual key codes to the main window, in
// order, one synchronous call each.
func (s *Session) SendKey(keys ...int) error {
	return s.SendKeyWindow(0, keys...)
}

// SendKeyWindow dispatches virtual key codes to the window at the given
// index.
func (s *Session) SendKeyWindow(window int, keys ...int) error {
	id := fmt.Sprintf("wnd[%d]", window)
	component, err := s.handle.FindByID(id)
	if err != nil {
		return fmt.Errorf("window %s: %w", id, err)
	}
	wnd, ok := component.(scripting.Window)
	if !ok {
		return fmt.Errorf("window %s: widget does not accept key input", id)
	}
	for _, key := range keys {
		if err := wnd.SendVKey(key); err != nil {
			return fmt.Errorf("window %s key %d: %w", id, key, err)
		}
	}
	return nil
}

// Logout terminates the client session by issuing the logout command.
func (s *Session) Logout() error {
	if err := s.setCommand(LogoutCommand); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	if err := s.SendKey(VKeyEnter); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// Close closes the session's main window. The session and every widget
// handle resolved through it are unusable afterwards.
func (s *Session) Close() error {
	component, err := s.handle.FindByID(MainWindowID)
	if err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	wnd, ok := component.(scripting.Window)
	if !ok {
		return fmt.Errorf("close session: %s is not a window", MainWindowID)
	}
	if err := wnd.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	return nil
}
