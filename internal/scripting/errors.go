package scripting

import "errors"

// Failure conditions at the engine/connection boundary. Backends wrap the
// underlying call failure with %w around one of these so callers can test
// with errors.Is without parsing vendor error text.
var (
	// ErrEngineNotFound: the frontend is not running or not registered.
	ErrEngineNotFound = errors.New("scripting: frontend automation object not found")

	// ErrScriptingEngineNotFound: the frontend is running but scripting is
	// disabled or the engine object is unavailable.
	ErrScriptingEngineNotFound = errors.New("scripting: scripting engine not found")

	// ErrConnectionFailed: opening or resolving a connection failed.
	ErrConnectionFailed = errors.New("scripting: connection could not be established")

	// ErrTooManyConnections: the server refused an additional connection.
	ErrTooManyConnections = errors.New("scripting: too many connections")

	// ErrSessionAttachFailed: a session identifier could not be resolved to
	// a live handle.
	ErrSessionAttachFailed = errors.New("scripting: session attach failed")
)
