package scripting

import (
	"fmt"
	"runtime"
)

// ErrUnsupported is returned on platforms without a scripting backend.
var ErrUnsupported = fmt.Errorf("no scripting backend on %s/%s; supported: windows", runtime.GOOS, runtime.GOARCH)

// NewEngineFunc is set by backend packages via init().
// See internal/scripting/ole for the Windows COM registration.
var NewEngineFunc func() (Engine, error)

// Attach connects to the scripting engine of a running frontend instance.
func Attach() (Engine, error) {
	if NewEngineFunc == nil {
		return nil, ErrUnsupported
	}
	return NewEngineFunc()
}
