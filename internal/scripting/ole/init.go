//go:build windows

package ole

import "github.com/mj1618/sapgui-cli/internal/scripting"

func init() {
	scripting.NewEngineFunc = func() (scripting.Engine, error) {
		return NewEngine()
	}
}
