//go:build windows

package cmd

// Register the COM-based scripting backend.
import _ "github.com/mj1618/sapgui-cli/internal/scripting/ole"
