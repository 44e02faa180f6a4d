package cmd

import (
	"fmt"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/sap"
	"github.com/mj1618/sapgui-cli/internal/scripting"
	"github.com/spf13/cobra"
)

// splitCSV splits a comma-separated flag value, trimming whitespace and
// dropping empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// serverOrConfig resolves the target connection description from the flag
// value, falling back to the config file default.
func serverOrConfig(server string) string {
	if server != "" {
		return server
	}
	return cfg.Server
}

// resolveSession attaches to the scripting engine and returns the session at
// the given index on the connection whose description matches server. An
// empty server selects the first open connection. The returned release
// function drops the engine handle; widget handles resolved through the
// session are invalid after calling it.
func resolveSession(server string, index int) (*sap.Session, func(), error) {
	engine, err := scripting.Attach()
	if err != nil {
		return nil, nil, err
	}
	sess, err := sessionOn(engine, server, index)
	if err != nil {
		engine.Close()
		return nil, nil, err
	}
	release := func() { engine.Close() }
	return sess, release, nil
}

// sessionOn picks a session from an already attached engine.
func sessionOn(engine scripting.Engine, server string, index int) (*sap.Session, error) {
	conn, err := findConnection(engine, server)
	if err != nil {
		return nil, err
	}
	children, err := conn.Children()
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(children) {
		return nil, fmt.Errorf("session index %d out of range: connection has %d session(s)", index, len(children))
	}
	return sap.NewSession(children[index]), nil
}

// findConnection returns the connection matching server by exact description,
// or the first connection when server is empty.
func findConnection(engine scripting.Engine, server string) (scripting.Connection, error) {
	conns, err := engine.Connections()
	if err != nil {
		return nil, err
	}
	if len(conns) == 0 {
		return nil, fmt.Errorf("no open connections — run login first")
	}
	if server == "" {
		return conns[0], nil
	}
	for _, conn := range conns {
		desc, err := conn.Description()
		if err != nil {
			continue
		}
		if desc == server {
			return conn, nil
		}
	}
	return nil, fmt.Errorf("no open connection matches %q", server)
}

// addTargetFlags adds the --server and --session flags used by every command
// that targets an existing session.
func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().String("server", "", "Connection description to target (default: config, else first open connection)")
	cmd.Flags().Int("session", 0, "Session index on the connection")
}

// getTargetFlags reads the session-targeting flags from a command.
func getTargetFlags(cmd *cobra.Command) (server string, index int) {
	server, _ = cmd.Flags().GetString("server")
	index, _ = cmd.Flags().GetInt("session")
	return serverOrConfig(server), index
}

// Parameter extraction helpers for step/tool argument maps.

func stringParam(params map[string]interface{}, key, defaultVal string) string {
	if v, ok := params[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
		// Numeric values may arrive as int/float from YAML or JSON.
		return fmt.Sprintf("%v", v)
	}
	return defaultVal
}

func intParam(params map[string]interface{}, key string, defaultVal int) int {
	if v, ok := params[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return defaultVal
}

func boolParam(params map[string]interface{}, key string, defaultVal bool) bool {
	if v, ok := params[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return defaultVal
}

// intSliceParam reads a list of integers, accepting a bare int as a
// single-element list.
func intSliceParam(params map[string]interface{}, key string) []int {
	v, ok := params[key]
	if !ok {
		return nil
	}
	switch arr := v.(type) {
	case []interface{}:
		var out []int
		for _, item := range arr {
			switch n := item.(type) {
			case int:
				out = append(out, n)
			case int64:
				out = append(out, int(n))
			case float64:
				out = append(out, int(n))
			}
		}
		return out
	case int:
		return []int{arr}
	case float64:
		return []int{int(arr)}
	}
	return nil
}
