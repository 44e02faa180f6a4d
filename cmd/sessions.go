package cmd

import (
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/scripting"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List open connections and their sessions",
	RunE:  runSessions,
}

func init() {
	rootCmd.AddCommand(sessionsCmd)
	sessionsCmd.Flags().String("server", "", "Limit to the connection with this description")
}

// sessionsConnection groups a connection with its session identifiers.
type sessionsConnection struct {
	Server   string   `yaml:"server"   json:"server"`
	Sessions []string `yaml:"sessions" json:"sessions"`
}

type sessionsResult struct {
	OK          bool                 `yaml:"ok"          json:"ok"`
	Action      string               `yaml:"action"      json:"action"`
	Connections []sessionsConnection `yaml:"connections" json:"connections"`
}

func runSessions(cmd *cobra.Command, args []string) error {
	// No config fallback here: an unfiltered listing shows everything.
	server, _ := cmd.Flags().GetString("server")

	engine, err := scripting.Attach()
	if err != nil {
		return err
	}
	defer engine.Close()

	conns, err := engine.Connections()
	if err != nil {
		return err
	}

	result := sessionsResult{OK: true, Action: "sessions", Connections: []sessionsConnection{}}
	for _, conn := range conns {
		desc, err := conn.Description()
		if err != nil {
			continue
		}
		if server != "" && desc != server {
			continue
		}
		children, err := conn.Children()
		if err != nil {
			continue
		}
		entry := sessionsConnection{Server: desc, Sessions: []string{}}
		for _, child := range children {
			id, err := child.ID()
			if err != nil {
				continue
			}
			entry.Sessions = append(entry.Sessions, id)
		}
		result.Connections = append(result.Connections, entry)
	}

	return output.Print(result)
}
