package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sap"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Launch the SAP GUI frontend and acquire a session",
	Long: `Launch the SAP GUI frontend (unless it is already running), attach to its
scripting engine, and acquire a session on the given server connection.
An existing connection with a matching description is reused; on a reused
connection a new session window is created.`,
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	loginCmd.Flags().String("server", "", "Connection description as shown in the logon pad (required unless set in config)")
	loginCmd.Flags().String("path", "", "Frontend executable to launch (default: standard install path)")
	loginCmd.Flags().Int("timeout", 0, "Seconds to wait for the new session to appear (default: 20)")
}

// loginResult is the output of a login command.
type loginResult struct {
	OK              bool   `yaml:"ok"                         json:"ok"`
	Action          string `yaml:"action"                     json:"action"`
	Server          string `yaml:"server"                     json:"server"`
	Session         string `yaml:"session"                    json:"session"`
	ReusedConnection bool  `yaml:"reused_connection"          json:"reused_connection"`
}

func runLogin(cmd *cobra.Command, args []string) error {
	server, _ := cmd.Flags().GetString("server")
	path, _ := cmd.Flags().GetString("path")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")

	server = serverOrConfig(server)
	if server == "" {
		return fmt.Errorf("--server is required (or set server in the config file)")
	}
	if path == "" {
		path = cfg.Path
	}

	client, err := sap.New(path)
	if err != nil {
		return err
	}
	defer client.Close()

	if timeoutSec == 0 {
		timeoutSec = cfg.SessionTimeoutSec
	}
	if timeoutSec > 0 {
		client.SessionTimeout = time.Duration(timeoutSec) * time.Second
	}

	sess, err := client.NewSession(server)
	if err != nil {
		return err
	}
	id, err := sess.ID()
	if err != nil {
		return err
	}

	return output.Print(loginResult{
		OK:               true,
		Action:           "login",
		Server:           server,
		Session:          id,
		ReusedConnection: client.ConnectionReused(),
	})
}
