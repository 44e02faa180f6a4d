package cmd

import (
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log the session out of the SAP system",
	Long:  "Issue the logout command (/nex) on the target session. This terminates the whole client session, not just one window.",
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
	addTargetFlags(logoutCmd)
}

type logoutResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
}

func runLogout(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	if err := sess.Logout(); err != nil {
		return err
	}
	return output.Print(logoutResult{OK: true, Action: "logout"})
}
