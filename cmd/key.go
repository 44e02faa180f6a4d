package cmd

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var keyCmd = &cobra.Command{
	Use:   "key",
	Short: "Send virtual key codes to a session window",
	Long: `Send one or more virtual key codes to a window of the target session.
Key 0 is Enter; function keys follow the frontend's VKey table (e.g. 8 = F8).`,
	RunE: runKey,
}

func init() {
	rootCmd.AddCommand(keyCmd)
	addTargetFlags(keyCmd)
	keyCmd.Flags().IntSlice("key", nil, "Virtual key code to send (repeatable, sent in order)")
	keyCmd.Flags().Int("window", 0, "Window index to send keys to (0 = main window)")
}

type keyResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Keys   []int  `yaml:"keys"   json:"keys"`
	Window int    `yaml:"window" json:"window"`
}

func runKey(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	keys, _ := cmd.Flags().GetIntSlice("key")
	window, _ := cmd.Flags().GetInt("window")

	if len(keys) == 0 {
		return fmt.Errorf("--key is required (repeatable)")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	if err := sess.SendKeyWindow(window, keys...); err != nil {
		return err
	}
	return output.Print(keyResult{OK: true, Action: "key", Keys: keys, Window: window})
}
