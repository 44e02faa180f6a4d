package cmd

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set a single input field",
	Long:  "Set one input field identified by a fragment that must resolve to exactly one widget.",
	RunE:  runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
	addTargetFlags(setCmd)
	setCmd.Flags().String("id", "", "Field identifier fragment")
	setCmd.Flags().String("value", "", "Value to set")
}

type setResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	ID     string `yaml:"id"     json:"id"`
}

func runSet(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	id, _ := cmd.Flags().GetString("id")
	value, _ := cmd.Flags().GetString("value")

	if id == "" {
		return fmt.Errorf("--id is required")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	if err := sess.UpdateFieldList([]string{id}, []string{value}); err != nil {
		return err
	}
	return output.Print(setResult{OK: true, Action: "set", ID: id})
}
