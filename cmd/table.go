package cmd

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Extract the contents of a table widget",
	Long: `Extract the 2-D textual content of a table widget. Both fixed table
controls and shell-hosted grid views are supported; the widget kind is
detected automatically. Rows with no readable cells are dropped.`,
	RunE: runTable,
}

func init() {
	rootCmd.AddCommand(tableCmd)
	addTargetFlags(tableCmd)
	tableCmd.Flags().String("id", "", "Table widget identifier fragment (first match wins)")
}

type tableResult struct {
	OK     bool            `yaml:"ok"     json:"ok"`
	Action string          `yaml:"action" json:"action"`
	ID     string          `yaml:"id"     json:"id"`
	Rows   model.TableData `yaml:"rows"   json:"rows"`
	Total  int             `yaml:"total"  json:"total"`
}

func runTable(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	id, _ := cmd.Flags().GetString("id")

	if id == "" {
		return fmt.Errorf("--id is required")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	rows, err := sess.Table(id)
	if err != nil {
		return err
	}
	if rows == nil {
		rows = model.TableData{}
	}

	return output.Print(tableResult{
		OK:     true,
		Action: "table",
		ID:     id,
		Rows:   rows,
		Total:  len(rows),
	})
}
