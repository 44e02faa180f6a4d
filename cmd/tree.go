package cmd

import (
	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Dump the session's widget tree",
	Long: `Capture a snapshot of the session's widget tree and print it flattened
(one entry per widget) or nested with --nested. Flat output can be narrowed
with --types and --text.`,
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	addTargetFlags(treeCmd)
	treeCmd.Flags().String("types", "", "Comma-separated type filter, aliases allowed (e.g. \"txt,btn\" or \"GuiTextField\")")
	treeCmd.Flags().String("text", "", "Filter widgets by id/text substring (case-insensitive)")
	treeCmd.Flags().Bool("nested", false, "Print the raw nested tree instead of the flat list")
}

// treeResult is the flat output of the tree command.
type treeResult struct {
	OK      bool               `yaml:"ok"      json:"ok"`
	Action  string             `yaml:"action"  json:"action"`
	Widgets []model.FlatWidget `yaml:"widgets" json:"widgets"`
	Total   int                `yaml:"total"   json:"total"`
}

func runTree(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	typesStr, _ := cmd.Flags().GetString("types")
	text, _ := cmd.Flags().GetString("text")
	nested, _ := cmd.Flags().GetBool("nested")

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	root, err := sess.Tree()
	if err != nil {
		return err
	}

	if nested {
		return output.Print(root)
	}

	widgets := model.FlattenTree(*root)
	if typesStr != "" {
		widgets = model.FilterByType(widgets, model.ExpandTypes(splitCSV(typesStr)))
	}
	if text != "" {
		widgets = model.FilterByText(widgets, text)
	}
	if widgets == nil {
		widgets = []model.FlatWidget{}
	}

	return output.Print(treeResult{
		OK:      true,
		Action:  "tree",
		Widgets: widgets,
		Total:   len(widgets),
	})
}
