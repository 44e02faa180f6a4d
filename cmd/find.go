package cmd

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search for widgets by identifier fragment",
	Long: `Search the session's widget tree for identifiers containing the given
fragment. Path-shaped fragments (containing "/") are completed with the
standard window and user-area prefixes before matching; bare fragments like
"okcd" match anywhere in the identifier.`,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
	addTargetFlags(findCmd)
	findCmd.Flags().String("fragment", "", "Identifier fragment to search for (substring match)")
	findCmd.Flags().Int("limit", 0, "Max matches to return (0 = unlimited)")
}

// findResult is the top-level output of the find command.
type findResult struct {
	OK       bool     `yaml:"ok"       json:"ok"`
	Action   string   `yaml:"action"   json:"action"`
	Fragment string   `yaml:"fragment" json:"fragment"`
	Matches  []string `yaml:"matches"  json:"matches"`
	Total    int      `yaml:"total"    json:"total"`
}

func runFind(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	fragment, _ := cmd.Flags().GetString("fragment")
	limit, _ := cmd.Flags().GetInt("limit")

	if fragment == "" {
		return fmt.Errorf("--fragment is required")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	matches, err := sess.FindElements(fragment)
	if err != nil {
		return err
	}
	total := len(matches)
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	if matches == nil {
		matches = []string{}
	}

	return output.Print(findResult{
		OK:       true,
		Action:   "find",
		Fragment: fragment,
		Matches:  matches,
		Total:    total,
	})
}
