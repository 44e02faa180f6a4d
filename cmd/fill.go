package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var fillCmd = &cobra.Command{
	Use:   "fill",
	Short: "Set multiple input fields in one call",
	Long: `Set multiple input fields, each identified by a fragment that must
resolve to exactly one widget. Fields can be given three ways:

  --field ident=value    repeatable flag
  --ids / --values       whitespace-separated, applied pairwise
  stdin                  a YAML list of {id, value} maps with --stdin

Fields are applied in order; a failure stops at the failing field and leaves
earlier fields set.`,
	RunE: runFill,
}

func init() {
	rootCmd.AddCommand(fillCmd)
	addTargetFlags(fillCmd)
	fillCmd.Flags().StringArray("field", nil, "Field assignment as ident=value (repeatable)")
	fillCmd.Flags().String("ids", "", "Whitespace-separated field identifier fragments")
	fillCmd.Flags().String("values", "", "Whitespace-separated values, one per id")
	fillCmd.Flags().Bool("stdin", false, "Read a YAML list of {id, value} maps from stdin")
}

// fillField is one stdin YAML entry.
type fillField struct {
	ID    string `yaml:"id"`
	Value string `yaml:"value"`
}

type fillResult struct {
	OK     bool   `yaml:"ok"     json:"ok"`
	Action string `yaml:"action" json:"action"`
	Fields int    `yaml:"fields" json:"fields"`
}

func runFill(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	fieldFlags, _ := cmd.Flags().GetStringArray("field")
	idsStr, _ := cmd.Flags().GetString("ids")
	valuesStr, _ := cmd.Flags().GetString("values")
	fromStdin, _ := cmd.Flags().GetBool("stdin")

	idents, values, err := collectFields(fieldFlags, idsStr, valuesStr, fromStdin)
	if err != nil {
		return err
	}
	if len(idents) == 0 {
		return fmt.Errorf("no fields given — use --field, --ids/--values, or --stdin")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	if err := sess.UpdateFieldList(idents, values); err != nil {
		return err
	}
	return output.Print(fillResult{OK: true, Action: "fill", Fields: len(idents)})
}

// collectFields merges the three input forms into parallel ident/value lists.
func collectFields(fieldFlags []string, idsStr, valuesStr string, fromStdin bool) ([]string, []string, error) {
	var idents, values []string

	for _, f := range fieldFlags {
		ident, value, ok := strings.Cut(f, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid --field %q: expected ident=value", f)
		}
		idents = append(idents, ident)
		values = append(values, value)
	}

	if idsStr != "" || valuesStr != "" {
		ids := strings.Fields(idsStr)
		vals := strings.Fields(valuesStr)
		// Let the session report the arity mismatch; just pass both through.
		idents = append(idents, ids...)
		values = append(values, vals...)
	}

	if fromStdin {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		var fields []fillField
		if err := yaml.Unmarshal(data, &fields); err != nil {
			return nil, nil, fmt.Errorf("failed to parse YAML fields: %w", err)
		}
		for _, f := range fields {
			idents = append(idents, f.ID)
			values = append(values, f.Value)
		}
	}

	return idents, values, nil
}
