package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mj1618/sapgui-cli/internal/model"
	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sap"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// DoResult is the output of a batch do command.
type DoResult struct {
	OK        bool         `yaml:"ok"              json:"ok"`
	Action    string       `yaml:"action"          json:"action"`
	Steps     int          `yaml:"steps"           json:"steps"`
	Completed int          `yaml:"completed"       json:"completed"`
	Error     string       `yaml:"error,omitempty" json:"error,omitempty"`
	Results   []StepResult `yaml:"results"         json:"results"`
}

// StepResult is the output for a single step within a batch.
type StepResult struct {
	Step    int             `yaml:"step"               json:"step"`
	OK      bool            `yaml:"ok"                 json:"ok"`
	Action  string          `yaml:"action"             json:"action"`
	Error   string          `yaml:"error,omitempty"    json:"error,omitempty"`
	Code    string          `yaml:"code,omitempty"     json:"code,omitempty"`
	Fields  int             `yaml:"fields,omitempty"   json:"fields,omitempty"`
	Keys    []int           `yaml:"keys,omitempty"     json:"keys,omitempty"`
	Matches []string        `yaml:"matches,omitempty"  json:"matches,omitempty"`
	Rows    model.TableData `yaml:"rows,omitempty"     json:"rows,omitempty"`
	Elapsed string          `yaml:"elapsed,omitempty"  json:"elapsed,omitempty"`
}

var doCmd = &cobra.Command{
	Use:   "do",
	Short: "Execute multiple steps in a batch",
	Long: `Execute a sequence of steps from a YAML list on stdin against one session.

Each step is an action name with its parameters as a map. Steps execute
sequentially, and by default execution stops on the first error.

Supported step types: transaction, fill, set, key, find, table, wait, sleep

Example:
  sapgui-cli do --server "PRD" <<'EOF'
  - transaction: { code: "VA03" }
  - fill: { fields: [ { id: "txtVBAK-VBELN", value: "20000001" } ] }
  - key: { keys: [0] }
  - table: { id: "tblSAPMV45ATCTRL_U_ERF_AUFTRAG" }
  EOF`,
	RunE: runDo,
}

func init() {
	rootCmd.AddCommand(doCmd)
	addTargetFlags(doCmd)
	doCmd.Flags().Bool("stop-on-error", true, "Stop execution on first error")
}

func runDo(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	stopOnError, _ := cmd.Flags().GetBool("stop-on-error")

	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("no steps provided on stdin — pipe a YAML list of actions")
	}

	var rawSteps []map[string]map[string]interface{}
	if err := yaml.Unmarshal(data, &rawSteps); err != nil {
		return fmt.Errorf("failed to parse YAML steps: %w", err)
	}
	if len(rawSteps) == 0 {
		return fmt.Errorf("no steps provided — expected a YAML list of actions")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	results, completed, lastErr := executeSteps(sess, rawSteps, stopOnError)

	return output.Print(DoResult{
		OK:        lastErr == "",
		Action:    "do",
		Steps:     len(rawSteps),
		Completed: completed,
		Error:     lastErr,
		Results:   results,
	})
}

// executeSteps runs the steps sequentially against one session. Returns the
// per-step results, the count of successful steps, and the first error
// message when stopOnError ended the batch early (or the last error
// otherwise).
func executeSteps(sess *sap.Session, rawSteps []map[string]map[string]interface{}, stopOnError bool) ([]StepResult, int, string) {
	results := make([]StepResult, 0, len(rawSteps))
	completed := 0
	var lastErr string

	for i, step := range rawSteps {
		stepNum := i + 1

		if len(step) != 1 {
			errMsg := fmt.Sprintf("step %d: expected exactly one action key, got %d", stepNum, len(step))
			results = append(results, StepResult{Step: stepNum, OK: false, Error: errMsg})
			lastErr = errMsg
			if stopOnError {
				return results, completed, lastErr
			}
			continue
		}

		for action, params := range step {
			result, err := executeStep(sess, action, params)
			result.Step = stepNum
			if err != nil {
				result.OK = false
				result.Error = err.Error()
				results = append(results, result)
				lastErr = fmt.Sprintf("step %d: %s", stepNum, err.Error())
				if stopOnError {
					return results, completed, lastErr
				}
				continue
			}
			result.OK = true
			completed++
			results = append(results, result)
		}
	}

	return results, completed, lastErr
}

func executeStep(sess *sap.Session, action string, params map[string]interface{}) (StepResult, error) {
	switch action {
	case "transaction":
		return executeTransaction(sess, params)
	case "fill":
		return executeFill(sess, params)
	case "set":
		return executeSet(sess, params)
	case "key":
		return executeKey(sess, params)
	case "find":
		return executeFind(sess, params)
	case "table":
		return executeTable(sess, params)
	case "wait":
		return executeWait(sess, params)
	case "sleep":
		return executeSleep(params)
	default:
		return StepResult{Action: action}, fmt.Errorf("unknown step type %q — supported: transaction, fill, set, key, find, table, wait, sleep", action)
	}
}

func executeTransaction(sess *sap.Session, params map[string]interface{}) (StepResult, error) {
	code := stringParam(params, "code", "")
	closeTx := boolParam(params, "close", false)

	if closeTx {
		if err := sess.CloseTransaction(); err != nil {
			return StepResult{Action: "transaction"}, err
		}
		return StepResult{Action: "transaction"}, nil
	}
	if code == "" {
		return StepResult{Action: "transaction"}, fmt.Errorf("specify code or close: true")
	}
	if err := sess.OpenTransaction(code); err != nil {
		return StepResult{Action: "transaction", Code: code}, err
	}
	return StepResult{Action: "transaction", Code: code}, nil
}

func executeFill(sess *sap.Session, params map[string]interface{}) (StepResult, error) {
	idents, values, err := fieldsFromParams(params)
	if err != nil {
		return StepResult{Action: "fill"}, err
	}
	if len(idents) == 0 {
		return StepResult{Action: "fill"}, fmt.Errorf("specify fields or ids/values")
	}
	if err := sess.UpdateFieldList(idents, values); err != nil {
		return StepResult{Action: "fill"}, err
	}
	return StepResult{Action: "fill", Fields: len(idents)}, nil
}

// fieldsFromParams reads either a fields list of {id, value} maps or the
// whitespace-separated ids/values pair.
func fieldsFromParams(params map[string]interface{}) ([]string, []string, error) {
	var idents, values []string

	if raw, ok := params["fields"]; ok {
		arr, ok := raw.([]interface{})
		if !ok {
			return nil, nil, fmt.Errorf("fields must be a list of {id, value} maps")
		}
		for _, item := range arr {
			m, ok := item.(map[string]interface{})
			if !ok {
				return nil, nil, fmt.Errorf("each field must be a {id, value} map")
			}
			idents = append(idents, stringParam(m, "id", ""))
			values = append(values, stringParam(m, "value", ""))
		}
		return idents, values, nil
	}

	ids := stringParam(params, "ids", "")
	vals := stringParam(params, "values", "")
	if ids == "" && vals == "" {
		return nil, nil, nil
	}
	return strings.Fields(ids), strings.Fields(vals), nil
}

func executeSet(sess *sap.Session, params map[string]interface{}) (StepResult, error) {
	id := stringParam(params, "id", "")
	value := stringParam(params, "value", "")
	if id == "" {
		return StepResult{Action: "set"}, fmt.Errorf("specify id")
	}
	if err := sess.UpdateFieldList([]string{id}, []string{value}); err != nil {
		return StepResult{Action: "set"}, err
	}
	return StepResult{Action: "set", Fields: 1}, nil
}

func executeKey(sess *sap.Session, params map[string]interface{}) (StepResult, error) {
	keys := intSliceParam(params, "keys")
	if len(keys) == 0 {
		if _, ok := params["key"]; ok {
			keys = []int{intParam(params, "key", 0)}
		}
	}
	if len(keys) == 0 {
		return StepResult{Action: "key"}, fmt.Errorf("specify keys")
	}
	window := intParam(params, "window", 0)
	if err := sess.SendKeyWindow(window, keys...); err != nil {
		return StepResult{Action: "key", Keys: keys}, err
	}
	return StepResult{Action: "key", Keys: keys}, nil
}

func executeFind(sess *sap.Session, params map[string]interface{}) (StepResult, error) {
	fragment := stringParam(params, "fragment", "")
	if fragment == "" {
		return StepResult{Action: "find"}, fmt.Errorf("specify fragment")
	}
	matches, err := sess.FindElements(fragment)
	if err != nil {
		return StepResult{Action: "find"}, err
	}
	return StepResult{Action: "find", Matches: matches}, nil
}

func executeTable(sess *sap.Session, params map[string]interface{}) (StepResult, error) {
	id := stringParam(params, "id", "")
	if id == "" {
		return StepResult{Action: "table"}, fmt.Errorf("specify id")
	}
	rows, err := sess.Table(id)
	if err != nil {
		return StepResult{Action: "table"}, err
	}
	return StepResult{Action: "table", Rows: rows}, nil
}

func executeWait(sess *sap.Session, params map[string]interface{}) (StepResult, error) {
	fragment := stringParam(params, "fragment", "")
	if fragment == "" {
		return StepResult{Action: "wait"}, fmt.Errorf("specify fragment")
	}
	gone := boolParam(params, "gone", false)
	timeout := time.Duration(intParam(params, "timeout", 30)) * time.Second
	interval := time.Duration(intParam(params, "interval", 500)) * time.Millisecond

	elapsed, err := waitForFragment(sess, fragment, gone, timeout, interval)
	if err != nil {
		return StepResult{Action: "wait"}, err
	}
	return StepResult{Action: "wait", Elapsed: fmt.Sprintf("%.1fs", elapsed.Seconds())}, nil
}

func executeSleep(params map[string]interface{}) (StepResult, error) {
	ms := intParam(params, "ms", 0)
	if ms <= 0 {
		return StepResult{Action: "sleep"}, fmt.Errorf("ms must be > 0")
	}
	time.Sleep(time.Duration(ms) * time.Millisecond)
	return StepResult{Action: "sleep", Elapsed: fmt.Sprintf("%dms", ms)}, nil
}
