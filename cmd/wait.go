package cmd

import (
	"fmt"
	"time"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/mj1618/sapgui-cli/internal/sap"
	"github.com/spf13/cobra"
)

// waitResult is the output of a wait command.
type waitResult struct {
	OK       bool   `yaml:"ok"                 json:"ok"`
	Action   string `yaml:"action"             json:"action"`
	Fragment string `yaml:"fragment"           json:"fragment"`
	Gone     bool   `yaml:"gone,omitempty"     json:"gone,omitempty"`
	Elapsed  string `yaml:"elapsed"            json:"elapsed"`
	TimedOut bool   `yaml:"timed_out,omitempty" json:"timed_out,omitempty"`
}

var waitCmd = &cobra.Command{
	Use:   "wait",
	Short: "Wait for a widget to appear or disappear",
	Long:  "Poll the session's widget tree until a widget matching the fragment exists (or no longer exists with --gone), or the timeout is reached.",
	RunE:  runWait,
}

func init() {
	rootCmd.AddCommand(waitCmd)
	addTargetFlags(waitCmd)
	waitCmd.Flags().String("fragment", "", "Identifier fragment to wait for")
	waitCmd.Flags().Bool("gone", false, "Invert: wait until no widget matches")
	waitCmd.Flags().Int("timeout", 30, "Max seconds to wait")
	waitCmd.Flags().Int("interval", 500, "Polling interval in milliseconds")
}

func runWait(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	fragment, _ := cmd.Flags().GetString("fragment")
	gone, _ := cmd.Flags().GetBool("gone")
	timeoutSec, _ := cmd.Flags().GetInt("timeout")
	intervalMs, _ := cmd.Flags().GetInt("interval")

	if fragment == "" {
		return fmt.Errorf("--fragment is required")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	timeout := time.Duration(timeoutSec) * time.Second
	interval := time.Duration(intervalMs) * time.Millisecond

	elapsed, err := waitForFragment(sess, fragment, gone, timeout, interval)
	if err != nil {
		// Print the result, then return an error for a non-zero exit code.
		_ = output.Print(waitResult{
			OK:       false,
			Action:   "wait",
			Fragment: fragment,
			Gone:     gone,
			Elapsed:  fmt.Sprintf("%.1fs", elapsed.Seconds()),
			TimedOut: true,
		})
		return err
	}

	return output.Print(waitResult{
		OK:       true,
		Action:   "wait",
		Fragment: fragment,
		Gone:     gone,
		Elapsed:  fmt.Sprintf("%.1fs", elapsed.Seconds()),
	})
}

// waitForFragment polls the widget tree until the fragment condition holds.
// Poll errors are retried until the deadline; the last one is reported on
// timeout.
func waitForFragment(sess *sap.Session, fragment string, gone bool, timeout, interval time.Duration) (time.Duration, error) {
	deadline := time.Now().Add(timeout)
	start := time.Now()

	for {
		matches, err := sess.FindElements(fragment)
		if err != nil {
			if time.Now().After(deadline) {
				return time.Since(start), fmt.Errorf("timeout after %s (last error: %w)", timeout, err)
			}
			time.Sleep(interval)
			continue
		}

		conditionMet := len(matches) > 0
		if gone {
			conditionMet = len(matches) == 0
		}
		if conditionMet {
			return time.Since(start), nil
		}

		if time.Now().After(deadline) {
			desc := fmt.Sprintf("fragment=%q", fragment)
			if gone {
				desc += " (gone)"
			}
			return time.Since(start), fmt.Errorf("timed out waiting for condition: %s", desc)
		}
		time.Sleep(interval)
	}
}
