package cmd

import (
	"fmt"

	"github.com/mj1618/sapgui-cli/internal/output"
	"github.com/spf13/cobra"
)

var transactionCmd = &cobra.Command{
	Use:   "transaction",
	Short: "Open or close a transaction",
	Long: `Open a transaction by code, force-closing whatever is currently open
first, or close the current transaction with --close.`,
	RunE: runTransaction,
}

func init() {
	rootCmd.AddCommand(transactionCmd)
	addTargetFlags(transactionCmd)
	transactionCmd.Flags().String("code", "", "Transaction code to open (e.g. VA01)")
	transactionCmd.Flags().Bool("close", false, "Close the current transaction instead of opening one")
}

type transactionResult struct {
	OK     bool   `yaml:"ok"             json:"ok"`
	Action string `yaml:"action"         json:"action"`
	Code   string `yaml:"code,omitempty" json:"code,omitempty"`
}

func runTransaction(cmd *cobra.Command, args []string) error {
	server, index := getTargetFlags(cmd)
	code, _ := cmd.Flags().GetString("code")
	closeTx, _ := cmd.Flags().GetBool("close")

	if closeTx && code != "" {
		return fmt.Errorf("--code and --close are mutually exclusive")
	}
	if !closeTx && code == "" {
		return fmt.Errorf("--code is required (or use --close)")
	}

	sess, release, err := resolveSession(server, index)
	if err != nil {
		return err
	}
	defer release()

	if closeTx {
		if err := sess.CloseTransaction(); err != nil {
			return err
		}
		return output.Print(transactionResult{OK: true, Action: "close-transaction"})
	}

	if err := sess.OpenTransaction(code); err != nil {
		return err
	}
	return output.Print(transactionResult{OK: true, Action: "transaction", Code: code})
}
