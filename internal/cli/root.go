package cli

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "auditor",
		Short:         "Audit timesheets for attendance anomalies",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newAuditCmd())
	rootCmd.AddCommand(newClassifyCmd())
	rootCmd.AddCommand(newUserAddCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func Execute() error {
	rootCmd := newRootCmd()
	err := rootCmd.Execute()
	if err != nil {
		rootCmd.PrintErrln(Error("Error: " + err.Error()))
	}
	return err
}
