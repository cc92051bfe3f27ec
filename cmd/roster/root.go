package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "roster",
		Short:         "Roster lifecycle orchestration tools",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newDemoCmd())
	cmd.AddCommand(newServeCmd())
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
