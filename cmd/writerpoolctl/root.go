package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "writerpoolctl",
		Short: "Client for the writerpoold journal append service",
	}
	cmd.PersistentFlags().String("addr", "http://localhost:9090", "writerpoold base address")
	cmd.AddCommand(newAppendCmd())
	return cmd
}
